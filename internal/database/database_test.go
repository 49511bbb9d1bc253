package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestIsPostgres(t *testing.T) {
	assert.True(t, IsPostgres("postgres://user@localhost/guesthouse"))
	assert.True(t, IsPostgres("postgresql://user@localhost/guesthouse"))
	assert.False(t, IsPostgres("file:guesthouse.db"))
	assert.False(t, IsPostgres(""))
}

func TestConnect_LogsFailedQueriesThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	dsn := fmt.Sprintf("file:db_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := Connect(dsn, zap.New(core))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	var n int
	err = db.Raw("SELECT count(*) FROM missing_table").Scan(&n).Error
	require.Error(t, err)

	failed := logs.FilterMessage("query failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "gorm", failed[0].LoggerName)
	assert.Contains(t, failed[0].ContextMap()["sql"], "missing_table")
}

func TestGormLogger_Trace(t *testing.T) {
	query := func() (string, int64) { return "SELECT 1", 1 }

	tests := []struct {
		name    string
		level   logger.LogLevel
		elapsed time.Duration
		err     error
		want    string
	}{
		{"error", logger.Warn, 0, errors.New("disk I/O error"), "query failed"},
		{"record not found is quiet", logger.Warn, 0, gorm.ErrRecordNotFound, ""},
		{"slow", logger.Warn, time.Second, nil, "slow query"},
		{"fast at warn", logger.Warn, 0, nil, ""},
		{"fast at info", logger.Info, 0, nil, "query"},
		{"silent", logger.Silent, time.Second, errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			l := newGormLogger(zap.New(core)).LogMode(tt.level)

			l.Trace(context.Background(), time.Now().Add(-tt.elapsed), query, tt.err)

			if tt.want == "" {
				assert.Zero(t, logs.Len())
				return
			}
			require.Equal(t, 1, logs.Len())
			assert.Equal(t, tt.want, logs.All()[0].Message)
		})
	}
}
