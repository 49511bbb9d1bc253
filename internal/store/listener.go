package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const listenRetryDelay = 2 * time.Second

// ChangeListener relays Postgres notifications on ChangeChannel into a Broker,
// so writes made by another process (cmd/moderate, a second API replica)
// reach this process's watchers.
type ChangeListener struct {
	dsn    string
	broker *Broker
	log    *zap.Logger
}

func NewChangeListener(dsn string, broker *Broker, log *zap.Logger) *ChangeListener {
	return &ChangeListener{dsn: dsn, broker: broker, log: log}
}

// Run blocks until ctx is done, reconnecting after connection failures.
func (l *ChangeListener) Run(ctx context.Context) {
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			return
		}
		l.log.Warn("change listener disconnected", zap.Error(err), zap.Duration("retry_in", listenRetryDelay))

		select {
		case <-ctx.Done():
			return
		case <-time.After(listenRetryDelay):
		}
	}
}

func (l *ChangeListener) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.dsn)
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{ChangeChannel}.Sanitize()); err != nil {
		return err
	}
	l.log.Info("listening for tree changes", zap.String("channel", ChangeChannel))

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}
		l.broker.Publish(n.Payload)
	}
}
