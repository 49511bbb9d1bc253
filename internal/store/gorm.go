package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ChangeChannel is the Postgres NOTIFY channel carrying changed collection names.
const ChangeChannel = "tree_changes"

type nodeModel struct {
	Collection string    `gorm:"column:collection;primaryKey;size:64"`
	Key        string    `gorm:"column:node_key;primaryKey;size:64"`
	Value      string    `gorm:"column:value;type:text;not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (nodeModel) TableName() string { return "tree_nodes" }

type GormTree struct {
	db       *gorm.DB
	broker   *Broker
	pgNotify bool
}

type GormOption func(*GormTree)

// WithPostgresNotify announces every write on ChangeChannel so watchers in
// other processes (see ChangeListener) see it too.
func WithPostgresNotify() GormOption {
	return func(t *GormTree) { t.pgNotify = true }
}

// WithBroker shares a broker with a ChangeListener.
func WithBroker(b *Broker) GormOption {
	return func(t *GormTree) { t.broker = b }
}

func NewGormTree(db *gorm.DB, opts ...GormOption) *GormTree {
	t := &GormTree{db: db, broker: NewBroker()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *GormTree) Migrate(ctx context.Context) error {
	return t.db.WithContext(ctx).AutoMigrate(&nodeModel{})
}

func (t *GormTree) Broker() *Broker { return t.broker }

func (t *GormTree) Push(ctx context.Context, collection string, fields map[string]any) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	value, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encode %s record: %w", collection, err)
	}

	m := nodeModel{Collection: collection, Key: id.String(), Value: string(value)}
	if err := t.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return "", ErrConflict
		}
		return "", err
	}

	t.changed(ctx, collection)
	return m.Key, nil
}

func (t *GormTree) Get(ctx context.Context, collection, key string) (Record, error) {
	var m nodeModel
	err := t.db.WithContext(ctx).
		Where("collection = ? AND node_key = ?", collection, key).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	return toRecord(m)
}

func (t *GormTree) List(ctx context.Context, collection string) (Snapshot, error) {
	var rows []nodeModel
	err := t.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("node_key ASC").
		Find(&rows).Error
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{Collection: collection, Records: make([]Record, 0, len(rows))}
	for _, row := range rows {
		rec, err := toRecord(row)
		if err != nil {
			return Snapshot{}, err
		}
		snap.Records = append(snap.Records, rec)
	}
	return snap, nil
}

// Update merges fields into the stored record.
func (t *GormTree) Update(ctx context.Context, collection, key string, fields map[string]any) error {
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m nodeModel
		err := tx.Where("collection = ? AND node_key = ?", collection, key).First(&m).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		current, err := decodeFields(m.Value)
		if err != nil {
			return err
		}
		for k, v := range fields {
			current[k] = v
		}
		value, err := json.Marshal(current)
		if err != nil {
			return err
		}

		return tx.Model(&nodeModel{}).
			Where("collection = ? AND node_key = ?", collection, key).
			Updates(map[string]any{"value": string(value), "updated_at": time.Now()}).Error
	})
	if err != nil {
		return err
	}

	t.changed(ctx, collection)
	return nil
}

func (t *GormTree) Remove(ctx context.Context, collection, key string) error {
	res := t.db.WithContext(ctx).
		Where("collection = ? AND node_key = ?", collection, key).
		Delete(&nodeModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	t.changed(ctx, collection)
	return nil
}

func (t *GormTree) Watch(ctx context.Context, collection string, fn Listener) (Subscription, error) {
	return t.broker.subscribe(ctx, collection, t.List, fn), nil
}

func (t *GormTree) changed(ctx context.Context, collection string) {
	t.broker.Publish(collection)
	if t.pgNotify {
		// best effort: local watchers already have the change
		_ = t.db.WithContext(ctx).Exec("SELECT pg_notify(?, ?)", ChangeChannel, collection).Error
	}
}

func toRecord(m nodeModel) (Record, error) {
	fields, err := decodeFields(m.Value)
	if err != nil {
		return Record{}, fmt.Errorf("decode %s/%s: %w", m.Collection, m.Key, err)
	}
	return Record{Key: m.Key, Fields: fields}, nil
}

func decodeFields(value string) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(value)))
	dec.UseNumber()

	fields := make(map[string]any)
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = make(map[string]any)
	}
	return fields, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
