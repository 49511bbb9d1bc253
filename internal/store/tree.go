// Package store is the shared record tree that bookings and reviews live in.
//
// Records are grouped by collection ("bookings", "reviews") and addressed by a
// generated push key. Keys are UUIDv7 strings, so key order is creation order.
// Readers get whole-collection snapshots; watchers get a fresh snapshot after
// every change, never a delta.
package store

import (
	"context"
	"errors"
)

const (
	Bookings = "bookings"
	Reviews  = "reviews"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record key already exists")
)

// Listener receives the complete collection after each change. A non-nil
// error means the snapshot could not be read; the subscription stays open.
type Listener func(Snapshot, error)

// Subscription is a live view on a collection. Close must not be called from
// inside the Listener; after Close returns the Listener is never invoked again.
type Subscription interface {
	Close()
}

// Tree is a keyed store of flat records grouped by collection. Get, Update and
// Remove return ErrNotFound for a missing key.
type Tree interface {
	Push(ctx context.Context, collection string, fields map[string]any) (string, error)
	Get(ctx context.Context, collection, key string) (Record, error)
	List(ctx context.Context, collection string) (Snapshot, error)
	Update(ctx context.Context, collection, key string, fields map[string]any) error
	Remove(ctx context.Context, collection, key string) error
	Watch(ctx context.Context, collection string, fn Listener) (Subscription, error)
}
