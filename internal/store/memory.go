package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryTree keeps the tree in process memory. It backs STORE_DRIVER=memory
// and most tests.
type MemoryTree struct {
	mu     sync.RWMutex
	data   map[string]map[string]map[string]any
	broker *Broker
}

func NewMemoryTree() *MemoryTree {
	return &MemoryTree{
		data:   make(map[string]map[string]map[string]any),
		broker: NewBroker(),
	}
}

func (t *MemoryTree) Push(ctx context.Context, collection string, fields map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	key := id.String()

	t.mu.Lock()
	if t.data[collection] == nil {
		t.data[collection] = make(map[string]map[string]any)
	}
	if _, exists := t.data[collection][key]; exists {
		t.mu.Unlock()
		return "", ErrConflict
	}
	t.data[collection][key] = cloneFields(fields)
	t.mu.Unlock()

	t.broker.Publish(collection)
	return key, nil
}

func (t *MemoryTree) Get(ctx context.Context, collection, key string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	fields, ok := t.data[collection][key]
	if !ok {
		return Record{}, ErrNotFound
	}
	return Record{Key: key, Fields: cloneFields(fields)}, nil
}

func (t *MemoryTree) List(ctx context.Context, collection string) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	nodes := t.data[collection]
	keys := make([]string, 0, len(nodes))
	for k := range nodes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	snap := Snapshot{Collection: collection, Records: make([]Record, 0, len(keys))}
	for _, k := range keys {
		snap.Records = append(snap.Records, Record{Key: k, Fields: cloneFields(nodes[k])})
	}
	return snap, nil
}

func (t *MemoryTree) Update(ctx context.Context, collection, key string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	current, ok := t.data[collection][key]
	if !ok {
		t.mu.Unlock()
		return ErrNotFound
	}
	for k, v := range fields {
		current[k] = v
	}
	t.mu.Unlock()

	t.broker.Publish(collection)
	return nil
}

func (t *MemoryTree) Remove(ctx context.Context, collection, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	if _, ok := t.data[collection][key]; !ok {
		t.mu.Unlock()
		return ErrNotFound
	}
	delete(t.data[collection], key)
	t.mu.Unlock()

	t.broker.Publish(collection)
	return nil
}

func (t *MemoryTree) Watch(ctx context.Context, collection string, fn Listener) (Subscription, error) {
	return t.broker.subscribe(ctx, collection, t.List, fn), nil
}
