package store

import (
	"context"
	"sync"
)

type loadFunc func(ctx context.Context, collection string) (Snapshot, error)

// Broker fans change signals out to collection watchers. Signals coalesce:
// a watcher that is busy delivering sees at most one pending change and
// reloads the latest snapshot when it gets to it.
type Broker struct {
	mu   sync.Mutex
	subs map[string]map[*subscription]struct{}
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[string]map[*subscription]struct{})}
}

// Publish marks the collection as changed for every watcher.
func (b *Broker) Publish(collection string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for s := range b.subs[collection] {
		s.signal()
	}
}

func (b *Broker) watchers(collection string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[collection])
}

func (b *Broker) subscribe(ctx context.Context, collection string, load loadFunc, fn Listener) *subscription {
	ctx, cancel := context.WithCancel(ctx)
	s := &subscription{
		broker:     b,
		collection: collection,
		notify:     make(chan struct{}, 1),
		done:       make(chan struct{}),
		cancel:     cancel,
	}

	b.mu.Lock()
	if b.subs[collection] == nil {
		b.subs[collection] = make(map[*subscription]struct{})
	}
	b.subs[collection][s] = struct{}{}
	b.mu.Unlock()

	// initial snapshot
	s.signal()
	go s.run(ctx, load, fn)
	return s
}

func (b *Broker) remove(s *subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if set, ok := b.subs[s.collection]; ok {
		delete(set, s)
		if len(set) == 0 {
			delete(b.subs, s.collection)
		}
	}
}

type subscription struct {
	broker     *Broker
	collection string
	notify     chan struct{}
	done       chan struct{}
	cancel     context.CancelFunc

	mu     sync.Mutex
	closed bool
	once   sync.Once
}

func (s *subscription) signal() {
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

func (s *subscription) run(ctx context.Context, load loadFunc, fn Listener) {
	defer close(s.done)
	defer s.broker.remove(s)

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.notify:
		}

		snap, err := load(ctx, s.collection)
		if ctx.Err() != nil {
			return
		}

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return
		}
		fn(snap, err)
		s.mu.Unlock()
	}
}

func (s *subscription) Close() {
	s.once.Do(func() {
		s.broker.remove(s)
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		s.cancel()
	})
}
