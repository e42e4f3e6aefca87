// Package eventbus delivers events to subscribers off the caller's goroutine.
//
// Publish never blocks: when the buffer is full the event is dropped and counted.
// Handlers run sequentially on one worker in publish order.
package eventbus

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// DefaultBuffer is used when New is given a non-positive buffer size.
const DefaultBuffer = 256

// Handler consumes one event. Errors are logged and never stop delivery.
type Handler[E any] func(ctx context.Context, event E) error

type subscriber[E any] struct {
	name    string
	handler Handler[E]
}

// Bus is an asynchronous in-process fan-out.
type Bus[E any] struct {
	ch     chan E
	logger *zap.Logger

	mu          sync.RWMutex
	subscribers []subscriber[E]
	closed      bool

	dropped atomic.Uint64
	done    chan struct{}
	started atomic.Bool
}

// New creates a Bus. Call Start before publishing to get delivery.
func New[E any](buffer int, logger *zap.Logger) *Bus[E] {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus[E]{
		ch:     make(chan E, buffer),
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Subscribe registers a handler.
func (b *Bus[E]) Subscribe(name string, h Handler[E]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, subscriber[E]{name: name, handler: h})
}

// Start launches the delivery worker. It runs until Close.
func (b *Bus[E]) Start(ctx context.Context) {
	if !b.started.CompareAndSwap(false, true) {
		return
	}
	go b.run(ctx)
}

// Publish enqueues event without blocking.
func (b *Bus[E]) Publish(event E) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		b.drop("bus closed")
		return
	}

	select {
	case b.ch <- event:
	default:
		b.drop("buffer full")
	}
}

// Dropped returns how many events were discarded.
func (b *Bus[E]) Dropped() uint64 {
	return b.dropped.Load()
}

// Close stops accepting events and waits until queued ones are delivered.
func (b *Bus[E]) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	close(b.ch)
	b.mu.Unlock()

	if b.started.Load() {
		<-b.done
	}
}

func (b *Bus[E]) run(ctx context.Context) {
	defer close(b.done)
	for event := range b.ch {
		b.mu.RLock()
		subs := b.subscribers
		b.mu.RUnlock()

		for _, sub := range subs {
			if err := sub.handler(ctx, event); err != nil {
				b.logger.Warn("event handler failed", zap.String("subscriber", sub.name), zap.Error(err))
			}
		}
	}
}

func (b *Bus[E]) drop(reason string) {
	n := b.dropped.Add(1)
	b.logger.Warn("dropping event", zap.String("reason", reason), zap.Uint64("dropped_total", n))
}
