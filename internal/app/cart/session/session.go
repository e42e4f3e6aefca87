// Package session serializes all transitions of one cart.
//
// A Session is the single writer of its Cart: every operation runs under one lock,
// remote calls included, so two adds for the same product can never race on the merge
// check. After each transition the session writes back the local subset when it changed
// and hands the recorded domain events to the publisher.
package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/light-bringer/cartsync-service/internal/app/cart/contracts"
	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/app/cart/reconciler"
)

// Transition mutates the cart. Returning nil or a *domain.SyncError commits the
// transition; any other error means the cart was left untouched.
type Transition func(ctx context.Context, cart *domain.Cart) error

// Session owns one Cart.
type Session struct {
	mu        sync.Mutex
	cart      *domain.Cart
	rec       *reconciler.Reconciler
	publisher contracts.EventPublisher
	logger    *zap.Logger

	// loading is readable without the lock so callers can render a spinner
	// while a load holds it.
	loading atomic.Bool
}

// New creates a Session. publisher may be nil.
func New(cart *domain.Cart, rec *reconciler.Reconciler, publisher contracts.EventPublisher, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		cart:      cart,
		rec:       rec,
		publisher: publisher,
		logger:    logger.With(zap.String("cart_id", cart.ID())),
	}
}

// Reconciler returns the store router of this session.
func (s *Session) Reconciler() *reconciler.Reconciler {
	return s.rec
}

// SetLoading marks the load window.
func (s *Session) SetLoading(v bool) { s.loading.Store(v) }

// IsLoading reports whether a load is in flight. It never blocks.
func (s *Session) IsLoading() bool { return s.loading.Load() }

// Exec runs fn as one transition.
func (s *Session) Exec(ctx context.Context, op string, fn Transition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := fn(ctx, s.cart)
	if err != nil && !domain.IsSyncError(err) {
		s.cart.ClearEvents()
		return err
	}
	if err != nil {
		s.logger.Warn("cart transition applied with store lag", zap.String("op", op), zap.Error(err))
	}

	if wbErr := s.writeBack(ctx); wbErr != nil {
		err = errors.Join(err, domain.NewSyncError(op, wbErr))
	}
	s.publish()
	return err
}

// Read gives fn a consistent view of the cart. fn must not mutate it.
func (s *Session) Read(fn func(cart *domain.Cart)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.cart)
}

// Flush retries any pending local write-back. Call it before the session ends.
func (s *Session) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeBack(ctx)
}

func (s *Session) writeBack(ctx context.Context) error {
	changes := s.cart.Changes()
	if !changes.Dirty(domain.FieldLocalItems) {
		changes.Clear()
		return nil
	}

	if err := s.rec.Local().Save(ctx, s.cart.LocalItems()); err != nil {
		// Leave the tracker dirty so the next transition or Flush retries.
		s.logger.Error("local cart write-back failed", zap.Error(err))
		return err
	}
	changes.Clear()
	return nil
}

func (s *Session) publish() {
	events := s.cart.DomainEvents()
	s.cart.ClearEvents()
	if s.publisher == nil {
		return
	}
	for _, event := range events {
		s.publisher.Publish(event)
	}
}
