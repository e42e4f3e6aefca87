package testutil

import (
	"context"
	"sync"

	"github.com/light-bringer/cartsync-service/internal/app/cart/contracts"
)

// FlakyStore wraps a LocalStore and fails selected operations on demand.
type FlakyStore struct {
	contracts.LocalStore

	mu        sync.Mutex
	getErr    error
	putErr    error
	deleteErr error
	puts      int
	deletes   int
}

// NewFlakyStore wraps inner.
func NewFlakyStore(inner contracts.LocalStore) *FlakyStore {
	return &FlakyStore{LocalStore: inner}
}

// FailGet sets the error returned by Get; nil heals it.
func (s *FlakyStore) FailGet(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getErr = err
}

// FailPut sets the error returned by Put; nil heals it.
func (s *FlakyStore) FailPut(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putErr = err
}

// FailDelete sets the error returned by Delete; nil heals it.
func (s *FlakyStore) FailDelete(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteErr = err
}

// Puts returns how many writes reached the wrapped store.
func (s *FlakyStore) Puts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.puts
}

// Deletes returns how many deletes reached the wrapped store.
func (s *FlakyStore) Deletes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deletes
}

func (s *FlakyStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	err := s.getErr
	s.mu.Unlock()
	if err != nil {
		return nil, false, err
	}
	return s.LocalStore.Get(ctx, key)
}

func (s *FlakyStore) Put(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	err := s.putErr
	if err == nil {
		s.puts++
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.LocalStore.Put(ctx, key, value)
}

func (s *FlakyStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	err := s.deleteErr
	if err == nil {
		s.deletes++
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.LocalStore.Delete(ctx, key)
}
