package reconciler

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/light-bringer/cartsync-service/internal/app/cart/contracts"
	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/models/m_local_cart"
)

// LocalBackend keeps the local-classified subset of a cart in one LocalStore slot.
// It remembers the last payload it read or wrote so that unchanged write-backs
// never reach the store.
type LocalBackend struct {
	store  contracts.LocalStore
	slot   string
	logger *zap.Logger

	mu sync.Mutex
	// known is true when last mirrors the slot; last is nil for an empty slot.
	known bool
	last  []byte
	// unreadable is set while the last read failed in the store itself, so the
	// slot may hold lines this process never saw.
	unreadable bool
}

var _ contracts.CartBackend = (*LocalBackend)(nil)

// NewLocalBackend creates a backend over store. An empty slot name uses m_local_cart.Slot.
func NewLocalBackend(store contracts.LocalStore, slot string, logger *zap.Logger) *LocalBackend {
	if slot == "" {
		slot = m_local_cart.Slot
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalBackend{
		store:  store,
		slot:   slot,
		logger: logger.With(zap.String("slot", slot)),
	}
}

// Kind reports the classification this backend owns.
func (b *LocalBackend) Kind() domain.IDKind { return domain.KindLocal }

// Load returns the persisted local items. A missing or corrupt slot yields an empty cart.
func (b *LocalBackend) Load(ctx context.Context) ([]*domain.CartItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.read(ctx)
}

// Save writes back the local-classified subset of items, skipping unchanged payloads.
func (b *LocalBackend) Save(ctx context.Context, items []*domain.CartItem) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.write(ctx, items)
}

// Commit upserts one local item into the slot.
func (b *LocalBackend) Commit(ctx context.Context, item *domain.CartItem) error {
	if !item.ID().IsLocal() {
		return domain.ErrWrongBackend
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	items, err := b.read(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i, existing := range items {
		if existing.ID() == item.ID() {
			items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, item)
	}
	return b.write(ctx, items)
}

// Discard removes one local item from the slot. Unknown ids are ignored.
func (b *LocalBackend) Discard(ctx context.Context, id domain.ItemID) error {
	if !id.IsLocal() {
		return domain.ErrWrongBackend
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	items, err := b.read(ctx)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, existing := range items {
		if existing.ID() != id {
			kept = append(kept, existing)
		}
	}
	return b.write(ctx, kept)
}

// Wipe empties the slot.
func (b *LocalBackend) Wipe(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.store.Delete(ctx, b.slot); err != nil {
		b.known = false
		return fmt.Errorf("failed to clear local cart: %w", err)
	}
	b.known, b.last = true, nil
	return nil
}

func (b *LocalBackend) read(ctx context.Context) ([]*domain.CartItem, error) {
	raw, ok, err := b.store.Get(ctx, b.slot)
	if err != nil {
		b.known, b.unreadable = false, true
		return nil, fmt.Errorf("failed to read local cart: %w", err)
	}
	b.unreadable = false
	if !ok {
		b.known, b.last = true, nil
		return []*domain.CartItem{}, nil
	}

	items, skipped, err := decodeLocalItems(raw)
	if err != nil {
		b.logger.Warn("discarding unparsable local cart", zap.Error(err), zap.Int("bytes", len(raw)))
		b.known = false
		return []*domain.CartItem{}, nil
	}
	if skipped > 0 {
		b.logger.Warn("skipped invalid local cart records", zap.Int("skipped", skipped))
		b.known = false
	} else {
		b.known, b.last = true, raw
	}
	return items, nil
}

func (b *LocalBackend) write(ctx context.Context, items []*domain.CartItem) error {
	if b.unreadable {
		stored, err := b.read(ctx)
		if err != nil {
			return err
		}
		items = b.keepUnseen(items, stored)
	}

	payload, n, err := encodeLocalItems(items)
	if err != nil {
		return err
	}

	if n == 0 {
		if b.known && b.last == nil {
			return nil
		}
		if err := b.store.Delete(ctx, b.slot); err != nil {
			b.known = false
			return fmt.Errorf("failed to clear local cart: %w", err)
		}
		b.known, b.last = true, nil
		return nil
	}

	if b.known && bytes.Equal(b.last, payload) {
		return nil
	}
	if err := b.store.Put(ctx, b.slot, payload); err != nil {
		b.known = false
		return fmt.Errorf("failed to write local cart: %w", err)
	}
	b.known, b.last = true, payload
	return nil
}

// keepUnseen appends the stored lines that items knows nothing about, neither by id
// nor by (product, size).
func (b *LocalBackend) keepUnseen(items, stored []*domain.CartItem) []*domain.CartItem {
	ids := make(map[domain.ItemID]bool, len(items))
	keys := make(map[domain.ItemKey]bool, len(items))
	for _, item := range items {
		ids[item.ID()] = true
		keys[item.Key()] = true
	}

	merged := append([]*domain.CartItem(nil), items...)
	kept := 0
	for _, item := range stored {
		if ids[item.ID()] || keys[item.Key()] {
			continue
		}
		merged = append(merged, item)
		kept++
	}
	if kept > 0 {
		b.logger.Warn("kept local cart lines missed by an earlier failed read", zap.Int("kept", kept))
	}
	return merged
}
