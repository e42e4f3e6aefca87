package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/light-bringer/cartsync-service/internal/app/cart/contracts"
	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/pkg/clock"
)

// CartRepo is an in-memory CartRepository keyed by user.
type CartRepo struct {
	mu     sync.Mutex
	clock  clock.Clock
	carts  map[string][]*domain.CartItem
	nextID int
}

var _ contracts.CartRepository = (*CartRepo)(nil)

// NewCartRepo creates an empty repository.
func NewCartRepo(clk clock.Clock) *CartRepo {
	return &CartRepo{clock: clk, carts: make(map[string][]*domain.CartItem)}
}

func (r *CartRepo) List(_ context.Context, userID string) ([]*domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.CartItem, 0, len(r.carts[userID]))
	for _, item := range r.carts[userID] {
		out = append(out, item.Copy())
	}
	return out, nil
}

func (r *CartRepo) Add(_ context.Context, userID string, product *domain.ProductSnapshot, quantity int, sizeID string) (*domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := domain.ItemKey{ProductID: product.ID, SizeID: sizeID}
	for i, item := range r.carts[userID] {
		if item.Key() == key {
			merged, err := item.WithQuantity(item.Quantity() + quantity)
			if err != nil {
				return nil, err
			}
			r.carts[userID][i] = merged
			return merged.Copy(), nil
		}
	}

	r.nextID++
	item, err := domain.NewCartItem(domain.NewRemoteID(fmt.Sprintf("row-%d", r.nextID)), sizeID, quantity, product, r.clock.Now())
	if err != nil {
		return nil, err
	}
	r.carts[userID] = append(r.carts[userID], item)
	return item.Copy(), nil
}

func (r *CartRepo) UpdateQuantity(_ context.Context, userID, itemID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, item := range r.carts[userID] {
		if item.ID().Value() == itemID {
			updated, err := item.WithQuantity(quantity)
			if err != nil {
				return err
			}
			r.carts[userID][i] = updated
			return nil
		}
	}
	return domain.ErrItemNotFound
}

func (r *CartRepo) Remove(_ context.Context, userID, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := r.carts[userID]
	for i, item := range items {
		if item.ID().Value() == itemID {
			r.carts[userID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return domain.ErrItemNotFound
}

func (r *CartRepo) Clear(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
	return nil
}
