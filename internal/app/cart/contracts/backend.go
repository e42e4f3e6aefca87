package contracts

import (
	"context"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
)

// CartBackend is one of the two stores behind a cart. The Reconciler holds a local
// and a remote implementation and routes each item to the one matching its id kind.
type CartBackend interface {
	// Kind is the id classification this backend owns.
	Kind() domain.IDKind

	// Load returns the items the backend currently holds.
	Load(ctx context.Context) ([]*domain.CartItem, error)

	// Commit persists the current quantity of an item owned by this backend.
	Commit(ctx context.Context, item *domain.CartItem) error

	// Discard deletes an item owned by this backend.
	Discard(ctx context.Context, id domain.ItemID) error

	// Wipe deletes everything the backend holds for this cart.
	Wipe(ctx context.Context) error
}
