package contracts

import (
	"context"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
)

// AddResult is the Remote Cart Service reply to an add.
// Exactly one field is set: Item when the line was persisted remotely,
// Product when the caller must track the line locally (unauthenticated session).
type AddResult struct {
	Item    *domain.CartItem
	Product *domain.ProductSnapshot
}

// Persisted reports whether the remote store assigned an id.
func (r *AddResult) Persisted() bool {
	return r != nil && r.Item != nil
}

// RemoteCartService is the authoritative cart store reachable over request/response calls.
// Item ids crossing this interface are always remote-classified.
type RemoteCartService interface {
	// List returns the authenticated user's cart, or an empty list when unauthenticated.
	List(ctx context.Context) ([]*domain.CartItem, error)

	// Add merges quantity into the (productID, sizeID) line. sizeID may be empty.
	Add(ctx context.Context, productID string, quantity int, sizeID string) (*AddResult, error)

	// UpdateQuantity sets the quantity of a persisted line.
	UpdateQuantity(ctx context.Context, itemID string, quantity int) error

	// Remove deletes a persisted line.
	Remove(ctx context.Context, itemID string) error

	// ClearAll deletes every persisted line of the user.
	ClearAll(ctx context.Context) error
}
