package contracts

import (
	"context"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
)

// CartRepository is the server-side persistence behind the Remote Cart Service.
// Every call is scoped to one authenticated user.
type CartRepository interface {
	// List returns the user's lines ordered by time added.
	List(ctx context.Context, userID string) ([]*domain.CartItem, error)

	// Add merges quantity into the user's (product, size) line, creating it if needed,
	// and returns the resulting line.
	Add(ctx context.Context, userID string, product *domain.ProductSnapshot, quantity int, sizeID string) (*domain.CartItem, error)

	// UpdateQuantity sets a line's quantity. Returns domain.ErrItemNotFound for unknown lines.
	UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error

	// Remove deletes a line. Returns domain.ErrItemNotFound for unknown lines.
	Remove(ctx context.Context, userID, itemID string) error

	// Clear deletes all of the user's lines.
	Clear(ctx context.Context, userID string) error
}
