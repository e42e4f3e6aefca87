package contracts

import (
	"context"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
)

// ProductSnapshotProvider supplies read-only product data at add time.
type ProductSnapshotProvider interface {
	// Snapshot returns domain.ErrProductNotFound for unknown ids.
	Snapshot(ctx context.Context, productID string) (*domain.ProductSnapshot, error)
}
