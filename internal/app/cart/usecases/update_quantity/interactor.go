package update_quantity

import (
	"context"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/app/cart/session"
)

// Request contains the data needed to set a line's quantity.
type Request struct {
	ItemID   domain.ItemID
	Quantity int // must be at least 1; use remove_item to drop a line
}

// Interactor handles the update quantity use case.
type Interactor struct {
	session *session.Session
}

// NewInteractor creates a new update quantity interactor.
func NewInteractor(sess *session.Session) *Interactor {
	return &Interactor{session: sess}
}

// Execute sets the quantity of a line.
//
// The call is routed by the id's classification. The owning store is called first and
// the in-memory line is updated once that call resolves, whether or not it succeeded;
// a failed store call surfaces as a *domain.SyncError.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	// 1. Validate request
	if req == nil || req.ItemID.IsZero() {
		return domain.ErrInvalidItemID
	}
	if req.Quantity < 1 {
		return domain.ErrInvalidQuantity
	}

	// 2. Route and apply
	return i.session.Exec(ctx, "update_quantity", func(ctx context.Context, cart *domain.Cart) error {
		item, ok := cart.Find(req.ItemID)
		if !ok {
			return domain.ErrItemNotFound
		}
		updated, err := item.WithQuantity(req.Quantity)
		if err != nil {
			return err
		}

		var syncErr error
		backend, err := i.session.Reconciler().Route(req.ItemID)
		if err != nil {
			syncErr = err
		} else {
			syncErr = backend.Commit(ctx, updated)
		}

		if err := cart.SetQuantity(req.ItemID, req.Quantity); err != nil {
			return err
		}
		return domain.NewSyncError("update_quantity", syncErr)
	})
}
