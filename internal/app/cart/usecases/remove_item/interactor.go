package remove_item

import (
	"context"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/app/cart/session"
)

// Request identifies the line to remove.
type Request struct {
	ItemID domain.ItemID
}

// Interactor handles the remove item use case.
type Interactor struct {
	session *session.Session
}

// NewInteractor creates a new remove item interactor.
func NewInteractor(sess *session.Session) *Interactor {
	return &Interactor{session: sess}
}

// Execute removes a line optimistically: the in-memory delete always stands, and a
// failed delete on the owning store is reported as a *domain.SyncError.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	if req == nil || req.ItemID.IsZero() {
		return domain.ErrInvalidItemID
	}

	return i.session.Exec(ctx, "remove", func(ctx context.Context, cart *domain.Cart) error {
		if _, err := cart.Remove(req.ItemID); err != nil {
			return err
		}

		backend, err := i.session.Reconciler().Route(req.ItemID)
		if err != nil {
			return domain.NewSyncError("remove", err)
		}
		return domain.NewSyncError("remove", backend.Discard(ctx, req.ItemID))
	})
}
