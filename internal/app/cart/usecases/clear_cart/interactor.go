package clear_cart

import (
	"context"
	"errors"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/app/cart/session"
)

// Interactor handles the clear cart use case.
type Interactor struct {
	session *session.Session
}

// NewInteractor creates a new clear cart interactor.
func NewInteractor(sess *session.Session) *Interactor {
	return &Interactor{session: sess}
}

// Execute empties the cart unconditionally, then clears the local slot and the remote
// cart independently of each other. Store failures come back joined in one
// *domain.SyncError; they never undo the in-memory clear.
func (i *Interactor) Execute(ctx context.Context) error {
	return i.session.Exec(ctx, "clear", func(ctx context.Context, cart *domain.Cart) error {
		cart.Clear()

		rec := i.session.Reconciler()
		localErr := rec.Local().Wipe(ctx)

		var remoteErr error
		if rec.HasRemote() {
			remoteErr = rec.Remote().Wipe(ctx)
		}

		return domain.NewSyncError("clear", errors.Join(localErr, remoteErr))
	})
}
