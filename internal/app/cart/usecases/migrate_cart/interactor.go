package migrate_cart

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/app/cart/session"
)

// Response summarizes a migration.
type Response struct {
	Promoted  int // lines now confirmed by the remote store
	Remaining int // lines still pending locally
}

// Interactor handles the authentication migration use case: pending-local lines are
// pushed to the remote store and re-tagged with the ids it assigns.
type Interactor struct {
	session *session.Session
	logger  *zap.Logger
}

// NewInteractor creates a new migrate cart interactor.
func NewInteractor(sess *session.Session, logger *zap.Logger) *Interactor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{session: sess, logger: logger}
}

// Execute migrates every pending-local line. Lines the remote store declines (the
// session is still anonymous) or fails to persist stay local; failures are joined into
// a *domain.SyncError. Promoted lines take the remote store's quantity.
func (i *Interactor) Execute(ctx context.Context) (*Response, error) {
	rec := i.session.Reconciler()
	if !rec.HasRemote() {
		return nil, &domain.TransportError{Op: "migrate", Err: domain.ErrRemoteUnavailable}
	}

	resp := &Response{}
	err := i.session.Exec(ctx, "migrate", func(ctx context.Context, cart *domain.Cart) error {
		pending := cart.LocalItems()
		var errs []error
		for idx, item := range pending {
			res, err := rec.Remote().Add(ctx, item.ProductID(), item.Quantity(), item.SizeID())
			if err != nil {
				errs = append(errs, err)
				resp.Remaining++
				continue
			}
			if !res.Persisted() {
				// Anonymous session: every remaining line would be declined too.
				resp.Remaining += len(pending) - idx
				break
			}
			if err := cart.Promote(item.ID(), res.Item.ID(), res.Item.Quantity()); err != nil {
				errs = append(errs, err)
				resp.Remaining++
				continue
			}
			resp.Promoted++
		}
		return domain.NewSyncError("migrate", errors.Join(errs...))
	})

	i.logger.Info("cart migrated",
		zap.Int("promoted", resp.Promoted),
		zap.Int("remaining", resp.Remaining),
	)
	return resp, err
}
