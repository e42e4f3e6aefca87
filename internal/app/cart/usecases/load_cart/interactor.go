package load_cart

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/app/cart/reconciler"
	"github.com/light-bringer/cartsync-service/internal/app/cart/session"
)

// Response describes which store the cart was loaded from.
type Response struct {
	Source reconciler.Source
	Items  int
}

// Interactor handles the load cart use case.
type Interactor struct {
	session *session.Session
	logger  *zap.Logger
}

// NewInteractor creates a new load cart interactor.
func NewInteractor(sess *session.Session, logger *zap.Logger) *Interactor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{session: sess, logger: logger}
}

// Execute reconciles the cart with its stores and replaces the in-memory items.
// The load itself never fails; a remote or local read failure is surfaced as a
// *domain.SyncError alongside the adopted cart.
func (i *Interactor) Execute(ctx context.Context) (*Response, error) {
	i.session.SetLoading(true)
	defer i.session.SetLoading(false)

	resp := &Response{}
	err := i.session.Exec(ctx, "load", func(ctx context.Context, cart *domain.Cart) error {
		cart.BeginLoad()
		res := i.session.Reconciler().Load(ctx)
		cart.Replace(res.Items)
		if res.LocalErr != nil {
			// The slot could not be read, so there is nothing to write back over it.
			cart.Changes().Reset(domain.FieldLocalItems)
		}

		resp.Source = res.Source
		resp.Items = cart.Len()
		return domain.NewSyncError("load", errors.Join(res.RemoteErr, res.LocalErr))
	})

	i.logger.Info("cart loaded",
		zap.String("source", string(resp.Source)),
		zap.Int("items", resp.Items),
		zap.Bool("degraded", err != nil),
	)
	return resp, err
}
