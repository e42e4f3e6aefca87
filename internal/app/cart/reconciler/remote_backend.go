package reconciler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/light-bringer/cartsync-service/internal/app/cart/contracts"
	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
)

// DefaultRemoteTimeout bounds every Remote Cart Service call when none is configured.
const DefaultRemoteTimeout = 5 * time.Second

// RemoteBackend adapts a RemoteCartService to the CartBackend contract.
// Each call runs under its own timeout and every failure, timeouts included,
// comes back as a *domain.TransportError.
type RemoteBackend struct {
	svc     contracts.RemoteCartService
	timeout time.Duration
	logger  *zap.Logger
}

var _ contracts.CartBackend = (*RemoteBackend)(nil)

// NewRemoteBackend wraps svc. A non-positive timeout uses DefaultRemoteTimeout.
func NewRemoteBackend(svc contracts.RemoteCartService, timeout time.Duration, logger *zap.Logger) *RemoteBackend {
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RemoteBackend{svc: svc, timeout: timeout, logger: logger}
}

// Kind reports the classification this backend owns.
func (b *RemoteBackend) Kind() domain.IDKind { return domain.KindRemote }

// Load lists the remote cart.
func (b *RemoteBackend) Load(ctx context.Context) ([]*domain.CartItem, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	items, err := b.svc.List(ctx)
	if err != nil {
		return nil, b.fail("list", err)
	}

	out := make([]*domain.CartItem, 0, len(items))
	for _, item := range items {
		if item == nil || !item.ID().IsRemote() {
			b.logger.Warn("ignoring remote cart line without a remote id")
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

// Add asks the remote store to persist quantity units of a product.
func (b *RemoteBackend) Add(ctx context.Context, productID string, quantity int, sizeID string) (*contracts.AddResult, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	res, err := b.svc.Add(ctx, productID, quantity, sizeID)
	if err != nil {
		return nil, b.fail("add", err)
	}
	if res == nil {
		return &contracts.AddResult{}, nil
	}
	if res.Item != nil && !res.Item.ID().IsRemote() {
		return nil, b.fail("add", domain.ErrInvalidItemID)
	}
	return res, nil
}

// Commit pushes an item's quantity to the remote store.
func (b *RemoteBackend) Commit(ctx context.Context, item *domain.CartItem) error {
	if !item.ID().IsRemote() {
		return domain.ErrWrongBackend
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	if err := b.svc.UpdateQuantity(ctx, item.ID().Value(), item.Quantity()); err != nil {
		return b.fail("update_quantity", err)
	}
	return nil
}

// Discard deletes an item from the remote store.
func (b *RemoteBackend) Discard(ctx context.Context, id domain.ItemID) error {
	if !id.IsRemote() {
		return domain.ErrWrongBackend
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	if err := b.svc.Remove(ctx, id.Value()); err != nil {
		return b.fail("remove", err)
	}
	return nil
}

// Wipe clears the remote cart.
func (b *RemoteBackend) Wipe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	if err := b.svc.ClearAll(ctx); err != nil {
		return b.fail("clear_all", err)
	}
	return nil
}

func (b *RemoteBackend) fail(op string, err error) error {
	b.logger.Warn("remote cart call failed", zap.String("op", op), zap.Error(err))
	return &domain.TransportError{Op: op, Err: err}
}
