// Package reconciler decides which store is authoritative for a cart and routes
// per-item calls to the store that owns each item.
//
// Load policy: the remote cart wins when it is non-empty; otherwise the local slot is
// adopted. Non-empty remote and local carts are never merged on load, so anonymous
// lines are abandoned unless the caller migrates them before loading.
package reconciler

import (
	"context"

	"go.uber.org/zap"

	"github.com/light-bringer/cartsync-service/internal/app/cart/contracts"
	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
)

// Source names the store a load adopted.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// LoadResult is the outcome of a reconciliation.
// RemoteErr and LocalErr are reported for observability; they never fail the load.
type LoadResult struct {
	Items     []*domain.CartItem
	Source    Source
	RemoteErr error
	LocalErr  error
}

// Reconciler holds the two backends of a cart.
type Reconciler struct {
	local  *LocalBackend
	remote *RemoteBackend
	logger *zap.Logger
}

// New creates a Reconciler. remote may be nil for carts that never leave the device.
func New(local *LocalBackend, remote *RemoteBackend, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{local: local, remote: remote, logger: logger}
}

func (r *Reconciler) Local() *LocalBackend   { return r.local }
func (r *Reconciler) Remote() *RemoteBackend { return r.remote }
func (r *Reconciler) HasRemote() bool        { return r.remote != nil }

// Route returns the backend that owns id.
func (r *Reconciler) Route(id domain.ItemID) (contracts.CartBackend, error) {
	switch id.Kind() {
	case domain.KindLocal:
		return r.local, nil
	case domain.KindRemote:
		if r.remote == nil {
			return nil, &domain.TransportError{Op: "route", Err: domain.ErrRemoteUnavailable}
		}
		return r.remote, nil
	default:
		return nil, domain.ErrInvalidItemID
	}
}

// Load reconciles the two stores.
func (r *Reconciler) Load(ctx context.Context) *LoadResult {
	res := &LoadResult{}

	if r.remote != nil {
		items, err := r.remote.Load(ctx)
		switch {
		case err != nil:
			res.RemoteErr = err
			r.logger.Warn("remote cart unavailable, falling back to local cart", zap.Error(err))
		case len(items) > 0:
			res.Items = items
			res.Source = SourceRemote
			r.logger.Debug("adopted remote cart", zap.Int("items", len(items)))
			return res
		}
	}

	items, err := r.local.Load(ctx)
	if err != nil {
		res.LocalErr = err
		r.logger.Warn("local cart unreadable, starting empty", zap.Error(err))
		items = []*domain.CartItem{}
	}
	res.Items = items
	res.Source = SourceLocal
	r.logger.Debug("adopted local cart", zap.Int("items", len(items)))
	return res
}
