package add_item

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/light-bringer/cartsync-service/internal/app/cart/contracts"
	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/app/cart/session"
	"github.com/light-bringer/cartsync-service/internal/pkg/clock"
)

// Request contains the data needed to add a product to the cart.
type Request struct {
	ProductID string
	Quantity  int
	SizeID    string // empty when the product has no size dimension
}

// Interactor handles the add item use case.
type Interactor struct {
	session  *session.Session
	products contracts.ProductSnapshotProvider
	clock    clock.Clock
	logger   *zap.Logger
}

// NewInteractor creates a new add item interactor.
func NewInteractor(
	sess *session.Session,
	products contracts.ProductSnapshotProvider,
	clock clock.Clock,
	logger *zap.Logger,
) *Interactor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{
		session:  sess,
		products: products,
		clock:    clock,
		logger:   logger,
	}
}

// Execute adds quantity units of a product and returns the id of the line that holds them.
//
// An existing (product, size) line is merged into additively and keeps its classification.
// A new line takes the id assigned by the remote store when the remote persisted it,
// otherwise a fresh local id. A *domain.SyncError means the cart was updated but the
// remote store did not confirm the add.
func (i *Interactor) Execute(ctx context.Context, req *Request) (domain.ItemID, error) {
	// 1. Validate request
	if err := i.validate(req); err != nil {
		return domain.ItemID{}, err
	}

	// 2. Fetch the product snapshot; a missing product fails the whole add
	snapshot, err := i.products.Snapshot(ctx, req.ProductID)
	if err != nil {
		return domain.ItemID{}, fmt.Errorf("failed to load product %s: %w", req.ProductID, err)
	}
	if err := snapshot.Validate(); err != nil {
		return domain.ItemID{}, err
	}
	if !snapshot.HasSize(req.SizeID) {
		return domain.ItemID{}, domain.ErrInvalidSize
	}

	// 3. Apply under the session lock
	var id domain.ItemID
	err = i.session.Exec(ctx, "add", func(ctx context.Context, cart *domain.Cart) error {
		key := domain.ItemKey{ProductID: req.ProductID, SizeID: req.SizeID}
		if existing, ok := cart.FindByKey(key); ok {
			id = existing.ID()
			return i.merge(ctx, cart, existing, req)
		}

		var err error
		id, err = i.append(ctx, cart, snapshot, req)
		return err
	})
	return id, err
}

// merge adds to an existing line, notifying the remote store first for remote lines.
// A remote line ends with the quantity the remote store reports after its own merge.
func (i *Interactor) merge(ctx context.Context, cart *domain.Cart, existing *domain.CartItem, req *Request) error {
	var syncErr error
	remoteQty := 0
	if existing.ID().IsRemote() {
		rec := i.session.Reconciler()
		if !rec.HasRemote() {
			syncErr = &domain.TransportError{Op: "add", Err: domain.ErrRemoteUnavailable}
		} else {
			res, err := rec.Remote().Add(ctx, req.ProductID, req.Quantity, req.SizeID)
			switch {
			case err != nil:
				syncErr = err
			case !res.Persisted():
				// The remote line exists but this session may no longer write to it.
				syncErr = domain.ErrUnauthenticated
			default:
				remoteQty = res.Item.Quantity()
			}
		}
	}

	id := existing.ID()
	if err := cart.MergeQuantity(id, req.Quantity); err != nil {
		return err
	}
	if merged, ok := cart.Find(id); ok && remoteQty >= 1 && remoteQty != merged.Quantity() {
		if err := cart.SetQuantity(id, remoteQty); err != nil {
			return err
		}
	}
	return domain.NewSyncError("add", syncErr)
}

// append creates a new line.
func (i *Interactor) append(ctx context.Context, cart *domain.Cart, snapshot *domain.ProductSnapshot, req *Request) (domain.ItemID, error) {
	id := domain.NewLocalID(uuid.New().String())
	quantity := req.Quantity

	var syncErr error
	if rec := i.session.Reconciler(); rec.HasRemote() {
		res, err := rec.Remote().Add(ctx, req.ProductID, req.Quantity, req.SizeID)
		switch {
		case err != nil:
			// Track locally; a later migration can promote the line.
			syncErr = err
		case res.Persisted():
			id = res.Item.ID()
			if q := res.Item.Quantity(); q >= 1 {
				quantity = q
			}
		}
	}

	item, err := domain.NewCartItem(id, req.SizeID, quantity, snapshot, i.clock.Now())
	if err != nil {
		return domain.ItemID{}, err
	}
	if err := cart.AddItem(item); err != nil {
		return domain.ItemID{}, err
	}

	i.logger.Debug("cart line created",
		zap.String("item_id", id.String()),
		zap.String("product_id", req.ProductID),
		zap.Int("quantity", quantity),
	)
	return id, domain.NewSyncError("add", syncErr)
}

// validate validates the request.
func (i *Interactor) validate(req *Request) error {
	if req == nil || req.ProductID == "" {
		return domain.ErrInvalidProductID
	}
	if req.Quantity < 1 {
		return domain.ErrInvalidQuantity
	}
	return nil
}
