package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/light-bringer/cartsync-service/internal/app/cart/analytics"
	"github.com/light-bringer/cartsync-service/internal/app/cart/catalog"
	"github.com/light-bringer/cartsync-service/internal/app/cart/contracts"
	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/app/cart/queries/get_cart"
	"github.com/light-bringer/cartsync-service/internal/app/cart/reconciler"
	"github.com/light-bringer/cartsync-service/internal/app/cart/session"
	"github.com/light-bringer/cartsync-service/internal/app/cart/usecases/add_item"
	"github.com/light-bringer/cartsync-service/internal/app/cart/usecases/clear_cart"
	"github.com/light-bringer/cartsync-service/internal/app/cart/usecases/load_cart"
	"github.com/light-bringer/cartsync-service/internal/app/cart/usecases/migrate_cart"
	"github.com/light-bringer/cartsync-service/internal/app/cart/usecases/remove_item"
	"github.com/light-bringer/cartsync-service/internal/app/cart/usecases/update_quantity"
	"github.com/light-bringer/cartsync-service/internal/config"
	"github.com/light-bringer/cartsync-service/internal/pkg/clock"
	"github.com/light-bringer/cartsync-service/internal/pkg/eventbus"
	"github.com/light-bringer/cartsync-service/internal/pkg/kvstore"
	cartgrpc "github.com/light-bringer/cartsync-service/internal/transport/grpc/cart"
)

// CartClientDeps are the collaborators of a client-side cart.
type CartClientDeps struct {
	CartID        string
	Store         contracts.LocalStore
	Slot          string
	Products      contracts.ProductSnapshotProvider
	Remote        contracts.RemoteCartService // nil keeps the cart on the device
	RemoteTimeout time.Duration
	EventBuffer   int
	Clock         clock.Clock
	Logger        *zap.Logger
}

// CartClient is one client-side cart with its use cases.
type CartClient struct {
	Session *session.Session

	AddItem        *add_item.Interactor
	UpdateQuantity *update_quantity.Interactor
	RemoveItem     *remove_item.Interactor
	ClearCart      *clear_cart.Interactor
	LoadCart       *load_cart.Interactor
	MigrateCart    *migrate_cart.Interactor
	GetCart        *get_cart.Query

	bus      *eventbus.Bus[domain.DomainEvent]
	identity identity
	closers  []io.Closer
}

// identity is implemented by remote clients that can switch users mid-session.
type identity interface {
	SetUserID(userID string)
}

// NewCartClientWith wires a cart over deps and starts analytics delivery.
func NewCartClientWith(ctx context.Context, deps CartClientDeps) *CartClient {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clk := deps.Clock
	if clk == nil {
		clk = clock.NewRealClock()
	}
	cartID := deps.CartID
	if cartID == "" {
		cartID = "local"
	}

	// 1. Create backends
	local := reconciler.NewLocalBackend(deps.Store, deps.Slot, logger.Named("local"))
	var remote *reconciler.RemoteBackend
	if deps.Remote != nil {
		remote = reconciler.NewRemoteBackend(deps.Remote, deps.RemoteTimeout, logger.Named("remote"))
	}
	rec := reconciler.New(local, remote, logger.Named("reconciler"))

	// 2. Start analytics delivery
	bus := analytics.NewBus(deps.EventBuffer, logger)
	bus.Start(ctx)

	// 3. Create session
	sess := session.New(domain.NewCart(cartID, clk), rec, bus, logger)

	// 4. Create use cases
	c := &CartClient{
		Session:        sess,
		AddItem:        add_item.NewInteractor(sess, deps.Products, clk, logger),
		UpdateQuantity: update_quantity.NewInteractor(sess),
		RemoveItem:     remove_item.NewInteractor(sess),
		ClearCart:      clear_cart.NewInteractor(sess),
		LoadCart:       load_cart.NewInteractor(sess, logger),
		MigrateCart:    migrate_cart.NewInteractor(sess, logger),
		GetCart:        get_cart.NewQuery(sess),
		bus:            bus,
	}
	if id, ok := deps.Remote.(identity); ok {
		c.identity = id
	}
	return c
}

// NewCartClient opens the stores named by cfg and wires a cart over them.
func NewCartClient(ctx context.Context, cfg config.Config, logger *zap.Logger) (*CartClient, error) {
	// 1. Open the local slot store
	store, err := kvstore.OpenSQLite(cfg.LocalStore)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	// 2. Load the product catalog
	products, err := catalog.Load(cfg.Catalog)
	if err != nil {
		store.Close()
		return nil, err
	}

	// 3. Connect to the Remote Cart Service when configured
	deps := CartClientDeps{
		CartID:        cfg.UserID,
		Store:         store,
		Slot:          cfg.LocalSlot,
		Products:      products,
		RemoteTimeout: cfg.RemoteTimeout,
		EventBuffer:   cfg.EventBuffer,
		Logger:        logger,
	}
	closers := []io.Closer{store}
	if cfg.RemoteAddr != "" {
		conn, err := grpc.NewClient(cfg.RemoteAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to connect to remote cart service: %w", err)
		}
		deps.Remote = cartgrpc.NewClient(conn, cfg.UserID)
		closers = append(closers, conn)
	}

	c := NewCartClientWith(ctx, deps)
	c.closers = closers
	return c, nil
}

// SetUserID switches the user the remote store acts for. Carts without a remote ignore it.
func (c *CartClient) SetUserID(userID string) {
	if c.identity != nil {
		c.identity.SetUserID(userID)
	}
}

// Close flushes any pending write-back and releases the stores.
func (c *CartClient) Close(ctx context.Context) error {
	err := c.Session.Flush(ctx)
	c.bus.Close()
	for i := len(c.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, c.closers[i].Close())
	}
	return err
}
