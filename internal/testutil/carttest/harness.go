// Package carttest assembles a cart session over in-memory stores for use case tests.
package carttest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/app/cart/reconciler"
	"github.com/light-bringer/cartsync-service/internal/app/cart/session"
	"github.com/light-bringer/cartsync-service/internal/pkg/clock"
	"github.com/light-bringer/cartsync-service/internal/pkg/kvstore"
	"github.com/light-bringer/cartsync-service/internal/testutil"
)

// Now is the fixed time every harness clock starts at.
var Now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// Harness is a session wired to fakes the test can inspect and break.
type Harness struct {
	Clock     *clock.MockClock
	Catalog   *testutil.Catalog
	Remote    *testutil.Remote // nil when built WithoutRemote
	Store     *testutil.FlakyStore
	Publisher *testutil.Publisher
	Session   *session.Session

	withRemote bool
}

// Option customizes a Harness.
type Option func(*Harness)

// WithoutRemote builds a session that never leaves the device.
func WithoutRemote() Option {
	return func(h *Harness) { h.withRemote = false }
}

// Anonymous builds a session whose remote declines to persist.
func Anonymous() Option {
	return func(h *Harness) { h.Remote.SetAuthenticated(false) }
}

// New builds a harness with catalog products p1 (1800), p2 (1500, on sale 1300)
// and p3 (900, sizes 42 and 43).
func New(t testing.TB, opts ...Option) *Harness {
	t.Helper()

	clk := clock.NewMockClock(Now)
	catalog := testutil.NewCatalog(
		testutil.Product("p1", "Shirt", 1800),
		testutil.SaleProduct("p2", "Jacket", 1500, 1300),
		testutil.SizedProduct("p3", "Shoe", 900, "42", "43"),
	)
	h := &Harness{
		Clock:      clk,
		Catalog:    catalog,
		Remote:     testutil.NewRemote(catalog, clk),
		Store:      testutil.NewFlakyStore(kvstore.NewMemoryStore()),
		Publisher:  &testutil.Publisher{},
		withRemote: true,
	}
	for _, opt := range opts {
		opt(h)
	}
	if !h.withRemote {
		h.Remote = nil
	}
	h.Session = h.NewSession()
	return h
}

// NewSession opens another session over the same stores, as a restart would.
func (h *Harness) NewSession() *session.Session {
	var remote *reconciler.RemoteBackend
	if h.Remote != nil {
		remote = reconciler.NewRemoteBackend(h.Remote, time.Second, nil)
	}
	rec := reconciler.New(reconciler.NewLocalBackend(h.Store, "", nil), remote, nil)
	return session.New(domain.NewCart("cart-1", h.Clock), rec, h.Publisher, nil)
}

// Items returns the session's lines.
func (h *Harness) Items() []*domain.CartItem {
	var items []*domain.CartItem
	h.Session.Read(func(c *domain.Cart) { items = c.Items() })
	return items
}

// Total returns the exact cart total and item count.
func (h *Harness) Total() (string, int) {
	var total string
	var count int
	h.Session.Read(func(c *domain.Cart) {
		total = c.Total().RatString()
		count = c.ItemCount()
	})
	return total, count
}

// Find returns the line for a product and size.
func (h *Harness) Find(productID, sizeID string) (*domain.CartItem, bool) {
	var item *domain.CartItem
	var ok bool
	h.Session.Read(func(c *domain.Cart) {
		item, ok = c.FindByKey(domain.ItemKey{ProductID: productID, SizeID: sizeID})
	})
	return item, ok
}

// Seed puts a line straight into the cart, bypassing the stores.
func (h *Harness) Seed(t testing.TB, id domain.ItemID, productID string, qty int) {
	t.Helper()
	product, err := h.Catalog.Snapshot(context.Background(), productID)
	require.NoError(t, err)
	item, err := domain.NewCartItem(id, "", qty, product, h.Clock.Now())
	require.NoError(t, err)

	err = h.Session.Exec(context.Background(), "seed", func(_ context.Context, c *domain.Cart) error {
		return c.AddItem(item)
	})
	require.NoError(t, err)
	h.Publisher.Reset()
}
