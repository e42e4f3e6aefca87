package migrate_cart_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/app/cart/usecases/add_item"
	"github.com/light-bringer/cartsync-service/internal/app/cart/usecases/load_cart"
	"github.com/light-bringer/cartsync-service/internal/app/cart/usecases/migrate_cart"
	"github.com/light-bringer/cartsync-service/internal/models/m_local_cart"
	"github.com/light-bringer/cartsync-service/internal/testutil"
	"github.com/light-bringer/cartsync-service/internal/testutil/carttest"
)

// anonymousCart adds p1×1 and p2×2 while signed out.
func anonymousCart(t *testing.T) *carttest.Harness {
	h := carttest.New(t, carttest.Anonymous())
	add := add_item.NewInteractor(h.Session, h.Catalog, h.Clock, nil)
	for _, req := range []*add_item.Request{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", Quantity: 2},
	} {
		id, err := add.Execute(context.Background(), req)
		require.NoError(t, err)
		require.True(t, id.IsLocal())
	}
	h.Publisher.Reset()
	return h
}

func TestMigrateCart_AfterSignIn(t *testing.T) {
	ctx := context.Background()
	h := anonymousCart(t)
	h.Remote.SetAuthenticated(true)

	resp, err := migrate_cart.NewInteractor(h.Session, nil).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Promoted)
	assert.Zero(t, resp.Remaining)

	for _, item := range h.Items() {
		assert.Equal(t, domain.StateConfirmedRemote, item.State())
	}
	assert.Equal(t, map[string]int{"p1": 1, "p2": 2}, h.Remote.Quantities())
	assert.Equal(t, []string{"cart.item.promoted", "cart.item.promoted"}, h.Publisher.Types())

	_, ok, err := h.Store.Get(ctx, m_local_cart.Slot)
	require.NoError(t, err)
	assert.False(t, ok, "nothing local is left to persist")

	// The next load adopts the remote cart with the same contents.
	h.Session = h.NewSession()
	_, err = load_cart.NewInteractor(h.Session, nil).Execute(ctx)
	require.NoError(t, err)
	total, count := h.Total()
	assert.Equal(t, "4400", total)
	assert.Equal(t, 3, count)
}

func TestMigrateCart_TakesRemoteQuantity(t *testing.T) {
	ctx := context.Background()
	h := anonymousCart(t)
	h.Remote.SetAuthenticated(true)
	_, err := h.Remote.Add(ctx, "p1", 4, "") // left over from another device
	require.NoError(t, err)

	_, err = migrate_cart.NewInteractor(h.Session, nil).Execute(ctx)
	require.NoError(t, err)

	item, ok := h.Find("p1", "")
	require.True(t, ok)
	assert.Equal(t, 5, item.Quantity())
}

func TestMigrateCart_StillAnonymous(t *testing.T) {
	h := anonymousCart(t)

	resp, err := migrate_cart.NewInteractor(h.Session, nil).Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, resp.Promoted)
	assert.Equal(t, 2, resp.Remaining)
	for _, item := range h.Items() {
		assert.True(t, item.ID().IsLocal())
	}
}

func TestMigrateCart_RemoteFailureKeepsLinesLocal(t *testing.T) {
	h := anonymousCart(t)
	h.Remote.SetAuthenticated(true)
	h.Remote.Fail(testutil.OpAdd, errors.New("503"))

	resp, err := migrate_cart.NewInteractor(h.Session, nil).Execute(context.Background())
	assert.True(t, domain.IsSyncError(err))
	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
	assert.Equal(t, 2, resp.Remaining)

	persisted, err := h.Session.Reconciler().Local().Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, persisted, 2, "unmigrated lines stay in the slot")
}

func TestMigrateCart_WithoutRemote(t *testing.T) {
	h := carttest.New(t, carttest.WithoutRemote())

	_, err := migrate_cart.NewInteractor(h.Session, nil).Execute(context.Background())
	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
	assert.False(t, domain.IsSyncError(err))
}
