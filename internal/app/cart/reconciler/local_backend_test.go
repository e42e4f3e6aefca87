package reconciler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/models/m_local_cart"
	"github.com/light-bringer/cartsync-service/internal/pkg/kvstore"
	"github.com/light-bringer/cartsync-service/internal/testutil"
)

var addedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func item(t *testing.T, id domain.ItemID, p *domain.ProductSnapshot, sizeID string, qty int) *domain.CartItem {
	t.Helper()
	it, err := domain.NewCartItem(id, sizeID, qty, p, addedAt)
	require.NoError(t, err)
	return it
}

func newLocal() (*LocalBackend, *testutil.FlakyStore) {
	store := testutil.NewFlakyStore(kvstore.NewMemoryStore())
	return NewLocalBackend(store, "", nil), store
}

func TestLocalBackend_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	backend, _ := newLocal()

	sale := testutil.SaleProduct("p2", "Jacket", 1500, 1300)
	sale.Images = []string{"front.png"}
	sized := testutil.SizedProduct("p3", "Shoe", 37, "42", "43")
	sized.Price = domain.MustMoney(37, 2)

	items := []*domain.CartItem{
		item(t, domain.NewLocalID("a"), sale, "", 1),
		item(t, domain.NewRemoteID("r"), testutil.Product("p1", "Shirt", 1800), "", 3),
		item(t, domain.NewLocalID("b"), sized, "42", 2),
	}
	require.NoError(t, backend.Save(ctx, items))

	loaded, err := backend.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2, "only local-classified lines are persisted")

	assert.Equal(t, domain.NewLocalID("a"), loaded[0].ID())
	assert.Equal(t, "1300", loaded[0].UnitPrice().RatString())
	assert.Equal(t, []string{"front.png"}, loaded[0].Product().Images)
	assert.Equal(t, addedAt, loaded[0].AddedAt())

	assert.Equal(t, domain.NewLocalID("b"), loaded[1].ID())
	assert.Equal(t, "42", loaded[1].SizeID())
	assert.Equal(t, "37/2", loaded[1].UnitPrice().RatString())
	assert.Equal(t, 2, loaded[1].Quantity())
	assert.Len(t, loaded[1].Product().SizeOptions, 2)
}

func TestLocalBackend_SkipsUnchangedWrites(t *testing.T) {
	ctx := context.Background()
	backend, store := newLocal()
	items := []*domain.CartItem{item(t, domain.NewLocalID("a"), testutil.Product("p1", "Shirt", 1800), "", 1)}

	require.NoError(t, backend.Save(ctx, items))
	require.NoError(t, backend.Save(ctx, items))
	assert.Equal(t, 1, store.Puts())

	items[0], _ = items[0].WithQuantity(2)
	require.NoError(t, backend.Save(ctx, items))
	assert.Equal(t, 2, store.Puts())
}

func TestLocalBackend_EmptySubsetDeletesSlot(t *testing.T) {
	ctx := context.Background()
	backend, store := newLocal()

	require.NoError(t, backend.Save(ctx, []*domain.CartItem{item(t, domain.NewLocalID("a"), testutil.Product("p1", "Shirt", 1800), "", 1)}))
	require.NoError(t, backend.Save(ctx, nil))
	require.NoError(t, backend.Save(ctx, nil))

	assert.Equal(t, 1, store.Deletes(), "second empty save is skipped")
	_, ok, err := store.Get(ctx, m_local_cart.Slot)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalBackend_FailedWriteIsRetried(t *testing.T) {
	ctx := context.Background()
	backend, store := newLocal()
	items := []*domain.CartItem{item(t, domain.NewLocalID("a"), testutil.Product("p1", "Shirt", 1800), "", 1)}

	store.FailPut(errors.New("disk full"))
	assert.Error(t, backend.Save(ctx, items))

	store.FailPut(nil)
	require.NoError(t, backend.Save(ctx, items))
	assert.Equal(t, 1, store.Puts())
}

func TestLocalBackend_CorruptSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("unparsable payload loads as empty", func(t *testing.T) {
		backend, store := newLocal()
		require.NoError(t, store.Put(ctx, m_local_cart.Slot, []byte(`{not json`)))

		items, err := backend.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("invalid records are skipped", func(t *testing.T) {
		backend, store := newLocal()
		payload := `[
			{"id":"a","productId":"p1","quantity":1,"product":{"id":"p1","name":"Shirt","price":"1800"}},
			{"id":"b","productId":"p2","quantity":0,"product":{"id":"p2","name":"Zero","price":"10"}},
			{"id":"c","productId":"p3","quantity":1,"product":{"id":"p3","name":"Bad","price":"abc"}}
		]`
		require.NoError(t, store.Put(ctx, m_local_cart.Slot, []byte(payload)))

		items, err := backend.Load(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, domain.NewLocalID("a"), items[0].ID())
	})

	t.Run("records sharing an id get distinct ids", func(t *testing.T) {
		backend, store := newLocal()
		payload := `[
			{"id":"a","productId":"p1","quantity":1,"product":{"id":"p1","name":"Shirt","price":"1800"}},
			{"id":"a","productId":"p2","quantity":2,"product":{"id":"p2","name":"Jacket","price":"1500"}}
		]`
		require.NoError(t, store.Put(ctx, m_local_cart.Slot, []byte(payload)))

		items, err := backend.Load(ctx)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, domain.NewLocalID("a"), items[0].ID())
		assert.NotEqual(t, items[0].ID(), items[1].ID())
		assert.True(t, items[1].ID().IsLocal())
		assert.Equal(t, "p2", items[1].ProductID())
	})

	t.Run("store read failure is reported", func(t *testing.T) {
		backend, store := newLocal()
		store.FailGet(errors.New("io error"))

		_, err := backend.Load(ctx)
		assert.Error(t, err)
	})
}

func TestLocalBackend_SaveAfterFailedRead(t *testing.T) {
	ctx := context.Background()
	backend, store := newLocal()
	shirt := testutil.Product("p1", "Shirt", 1800)
	jacket := testutil.Product("p2", "Jacket", 1500)

	require.NoError(t, backend.Save(ctx, []*domain.CartItem{item(t, domain.NewLocalID("a"), shirt, "", 2)}))

	store.FailGet(errors.New("database is locked"))
	_, err := backend.Load(ctx)
	require.Error(t, err)

	t.Run("nothing is written while the slot stays unreadable", func(t *testing.T) {
		assert.Error(t, backend.Save(ctx, nil))
		assert.Zero(t, store.Deletes())
	})

	t.Run("once readable the stored lines are kept", func(t *testing.T) {
		store.FailGet(nil)
		require.NoError(t, backend.Save(ctx, []*domain.CartItem{item(t, domain.NewLocalID("b"), jacket, "", 1)}))

		loaded, err := backend.Load(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 2)
		assert.Equal(t, domain.NewLocalID("b"), loaded[0].ID())
		assert.Equal(t, domain.NewLocalID("a"), loaded[1].ID())
		assert.Equal(t, 2, loaded[1].Quantity())
	})
}

func TestLocalBackend_CommitAndDiscard(t *testing.T) {
	ctx := context.Background()
	backend, _ := newLocal()
	shirt := testutil.Product("p1", "Shirt", 1800)

	a := item(t, domain.NewLocalID("a"), shirt, "", 1)
	require.NoError(t, backend.Commit(ctx, a))

	a2, err := a.WithQuantity(4)
	require.NoError(t, err)
	require.NoError(t, backend.Commit(ctx, a2))

	loaded, err := backend.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 4, loaded[0].Quantity())

	require.NoError(t, backend.Discard(ctx, a.ID()))
	loaded, err = backend.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)

	remote := item(t, domain.NewRemoteID("r"), shirt, "", 1)
	assert.ErrorIs(t, backend.Commit(ctx, remote), domain.ErrWrongBackend)
	assert.ErrorIs(t, backend.Discard(ctx, remote.ID()), domain.ErrWrongBackend)
}
