package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/models/m_local_cart"
	"github.com/light-bringer/cartsync-service/internal/testutil/carttest"
)

func addLocal(id string, product *domain.ProductSnapshot, qty int) func(context.Context, *domain.Cart) error {
	return func(_ context.Context, c *domain.Cart) error {
		item, err := domain.NewCartItem(domain.NewLocalID(id), "", qty, product, carttest.Now)
		if err != nil {
			return err
		}
		return c.AddItem(item)
	}
}

func TestSession_Exec(t *testing.T) {
	ctx := context.Background()
	shirt, err := carttest.New(t).Catalog.Snapshot(ctx, "p1")
	require.NoError(t, err)

	t.Run("commits, writes back and publishes", func(t *testing.T) {
		h := carttest.New(t)
		require.NoError(t, h.Session.Exec(ctx, "add", addLocal("a", shirt, 1)))

		assert.Equal(t, []string{"cart.item.added"}, h.Publisher.Types())
		assert.Equal(t, 1, h.Store.Puts())
	})

	t.Run("a failed transition publishes nothing", func(t *testing.T) {
		h := carttest.New(t)
		err := h.Session.Exec(ctx, "add", func(_ context.Context, c *domain.Cart) error {
			return domain.ErrInvalidQuantity
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
		assert.Empty(t, h.Publisher.Events())
		assert.Zero(t, h.Store.Puts())
	})

	t.Run("a sync error still commits", func(t *testing.T) {
		h := carttest.New(t)
		lag := domain.NewSyncError("add", errors.New("remote lag"))
		err := h.Session.Exec(ctx, "add", func(ctx context.Context, c *domain.Cart) error {
			if err := addLocal("a", shirt, 1)(ctx, c); err != nil {
				return err
			}
			return lag
		})
		assert.ErrorIs(t, err, lag)
		assert.Len(t, h.Items(), 1)
		assert.Equal(t, []string{"cart.item.added"}, h.Publisher.Types())
	})
}

func TestSession_WriteBackFailure(t *testing.T) {
	ctx := context.Background()
	h := carttest.New(t)
	shirt, err := h.Catalog.Snapshot(ctx, "p1")
	require.NoError(t, err)

	h.Store.FailPut(errors.New("disk full"))
	err = h.Session.Exec(ctx, "add", addLocal("a", shirt, 2))
	require.Error(t, err)
	assert.True(t, domain.IsSyncError(err))
	assert.Len(t, h.Items(), 1, "the in-memory add stands")

	h.Store.FailPut(nil)
	require.NoError(t, h.Session.Flush(ctx))

	raw, ok, err := h.Store.Get(ctx, m_local_cart.Slot)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, string(raw), `"productId":"p1"`)

	require.NoError(t, h.Session.Flush(ctx))
	assert.Equal(t, 1, h.Store.Puts(), "a clean flush writes nothing")
}

func TestSession_IsLoading(t *testing.T) {
	h := carttest.New(t)
	assert.False(t, h.Session.IsLoading())
	h.Session.SetLoading(true)
	assert.True(t, h.Session.IsLoading())
	h.Session.SetLoading(false)
	assert.False(t, h.Session.IsLoading())
}
