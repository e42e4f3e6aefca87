package add_item_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/app/cart/usecases/add_item"
	"github.com/light-bringer/cartsync-service/internal/testutil"
	"github.com/light-bringer/cartsync-service/internal/testutil/carttest"
)

func newInteractor(h *carttest.Harness) *add_item.Interactor {
	return add_item.NewInteractor(h.Session, h.Catalog, h.Clock, nil)
}

func TestAddItem_Authenticated(t *testing.T) {
	ctx := context.Background()
	h := carttest.New(t)
	uc := newInteractor(h)

	t.Run("new line takes the remote id", func(t *testing.T) {
		id, err := uc.Execute(ctx, &add_item.Request{ProductID: "p1", Quantity: 3})
		require.NoError(t, err)
		assert.True(t, id.IsRemote())

		total, count := h.Total()
		assert.Equal(t, "5400", total)
		assert.Equal(t, 3, count)
		assert.Equal(t, map[string]int{"p1": 3}, h.Remote.Quantities())
		assert.Equal(t, 0, h.Store.Puts(), "remote lines never touch the local slot")
	})

	t.Run("repeat add merges into the same line", func(t *testing.T) {
		first, _ := h.Find("p1", "")
		id, err := uc.Execute(ctx, &add_item.Request{ProductID: "p1", Quantity: 2})
		require.NoError(t, err)
		assert.Equal(t, first.ID(), id)

		item, ok := h.Find("p1", "")
		require.True(t, ok)
		assert.Equal(t, 5, item.Quantity())
		assert.Len(t, h.Items(), 1)
		assert.Equal(t, map[string]int{"p1": 5}, h.Remote.Quantities())
	})

	t.Run("publishes added events", func(t *testing.T) {
		events := h.Publisher.Events()
		require.Len(t, events, 2)
		second := events[1].(*domain.ItemAddedEvent)
		assert.True(t, second.Merged)
		assert.Equal(t, 2, second.Quantity)
		assert.Equal(t, "1800", second.Price)
	})
}

func TestAddItem_Anonymous(t *testing.T) {
	ctx := context.Background()
	h := carttest.New(t, carttest.Anonymous())
	uc := newInteractor(h)

	id, err := uc.Execute(ctx, &add_item.Request{ProductID: "p2", Quantity: 1})
	require.NoError(t, err)
	assert.True(t, id.IsLocal())

	total, _ := h.Total()
	assert.Equal(t, "1300", total)
	assert.Equal(t, 1, h.Store.Puts(), "local line is written back")
	assert.Empty(t, h.Remote.Quantities())

	// Merging into a local line stays on the device.
	_, err = uc.Execute(ctx, &add_item.Request{ProductID: "p2", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, h.Remote.Count(testutil.OpAdd))
	assert.Equal(t, 2, h.Store.Puts())
}

func TestAddItem_RemoteFailure(t *testing.T) {
	ctx := context.Background()

	t.Run("new line is tracked locally", func(t *testing.T) {
		h := carttest.New(t)
		h.Remote.Fail(testutil.OpAdd, errors.New("503"))

		id, err := newInteractor(h).Execute(ctx, &add_item.Request{ProductID: "p1", Quantity: 1})
		require.Error(t, err)
		assert.True(t, domain.IsSyncError(err))
		assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
		assert.True(t, id.IsLocal())

		item, ok := h.Find("p1", "")
		require.True(t, ok)
		assert.Equal(t, domain.StatePendingLocal, item.State())
		assert.Equal(t, 1, h.Store.Puts())
	})

	t.Run("merge into a remote line still applies", func(t *testing.T) {
		h := carttest.New(t)
		uc := newInteractor(h)
		_, err := uc.Execute(ctx, &add_item.Request{ProductID: "p1", Quantity: 1})
		require.NoError(t, err)

		h.Remote.Fail(testutil.OpAdd, errors.New("timeout"))
		_, err = uc.Execute(ctx, &add_item.Request{ProductID: "p1", Quantity: 4})
		assert.True(t, domain.IsSyncError(err))

		item, _ := h.Find("p1", "")
		assert.Equal(t, 5, item.Quantity())
		assert.True(t, item.ID().IsRemote())
	})

	t.Run("merge the remote declines is reported", func(t *testing.T) {
		h := carttest.New(t)
		uc := newInteractor(h)
		_, err := uc.Execute(ctx, &add_item.Request{ProductID: "p1", Quantity: 1})
		require.NoError(t, err)

		h.Remote.SetAuthenticated(false)
		_, err = uc.Execute(ctx, &add_item.Request{ProductID: "p1", Quantity: 2})
		assert.True(t, domain.IsSyncError(err))
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)

		item, _ := h.Find("p1", "")
		assert.Equal(t, 3, item.Quantity())
		assert.Equal(t, map[string]int{"p1": 1}, h.Remote.Quantities())
	})

	t.Run("merge takes the remote quantity", func(t *testing.T) {
		h := carttest.New(t)
		uc := newInteractor(h)
		_, err := uc.Execute(ctx, &add_item.Request{ProductID: "p1", Quantity: 1})
		require.NoError(t, err)

		_, err = h.Remote.Add(ctx, "p1", 4, "") // from another device
		require.NoError(t, err)

		_, err = uc.Execute(ctx, &add_item.Request{ProductID: "p1", Quantity: 2})
		require.NoError(t, err)

		item, _ := h.Find("p1", "")
		assert.Equal(t, 7, item.Quantity())
		assert.Equal(t, map[string]int{"p1": 7}, h.Remote.Quantities())
	})
}

func TestAddItem_Rejections(t *testing.T) {
	ctx := context.Background()
	h := carttest.New(t)
	uc := newInteractor(h)

	tests := []struct {
		name string
		req  *add_item.Request
		want error
	}{
		{"unknown product", &add_item.Request{ProductID: "nope", Quantity: 1}, domain.ErrProductNotFound},
		{"zero quantity", &add_item.Request{ProductID: "p1", Quantity: 0}, domain.ErrInvalidQuantity},
		{"negative quantity", &add_item.Request{ProductID: "p1", Quantity: -1}, domain.ErrInvalidQuantity},
		{"missing product id", &add_item.Request{Quantity: 1}, domain.ErrInvalidProductID},
		{"size not offered", &add_item.Request{ProductID: "p3", Quantity: 1, SizeID: "44"}, domain.ErrInvalidSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.False(t, domain.IsSyncError(err))
		})
	}

	assert.Empty(t, h.Items(), "rejected adds leave the cart untouched")
	assert.Zero(t, h.Remote.Count(testutil.OpAdd))
	assert.Empty(t, h.Publisher.Events())
}

func TestAddItem_SizesAreSeparateLines(t *testing.T) {
	ctx := context.Background()
	h := carttest.New(t)
	uc := newInteractor(h)

	_, err := uc.Execute(ctx, &add_item.Request{ProductID: "p3", Quantity: 1, SizeID: "42"})
	require.NoError(t, err)
	_, err = uc.Execute(ctx, &add_item.Request{ProductID: "p3", Quantity: 1, SizeID: "43"})
	require.NoError(t, err)

	assert.Len(t, h.Items(), 2)
	assert.Equal(t, map[string]int{"p3/42": 1, "p3/43": 1}, h.Remote.Quantities())
}

func TestAddItem_WithoutRemote(t *testing.T) {
	h := carttest.New(t, carttest.WithoutRemote())

	id, err := newInteractor(h).Execute(context.Background(), &add_item.Request{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	assert.True(t, id.IsLocal())
	assert.Equal(t, 1, h.Store.Puts())
}

func TestAddItem_ConcurrentAddsMerge(t *testing.T) {
	ctx := context.Background()
	h := carttest.New(t)
	uc := newInteractor(h)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(ctx, &add_item.Request{ProductID: "p1", Quantity: 1})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	items := h.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 10, items[0].Quantity())
	assert.Equal(t, map[string]int{"p1": 10}, h.Remote.Quantities())
}
