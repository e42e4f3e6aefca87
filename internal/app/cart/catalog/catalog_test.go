package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
)

const sample = `
products:
  - id: p1
    name: Shirt
    price: "1800"
    stock: 10
  - id: p2
    name: Jacket
    price: "1500"
    sale_price: "1300"
    stock: 3
  - id: p3
    name: Shoe
    price: "37/2"
    stock: 5
    sizes:
      - {id: "42", name: "EU 42"}
      - {id: "43"}
    images: [shoe.jpg]
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sample))
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("regular product", func(t *testing.T) {
		p, err := c.Snapshot(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "Shirt", p.Name)
		assert.True(t, p.UnitPrice().Equals(domain.MustMoney(1800, 1)))
		assert.Nil(t, p.SalePrice)
	})

	t.Run("sale price wins", func(t *testing.T) {
		p, err := c.Snapshot(ctx, "p2")
		require.NoError(t, err)
		assert.True(t, p.UnitPrice().Equals(domain.MustMoney(1300, 1)))
	})

	t.Run("fractional price and sizes", func(t *testing.T) {
		p, err := c.Snapshot(ctx, "p3")
		require.NoError(t, err)
		assert.True(t, p.Price.Equals(domain.MustMoney(37, 2)))
		assert.Equal(t, []domain.SizeOption{{ID: "42", Name: "EU 42"}, {ID: "43", Name: "43"}}, p.SizeOptions)
		assert.Equal(t, []string{"shoe.jpg"}, p.Images)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := c.Snapshot(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("snapshots are copies", func(t *testing.T) {
		p, err := c.Snapshot(ctx, "p1")
		require.NoError(t, err)
		p.Name = "changed"

		again, err := c.Snapshot(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "Shirt", again.Name)
	})

	t.Run("products keep file order", func(t *testing.T) {
		var ids []string
		for _, p := range c.Products() {
			ids = append(ids, p.ID)
		}
		assert.Equal(t, []string{"p1", "p2", "p3"}, ids)
	})
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "unknown field", yaml: "products:\n  - id: p1\n    price: \"1\"\n    colour: red\n"},
		{name: "missing id", yaml: "products:\n  - name: x\n    price: \"1\"\n"},
		{name: "bad price", yaml: "products:\n  - id: p1\n    price: cheap\n"},
		{name: "negative price", yaml: "products:\n  - id: p1\n    price: \"-1\"\n"},
		{name: "duplicate id", yaml: "products:\n  - id: p1\n    price: \"1\"\n  - id: p1\n    price: \"2\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, c.Products(), 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
