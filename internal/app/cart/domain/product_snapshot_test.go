package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductSnapshot_UnitPrice(t *testing.T) {
	t.Run("regular price", func(t *testing.T) {
		p := &ProductSnapshot{ID: "p1", Price: MustMoney(1800, 1)}
		assert.Equal(t, "1800", p.UnitPrice().RatString())
	})

	t.Run("sale price wins", func(t *testing.T) {
		p := &ProductSnapshot{ID: "p2", Price: MustMoney(1500, 1), SalePrice: MustMoney(1300, 1)}
		assert.Equal(t, "1300", p.UnitPrice().RatString())
	})

	t.Run("zero sale price is still a sale price", func(t *testing.T) {
		p := &ProductSnapshot{ID: "p3", Price: MustMoney(1500, 1), SalePrice: ZeroMoney()}
		assert.True(t, p.UnitPrice().IsZero())
	})
}

func TestProductSnapshot_HasSize(t *testing.T) {
	sized := &ProductSnapshot{ID: "shoe", SizeOptions: []SizeOption{{ID: "42"}, {ID: "43"}}}
	plain := &ProductSnapshot{ID: "mug"}

	assert.True(t, sized.HasSize("42"))
	assert.False(t, sized.HasSize("44"))
	assert.True(t, sized.HasSize(""))
	assert.True(t, plain.HasSize("anything"))
}

func TestProductSnapshot_Validate(t *testing.T) {
	assert.ErrorIs(t, (*ProductSnapshot)(nil).Validate(), ErrProductNotFound)
	assert.ErrorIs(t, (&ProductSnapshot{}).Validate(), ErrProductNotFound)
	assert.ErrorIs(t, (&ProductSnapshot{ID: "p"}).Validate(), ErrInvalidPrice)
	assert.ErrorIs(t, (&ProductSnapshot{ID: "p", Price: MustMoney(-1, 1)}).Validate(), ErrInvalidPrice)
	assert.NoError(t, (&ProductSnapshot{ID: "p", Price: ZeroMoney()}).Validate())
}

func TestProductSnapshot_CopyIsDeep(t *testing.T) {
	p := &ProductSnapshot{
		ID:          "p",
		Price:       MustMoney(10, 1),
		SizeOptions: []SizeOption{{ID: "s"}},
		Images:      []string{"a.png"},
	}
	cp := p.Copy()
	cp.SizeOptions[0].ID = "m"
	cp.Images[0] = "b.png"

	assert.Equal(t, "s", p.SizeOptions[0].ID)
	assert.Equal(t, "a.png", p.Images[0])
}
