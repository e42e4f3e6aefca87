package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTotals(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		totals := CalculateTotals(nil)
		assert.True(t, totals.Total.IsZero())
		assert.Equal(t, 0, totals.ItemCount)
	})

	t.Run("sale price overrides price", func(t *testing.T) {
		items := []*CartItem{
			newItem(t, NewLocalID("a"), shirt(), 2),  // 2 × 1800
			newItem(t, NewLocalID("b"), jacket(), 3), // 3 × 1300
		}
		totals := CalculateTotals(items)
		assert.Equal(t, "7500", totals.Total.RatString())
		assert.Equal(t, 5, totals.ItemCount)
	})

	t.Run("fractional prices stay exact", func(t *testing.T) {
		p := &ProductSnapshot{ID: "p", Price: MustMoney(1, 3)}
		totals := CalculateTotals([]*CartItem{newItem(t, NewLocalID("a"), p, 3)})
		assert.Equal(t, "1", totals.Total.RatString())
	})
}
