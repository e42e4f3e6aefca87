package domain

// Totals holds the two aggregates derived from a cart's item list.
type Totals struct {
	Total     *Money
	ItemCount int
}

// CalculateTotals derives total and item count from items.
//
//	total     = Σ (salePrice ?? price) × quantity
//	itemCount = Σ quantity
//
// It is pure; Cart calls it on every transition and nothing else writes the aggregates.
func CalculateTotals(items []*CartItem) Totals {
	total := ZeroMoney()
	count := 0
	for _, item := range items {
		total = total.Add(item.LineTotal())
		count += item.quantity
	}
	return Totals{Total: total, ItemCount: count}
}
