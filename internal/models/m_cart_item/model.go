package m_cart_item

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the cart_items table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a cart line.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(TableName, Columns, []interface{}{
		data.UserID,
		data.ItemID,
		data.ProductID,
		data.SizeID,
		data.Quantity,
		data.ProductName,
		data.PriceNumerator,
		data.PriceDenominator,
		data.SalePriceNumerator,
		data.SalePriceDenominator,
		data.Stock,
		data.SizeOptions,
		data.Images,
		data.AddedAt,
		spanner.CommitTimestamp,
	})
}

// UpdateQuantityMut creates a mutation that sets a line's quantity.
func (m *Model) UpdateQuantityMut(userID, itemID string, quantity int64) *spanner.Mutation {
	return spanner.Update(TableName,
		[]string{UserID, ItemID, Quantity, UpdatedAt},
		[]interface{}{userID, itemID, quantity, spanner.CommitTimestamp},
	)
}

// DeleteMut creates a mutation deleting one line.
func (m *Model) DeleteMut(userID, itemID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{userID, itemID})
}

// DeleteAllMut creates a mutation deleting every line of a user.
func (m *Model) DeleteAllMut(userID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{userID}.AsPrefix())
}
