package m_cart_item

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the cart_items table.
// SizeID is stored as the empty string for products without a size dimension,
// so that (user_id, product_id, size_id) stays comparable.
type Data struct {
	UserID               string            `spanner:"user_id"`
	ItemID               string            `spanner:"item_id"`
	ProductID            string            `spanner:"product_id"`
	SizeID               string            `spanner:"size_id"`
	Quantity             int64             `spanner:"quantity"`
	ProductName          string            `spanner:"product_name"`
	PriceNumerator       int64             `spanner:"price_numerator"`
	PriceDenominator     int64             `spanner:"price_denominator"`
	SalePriceNumerator   spanner.NullInt64 `spanner:"sale_price_numerator"`
	SalePriceDenominator spanner.NullInt64 `spanner:"sale_price_denominator"`
	Stock                int64             `spanner:"stock"`
	SizeOptions          spanner.NullJSON  `spanner:"size_options"`
	Images               []string          `spanner:"images"`
	AddedAt              time.Time         `spanner:"added_at"`
	UpdatedAt            time.Time         `spanner:"updated_at"`
}
