package m_product

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the products table.
type Data struct {
	ProductID            string            `spanner:"product_id"`
	Name                 string            `spanner:"name"`
	PriceNumerator       int64             `spanner:"price_numerator"`
	PriceDenominator     int64             `spanner:"price_denominator"`
	SalePriceNumerator   spanner.NullInt64 `spanner:"sale_price_numerator"`
	SalePriceDenominator spanner.NullInt64 `spanner:"sale_price_denominator"`
	Stock                int64             `spanner:"stock"`
	SizeOptions          spanner.NullJSON  `spanner:"size_options"` // [{"id":..,"name":..}]
	Images               []string          `spanner:"images"`
	CreatedAt            time.Time         `spanner:"created_at"`
	UpdatedAt            time.Time         `spanner:"updated_at"`
}

// SizeOption is the JSON element stored in size_options.
type SizeOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
