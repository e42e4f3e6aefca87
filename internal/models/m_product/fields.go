package m_product

// Field name constants for the products table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "products"

	ProductID            = "product_id"
	Name                 = "name"
	PriceNumerator       = "price_numerator"
	PriceDenominator     = "price_denominator"
	SalePriceNumerator   = "sale_price_numerator"
	SalePriceDenominator = "sale_price_denominator"
	Stock                = "stock"
	SizeOptions          = "size_options"
	Images               = "images"
	CreatedAt            = "created_at"
	UpdatedAt            = "updated_at"
)

// Columns lists every column read into Data.
var Columns = []string{
	ProductID,
	Name,
	PriceNumerator,
	PriceDenominator,
	SalePriceNumerator,
	SalePriceDenominator,
	Stock,
	SizeOptions,
	Images,
	CreatedAt,
	UpdatedAt,
}
