package m_cart_item

// Field name constants for the cart_items table.
const (
	TableName = "cart_items"

	UserID               = "user_id"
	ItemID               = "item_id"
	ProductID            = "product_id"
	SizeID               = "size_id"
	Quantity             = "quantity"
	ProductName          = "product_name"
	PriceNumerator       = "price_numerator"
	PriceDenominator     = "price_denominator"
	SalePriceNumerator   = "sale_price_numerator"
	SalePriceDenominator = "sale_price_denominator"
	Stock                = "stock"
	SizeOptions          = "size_options"
	Images               = "images"
	AddedAt              = "added_at"
	UpdatedAt            = "updated_at"
)

// Columns lists every column in storage order.
var Columns = []string{
	UserID,
	ItemID,
	ProductID,
	SizeID,
	Quantity,
	ProductName,
	PriceNumerator,
	PriceDenominator,
	SalePriceNumerator,
	SalePriceDenominator,
	Stock,
	SizeOptions,
	Images,
	AddedAt,
	UpdatedAt,
}
