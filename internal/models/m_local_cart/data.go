package m_local_cart

import "time"

// Slot is the default name of the local store slot holding the cart.
const Slot = "cart.items"

// Item is the persisted form of one local-classified cart line.
// The slot holds a JSON array of these.
type Item struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	SizeID    *string   `json:"sizeId"`
	Quantity  int       `json:"quantity"`
	Product   Product   `json:"product"`
	AddedAt   time.Time `json:"addedAt"`
}

// Product is the embedded snapshot. Prices are exact rational strings ("1800", "37/2").
type Product struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Price       string       `json:"price"`
	SalePrice   *string      `json:"salePrice"`
	Stock       int          `json:"stock"`
	SizeOptions []SizeOption `json:"sizeOptions,omitempty"`
	Images      []string     `json:"images,omitempty"`
}

// SizeOption mirrors domain.SizeOption.
type SizeOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
