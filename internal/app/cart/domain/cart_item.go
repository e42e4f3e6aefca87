package domain

import "time"

// ItemState is the lifecycle state of a cart line.
type ItemState string

const (
	StatePendingLocal    ItemState = "pending_local"
	StateConfirmedRemote ItemState = "confirmed_remote"
)

// ItemKey identifies a line by the pair the cart keeps unique.
type ItemKey struct {
	ProductID string
	SizeID    string // empty means no size dimension
}

// CartItem is a line entry in the cart.
type CartItem struct {
	id        ItemID
	productID string
	sizeID    string
	quantity  int
	product   *ProductSnapshot
	addedAt   time.Time
}

// NewCartItem creates a line for a product snapshot.
func NewCartItem(id ItemID, sizeID string, quantity int, product *ProductSnapshot, addedAt time.Time) (*CartItem, error) {
	if id.IsZero() {
		return nil, ErrInvalidItemID
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	return &CartItem{
		id:        id,
		productID: product.ID,
		sizeID:    sizeID,
		quantity:  quantity,
		product:   product.Copy(),
		addedAt:   addedAt,
	}, nil
}

// Getters
func (i *CartItem) ID() ItemID                { return i.id }
func (i *CartItem) ProductID() string         { return i.productID }
func (i *CartItem) SizeID() string            { return i.sizeID }
func (i *CartItem) Quantity() int             { return i.quantity }
func (i *CartItem) Product() *ProductSnapshot { return i.product.Copy() }
func (i *CartItem) AddedAt() time.Time        { return i.addedAt }
func (i *CartItem) Key() ItemKey              { return ItemKey{ProductID: i.productID, SizeID: i.sizeID} }

// State derives the lifecycle state from the id classification.
func (i *CartItem) State() ItemState {
	if i.id.IsRemote() {
		return StateConfirmedRemote
	}
	return StatePendingLocal
}

// UnitPrice is the effective price of one unit at add time.
func (i *CartItem) UnitPrice() *Money {
	return i.product.UnitPrice()
}

// LineTotal is UnitPrice × quantity.
func (i *CartItem) LineTotal() *Money {
	return i.UnitPrice().MultiplyByQuantity(i.quantity)
}

// WithQuantity returns a copy carrying a different quantity.
func (i *CartItem) WithQuantity(quantity int) (*CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	cp := i.Copy()
	cp.quantity = quantity
	return cp, nil
}

// Copy returns an independent copy of the item.
func (i *CartItem) Copy() *CartItem {
	cp := *i
	cp.product = i.product.Copy()
	return &cp
}
