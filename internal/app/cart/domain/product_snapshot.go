package domain

// SizeOption is one size variant a product can be ordered in.
type SizeOption struct {
	ID   string
	Name string
}

// ProductSnapshot is a read-only, point-in-time copy of catalog data embedded in a cart item.
// It is copied at add time and never re-fetched, so prices may be stale.
type ProductSnapshot struct {
	ID          string
	Name        string
	Price       *Money
	SalePrice   *Money // nil when the product is not on sale
	Stock       int
	SizeOptions []SizeOption
	Images      []string
}

// UnitPrice returns the sale price when present, otherwise the regular price.
func (p *ProductSnapshot) UnitPrice() *Money {
	if p.SalePrice != nil {
		return p.SalePrice.Copy()
	}
	if p.Price == nil {
		return ZeroMoney()
	}
	return p.Price.Copy()
}

// HasSize reports whether sizeID is one of the declared size options.
// Products without size options accept any size, including none.
func (p *ProductSnapshot) HasSize(sizeID string) bool {
	if len(p.SizeOptions) == 0 || sizeID == "" {
		return true
	}
	for _, opt := range p.SizeOptions {
		if opt.ID == sizeID {
			return true
		}
	}
	return false
}

// Validate checks the snapshot carries what a cart line needs.
func (p *ProductSnapshot) Validate() error {
	if p == nil || p.ID == "" {
		return ErrProductNotFound
	}
	if p.Price == nil || p.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if p.SalePrice != nil && p.SalePrice.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}

// Copy returns a deep copy so cart items never share snapshot state.
func (p *ProductSnapshot) Copy() *ProductSnapshot {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Price != nil {
		cp.Price = p.Price.Copy()
	}
	if p.SalePrice != nil {
		cp.SalePrice = p.SalePrice.Copy()
	}
	cp.SizeOptions = append([]SizeOption(nil), p.SizeOptions...)
	cp.Images = append([]string(nil), p.Images...)
	return &cp
}
