// Package testutil holds in-memory doubles for the cart's external collaborators.
package testutil

import (
	"context"
	"sync"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
)

// Product builds a snapshot priced in whole units.
func Product(id, name string, price int64) *domain.ProductSnapshot {
	return &domain.ProductSnapshot{
		ID:    id,
		Name:  name,
		Price: domain.MustMoney(price, 1),
		Stock: 10,
	}
}

// SaleProduct builds a snapshot with a sale price.
func SaleProduct(id, name string, price, sale int64) *domain.ProductSnapshot {
	p := Product(id, name, price)
	p.SalePrice = domain.MustMoney(sale, 1)
	return p
}

// SizedProduct builds a snapshot that declares size options.
func SizedProduct(id, name string, price int64, sizes ...string) *domain.ProductSnapshot {
	p := Product(id, name, price)
	for _, s := range sizes {
		p.SizeOptions = append(p.SizeOptions, domain.SizeOption{ID: s, Name: s})
	}
	return p
}

// Catalog is an in-memory ProductSnapshotProvider.
type Catalog struct {
	mu       sync.RWMutex
	products map[string]*domain.ProductSnapshot
}

// NewCatalog creates a catalog holding products.
func NewCatalog(products ...*domain.ProductSnapshot) *Catalog {
	c := &Catalog{products: make(map[string]*domain.ProductSnapshot)}
	for _, p := range products {
		c.Put(p)
	}
	return c
}

// Put adds or replaces a product.
func (c *Catalog) Put(p *domain.ProductSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[p.ID] = p.Copy()
}

func (c *Catalog) Snapshot(_ context.Context, productID string) (*domain.ProductSnapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return p.Copy(), nil
}
