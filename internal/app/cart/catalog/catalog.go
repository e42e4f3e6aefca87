// Package catalog provides product snapshots from a YAML file.
//
//	products:
//	  - id: p1
//	    name: Shirt
//	    price: "1800"
//	    sale_price: "1300"   # optional
//	    stock: 10
//	    sizes:
//	      - {id: "42", name: "EU 42"}
//	    images: [shirt.jpg]
//
// Prices use the exact rational form ("1800", "37/2", "18.5").
package catalog

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/light-bringer/cartsync-service/internal/app/cart/contracts"
	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
)

type fileSize struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type fileProduct struct {
	ID        string     `yaml:"id"`
	Name      string     `yaml:"name"`
	Price     string     `yaml:"price"`
	SalePrice string     `yaml:"sale_price,omitempty"`
	Stock     int        `yaml:"stock"`
	Sizes     []fileSize `yaml:"sizes,omitempty"`
	Images    []string   `yaml:"images,omitempty"`
}

type file struct {
	Products []fileProduct `yaml:"products"`
}

// Catalog is a read-only ProductSnapshotProvider.
type Catalog struct {
	order    []string
	products map[string]*domain.ProductSnapshot
}

var _ contracts.ProductSnapshotProvider = (*Catalog)(nil)

// Load reads and validates a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes catalog YAML. Unknown fields are rejected.
func Parse(data []byte) (*Catalog, error) {
	var f file
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := &Catalog{products: make(map[string]*domain.ProductSnapshot, len(f.Products))}
	for i, fp := range f.Products {
		p, err := toSnapshot(fp)
		if err != nil {
			return nil, fmt.Errorf("product %d (%s): %w", i, fp.ID, err)
		}
		if _, dup := c.products[p.ID]; dup {
			return nil, fmt.Errorf("product %d: duplicate id %s", i, p.ID)
		}
		c.products[p.ID] = p
		c.order = append(c.order, p.ID)
	}
	return c, nil
}

// Snapshot returns a copy of the product, or domain.ErrProductNotFound.
func (c *Catalog) Snapshot(_ context.Context, productID string) (*domain.ProductSnapshot, error) {
	p, ok := c.products[productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return p.Copy(), nil
}

// Products returns every product in file order.
func (c *Catalog) Products() []*domain.ProductSnapshot {
	out := make([]*domain.ProductSnapshot, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.products[id].Copy())
	}
	return out
}

func toSnapshot(fp fileProduct) (*domain.ProductSnapshot, error) {
	if fp.ID == "" {
		return nil, domain.ErrInvalidProductID
	}
	price, err := domain.ParseMoney(fp.Price)
	if err != nil {
		return nil, err
	}

	p := &domain.ProductSnapshot{
		ID:     fp.ID,
		Name:   fp.Name,
		Price:  price,
		Stock:  fp.Stock,
		Images: fp.Images,
	}
	if fp.SalePrice != "" {
		if p.SalePrice, err = domain.ParseMoney(fp.SalePrice); err != nil {
			return nil, err
		}
	}
	for _, s := range fp.Sizes {
		name := s.Name
		if name == "" {
			name = s.ID
		}
		p.SizeOptions = append(p.SizeOptions, domain.SizeOption{ID: s.ID, Name: name})
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
