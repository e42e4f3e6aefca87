package reconciler

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/models/m_local_cart"
)

// encodeLocalItems serializes the local-classified subset of items.
func encodeLocalItems(items []*domain.CartItem) ([]byte, int, error) {
	records := make([]m_local_cart.Item, 0, len(items))
	for _, item := range items {
		if !item.ID().IsLocal() {
			continue
		}
		records = append(records, domainToRecord(item))
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to encode local cart: %w", err)
	}
	return data, len(records), nil
}

// decodeLocalItems parses a slot value. A payload that is not a JSON array of items
// is an error; individual records that fail validation are skipped and counted.
// A record reusing an earlier record's id gets a fresh local id.
func decodeLocalItems(data []byte) ([]*domain.CartItem, int, error) {
	var records []m_local_cart.Item
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, 0, fmt.Errorf("failed to decode local cart: %w", err)
	}

	items := make([]*domain.CartItem, 0, len(records))
	seen := make(map[string]bool, len(records))
	skipped := 0
	for _, rec := range records {
		if seen[rec.ID] {
			rec.ID = uuid.New().String()
		}
		item, err := recordToDomain(rec)
		if err != nil {
			skipped++
			continue
		}
		seen[rec.ID] = true
		items = append(items, item)
	}
	return items, skipped, nil
}

func domainToRecord(item *domain.CartItem) m_local_cart.Item {
	p := item.Product()
	rec := m_local_cart.Item{
		ID:        item.ID().Value(),
		ProductID: item.ProductID(),
		Quantity:  item.Quantity(),
		AddedAt:   item.AddedAt(),
		Product: m_local_cart.Product{
			ID:     p.ID,
			Name:   p.Name,
			Price:  p.Price.RatString(),
			Stock:  p.Stock,
			Images: p.Images,
		},
	}
	if sizeID := item.SizeID(); sizeID != "" {
		rec.SizeID = &sizeID
	}
	if p.SalePrice != nil {
		sale := p.SalePrice.RatString()
		rec.Product.SalePrice = &sale
	}
	for _, opt := range p.SizeOptions {
		rec.Product.SizeOptions = append(rec.Product.SizeOptions, m_local_cart.SizeOption{ID: opt.ID, Name: opt.Name})
	}
	return rec
}

func recordToDomain(rec m_local_cart.Item) (*domain.CartItem, error) {
	price, err := domain.ParseMoney(rec.Product.Price)
	if err != nil {
		return nil, err
	}

	snapshot := &domain.ProductSnapshot{
		ID:     rec.Product.ID,
		Name:   rec.Product.Name,
		Price:  price,
		Stock:  rec.Product.Stock,
		Images: rec.Product.Images,
	}
	if snapshot.ID == "" {
		snapshot.ID = rec.ProductID
	}
	if snapshot.ID != rec.ProductID {
		return nil, fmt.Errorf("product mismatch: item %q embeds %q", rec.ProductID, snapshot.ID)
	}
	if rec.Product.SalePrice != nil {
		sale, err := domain.ParseMoney(*rec.Product.SalePrice)
		if err != nil {
			return nil, err
		}
		snapshot.SalePrice = sale
	}
	for _, opt := range rec.Product.SizeOptions {
		snapshot.SizeOptions = append(snapshot.SizeOptions, domain.SizeOption{ID: opt.ID, Name: opt.Name})
	}

	sizeID := ""
	if rec.SizeID != nil {
		sizeID = *rec.SizeID
	}

	return domain.NewCartItem(domain.NewLocalID(rec.ID), sizeID, rec.Quantity, snapshot, rec.AddedAt)
}
