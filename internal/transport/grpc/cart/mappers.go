package cart

import (
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
)

// Wire shapes carried inside the Struct messages.
//
//	List           {}                               → {items: [item]}
//	Add            {productId, quantity, sizeId?}   → {item} | {product}
//	UpdateQuantity {itemId, quantity}               → {}
//	Remove         {itemId}                         → {}
//	ClearAll       {}                               → {}
//
// Prices are exact rational strings ("1800", "37/2").

type wireSizeOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type wireProduct struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Price       string           `json:"price"`
	SalePrice   *string          `json:"salePrice,omitempty"`
	Stock       int              `json:"stock"`
	SizeOptions []wireSizeOption `json:"sizeOptions,omitempty"`
	Images      []string         `json:"images,omitempty"`
}

type wireItem struct {
	ID        string      `json:"id"`
	ProductID string      `json:"productId"`
	SizeID    string      `json:"sizeId,omitempty"`
	Quantity  int         `json:"quantity"`
	Product   wireProduct `json:"product"`
	AddedAt   time.Time   `json:"addedAt"`
}

type listReply struct {
	Items []wireItem `json:"items"`
}

type addRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	SizeID    string `json:"sizeId,omitempty"`
}

type addReply struct {
	Item    *wireItem    `json:"item,omitempty"`
	Product *wireProduct `json:"product,omitempty"`
}

type updateQuantityRequest struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

type removeRequest struct {
	ItemID string `json:"itemId"`
}

// toStruct encodes a wire value as a Struct through its JSON form.
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, s); err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}
	return s, nil
}

// fromStruct decodes a Struct into a wire value.
func fromStruct(s *structpb.Struct, v any) error {
	if s == nil {
		s = &structpb.Struct{}
	}
	raw, err := protojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("decode message: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode message: %w", err)
	}
	return nil
}

func productToWire(p *domain.ProductSnapshot) wireProduct {
	w := wireProduct{
		ID:     p.ID,
		Name:   p.Name,
		Price:  p.Price.RatString(),
		Stock:  p.Stock,
		Images: p.Images,
	}
	if p.SalePrice != nil {
		sale := p.SalePrice.RatString()
		w.SalePrice = &sale
	}
	for _, opt := range p.SizeOptions {
		w.SizeOptions = append(w.SizeOptions, wireSizeOption{ID: opt.ID, Name: opt.Name})
	}
	return w
}

func productFromWire(w wireProduct) (*domain.ProductSnapshot, error) {
	price, err := domain.ParseMoney(w.Price)
	if err != nil {
		return nil, err
	}
	p := &domain.ProductSnapshot{
		ID:     w.ID,
		Name:   w.Name,
		Price:  price,
		Stock:  w.Stock,
		Images: w.Images,
	}
	if w.SalePrice != nil {
		if p.SalePrice, err = domain.ParseMoney(*w.SalePrice); err != nil {
			return nil, err
		}
	}
	for _, opt := range w.SizeOptions {
		p.SizeOptions = append(p.SizeOptions, domain.SizeOption{ID: opt.ID, Name: opt.Name})
	}
	return p, nil
}

// itemToWire exposes the raw server id; classification is implied by the transport.
func itemToWire(item *domain.CartItem) wireItem {
	return wireItem{
		ID:        item.ID().Value(),
		ProductID: item.ProductID(),
		SizeID:    item.SizeID(),
		Quantity:  item.Quantity(),
		Product:   productToWire(item.Product()),
		AddedAt:   item.AddedAt(),
	}
}

// itemFromWire tags the id as remote: everything this service returns was assigned by it.
func itemFromWire(w wireItem) (*domain.CartItem, error) {
	product, err := productFromWire(w.Product)
	if err != nil {
		return nil, fmt.Errorf("item %s: %w", w.ID, err)
	}
	if product.ID == "" {
		product.ID = w.ProductID
	}
	return domain.NewCartItem(domain.NewRemoteID(w.ID), w.SizeID, w.Quantity, product, w.AddedAt)
}
