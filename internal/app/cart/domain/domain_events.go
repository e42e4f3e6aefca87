package domain

import "time"

// DomainEvent is the base interface for all domain events.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// ItemAddedEvent is emitted when an add creates or merges into a line.
// Quantity is the amount added by this call, not the resulting line quantity.
type ItemAddedEvent struct {
	CartID      string    `json:"cartId"`
	ItemID      string    `json:"itemId"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	Price       string    `json:"price"`
	Quantity    int       `json:"quantity"`
	SizeID      string    `json:"sizeId,omitempty"`
	Merged      bool      `json:"merged"`
	AddedAt     time.Time `json:"addedAt"`
}

func (e *ItemAddedEvent) EventType() string {
	return "cart.item.added"
}

func (e *ItemAddedEvent) AggregateID() string {
	return e.CartID
}

// ItemRemovedEvent is emitted when a line is removed.
type ItemRemovedEvent struct {
	CartID      string    `json:"cartId"`
	ItemID      string    `json:"itemId"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	Price       string    `json:"price"`
	Quantity    int       `json:"quantity"`
	SizeID      string    `json:"sizeId,omitempty"`
	RemovedAt   time.Time `json:"removedAt"`
}

func (e *ItemRemovedEvent) EventType() string {
	return "cart.item.removed"
}

func (e *ItemRemovedEvent) AggregateID() string {
	return e.CartID
}

// QuantityUpdatedEvent is emitted when a line's quantity is set.
type QuantityUpdatedEvent struct {
	CartID      string    `json:"cartId"`
	ItemID      string    `json:"itemId"`
	OldQuantity int       `json:"oldQuantity"`
	NewQuantity int       `json:"newQuantity"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (e *QuantityUpdatedEvent) EventType() string {
	return "cart.item.quantity_updated"
}

func (e *QuantityUpdatedEvent) AggregateID() string {
	return e.CartID
}

// ItemPromotedEvent is emitted when a pending-local line is confirmed by the remote store.
type ItemPromotedEvent struct {
	CartID     string    `json:"cartId"`
	LocalID    string    `json:"localId"`
	RemoteID   string    `json:"remoteId"`
	PromotedAt time.Time `json:"promotedAt"`
}

func (e *ItemPromotedEvent) EventType() string {
	return "cart.item.promoted"
}

func (e *ItemPromotedEvent) AggregateID() string {
	return e.CartID
}

// CartClearedEvent is emitted on clear.
type CartClearedEvent struct {
	CartID       string    `json:"cartId"`
	RemovedItems int       `json:"removedItems"`
	ClearedAt    time.Time `json:"clearedAt"`
}

func (e *CartClearedEvent) EventType() string {
	return "cart.cleared"
}

func (e *CartClearedEvent) AggregateID() string {
	return e.CartID
}
