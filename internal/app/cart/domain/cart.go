package domain

import (
	"github.com/light-bringer/cartsync-service/internal/pkg/clock"
)

// Field names for change tracking
const (
	FieldItems      = "items"
	FieldLocalItems = "local_items"
)

// Cart is the aggregate root for one shopper's cart.
// Every mutating method recomputes the aggregates through CalculateTotals before returning,
// so Total and ItemCount can never drift from the item list.
type Cart struct {
	id        string
	items     []*CartItem
	totals    Totals
	isLoading bool

	// Clock for event timestamps (injected for testability)
	clock clock.Clock

	// Change tracking for local write-back
	changes *ChangeTracker

	// Domain events to be published
	events []DomainEvent
}

// NewCart creates an empty cart. id identifies the cart in emitted events.
func NewCart(id string, clk clock.Clock) *Cart {
	c := &Cart{
		id:      id,
		items:   make([]*CartItem, 0),
		clock:   clk,
		changes: NewChangeTracker(),
		events:  make([]DomainEvent, 0),
	}
	c.recalculate()
	return c
}

// Getters
func (c *Cart) ID() string                  { return c.id }
func (c *Cart) ItemCount() int              { return c.totals.ItemCount }
func (c *Cart) Total() *Money               { return c.totals.Total.Copy() }
func (c *Cart) IsLoading() bool             { return c.isLoading }
func (c *Cart) Len() int                    { return len(c.items) }
func (c *Cart) Changes() *ChangeTracker     { return c.changes }
func (c *Cart) DomainEvents() []DomainEvent { return c.events }

// Items returns copies of the lines in cart order.
func (c *Cart) Items() []*CartItem {
	out := make([]*CartItem, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, item.Copy())
	}
	return out
}

// LocalItems returns copies of the local-classified lines in cart order.
func (c *Cart) LocalItems() []*CartItem {
	out := make([]*CartItem, 0)
	for _, item := range c.items {
		if item.id.IsLocal() {
			out = append(out, item.Copy())
		}
	}
	return out
}

// Find returns a copy of the line with the given id.
func (c *Cart) Find(id ItemID) (*CartItem, bool) {
	if idx := c.indexOf(id); idx >= 0 {
		return c.items[idx].Copy(), true
	}
	return nil, false
}

// FindByKey returns a copy of the line for a (productID, sizeID) pair.
func (c *Cart) FindByKey(key ItemKey) (*CartItem, bool) {
	if idx := c.indexOfKey(key); idx >= 0 {
		return c.items[idx].Copy(), true
	}
	return nil, false
}

// BeginLoad marks the reconciliation window as open.
func (c *Cart) BeginLoad() {
	c.isLoading = true
}

// EndLoad closes the reconciliation window without touching items.
func (c *Cart) EndLoad() {
	c.isLoading = false
}

// Replace adopts a reconciled item list and closes the loading window.
// Lines sharing a (productID, sizeID) pair are merged additively into the first one seen.
// A later line reusing an adopted id under another pair is dropped.
func (c *Cart) Replace(items []*CartItem) {
	merged := make([]*CartItem, 0, len(items))
	byKey := make(map[ItemKey]*CartItem, len(items))
	byID := make(map[ItemID]bool, len(items))
	for _, item := range items {
		if item == nil || item.quantity < 1 {
			continue
		}
		if existing, ok := byKey[item.Key()]; ok {
			existing.quantity += item.quantity
			continue
		}
		if byID[item.id] {
			continue
		}
		cp := item.Copy()
		byKey[cp.Key()] = cp
		byID[cp.id] = true
		merged = append(merged, cp)
	}

	c.items = merged
	c.isLoading = false
	c.changes.MarkDirty(FieldItems)
	c.changes.MarkDirty(FieldLocalItems)
	c.recalculate()
}

// AddItem appends a new line. Callers merge into existing lines with MergeQuantity.
func (c *Cart) AddItem(item *CartItem) error {
	if item == nil || item.id.IsZero() {
		return ErrInvalidItemID
	}
	if item.quantity < 1 {
		return ErrInvalidQuantity
	}
	if c.indexOfKey(item.Key()) >= 0 || c.indexOf(item.id) >= 0 {
		return ErrDuplicateItem
	}

	cp := item.Copy()
	c.items = append(c.items, cp)
	c.markItemChanged(cp)

	c.recordEvent(&ItemAddedEvent{
		CartID:      c.id,
		ItemID:      cp.id.String(),
		ProductID:   cp.productID,
		ProductName: cp.product.Name,
		Price:       cp.UnitPrice().RatString(),
		Quantity:    cp.quantity,
		SizeID:      cp.sizeID,
		AddedAt:     c.clock.Now(),
	})

	c.recalculate()
	return nil
}

// MergeQuantity adds delta units to an existing line.
func (c *Cart) MergeQuantity(id ItemID, delta int) error {
	if delta < 1 {
		return ErrInvalidQuantity
	}
	idx := c.indexOf(id)
	if idx < 0 {
		return ErrItemNotFound
	}

	item := c.items[idx]
	item.quantity += delta
	c.markItemChanged(item)

	c.recordEvent(&ItemAddedEvent{
		CartID:      c.id,
		ItemID:      item.id.String(),
		ProductID:   item.productID,
		ProductName: item.product.Name,
		Price:       item.UnitPrice().RatString(),
		Quantity:    delta,
		SizeID:      item.sizeID,
		Merged:      true,
		AddedAt:     c.clock.Now(),
	})

	c.recalculate()
	return nil
}

// SetQuantity replaces a line's quantity. Quantities below 1 are rejected; use Remove.
func (c *Cart) SetQuantity(id ItemID, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	idx := c.indexOf(id)
	if idx < 0 {
		return ErrItemNotFound
	}

	item := c.items[idx]
	old := item.quantity
	item.quantity = quantity
	c.markItemChanged(item)

	c.recordEvent(&QuantityUpdatedEvent{
		CartID:      c.id,
		ItemID:      item.id.String(),
		OldQuantity: old,
		NewQuantity: quantity,
		UpdatedAt:   c.clock.Now(),
	})

	c.recalculate()
	return nil
}

// Remove deletes a line and returns what was removed.
func (c *Cart) Remove(id ItemID) (*CartItem, error) {
	idx := c.indexOf(id)
	if idx < 0 {
		return nil, ErrItemNotFound
	}

	removed := c.items[idx]
	c.items = append(c.items[:idx:idx], c.items[idx+1:]...)
	c.markItemChanged(removed)

	c.recordEvent(&ItemRemovedEvent{
		CartID:      c.id,
		ItemID:      removed.id.String(),
		ProductID:   removed.productID,
		ProductName: removed.product.Name,
		Price:       removed.UnitPrice().RatString(),
		Quantity:    removed.quantity,
		SizeID:      removed.sizeID,
		RemovedAt:   c.clock.Now(),
	})

	c.recalculate()
	return removed.Copy(), nil
}

// Clear empties the cart and returns how many lines were dropped.
// Clearing an empty cart changes nothing.
func (c *Cart) Clear() int {
	n := len(c.items)
	if n == 0 {
		return 0
	}

	for _, item := range c.items {
		c.markItemChanged(item)
	}
	c.items = make([]*CartItem, 0)

	c.recordEvent(&CartClearedEvent{
		CartID:       c.id,
		RemovedItems: n,
		ClearedAt:    c.clock.Now(),
	})

	c.recalculate()
	return n
}

// Promote re-tags a pending-local line as confirmed by the remote store.
// quantity is the remote store's view of the line after its own merge.
func (c *Cart) Promote(localID, remoteID ItemID, quantity int) error {
	if !localID.IsLocal() || !remoteID.IsRemote() {
		return ErrInvalidItemID
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	idx := c.indexOf(localID)
	if idx < 0 {
		return ErrItemNotFound
	}
	if c.indexOf(remoteID) >= 0 {
		return ErrDuplicateItem
	}

	item := c.items[idx]
	item.id = remoteID
	item.quantity = quantity
	c.changes.MarkDirty(FieldItems)
	c.changes.MarkDirty(FieldLocalItems)

	c.recordEvent(&ItemPromotedEvent{
		CartID:     c.id,
		LocalID:    localID.String(),
		RemoteID:   remoteID.String(),
		PromotedAt: c.clock.Now(),
	})

	c.recalculate()
	return nil
}

// ClearEvents clears all recorded domain events (called after publishing).
func (c *Cart) ClearEvents() {
	c.events = make([]DomainEvent, 0)
}

// recalculate is the only writer of the aggregates.
func (c *Cart) recalculate() {
	c.totals = CalculateTotals(c.items)
}

func (c *Cart) markItemChanged(item *CartItem) {
	c.changes.MarkDirty(FieldItems)
	if item.id.IsLocal() {
		c.changes.MarkDirty(FieldLocalItems)
	}
}

func (c *Cart) indexOf(id ItemID) int {
	for i, item := range c.items {
		if item.id == id {
			return i
		}
	}
	return -1
}

func (c *Cart) indexOfKey(key ItemKey) int {
	for i, item := range c.items {
		if item.Key() == key {
			return i
		}
	}
	return -1
}

// recordEvent adds a domain event to the list of events.
func (c *Cart) recordEvent(event DomainEvent) {
	c.events = append(c.events, event)
}
