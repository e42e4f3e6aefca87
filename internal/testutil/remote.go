package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/light-bringer/cartsync-service/internal/app/cart/contracts"
	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/pkg/clock"
)

// Remote operation names used by Fail and Calls.
const (
	OpList           = "list"
	OpAdd            = "add"
	OpUpdateQuantity = "update_quantity"
	OpRemove         = "remove"
	OpClearAll       = "clear_all"
)

type remoteLine struct {
	id       string
	sizeID   string
	quantity int
	product  *domain.ProductSnapshot
}

// Remote is an in-memory RemoteCartService that behaves like the real server:
// adds merge by (product, size), anonymous callers get the product shape back,
// and any operation can be made to fail.
type Remote struct {
	mu            sync.Mutex
	catalog       contracts.ProductSnapshotProvider
	clock         clock.Clock
	authenticated bool
	lines         []*remoteLine
	nextID        int
	failures      map[string]error
	calls         []string
}

var _ contracts.RemoteCartService = (*Remote)(nil)

// NewRemote creates an authenticated remote backed by catalog.
func NewRemote(catalog contracts.ProductSnapshotProvider, clk clock.Clock) *Remote {
	return &Remote{
		catalog:       catalog,
		clock:         clk,
		authenticated: true,
		failures:      make(map[string]error),
	}
}

// SetAuthenticated switches between an anonymous and a signed-in caller.
func (r *Remote) SetAuthenticated(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.authenticated = v
}

// Fail makes every call to op return err until Heal.
func (r *Remote) Fail(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[op] = err
}

// Heal clears all injected failures.
func (r *Remote) Heal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = make(map[string]error)
}

// Calls returns the operations invoked so far, failed ones included.
func (r *Remote) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// Count returns how many times op was invoked.
func (r *Remote) Count(op string) int {
	n := 0
	for _, c := range r.Calls() {
		if c == op {
			n++
		}
	}
	return n
}

// Quantities returns productID[/size] → quantity for the stored lines.
func (r *Remote) Quantities() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]int, len(r.lines))
	for _, l := range r.lines {
		key := l.product.ID
		if l.sizeID != "" {
			key += "/" + l.sizeID
		}
		out[key] = l.quantity
	}
	return out
}

func (r *Remote) List(_ context.Context) ([]*domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter(OpList); err != nil {
		return nil, err
	}
	if !r.authenticated {
		return []*domain.CartItem{}, nil
	}
	items := make([]*domain.CartItem, 0, len(r.lines))
	for _, l := range r.lines {
		item, err := r.toDomain(l)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Remote) Add(ctx context.Context, productID string, quantity int, sizeID string) (*contracts.AddResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter(OpAdd); err != nil {
		return nil, err
	}

	product, err := r.catalog.Snapshot(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !r.authenticated {
		return &contracts.AddResult{Product: product}, nil
	}

	for _, l := range r.lines {
		if l.product.ID == productID && l.sizeID == sizeID {
			l.quantity += quantity
			item, err := r.toDomain(l)
			if err != nil {
				return nil, err
			}
			return &contracts.AddResult{Item: item}, nil
		}
	}

	r.nextID++
	l := &remoteLine{id: fmt.Sprintf("srv-%d", r.nextID), sizeID: sizeID, quantity: quantity, product: product}
	r.lines = append(r.lines, l)
	item, err := r.toDomain(l)
	if err != nil {
		return nil, err
	}
	return &contracts.AddResult{Item: item}, nil
}

func (r *Remote) UpdateQuantity(_ context.Context, itemID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter(OpUpdateQuantity); err != nil {
		return err
	}
	if !r.authenticated {
		return domain.ErrUnauthenticated
	}
	for _, l := range r.lines {
		if l.id == itemID {
			l.quantity = quantity
			return nil
		}
	}
	return domain.ErrItemNotFound
}

func (r *Remote) Remove(_ context.Context, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter(OpRemove); err != nil {
		return err
	}
	if !r.authenticated {
		return domain.ErrUnauthenticated
	}
	for i, l := range r.lines {
		if l.id == itemID {
			r.lines = append(r.lines[:i], r.lines[i+1:]...)
			return nil
		}
	}
	return domain.ErrItemNotFound
}

func (r *Remote) ClearAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter(OpClearAll); err != nil {
		return err
	}
	if r.authenticated {
		r.lines = nil
	}
	return nil
}

func (r *Remote) enter(op string) error {
	r.calls = append(r.calls, op)
	return r.failures[op]
}

func (r *Remote) toDomain(l *remoteLine) (*domain.CartItem, error) {
	return domain.NewCartItem(domain.NewRemoteID(l.id), l.sizeID, l.quantity, l.product, r.clock.Now())
}
