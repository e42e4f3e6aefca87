package testutil

import (
	"sync"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
)

// Publisher records published events synchronously.
type Publisher struct {
	mu     sync.Mutex
	events []domain.DomainEvent
}

func (p *Publisher) Publish(event domain.DomainEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

// Events returns everything published so far.
func (p *Publisher) Events() []domain.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.DomainEvent(nil), p.events...)
}

// Types returns the event types published so far, in order.
func (p *Publisher) Types() []string {
	var out []string
	for _, e := range p.Events() {
		out = append(out, e.EventType())
	}
	return out
}

// Reset forgets recorded events.
func (p *Publisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}
