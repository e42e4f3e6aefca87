package contracts

import "github.com/light-bringer/cartsync-service/internal/app/cart/domain"

// EventPublisher delivers domain events to observers such as analytics.
// Publish must not block and must not fail the caller.
type EventPublisher interface {
	Publish(event domain.DomainEvent)
}
