// Package analytics turns cart domain events into analytics records.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/pkg/eventbus"
)

// Tracked lists the event types forwarded to analytics.
var Tracked = []string{
	(&domain.ItemAddedEvent{}).EventType(),
	(&domain.ItemRemovedEvent{}).EventType(),
}

// LogSink writes each event as a structured log line.
func LogSink(logger *zap.Logger) eventbus.Handler[domain.DomainEvent] {
	return func(_ context.Context, event domain.DomainEvent) error {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", event.EventType(), err)
		}
		logger.Info("analytics event",
			zap.String("event_type", event.EventType()),
			zap.String("cart_id", event.AggregateID()),
			zap.ByteString("payload", payload),
		)
		return nil
	}
}

// Only passes through events whose type is in types.
func Only(types []string, next eventbus.Handler[domain.DomainEvent]) eventbus.Handler[domain.DomainEvent] {
	allowed := make(map[string]struct{}, len(types))
	for _, t := range types {
		allowed[t] = struct{}{}
	}
	return func(ctx context.Context, event domain.DomainEvent) error {
		if _, ok := allowed[event.EventType()]; !ok {
			return nil
		}
		return next(ctx, event)
	}
}

// NewBus creates an event bus that logs tracked cart events.
func NewBus(buffer int, logger *zap.Logger) *eventbus.Bus[domain.DomainEvent] {
	if logger == nil {
		logger = zap.NewNop()
	}
	bus := eventbus.New[domain.DomainEvent](buffer, logger)
	bus.Subscribe("analytics-log", Only(Tracked, LogSink(logger.Named("analytics"))))
	return bus
}
