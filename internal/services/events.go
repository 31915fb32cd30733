package services

import (
	"log"

	"littlelemon/internal/models"
)

// EventPublisher delivers order events to other systems.
type EventPublisher interface {
	PublishOrderEvent(event models.OrderEvent) error
}

// publish sends event when a publisher is configured. Failures are logged, never returned:
// the order change is already committed.
func publish(p EventPublisher, event models.OrderEvent) {
	if p == nil {
		return
	}
	if err := p.PublishOrderEvent(event); err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", event.Type, event.OrderID, err)
		return
	}
	log.Printf("Published %s event for order %s", event.Type, event.OrderID)
}
