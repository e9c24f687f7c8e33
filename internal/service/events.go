package service

import (
	"context"
	"log"

	"valet_parking/internal/domain"
)

// EventPublisher receives lifecycle events after the change is committed.
type EventPublisher interface {
	Publish(ctx context.Context, ev domain.ParkedCarEvent) error
}

// FanOut delivers an event to every sink and only logs sink failures.
type FanOut []EventPublisher

func (f FanOut) Publish(ctx context.Context, ev domain.ParkedCarEvent) error {
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, ev); err != nil {
			log.Printf("EventPublisher: failed to publish %s for parked car %d: %v", ev.Type, ev.ParkedCarID, err)
		}
	}
	return nil
}
