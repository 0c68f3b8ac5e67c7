package events

import (
	"context"
	"time"
)

// OrderEvent is published whenever an order is placed or changes status.
type OrderEvent struct {
	OrderID  string    `json:"order_id"`
	Status   string    `json:"status"`
	Progress int       `json:"progress"`
	ETA      int       `json:"eta_minutes"`
	At       time.Time `json:"at"`
}

// Publisher is the interface used by the order engine to publish events.
type Publisher interface {
	Publish(ctx context.Context, event OrderEvent) error
	Close() error
}

// NopPublisher discards events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, OrderEvent) error { return nil }
func (NopPublisher) Close() error                              { return nil }
