// Package events publishes order lifecycle events to NATS.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"pet-sitter.com/pet-sitter/internal/constants"
)

const SubjectOrderStatusChanged = "petsitter.order.status_changed"

type OrderStatusChanged struct {
	OrderID        string                `json:"order_id"`
	TaskID         string                `json:"task_id"`
	PetOwnerUserID string                `json:"pet_owner_user_id"`
	SitterUserID   string                `json:"sitter_user_id"`
	Status         constants.OrderStatus `json:"status"`
	ActorUserID    string                `json:"actor_user_id"`
	OccurredAt     time.Time             `json:"occurred_at"`
}

type Publisher interface {
	OrderStatusChanged(ctx context.Context, event OrderStatusChanged)
}

// NatsPublisher is fire-and-forget: a lost event never fails the request
// that caused it.
type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(conn *nats.Conn) *NatsPublisher {
	return &NatsPublisher{conn: conn}
}

func (p *NatsPublisher) OrderStatusChanged(ctx context.Context, event OrderStatusChanged) {
	if p.conn == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		slog.ErrorContext(ctx, "encode order event", "order_id", event.OrderID, "error", err)
		return
	}

	if err := p.conn.Publish(SubjectOrderStatusChanged, data); err != nil {
		slog.WarnContext(ctx, "publish order event", "order_id", event.OrderID, "error", err)
	}
}

type NopPublisher struct{}

func (NopPublisher) OrderStatusChanged(context.Context, OrderStatusChanged) {}
