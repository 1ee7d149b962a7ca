package interfaces

import (
	"context"
	"time"

	"restaurant-bot/internal/domain"
)

// Event messages published to RabbitMQ and consumed by the notifier.

type OrderCreatedMessage struct {
	OrderID   int64     `json:"order_id"`
	UserID    int64     `json:"user_id"`
	Total     float64   `json:"total"`
	ItemCount int       `json:"item_count"`
	PromoCode *string   `json:"promo_code,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type StatusUpdateMessage struct {
	OrderID   int64         `json:"order_id"`
	UserID    int64         `json:"user_id"`
	OldStatus domain.Status `json:"old_status"`
	NewStatus domain.Status `json:"new_status"`
	ChangedBy int64         `json:"changed_by"`
	Timestamp time.Time     `json:"timestamp"`
}

type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, msg OrderCreatedMessage) error
	PublishStatusUpdate(ctx context.Context, msg StatusUpdateMessage) error
}

type (
	OrderCreatedHandler func(ctx context.Context, body []byte) error
	StatusUpdateHandler func(ctx context.Context, body []byte) error
)

type EventConsumer interface {
	ConsumeOrderCreated(ctx context.Context, handler OrderCreatedHandler) error
	ConsumeStatusUpdates(ctx context.Context, handler StatusUpdateHandler) error
}
