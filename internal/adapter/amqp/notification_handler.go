package amqp

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"restaurant-bot/internal/adapter/logger"
	"restaurant-bot/internal/interfaces"
)

// MessageSender delivers a text message to a Telegram chat.
type MessageSender interface {
	SendTo(chatID int64, text string) error
}

// NotificationHandler consumes order events and turns them into
// Telegram notifications: the admin hears about every new order, the
// customer hears about every status change.
type NotificationHandler struct {
	consumer    interfaces.EventConsumer
	sender      MessageSender
	adminChatID int64
	logger      logger.Logger
}

func NewNotificationHandler(consumer interfaces.EventConsumer, sender MessageSender, adminChatID int64, logger logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		consumer:    consumer,
		sender:      sender,
		adminChatID: adminChatID,
		logger:      logger,
	}
}

// Run consumes both event streams until the context is cancelled.
func (h *NotificationHandler) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return h.consumer.ConsumeOrderCreated(ctx, h.handleOrderCreated)
	})
	g.Go(func() error {
		return h.consumer.ConsumeStatusUpdates(ctx, h.handleStatusUpdate)
	})
	return g.Wait()
}

func (h *NotificationHandler) handleOrderCreated(ctx context.Context, body []byte) error {
	var msg interfaces.OrderCreatedMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("failed to decode order event: %w", err)
	}

	text := fmt.Sprintf("🆕 New order #%d\n%d item(s), $%.2f", msg.OrderID, msg.ItemCount, msg.Total)
	if msg.PromoCode != nil {
		text += "\nPromo: " + *msg.PromoCode
	}

	if err := h.sender.SendTo(h.adminChatID, text); err != nil {
		h.logger.Error("notify_failed", "Failed to notify admin about new order", "",
			map[string]interface{}{"order_id": msg.OrderID}, err)
		return err
	}

	h.logger.Info("order_notified", "Admin notified about new order", "",
		map[string]interface{}{"order_id": msg.OrderID})
	return nil
}

func (h *NotificationHandler) handleStatusUpdate(ctx context.Context, body []byte) error {
	var msg interfaces.StatusUpdateMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("failed to decode status event: %w", err)
	}

	text := fmt.Sprintf("Order #%d is now %s.", msg.OrderID, msg.NewStatus)
	if err := h.sender.SendTo(msg.UserID, text); err != nil {
		h.logger.Error("notify_failed", "Failed to notify user about status change", "",
			map[string]interface{}{"order_id": msg.OrderID, "user_id": msg.UserID}, err)
		return err
	}
	return nil
}
