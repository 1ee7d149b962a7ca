package order

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"restaurant-bot/internal/adapter/logger"
	"restaurant-bot/internal/domain"
	"restaurant-bot/internal/interfaces"
)

// Service converts carts into immutable orders and drives the order
// lifecycle. All operations take the authenticated actor and perform
// their own authorization.
type Service struct {
	orders             interfaces.OrderRepository
	carts              interfaces.CartRepository
	menu               interfaces.MenuRepository
	promos             interfaces.PromoRepository
	cartService        interfaces.CartService
	publisher          interfaces.EventPublisher
	logger             logger.Logger
	deliveryFee        float64
	cancellationWindow time.Duration
	now                func() time.Time
}

func NewService(
	orders interfaces.OrderRepository,
	carts interfaces.CartRepository,
	menu interfaces.MenuRepository,
	promos interfaces.PromoRepository,
	cartService interfaces.CartService,
	publisher interfaces.EventPublisher,
	logger logger.Logger,
	deliveryFee float64,
	cancellationWindow time.Duration,
) *Service {
	return &Service{
		orders:             orders,
		carts:              carts,
		menu:               menu,
		promos:             promos,
		cartService:        cartService,
		publisher:          publisher,
		logger:             logger,
		deliveryFee:        deliveryFee,
		cancellationWindow: cancellationWindow,
		now:                time.Now,
	}
}

var _ interfaces.OrderService = (*Service)(nil)

// Checkout snapshots the cart into a new pending order, credits loyalty
// points (one per whole currency unit of the subtotal), bumps the
// user's lifetime order count and clears the cart, all in one
// transaction. The configured minimum-order amount is enforced by the
// transport boundary before this is invoked; payment capture is out of
// scope and the order is recorded unconditionally.
func (s *Service) Checkout(ctx context.Context, actor interfaces.Actor, cmd interfaces.CheckoutCommand) (*domain.Order, error) {
	cart, err := s.carts.Get(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart.IsEmpty() {
		return nil, domain.ErrCartEmpty
	}

	itemIDs := make([]int, 0, len(cart.Items))
	for itemID := range cart.Items {
		itemIDs = append(itemIDs, itemID)
	}
	menu, err := s.menu.FindByIDs(ctx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu items: %w", err)
	}

	var promo *domain.PromoCode
	if cart.PromoCode != nil {
		promo, err = s.promos.Find(ctx, *cart.PromoCode)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up promo code: %w", err)
		}
	}
	cart.Recompute(menu, promo)

	items := make([]domain.OrderItem, 0, len(cart.Items))
	for itemID, quantity := range cart.Items {
		item, ok := menu[itemID]
		if !ok {
			continue
		}
		items = append(items, domain.OrderItem{
			ItemID:    item.ID,
			Name:      item.Name,
			Quantity:  quantity,
			UnitPrice: item.Price,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ItemID < items[j].ItemID })

	now := s.now()
	order := &domain.Order{
		UserID:          actor.UserID,
		Items:           items,
		Subtotal:        cart.Subtotal,
		Discount:        cart.Discount,
		DeliveryFee:     s.deliveryFee,
		PromoCode:       cart.PromoCode,
		Status:          domain.StatusPending,
		DeliveryAddress: cmd.DeliveryAddress,
		Notes:           cmd.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	points := domain.LoyaltyPointsFor(cart.Subtotal)
	if err := s.orders.CreateFromCheckout(ctx, order, points); err != nil {
		s.logger.Error("checkout_failed", "Failed to create order", "", map[string]interface{}{
			"user_id": actor.UserID,
		}, err)
		return nil, err
	}

	s.logger.Info("order_created", "Order created from cart", "", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  actor.UserID,
		"total":    order.Total(),
	})

	// Notifications are best effort; the order is already persisted.
	if err := s.publisher.PublishOrderCreated(ctx, interfaces.OrderCreatedMessage{
		OrderID:   order.ID,
		UserID:    order.UserID,
		Total:     order.Total(),
		ItemCount: order.ItemCount(),
		PromoCode: order.PromoCode,
		CreatedAt: order.CreatedAt,
	}); err != nil {
		s.logger.Error("publish_failed", "Failed to publish order created event", "", map[string]interface{}{
			"order_id": order.ID,
		}, err)
	}

	return order, nil
}

func (s *Service) Get(ctx context.Context, actor interfaces.Actor, orderID int64) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && order.UserID != actor.UserID {
		return nil, domain.ErrPermissionDenied
	}
	return order, nil
}

func (s *Service) History(ctx context.Context, actor interfaces.Actor, limit int) ([]*domain.Order, error) {
	return s.orders.ListByUser(ctx, actor.UserID, limit)
}

// Cancel performs a user-initiated cancellation, allowed only while the
// order is pending and inside the cancellation window.
func (s *Service) Cancel(ctx context.Context, actor interfaces.Actor, orderID int64) (*domain.Order, error) {
	order, err := s.Get(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.CancellableBy(s.now(), s.cancellationWindow); err != nil {
		return nil, err
	}

	oldStatus := order.Status
	if err := s.orders.UpdateStatus(ctx, order.ID, domain.StatusCancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}
	order.Status = domain.StatusCancelled
	order.UpdatedAt = s.now()

	s.publishStatusUpdate(ctx, order, oldStatus, actor.UserID)

	s.logger.Info("order_cancelled", "Order cancelled by user", "", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  actor.UserID,
	})
	return order, nil
}

// SetStatus is the admin-side status update. Any valid status may be
// set from any other; the lifecycle ordering is advisory for admins.
func (s *Service) SetStatus(ctx context.Context, actor interfaces.Actor, orderID int64, status domain.Status) (*domain.Order, error) {
	if !actor.IsAdmin {
		return nil, domain.ErrPermissionDenied
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	oldStatus := order.Status
	if err := s.orders.UpdateStatus(ctx, order.ID, status); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	order.Status = status
	order.UpdatedAt = s.now()

	s.publishStatusUpdate(ctx, order, oldStatus, actor.UserID)

	s.logger.Info("order_status_updated", "Order status updated by admin", "", map[string]interface{}{
		"order_id":   order.ID,
		"old_status": string(oldStatus),
		"new_status": string(status),
	})
	return order, nil
}

func (s *Service) ListActive(ctx context.Context, actor interfaces.Actor) ([]*domain.Order, error) {
	if !actor.IsAdmin {
		return nil, domain.ErrPermissionDenied
	}
	return s.orders.ListByStatuses(ctx, []domain.Status{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusPreparing,
		domain.StatusReady,
	})
}

// Reorder puts a past order's items back into the cart. Items that no
// longer exist or are unavailable are skipped and counted.
func (s *Service) Reorder(ctx context.Context, actor interfaces.Actor, orderID int64) (*interfaces.ReorderResult, error) {
	order, err := s.Get(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	result := &interfaces.ReorderResult{}
	var cartResult *interfaces.CartResult
	for _, line := range order.Items {
		item, err := s.menu.FindByID(ctx, line.ItemID)
		if err != nil || !item.Available {
			result.Skipped++
			continue
		}
		cartResult, err = s.cartService.AddItem(ctx, actor, line.ItemID, line.Quantity)
		if err != nil {
			result.Skipped++
			continue
		}
		result.Added++
	}

	if cartResult == nil {
		cartResult, err = s.cartService.View(ctx, actor)
		if err != nil {
			return nil, err
		}
	}
	result.Cart = cartResult
	return result, nil
}

func (s *Service) publishStatusUpdate(ctx context.Context, order *domain.Order, oldStatus domain.Status, changedBy int64) {
	err := s.publisher.PublishStatusUpdate(ctx, interfaces.StatusUpdateMessage{
		OrderID:   order.ID,
		UserID:    order.UserID,
		OldStatus: oldStatus,
		NewStatus: order.Status,
		ChangedBy: changedBy,
		Timestamp: s.now(),
	})
	if err != nil {
		s.logger.Error("publish_failed", "Failed to publish status update event", "", map[string]interface{}{
			"order_id": order.ID,
		}, err)
	}
}
