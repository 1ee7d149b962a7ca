package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"restaurant-bot/internal/adapter/logger"
	"restaurant-bot/internal/domain"
	"restaurant-bot/internal/interfaces"
	"restaurant-bot/internal/validation"
)

// Service gathers the admin-only operations: dashboard statistics, menu
// management and promo code management. Authorization is an explicit
// check on the actor, not a property of the transport.
type Service struct {
	users        interfaces.UserRepository
	orders       interfaces.OrderRepository
	carts        interfaces.CartRepository
	reservations interfaces.ReservationRepository
	menu         interfaces.MenuRepository
	promos       interfaces.PromoRepository
	logger       logger.Logger
}

func NewService(
	users interfaces.UserRepository,
	orders interfaces.OrderRepository,
	carts interfaces.CartRepository,
	reservations interfaces.ReservationRepository,
	menu interfaces.MenuRepository,
	promos interfaces.PromoRepository,
	logger logger.Logger,
) *Service {
	return &Service{
		users:        users,
		orders:       orders,
		carts:        carts,
		reservations: reservations,
		menu:         menu,
		promos:       promos,
		logger:       logger,
	}
}

var _ interfaces.AdminService = (*Service)(nil)

func (s *Service) Stats(ctx context.Context, actor interfaces.Actor) (*interfaces.DashboardStats, error) {
	if !actor.IsAdmin {
		return nil, domain.ErrPermissionDenied
	}

	stats := &interfaces.DashboardStats{}
	var err error

	if stats.TotalUsers, err = s.users.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if stats.TotalOrders, err = s.orders.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	if stats.ActiveCarts, err = s.carts.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("failed to count carts: %w", err)
	}
	if stats.TotalReservations, err = s.reservations.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to count reservations: %w", err)
	}
	if stats.MenuItems, err = s.menu.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to count menu items: %w", err)
	}
	if stats.ActivePromos, err = s.promos.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("failed to count promo codes: %w", err)
	}

	completed, revenue, err := s.orders.DeliveredStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute revenue: %w", err)
	}
	stats.CompletedOrders = completed
	stats.TotalRevenue = revenue
	if completed > 0 {
		stats.AverageOrder = revenue / float64(completed)
	}

	return stats, nil
}

func (s *Service) SetItemAvailability(ctx context.Context, actor interfaces.Actor, itemID int, available bool) error {
	if !actor.IsAdmin {
		return domain.ErrPermissionDenied
	}
	if err := s.menu.SetAvailability(ctx, itemID, available); err != nil {
		return err
	}
	s.logger.Info("menu_item_updated", "Menu item availability changed", "", map[string]interface{}{
		"item_id":   itemID,
		"available": available,
	})
	return nil
}

func (s *Service) SetItemPrice(ctx context.Context, actor interfaces.Actor, itemID int, price float64) error {
	if !actor.IsAdmin {
		return domain.ErrPermissionDenied
	}
	if err := validation.Price(price); err != nil {
		return err
	}
	if err := s.menu.SetPrice(ctx, itemID, price); err != nil {
		return err
	}
	s.logger.Info("menu_item_updated", "Menu item price changed", "", map[string]interface{}{
		"item_id": itemID,
		"price":   price,
	})
	return nil
}

func (s *Service) CreatePromo(ctx context.Context, actor interfaces.Actor, cmd interfaces.PromoCommand) (*domain.PromoCode, error) {
	if !actor.IsAdmin {
		return nil, domain.ErrPermissionDenied
	}

	code := strings.ToUpper(strings.TrimSpace(cmd.Code))
	if code == "" {
		return nil, validation.ValidationError{Field: "code", Message: "promo code is required"}
	}
	if cmd.Type != domain.DiscountPercentage && cmd.Type != domain.DiscountFixed {
		return nil, validation.ValidationError{Field: "type", Message: "discount type must be percentage or fixed"}
	}
	if cmd.Value <= 0 {
		return nil, validation.ValidationError{Field: "value", Message: "discount value must be positive"}
	}
	if cmd.MinOrder < 0 {
		return nil, validation.ValidationError{Field: "min_order", Message: "minimum order must not be negative"}
	}

	promo := &domain.PromoCode{
		Code:     code,
		Type:     cmd.Type,
		Value:    cmd.Value,
		MinOrder: cmd.MinOrder,
		MaxUses:  cmd.MaxUses,
		IsActive: true,
	}

	var err error
	if promo.ValidFrom, err = parsePromoDate(cmd.ValidFrom, "valid_from"); err != nil {
		return nil, err
	}
	if promo.ValidUntil, err = parsePromoDate(cmd.ValidUntil, "valid_until"); err != nil {
		return nil, err
	}

	if err := s.promos.Create(ctx, promo); err != nil {
		return nil, err
	}

	s.logger.Info("promo_created", "Promo code created", "", map[string]interface{}{
		"code": promo.Code,
		"type": string(promo.Type),
	})
	return promo, nil
}

func (s *Service) SetPromoActive(ctx context.Context, actor interfaces.Actor, code string, active bool) error {
	if !actor.IsAdmin {
		return domain.ErrPermissionDenied
	}
	return s.promos.SetActive(ctx, strings.ToUpper(strings.TrimSpace(code)), active)
}

func (s *Service) ListPromos(ctx context.Context, actor interfaces.Actor) ([]*domain.PromoCode, error) {
	if !actor.IsAdmin {
		return nil, domain.ErrPermissionDenied
	}
	return s.promos.ListActive(ctx)
}

func parsePromoDate(value *string, field string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, validation.ValidationError{Field: field, Message: "date must be in YYYY-MM-DD format"}
	}
	return &parsed, nil
}
