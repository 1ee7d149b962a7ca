package cart

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"restaurant-bot/internal/adapter/logger"
	"restaurant-bot/internal/domain"
	"restaurant-bot/internal/interfaces"
	"restaurant-bot/internal/validation"
)

// Service maintains the single active cart per user and keeps its
// subtotal and discount consistent with membership changes.
type Service struct {
	carts  interfaces.CartRepository
	menu   interfaces.MenuRepository
	promos interfaces.PromoRepository
	logger logger.Logger
}

func NewService(carts interfaces.CartRepository, menu interfaces.MenuRepository, promos interfaces.PromoRepository, logger logger.Logger) *Service {
	return &Service{
		carts:  carts,
		menu:   menu,
		promos: promos,
		logger: logger,
	}
}

var _ interfaces.CartService = (*Service)(nil)

func (s *Service) View(ctx context.Context, actor interfaces.Actor) (*interfaces.CartResult, error) {
	cart, err := s.carts.Get(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return s.recompute(ctx, cart)
}

func (s *Service) AddItem(ctx context.Context, actor interfaces.Actor, itemID, quantity int) (*interfaces.CartResult, error) {
	if err := validation.Quantity(quantity); err != nil {
		return nil, err
	}

	item, err := s.menu.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.Get(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	cart.Add(item.ID, quantity)

	result, err := s.recompute(ctx, cart)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("cart_item_added", "Item added to cart", "", map[string]interface{}{
		"user_id": actor.UserID,
		"item_id": itemID,
	})
	return result, nil
}

func (s *Service) SetItemQuantity(ctx context.Context, actor interfaces.Actor, itemID, quantity int) (*interfaces.CartResult, error) {
	if quantity > validation.MaxQuantity {
		return nil, validation.ValidationError{Field: "quantity", Message: fmt.Sprintf("quantity must not exceed %d", validation.MaxQuantity)}
	}

	cart, err := s.carts.Get(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	cart.SetQuantity(itemID, quantity)
	return s.recompute(ctx, cart)
}

func (s *Service) RemoveItem(ctx context.Context, actor interfaces.Actor, itemID int) (*interfaces.CartResult, error) {
	return s.SetItemQuantity(ctx, actor, itemID, 0)
}

func (s *Service) Clear(ctx context.Context, actor interfaces.Actor) error {
	if err := s.carts.Clear(ctx, actor.UserID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// ApplyPromo attaches a promo code and recomputes totals. Unknown and
// inactive codes are rejected without touching the cart. The promo's
// minimum-order threshold is deliberately not checked here; the
// checkout boundary enforces the configured minimum.
func (s *Service) ApplyPromo(ctx context.Context, actor interfaces.Actor, code string) (*interfaces.CartResult, bool, error) {
	promo, err := s.promos.Find(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			result, viewErr := s.View(ctx, actor)
			return result, false, viewErr
		}
		return nil, false, fmt.Errorf("failed to look up promo code: %w", err)
	}
	if !promo.IsActive {
		result, viewErr := s.View(ctx, actor)
		return result, false, viewErr
	}

	cart, err := s.carts.Get(ctx, actor.UserID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load cart: %w", err)
	}

	cart.PromoCode = &promo.Code

	result, err := s.recompute(ctx, cart)
	if err != nil {
		return nil, false, err
	}

	s.logger.Debug("promo_applied", "Promo code applied to cart", "", map[string]interface{}{
		"user_id": actor.UserID,
		"code":    promo.Code,
	})
	return result, true, nil
}

// recompute refreshes derived totals against current menu and promo
// state, persists the cart, and builds the display lines.
func (s *Service) recompute(ctx context.Context, cart *domain.Cart) (*interfaces.CartResult, error) {
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

	dropped := cart.Recompute(menu, promo)

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	if dropped {
		s.logger.Info("promo_dropped", "Invalid promo code removed from cart", "", map[string]interface{}{
			"user_id": cart.UserID,
		})
	}

	lines := make([]interfaces.CartLine, 0, len(cart.Items))
	for itemID, quantity := range cart.Items {
		if item, ok := menu[itemID]; ok {
			lines = append(lines, interfaces.CartLine{Item: item, Quantity: quantity})
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Item.ID < lines[j].Item.ID })

	return &interfaces.CartResult{Cart: cart, Lines: lines, PromoDropped: dropped}, nil
}
