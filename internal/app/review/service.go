package review

import (
	"context"
	"fmt"

	"restaurant-bot/internal/adapter/logger"
	"restaurant-bot/internal/domain"
	"restaurant-bot/internal/interfaces"
	"restaurant-bot/internal/validation"
)

// Service manages ratings and reviews. A review tied to an order must
// reference an order the actor owns.
type Service struct {
	reviews interfaces.ReviewRepository
	orders  interfaces.OrderRepository
	menu    interfaces.MenuRepository
	logger  logger.Logger
}

func NewService(reviews interfaces.ReviewRepository, orders interfaces.OrderRepository, menu interfaces.MenuRepository, logger logger.Logger) *Service {
	return &Service{reviews: reviews, orders: orders, menu: menu, logger: logger}
}

var _ interfaces.ReviewService = (*Service)(nil)

func (s *Service) Create(ctx context.Context, actor interfaces.Actor, cmd interfaces.ReviewCommand) (*domain.Review, error) {
	if err := validation.Rating(cmd.Rating); err != nil {
		return nil, err
	}

	if cmd.OrderID != nil {
		order, err := s.orders.FindByID(ctx, *cmd.OrderID)
		if err != nil {
			return nil, err
		}
		if order.UserID != actor.UserID {
			return nil, domain.ErrPermissionDenied
		}
	}
	if cmd.ItemID != nil {
		if _, err := s.menu.FindByID(ctx, *cmd.ItemID); err != nil {
			return nil, err
		}
	}

	review := &domain.Review{
		UserID:  actor.UserID,
		Rating:  cmd.Rating,
		Comment: cmd.Comment,
		OrderID: cmd.OrderID,
		ItemID:  cmd.ItemID,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	s.logger.Info("review_created", "Review created", "", map[string]interface{}{
		"review_id": review.ID,
		"user_id":   actor.UserID,
		"rating":    cmd.Rating,
	})
	return review, nil
}

func (s *Service) ForItem(ctx context.Context, actor interfaces.Actor, itemID int) (*interfaces.ItemReviews, error) {
	if _, err := s.menu.FindByID(ctx, itemID); err != nil {
		return nil, err
	}

	reviews, err := s.reviews.ListByItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	average, count, err := s.reviews.AverageForItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute average rating: %w", err)
	}

	return &interfaces.ItemReviews{Reviews: reviews, Average: average, Count: count}, nil
}

func (s *Service) Recent(ctx context.Context, actor interfaces.Actor, limit int) ([]*domain.Review, error) {
	return s.reviews.ListRecent(ctx, limit)
}
