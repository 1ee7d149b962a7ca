package menu

import (
	"context"

	"restaurant-bot/internal/domain"
	"restaurant-bot/internal/interfaces"
)

// Service exposes read-only menu browsing.
type Service struct {
	menu interfaces.MenuRepository
}

func NewService(menu interfaces.MenuRepository) *Service {
	return &Service{menu: menu}
}

var _ interfaces.MenuService = (*Service)(nil)

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.menu.ListCategories(ctx)
}

func (s *Service) ItemsByCategory(ctx context.Context, category string) ([]domain.MenuItem, error) {
	return s.menu.ListByCategory(ctx, category)
}

func (s *Service) Item(ctx context.Context, itemID int) (*domain.MenuItem, error) {
	return s.menu.FindByID(ctx, itemID)
}
