package profile

import (
	"context"
	"fmt"
	"strings"

	"restaurant-bot/internal/adapter/logger"
	"restaurant-bot/internal/domain"
	"restaurant-bot/internal/interfaces"
	"restaurant-bot/internal/validation"
)

// Service manages user profiles: contact details, saved addresses,
// favorites, preferences and the loyalty balance. All records are keyed
// by the actor's own user id, so ownership is inherent.
type Service struct {
	users  interfaces.UserRepository
	menu   interfaces.MenuRepository
	logger logger.Logger
}

func NewService(users interfaces.UserRepository, menu interfaces.MenuRepository, logger logger.Logger) *Service {
	return &Service{users: users, menu: menu, logger: logger}
}

var _ interfaces.ProfileService = (*Service)(nil)

func (s *Service) Register(ctx context.Context, actor interfaces.Actor, username, firstName string) (*domain.UserProfile, error) {
	profile, err := s.users.GetOrCreate(ctx, actor.UserID, username, firstName)
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return profile, nil
}

func (s *Service) Get(ctx context.Context, actor interfaces.Actor) (*domain.UserProfile, error) {
	profile, err := s.users.GetOrCreate(ctx, actor.UserID, "", "")
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return profile, nil
}

func (s *Service) UpdateContact(ctx context.Context, actor interfaces.Actor, phone, email *string) error {
	if phone != nil {
		cleaned, err := validation.Phone(*phone)
		if err != nil {
			return err
		}
		phone = &cleaned
	}
	if email != nil {
		normalized, err := validation.Email(*email)
		if err != nil {
			return err
		}
		email = &normalized
	}
	return s.users.UpdateContact(ctx, actor.UserID, phone, email)
}

func (s *Service) SetPreference(ctx context.Context, actor interfaces.Actor, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return validation.ValidationError{Field: "preference", Message: "preference key is required"}
	}
	return s.users.SetPreference(ctx, actor.UserID, key, value)
}

func (s *Service) AddAddress(ctx context.Context, actor interfaces.Actor, cmd interfaces.AddressCommand) (int, error) {
	if strings.TrimSpace(cmd.Street) == "" {
		return 0, validation.ValidationError{Field: "street", Message: "street is required"}
	}
	if strings.TrimSpace(cmd.City) == "" {
		return 0, validation.ValidationError{Field: "city", Message: "city is required"}
	}

	label := strings.TrimSpace(cmd.Label)
	if label == "" {
		label = "Home"
	}

	addressID, err := s.users.AddAddress(ctx, actor.UserID, domain.Address{
		Label:     label,
		Street:    strings.TrimSpace(cmd.Street),
		City:      strings.TrimSpace(cmd.City),
		Postal:    strings.TrimSpace(cmd.Postal),
		IsDefault: cmd.IsDefault,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to add address: %w", err)
	}

	s.logger.Debug("address_added", "Delivery address saved", "", map[string]interface{}{
		"user_id":    actor.UserID,
		"address_id": addressID,
	})
	return addressID, nil
}

func (s *Service) DeleteAddress(ctx context.Context, actor interfaces.Actor, addressID int) error {
	return s.users.DeleteAddress(ctx, actor.UserID, addressID)
}

func (s *Service) SetDefaultAddress(ctx context.Context, actor interfaces.Actor, addressID int) error {
	return s.users.SetDefaultAddress(ctx, actor.UserID, addressID)
}

func (s *Service) AddFavorite(ctx context.Context, actor interfaces.Actor, itemID int) error {
	if _, err := s.menu.FindByID(ctx, itemID); err != nil {
		return err
	}
	return s.users.AddFavorite(ctx, actor.UserID, itemID)
}

func (s *Service) RemoveFavorite(ctx context.Context, actor interfaces.Actor, itemID int) error {
	return s.users.RemoveFavorite(ctx, actor.UserID, itemID)
}

func (s *Service) Favorites(ctx context.Context, actor interfaces.Actor) ([]domain.MenuItem, error) {
	profile, err := s.Get(ctx, actor)
	if err != nil {
		return nil, err
	}
	if len(profile.Favorites) == 0 {
		return nil, nil
	}

	byID, err := s.menu.FindByIDs(ctx, profile.Favorites)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorite items: %w", err)
	}

	items := make([]domain.MenuItem, 0, len(profile.Favorites))
	for _, itemID := range profile.Favorites {
		if item, ok := byID[itemID]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}
