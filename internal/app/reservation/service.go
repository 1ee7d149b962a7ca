package reservation

import (
	"context"
	"fmt"

	"restaurant-bot/internal/adapter/logger"
	"restaurant-bot/internal/domain"
	"restaurant-bot/internal/interfaces"
	"restaurant-bot/internal/validation"
)

// Service manages table reservations. Every transition is externally
// driven; nothing auto-confirms or auto-expires a booking.
type Service struct {
	reservations interfaces.ReservationRepository
	logger       logger.Logger
}

func NewService(reservations interfaces.ReservationRepository, logger logger.Logger) *Service {
	return &Service{reservations: reservations, logger: logger}
}

var _ interfaces.ReservationService = (*Service)(nil)

func (s *Service) Create(ctx context.Context, actor interfaces.Actor, cmd interfaces.ReservationCommand) (*domain.Reservation, error) {
	if err := validation.Date(cmd.Date); err != nil {
		return nil, err
	}
	if err := validation.Time(cmd.Time); err != nil {
		return nil, err
	}
	if err := validation.PartySize(cmd.PartySize); err != nil {
		return nil, err
	}

	reservation := &domain.Reservation{
		UserID:          actor.UserID,
		Date:            cmd.Date,
		Time:            cmd.Time,
		PartySize:       cmd.PartySize,
		Status:          domain.ReservationPending,
		SpecialRequests: cmd.SpecialRequests,
	}
	if err := s.reservations.Create(ctx, reservation); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	s.logger.Info("reservation_created", "Reservation created", "", map[string]interface{}{
		"reservation_id": reservation.ID,
		"user_id":        actor.UserID,
		"date":           cmd.Date,
	})
	return reservation, nil
}

func (s *Service) List(ctx context.Context, actor interfaces.Actor) ([]*domain.Reservation, error) {
	return s.reservations.ListByUser(ctx, actor.UserID)
}

func (s *Service) Cancel(ctx context.Context, actor interfaces.Actor, reservationID int64) (*domain.Reservation, error) {
	reservation, err := s.reservations.FindByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && reservation.UserID != actor.UserID {
		return nil, domain.ErrPermissionDenied
	}

	if err := s.reservations.UpdateStatus(ctx, reservation.ID, domain.ReservationCancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel reservation: %w", err)
	}
	reservation.Status = domain.ReservationCancelled
	return reservation, nil
}

func (s *Service) SetStatus(ctx context.Context, actor interfaces.Actor, reservationID int64, status domain.ReservationStatus) (*domain.Reservation, error) {
	if !actor.IsAdmin {
		return nil, domain.ErrPermissionDenied
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	reservation, err := s.reservations.FindByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if err := s.reservations.UpdateStatus(ctx, reservation.ID, status); err != nil {
		return nil, fmt.Errorf("failed to update reservation status: %w", err)
	}
	reservation.Status = status
	return reservation, nil
}
