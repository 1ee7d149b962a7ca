package reservation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-bot/internal/app/apptest"
	"restaurant-bot/internal/domain"
	"restaurant-bot/internal/interfaces"
)

var (
	testActor  = interfaces.Actor{UserID: 100}
	adminActor = interfaces.Actor{UserID: 1, IsAdmin: true}
)

func validCommand() interfaces.ReservationCommand {
	return interfaces.ReservationCommand{Date: "2026-09-15", Time: "19:30", PartySize: 4}
}

func TestCreate(t *testing.T) {
	svc := NewService(apptest.NewReservationRepo(), apptest.NopLogger{})

	reservation, err := svc.Create(context.Background(), testActor, validCommand())
	require.NoError(t, err)

	assert.Equal(t, int64(1), reservation.ID)
	assert.Equal(t, domain.ReservationPending, reservation.Status)
	assert.Equal(t, testActor.UserID, reservation.UserID)
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(apptest.NewReservationRepo(), apptest.NopLogger{})
	ctx := context.Background()

	cmd := validCommand()
	cmd.Date = "15.09.2026"
	_, err := svc.Create(ctx, testActor, cmd)
	assert.Error(t, err)

	cmd = validCommand()
	cmd.Time = "late"
	_, err = svc.Create(ctx, testActor, cmd)
	assert.Error(t, err)

	cmd = validCommand()
	cmd.PartySize = 0
	_, err = svc.Create(ctx, testActor, cmd)
	assert.Error(t, err)

	cmd = validCommand()
	cmd.PartySize = 50
	_, err = svc.Create(ctx, testActor, cmd)
	assert.Error(t, err)
}

func TestCancelOwnershipEnforced(t *testing.T) {
	svc := NewService(apptest.NewReservationRepo(), apptest.NopLogger{})
	ctx := context.Background()

	reservation, err := svc.Create(ctx, testActor, validCommand())
	require.NoError(t, err)

	stranger := interfaces.Actor{UserID: 200}
	_, err = svc.Cancel(ctx, stranger, reservation.ID)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	cancelled, err := svc.Cancel(ctx, testActor, reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationCancelled, cancelled.Status)
}

func TestSetStatusAdminOnly(t *testing.T) {
	svc := NewService(apptest.NewReservationRepo(), apptest.NopLogger{})
	ctx := context.Background()

	reservation, err := svc.Create(ctx, testActor, validCommand())
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, testActor, reservation.ID, domain.ReservationConfirmed)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	_, err = svc.SetStatus(ctx, adminActor, reservation.ID, domain.ReservationStatus("expired"))
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	confirmed, err := svc.SetStatus(ctx, adminActor, reservation.ID, domain.ReservationConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationConfirmed, confirmed.Status)
}

func TestListByUser(t *testing.T) {
	svc := NewService(apptest.NewReservationRepo(), apptest.NopLogger{})
	ctx := context.Background()

	_, err := svc.Create(ctx, testActor, validCommand())
	require.NoError(t, err)
	_, err = svc.Create(ctx, interfaces.Actor{UserID: 200}, validCommand())
	require.NoError(t, err)

	reservations, err := svc.List(ctx, testActor)
	require.NoError(t, err)
	require.Len(t, reservations, 1)
	assert.Equal(t, testActor.UserID, reservations[0].UserID)
}
