package admin

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
	adminActor = interfaces.Actor{UserID: 1, IsAdmin: true}
	userActor  = interfaces.Actor{UserID: 100}
)

type fixture struct {
	svc    *Service
	menu   *apptest.MenuRepo
	orders *apptest.OrderRepo
	promos *apptest.PromoRepo
}

func newFixture() *fixture {
	menu := apptest.NewMenuRepo(
		domain.MenuItem{ID: 1, Category: "pizza", Name: "Margherita", Price: 12.00, Available: true},
	)
	orders := apptest.NewOrderRepo()
	promos := apptest.NewPromoRepo()
	svc := NewService(apptest.NewUserRepo(), orders, apptest.NewCartRepo(),
		apptest.NewReservationRepo(), menu, promos, apptest.NopLogger{})
	return &fixture{svc: svc, menu: menu, orders: orders, promos: promos}
}

func TestAdminOnlyOperations(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Stats(ctx, userActor)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	err = f.svc.SetItemAvailability(ctx, userActor, 1, false)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	err = f.svc.SetItemPrice(ctx, userActor, 1, 10)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	_, err = f.svc.CreatePromo(ctx, userActor, interfaces.PromoCommand{})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	_, err = f.svc.ListPromos(ctx, userActor)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestStats(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.orders.Orders[1] = &domain.Order{ID: 1, Subtotal: 20, DeliveryFee: 2.50, Status: domain.StatusDelivered}
	f.orders.Orders[2] = &domain.Order{ID: 2, Subtotal: 10, Status: domain.StatusPending}
	f.orders.NextID = 3

	stats, err := f.svc.Stats(ctx, adminActor)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalOrders)
	assert.Equal(t, 1, stats.CompletedOrders)
	assert.Equal(t, 1, stats.MenuItems)
	assert.InDelta(t, 22.50, stats.TotalRevenue, 1e-9)
	assert.InDelta(t, 22.50, stats.AverageOrder, 1e-9)
}

func TestSetItemAvailability(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.SetItemAvailability(ctx, adminActor, 1, false))
	assert.False(t, f.menu.Items[1].Available)

	assert.ErrorIs(t, f.svc.SetItemAvailability(ctx, adminActor, 99, false), domain.ErrNotFound)
}

func TestSetItemPrice(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.SetItemPrice(ctx, adminActor, 1, 13.50))
	assert.Equal(t, 13.50, f.menu.Items[1].Price)

	assert.Error(t, f.svc.SetItemPrice(ctx, adminActor, 1, -1))
}

func TestCreatePromo(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	promo, err := f.svc.CreatePromo(ctx, adminActor, interfaces.PromoCommand{
		Code: "  save10 ", Type: domain.DiscountPercentage, Value: 10, MinOrder: 15,
	})
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", promo.Code)
	assert.True(t, promo.IsActive)

	// Same code again collides.
	_, err = f.svc.CreatePromo(ctx, adminActor, interfaces.PromoCommand{
		Code: "SAVE10", Type: domain.DiscountPercentage, Value: 20,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicatePromoCode)
}

func TestCreatePromoValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.CreatePromo(ctx, adminActor, interfaces.PromoCommand{
		Type: domain.DiscountPercentage, Value: 10,
	})
	assert.Error(t, err)

	_, err = f.svc.CreatePromo(ctx, adminActor, interfaces.PromoCommand{
		Code: "X", Type: "bogus", Value: 10,
	})
	assert.Error(t, err)

	_, err = f.svc.CreatePromo(ctx, adminActor, interfaces.PromoCommand{
		Code: "X", Type: domain.DiscountFixed, Value: 0,
	})
	assert.Error(t, err)

	bad := "31-12-2026"
	_, err = f.svc.CreatePromo(ctx, adminActor, interfaces.PromoCommand{
		Code: "X", Type: domain.DiscountFixed, Value: 5, ValidUntil: &bad,
	})
	assert.Error(t, err)
}

func TestSetPromoActive(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.CreatePromo(ctx, adminActor, interfaces.PromoCommand{
		Code: "SAVE10", Type: domain.DiscountPercentage, Value: 10,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.SetPromoActive(ctx, adminActor, "save10", false))
	assert.False(t, f.promos.Promos["SAVE10"].IsActive)
}
