package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-bot/internal/app/apptest"
	"restaurant-bot/internal/domain"
	"restaurant-bot/internal/interfaces"
	"restaurant-bot/internal/validation"
)

var testActor = interfaces.Actor{UserID: 100}

func newTestService(promos ...*domain.PromoCode) (*Service, *apptest.CartRepo) {
	menu := apptest.NewMenuRepo(
		domain.MenuItem{ID: 1, Category: "pizza", Name: "Margherita", Price: 12.00, Available: true},
		domain.MenuItem{ID: 2, Category: "pizza", Name: "Pepperoni", Price: 14.00, Available: true},
		domain.MenuItem{ID: 3, Category: "drinks", Name: "Cola", Price: 3.00, Available: false},
	)
	carts := apptest.NewCartRepo()
	return NewService(carts, menu, apptest.NewPromoRepo(promos...), apptest.NopLogger{}), carts
}

func TestAddItem(t *testing.T) {
	svc, carts := newTestService()

	result, err := svc.AddItem(context.Background(), testActor, 1, 2)
	require.NoError(t, err)

	assert.Equal(t, 24.00, result.Cart.Subtotal)
	require.Len(t, result.Lines, 1)
	assert.Equal(t, "Margherita", result.Lines[0].Item.Name)
	assert.Equal(t, 2, result.Lines[0].Quantity)

	// The cart was persisted.
	saved, err := carts.Get(context.Background(), testActor.UserID)
	require.NoError(t, err)
	assert.Equal(t, 2, saved.Items[1])
}

func TestAddItemUnknown(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AddItem(context.Background(), testActor, 99, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddItemInvalidQuantity(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AddItem(context.Background(), testActor, 1, 0)
	var validationErr validation.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestSetItemQuantityRemovesAtZero(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AddItem(context.Background(), testActor, 1, 2)
	require.NoError(t, err)

	result, err := svc.SetItemQuantity(context.Background(), testActor, 1, 0)
	require.NoError(t, err)
	assert.True(t, result.Cart.IsEmpty())
}

func TestRemoveItem(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AddItem(context.Background(), testActor, 1, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), testActor, 2, 1)
	require.NoError(t, err)

	result, err := svc.RemoveItem(context.Background(), testActor, 1)
	require.NoError(t, err)
	require.Len(t, result.Lines, 1)
	assert.Equal(t, 2, result.Lines[0].Item.ID)
}

func TestUnavailableItemNotCharged(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AddItem(context.Background(), testActor, 1, 1)
	require.NoError(t, err)
	result, err := svc.AddItem(context.Background(), testActor, 3, 2)
	require.NoError(t, err)

	// Item 3 is in the cart but unavailable, so only item 1 counts.
	assert.Equal(t, 12.00, result.Cart.Subtotal)
	assert.Len(t, result.Lines, 2)
}

func TestApplyPromo(t *testing.T) {
	svc, _ := newTestService(&domain.PromoCode{
		Code: "SAVE10", Type: domain.DiscountPercentage, Value: 10, IsActive: true,
	})

	_, err := svc.AddItem(context.Background(), testActor, 1, 1)
	require.NoError(t, err)

	result, applied, err := svc.ApplyPromo(context.Background(), testActor, "save10")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.InDelta(t, 1.20, result.Cart.Discount, 1e-9)
}

func TestApplyPromoUnknownLeavesCartUntouched(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AddItem(context.Background(), testActor, 1, 1)
	require.NoError(t, err)

	result, applied, err := svc.ApplyPromo(context.Background(), testActor, "NOPE")
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Nil(t, result.Cart.PromoCode)
	assert.Equal(t, 0.0, result.Cart.Discount)
}

func TestApplyPromoInactiveRejected(t *testing.T) {
	svc, _ := newTestService(&domain.PromoCode{
		Code: "OLD", Type: domain.DiscountFixed, Value: 5, IsActive: false,
	})

	_, err := svc.AddItem(context.Background(), testActor, 1, 1)
	require.NoError(t, err)

	_, applied, err := svc.ApplyPromo(context.Background(), testActor, "OLD")
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestPromoDroppedWhenDeactivated(t *testing.T) {
	promo := &domain.PromoCode{Code: "SAVE10", Type: domain.DiscountPercentage, Value: 10, IsActive: true}
	svc, _ := newTestService(promo)

	_, err := svc.AddItem(context.Background(), testActor, 1, 1)
	require.NoError(t, err)
	_, applied, err := svc.ApplyPromo(context.Background(), testActor, "SAVE10")
	require.NoError(t, err)
	require.True(t, applied)

	// Deactivate behind the cart's back; the next recompute drops it
	// and reports the drop.
	promo.IsActive = false

	result, err := svc.View(context.Background(), testActor)
	require.NoError(t, err)
	assert.True(t, result.PromoDropped)
	assert.Nil(t, result.Cart.PromoCode)
	assert.Equal(t, 0.0, result.Cart.Discount)
}

func TestClear(t *testing.T) {
	svc, carts := newTestService()

	_, err := svc.AddItem(context.Background(), testActor, 1, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(context.Background(), testActor))

	saved, err := carts.Get(context.Background(), testActor.UserID)
	require.NoError(t, err)
	assert.True(t, saved.IsEmpty())
}
