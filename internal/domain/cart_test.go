package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testMenu() map[int]MenuItem {
	return map[int]MenuItem{
		1: {ID: 1, Name: "Margherita", Price: 12.00, Available: true},
		2: {ID: 2, Name: "Pepperoni", Price: 14.00, Available: true},
		3: {ID: 3, Name: "Hawaiian", Price: 15.00, Available: false},
	}
}

func TestCartRecomputeSubtotal(t *testing.T) {
	cart := NewCart(1)
	cart.Add(1, 2)
	cart.Add(2, 1)

	dropped := cart.Recompute(testMenu(), nil)

	assert.False(t, dropped)
	assert.Equal(t, 38.00, cart.Subtotal)
	assert.Equal(t, 38.00, cart.Total())
}

func TestCartRecomputeSkipsUnavailableItems(t *testing.T) {
	cart := NewCart(1)
	cart.Add(1, 1)
	cart.Add(3, 2)

	cart.Recompute(testMenu(), nil)

	// The unavailable item stays in the cart but contributes nothing.
	assert.Equal(t, 12.00, cart.Subtotal)
	assert.Equal(t, 2, cart.Items[3])
}

func TestCartRecomputeSkipsMissingItems(t *testing.T) {
	cart := NewCart(1)
	cart.Add(1, 1)
	cart.Add(99, 5)

	cart.Recompute(testMenu(), nil)

	assert.Equal(t, 12.00, cart.Subtotal)
}

func TestCartRecomputeAppliesPromo(t *testing.T) {
	code := "SAVE10"
	cart := NewCart(1)
	cart.Add(1, 1)
	cart.PromoCode = &code

	promo := &PromoCode{Code: code, Type: DiscountPercentage, Value: 10, IsActive: true}
	dropped := cart.Recompute(testMenu(), promo)

	assert.False(t, dropped)
	assert.InDelta(t, 1.20, cart.Discount, 1e-9)
	assert.InDelta(t, 10.80, cart.Total(), 1e-9)
}

func TestCartRecomputeDropsMissingPromo(t *testing.T) {
	code := "GONE"
	cart := NewCart(1)
	cart.Add(1, 1)
	cart.PromoCode = &code
	cart.Discount = 5

	dropped := cart.Recompute(testMenu(), nil)

	assert.True(t, dropped)
	assert.Nil(t, cart.PromoCode)
	assert.Equal(t, 0.0, cart.Discount)
}

func TestCartRecomputeDropsInactivePromo(t *testing.T) {
	code := "OLD"
	cart := NewCart(1)
	cart.Add(1, 1)
	cart.PromoCode = &code

	promo := &PromoCode{Code: code, Type: DiscountFixed, Value: 5, IsActive: false}
	dropped := cart.Recompute(testMenu(), promo)

	assert.True(t, dropped)
	assert.Nil(t, cart.PromoCode)
	assert.Equal(t, 0.0, cart.Discount)
}

func TestCartSetQuantityRemovesAtZero(t *testing.T) {
	cart := NewCart(1)
	cart.Add(1, 3)

	cart.SetQuantity(1, 0)

	assert.True(t, cart.IsEmpty())
}

func TestCartAddAccumulates(t *testing.T) {
	cart := NewCart(1)
	cart.Add(1, 2)
	cart.Add(1, 3)

	assert.Equal(t, 5, cart.Items[1])
}

func TestPromoDiscountPercentageUncapped(t *testing.T) {
	promo := &PromoCode{Type: DiscountPercentage, Value: 150}

	// Percentage discounts above 100 exceed the subtotal.
	assert.Equal(t, 15.00, promo.DiscountFor(10.00))
}

func TestPromoDiscountFixedClamped(t *testing.T) {
	promo := &PromoCode{Type: DiscountFixed, Value: 20}

	assert.Equal(t, 10.00, promo.DiscountFor(10.00))
}
