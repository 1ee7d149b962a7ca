package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderTotal(t *testing.T) {
	order := &Order{Subtotal: 30.00, DeliveryFee: 2.50, Discount: 5.00}

	assert.InDelta(t, 27.50, order.Total(), 1e-9)
}

func TestOrderItemCount(t *testing.T) {
	order := &Order{Items: []OrderItem{
		{ItemID: 1, Quantity: 2},
		{ItemID: 2, Quantity: 3},
	}}

	assert.Equal(t, 5, order.ItemCount())
}

func TestOrderCancellableInsideWindow(t *testing.T) {
	now := time.Now()
	order := &Order{Status: StatusPending, CreatedAt: now.Add(-2 * time.Minute)}

	assert.NoError(t, order.CancellableBy(now, 5*time.Minute))
}

func TestOrderCancellableWindowExpired(t *testing.T) {
	now := time.Now()
	order := &Order{Status: StatusPending, CreatedAt: now.Add(-5 * time.Minute)}

	assert.ErrorIs(t, order.CancellableBy(now, 5*time.Minute), ErrCancellationWindowExpired)
}

func TestOrderCancellableRequiresPending(t *testing.T) {
	now := time.Now()
	order := &Order{Status: StatusConfirmed, CreatedAt: now}

	assert.ErrorIs(t, order.CancellableBy(now, 5*time.Minute), ErrCancellationWindowExpired)
}

func TestLoyaltyPointsTruncate(t *testing.T) {
	assert.Equal(t, 23, LoyaltyPointsFor(23.70))
	assert.Equal(t, 0, LoyaltyPointsFor(0.99))
	assert.Equal(t, 10, LoyaltyPointsFor(10.00))
}

func TestStatusValid(t *testing.T) {
	for _, status := range OrderStatuses {
		assert.True(t, status.Valid())
	}
	assert.False(t, Status("shipped").Valid())
}

func TestReservationStatusValid(t *testing.T) {
	assert.True(t, ReservationConfirmed.Valid())
	assert.False(t, ReservationStatus("expired").Valid())
}
