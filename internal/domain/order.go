package domain

import "time"

// OrderItem is a frozen line of an order: the name and unit price are
// copied from the menu at checkout time and never change afterwards.
type OrderItem struct {
	ItemID    int
	Name      string
	Quantity  int
	UnitPrice float64
}

// Order is an immutable snapshot created from a cart at checkout.
// Monetary fields are fixed at creation; later promo code changes must
// not alter historical orders.
type Order struct {
	ID              int64
	UserID          int64
	Items           []OrderItem
	Subtotal        float64
	Discount        float64
	DeliveryFee     float64
	PromoCode       *string
	Status          Status
	DeliveryAddress *string
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Total is the amount charged for the order.
func (o *Order) Total() float64 {
	return o.Subtotal + o.DeliveryFee - o.Discount
}

// ItemCount is the total quantity across all lines.
func (o *Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

// CancellableBy reports whether a user-initiated cancellation is
// allowed at the given moment. Only pending orders inside the
// cancellation window can be cancelled; everything else fails with
// ErrCancellationWindowExpired. Admin status updates do not go through
// this check.
func (o *Order) CancellableBy(now time.Time, window time.Duration) error {
	if o.Status != StatusPending {
		return ErrCancellationWindowExpired
	}
	if now.Sub(o.CreatedAt) >= window {
		return ErrCancellationWindowExpired
	}
	return nil
}

// LoyaltyPointsFor returns the points credited for a checkout:
// one point per whole currency unit of the subtotal, truncated.
func LoyaltyPointsFor(subtotal float64) int {
	return int(subtotal)
}

// Loyalty program constants. Points accumulate at checkout and are
// redeemable at a fixed conversion rate.
const (
	LoyaltyPointsPerUnit  = 1
	LoyaltyRedemptionRate = 100 // 100 points = 1 currency unit
)
