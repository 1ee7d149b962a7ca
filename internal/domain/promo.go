package domain

import (
	"math"
	"time"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// PromoCode is a named discount rule. The code string is the primary
// key. UsedCount is tracked but a usage cap is not enforced anywhere;
// MaxUses is nil for unlimited codes.
type PromoCode struct {
	Code       string
	Type       DiscountType
	Value      float64
	MinOrder   float64
	MaxUses    *int
	UsedCount  int
	IsActive   bool
	ValidFrom  *time.Time
	ValidUntil *time.Time
	CreatedAt  time.Time
}

// DiscountFor computes the discount a promo yields on a subtotal.
// Percentage discounts are not capped: a value above 100 produces a
// discount larger than the subtotal. Fixed discounts never exceed the
// subtotal.
func (p *PromoCode) DiscountFor(subtotal float64) float64 {
	if p.Type == DiscountPercentage {
		return subtotal * (p.Value / 100)
	}
	return math.Min(p.Value, subtotal)
}
