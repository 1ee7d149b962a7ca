package domain

import "time"

// Cart is the single in-progress set of item selections for one user.
// Items maps menu item id to a positive quantity. Subtotal and Discount
// are always derived via Recompute and never mutated independently.
type Cart struct {
	UserID    int64
	Items     map[int]int
	Subtotal  float64
	Discount  float64
	PromoCode *string
	CreatedAt time.Time
}

// NewCart returns an empty cart for the user.
func NewCart(userID int64) *Cart {
	return &Cart{
		UserID:    userID,
		Items:     make(map[int]int),
		CreatedAt: time.Now(),
	}
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Add increments the quantity of an item, inserting it if absent.
func (c *Cart) Add(itemID, quantity int) {
	if c.Items == nil {
		c.Items = make(map[int]int)
	}
	c.Items[itemID] += quantity
}

// SetQuantity overwrites an item's quantity. A quantity of zero or less
// removes the entry entirely.
func (c *Cart) SetQuantity(itemID, quantity int) {
	if c.Items == nil {
		c.Items = make(map[int]int)
	}
	if quantity <= 0 {
		delete(c.Items, itemID)
		return
	}
	c.Items[itemID] = quantity
}

// Recompute recalculates the subtotal and discount from current menu
// state. Unavailable items stay in the cart but contribute zero to the
// subtotal. If the attached promo is missing or inactive, both the
// discount and the code are dropped; the return value reports that drop
// so callers can tell the user instead of it happening silently.
func (c *Cart) Recompute(menu map[int]MenuItem, promo *PromoCode) (promoDropped bool) {
	subtotal := 0.0
	for itemID, quantity := range c.Items {
		item, ok := menu[itemID]
		if ok && item.Available {
			subtotal += item.Price * float64(quantity)
		}
	}
	c.Subtotal = subtotal

	if c.PromoCode == nil {
		c.Discount = 0
		return false
	}
	if promo == nil || !promo.IsActive {
		c.Discount = 0
		c.PromoCode = nil
		return true
	}
	c.Discount = promo.DiscountFor(subtotal)
	return false
}

// Total is the amount due before the delivery fee.
func (c *Cart) Total() float64 {
	return c.Subtotal - c.Discount
}
