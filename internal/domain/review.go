package domain

import "time"

// Review is a 1-5 rating with an optional comment, optionally tied to
// an order or a menu item.
type Review struct {
	ID        int64
	UserID    int64
	Rating    int
	Comment   *string
	OrderID   *int64
	ItemID    *int
	CreatedAt time.Time
}
