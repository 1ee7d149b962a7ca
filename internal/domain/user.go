package domain

import "time"

// Address is a saved delivery address. Exactly one address per user may
// carry the default flag at any time.
type Address struct {
	ID        int
	Label     string
	Street    string
	City      string
	Postal    string
	IsDefault bool
}

// UserProfile holds everything the bot knows about a user.
type UserProfile struct {
	UserID        int64
	Username      string
	FirstName     string
	Phone         *string
	Email         *string
	LoyaltyPoints int
	TotalOrders   int
	Addresses     []Address
	Favorites     []int
	Preferences   map[string]string
	CreatedAt     time.Time
}

// DefaultAddress returns the user's default address, or nil if none is
// saved.
func (u *UserProfile) DefaultAddress() *Address {
	for i := range u.Addresses {
		if u.Addresses[i].IsDefault {
			return &u.Addresses[i]
		}
	}
	return nil
}

// IsFavorite reports whether an item is in the user's favorites.
func (u *UserProfile) IsFavorite(itemID int) bool {
	for _, id := range u.Favorites {
		if id == itemID {
			return true
		}
	}
	return false
}
