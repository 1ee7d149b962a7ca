package interfaces

import (
	"context"

	"restaurant-bot/internal/domain"
)

// Repositories expose per-entity-collection access; nothing ever
// rewrites the whole dataset for a single-record change.

type MenuRepository interface {
	ListCategories(ctx context.Context) ([]string, error)
	ListByCategory(ctx context.Context, category string) ([]domain.MenuItem, error)
	ListAll(ctx context.Context) ([]domain.MenuItem, error)
	FindByID(ctx context.Context, itemID int) (*domain.MenuItem, error)
	FindByIDs(ctx context.Context, itemIDs []int) (map[int]domain.MenuItem, error)
	SetAvailability(ctx context.Context, itemID int, available bool) error
	SetPrice(ctx context.Context, itemID int, price float64) error
	CountAll(ctx context.Context) (int, error)
}

type CartRepository interface {
	// Get returns the user's cart, creating an empty one if absent.
	Get(ctx context.Context, userID int64) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Clear(ctx context.Context, userID int64) error
	CountActive(ctx context.Context) (int, error)
}

type OrderRepository interface {
	// CreateFromCheckout persists the order, credits the user's loyalty
	// points and lifetime order count, and clears the cart, all in one
	// transaction with the cart row locked against concurrent writers.
	// The order id is allocated from a database sequence.
	CreateFromCheckout(ctx context.Context, order *domain.Order, loyaltyPoints int) error
	FindByID(ctx context.Context, orderID int64) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.Order, error)
	ListByStatuses(ctx context.Context, statuses []domain.Status) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status domain.Status) error
	CountAll(ctx context.Context) (int, error)
	// DeliveredStats returns the number of delivered orders and their
	// summed charge (subtotal + delivery fee - discount).
	DeliveredStats(ctx context.Context) (count int, revenue float64, err error)
}

type UserRepository interface {
	// GetOrCreate loads a profile, registering the user on first contact.
	GetOrCreate(ctx context.Context, userID int64, username, firstName string) (*domain.UserProfile, error)
	Find(ctx context.Context, userID int64) (*domain.UserProfile, error)
	UpdateContact(ctx context.Context, userID int64, phone, email *string) error
	SetPreference(ctx context.Context, userID int64, key, value string) error
	// AddAddress saves an address; when it is the user's first address
	// or flagged default, every other address loses the default flag in
	// the same transaction.
	AddAddress(ctx context.Context, userID int64, address domain.Address) (int, error)
	DeleteAddress(ctx context.Context, userID int64, addressID int) error
	SetDefaultAddress(ctx context.Context, userID int64, addressID int) error
	AddFavorite(ctx context.Context, userID int64, itemID int) error
	RemoveFavorite(ctx context.Context, userID int64, itemID int) error
	CountAll(ctx context.Context) (int, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) error
	FindByID(ctx context.Context, reservationID int64) (*domain.Reservation, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, reservationID int64, status domain.ReservationStatus) error
	CountAll(ctx context.Context) (int, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ListByItem(ctx context.Context, itemID int) ([]*domain.Review, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Review, error)
	AverageForItem(ctx context.Context, itemID int) (float64, int, error)
}

type PromoRepository interface {
	// Create fails with domain.ErrDuplicatePromoCode when the code
	// string is already taken.
	Create(ctx context.Context, promo *domain.PromoCode) error
	Find(ctx context.Context, code string) (*domain.PromoCode, error)
	ListActive(ctx context.Context) ([]*domain.PromoCode, error)
	SetActive(ctx context.Context, code string, active bool) error
	CountActive(ctx context.Context) (int, error)
}
