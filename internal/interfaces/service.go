package interfaces

import (
	"context"

	"restaurant-bot/internal/domain"
)

// Actor is the authenticated caller of a workflow operation. The
// workflow layer performs its own authorization from this value instead
// of relying on transport-level dispatch.
type Actor struct {
	UserID  int64
	IsAdmin bool
}

// CartLine pairs a cart entry with its current menu item state.
type CartLine struct {
	Item     domain.MenuItem
	Quantity int
}

// CartResult describes the cart after a mutation. PromoDropped reports
// that an attached promo code became invalid and was removed during
// recomputation, so the caller can surface it to the user.
type CartResult struct {
	Cart         *domain.Cart
	Lines        []CartLine
	PromoDropped bool
}

type CheckoutCommand struct {
	DeliveryAddress *string
	Notes           *string
}

// ReorderResult reports how much of a past order made it back into the
// cart; items that are gone or unavailable are skipped.
type ReorderResult struct {
	Cart    *CartResult
	Added   int
	Skipped int
}

// MenuService is the public browsing surface; no actor is needed
// because the menu is the same for everyone.
type MenuService interface {
	Categories(ctx context.Context) ([]string, error)
	ItemsByCategory(ctx context.Context, category string) ([]domain.MenuItem, error)
	Item(ctx context.Context, itemID int) (*domain.MenuItem, error)
}

type CartService interface {
	View(ctx context.Context, actor Actor) (*CartResult, error)
	AddItem(ctx context.Context, actor Actor, itemID, quantity int) (*CartResult, error)
	SetItemQuantity(ctx context.Context, actor Actor, itemID, quantity int) (*CartResult, error)
	RemoveItem(ctx context.Context, actor Actor, itemID int) (*CartResult, error)
	Clear(ctx context.Context, actor Actor) error
	// ApplyPromo returns applied=false when the code does not exist or
	// is inactive; the cart is left untouched in that case. The promo's
	// minimum-order threshold is not checked here, only at checkout.
	ApplyPromo(ctx context.Context, actor Actor, code string) (result *CartResult, applied bool, err error)
}

type OrderService interface {
	Checkout(ctx context.Context, actor Actor, cmd CheckoutCommand) (*domain.Order, error)
	Get(ctx context.Context, actor Actor, orderID int64) (*domain.Order, error)
	History(ctx context.Context, actor Actor, limit int) ([]*domain.Order, error)
	Cancel(ctx context.Context, actor Actor, orderID int64) (*domain.Order, error)
	// SetStatus is admin-only and accepts any valid status; there is no
	// enforced transition graph for admin updates.
	SetStatus(ctx context.Context, actor Actor, orderID int64, status domain.Status) (*domain.Order, error)
	ListActive(ctx context.Context, actor Actor) ([]*domain.Order, error)
	Reorder(ctx context.Context, actor Actor, orderID int64) (*ReorderResult, error)
}

type AddressCommand struct {
	Label     string
	Street    string
	City      string
	Postal    string
	IsDefault bool
}

type ProfileService interface {
	Get(ctx context.Context, actor Actor) (*domain.UserProfile, error)
	Register(ctx context.Context, actor Actor, username, firstName string) (*domain.UserProfile, error)
	UpdateContact(ctx context.Context, actor Actor, phone, email *string) error
	SetPreference(ctx context.Context, actor Actor, key, value string) error
	AddAddress(ctx context.Context, actor Actor, cmd AddressCommand) (int, error)
	DeleteAddress(ctx context.Context, actor Actor, addressID int) error
	SetDefaultAddress(ctx context.Context, actor Actor, addressID int) error
	AddFavorite(ctx context.Context, actor Actor, itemID int) error
	RemoveFavorite(ctx context.Context, actor Actor, itemID int) error
	Favorites(ctx context.Context, actor Actor) ([]domain.MenuItem, error)
}

type ReservationCommand struct {
	Date            string
	Time            string
	PartySize       int
	SpecialRequests *string
}

type ReservationService interface {
	Create(ctx context.Context, actor Actor, cmd ReservationCommand) (*domain.Reservation, error)
	List(ctx context.Context, actor Actor) ([]*domain.Reservation, error)
	Cancel(ctx context.Context, actor Actor, reservationID int64) (*domain.Reservation, error)
	// SetStatus is admin-only.
	SetStatus(ctx context.Context, actor Actor, reservationID int64, status domain.ReservationStatus) (*domain.Reservation, error)
}

type ReviewCommand struct {
	Rating  int
	Comment *string
	OrderID *int64
	ItemID  *int
}

// ItemReviews is the aggregated review view for a menu item.
type ItemReviews struct {
	Reviews []*domain.Review
	Average float64
	Count   int
}

type ReviewService interface {
	Create(ctx context.Context, actor Actor, cmd ReviewCommand) (*domain.Review, error)
	ForItem(ctx context.Context, actor Actor, itemID int) (*ItemReviews, error)
	Recent(ctx context.Context, actor Actor, limit int) ([]*domain.Review, error)
}

type PromoCommand struct {
	Code       string
	Type       domain.DiscountType
	Value      float64
	MinOrder   float64
	MaxUses    *int
	ValidFrom  *string
	ValidUntil *string
}

// DashboardStats is the admin overview of the whole system.
type DashboardStats struct {
	TotalUsers        int
	TotalOrders       int
	CompletedOrders   int
	ActiveCarts       int
	TotalReservations int
	MenuItems         int
	ActivePromos      int
	TotalRevenue      float64
	AverageOrder      float64
}

type AdminService interface {
	Stats(ctx context.Context, actor Actor) (*DashboardStats, error)
	SetItemAvailability(ctx context.Context, actor Actor, itemID int, available bool) error
	SetItemPrice(ctx context.Context, actor Actor, itemID int, price float64) error
	CreatePromo(ctx context.Context, actor Actor, cmd PromoCommand) (*domain.PromoCode, error)
	SetPromoActive(ctx context.Context, actor Actor, code string, active bool) error
	ListPromos(ctx context.Context, actor Actor) ([]*domain.PromoCode, error)
}
