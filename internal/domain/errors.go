package domain

import "errors"

var (
	// ErrCartEmpty is returned when checkout is attempted on a cart
	// with no item entries.
	ErrCartEmpty = errors.New("cart is empty")

	// ErrMinOrderNotMet is returned by the boundary when the cart total
	// after discount is below the configured minimum order amount.
	ErrMinOrderNotMet = errors.New("minimum order amount not met")

	// ErrCancellationWindowExpired is returned when a user tries to
	// cancel an order that is no longer pending or whose cancellation
	// window has elapsed.
	ErrCancellationWindowExpired = errors.New("cancellation window has expired")

	// ErrPermissionDenied is returned when an actor invokes an
	// admin-only operation or touches a record they do not own.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicatePromoCode is returned when creating a promo code
	// whose code string already exists.
	ErrDuplicatePromoCode = errors.New("promo code already exists")

	// ErrInvalidStatus is returned when an unknown status value is
	// supplied for an order or reservation update.
	ErrInvalidStatus = errors.New("invalid status")
)
