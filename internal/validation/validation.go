package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ValidationError describes a rejected input field. It is always
// recoverable and surfaced to the user as a message.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const (
	MinRating   = 1
	MaxRating   = 5
	MinQuantity = 1
	MaxQuantity = 100
	MaxParty    = 20
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
var nonDigitRegex = regexp.MustCompile(`\D`)

// Quantity validates a cart item quantity.
func Quantity(quantity int) error {
	if quantity < MinQuantity {
		return ValidationError{Field: "quantity", Message: fmt.Sprintf("quantity must be at least %d", MinQuantity)}
	}
	if quantity > MaxQuantity {
		return ValidationError{Field: "quantity", Message: fmt.Sprintf("quantity must not exceed %d", MaxQuantity)}
	}
	return nil
}

// Rating validates a review rating.
func Rating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return ValidationError{Field: "rating", Message: fmt.Sprintf("rating must be between %d and %d", MinRating, MaxRating)}
	}
	return nil
}

// Date validates a YYYY-MM-DD date string.
func Date(date string) error {
	if date == "" {
		return ValidationError{Field: "date", Message: "date is required"}
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"}
	}
	return nil
}

// Time validates an HH:MM time string.
func Time(value string) error {
	if value == "" {
		return ValidationError{Field: "time", Message: "time is required"}
	}
	if _, err := time.Parse("15:04", value); err != nil {
		return ValidationError{Field: "time", Message: "time must be in HH:MM format"}
	}
	return nil
}

// PartySize validates the number of guests on a reservation.
func PartySize(size int) error {
	if size < 1 {
		return ValidationError{Field: "party_size", Message: "party size must be at least 1"}
	}
	if size > MaxParty {
		return ValidationError{Field: "party_size", Message: fmt.Sprintf("party size must not exceed %d", MaxParty)}
	}
	return nil
}

// Phone validates and normalizes a phone number to bare digits.
func Phone(phone string) (string, error) {
	if strings.TrimSpace(phone) == "" {
		return "", ValidationError{Field: "phone", Message: "phone number is required"}
	}
	cleaned := nonDigitRegex.ReplaceAllString(phone, "")
	if len(cleaned) < 7 || len(cleaned) > 15 {
		return "", ValidationError{Field: "phone", Message: "phone number must contain 7-15 digits"}
	}
	return cleaned, nil
}

// Email validates and lowercases an email address.
func Email(email string) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return "", ValidationError{Field: "email", Message: "email format is invalid"}
	}
	return strings.ToLower(email), nil
}

// Price validates a menu item price.
func Price(price float64) error {
	if price < 0 {
		return ValidationError{Field: "price", Message: "price must not be negative"}
	}
	return nil
}
