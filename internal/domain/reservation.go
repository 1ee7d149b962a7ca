package domain

import "time"

// Reservation is a table booking. All status transitions are externally
// driven; nothing auto-expires or auto-confirms.
type Reservation struct {
	ID              int64
	UserID          int64
	Date            string // YYYY-MM-DD
	Time            string // HH:MM
	PartySize       int
	Status          ReservationStatus
	SpecialRequests *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
