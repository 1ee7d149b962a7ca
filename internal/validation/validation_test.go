package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		wantErr  bool
	}{
		{"minimum", 1, false},
		{"maximum", 100, false},
		{"zero", 0, true},
		{"negative", -1, true},
		{"too large", 101, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Quantity(tt.quantity)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRating(t *testing.T) {
	assert.NoError(t, Rating(1))
	assert.NoError(t, Rating(5))
	assert.Error(t, Rating(0))
	assert.Error(t, Rating(6))
}

func TestDate(t *testing.T) {
	assert.NoError(t, Date("2026-09-15"))
	assert.Error(t, Date(""))
	assert.Error(t, Date("15.09.2026"))
	assert.Error(t, Date("2026-13-40"))
}

func TestTime(t *testing.T) {
	assert.NoError(t, Time("19:30"))
	assert.Error(t, Time(""))
	assert.Error(t, Time("7pm"))
	assert.Error(t, Time("25:00"))
}

func TestPartySize(t *testing.T) {
	assert.NoError(t, PartySize(1))
	assert.NoError(t, PartySize(20))
	assert.Error(t, PartySize(0))
	assert.Error(t, PartySize(21))
}

func TestPhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain digits", "77071234567", "77071234567", false},
		{"formatted", "+7 (707) 123-45-67", "77071234567", false},
		{"too short", "12345", "", true},
		{"too long", "1234567890123456", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Phone(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEmail(t *testing.T) {
	got, err := Email("User@Example.COM")
	assert.NoError(t, err)
	assert.Equal(t, "user@example.com", got)

	_, err = Email("")
	assert.Error(t, err)
	_, err = Email("not-an-email")
	assert.Error(t, err)
}

func TestPrice(t *testing.T) {
	assert.NoError(t, Price(0))
	assert.NoError(t, Price(12.50))
	assert.Error(t, Price(-1))
}

func TestValidationErrorMessage(t *testing.T) {
	err := ValidationError{Field: "rating", Message: "rating must be between 1 and 5"}
	assert.Equal(t, "rating: rating must be between 1 and 5", err.Error())
}
