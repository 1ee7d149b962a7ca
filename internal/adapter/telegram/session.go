package telegram

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"restaurant-bot/internal/interfaces"
)

type flowState int

const (
	stateIdle flowState = iota
	stateCheckoutAddress
	stateCheckoutNotes
	stateReserveDate
	stateReserveTime
	stateReserveParty
	stateReserveRequests
	stateReviewRating
	stateReviewComment
	stateContactPhone
	stateContactEmail
	stateAddressLabel
	stateAddressStreet
	stateAddressCity
	stateAddressPostal
)

// session carries the partial input of a multi-step flow for one chat.
type session struct {
	state       flowState
	checkout    interfaces.CheckoutCommand
	reservation interfaces.ReservationCommand
	review      interfaces.ReviewCommand
	address     interfaces.AddressCommand
	phone       *string
}

// skipToken lets users pass on an optional prompt.
const skipToken = "-"

func optional(text string) *string {
	text = strings.TrimSpace(text)
	if text == "" || text == skipToken {
		return nil
	}
	return &text
}

func (b *Bot) continueFlow(ctx context.Context, message *tgbotapi.Message, s *session) {
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)

	switch s.state {
	case stateCheckoutAddress:
		s.checkout.DeliveryAddress = optional(text)
		s.state = stateCheckoutNotes
		b.reply(chatID, "Any notes for the kitchen? Send "+skipToken+" to skip.")

	case stateCheckoutNotes:
		s.checkout.Notes = optional(text)
		b.finishCheckout(ctx, chatID, message.From.ID, s.checkout)
		b.clearSession(chatID)

	case stateReserveDate:
		s.reservation.Date = text
		s.state = stateReserveTime
		b.reply(chatID, "What time? (HH:MM)")

	case stateReserveTime:
		s.reservation.Time = text
		s.state = stateReserveParty
		b.reply(chatID, "How many people?")

	case stateReserveParty:
		party, err := strconv.Atoi(text)
		if err != nil {
			b.reply(chatID, "Please send the party size as a number.")
			return
		}
		s.reservation.PartySize = party
		s.state = stateReserveRequests
		b.reply(chatID, "Any special requests? Send "+skipToken+" to skip.")

	case stateReserveRequests:
		s.reservation.SpecialRequests = optional(text)
		b.finishReservation(ctx, chatID, message.From.ID, s.reservation)
		b.clearSession(chatID)

	case stateReviewRating:
		rating, err := strconv.Atoi(text)
		if err != nil {
			b.reply(chatID, "Please send a rating from 1 to 5.")
			return
		}
		s.review.Rating = rating
		s.state = stateReviewComment
		b.reply(chatID, "Add a comment, or send "+skipToken+" to skip.")

	case stateReviewComment:
		s.review.Comment = optional(text)
		b.finishReview(ctx, chatID, message.From.ID, s.review)
		b.clearSession(chatID)

	case stateContactPhone:
		s.phone = optional(text)
		s.state = stateContactEmail
		b.reply(chatID, "And your email? Send "+skipToken+" to skip.")

	case stateContactEmail:
		email := optional(text)
		b.finishContact(ctx, chatID, message.From.ID, s.phone, email)
		b.clearSession(chatID)

	case stateAddressLabel:
		if label := optional(text); label != nil {
			s.address.Label = *label
		}
		s.state = stateAddressStreet
		b.reply(chatID, "Street and house number?")

	case stateAddressStreet:
		s.address.Street = text
		s.state = stateAddressCity
		b.reply(chatID, "City?")

	case stateAddressCity:
		s.address.City = text
		s.state = stateAddressPostal
		b.reply(chatID, "Postal code? Send "+skipToken+" to skip.")

	case stateAddressPostal:
		if postal := optional(text); postal != nil {
			s.address.Postal = *postal
		}
		b.finishAddress(ctx, chatID, message.From.ID, s.address)
		b.clearSession(chatID)

	default:
		b.clearSession(chatID)
	}
}
