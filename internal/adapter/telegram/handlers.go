package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"restaurant-bot/internal/domain"
	"restaurant-bot/internal/interfaces"
	"restaurant-bot/internal/validation"
)

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	actor := b.actor(message.From.ID)
	args := strings.Fields(message.CommandArguments())

	switch message.Command() {
	case "start":
		b.handleStart(ctx, message)
	case "help":
		b.reply(chatID, helpText(actor.IsAdmin))
	case "menu":
		b.handleMenu(ctx, chatID, actor)
	case "cart":
		b.handleCart(ctx, chatID, actor)
	case "add":
		b.handleAdd(ctx, chatID, actor, args)
	case "qty":
		b.handleSetQuantity(ctx, chatID, actor, args)
	case "remove":
		b.handleRemove(ctx, chatID, actor, args)
	case "clear":
		b.handleClear(ctx, chatID, actor)
	case "promo":
		b.handlePromo(ctx, chatID, actor, args)
	case "checkout":
		b.handleCheckout(ctx, chatID, actor)
	case "orders":
		b.handleOrders(ctx, chatID, actor)
	case "order":
		b.handleOrder(ctx, chatID, actor, args)
	case "cancel":
		b.handleCancel(ctx, chatID, actor, args)
	case "reorder":
		b.handleReorder(ctx, chatID, actor, args)
	case "reserve":
		b.startReservation(chatID)
	case "reservations":
		b.handleReservations(ctx, chatID, actor)
	case "cancelreservation":
		b.handleCancelReservation(ctx, chatID, actor, args)
	case "review":
		b.startReview(chatID, args)
	case "reviews":
		b.handleReviews(ctx, chatID, actor, args)
	case "profile":
		b.handleProfile(ctx, chatID, actor)
	case "points":
		b.handlePoints(ctx, chatID, actor)
	case "contact":
		b.startContact(chatID)
	case "addaddress":
		b.startAddress(chatID)
	case "deladdress":
		b.handleDeleteAddress(ctx, chatID, actor, args)
	case "setdefault":
		b.handleSetDefaultAddress(ctx, chatID, actor, args)
	case "fav":
		b.handleFavorite(ctx, chatID, actor, args, true)
	case "unfav":
		b.handleFavorite(ctx, chatID, actor, args, false)
	case "favorites":
		b.handleFavorites(ctx, chatID, actor)
	case "setpref":
		b.handleSetPreference(ctx, chatID, actor, args)
	case "hours":
		b.reply(chatID, formatBusinessHours(b.restaurant))

	case "admin", "active", "setstatus", "setavailable", "setprice",
		"createpromo", "promos", "togglepromo", "setreservation":
		b.handleAdminCommand(ctx, message)

	default:
		b.reply(chatID, "Unknown command. Send /help for the list of commands.")
	}
}

func (b *Bot) handleStart(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	actor := b.actor(message.From.ID)

	profile, err := b.services.Profile.Register(ctx, actor, message.From.UserName, message.From.FirstName)
	if err != nil {
		b.replyError(chatID, err)
		return
	}

	greeting := "Welcome"
	if profile.FirstName != "" {
		greeting = "Welcome, " + profile.FirstName
	}
	b.reply(chatID, greeting+"! 🍕\n\nBrowse the /menu, manage your /cart and /checkout when you are ready.\nSend /help for everything I can do.")
}

func (b *Bot) handleMenu(ctx context.Context, chatID int64, actor interfaces.Actor) {
	categories, err := b.services.Menu.Categories(ctx)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	if len(categories) == 0 {
		b.reply(chatID, "The menu is empty right now. Check back soon!")
		return
	}
	b.replyWithKeyboard(chatID, "Pick a category:", categoriesKeyboard(categories))
}

func (b *Bot) handleCart(ctx context.Context, chatID int64, actor interfaces.Actor) {
	result, err := b.services.Cart.View(ctx, actor)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	if result.PromoDropped {
		b.reply(chatID, "Your promo code is no longer valid and was removed from the cart.")
	}
	b.reply(chatID, formatCart(result))
}

func (b *Bot) handleAdd(ctx context.Context, chatID int64, actor interfaces.Actor, args []string) {
	if len(args) < 1 {
		b.reply(chatID, "Usage: /add <item id> [quantity]")
		return
	}
	itemID, err := strconv.Atoi(args[0])
	if err != nil {
		b.reply(chatID, "The item id must be a number.")
		return
	}
	quantity := 1
	if len(args) > 1 {
		if quantity, err = strconv.Atoi(args[1]); err != nil {
			b.reply(chatID, "The quantity must be a number.")
			return
		}
	}

	result, err := b.services.Cart.AddItem(ctx, actor, itemID, quantity)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, "Added! 🛒\n\n"+formatCart(result))
}

func (b *Bot) handleSetQuantity(ctx context.Context, chatID int64, actor interfaces.Actor, args []string) {
	if len(args) < 2 {
		b.reply(chatID, "Usage: /qty <item id> <quantity>")
		return
	}
	itemID, err1 := strconv.Atoi(args[0])
	quantity, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		b.reply(chatID, "Both the item id and the quantity must be numbers.")
		return
	}

	result, err := b.services.Cart.SetItemQuantity(ctx, actor, itemID, quantity)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, formatCart(result))
}

func (b *Bot) handleRemove(ctx context.Context, chatID int64, actor interfaces.Actor, args []string) {
	if len(args) < 1 {
		b.reply(chatID, "Usage: /remove <item id>")
		return
	}
	itemID, err := strconv.Atoi(args[0])
	if err != nil {
		b.reply(chatID, "The item id must be a number.")
		return
	}

	result, err := b.services.Cart.RemoveItem(ctx, actor, itemID)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, formatCart(result))
}

func (b *Bot) handleClear(ctx context.Context, chatID int64, actor interfaces.Actor) {
	if err := b.services.Cart.Clear(ctx, actor); err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, "Your cart is now empty.")
}

func (b *Bot) handlePromo(ctx context.Context, chatID int64, actor interfaces.Actor, args []string) {
	if len(args) < 1 {
		b.reply(chatID, "Usage: /promo <code>")
		return
	}

	result, applied, err := b.services.Cart.ApplyPromo(ctx, actor, args[0])
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	if !applied {
		b.reply(chatID, "That promo code is not valid.")
		return
	}
	b.reply(chatID, "Promo applied! 🎉\n\n"+formatCart(result))
}

// handleCheckout validates the cart against the minimum order before
// starting the address flow. Ordering outside business hours is allowed
// with a warning.
func (b *Bot) handleCheckout(ctx context.Context, chatID int64, actor interfaces.Actor) {
	result, err := b.services.Cart.View(ctx, actor)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	if result.Cart.IsEmpty() {
		b.replyError(chatID, domain.ErrCartEmpty)
		return
	}
	if result.Cart.Total() < b.restaurant.MinOrder {
		b.reply(chatID, fmt.Sprintf("The minimum order is %s. Your cart totals %s.",
			formatMoney(b.restaurant.MinOrder), formatMoney(result.Cart.Total())))
		return
	}
	if !b.restaurant.IsOpenAt(time.Now()) {
		b.reply(chatID, "Heads up: we are currently closed, so your order will be prepared when we open.")
	}

	s := b.session(chatID)
	s.state = stateCheckoutAddress
	s.checkout = interfaces.CheckoutCommand{}
	b.reply(chatID, "Where should we deliver? Send your address, or "+skipToken+" for pickup.")
}

func (b *Bot) finishCheckout(ctx context.Context, chatID int64, userID int64, cmd interfaces.CheckoutCommand) {
	order, err := b.services.Order.Checkout(ctx, b.actor(userID), cmd)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	points := domain.LoyaltyPointsFor(order.Subtotal)
	b.reply(chatID, fmt.Sprintf("Order #%d placed! 🎉\nYou earned %d loyalty points.\n\n%s",
		order.ID, points, formatOrder(order)))
}

func (b *Bot) handleOrders(ctx context.Context, chatID int64, actor interfaces.Actor) {
	orders, err := b.services.Order.History(ctx, actor, 10)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, formatOrderList(orders))
}

func (b *Bot) handleOrder(ctx context.Context, chatID int64, actor interfaces.Actor, args []string) {
	orderID, ok := parseID(args)
	if !ok {
		b.reply(chatID, "Usage: /order <order id>")
		return
	}
	order, err := b.services.Order.Get(ctx, actor, orderID)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, formatOrder(order))
}

func (b *Bot) handleCancel(ctx context.Context, chatID int64, actor interfaces.Actor, args []string) {
	orderID, ok := parseID(args)
	if !ok {
		b.reply(chatID, "Usage: /cancel <order id>")
		return
	}
	order, err := b.services.Order.Cancel(ctx, actor, orderID)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, fmt.Sprintf("Order #%d has been cancelled.", order.ID))
}

func (b *Bot) handleReorder(ctx context.Context, chatID int64, actor interfaces.Actor, args []string) {
	orderID, ok := parseID(args)
	if !ok {
		b.reply(chatID, "Usage: /reorder <order id>")
		return
	}
	result, err := b.services.Order.Reorder(ctx, actor, orderID)
	if err != nil {
		b.replyError(chatID, err)
		return
	}

	text := fmt.Sprintf("Added %d item(s) back to your cart.", result.Added)
	if result.Skipped > 0 {
		text += fmt.Sprintf(" %d item(s) are no longer available and were skipped.", result.Skipped)
	}
	b.reply(chatID, text+"\n\n"+formatCart(result.Cart))
}

func (b *Bot) startReservation(chatID int64) {
	s := b.session(chatID)
	s.state = stateReserveDate
	s.reservation = interfaces.ReservationCommand{}
	b.reply(chatID, "Let's book a table. What date? (YYYY-MM-DD)")
}

func (b *Bot) finishReservation(ctx context.Context, chatID int64, userID int64, cmd interfaces.ReservationCommand) {
	reservation, err := b.services.Reservation.Create(ctx, b.actor(userID), cmd)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, fmt.Sprintf("Reservation #%d requested for %s at %s, party of %d. We will confirm shortly.",
		reservation.ID, reservation.Date, reservation.Time, reservation.PartySize))
}

func (b *Bot) handleReservations(ctx context.Context, chatID int64, actor interfaces.Actor) {
	reservations, err := b.services.Reservation.List(ctx, actor)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, formatReservations(reservations))
}

func (b *Bot) handleCancelReservation(ctx context.Context, chatID int64, actor interfaces.Actor, args []string) {
	reservationID, ok := parseID(args)
	if !ok {
		b.reply(chatID, "Usage: /cancelreservation <reservation id>")
		return
	}
	reservation, err := b.services.Reservation.Cancel(ctx, actor, reservationID)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, fmt.Sprintf("Reservation #%d has been cancelled.", reservation.ID))
}

// startReview accepts "/review", "/review order <id>" or "/review item <id>".
func (b *Bot) startReview(chatID int64, args []string) {
	cmd := interfaces.ReviewCommand{}
	if len(args) >= 2 {
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			b.reply(chatID, "The id must be a number.")
			return
		}
		switch args[0] {
		case "order":
			cmd.OrderID = &id
		case "item":
			itemID := int(id)
			cmd.ItemID = &itemID
		default:
			b.reply(chatID, "Usage: /review [order <id> | item <id>]")
			return
		}
	}

	s := b.session(chatID)
	s.state = stateReviewRating
	s.review = cmd
	b.reply(chatID, "How would you rate us, from 1 to 5?")
}

func (b *Bot) finishReview(ctx context.Context, chatID int64, userID int64, cmd interfaces.ReviewCommand) {
	if _, err := b.services.Review.Create(ctx, b.actor(userID), cmd); err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, "Thanks for your feedback! ⭐")
}

func (b *Bot) handleReviews(ctx context.Context, chatID int64, actor interfaces.Actor, args []string) {
	if len(args) < 1 {
		b.reply(chatID, "Usage: /reviews <item id>")
		return
	}
	itemID, err := strconv.Atoi(args[0])
	if err != nil {
		b.reply(chatID, "The item id must be a number.")
		return
	}

	reviews, err := b.services.Review.ForItem(ctx, actor, itemID)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, formatItemReviews(reviews))
}

func (b *Bot) handleProfile(ctx context.Context, chatID int64, actor interfaces.Actor) {
	profile, err := b.services.Profile.Get(ctx, actor)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, formatProfile(profile))
}

func (b *Bot) handlePoints(ctx context.Context, chatID int64, actor interfaces.Actor) {
	profile, err := b.services.Profile.Get(ctx, actor)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, fmt.Sprintf("You have %d loyalty points. Every %d points are worth %s off a future order.",
		profile.LoyaltyPoints, domain.LoyaltyRedemptionRate, formatMoney(1)))
}

func (b *Bot) startContact(chatID int64) {
	s := b.session(chatID)
	s.state = stateContactPhone
	s.phone = nil
	b.reply(chatID, "What is your phone number? Send "+skipToken+" to skip.")
}

func (b *Bot) finishContact(ctx context.Context, chatID int64, userID int64, phone, email *string) {
	if phone == nil && email == nil {
		b.reply(chatID, "Nothing to update.")
		return
	}
	if err := b.services.Profile.UpdateContact(ctx, b.actor(userID), phone, email); err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, "Contact details updated.")
}

func (b *Bot) startAddress(chatID int64) {
	s := b.session(chatID)
	s.state = stateAddressLabel
	s.address = interfaces.AddressCommand{}
	b.reply(chatID, "Let's save an address. Give it a label (e.g. Home), or send "+skipToken+".")
}

func (b *Bot) finishAddress(ctx context.Context, chatID int64, userID int64, cmd interfaces.AddressCommand) {
	addressID, err := b.services.Profile.AddAddress(ctx, b.actor(userID), cmd)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, fmt.Sprintf("Address #%d saved.", addressID))
}

func (b *Bot) handleDeleteAddress(ctx context.Context, chatID int64, actor interfaces.Actor, args []string) {
	addressID, ok := parseID(args)
	if !ok {
		b.reply(chatID, "Usage: /deladdress <address id>")
		return
	}
	if err := b.services.Profile.DeleteAddress(ctx, actor, int(addressID)); err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, "Address deleted.")
}

func (b *Bot) handleSetDefaultAddress(ctx context.Context, chatID int64, actor interfaces.Actor, args []string) {
	addressID, ok := parseID(args)
	if !ok {
		b.reply(chatID, "Usage: /setdefault <address id>")
		return
	}
	if err := b.services.Profile.SetDefaultAddress(ctx, actor, int(addressID)); err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, "Default address updated.")
}

func (b *Bot) handleFavorite(ctx context.Context, chatID int64, actor interfaces.Actor, args []string, add bool) {
	itemID, ok := parseID(args)
	if !ok {
		b.reply(chatID, "Usage: /fav <item id> or /unfav <item id>")
		return
	}

	var err error
	if add {
		err = b.services.Profile.AddFavorite(ctx, actor, int(itemID))
	} else {
		err = b.services.Profile.RemoveFavorite(ctx, actor, int(itemID))
	}
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	if add {
		b.reply(chatID, "Added to your favorites. ❤️")
	} else {
		b.reply(chatID, "Removed from your favorites.")
	}
}

func (b *Bot) handleFavorites(ctx context.Context, chatID int64, actor interfaces.Actor) {
	items, err := b.services.Profile.Favorites(ctx, actor)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	if len(items) == 0 {
		b.reply(chatID, "You have no favorites yet. Browse the /menu and /fav what you like.")
		return
	}
	b.reply(chatID, formatMenuItems("Your favorites ❤️", items))
}

func (b *Bot) handleSetPreference(ctx context.Context, chatID int64, actor interfaces.Actor, args []string) {
	if len(args) < 2 {
		b.reply(chatID, "Usage: /setpref <key> <value>")
		return
	}
	if err := b.services.Profile.SetPreference(ctx, actor, args[0], strings.Join(args[1:], " ")); err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, "Preference saved.")
}

func parseID(args []string) (int64, bool) {
	if len(args) < 1 {
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// replyError turns workflow errors into user-facing messages. Anything
// unexpected gets logged and a generic apology.
func (b *Bot) replyError(chatID int64, err error) {
	var validationErr validation.ValidationError
	switch {
	case errors.As(err, &validationErr):
		b.reply(chatID, validationErr.Message)
	case errors.Is(err, domain.ErrCartEmpty):
		b.reply(chatID, "Your cart is empty. Browse the /menu to add something first.")
	case errors.Is(err, domain.ErrCancellationWindowExpired):
		b.reply(chatID, "This order can no longer be cancelled. Contact us if something is wrong.")
	case errors.Is(err, domain.ErrPermissionDenied):
		b.reply(chatID, "You are not allowed to do that.")
	case errors.Is(err, domain.ErrNotFound):
		b.reply(chatID, "I could not find that.")
	case errors.Is(err, domain.ErrDuplicatePromoCode):
		b.reply(chatID, "A promo code with that name already exists.")
	case errors.Is(err, domain.ErrInvalidStatus):
		b.reply(chatID, "That is not a valid status.")
	default:
		b.logger.Error("handler_failed", "Unexpected error in bot handler", "", nil, err)
		b.reply(chatID, "Something went wrong. Please try again.")
	}
}

func helpText(isAdmin bool) string {
	text := `🍕 Here is what I can do:

Menu and cart
/menu - browse the menu
/add <id> [qty] - add an item to your cart
/qty <id> <n> - change an item's quantity
/remove <id> - remove an item
/cart - view your cart
/clear - empty your cart
/promo <code> - apply a promo code

Orders
/checkout - place your order
/orders - your recent orders
/order <id> - order details
/cancel <id> - cancel a pending order
/reorder <id> - add a past order to your cart

Reservations
/reserve - book a table
/reservations - your bookings
/cancelreservation <id> - cancel a booking

Reviews
/review [order <id> | item <id>] - leave a review
/reviews <item id> - read item reviews

Profile
/profile - your profile
/points - loyalty points
/contact - update phone and email
/addaddress - save a delivery address
/deladdress <id> - delete an address
/setdefault <id> - choose your default address
/fav <id> / /unfav <id> - manage favorites
/favorites - your favorite items
/setpref <key> <value> - save a preference
/hours - business hours`

	if isAdmin {
		text += `

Admin
/admin - dashboard
/active - active orders
/setstatus <order id> <status> - update an order
/setavailable <item id> on|off - toggle availability
/setprice <item id> <price> - change a price
/createpromo <code> <percentage|fixed> <value> [min order] [max uses] - new promo
/promos - active promo codes
/togglepromo <code> on|off - enable or disable a promo
/setreservation <id> <status> - update a reservation`
	}
	return text
}
