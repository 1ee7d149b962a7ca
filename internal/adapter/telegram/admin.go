package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"restaurant-bot/internal/domain"
	"restaurant-bot/internal/interfaces"
)

func (b *Bot) handleAdminCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	actor := b.actor(message.From.ID)
	args := strings.Fields(message.CommandArguments())

	if !actor.IsAdmin {
		b.replyError(chatID, domain.ErrPermissionDenied)
		return
	}

	switch message.Command() {
	case "admin":
		b.handleDashboard(ctx, chatID, actor)
	case "active":
		b.handleActiveOrders(ctx, chatID, actor)
	case "setstatus":
		b.handleSetOrderStatus(ctx, chatID, actor, args)
	case "setavailable":
		b.handleSetAvailability(ctx, chatID, actor, args)
	case "setprice":
		b.handleSetPrice(ctx, chatID, actor, args)
	case "createpromo":
		b.handleCreatePromo(ctx, chatID, actor, args)
	case "promos":
		b.handleListPromos(ctx, chatID, actor)
	case "togglepromo":
		b.handleTogglePromo(ctx, chatID, actor, args)
	case "setreservation":
		b.handleSetReservationStatus(ctx, chatID, actor, args)
	}
}

func (b *Bot) handleDashboard(ctx context.Context, chatID int64, actor interfaces.Actor) {
	stats, err := b.services.Admin.Stats(ctx, actor)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, formatDashboard(stats))
}

func (b *Bot) handleActiveOrders(ctx context.Context, chatID int64, actor interfaces.Actor) {
	orders, err := b.services.Order.ListActive(ctx, actor)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	if len(orders) == 0 {
		b.reply(chatID, "No active orders right now.")
		return
	}
	b.reply(chatID, formatOrderList(orders))
}

func (b *Bot) handleSetOrderStatus(ctx context.Context, chatID int64, actor interfaces.Actor, args []string) {
	if len(args) < 2 {
		b.reply(chatID, "Usage: /setstatus <order id> <"+strings.Join(statusNames(), "|")+">")
		return
	}
	orderID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		b.reply(chatID, "The order id must be a number.")
		return
	}

	order, err := b.services.Order.SetStatus(ctx, actor, orderID, domain.Status(args[1]))
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, fmt.Sprintf("Order #%d is now %s.", order.ID, order.Status))
}

func (b *Bot) handleSetAvailability(ctx context.Context, chatID int64, actor interfaces.Actor, args []string) {
	if len(args) < 2 {
		b.reply(chatID, "Usage: /setavailable <item id> on|off")
		return
	}
	itemID, err := strconv.Atoi(args[0])
	if err != nil {
		b.reply(chatID, "The item id must be a number.")
		return
	}
	available := args[1] == "on"

	if err := b.services.Admin.SetItemAvailability(ctx, actor, itemID, available); err != nil {
		b.replyError(chatID, err)
		return
	}
	if available {
		b.reply(chatID, fmt.Sprintf("Item %d is back on the menu.", itemID))
	} else {
		b.reply(chatID, fmt.Sprintf("Item %d is now marked unavailable.", itemID))
	}
}

func (b *Bot) handleSetPrice(ctx context.Context, chatID int64, actor interfaces.Actor, args []string) {
	if len(args) < 2 {
		b.reply(chatID, "Usage: /setprice <item id> <price>")
		return
	}
	itemID, err := strconv.Atoi(args[0])
	if err != nil {
		b.reply(chatID, "The item id must be a number.")
		return
	}
	price, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		b.reply(chatID, "The price must be a number.")
		return
	}

	if err := b.services.Admin.SetItemPrice(ctx, actor, itemID, price); err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, fmt.Sprintf("Item %d now costs %s.", itemID, formatMoney(price)))
}

func (b *Bot) handleCreatePromo(ctx context.Context, chatID int64, actor interfaces.Actor, args []string) {
	if len(args) < 3 {
		b.reply(chatID, "Usage: /createpromo <code> <percentage|fixed> <value> [min order] [max uses]")
		return
	}

	cmd := interfaces.PromoCommand{
		Code: args[0],
		Type: domain.DiscountType(args[1]),
	}

	value, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		b.reply(chatID, "The discount value must be a number.")
		return
	}
	cmd.Value = value

	if len(args) > 3 {
		if cmd.MinOrder, err = strconv.ParseFloat(args[3], 64); err != nil {
			b.reply(chatID, "The minimum order must be a number.")
			return
		}
	}
	if len(args) > 4 {
		maxUses, err := strconv.Atoi(args[4])
		if err != nil {
			b.reply(chatID, "The usage cap must be a number.")
			return
		}
		cmd.MaxUses = &maxUses
	}

	promo, err := b.services.Admin.CreatePromo(ctx, actor, cmd)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, fmt.Sprintf("Promo %s created: %s", promo.Code, formatDiscount(promo)))
}

func (b *Bot) handleListPromos(ctx context.Context, chatID int64, actor interfaces.Actor) {
	promos, err := b.services.Admin.ListPromos(ctx, actor)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	if len(promos) == 0 {
		b.reply(chatID, "No active promo codes.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Active promo codes:\n")
	for _, promo := range promos {
		sb.WriteString(fmt.Sprintf("\n%s - %s", promo.Code, formatDiscount(promo)))
		if promo.MinOrder > 0 {
			sb.WriteString(fmt.Sprintf(" (min order %s)", formatMoney(promo.MinOrder)))
		}
	}
	b.reply(chatID, sb.String())
}

func (b *Bot) handleTogglePromo(ctx context.Context, chatID int64, actor interfaces.Actor, args []string) {
	if len(args) < 2 {
		b.reply(chatID, "Usage: /togglepromo <code> on|off")
		return
	}

	active := args[1] == "on"
	if err := b.services.Admin.SetPromoActive(ctx, actor, args[0], active); err != nil {
		b.replyError(chatID, err)
		return
	}
	if active {
		b.reply(chatID, "Promo code enabled.")
	} else {
		b.reply(chatID, "Promo code disabled.")
	}
}

func (b *Bot) handleSetReservationStatus(ctx context.Context, chatID int64, actor interfaces.Actor, args []string) {
	if len(args) < 2 {
		b.reply(chatID, "Usage: /setreservation <id> <pending|confirmed|cancelled|completed>")
		return
	}
	reservationID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		b.reply(chatID, "The reservation id must be a number.")
		return
	}

	reservation, err := b.services.Reservation.SetStatus(ctx, actor, reservationID, domain.ReservationStatus(args[1]))
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, fmt.Sprintf("Reservation #%d is now %s.", reservation.ID, reservation.Status))
}

func statusNames() []string {
	names := make([]string, len(domain.OrderStatuses))
	for i, status := range domain.OrderStatuses {
		names[i] = string(status)
	}
	return names
}
