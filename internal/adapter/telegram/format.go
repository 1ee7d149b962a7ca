package telegram

import (
	"fmt"
	"sort"
	"strings"

	"restaurant-bot/internal/config"
	"restaurant-bot/internal/domain"
	"restaurant-bot/internal/interfaces"
)

func formatMoney(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

func formatMenuItems(title string, items []domain.MenuItem) string {
	var sb strings.Builder
	sb.WriteString(title + "\n")
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("\n%d. %s - %s", item.ID, item.Name, formatMoney(item.Price)))
		if !item.Available {
			sb.WriteString(" (unavailable)")
		}
		if item.Description != "" {
			sb.WriteString("\n   " + item.Description)
		}
	}
	return sb.String()
}

func formatItemDetails(item *domain.MenuItem, reviews *interfaces.ItemReviews) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s - %s\n", item.Name, formatMoney(item.Price)))
	if item.Description != "" {
		sb.WriteString(item.Description + "\n")
	}
	if !item.Available {
		sb.WriteString("Currently unavailable.\n")
	}
	if reviews.Count > 0 {
		sb.WriteString(fmt.Sprintf("\nRated %.1f/5 from %d review(s).", reviews.Average, reviews.Count))
	} else {
		sb.WriteString("\nNo reviews yet. Be the first with /review item " + fmt.Sprint(item.ID))
	}
	return sb.String()
}

func formatCart(result *interfaces.CartResult) string {
	if result.Cart.IsEmpty() {
		return "Your cart is empty. Browse the /menu to add something."
	}

	var sb strings.Builder
	sb.WriteString("🛒 Your cart:\n")
	for _, line := range result.Lines {
		lineTotal := line.Item.Price * float64(line.Quantity)
		sb.WriteString(fmt.Sprintf("\n%dx %s - %s", line.Quantity, line.Item.Name, formatMoney(lineTotal)))
		if !line.Item.Available {
			sb.WriteString(" (unavailable, not charged)")
		}
	}

	sb.WriteString(fmt.Sprintf("\n\nSubtotal: %s", formatMoney(result.Cart.Subtotal)))
	if result.Cart.PromoCode != nil {
		sb.WriteString(fmt.Sprintf("\nPromo %s: -%s", *result.Cart.PromoCode, formatMoney(result.Cart.Discount)))
	}
	sb.WriteString(fmt.Sprintf("\nTotal: %s", formatMoney(result.Cart.Total())))
	sb.WriteString("\n\nReady? Send /checkout")
	return sb.String()
}

var statusEmojis = map[domain.Status]string{
	domain.StatusPending:   "⏳",
	domain.StatusConfirmed: "✅",
	domain.StatusPreparing: "👨‍🍳",
	domain.StatusReady:     "📦",
	domain.StatusDelivered: "🎉",
	domain.StatusCancelled: "❌",
}

func formatOrder(order *domain.Order) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Order #%d %s %s\n", order.ID, statusEmojis[order.Status], order.Status))
	sb.WriteString("Placed " + order.CreatedAt.Format("Jan 2 15:04") + "\n")

	for _, item := range order.Items {
		sb.WriteString(fmt.Sprintf("\n%dx %s - %s", item.Quantity, item.Name,
			formatMoney(item.UnitPrice*float64(item.Quantity))))
	}

	sb.WriteString(fmt.Sprintf("\n\nSubtotal: %s", formatMoney(order.Subtotal)))
	if order.Discount > 0 {
		code := ""
		if order.PromoCode != nil {
			code = " (" + *order.PromoCode + ")"
		}
		sb.WriteString(fmt.Sprintf("\nDiscount%s: -%s", code, formatMoney(order.Discount)))
	}
	if order.DeliveryFee > 0 {
		sb.WriteString(fmt.Sprintf("\nDelivery: %s", formatMoney(order.DeliveryFee)))
	}
	sb.WriteString(fmt.Sprintf("\nTotal: %s", formatMoney(order.Total())))

	if order.DeliveryAddress != nil {
		sb.WriteString("\n\nDeliver to: " + *order.DeliveryAddress)
	}
	if order.Notes != nil {
		sb.WriteString("\nNotes: " + *order.Notes)
	}
	return sb.String()
}

func formatOrderList(orders []*domain.Order) string {
	if len(orders) == 0 {
		return "No orders yet. Browse the /menu to place your first one!"
	}

	var sb strings.Builder
	sb.WriteString("Your orders:\n")
	for _, order := range orders {
		sb.WriteString(fmt.Sprintf("\n#%d %s %s - %s, %d item(s), %s",
			order.ID, statusEmojis[order.Status], order.Status,
			order.CreatedAt.Format("Jan 2"), order.ItemCount(), formatMoney(order.Total())))
	}
	sb.WriteString("\n\nSend /order <id> for details.")
	return sb.String()
}

func formatReservations(reservations []*domain.Reservation) string {
	if len(reservations) == 0 {
		return "No reservations yet. Book a table with /reserve."
	}

	var sb strings.Builder
	sb.WriteString("Your reservations:\n")
	for _, res := range reservations {
		sb.WriteString(fmt.Sprintf("\n#%d %s at %s, party of %d (%s)",
			res.ID, res.Date, res.Time, res.PartySize, res.Status))
	}
	return sb.String()
}

func formatItemReviews(reviews *interfaces.ItemReviews) string {
	if reviews.Count == 0 {
		return "No reviews for this item yet."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Rated %.1f/5 from %d review(s).\n", reviews.Average, reviews.Count))
	for _, review := range reviews.Reviews {
		sb.WriteString(fmt.Sprintf("\n%s", strings.Repeat("⭐", review.Rating)))
		if review.Comment != nil {
			sb.WriteString(" " + *review.Comment)
		}
	}
	return sb.String()
}

func formatProfile(profile *domain.UserProfile) string {
	var sb strings.Builder
	name := profile.FirstName
	if name == "" {
		name = profile.Username
	}
	sb.WriteString("👤 " + name + "\n")
	if profile.Phone != nil {
		sb.WriteString("Phone: " + *profile.Phone + "\n")
	}
	if profile.Email != nil {
		sb.WriteString("Email: " + *profile.Email + "\n")
	}
	sb.WriteString(fmt.Sprintf("Orders placed: %d\n", profile.TotalOrders))
	sb.WriteString(fmt.Sprintf("Loyalty points: %d\n", profile.LoyaltyPoints))

	if len(profile.Addresses) > 0 {
		sb.WriteString("\nAddresses:\n")
		for _, addr := range profile.Addresses {
			sb.WriteString(fmt.Sprintf("#%d %s: %s, %s", addr.ID, addr.Label, addr.Street, addr.City))
			if addr.IsDefault {
				sb.WriteString(" (default)")
			}
			sb.WriteString("\n")
		}
	}

	if len(profile.Preferences) > 0 {
		keys := make([]string, 0, len(profile.Preferences))
		for key := range profile.Preferences {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		sb.WriteString("\nPreferences:\n")
		for _, key := range keys {
			sb.WriteString(key + ": " + profile.Preferences[key] + "\n")
		}
	}
	return sb.String()
}

func formatDashboard(stats *interfaces.DashboardStats) string {
	var sb strings.Builder
	sb.WriteString("📊 Dashboard\n")
	sb.WriteString(fmt.Sprintf("\nUsers: %d", stats.TotalUsers))
	sb.WriteString(fmt.Sprintf("\nOrders: %d (%d delivered)", stats.TotalOrders, stats.CompletedOrders))
	sb.WriteString(fmt.Sprintf("\nActive carts: %d", stats.ActiveCarts))
	sb.WriteString(fmt.Sprintf("\nReservations: %d", stats.TotalReservations))
	sb.WriteString(fmt.Sprintf("\nMenu items: %d", stats.MenuItems))
	sb.WriteString(fmt.Sprintf("\nActive promos: %d", stats.ActivePromos))
	sb.WriteString(fmt.Sprintf("\n\nRevenue: %s", formatMoney(stats.TotalRevenue)))
	sb.WriteString(fmt.Sprintf("\nAverage order: %s", formatMoney(stats.AverageOrder)))
	return sb.String()
}

func formatDiscount(promo *domain.PromoCode) string {
	if promo.Type == domain.DiscountPercentage {
		return fmt.Sprintf("%.0f%% off", promo.Value)
	}
	return formatMoney(promo.Value) + " off"
}

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func formatBusinessHours(cfg config.RestaurantConfig) string {
	var sb strings.Builder
	sb.WriteString("🕐 Business hours:\n")
	for _, day := range weekdays {
		hours, ok := cfg.BusinessHours[day]
		if !ok {
			sb.WriteString(fmt.Sprintf("\n%s: closed", categoryTitle(day)))
			continue
		}
		sb.WriteString(fmt.Sprintf("\n%s: %s - %s", categoryTitle(day), hours.Open, hours.Close))
	}
	return sb.String()
}
