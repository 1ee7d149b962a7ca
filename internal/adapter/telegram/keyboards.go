package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"restaurant-bot/internal/domain"
)

var categoryEmojis = map[string]string{
	"pizza":      "🍕",
	"burgers":    "🍔",
	"drinks":     "🥤",
	"desserts":   "🍰",
	"salads":     "🥗",
	"appetizers": "🍟",
}

func categoriesKeyboard(categories []string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, category := range categories {
		label := categoryTitle(category)
		if emoji, ok := categoryEmojis[category]; ok {
			label = emoji + " " + label
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "cat:"+category),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// itemsKeyboard shows one add button per available item.
func itemsKeyboard(items []domain.MenuItem) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, item := range items {
		if !item.Available {
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("➕ %s (%s)", item.Name, formatMoney(item.Price)),
				fmt.Sprintf("add:%d", item.ID)),
			tgbotapi.NewInlineKeyboardButtonData("ℹ️", fmt.Sprintf("item:%d", item.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func categoryTitle(category string) string {
	if category == "" {
		return category
	}
	first := category[0]
	if first >= 'a' && first <= 'z' {
		first -= 'a' - 'A'
	}
	return string(first) + category[1:]
}
