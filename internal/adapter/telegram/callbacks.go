package telegram

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"restaurant-bot/internal/interfaces"
)

// Callback data uses a "verb:argument" scheme. Menu browsing and
// add-to-cart run entirely on inline buttons.
func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	// Acknowledge immediately so the button stops spinning.
	b.send(tgbotapi.NewCallback(query.ID, ""))

	if query.Message == nil {
		return
	}
	chatID := query.Message.Chat.ID
	actor := b.actor(query.From.ID)

	verb, arg, _ := strings.Cut(query.Data, ":")
	switch verb {
	case "cat":
		b.handleCategoryCallback(ctx, chatID, arg)
	case "item":
		b.handleItemCallback(ctx, chatID, actor, arg)
	case "add":
		b.handleAddCallback(ctx, chatID, actor, arg)
	}
}

func (b *Bot) handleCategoryCallback(ctx context.Context, chatID int64, category string) {
	items, err := b.services.Menu.ItemsByCategory(ctx, category)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	if len(items) == 0 {
		b.reply(chatID, "Nothing in this category yet.")
		return
	}
	b.replyWithKeyboard(chatID, formatMenuItems(categoryTitle(category), items), itemsKeyboard(items))
}

func (b *Bot) handleItemCallback(ctx context.Context, chatID int64, actor interfaces.Actor, arg string) {
	itemID, err := strconv.Atoi(arg)
	if err != nil {
		return
	}

	item, err := b.services.Menu.Item(ctx, itemID)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	reviews, err := b.services.Review.ForItem(ctx, actor, itemID)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, formatItemDetails(item, reviews))
}

func (b *Bot) handleAddCallback(ctx context.Context, chatID int64, actor interfaces.Actor, arg string) {
	itemID, err := strconv.Atoi(arg)
	if err != nil {
		return
	}

	result, err := b.services.Cart.AddItem(ctx, actor, itemID, 1)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, "Added! 🛒\n\n"+formatCart(result))
}
