package telegram

import (
	"context"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"restaurant-bot/internal/adapter/logger"
	"restaurant-bot/internal/config"
	"restaurant-bot/internal/interfaces"
)

// RateLimiter throttles per-user interactions.
type RateLimiter interface {
	Allow(ctx context.Context, userID int64) bool
}

// Services bundles the workflow services the bot dispatches into.
type Services struct {
	Menu        interfaces.MenuService
	Cart        interfaces.CartService
	Order       interfaces.OrderService
	Profile     interfaces.ProfileService
	Reservation interfaces.ReservationService
	Review      interfaces.ReviewService
	Admin       interfaces.AdminService
}

// Bot is the long-polling Telegram transport. It owns the per-chat
// session state for multi-step flows; everything else is delegated to
// the workflow services.
type Bot struct {
	api         *tgbotapi.BotAPI
	services    Services
	limiter     RateLimiter
	logger      logger.Logger
	restaurant  config.RestaurantConfig
	adminChatID int64

	mu       sync.Mutex
	sessions map[int64]*session
}

func NewBot(api *tgbotapi.BotAPI, services Services, limiter RateLimiter, restaurant config.RestaurantConfig, adminChatID int64, logger logger.Logger) *Bot {
	return &Bot{
		api:         api,
		services:    services,
		limiter:     limiter,
		logger:      logger,
		restaurant:  restaurant,
		adminChatID: adminChatID,
		sessions:    make(map[int64]*session),
	}
}

// Run polls for updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 60
	updates := b.api.GetUpdatesChan(cfg)

	b.logger.Info("bot_started", "Telegram bot polling for updates", "", map[string]interface{}{
		"username": b.api.Self.UserName,
	})

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("update_panic", "Recovered from panic in update handler", "",
				map[string]interface{}{"panic": r}, nil)
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		userID := update.CallbackQuery.From.ID
		if !b.limiter.Allow(ctx, userID) {
			return
		}
		b.handleCallback(ctx, update.CallbackQuery)

	case update.Message != nil:
		userID := update.Message.From.ID
		if !b.limiter.Allow(ctx, userID) {
			b.reply(update.Message.Chat.ID, "Too many requests. Please slow down.")
			return
		}
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)

	// Any command aborts an in-progress flow.
	if strings.HasPrefix(text, "/") {
		b.clearSession(chatID)
		b.handleCommand(ctx, message)
		return
	}

	if session := b.session(chatID); session.state != stateIdle {
		b.continueFlow(ctx, message, session)
		return
	}

	b.reply(chatID, "I did not understand that. Send /help for the list of commands.")
}

func (b *Bot) actor(userID int64) interfaces.Actor {
	return interfaces.Actor{UserID: userID, IsAdmin: userID == b.adminChatID}
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	b.send(msg)
}

func (b *Bot) replyWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	b.send(msg)
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("send_failed", "Failed to send Telegram message", "", nil, err)
	}
}

func (b *Bot) session(chatID int64) *session {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.sessions[chatID]
	if !ok {
		s = &session{state: stateIdle}
		b.sessions[chatID] = s
	}
	return s
}

func (b *Bot) clearSession(chatID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.sessions, chatID)
}
