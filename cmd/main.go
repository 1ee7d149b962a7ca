package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	amqpAdapter "restaurant-bot/internal/adapter/amqp"
	"restaurant-bot/internal/adapter/logger"
	"restaurant-bot/internal/adapter/postgres"
	"restaurant-bot/internal/adapter/rabbitmq"
	redisAdapter "restaurant-bot/internal/adapter/redis"
	"restaurant-bot/internal/adapter/telegram"
	"restaurant-bot/internal/app/admin"
	"restaurant-bot/internal/app/cart"
	"restaurant-bot/internal/app/menu"
	"restaurant-bot/internal/app/order"
	"restaurant-bot/internal/app/profile"
	"restaurant-bot/internal/app/reservation"
	"restaurant-bot/internal/app/review"
	"restaurant-bot/internal/config"
)

func main() {
	mode := flag.String("mode", "", "Service mode: bot, notifier")
	configPath := flag.String("config", "config.yaml", "Path to config file")
	prefetch := flag.Int("prefetch", 1, "RabbitMQ prefetch count")
	flag.Parse()

	if *mode == "" {
		log.Fatal("--mode flag is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Telegram.Token == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lgr := logger.New(*mode)

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Fatalf("Failed to connect to Telegram: %v", err)
	}

	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mqConn.Close()

	lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]interface{}{
		"host": cfg.RabbitMQ.Host,
	})

	// Shut down on SIGINT/SIGTERM.
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lgr.Info("shutdown_initiated", "Shutting down", "shutdown", nil)
		cancel()
	}()

	switch *mode {
	case "bot":
		runBot(ctx, cfg, api, mqConn, lgr)
	case "notifier":
		runNotifier(ctx, cfg, api, mqConn, lgr, *prefetch)
	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}
}

func runBot(ctx context.Context, cfg *config.Config, api *tgbotapi.BotAPI, mqConn rabbitmq.Connection, lgr logger.Logger) {
	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	lgr.Info("db_connected", "Connected to PostgreSQL database", "startup", map[string]interface{}{
		"host": cfg.Database.Host,
		"db":   cfg.Database.Database,
	})

	if err := postgres.Bootstrap(ctx, db); err != nil {
		log.Fatalf("Failed to bootstrap database: %v", err)
	}

	limiter, err := redisAdapter.NewRateLimiter(ctx, cfg.Redis, cfg.RateLimit.PerMinute)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer limiter.Close()

	lgr.Info("redis_connected", "Connected to Redis", "startup", map[string]interface{}{
		"host": cfg.Redis.Host,
	})

	menuRepo := postgres.NewMenuRepository(db)
	cartRepo := postgres.NewCartRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	userRepo := postgres.NewUserRepository(db)
	reservationRepo := postgres.NewReservationRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	promoRepo := postgres.NewPromoRepository(db)

	publisher := rabbitmq.NewPublisher(mqConn)

	cartService := cart.NewService(cartRepo, menuRepo, promoRepo, lgr)
	services := telegram.Services{
		Menu: menu.NewService(menuRepo),
		Cart: cartService,
		Order: order.NewService(orderRepo, cartRepo, menuRepo, promoRepo, cartService,
			publisher, lgr, cfg.Restaurant.DeliveryFee, cfg.Restaurant.CancellationWindow()),
		Profile:     profile.NewService(userRepo, menuRepo, lgr),
		Reservation: reservation.NewService(reservationRepo, lgr),
		Review:      review.NewService(reviewRepo, orderRepo, menuRepo, lgr),
		Admin:       admin.NewService(userRepo, orderRepo, cartRepo, reservationRepo, menuRepo, promoRepo, lgr),
	}

	bot := telegram.NewBot(api, services, limiter, cfg.Restaurant, cfg.Telegram.AdminChatID, lgr)

	if err := bot.Run(ctx); err != nil && err != context.Canceled {
		lgr.Error("bot_error", "Bot stopped with error", "runtime", nil, err)
	}
}

func runNotifier(ctx context.Context, cfg *config.Config, api *tgbotapi.BotAPI, mqConn rabbitmq.Connection, lgr logger.Logger, prefetch int) {
	consumer := rabbitmq.NewConsumer(mqConn, prefetch)
	sender := telegram.NewSender(api)

	handler := amqpAdapter.NewNotificationHandler(consumer, sender, cfg.Telegram.AdminChatID, lgr)

	lgr.Info("service_started", "Notifier started", "startup", nil)

	if err := handler.Run(ctx); err != nil && err != context.Canceled {
		lgr.Error("consumer_error", "Notifier stopped with error", "runtime", nil, err)
	}
}
