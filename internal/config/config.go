package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	RabbitMQ   RabbitMQConfig   `yaml:"rabbitmq"`
	Redis      RedisConfig      `yaml:"redis"`
	Restaurant RestaurantConfig `yaml:"restaurant"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Telegram   TelegramConfig   `yaml:"-"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type RedisConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	DB   int    `yaml:"db"`
}

type HoursConfig struct {
	Open  string `yaml:"open"`
	Close string `yaml:"close"`
}

type RestaurantConfig struct {
	DeliveryFee               float64                `yaml:"delivery_fee"`
	MinOrder                  float64                `yaml:"min_order"`
	CancellationWindowMinutes int                    `yaml:"cancellation_window_minutes"`
	BusinessHours             map[string]HoursConfig `yaml:"business_hours"`
}

type RateLimitConfig struct {
	PerMinute int `yaml:"per_minute"`
}

// TelegramConfig comes from the environment, not the YAML file, so the
// bot token stays out of version control.
type TelegramConfig struct {
	Token       string
	AdminChatID int64
}

// Load reads the YAML config file and overlays Telegram credentials
// from the environment (a .env file is honored when present).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Restaurant.CancellationWindowMinutes <= 0 {
		cfg.Restaurant.CancellationWindowMinutes = 5
	}
	if cfg.RateLimit.PerMinute <= 0 {
		cfg.RateLimit.PerMinute = 30
	}

	// .env is optional; real deployments set the variables directly.
	_ = godotenv.Load()

	cfg.Telegram.Token = os.Getenv("TELEGRAM_BOT_TOKEN")
	if adminID := os.Getenv("ADMIN_CHAT_ID"); adminID != "" {
		parsed, err := strconv.ParseInt(adminID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_CHAT_ID: %w", err)
		}
		cfg.Telegram.AdminChatID = parsed
	}

	return cfg, nil
}

// CancellationWindow returns the user cancellation window as a duration.
func (c *RestaurantConfig) CancellationWindow() time.Duration {
	return time.Duration(c.CancellationWindowMinutes) * time.Minute
}

// IsOpenAt reports whether the restaurant is open at the given moment
// according to the per-day business hours. Days without configured
// hours count as closed.
func (c *RestaurantConfig) IsOpenAt(t time.Time) bool {
	day := map[time.Weekday]string{
		time.Monday:    "monday",
		time.Tuesday:   "tuesday",
		time.Wednesday: "wednesday",
		time.Thursday:  "thursday",
		time.Friday:    "friday",
		time.Saturday:  "saturday",
		time.Sunday:    "sunday",
	}[t.Weekday()]

	hours, ok := c.BusinessHours[day]
	if !ok {
		return false
	}

	open, err := time.Parse("15:04", hours.Open)
	if err != nil {
		return false
	}
	closed, err := time.Parse("15:04", hours.Close)
	if err != nil {
		return false
	}

	minutes := t.Hour()*60 + t.Minute()
	openMinutes := open.Hour()*60 + open.Minute()
	closeMinutes := closed.Hour()*60 + closed.Minute()
	return minutes >= openMinutes && minutes < closeMinutes
}
