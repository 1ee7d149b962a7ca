package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
database:
  host: localhost
  port: 5432
  user: app
  password: secret
  database: restaurant

rabbitmq:
  host: localhost
  port: 5672
  user: guest
  password: guest

redis:
  host: localhost
  port: 6379
  db: 0

restaurant:
  delivery_fee: 2.50
  min_order: 15.00
  cancellation_window_minutes: 10
  business_hours:
    monday:
      open: "10:00"
      close: "22:00"

rate_limit:
  per_minute: 20
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("ADMIN_CHAT_ID", "12345")

	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 2.50, cfg.Restaurant.DeliveryFee)
	assert.Equal(t, 15.00, cfg.Restaurant.MinOrder)
	assert.Equal(t, 20, cfg.RateLimit.PerMinute)
	assert.Equal(t, "test-token", cfg.Telegram.Token)
	assert.Equal(t, int64(12345), cfg.Telegram.AdminChatID)
	assert.Equal(t, 10*time.Minute, cfg.Restaurant.CancellationWindow())
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("ADMIN_CHAT_ID", "")

	cfg, err := Load(writeConfig(t, "restaurant:\n  delivery_fee: 1.00\n"))
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Restaurant.CancellationWindowMinutes)
	assert.Equal(t, 30, cfg.RateLimit.PerMinute)
}

func TestLoadInvalidAdminChatID(t *testing.T) {
	t.Setenv("ADMIN_CHAT_ID", "not-a-number")

	_, err := Load(writeConfig(t, testConfig))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestIsOpenAt(t *testing.T) {
	cfg := RestaurantConfig{
		BusinessHours: map[string]HoursConfig{
			"monday": {Open: "10:00", Close: "22:00"},
		},
	}

	// 2026-08-31 is a Monday.
	monday := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	assert.True(t, cfg.IsOpenAt(monday))

	beforeOpen := time.Date(2026, 8, 31, 9, 59, 0, 0, time.UTC)
	assert.False(t, cfg.IsOpenAt(beforeOpen))

	atClose := time.Date(2026, 8, 31, 22, 0, 0, 0, time.UTC)
	assert.False(t, cfg.IsOpenAt(atClose))

	// Tuesday has no configured hours.
	tuesday := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	assert.False(t, cfg.IsOpenAt(tuesday))
}
