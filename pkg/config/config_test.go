package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "environment: dev\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Binance.Symbol != "btcusdt" {
		t.Fatalf("symbol = %q, want default btcusdt", cfg.Binance.Symbol)
	}
	if cfg.Tracker.BufferSize != 3600 {
		t.Fatalf("buffer_size = %d, want 3600", cfg.Tracker.BufferSize)
	}
	if cfg.Store.Type != "file" || cfg.Store.File.Path != "settings.json" {
		t.Fatalf("unexpected store defaults: %+v", cfg.Store)
	}
	if cfg.Kafka.Topic != "volsentry.alerts" {
		t.Fatalf("kafka topic = %q", cfg.Kafka.Topic)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "environment: dev\n")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token-from-env")
	t.Setenv("TELEGRAM_CHAT_ID", "42")
	t.Setenv("SYMBOL", "ETHUSDT")
	t.Setenv("REDIS_ADDR", "redis.internal:6380")

	cfg, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("LoadWithEnv: %v", err)
	}
	if cfg.Telegram.BotToken != "token-from-env" || cfg.Telegram.ChatID != "42" {
		t.Fatalf("telegram overrides not applied: %+v", cfg.Telegram)
	}
	if cfg.Binance.Symbol != "ethusdt" {
		t.Fatalf("symbol = %q, want lowercased ethusdt", cfg.Binance.Symbol)
	}
	if cfg.Store.Redis.Host != "redis.internal" || cfg.Store.Redis.Port != 6380 {
		t.Fatalf("redis override not applied: %+v", cfg.Store.Redis)
	}
}

func TestValidateRequiresTelegramCredentials(t *testing.T) {
	path := writeConfig(t, "environment: dev\n")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	if _, err := LoadWithEnv(path); err == nil {
		t.Fatal("expected error for missing telegram credentials")
	}
}

func TestValidateRejectsUnknownStoreType(t *testing.T) {
	path := writeConfig(t, "store:\n  type: dynamo\n")
	t.Setenv("TELEGRAM_BOT_TOKEN", "x")
	t.Setenv("TELEGRAM_CHAT_ID", "y")

	if _, err := LoadWithEnv(path); err == nil {
		t.Fatal("expected error for unknown store type")
	}
}
