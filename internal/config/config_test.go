package config

import (
	"flag"
	"os"
	"testing"
	"time"
)

// resetFlagSet создаёт новый FlagSet перед каждым вызовом NewConfig,
// чтобы избежать повторной регистрации одних и тех же флагов между тестами.
func resetFlagSet(t *testing.T) {
	t.Helper()
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	// подавляем вывод парсера флагов в тестах
	flag.CommandLine.SetOutput(os.Stderr)
	oldArgs := os.Args
	os.Args = []string{oldArgs[0]}
	t.Cleanup(func() { os.Args = oldArgs })
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DATABASE_URI", "AUTH_SECRET", "BASE_URL", "ENABLE_HTTPS", "LOG_LEVEL",
		"API_URL", "SESSION_BACKEND", "SESSION_DIR", "CLIENT_DB_PATH",
		"REDIS_ADDR", "REDIS_PREFIX", "HTTP_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
}

func TestNewConfig_DefaultsWhenEnvEmpty(t *testing.T) {
	clearEnv(t)
	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.AuthSecret != "dev-secret-key" {
		t.Fatalf("AuthSecret default expected 'dev-secret-key', got %q", cfg.AuthSecret)
	}
	if cfg.BaseURL != "localhost:8080" {
		t.Fatalf("BaseURL default expected 'localhost:8080', got %q", cfg.BaseURL)
	}
	if cfg.ServerURL != "http://localhost:8080" {
		t.Fatalf("ServerURL default expected 'http://localhost:8080', got %q", cfg.ServerURL)
	}
	if cfg.SessionBackend != BackendFS {
		t.Fatalf("SessionBackend default expected fs, got %q", cfg.SessionBackend)
	}
	if cfg.RedisPrefix != "vineyard:" || cfg.LogLevel != "warn" {
		t.Fatalf("unexpected defaults: prefix=%q level=%q", cfg.RedisPrefix, cfg.LogLevel)
	}
}

func TestNewConfig_BaseURLAndHTTPS(t *testing.T) {
	clearEnv(t)
	t.Setenv("BASE_URL", "example.com:443")
	t.Setenv("ENABLE_HTTPS", "true")
	t.Setenv("AUTH_SECRET", "top")
	t.Setenv("HTTP_TIMEOUT", "5s")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.ServerURL != "https://example.com:443" {
		t.Fatalf("ServerURL expected 'https://example.com:443', got %q", cfg.ServerURL)
	}
	if cfg.AuthSecret != "top" {
		t.Fatalf("AuthSecret expected from env 'top', got %q", cfg.AuthSecret)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Fatalf("HTTPTimeout expected 5s, got %v", cfg.HTTPTimeout)
	}
}

func TestNewConfig_ExplicitAPIURLWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_URL", "http://api.vineyard.test:9000/")
	t.Setenv("SESSION_BACKEND", "redis")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.ServerURL != "http://api.vineyard.test:9000" {
		t.Fatalf("API_URL must be used as is (trailing slash trimmed), got %q", cfg.ServerURL)
	}
	if cfg.SessionBackend != BackendRedis {
		t.Fatalf("SessionBackend expected redis, got %q", cfg.SessionBackend)
	}
}

func TestNewConfig_InvalidValuesFallback(t *testing.T) {
	clearEnv(t)
	// Невалидный BASE_URL (со схемой) должен откатиться на localhost:8080
	t.Setenv("BASE_URL", "http://bad:8080")
	t.Setenv("SESSION_BACKEND", "floppy")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.BaseURL != "localhost:8080" {
		t.Fatalf("invalid BASE_URL must fallback to 'localhost:8080', got %q", cfg.BaseURL)
	}
	if cfg.SessionBackend != BackendFS {
		t.Fatalf("unknown backend must fallback to fs, got %q", cfg.SessionBackend)
	}
}
