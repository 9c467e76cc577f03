package config

import (
	"flag"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Поддерживаемые бэкенды хранилища сессии клиента.
const (
	BackendFS     = "fs"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
	BackendNone   = "none"
)

type Config struct {
	// Server-side settings
	DatabaseDSN string `env:"DATABASE_URI"`
	AuthSecret  string `env:"AUTH_SECRET"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`
	LogLevel    string `env:"LOG_LEVEL"`

	// Client-side settings
	ServerURL      string        `env:"API_URL"`
	SessionBackend string        `env:"SESSION_BACKEND"`
	SessionDir     string        `env:"SESSION_DIR"`
	ClientDBPath   string        `env:"CLIENT_DB_PATH"`
	RedisAddr      string        `env:"REDIS_ADDR"`
	RedisPrefix    string        `env:"REDIS_PREFIX"`
	HTTPTimeout    time.Duration `env:"HTTP_TIMEOUT"`
	Version        bool          `env:"-"` // show client version and exit (flag only)
}

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// env задаёт значения по умолчанию для флагов
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (postgres DSN или путь к SQLite)")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для проверки подписи JWT")
	// Shared flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "server listen address (host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "client: prefer https scheme when API URL is derived from base-url")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug|info|warn|error")
	// Client flags
	flag.StringVar(&cfg.ServerURL, "api-url", cfg.ServerURL, "backend origin for the client, e.g. http://localhost:8080")
	flag.StringVar(&cfg.SessionBackend, "session-backend", cfg.SessionBackend, "session storage: fs|sqlite|redis|memory|none")
	flag.StringVar(&cfg.SessionDir, "session-dir", cfg.SessionDir, "directory for fs session storage")
	flag.StringVar(&cfg.ClientDBPath, "client-db", cfg.ClientDBPath, "path to client SQLite DB")
	flag.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "redis address for redis session storage")
	flag.DurationVar(&cfg.HTTPTimeout, "http-timeout", cfg.HTTPTimeout, "client HTTP timeout (0 = none)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8080"
	}
	if cfg.ServerURL == "" {
		if cfg.EnableHTTPS {
			cfg.ServerURL = "https://" + cfg.BaseURL
		} else {
			cfg.ServerURL = "http://" + cfg.BaseURL
		}
	}
	cfg.ServerURL = strings.TrimRight(cfg.ServerURL, "/")

	switch cfg.SessionBackend {
	case BackendFS, BackendSQLite, BackendRedis, BackendMemory, BackendNone:
	default:
		cfg.SessionBackend = BackendFS
	}
	if cfg.RedisAddr == "" {
		cfg.RedisAddr = "localhost:6379"
	}
	if cfg.RedisPrefix == "" {
		cfg.RedisPrefix = "vineyard:"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
}
