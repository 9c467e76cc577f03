package bootstrap

import (
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"Vineyard/internal/cli/api"
	"Vineyard/internal/cli/repo"
	fsrepo "Vineyard/internal/cli/repo/fs"
	"Vineyard/internal/cli/repo/memory"
	"Vineyard/internal/cli/repo/redisstore"
	reposqlite "Vineyard/internal/cli/repo/sqlite"
	"Vineyard/internal/cli/session"
	"Vineyard/internal/config"
)

// NewLogger создаёт логгер клиента: консольный вывод в stderr с уровнем из конфига.
func NewLogger(cfg *config.Config) *zap.SugaredLogger {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.WarnLevel
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), level)
	return zap.New(core).Sugar()
}

// NewClient создаёт HTTP клиента backend по конфигу.
func NewClient(cfg *config.Config) *api.Client {
	return api.NewClient(cfg.ServerURL, api.WithTimeout(cfg.HTTPTimeout))
}

// OpenKV открывает key-value хранилище выбранного бэкенда и возвращает (kv, cleanup, error).
// cleanup необходимо вызвать после окончания работы, чтобы закрыть соединения.
func OpenKV(cfg *config.Config) (repo.KeyValueStore, func() error, error) {
	noop := func() error { return nil }
	switch cfg.SessionBackend {
	case config.BackendNone:
		return repo.Unavailable, noop, nil
	case config.BackendMemory:
		return memory.New(), noop, nil
	case config.BackendSQLite:
		r, _, err := reposqlite.Open(cfg.ClientDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open client db: %w", err)
		}
		if err := r.Migrate(); err != nil {
			_ = r.Close()
			return nil, nil, fmt.Errorf("migrate client db: %w", err)
		}
		return r, r.Close, nil
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return redisstore.New(client, cfg.RedisPrefix, 0), client.Close, nil
	default:
		return fsrepo.KVStore{Dir: cfg.SessionDir}, noop, nil
	}
}

// OpenSession открывает хранилище и поверх него Store сессии.
func OpenSession(cfg *config.Config, logger *zap.SugaredLogger) (*session.Store, repo.KeyValueStore, func() error, error) {
	kv, cleanup, err := OpenKV(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	st, err := session.Open(kv, session.WithLogger(logger))
	if err != nil {
		_ = cleanup()
		return nil, nil, nil, err
	}
	return st, kv, cleanup, nil
}
