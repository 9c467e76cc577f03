package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"Vineyard/internal/cli/repo"
)

const defaultTimeout = 3 * time.Second

// KVStoreRedis хранит ключи клиента в Redis под общим префиксом.
type KVStoreRedis struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

var _ repo.KeyValueStore = (*KVStoreRedis)(nil)

// New создаёт хранилище. Нулевой timeout заменяется значением по умолчанию.
func New(client *redis.Client, prefix string, timeout time.Duration) *KVStoreRedis {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &KVStoreRedis{client: client, prefix: prefix, timeout: timeout}
}

// Read возвращает значение ключа.
func (s *KVStoreRedis) Read(key string) (string, bool, error) {
	if key == "" {
		return "", false, repo.ErrEmptyKey
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

// Write сохраняет значение без TTL.
func (s *KVStoreRedis) Write(key, value string) error {
	if key == "" {
		return repo.ErrEmptyKey
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}
