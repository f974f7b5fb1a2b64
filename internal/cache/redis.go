// Package cache хранит общие снимки данных в Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultPrefix префикс ключей по умолчанию
const DefaultPrefix = "points"

// RedisCache JSON-кэш поверх go-redis. Нулевой или nil кэш отключен:
// чтение всегда промахивается, запись ничего не делает.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisClient создает клиент Redis; пустой addr означает, что кэш не используется
func NewRedisClient(addr, password string, db int) *redis.Client {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// NewRedisCache создает кэш с префиксом ключей
func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &RedisCache{client: client, prefix: prefix}
}

// Enabled возвращает true, если кэш подключен к Redis
func (c *RedisCache) Enabled() bool {
	return c != nil && c.client != nil
}

// GetJSON читает значение по ключу. found == false при промахе.
func (c *RedisCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	val, err := c.client.Get(ctx, c.buildKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache: failed to get %q: %w", key, err)
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, fmt.Errorf("cache: failed to decode %q: %w", key, err)
	}
	return true, nil
}

// SetJSON записывает значение с временем жизни ttl
func (c *RedisCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: failed to encode %q: %w", key, err)
	}
	if err := c.client.Set(ctx, c.buildKey(key), payload, ttl).Err(); err != nil {
		return fmt.Errorf("cache: failed to set %q: %w", key, err)
	}
	return nil
}

// Del удаляет ключ
func (c *RedisCache) Del(ctx context.Context, key string) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Del(ctx, c.buildKey(key)).Err()
}

// Ping проверяет соединение с Redis
func (c *RedisCache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Close закрывает клиент
func (c *RedisCache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

func (c *RedisCache) buildKey(key string) string {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return c.prefix
	}
	return c.prefix + ":" + trimmed
}
