// Package cache implementa um cache-aside sobre o Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config são as opções de conexão e expiração
type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
}

// RedisCache guarda valores em JSON com expiração
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewClient cria o cliente Redis e verifica a conexão
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("erro ao conectar no redis: %w", err)
	}
	return client, nil
}

// New cria um RedisCache sobre um cliente existente, usando Prefix e TTL de cfg
func New(client *redis.Client, cfg Config) *RedisCache {
	return &RedisCache{client: client, prefix: cfg.Prefix, ttl: cfg.TTL}
}

// Get lê key em dest. Retorna false em cache miss.
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("erro ao ler cache: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("erro ao decodificar cache: %w", err)
	}
	return true, nil
}

// Set grava value com o TTL padrão
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("erro ao codificar cache: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("erro ao gravar cache: %w", err)
	}
	return nil
}

// DeletePattern remove as chaves que casam com pattern
func (c *RedisCache) DeletePattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("erro ao varrer cache: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("erro ao remover cache: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Ping verifica a conexão
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close fecha o cliente
func (c *RedisCache) Close() error {
	return c.client.Close()
}
