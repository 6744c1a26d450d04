// Package cache fournit le cache best effort du classement par popularité.
// Une erreur côté Redis ne remonte JAMAIS au caller : au pire on retombe sur
// le scan + tri du repository.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jupiterclapton/filmotek/internal/core/domain"
)

// RedisPopularCache stocke une entrée JSON par count demandé, versionnée :
// Invalidate incrémente un compteur de version au lieu de scanner les clés,
// les anciennes entrées expirent d'elles-mêmes via le TTL.
type RedisPopularCache struct {
	client *redis.Client
	ttl    time.Duration
}

const versionKey = "popular:version"

func NewRedisPopularCache(client *redis.Client, ttl time.Duration) *RedisPopularCache {
	return &RedisPopularCache{client: client, ttl: ttl}
}

func (c *RedisPopularCache) Get(ctx context.Context, count int) ([]domain.Film, bool) {
	key, err := c.key(ctx, count)
	if err != nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("popular cache read failed", "error", err)
		}
		return nil, false
	}

	var films []domain.Film
	if err := json.Unmarshal(data, &films); err != nil {
		slog.Warn("popular cache entry corrupt, ignoring", "key", key, "error", err)
		return nil, false
	}
	return films, true
}

func (c *RedisPopularCache) Set(ctx context.Context, count int, films []domain.Film) {
	key, err := c.key(ctx, count)
	if err != nil {
		return
	}

	data, err := json.Marshal(films)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		slog.Warn("popular cache write failed", "error", err)
	}
}

func (c *RedisPopularCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		slog.Warn("popular cache invalidation failed", "error", err)
	}
}

func (c *RedisPopularCache) key(ctx context.Context, count int) (string, error) {
	version, err := c.client.Get(ctx, versionKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("popular:%d:%d", version, count), nil
}
