// Package ratelimit содержит ограничители частоты запросов: распределённое
// фиксированное окно в Redis для попыток авторизации и локальный token
// bucket на клиента для всех остальных запросов.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/store-rating/internal/config"
)

// Limiter решает, можно ли пропустить очередной запрос с ключом key.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// NewRedisClient подключается к Redis и проверяет соединение.
func NewRedisClient(ctx context.Context, cfg config.RedisConnection) (*redis.Client, error) {
	const op = "ratelimit.NewRedisClient"
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return client, nil
}

// Window — фиксированное окно в Redis: не более limit запросов на ключ за window.
// Счётчик общий для всех экземпляров сервиса.
type Window struct {
	client *redis.Client
	prefix string
	limit  int64
	window time.Duration
}

// NewWindow создаёт ограничитель с префиксом ключей prefix.
func NewWindow(client *redis.Client, prefix string, limit int, window time.Duration) *Window {
	return &Window{
		client: client,
		prefix: prefix,
		limit:  int64(limit),
		window: window,
	}
}

// Allow увеличивает счётчик ключа и сообщает, не превышен ли лимит.
// Первый запрос окна выставляет время жизни счётчика.
func (w *Window) Allow(ctx context.Context, key string) (bool, error) {
	const op = "ratelimit.Window.Allow"
	k := fmt.Sprintf("%s:%s", w.prefix, key)

	count, err := w.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if count == 1 {
		if err := w.client.Expire(ctx, k, w.window).Err(); err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
	}
	return count <= w.limit, nil
}
