package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss возвращается, когда ключ не найден в кеше
var ErrCacheMiss = errors.New("cache: miss")

// AvailabilityCache короткоживущий кеш ответов доступности в Redis.
//
// Ключ включает грубый "бакет" текущего времени (минута): доступность -
// функция от now из-за lead time, ответ не должен переживать минутную границу.
// TTL короткий, а все переходы состояния резервов/бронирований дополнительно
// сбрасывают ключи своей пары (service, date) - инвалидация лежит на писателе.
type AvailabilityCache struct {
	client  *redis.Client
	ttl     time.Duration
	metrics MetricsRecorder
}

// MetricsRecorder интерфейс записи метрик обращений к кешу
type MetricsRecorder interface {
	IncCacheLookup(result string)
}

// New создает кеш доступности поверх redis-клиента
func New(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: ttl}
}

// WithMetrics подключает счетчики hit/miss; без вызова метрики не пишутся
func (c *AvailabilityCache) WithMetrics(m MetricsRecorder) *AvailabilityCache {
	c.metrics = m
	return c
}

// Key строит ключ кеша: availability:{serviceID}:{date}:{minuteBucket}
func Key(serviceID int64, date string, bucket time.Time) string {
	return fmt.Sprintf("availability:%d:%s:%s", serviceID, date, bucket.UTC().Truncate(time.Minute).Format("200601021504"))
}

// Get читает закешированный ответ
func (c *AvailabilityCache) Get(ctx context.Context, serviceID int64, date string, bucket time.Time) ([]byte, error) {
	data, err := c.client.Get(ctx, Key(serviceID, date, bucket)).Bytes()
	if err == redis.Nil {
		c.record("miss")
		return nil, ErrCacheMiss
	}
	if err != nil {
		c.record("error")
		return nil, fmt.Errorf("cache: get: %w", err)
	}
	c.record("hit")
	return data, nil
}

// Set сохраняет ответ с TTL кеша
func (c *AvailabilityCache) Set(ctx context.Context, serviceID int64, date string, bucket time.Time, payload []byte) error {
	if err := c.client.Set(ctx, Key(serviceID, date, bucket), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: set: %w", err)
	}
	return nil
}

func (c *AvailabilityCache) record(result string) {
	if c.metrics != nil {
		c.metrics.IncCacheLookup(result)
	}
}

// Invalidate удаляет все минутные бакеты пары (service, date).
// Вызывается писателями состояния: hold, convert, release, expire, cancel.
func (c *AvailabilityCache) Invalidate(ctx context.Context, serviceID int64, date string) error {
	pattern := fmt.Sprintf("availability:%d:%s:*", serviceID, date)

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache: invalidate scan: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache: invalidate del: %w", err)
	}
	return nil
}
