package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*AvailabilityCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return New(client, time.Minute), mr
}

func TestCache_SetGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	bucket := time.Date(2026, 1, 5, 12, 34, 56, 0, time.UTC)

	require.NoError(t, c.Set(ctx, 7, "2026-01-05", bucket, []byte(`{"slots":[]}`)))

	// Тот же минутный бакет - попадание, секунды не влияют
	data, err := c.Get(ctx, 7, "2026-01-05", bucket.Add(3*time.Second))
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"slots":[]}`), data)
}

func TestCache_MissOnDifferentBucket(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	bucket := time.Date(2026, 1, 5, 12, 34, 0, 0, time.UTC)

	require.NoError(t, c.Set(ctx, 7, "2026-01-05", bucket, []byte("x")))

	// Следующая минута - новый ключ: ответ не переживает минутную границу
	_, err := c.Get(ctx, 7, "2026-01-05", bucket.Add(time.Minute))
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCache_MissOnEmpty(t *testing.T) {
	c, _ := newTestCache(t)
	_, err := c.Get(context.Background(), 7, "2026-01-05", time.Now())
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCache_InvalidateDropsAllBuckets(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)

	// Несколько минутных бакетов одной пары (service, date)
	require.NoError(t, c.Set(ctx, 7, "2026-01-05", base, []byte("a")))
	require.NoError(t, c.Set(ctx, 7, "2026-01-05", base.Add(time.Minute), []byte("b")))
	// Другая услуга и другая дата не должны пострадать
	require.NoError(t, c.Set(ctx, 8, "2026-01-05", base, []byte("c")))
	require.NoError(t, c.Set(ctx, 7, "2026-01-06", base, []byte("d")))

	require.NoError(t, c.Invalidate(ctx, 7, "2026-01-05"))

	_, err := c.Get(ctx, 7, "2026-01-05", base)
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = c.Get(ctx, 7, "2026-01-05", base.Add(time.Minute))
	assert.ErrorIs(t, err, ErrCacheMiss)

	_, err = c.Get(ctx, 8, "2026-01-05", base)
	assert.NoError(t, err)
	_, err = c.Get(ctx, 7, "2026-01-06", base)
	assert.NoError(t, err)
}

func TestCache_EntriesExpireByTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	bucket := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)

	require.NoError(t, c.Set(ctx, 7, "2026-01-05", bucket, []byte("a")))

	mr.FastForward(2 * time.Minute)

	_, err := c.Get(ctx, 7, "2026-01-05", bucket)
	assert.ErrorIs(t, err, ErrCacheMiss)
}
