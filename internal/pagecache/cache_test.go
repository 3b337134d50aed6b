package pagecache

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"plume/internal/config"
)

func newCache(t *testing.T, ttl time.Duration) (*Cache, *time.Time) {
	t.Helper()

	cache := &Cache{
		Logger: slog.Default(),
		Config: &config.Config{PageCacheTTL: ttl},
	}
	require.NoError(t, cache.Init(t.Context()))

	now := time.Date(2020, 2, 27, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	return cache, &now
}

func TestCache(t *testing.T) {
	t.Parallel()

	t.Run("returns what was set", func(t *testing.T) {
		t.Parallel()

		cache, _ := newCache(t, 20*time.Second)
		cache.Set("/", []byte("page"))

		body, ok := cache.Get("/")
		require.True(t, ok)
		require.Equal(t, []byte("page"), body)
	})

	t.Run("misses on unknown key", func(t *testing.T) {
		t.Parallel()

		cache, _ := newCache(t, 20*time.Second)

		_, ok := cache.Get("/missing")
		require.False(t, ok)
	})

	t.Run("entry survives within the ttl and expires after it", func(t *testing.T) {
		t.Parallel()

		cache, now := newCache(t, 20*time.Second)
		cache.Set("/", []byte("page"))

		*now = now.Add(19 * time.Second)
		_, ok := cache.Get("/")
		require.True(t, ok)

		*now = now.Add(2 * time.Second)
		_, ok = cache.Get("/")
		require.False(t, ok)
	})

	t.Run("zero ttl disables caching", func(t *testing.T) {
		t.Parallel()

		cache, _ := newCache(t, 0)
		cache.Set("/", []byte("page"))

		_, ok := cache.Get("/")
		require.False(t, ok)
	})

	t.Run("clear drops everything", func(t *testing.T) {
		t.Parallel()

		cache, _ := newCache(t, 20*time.Second)
		cache.Set("/", []byte("page"))
		cache.Clear()

		_, ok := cache.Get("/")
		require.False(t, ok)
	})
}
