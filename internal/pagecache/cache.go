package pagecache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"plume/internal/config"
)

// Cache stores whole rendered pages for a fixed TTL. Only expiry invalidates
// an entry: writes to posts do not purge it, so the global feed may serve
// stale content for up to one TTL. That staleness is an accepted tradeoff,
// not a bug.
type Cache struct {
	Logger *slog.Logger
	Config *config.Config

	ttl     time.Duration
	mu      sync.Mutex
	entries map[string]entry

	now func() time.Time
}

type entry struct {
	body      []byte
	expiresAt time.Time
}

func (c *Cache) Init(_ context.Context) error {
	c.Logger = c.Logger.With("component", "pagecache.Cache")
	c.ttl = c.Config.PageCacheTTL
	c.entries = map[string]entry{}
	c.now = time.Now
	return nil
}

// Get returns the cached body for key, or false when the entry is missing
// or expired. Expired entries are dropped lazily on read.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}

	return e.body, true
}

func (c *Cache) Set(key string, body []byte) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{body: body, expiresAt: c.now().Add(c.ttl)}
}

// Clear drops every entry. Tests use it to observe fresh content without
// waiting out the TTL.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = map[string]entry{}
}
