package cache

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"adsync/internal/logging"
)

// DefaultTTL applies to entries stored with Set.
const DefaultTTL = 5 * time.Minute

type entry struct {
	value      any
	insertedAt time.Time
	ttl        time.Duration
}

func (e entry) expired(now time.Time) bool {
	return now.Sub(e.insertedAt) > e.ttl
}

// Cache is an in-process key/value store with per-entry TTLs. Values are
// idempotent recomputations of remote reads, so a lost entry only costs an
// extra fetch.
type Cache struct {
	defaultTTL time.Duration
	logger     *slog.Logger
	now        func() time.Time

	mu      sync.RWMutex
	entries map[string]entry
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the time source (useful for tests).
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a cache. A non-positive defaultTTL falls back to DefaultTTL.
func New(defaultTTL time.Duration, logger *slog.Logger, opts ...Option) *Cache {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	c := &Cache{
		defaultTTL: defaultTTL,
		logger:     logging.NewComponentLogger(logger, "cache"),
		now:        time.Now,
		entries:    make(map[string]entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Set stores value under key with the default TTL, overwriting unconditionally.
func (c *Cache) Set(key string, value any) {
	c.SetTTL(key, value, c.defaultTTL)
}

// SetTTL stores value under key with an explicit TTL.
func (c *Cache) SetTTL(key string, value any, ttl time.Duration) {
	if key == "" {
		return
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	c.mu.Lock()
	c.entries[key] = entry{value: value, insertedAt: c.now(), ttl: ttl}
	c.mu.Unlock()
}

// Get returns the value stored under key. An entry past its TTL is deleted and
// reported as a miss.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if ent.expired(c.now()) {
		delete(c.entries, key)
		c.logger.Debug("evicted expired entry", logging.String("key", key))
		return nil, false
	}
	return ent.value, true
}

// Has reports whether key currently resolves to a live entry.
func (c *Cache) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Invalidate removes entries. An empty pattern clears the whole cache;
// otherwise every key containing pattern as a substring is removed. Returns
// the number of entries deleted.
func (c *Cache) Invalidate(pattern string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if pattern == "" {
		removed := len(c.entries)
		c.entries = make(map[string]entry)
		c.logger.Debug("cleared cache", logging.Int("entry_count", removed))
		return removed
	}

	removed := 0
	for key := range c.entries {
		if strings.Contains(key, pattern) {
			delete(c.entries, key)
			removed++
		}
	}
	c.logger.Debug("invalidated cache entries",
		logging.String("pattern", pattern),
		logging.Int("entry_count", removed))
	return removed
}

// Len returns the number of entries currently held, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
