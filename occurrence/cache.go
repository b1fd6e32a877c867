package occurrence

import (
	"encoding/hex"
	"io"
	"log/slog"
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/samber/mo"
	"github.com/zeebo/blake3"

	"github.com/cyp0633/chronolight/codec"
	"github.com/cyp0633/chronolight/schedule"
)

// Resolution records that every query instant in [From, Until] resolves to
// Next. An exhausted schedule stays exhausted, so its Until is MaxUint64.
type Resolution struct {
	From  uint64
	Until uint64
	Next  mo.Option[uint64]
}

func (r Resolution) covers(now uint64) bool {
	return r.From <= now && now <= r.Until
}

// CacheEntry is one cached resolution per schedule
type CacheEntry struct {
	Resolution Resolution
	ExpiresAt  time.Time
	AccessedAt time.Time
}

// ResolutionCache remembers, per schedule, the window of query instants that
// share the same next occurrence
type ResolutionCache struct {
	entries         map[string]*CacheEntry
	mutex           sync.RWMutex
	ttl             time.Duration
	maxEntries      int
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	closeOnce       sync.Once

	hits   atomic.Uint64
	misses atomic.Uint64

	now    func() time.Time
	logger *slog.Logger
}

// CacheConfig holds configuration for the resolution cache
type CacheConfig struct {
	TTL             time.Duration // How long entries stay valid
	MaxEntries      int           // Maximum number of entries before eviction
	CleanupInterval time.Duration // How often to run cleanup
}

// DefaultCacheConfig provides sensible defaults for resolution caching
var DefaultCacheConfig = CacheConfig{
	TTL:             15 * time.Minute,
	MaxEntries:      1000,
	CleanupInterval: 5 * time.Minute,
}

// NewResolutionCache creates a cache and starts its cleanup goroutine
func NewResolutionCache(config CacheConfig) *ResolutionCache {
	return newResolutionCache(config, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newResolutionCache(config CacheConfig, logger *slog.Logger) *ResolutionCache {
	cache := &ResolutionCache{
		entries:         make(map[string]*CacheEntry),
		ttl:             config.TTL,
		maxEntries:      config.MaxEntries,
		cleanupInterval: config.CleanupInterval,
		stopCleanup:     make(chan struct{}),
		now:             time.Now,
		logger:          logger,
	}

	if cache.cleanupInterval > 0 {
		go cache.cleanupLoop()
	}

	return cache
}

// ScheduleKey derives the cache key of s from its canonical CBOR encoding
func ScheduleKey(s schedule.Schedule) (string, error) {
	data, err := codec.MarshalSchedule(s)
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Get returns the cached next occurrence for a query at now, if the stored
// resolution covers it
func (c *ResolutionCache) Get(key string, now uint64) (mo.Option[uint64], bool) {
	c.mutex.RLock()
	entry, exists := c.entries[key]
	c.mutex.RUnlock()

	if !exists {
		c.misses.Add(1)
		return mo.None[uint64](), false
	}

	wall := c.now()
	if wall.After(entry.ExpiresAt) {
		c.mutex.Lock()
		delete(c.entries, key)
		c.mutex.Unlock()
		c.misses.Add(1)
		return mo.None[uint64](), false
	}

	c.mutex.Lock()
	entry.AccessedAt = wall
	res := entry.Resolution
	c.mutex.Unlock()

	if !res.covers(now) {
		c.misses.Add(1)
		return mo.None[uint64](), false
	}
	c.hits.Add(1)
	return res.Next, true
}

// Set stores the resolution for key, replacing any previous one
func (c *ResolutionCache) Set(key string, res Resolution) {
	wall := c.now()
	entry := &CacheEntry{
		Resolution: res,
		ExpiresAt:  wall.Add(c.ttl),
		AccessedAt: wall,
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = entry

	if len(c.entries) > c.maxEntries {
		c.cleanup()
	}
}

// cleanup removes expired entries, then the least recently used ones while
// over the limit. Callers hold the write lock.
func (c *ResolutionCache) cleanup() {
	wall := c.now()

	for key, entry := range c.entries {
		if wall.After(entry.ExpiresAt) {
			delete(c.entries, key)
		}
	}

	if len(c.entries) <= c.maxEntries {
		return
	}

	type keyAccess struct {
		key        string
		accessedAt time.Time
	}
	keyAccessList := make([]keyAccess, 0, len(c.entries))
	for key, entry := range c.entries {
		keyAccessList = append(keyAccessList, keyAccess{key: key, accessedAt: entry.AccessedAt})
	}
	sort.Slice(keyAccessList, func(i, j int) bool {
		return keyAccessList[i].accessedAt.Before(keyAccessList[j].accessedAt)
	})

	evict := len(c.entries) - c.maxEntries
	for i := 0; i < evict; i++ {
		delete(c.entries, keyAccessList[i].key)
	}
	c.logger.Debug("evicted cached resolutions", "count", evict)
}

func (c *ResolutionCache) cleanupLoop() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mutex.Lock()
			c.cleanup()
			c.mutex.Unlock()
		case <-c.stopCleanup:
			return
		}
	}
}

// Close stops the cleanup goroutine and clears the cache. It is safe to call
// more than once.
func (c *ResolutionCache) Close() {
	c.closeOnce.Do(func() {
		close(c.stopCleanup)
	})
	c.mutex.Lock()
	c.entries = make(map[string]*CacheEntry)
	c.mutex.Unlock()
}

// Stats returns cache statistics
func (c *ResolutionCache) Stats() CacheStats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entryCount := len(c.entries)
	expiredCount := 0
	wall := c.now()

	for _, entry := range c.entries {
		if wall.After(entry.ExpiresAt) {
			expiredCount++
		}
	}

	return CacheStats{
		TotalEntries:   entryCount,
		ExpiredEntries: expiredCount,
		ActiveEntries:  entryCount - expiredCount,
		Hits:           c.hits.Load(),
		Misses:         c.misses.Load(),
	}
}

// CacheStats provides information about cache performance
type CacheStats struct {
	TotalEntries   int
	ExpiredEntries int
	ActiveEntries  int
	Hits           uint64
	Misses         uint64
}

// exhaustedFrom is the resolution of a schedule with no occurrence at or after now
func exhaustedFrom(now uint64) Resolution {
	return Resolution{From: now, Until: math.MaxUint64, Next: mo.None[uint64]()}
}
