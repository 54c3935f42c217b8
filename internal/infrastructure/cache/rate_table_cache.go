package cache

import (
	"sync"
	"time"

	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/entity"
)

// DefaultExpiration is how long an acquired rate table may be served
const DefaultExpiration = 5 * time.Minute

// CacheEntry is a cached rate table with the instant it was stored
type CacheEntry struct {
	Table    *entity.RateTable
	StoredAt time.Time
}

// RateTableCache is a concurrency safe in-memory cache of rate tables keyed by base currency.
// Two concurrent refills of the same base both store their table; the last writer wins.
type RateTableCache struct {
	entries    map[entity.CurrencyCode]CacheEntry
	expiration time.Duration
	now        func() time.Time
	mutex      sync.RWMutex
}

// NewRateTableCache creates a cache whose entries expire after expiration
// (DefaultExpiration when expiration is not positive)
func NewRateTableCache(expiration time.Duration) *RateTableCache {
	if expiration <= 0 {
		expiration = DefaultExpiration
	}

	return &RateTableCache{
		entries:    make(map[entity.CurrencyCode]CacheEntry),
		expiration: expiration,
		now:        time.Now,
	}
}

// Get returns the table cached for base, or nil when absent or stale
func (c *RateTableCache) Get(base entity.CurrencyCode) *entity.RateTable {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.entries[base]
	if !exists || c.now().Sub(entry.StoredAt) > c.expiration {
		return nil
	}

	return entry.Table
}

// Put stores a table under its base
func (c *RateTableCache) Put(table *entity.RateTable) {
	if table == nil {
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[table.Base] = CacheEntry{
		Table:    table,
		StoredAt: c.now(),
	}
}

// Clear removes every entry
func (c *RateTableCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[entity.CurrencyCode]CacheEntry)
}

// SetExpiration changes the staleness window
func (c *RateTableCache) SetExpiration(duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.expiration = duration
}

// Size returns the number of entries, stale ones included
func (c *RateTableCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.entries)
}

// CleanExpired removes stale entries and returns how many were removed
func (c *RateTableCache) CleanExpired() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	count := 0
	now := c.now()

	for base, entry := range c.entries {
		if now.Sub(entry.StoredAt) > c.expiration {
			delete(c.entries, base)
			count++
		}
	}

	return count
}
