// Package whoiscache provides a thread-safe, TTL-based cache for WHOIS
// lookup results with singleflight deduplication for concurrent
// requests to the same domain.
package whoiscache

import (
	"sync"
	"time"

	"github.com/optimode/domainkit/types"
)

// Cache is a thread-safe WHOIS result cache keyed by domain.
// Concurrent lookups for the same domain are deduplicated: only one
// actual fetch is performed, and all waiters receive the result.
// Failed lookups are handed to waiters but not retained, so the next
// caller retries instead of seeing a stale error for the whole TTL.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	// now is injectable for deterministic expiry tests
	now func() time.Time
}

type entry struct {
	result  types.WhoisResult
	expires time.Time
	done    chan struct{} // closed when the fetch is complete
}

// New creates a cache whose entries stay fresh for ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// NewWithClock creates a cache with a custom time source (for testing).
func NewWithClock(ttl time.Duration, now func() time.Time) *Cache {
	c := New(ttl)
	c.now = now
	return c
}

// Get returns the cached result for domain when fresh, otherwise runs
// fetch and caches its outcome. Concurrent callers for the same domain
// share a single fetch.
func (c *Cache) Get(domain string, fetch func() types.WhoisResult) types.WhoisResult {
	c.mu.Lock()

	if e, ok := c.entries[domain]; ok {
		select {
		case <-e.done:
			// Completed entry - check if still fresh
			if c.now().Before(e.expires) {
				c.mu.Unlock()
				return e.result
			}
			// Expired, fall through to refresh
		default:
			// Fetch in progress - wait for it
			c.mu.Unlock()
			<-e.done
			return e.result
		}
	}

	// Start new fetch
	e := &entry{done: make(chan struct{})}
	c.entries[domain] = e
	c.mu.Unlock()

	e.result = fetch()
	e.expires = c.now().Add(c.ttl)
	close(e.done)

	if e.result.Err != "" {
		c.mu.Lock()
		if c.entries[domain] == e {
			delete(c.entries, domain)
		}
		c.mu.Unlock()
	}

	return e.result
}

// Len returns the number of entries in the cache (for diagnostics).
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
