// Package cache provides a capacity-bounded, least-recently-used
// memoization store with hit/miss accounting. Two instances back the
// signature analyzer and the reference resolver; each is owned by a
// single generation run and cleared between runs.
package cache

import (
	"fmt"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"tsdocs/internal/core/errors"
)

// Bounded is an LRU cache keyed by strings. Keys are trimmed before
// lookup and storage so equivalent inputs differing only in surrounding
// whitespace collapse into one slot.
//
// A disabled cache treats every Get as a miss and every Set as a no-op
// while still reporting stats with Enabled=false.
type Bounded[K ~string, V any] struct {
	mu      sync.Mutex
	maxSize int
	enabled bool
	entries *lru.Cache[K, V]

	hits   int64
	misses int64
}

// Stats is a point-in-time snapshot of cache behaviour. Diagnostic
// only; nothing downstream depends on it for correctness.
type Stats struct {
	Size      int     `json:"size"`
	MaxSize   int     `json:"maxSize"`
	HitCount  int64   `json:"hitCount"`
	MissCount int64   `json:"missCount"`
	HitRate   float64 `json:"hitRate"`
	Enabled   bool    `json:"enabled"`
}

// New creates an enabled cache holding at most maxSize entries.
// A non-positive maxSize is caller misuse and returns a validation error.
func New[K ~string, V any](maxSize int) (*Bounded[K, V], error) {
	if maxSize <= 0 {
		return nil, errors.New(errors.CodeValidationError, fmt.Sprintf("cache size must be positive, got %d", maxSize))
	}
	entries, err := lru.New[K, V](maxSize)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "init lru store")
	}
	return &Bounded[K, V]{maxSize: maxSize, enabled: true, entries: entries}, nil
}

// NewDisabled creates a cache that never stores anything. Useful for
// benchmarking cold-path behaviour and for configs that turn caching off.
func NewDisabled[K ~string, V any]() *Bounded[K, V] {
	return &Bounded[K, V]{}
}

func normalizeKey[K ~string](key K) K {
	return K(strings.TrimSpace(string(key)))
}

// Get returns the cached value for key. A hit promotes the entry to
// most-recently-used. A miss leaves the cache untouched.
func (c *Bounded[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		c.misses++
		var zero V
		return zero, false
	}
	v, ok := c.entries.Get(normalizeKey(key))
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	return v, true
}

// Set inserts or replaces the value for key. Inserting a new key at
// capacity evicts exactly the least-recently-used entry first;
// replacing an existing key never changes the logical size.
func (c *Bounded[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return
	}
	c.entries.Add(normalizeKey(key), value)
}

// Len returns the current number of entries (always 0 when disabled).
func (c *Bounded[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled {
		return 0
	}
	return c.entries.Len()
}

// Cap returns the configured maximum size.
func (c *Bounded[K, V]) Cap() int {
	return c.maxSize
}

// Enabled reports whether the cache stores entries at all.
func (c *Bounded[K, V]) Enabled() bool {
	return c.enabled
}

// Clear removes all entries and resets the hit/miss counters. Required
// between independent generation runs sharing a process.
func (c *Bounded[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.enabled {
		c.entries.Purge()
	}
	c.hits = 0
	c.misses = 0
}

// GetStats snapshots the counters. HitRate is 0 when no requests have
// been made, never NaN.
func (c *Bounded[K, V]) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	size := 0
	if c.enabled {
		size = c.entries.Len()
	}
	total := c.hits + c.misses
	rate := 0.0
	if total > 0 {
		rate = float64(c.hits) / float64(total)
	}
	return Stats{
		Size:      size,
		MaxSize:   c.maxSize,
		HitCount:  c.hits,
		MissCount: c.misses,
		HitRate:   rate,
		Enabled:   c.enabled,
	}
}
