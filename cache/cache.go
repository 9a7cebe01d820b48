// Package cache decides whether a prior successful authentication is still
// valid for a cached-method request, and durably remembers successes across
// process restarts.
//
// TTL is evaluated lazily on each access rather than by a background timer,
// which keeps validity a pure function of the stored entry and the injected
// clock.
package cache

import (
	"sync"
	"time"
)

// Clock abstracts time so TTL logic is deterministically testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// Entry records the last successful cached-method authentication.
// Exclusively owned by the Cache; never handed out to callers.
type Entry struct {
	LastSuccessAt time.Time     `json:"last_success_at"`
	TTL           time.Duration `json:"ttl"`
}

// Store is the durable persistence collaborator. Corruption or absence must
// be reported as a nil entry, never as a stale one.
type Store interface {
	Read() (*Entry, error)
	Write(*Entry) error
	Clear() error
}

// Decision is the outcome of a single consistent cache check.
type Decision struct {
	// Hit is true iff an entry exists and now - lastSuccessAt < ttl.
	Hit bool
	// Remaining is the unexpired portion of the TTL; meaningful only on a hit.
	Remaining time.Duration
	// Expired is true when an entry existed but aged out; reported once,
	// after which the entry is treated as absent.
	Expired bool
	// OriginalTTL is the TTL of the expired entry; meaningful only when
	// Expired is true.
	OriginalTTL time.Duration
}

// LoadResult describes what Load found in durable storage.
type LoadResult struct {
	Restored    bool
	Expired     bool
	OriginalTTL time.Duration
}

// Cache is the in-memory TTL-gated record of the last successful
// authentication, backed by a persisted snapshot. Safe for concurrent use;
// mutation and persistence happen under one critical section so readers
// never observe a half-written entry.
type Cache struct {
	mu    sync.Mutex
	clock Clock
	store Store
	entry *Entry
}

func New(clock Clock, store Store) *Cache {
	return &Cache{clock: clock, store: store}
}

// Load restores the persisted entry. Called once at startup. Expiry is
// re-checked against the clock at load time: an entry already past its TTL
// is treated as absent rather than restored. A read error is reported but
// otherwise treated as absence.
func (c *Cache) Load() (LoadResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, err := c.store.Read()
	if err != nil {
		return LoadResult{}, err
	}
	if entry == nil {
		return LoadResult{}, nil
	}
	if c.clock.Now().Sub(entry.LastSuccessAt) >= entry.TTL {
		return LoadResult{Expired: true, OriginalTTL: entry.TTL}, nil
	}
	c.entry = entry
	return LoadResult{Restored: true}, nil
}

// Check evaluates the entry against the clock. The validity window is
// half-open: valid iff now - lastSuccessAt < ttl.
func (c *Cache) Check() Decision {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entry == nil {
		return Decision{}
	}
	now := c.clock.Now()
	remaining := c.entry.TTL - now.Sub(c.entry.LastSuccessAt)
	if remaining > 0 {
		return Decision{Hit: true, Remaining: remaining}
	}
	ttl := c.entry.TTL
	c.entry = nil
	return Decision{Expired: true, OriginalTTL: ttl}
}

// IsValid reports whether a cached-method request could be satisfied right
// now without mutating the expiry bookkeeping.
func (c *Cache) IsValid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entry == nil {
		return false
	}
	return c.clock.Now().Sub(c.entry.LastSuccessAt) < c.entry.TTL
}

// RemainingTTL returns the unexpired portion of the TTL, clamped to >= 0.
func (c *Cache) RemainingTTL() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entry == nil {
		return 0
	}
	remaining := c.entry.TTL - c.clock.Now().Sub(c.entry.LastSuccessAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Record overwrites the entry with lastSuccessAt = now and the given TTL,
// persisting the snapshot synchronously before returning. The in-memory
// entry is updated even when persistence fails; losing the snapshot only
// costs a re-challenge after the next restart.
func (c *Cache) Record(ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &Entry{LastSuccessAt: c.clock.Now(), TTL: ttl}
	c.entry = entry
	return c.store.Write(entry)
}

// Invalidate clears the entry in memory and in durable storage.
func (c *Cache) Invalidate() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entry = nil
	return c.store.Clear()
}
