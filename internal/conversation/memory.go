package conversation

import (
	"context"
	"sync"
	"time"
)

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

const (
	defaultMaxEntries = 10000
	defaultTTL        = 24 * time.Hour
)

type memoryEntry struct {
	ctx      *Context
	lastSeen time.Time
}

// MemoryStore is an in-process Store with bounded growth: entries idle
// longer than the TTL expire, and when the entry cap is exceeded the
// least-recently-used conversation is evicted.
type MemoryStore struct {
	mu         sync.Mutex
	entries    map[string]*memoryEntry
	maxEntries int
	ttl        time.Duration
	clock      Clock
}

// NewMemoryStore creates a MemoryStore. maxEntries <= 0 and ttl <= 0 fall
// back to 10000 entries and 24h respectively.
func NewMemoryStore(maxEntries int, ttl time.Duration) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &MemoryStore{
		entries:    make(map[string]*memoryEntry),
		maxEntries: maxEntries,
		ttl:        ttl,
		clock:      realClock{},
	}
}

// NewMemoryStoreWithClock creates a MemoryStore with a custom clock (for testing).
func NewMemoryStoreWithClock(maxEntries int, ttl time.Duration, clock Clock) *MemoryStore {
	s := NewMemoryStore(maxEntries, ttl)
	s.clock = clock
	return s
}

// Get returns the stored context for id, or (nil, nil) when the id is
// unknown or the entry has expired.
func (s *MemoryStore) Get(_ context.Context, id string) (*Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, nil
	}
	now := s.clock.Now()
	if now.Sub(e.lastSeen) > s.ttl {
		delete(s.entries, id)
		return nil, nil
	}
	e.lastSeen = now
	return e.ctx, nil
}

// Upsert stores c, refreshing its idle timer. When the store is over
// capacity the least-recently-used entries are evicted first.
func (s *MemoryStore) Upsert(_ context.Context, c *Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.entries[c.ID] = &memoryEntry{ctx: c, lastSeen: now}

	// Drop expired entries before resorting to LRU eviction.
	for id, e := range s.entries {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.entries, id)
		}
	}
	for len(s.entries) > s.maxEntries {
		oldestID := ""
		var oldest time.Time
		for id, e := range s.entries {
			if oldestID == "" || e.lastSeen.Before(oldest) {
				oldestID, oldest = id, e.lastSeen
			}
		}
		delete(s.entries, oldestID)
	}
	return nil
}

// Close releases the store's entries.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*memoryEntry)
	return nil
}

// Len reports the number of live conversations. Used by tests and the
// status endpoint.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
