// Package cache provides an in-memory TTL cache with LRU eviction for
// normalized search results, plus deterministic cache key generation.
package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/flight-search/flight-finder/internal/domain"
)

// Defaults for the result cache.
const (
	DefaultMaxSize = 1000
	DefaultTTL     = 5 * time.Minute
)

type entry struct {
	key       string
	flights   []domain.Flight
	expiresAt time.Time
}

// Memory is an in-memory cache with per-entry TTL and LRU eviction.
// Expired entries are dropped lazily on access and count as misses.
// Hit and miss counters survive Clear. Safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	order   *list.List // front = most recently used
	items   map[string]*list.Element
	hits    uint64
	misses  uint64
	now     func() time.Time
}

// Option configures a Memory cache.
type Option func(*Memory)

// WithMaxSize caps the number of entries. Values below 1 fall back to the
// default.
func WithMaxSize(n int) Option {
	return func(m *Memory) {
		if n >= 1 {
			m.maxSize = n
		}
	}
}

// WithTTL sets the default per-entry time to live. Zero is valid and makes
// entries expire immediately unless Set overrides it; negative values fall
// back to the default.
func WithTTL(d time.Duration) Option {
	return func(m *Memory) {
		if d >= 0 {
			m.ttl = d
		}
	}
}

// withClock overrides the time source for tests.
func withClock(now func() time.Time) Option {
	return func(m *Memory) { m.now = now }
}

// NewMemory creates a Memory cache with the given options.
func NewMemory(opts ...Option) *Memory {
	m := &Memory{
		maxSize: DefaultMaxSize,
		ttl:     DefaultTTL,
		order:   list.New(),
		items:   make(map[string]*list.Element),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var _ domain.ResultCache = (*Memory)(nil)

// Get returns the cached flights for key. Expired entries are removed and
// reported as misses.
func (m *Memory) Get(key string) ([]domain.Flight, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.items[key]
	if !ok {
		m.misses++
		return nil, false
	}
	e := el.Value.(*entry)
	if !m.now().Before(e.expiresAt) {
		m.removeLocked(el)
		m.misses++
		return nil, false
	}
	m.order.MoveToFront(el)
	m.hits++
	return e.flights, true
}

// Set stores flights under key, refreshing the TTL and recency. An optional
// ttl overrides the default for this entry; ttl 0 stores an already-expired
// entry. When the cache is over capacity the least recently used entries are
// evicted.
func (m *Memory) Set(key string, flights []domain.Flight, ttl ...time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	effective := m.ttl
	if len(ttl) > 0 {
		effective = ttl[0]
	}
	expiresAt := m.now().Add(effective)
	if el, ok := m.items[key]; ok {
		e := el.Value.(*entry)
		e.flights = flights
		e.expiresAt = expiresAt
		m.order.MoveToFront(el)
		return
	}

	el := m.order.PushFront(&entry{key: key, flights: flights, expiresAt: expiresAt})
	m.items[key] = el

	for m.order.Len() > m.maxSize {
		m.removeLocked(m.order.Back())
	}
}

// Delete removes a single entry and reports whether one was present.
func (m *Memory) Delete(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	el, ok := m.items[key]
	if ok {
		m.removeLocked(el)
	}
	return ok
}

// Exists reports whether key holds an unexpired entry. Unlike Get it leaves
// the hit/miss counters and the recency order untouched; expired entries are
// still dropped.
func (m *Memory) Exists(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	el, ok := m.items[key]
	if !ok {
		return false
	}
	if !m.now().Before(el.Value.(*entry).expiresAt) {
		m.removeLocked(el)
		return false
	}
	return true
}

// Clear removes all entries and returns how many were dropped. The hit and
// miss counters are preserved.
func (m *Memory) Clear() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := m.order.Len()
	m.order.Init()
	m.items = make(map[string]*list.Element)
	return count
}

// Stats returns a snapshot of the cache counters. HitRate is a percentage.
func (m *Memory) Stats() domain.CacheStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := domain.CacheStats{
		Size:    m.order.Len(),
		MaxSize: m.maxSize,
		Hits:    m.hits,
		Misses:  m.misses,
	}
	if total := stats.Hits + stats.Misses; total > 0 {
		stats.HitRate = float64(stats.Hits) / float64(total) * 100
	}
	return stats
}

func (m *Memory) removeLocked(el *list.Element) {
	if el == nil {
		return
	}
	e := el.Value.(*entry)
	delete(m.items, e.key)
	m.order.Remove(el)
}
