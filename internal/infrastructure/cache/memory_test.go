package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/flight-finder/internal/domain"
)

func testFlight(t *testing.T, id string) domain.Flight {
	t.Helper()
	dep := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)
	f, err := domain.NewFlight(domain.FlightSpec{
		ID:            id,
		Origin:        domain.MustAirport("JFK"),
		Destination:   domain.MustAirport("LHR"),
		DepartureTime: dep,
		ArrivalTime:   dep.Add(7 * time.Hour),
		Price:         domain.MustPrice("450.00", "USD"),
		Airline:       "BA",
	})
	require.NoError(t, err)
	return f
}

// fakeClock is a manually advanced time source.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestCache(opts ...Option) (*Memory, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)}
	opts = append(opts, withClock(clock.Now))
	return NewMemory(opts...), clock
}

func TestMemory_GetSet(t *testing.T) {
	m, _ := newTestCache()
	flights := []domain.Flight{testFlight(t, "f1")}

	_, ok := m.Get("k1")
	assert.False(t, ok, "empty cache misses")

	m.Set("k1", flights)
	got, ok := m.Get("k1")
	require.True(t, ok)
	assert.Len(t, got, 1)
	assert.Equal(t, "f1", got[0].ID())
}

func TestMemory_TTLExpiry(t *testing.T) {
	m, clock := newTestCache(WithTTL(5 * time.Minute))
	m.Set("k1", []domain.Flight{testFlight(t, "f1")})

	clock.Advance(4 * time.Minute)
	_, ok := m.Get("k1")
	assert.True(t, ok, "entry still live")

	clock.Advance(2 * time.Minute)
	_, ok = m.Get("k1")
	assert.False(t, ok, "expired entry is a miss")

	stats := m.Stats()
	assert.Equal(t, 0, stats.Size, "expired entry removed")
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
}

func TestMemory_ExpiryBoundaryIsExclusive(t *testing.T) {
	m, clock := newTestCache(WithTTL(time.Minute))
	m.Set("k1", nil)

	clock.Advance(time.Minute)
	_, ok := m.Get("k1")
	assert.False(t, ok, "entry expires exactly at the TTL boundary")
}

func TestMemory_SetRefreshesTTL(t *testing.T) {
	m, clock := newTestCache(WithTTL(5 * time.Minute))
	m.Set("k1", nil)

	clock.Advance(4 * time.Minute)
	m.Set("k1", nil)

	clock.Advance(4 * time.Minute)
	_, ok := m.Get("k1")
	assert.True(t, ok, "second Set restarted the TTL")
}

func TestMemory_LRUEviction(t *testing.T) {
	m, _ := newTestCache(WithMaxSize(3))

	for i := 1; i <= 3; i++ {
		m.Set(fmt.Sprintf("k%d", i), nil)
	}

	// Touch k1 so k2 becomes least recently used.
	_, ok := m.Get("k1")
	require.True(t, ok)

	m.Set("k4", nil)

	_, ok = m.Get("k2")
	assert.False(t, ok, "least recently used entry evicted")
	for _, key := range []string{"k1", "k3", "k4"} {
		_, ok := m.Get(key)
		assert.True(t, ok, "key %s survives", key)
	}
}

func TestMemory_EvictionKeepsMostRecentlySet(t *testing.T) {
	const capacity = 5
	m, _ := newTestCache(WithMaxSize(capacity))

	for i := 0; i < capacity+3; i++ {
		m.Set(fmt.Sprintf("k%d", i), nil)
	}

	stats := m.Stats()
	assert.Equal(t, capacity, stats.Size)

	for i := 0; i < 3; i++ {
		_, ok := m.Get(fmt.Sprintf("k%d", i))
		assert.False(t, ok, "oldest key k%d evicted", i)
	}
	for i := 3; i < capacity+3; i++ {
		_, ok := m.Get(fmt.Sprintf("k%d", i))
		assert.True(t, ok, "recent key k%d survives", i)
	}
}

func TestMemory_Delete(t *testing.T) {
	m, _ := newTestCache()
	m.Set("k1", nil)

	assert.True(t, m.Delete("k1"), "deleting a present key reports removal")
	_, ok := m.Get("k1")
	assert.False(t, ok)

	assert.False(t, m.Delete("missing"), "deleting a missing key is a no-op")
}

func TestMemory_ZeroTTLExpiresImmediately(t *testing.T) {
	m, clock := newTestCache(WithTTL(5 * time.Minute))
	m.Set("k1", []domain.Flight{testFlight(t, "f1")}, 0)

	clock.Advance(time.Nanosecond)
	_, ok := m.Get("k1")
	assert.False(t, ok, "zero ttl entry is already expired")
}

func TestMemory_SetTTLOverride(t *testing.T) {
	m, clock := newTestCache(WithTTL(5 * time.Minute))
	m.Set("k1", nil, time.Minute)

	clock.Advance(2 * time.Minute)
	_, ok := m.Get("k1")
	assert.False(t, ok, "per-entry ttl beats the default")
}

func TestMemory_Exists(t *testing.T) {
	m, clock := newTestCache(WithTTL(time.Minute))
	m.Set("k1", nil)

	assert.True(t, m.Exists("k1"))
	assert.False(t, m.Exists("missing"))

	clock.Advance(2 * time.Minute)
	assert.False(t, m.Exists("k1"), "expired entry does not exist")

	stats := m.Stats()
	assert.Zero(t, stats.Hits, "Exists leaves the hit counter alone")
	assert.Zero(t, stats.Misses, "Exists leaves the miss counter alone")
	assert.Equal(t, 0, stats.Size, "expired entry dropped on probe")
}

func TestMemory_ClearPreservesCounters(t *testing.T) {
	m, _ := newTestCache()
	m.Set("k1", nil)
	m.Set("k2", nil)

	m.Get("k1")    // hit
	m.Get("nope")  // miss

	cleared := m.Clear()
	assert.Equal(t, 2, cleared)

	stats := m.Stats()
	assert.Equal(t, 0, stats.Size)
	assert.Equal(t, uint64(1), stats.Hits, "hits survive Clear")
	assert.Equal(t, uint64(1), stats.Misses, "misses survive Clear")
}

func TestMemory_Stats_HitRate(t *testing.T) {
	m, _ := newTestCache()

	assert.Zero(t, m.Stats().HitRate, "no traffic means zero rate")

	m.Set("k1", nil)
	m.Get("k1")   // hit
	m.Get("k1")   // hit
	m.Get("nope") // miss

	stats := m.Stats()
	assert.InDelta(t, 66.67, stats.HitRate, 0.01)
}
