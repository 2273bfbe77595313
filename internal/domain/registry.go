package domain

import (
	"sort"
	"sync"
)

// ProviderMetadata describes a registered provider's scheduling attributes.
// Priority orders providers (higher first); Weight is a relative share hint
// for future load distribution.
type ProviderMetadata struct {
	Priority int
	Enabled  bool
	Weight   float64
}

// DefaultProviderMetadata returns metadata for an enabled provider with
// neutral priority and weight.
func DefaultProviderMetadata() ProviderMetadata {
	return ProviderMetadata{Priority: 50, Enabled: true, Weight: 1.0}
}

// ProviderStatus is a snapshot of one registry entry.
type ProviderStatus struct {
	Name      string  `json:"name"`
	Priority  int     `json:"priority"`
	Enabled   bool    `json:"enabled"`
	Weight    float64 `json:"weight"`
	Available bool    `json:"available"`
}

type registryEntry struct {
	provider FlightProvider
	meta     ProviderMetadata
}

// ProviderRegistry holds the known flight providers with their metadata.
// Registration is first-wins: re-registering a name is ignored so that
// boot-time wiring order decides which implementation serves a name.
// Safe for concurrent use.
type ProviderRegistry struct {
	mu      sync.RWMutex
	entries map[string]registryEntry
}

// NewProviderRegistry creates an empty registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{entries: make(map[string]registryEntry)}
}

// Register adds a provider with default metadata. Nil providers and
// duplicate names are ignored. Returns true if the provider was added.
func (r *ProviderRegistry) Register(p FlightProvider) bool {
	return r.RegisterWithMetadata(p, DefaultProviderMetadata())
}

// RegisterWithMetadata adds a provider with explicit metadata, first-wins.
func (r *ProviderRegistry) RegisterWithMetadata(p FlightProvider, meta ProviderMetadata) bool {
	if p == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	name := p.Name()
	if _, exists := r.entries[name]; exists {
		return false
	}
	r.entries[name] = registryEntry{provider: p, meta: meta}
	return true
}

// Unregister removes a provider by name. Returns true if it was present.
func (r *ProviderRegistry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[name]; !exists {
		return false
	}
	delete(r.entries, name)
	return true
}

// Get returns the provider registered under name, or nil.
func (r *ProviderRegistry) Get(name string) FlightProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries[name].provider
}

// GetAll returns every registered provider, ordered by descending priority
// with name as a tiebreaker.
func (r *ProviderRegistry) GetAll() []FlightProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return providersOf(r.sortedLocked(false))
}

// GetEnabled returns the enabled providers ordered by descending priority.
func (r *ProviderRegistry) GetEnabled() []FlightProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return providersOf(r.sortedLocked(true))
}

// TopN returns up to n enabled providers by descending priority. n <= 0
// returns all enabled providers.
func (r *ProviderRegistry) TopN(n int) []FlightProvider {
	providers := r.GetEnabled()
	if n > 0 && len(providers) > n {
		providers = providers[:n]
	}
	return providers
}

// Names returns the registered provider names in no particular order.
func (r *ProviderRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	return names
}

// SetEnabled toggles a provider. Returns false if the name is unknown.
func (r *ProviderRegistry) SetEnabled(name string, enabled bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, exists := r.entries[name]
	if !exists {
		return false
	}
	entry.meta.Enabled = enabled
	r.entries[name] = entry
	return true
}

// Status returns a snapshot of every entry, ordered by descending priority.
func (r *ProviderRegistry) Status() []ProviderStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := r.sortedLocked(false)
	statuses := make([]ProviderStatus, 0, len(entries))
	for _, e := range entries {
		statuses = append(statuses, ProviderStatus{
			Name:      e.provider.Name(),
			Priority:  e.meta.Priority,
			Enabled:   e.meta.Enabled,
			Weight:    e.meta.Weight,
			Available: e.provider.IsAvailable(),
		})
	}
	return statuses
}

// Len returns the number of registered providers.
func (r *ProviderRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *ProviderRegistry) sortedLocked(enabledOnly bool) []registryEntry {
	entries := make([]registryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if enabledOnly && !e.meta.Enabled {
			continue
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].meta.Priority != entries[j].meta.Priority {
			return entries[i].meta.Priority > entries[j].meta.Priority
		}
		return entries[i].provider.Name() < entries[j].provider.Name()
	})
	return entries
}

func providersOf(entries []registryEntry) []FlightProvider {
	providers := make([]FlightProvider, 0, len(entries))
	for _, e := range entries {
		providers = append(providers, e.provider)
	}
	return providers
}
