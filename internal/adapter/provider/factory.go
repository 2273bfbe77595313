package provider

import (
	"time"

	"github.com/flight-search/flight-finder/internal/adapter/provider/googleflights"
	"github.com/flight-search/flight-finder/internal/adapter/provider/kiwi"
	"github.com/flight-search/flight-finder/internal/adapter/provider/rapidapi"
	"github.com/flight-search/flight-finder/internal/adapter/provider/skyscanner"
	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/infrastructure/cache"
	"github.com/flight-search/flight-finder/internal/infrastructure/httpclient"
	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
	"github.com/flight-search/flight-finder/internal/infrastructure/ratelimit"
)

// Per-backend registry priorities. Higher runs first when selecting top-N.
const (
	prioritySkyscanner    = 90
	priorityGoogleFlights = 80
	priorityKiwi          = 75
	priorityRapidAPI      = 70
)

// Keys holds the per-backend API credentials. An empty key disables that
// backend.
type Keys struct {
	Skyscanner string
	SearchAPI  string
	RapidAPI   string
	Kiwi       string
}

// FactoryConfig tunes the factory's shared infrastructure.
type FactoryConfig struct {
	Keys      Keys
	CacheSize int
	CacheTTL  time.Duration
	// WithCache wraps each provider in the shared result cache.
	WithCache bool
	// HTTP tunes the shared client; the zero value uses defaults.
	HTTP httpclient.Config
}

// Factory builds fully wired providers: each backend driver wrapped in the
// rate-limited search template and, optionally, the shared result cache.
// All providers share one HTTP client and one cache.
type Factory struct {
	cfg      FactoryConfig
	http     *httpclient.Client
	cache    *cache.Memory
	registry *domain.ProviderRegistry
	log      *logger.Logger
}

// NewFactory creates a Factory with a fresh HTTP client and result cache.
func NewFactory(cfg FactoryConfig, log *logger.Logger) *Factory {
	if log == nil {
		log = logger.Nop()
	}

	cacheOpts := []cache.Option{}
	if cfg.CacheSize > 0 {
		cacheOpts = append(cacheOpts, cache.WithMaxSize(cfg.CacheSize))
	}
	if cfg.CacheTTL > 0 {
		cacheOpts = append(cacheOpts, cache.WithTTL(cfg.CacheTTL))
	}

	httpCfg := cfg.HTTP
	if httpCfg.Timeout == 0 {
		httpCfg = httpclient.DefaultConfig()
	}

	return &Factory{
		cfg:      cfg,
		http:     httpclient.New(httpCfg, log),
		cache:    cache.NewMemory(cacheOpts...),
		registry: domain.NewProviderRegistry(),
		log:      log.WithContext("component", "provider_factory"),
	}
}

// CreateSkyscanner builds the Skyscanner provider, or nil without a key.
// The partner API allows one request per 3 seconds.
func (f *Factory) CreateSkyscanner() domain.FlightProvider {
	if f.cfg.Keys.Skyscanner == "" {
		f.log.Warn().Msg("skyscanner_key_missing")
		return nil
	}
	p := f.assemble(
		skyscanner.NewDriver(f.cfg.Keys.Skyscanner, f.http, f.log),
		ratelimit.New(1, 3*time.Second))
	f.log.Info().Msg("skyscanner_provider_created")
	return p
}

// CreateGoogleFlights builds the Google Flights provider, or nil without a
// key. SearchAPI allows one request per 2 seconds.
func (f *Factory) CreateGoogleFlights() domain.FlightProvider {
	if f.cfg.Keys.SearchAPI == "" {
		f.log.Warn().Msg("searchapi_key_missing")
		return nil
	}
	p := f.assemble(
		googleflights.NewDriver(f.cfg.Keys.SearchAPI, f.http, f.log),
		ratelimit.New(1, 2*time.Second))
	f.log.Info().Msg("google_flights_provider_created")
	return p
}

// CreateRapidAPISkyscanner builds the RapidAPI Skyscanner mirror provider,
// or nil without a key.
func (f *Factory) CreateRapidAPISkyscanner() domain.FlightProvider {
	if f.cfg.Keys.RapidAPI == "" {
		f.log.Warn().Msg("rapidapi_key_missing")
		return nil
	}
	p := f.assemble(
		rapidapi.NewDriver(f.cfg.Keys.RapidAPI, f.http, f.log),
		ratelimit.New(1, 3*time.Second))
	f.log.Info().Msg("rapidapi_skyscanner_provider_created")
	return p
}

// CreateKiwi builds the Kiwi provider, or nil without a key.
func (f *Factory) CreateKiwi() domain.FlightProvider {
	if f.cfg.Keys.Kiwi == "" {
		f.log.Warn().Msg("kiwi_key_missing")
		return nil
	}
	p := f.assemble(
		kiwi.NewDriver(f.cfg.Keys.Kiwi, f.http, f.log),
		ratelimit.New(1, 2*time.Second))
	f.log.Info().Msg("kiwi_provider_created")
	return p
}

// CreateAll builds every configured provider and registers each with its
// backend priority. Backends without keys are skipped.
func (f *Factory) CreateAll() []domain.FlightProvider {
	type candidate struct {
		provider domain.FlightProvider
		priority int
	}
	candidates := []candidate{
		{f.CreateSkyscanner(), prioritySkyscanner},
		{f.CreateGoogleFlights(), priorityGoogleFlights},
		{f.CreateRapidAPISkyscanner(), priorityRapidAPI},
		{f.CreateKiwi(), priorityKiwi},
	}

	providers := make([]domain.FlightProvider, 0, len(candidates))
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c.provider == nil {
			continue
		}
		providers = append(providers, c.provider)
		names = append(names, c.provider.Name())
		f.registry.RegisterWithMetadata(c.provider, domain.ProviderMetadata{
			Priority: c.priority,
			Enabled:  true,
			Weight:   1.0,
		})
	}

	f.log.Info().
		Int("count", len(providers)).
		Strs("providers", names).
		Msg("providers_created")
	return providers
}

// CreateAggregator builds an aggregator over all configured providers.
func (f *Factory) CreateAggregator() *Aggregator {
	return NewAggregator(f.CreateAll(), f.log)
}

// assemble wraps a driver in the search template and, when configured, the
// shared result cache.
func (f *Factory) assemble(driver Driver, limiter *ratelimit.Limiter) domain.FlightProvider {
	var p domain.FlightProvider = New(driver, limiter, f.log)
	if f.cfg.WithCache {
		p = NewCached(p, f.cache, f.log)
	}
	return p
}

// Registry returns the registry holding all created providers.
func (f *Factory) Registry() *domain.ProviderRegistry { return f.registry }

// Cache returns the shared result cache.
func (f *Factory) Cache() *cache.Memory { return f.cache }

// Close releases the shared HTTP client's connections.
func (f *Factory) Close() {
	f.http.Close()
}
