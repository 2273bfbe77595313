// Package provider contains the provider-side adapters: the shared search
// template wrapping each back-end driver, the caching wrapper, the
// multi-provider aggregator, and the factory that wires them together.
package provider

import (
	"context"
	"errors"
	"net/http"

	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/infrastructure/httpclient"
	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
	"github.com/flight-search/flight-finder/internal/infrastructure/ratelimit"
)

// Driver is the per-backend core of a provider: it talks to one external API
// and normalizes the response. The surrounding Provider template handles
// rate limiting, logging, and error classification so drivers stay focused
// on wire formats.
type Driver interface {
	// Name returns the stable provider identifier, e.g. "skyscanner".
	Name() string

	// PerformSearch executes the backend request(s) and maps the response
	// to normalized flights.
	PerformSearch(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Flight, error)
}

// Provider wraps a Driver with the shared search pipeline: acquire a rate
// limit slot, run the driver, classify failures into domain error types.
type Provider struct {
	driver  Driver
	limiter *ratelimit.Limiter
	log     *logger.Logger
}

// New wraps a driver with the shared pipeline.
func New(driver Driver, limiter *ratelimit.Limiter, log *logger.Logger) *Provider {
	if log == nil {
		log = logger.Nop()
	}
	return &Provider{
		driver:  driver,
		limiter: limiter,
		log:     log.WithProvider(driver.Name()),
	}
}

var _ domain.FlightProvider = (*Provider)(nil)

// Name returns the driver's provider identifier.
func (p *Provider) Name() string { return p.driver.Name() }

// Search acquires a rate limit slot, runs the driver, and classifies errors.
func (p *Provider) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Flight, error) {
	p.log.Info().
		Stringer("criteria", criteria).
		Msg("search_started")

	if err := p.limiter.Acquire(ctx); err != nil {
		p.log.Warn().Err(err).Msg("rate_limit_wait_aborted")
		return nil, p.classify(err)
	}

	flights, err := p.driver.PerformSearch(ctx, criteria)
	if err != nil {
		p.log.Error().
			Err(err).
			Msg("search_failed")
		return nil, p.classify(err)
	}

	p.log.Info().
		Int("flight_count", len(flights)).
		Msg("search_completed")
	return flights, nil
}

// IsAvailable probes the rate limiter without blocking.
func (p *Provider) IsAvailable() bool {
	return p.limiter.TryAcquire()
}

// classify maps transport-level failures to the domain error taxonomy.
// HTTP 429 becomes a RateLimitError carrying any Retry-After hint, deadline
// expiry becomes a TimeoutError, everything else a ProviderError.
func (p *Provider) classify(err error) error {
	name := p.driver.Name()

	var coded domain.Coded
	if errors.As(err, &coded) {
		return err
	}

	var statusErr *httpclient.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode == http.StatusTooManyRequests {
			return domain.NewRateLimitError(name, statusErr.RetryAfter, err)
		}
		return domain.NewProviderError(name, statusErr.Error(), err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewTimeoutError(name, 0, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	return domain.NewProviderError(name, err.Error(), err)
}
