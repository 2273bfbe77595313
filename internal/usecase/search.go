// Package usecase contains the application services sitting between the
// tool/HTTP handlers and the provider layer.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
)

// DefaultMaxResults caps how many flights a search returns to callers.
const DefaultMaxResults = 50

// SearchResult is the outcome of a search with its execution metadata.
type SearchResult struct {
	Flights        []domain.Flight
	TotalResults   int
	ProvidersUsed  []string
	SearchDuration time.Duration
	// CacheHit is reported at this level only when the whole aggregated
	// result was served from cache; per-provider hits surface in the cache
	// statistics instead.
	CacheHit bool
}

// SearchUseCase runs flight searches against a provider (usually the
// aggregator) and applies result limits.
type SearchUseCase interface {
	Execute(ctx context.Context, criteria domain.SearchCriteria) (*SearchResult, error)
}

type searchUseCase struct {
	provider   domain.FlightProvider
	maxResults int
	log        *logger.Logger
}

// NewSearchUseCase creates a SearchUseCase over the given provider.
// maxResults <= 0 falls back to DefaultMaxResults.
func NewSearchUseCase(provider domain.FlightProvider, maxResults int, log *logger.Logger) SearchUseCase {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if log == nil {
		log = logger.Nop()
	}
	return &searchUseCase{
		provider:   provider,
		maxResults: maxResults,
		log:        log.WithContext("use_case", "search_flights"),
	}
}

// Execute implements SearchUseCase.
func (uc *searchUseCase) Execute(ctx context.Context, criteria domain.SearchCriteria) (*SearchResult, error) {
	retDate := ""
	if rd, ok := criteria.ReturnDate(); ok {
		retDate = rd.Format("2006-01-02")
	}
	uc.log.Info().
		Str("origin", criteria.Origin().Code()).
		Str("destination", criteria.Destination().Code()).
		Str("departure_date", criteria.DepartureDate().Format("2006-01-02")).
		Str("return_date", retDate).
		Int("passengers", criteria.Passengers().Total()).
		Msg("search_started")

	start := time.Now()
	flights, err := uc.provider.Search(ctx, criteria)
	duration := time.Since(start)

	if err != nil {
		uc.log.Error().
			Dur("duration", duration).
			Err(err).
			Msg("search_failed")

		searchErr := domain.NewSearchError(fmt.Sprintf("flight search failed: %s", errorMessage(err)), err)
		var provErr *domain.ProviderError
		if errors.As(err, &provErr) {
			searchErr.WithContext("providers_failed", []string{provErr.Provider})
		}
		return nil, searchErr
	}

	limited := flights
	if len(limited) > uc.maxResults {
		limited = limited[:uc.maxResults]
	}

	uc.log.Info().
		Dur("duration", duration).
		Int("total_results", len(flights)).
		Int("returned_results", len(limited)).
		Msg("search_completed")

	return &SearchResult{
		Flights:        limited,
		TotalResults:   len(limited),
		ProvidersUsed:  uc.providerNames(),
		SearchDuration: duration,
		CacheHit:       false,
	}, nil
}

// providerNames reports the backing providers: the aggregated set when the
// provider is an aggregator, otherwise the provider itself.
func (uc *searchUseCase) providerNames() []string {
	type multi interface{ ProviderNames() []string }
	if m, ok := uc.provider.(multi); ok {
		return m.ProviderNames()
	}
	return []string{uc.provider.Name()}
}

// errorMessage prefers the domain message over the full wrap chain.
func errorMessage(err error) string {
	var coded domain.Coded
	if errors.As(err, &coded) {
		return coded.DomainMessage()
	}
	return err.Error()
}

var _ SearchUseCase = (*searchUseCase)(nil)
