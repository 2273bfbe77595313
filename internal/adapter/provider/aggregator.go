package provider

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
	"github.com/flight-search/flight-finder/internal/result"
)

// AggregatorName identifies the aggregator in errors and cache keys.
const AggregatorName = "aggregator"

// Deduplication thresholds. Two flights from different providers count as
// the same itinerary when airline and route match, both times are within
// dupTimeWindow of each other, and prices differ by at most priceTolerance
// of their mean.
const (
	dupTimeWindow      = 30 * time.Minute
	signatureRoundMins = 30
)

var (
	two            = decimal.NewFromInt(2)
	priceTolerance = decimal.NewFromFloat(0.05)
)

// Aggregator fans a search out to all its providers in parallel, tolerates
// partial failures, and merges the survivors into a deduplicated list sorted
// by ascending price. It implements FlightProvider so it can be cached and
// registered like a single back-end.
type Aggregator struct {
	providers []domain.FlightProvider
	log       *logger.Logger
}

// NewAggregator creates an Aggregator over the given providers.
func NewAggregator(providers []domain.FlightProvider, log *logger.Logger) *Aggregator {
	if log == nil {
		log = logger.Nop()
	}
	return &Aggregator{
		providers: providers,
		log:       log.WithContext("component", AggregatorName),
	}
}

var _ domain.FlightProvider = (*Aggregator)(nil)

// Name returns the aggregator identifier.
func (a *Aggregator) Name() string { return AggregatorName }

// ProviderNames lists the names of the aggregated providers.
func (a *Aggregator) ProviderNames() []string {
	names := make([]string, 0, len(a.providers))
	for _, p := range a.providers {
		names = append(names, p.Name())
	}
	return names
}

// IsAvailable reports whether at least one underlying provider is available.
func (a *Aggregator) IsAvailable() bool {
	for _, p := range a.providers {
		if p.IsAvailable() {
			return true
		}
	}
	return false
}

// providerOutcome pairs a provider name with its search result.
type providerOutcome struct {
	provider string
	result   result.Result[[]domain.Flight]
}

// Search runs every provider concurrently and gathers all outcomes. The
// search succeeds if at least one provider returned flights; it fails when
// none are configured or the merged list comes back empty.
func (a *Aggregator) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Flight, error) {
	if len(a.providers) == 0 {
		return nil, domain.NewProviderError(AggregatorName, "no providers available", nil)
	}

	a.log.Info().
		Int("provider_count", len(a.providers)).
		Str("origin", criteria.Origin().Code()).
		Str("destination", criteria.Destination().Code()).
		Msg("multi_search_started")

	outcomes := make(chan providerOutcome, len(a.providers))
	var wg sync.WaitGroup

	for _, p := range a.providers {
		wg.Add(1)
		go func(p domain.FlightProvider) {
			defer wg.Done()
			outcomes <- a.query(ctx, p, criteria)
		}(p)
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	var allFlights []domain.Flight
	var succeeded, failed []string

	for outcome := range outcomes {
		flights, err := outcome.result.Unwrap()
		if err != nil {
			failed = append(failed, outcome.provider)
			a.log.Warn().
				Str("provider", outcome.provider).
				Err(err).
				Msg("provider_failed")
			continue
		}
		succeeded = append(succeeded, outcome.provider)
		allFlights = append(allFlights, flights...)
		a.log.Info().
			Str("provider", outcome.provider).
			Int("flight_count", len(flights)).
			Msg("provider_success")
	}

	// An empty merged list is an Err even when some providers answered
	// with no matches; the message names whichever providers failed.
	if len(allFlights) == 0 {
		sort.Strings(failed)
		return nil, domain.NewProviderError(AggregatorName,
			fmt.Sprintf("all providers failed: %s", strings.Join(failed, ", ")), nil)
	}

	unique := deduplicate(allFlights, a.log)
	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Price().Amount().LessThan(unique[j].Price().Amount())
	})

	a.log.Info().
		Int("total_flights", len(allFlights)).
		Int("unique_flights", len(unique)).
		Int("successful_providers", len(succeeded)).
		Int("failed_providers", len(failed)).
		Msg("multi_search_completed")

	return unique, nil
}

// query runs one provider with panic recovery so a misbehaving adapter can
// never take down the whole fan-out.
func (a *Aggregator) query(ctx context.Context, p domain.FlightProvider, criteria domain.SearchCriteria) (out providerOutcome) {
	name := p.Name()
	defer func() {
		if r := recover(); r != nil {
			out = providerOutcome{
				provider: name,
				result: result.Err[[]domain.Flight](
					domain.NewProviderError(name, fmt.Sprintf("provider panic: %v", r), nil)),
			}
		}
	}()

	return providerOutcome{
		provider: name,
		result:   result.Of(p.Search(ctx, criteria)),
	}
}

// deduplicate removes near-identical itineraries reported by multiple
// providers, keeping the first occurrence. A coarse signature (route,
// airline, times rounded down to 30 minutes) gates the expensive pairwise
// similarity check.
func deduplicate(flights []domain.Flight, log *logger.Logger) []domain.Flight {
	if len(flights) <= 1 {
		return flights
	}

	unique := make([]domain.Flight, 0, len(flights))
	seen := make(map[string]struct{}, len(flights))

	for _, f := range flights {
		sig := signature(f)
		if _, ok := seen[sig]; ok && isDuplicate(f, unique) {
			log.Debug().
				Str("flight_id", f.ID()).
				Str("signature", sig).
				Msg("duplicate_flight_skipped")
			continue
		}
		unique = append(unique, f)
		seen[sig] = struct{}{}
	}

	if removed := len(flights) - len(unique); removed > 0 {
		log.Info().
			Int("original", len(flights)).
			Int("unique", len(unique)).
			Int("removed", removed).
			Msg("deduplication_complete")
	}
	return unique
}

func signature(f domain.Flight) string {
	return fmt.Sprintf("%s-%s-%s-%s-%s",
		f.Origin().Code(), f.Destination().Code(), f.Airline(),
		roundToHalfHour(f.DepartureTime()).Format(time.RFC3339),
		roundToHalfHour(f.ArrivalTime()).Format(time.RFC3339))
}

func roundToHalfHour(t time.Time) time.Time {
	return t.Truncate(signatureRoundMins * time.Minute)
}

func isDuplicate(f domain.Flight, existing []domain.Flight) bool {
	for _, e := range existing {
		if areSimilar(f, e) {
			return true
		}
	}
	return false
}

// areSimilar applies the full similarity test: same route and airline,
// departure and arrival within 30 minutes, price within 5% of the mean.
func areSimilar(f1, f2 domain.Flight) bool {
	if !f1.Origin().Equal(f2.Origin()) || !f1.Destination().Equal(f2.Destination()) {
		return false
	}
	if f1.Airline() != f2.Airline() {
		return false
	}
	if absDuration(f1.DepartureTime().Sub(f2.DepartureTime())) > dupTimeWindow {
		return false
	}
	if absDuration(f1.ArrivalTime().Sub(f2.ArrivalTime())) > dupTimeWindow {
		return false
	}

	p1, p2 := f1.Price().Amount(), f2.Price().Amount()
	diff := p1.Sub(p2).Abs()
	mean := p1.Add(p2).Div(two)
	threshold := mean.Mul(priceTolerance)
	return diff.LessThanOrEqual(threshold)
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
