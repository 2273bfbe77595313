// Package mock provides configurable test doubles for the flight finder.
// Unlike the generated gomock doubles, these support scenario behavior:
// delays for timeout tests, scripted errors, and call counting.
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/flight-search/flight-finder/internal/domain"
)

// Provider is a configurable domain.FlightProvider double. Configure it with
// the builder methods before handing it to the code under test.
type Provider struct {
	name        string
	flights     []domain.Flight
	err         error
	delay       time.Duration
	unavailable bool

	mu        sync.Mutex
	callCount int
}

// NewProvider creates a mock provider with the given name.
func NewProvider(name string) *Provider {
	return &Provider{name: name}
}

// WithFlights configures the provider to return the given flights.
func (p *Provider) WithFlights(flights []domain.Flight) *Provider {
	p.flights = flights
	return p
}

// WithError configures the provider to fail with the given error.
func (p *Provider) WithError(err error) *Provider {
	p.err = err
	return p
}

// WithDelay makes Search wait before responding, for timeout and
// cancellation tests. The wait is interrupted by context cancellation.
func (p *Provider) WithDelay(d time.Duration) *Provider {
	p.delay = d
	return p
}

// Unavailable makes IsAvailable report false.
func (p *Provider) Unavailable() *Provider {
	p.unavailable = true
	return p
}

// Name implements domain.FlightProvider.
func (p *Provider) Name() string { return p.name }

// IsAvailable implements domain.FlightProvider.
func (p *Provider) IsAvailable() bool { return !p.unavailable }

// Search implements domain.FlightProvider. It respects context cancellation,
// applies the configured delay, then returns the scripted outcome.
func (p *Provider) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Flight, error) {
	p.mu.Lock()
	p.callCount++
	p.mu.Unlock()

	if p.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.delay):
		}
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if p.err != nil {
		return nil, p.err
	}
	return p.flights, nil
}

// CallCount returns how many times Search was invoked.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.callCount
}

// Reset zeroes the call count.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.callCount = 0
}

var _ domain.FlightProvider = (*Provider)(nil)

// SampleFlights builds count valid flights attributed to the named provider,
// spaced two hours apart with ascending prices.
func SampleFlights(provider string, count int) []domain.Flight {
	base := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)

	flights := make([]domain.Flight, 0, count)
	for i := 0; i < count; i++ {
		departure := base.Add(time.Duration(i*2) * time.Hour)
		flight, err := domain.NewFlight(domain.FlightSpec{
			ID:            fmt.Sprintf("%s_%d", provider, i+1),
			Origin:        domain.MustAirport("JFK"),
			Destination:   domain.MustAirport("LHR"),
			DepartureTime: departure,
			ArrivalTime:   departure.Add(7 * time.Hour),
			Price:         domain.MustPrice(fmt.Sprintf("%d.00", 300+i*50), "USD"),
			CabinClass:    domain.CabinEconomy,
			Airline:       "BA",
			AirlineName:   "British Airways",
			FlightNumber:  fmt.Sprintf("BA%d", 100+i),
		})
		if err != nil {
			panic(fmt.Sprintf("mock.SampleFlights: %v", err))
		}
		flights = append(flights, flight)
	}
	return flights
}
