package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/infrastructure/httpclient"
	"github.com/flight-search/flight-finder/internal/infrastructure/ratelimit"
)

// fakeDriver lets tests script the backend behavior behind the shared
// provider pipeline.
type fakeDriver struct {
	name   string
	search func(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Flight, error)
}

func (d *fakeDriver) Name() string { return d.name }

func (d *fakeDriver) PerformSearch(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Flight, error) {
	return d.search(ctx, criteria)
}

func testCriteria(t *testing.T) domain.SearchCriteria {
	t.Helper()
	c, err := domain.NewSearchCriteria(domain.CriteriaSpec{
		Origin:        domain.MustAirport("JFK"),
		Destination:   domain.MustAirport("LHR"),
		DepartureDate: time.Now().UTC().AddDate(0, 0, 30),
	})
	require.NoError(t, err)
	return c
}

// testFlight builds a valid flight with controllable identity, airline,
// price, and departure offset so similarity checks can be steered precisely.
func testFlight(t *testing.T, id, airline, amount string, depOffset time.Duration) domain.Flight {
	t.Helper()
	dep := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC).Add(depOffset)
	f, err := domain.NewFlight(domain.FlightSpec{
		ID:            id,
		Origin:        domain.MustAirport("JFK"),
		Destination:   domain.MustAirport("LHR"),
		DepartureTime: dep,
		ArrivalTime:   dep.Add(7 * time.Hour),
		Price:         domain.MustPrice(amount, "USD"),
		Airline:       airline,
	})
	require.NoError(t, err)
	return f
}

func openLimiter() *ratelimit.Limiter {
	return ratelimit.New(100, time.Second)
}

func TestProvider_Search_Success(t *testing.T) {
	want := []domain.Flight{testFlight(t, "f1", "BA", "450.00", 0)}
	driver := &fakeDriver{
		name: "skyscanner",
		search: func(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Flight, error) {
			return want, nil
		},
	}

	p := New(driver, openLimiter(), nil)
	assert.Equal(t, "skyscanner", p.Name())

	got, err := p.Search(context.Background(), testCriteria(t))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestProvider_Search_RateLimitWaitAborted(t *testing.T) {
	driver := &fakeDriver{
		name: "skyscanner",
		search: func(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Flight, error) {
			t.Fatal("driver must not run when the limiter rejects")
			return nil, nil
		},
	}

	limiter := ratelimit.New(1, time.Hour)
	require.True(t, limiter.TryAcquire(), "drain the bucket")
	p := New(driver, limiter, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Search(ctx, testCriteria(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled, "cancellation is not wrapped")
}

func TestProvider_Search_ErrorClassification(t *testing.T) {
	tests := []struct {
		name      string
		driverErr error
		check     func(t *testing.T, err error)
	}{
		{
			name:      "http 429 becomes rate limit error",
			driverErr: &httpclient.StatusError{StatusCode: 429, RetryAfter: 30 * time.Second},
			check: func(t *testing.T, err error) {
				var rlErr *domain.RateLimitError
				require.ErrorAs(t, err, &rlErr)
				assert.Equal(t, domain.CodeRateLimitError, domain.ErrorCode(err))
			},
		},
		{
			name:      "http 500 becomes provider error",
			driverErr: &httpclient.StatusError{StatusCode: 500, Body: "upstream exploded"},
			check: func(t *testing.T, err error) {
				var provErr *domain.ProviderError
				require.ErrorAs(t, err, &provErr)
				assert.Equal(t, "skyscanner", provErr.Provider)
			},
		},
		{
			name:      "deadline exceeded becomes timeout error",
			driverErr: context.DeadlineExceeded,
			check: func(t *testing.T, err error) {
				var timeoutErr *domain.TimeoutError
				require.ErrorAs(t, err, &timeoutErr)
				assert.Contains(t, err.Error(), "skyscanner timed out")
			},
		},
		{
			name:      "domain errors pass through untouched",
			driverErr: domain.NewValidationError("origin", "XX", "bad airport"),
			check: func(t *testing.T, err error) {
				assert.Equal(t, domain.CodeValidationError, domain.ErrorCode(err))
			},
		},
		{
			name:      "cancellation passes through",
			driverErr: context.Canceled,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, context.Canceled)
				assert.Equal(t, domain.CodeInternalError, domain.ErrorCode(err), "no domain wrapping")
			},
		},
		{
			name:      "generic error becomes provider error",
			driverErr: errors.New("connection refused"),
			check: func(t *testing.T, err error) {
				var provErr *domain.ProviderError
				require.ErrorAs(t, err, &provErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driver := &fakeDriver{
				name: "skyscanner",
				search: func(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Flight, error) {
					return nil, tt.driverErr
				},
			}

			p := New(driver, openLimiter(), nil)
			_, err := p.Search(context.Background(), testCriteria(t))
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestProvider_IsAvailable_ConsumesToken(t *testing.T) {
	driver := &fakeDriver{name: "skyscanner"}
	p := New(driver, ratelimit.New(1, time.Hour), nil)

	assert.True(t, p.IsAvailable())
	assert.False(t, p.IsAvailable(), "single burst slot consumed by the probe")
}
