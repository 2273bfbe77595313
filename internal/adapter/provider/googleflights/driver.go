package googleflights

import (
	"context"
	"sort"

	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/infrastructure/httpclient"
	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
)

// Name is the provider identifier.
const Name = "google_flights"

// Driver is the Google Flights back-end backed by SearchAPI.
type Driver struct {
	client *apiClient
	mapper *mapper
}

// NewDriver creates a Google Flights driver.
func NewDriver(apiKey string, http *httpclient.Client, log *logger.Logger) *Driver {
	if log == nil {
		log = logger.Nop()
	}
	return &Driver{
		client: newAPIClient(apiKey, http, log),
		mapper: newMapper(log),
	}
}

// Name implements provider.Driver.
func (d *Driver) Name() string { return Name }

// PerformSearch implements provider.Driver.
func (d *Driver) PerformSearch(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Flight, error) {
	data, err := d.client.searchFlights(ctx, criteria)
	if err != nil {
		return nil, err
	}
	return applyStopFilter(d.mapper.mapResponse(data, criteria), criteria), nil
}

// applyStopFilter drops flights over the requested stop limit and returns
// the remainder sorted by ascending price. SearchAPI concatenates its
// best_flights and other_flights sections without a price order, so the sort
// is not optional here.
func applyStopFilter(flights []domain.Flight, criteria domain.SearchCriteria) []domain.Flight {
	filtered := flights
	if maxStops, ok := criteria.EffectiveMaxStops(); ok {
		filtered = make([]domain.Flight, 0, len(flights))
		for _, f := range flights {
			if f.Stops() <= maxStops {
				filtered = append(filtered, f)
			}
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Price().Amount().LessThan(filtered[j].Price().Amount())
	})
	return filtered
}
