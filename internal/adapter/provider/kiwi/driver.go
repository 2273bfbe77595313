package kiwi

import (
	"context"
	"sort"

	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/infrastructure/httpclient"
	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
)

// Name is the provider identifier.
const Name = "kiwi"

// Driver is the Kiwi back-end. Stop filtering happens server-side via the
// stops parameter; the price sort is reapplied locally since the server-side
// ordering is advisory.
type Driver struct {
	client *apiClient
	mapper *mapper
}

// NewDriver creates a Kiwi driver.
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

	flights := d.mapper.mapResponse(data, criteria.CabinClass())
	sort.SliceStable(flights, func(i, j int) bool {
		return flights[i].Price().Amount().LessThan(flights[j].Price().Amount())
	})
	return flights, nil
}
