package skyscanner

import (
	"context"
	"sort"

	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/infrastructure/httpclient"
	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
)

// Name is the provider identifier for the partner API endpoint.
const Name = "skyscanner"

// Driver is the Skyscanner back-end: create a live search session, poll it
// to completion, normalize the itineraries, then filter by stop count and
// sort by price.
type Driver struct {
	name   string
	client *apiClient
	mapper *mapper
}

// NewDriver creates a driver against the Skyscanner partner API.
func NewDriver(apiKey string, http *httpclient.Client, log *logger.Logger) *Driver {
	return NewDriverForEndpoint(Name, apiBaseURL,
		map[string]string{"X-API-Key": apiKey}, http, log)
}

// NewDriverForEndpoint creates a driver against an alternate endpoint that
// speaks the same create/poll protocol, e.g. the RapidAPI mirror. The name
// prefixes flight IDs and appears in logs and errors.
func NewDriverForEndpoint(name, baseURL string, headers map[string]string, http *httpclient.Client, log *logger.Logger) *Driver {
	if log == nil {
		log = logger.Nop()
	}
	return &Driver{
		name:   name,
		client: newAPIClient(name, baseURL, headers, http, log),
		mapper: newMapper(name, log),
	}
}

// Name implements provider.Driver.
func (d *Driver) Name() string { return d.name }

// PerformSearch implements provider.Driver.
func (d *Driver) PerformSearch(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Flight, error) {
	session, err := d.client.createSession(ctx, criteria)
	if err != nil {
		return nil, err
	}

	poll, err := d.client.pollResults(ctx, session.SessionToken)
	if err != nil {
		return nil, err
	}

	flights := d.mapper.mapResponse(poll, criteria.CabinClass())
	return applyStopFilter(flights, criteria), nil
}

// applyStopFilter drops flights over the requested stop limit and returns
// the remainder sorted by ascending price.
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
