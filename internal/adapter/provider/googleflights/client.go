package googleflights

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/infrastructure/httpclient"
	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
)

// apiClient calls SearchAPI's google_flights engine, a single GET that
// returns best_flights and other_flights arrays.
type apiClient struct {
	apiKey string
	http   *httpclient.Client
	log    *logger.Logger
}

func newAPIClient(apiKey string, http *httpclient.Client, log *logger.Logger) *apiClient {
	return &apiClient{
		apiKey: apiKey,
		http:   http,
		log:    log.WithContext("component", "searchapi_client"),
	}
}

func (c *apiClient) searchFlights(ctx context.Context, criteria domain.SearchCriteria) (*searchResponse, error) {
	c.log.Info().
		Str("origin", criteria.Origin().Code()).
		Str("destination", criteria.Destination().Code()).
		Msg("searchapi_request")

	resp, err := c.http.Get(ctx, searchAPIBaseURL, c.buildParams(criteria), nil)
	if err != nil {
		return nil, err
	}

	var data searchResponse
	if err := resp.JSON(&data); err != nil {
		return nil, err
	}
	if data.Error != "" {
		return nil, fmt.Errorf("searchapi error: %s", data.Error)
	}

	c.log.Info().
		Int("best_flights_count", len(data.BestFlights)).
		Int("other_flights_count", len(data.OtherFlights)).
		Msg("searchapi_success")
	return &data, nil
}

func (c *apiClient) buildParams(criteria domain.SearchCriteria) url.Values {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("engine", searchAPIEngine)
	params.Set("departure_id", criteria.Origin().Code())
	params.Set("arrival_id", criteria.Destination().Code())
	params.Set("outbound_date", criteria.DepartureDate().Format("2006-01-02"))
	params.Set("adults", strconv.Itoa(criteria.Passengers().Adults()))
	params.Set("children", strconv.Itoa(criteria.Passengers().Children()))
	params.Set("infants_in_seat", strconv.Itoa(criteria.Passengers().Infants()))
	params.Set("cabin_class", string(criteria.CabinClass()))
	params.Set("currency", "USD")
	params.Set("locale", "en_US")

	if ret, ok := criteria.ReturnDate(); ok {
		params.Set("flight_type", "round_trip")
		params.Set("return_date", ret.Format("2006-01-02"))
	} else {
		params.Set("flight_type", "one_way")
	}
	return params
}
