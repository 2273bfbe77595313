package kiwi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/infrastructure/httpclient"
	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
)

// apiClient calls the RapidAPI flights scraper, one GET per search with
// separate endpoints for one-way and return trips.
type apiClient struct {
	apiKey string
	http   *httpclient.Client
	log    *logger.Logger
}

func newAPIClient(apiKey string, http *httpclient.Client, log *logger.Logger) *apiClient {
	return &apiClient{
		apiKey: apiKey,
		http:   http,
		log:    log.WithContext("component", "kiwi_api_client"),
	}
}

func (c *apiClient) searchFlights(ctx context.Context, criteria domain.SearchCriteria) (*searchResponse, error) {
	path := searchOneway
	event := "searching_oneway_flights"
	if criteria.IsRoundTrip() {
		path = searchReturn
		event = "searching_return_flights"
	}

	c.log.Info().
		Str("origin", criteria.Origin().Code()).
		Str("destination", criteria.Destination().Code()).
		Str("departure_date", criteria.DepartureDate().Format("2006-01-02")).
		Msg(event)

	resp, err := c.http.Get(ctx, apiBaseURL+path, buildParams(criteria), c.headers())
	if err != nil {
		return nil, err
	}

	var data searchResponse
	if err := resp.JSON(&data); err != nil {
		return nil, err
	}
	if !data.Status {
		msg := data.Message
		if msg == "" {
			msg = "unknown error"
		}
		return nil, fmt.Errorf("kiwi api error: %s", msg)
	}
	return &data, nil
}

func (c *apiClient) headers() map[string]string {
	return map[string]string{
		"X-RapidAPI-Key":  c.apiKey,
		"X-RapidAPI-Host": rapidAPIHost,
	}
}

func buildParams(criteria domain.SearchCriteria) url.Values {
	params := url.Values{}
	params.Set("originSkyId", criteria.Origin().Code())
	params.Set("destinationSkyId", criteria.Destination().Code())
	params.Set("departureDate", criteria.DepartureDate().Format("2006-01-02"))
	params.Set("adults", strconv.Itoa(criteria.Passengers().Adults()))
	params.Set("currency", defaultCurrency)
	params.Set("locale", defaultLocale)
	params.Set("market", defaultMarket)
	params.Set("limit", strconv.Itoa(defaultLimit))
	params.Set("sort", sortPrice)

	if children := criteria.Passengers().Children(); children > 0 {
		params.Set("children", strconv.Itoa(children))
	}
	if infants := criteria.Passengers().Infants(); infants > 0 {
		params.Set("infants", strconv.Itoa(infants))
	}

	if cabin := mapCabinClass(criteria.CabinClass()); cabin != "ECONOMY" {
		params.Set("cabinClass", cabin)
	}

	if maxStops, ok := criteria.EffectiveMaxStops(); ok {
		if maxStops > maxStopsParam {
			maxStops = maxStopsParam
		}
		params.Set("stops", strconv.Itoa(maxStops))
	}

	if ret, ok := criteria.ReturnDate(); ok {
		params.Set("returnDate", ret.Format("2006-01-02"))
	}
	return params
}

func mapCabinClass(cabin domain.CabinClass) string {
	switch cabin {
	case domain.CabinPremiumEconomy:
		return "PREMIUM_ECONOMY"
	case domain.CabinBusiness:
		return "BUSINESS"
	case domain.CabinFirst:
		return "FIRST_CLASS"
	default:
		return "ECONOMY"
	}
}
