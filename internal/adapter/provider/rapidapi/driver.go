// Package rapidapi wires the RapidAPI mirror of the Skyscanner live search
// API. The wire protocol and response format are identical to the partner
// endpoint, so the skyscanner driver does the work and this package supplies
// the endpoint and auth headers.
package rapidapi

import (
	"github.com/flight-search/flight-finder/internal/adapter/provider/skyscanner"
	"github.com/flight-search/flight-finder/internal/infrastructure/httpclient"
	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
)

// Name is the provider identifier.
const Name = "rapidapi_skyscanner"

const (
	apiBaseURL = "https://skyscanner-api.p.rapidapi.com/v3"
	apiHost    = "skyscanner-api.p.rapidapi.com"
)

// NewDriver creates a driver for the RapidAPI Skyscanner endpoint.
func NewDriver(apiKey string, http *httpclient.Client, log *logger.Logger) *skyscanner.Driver {
	headers := map[string]string{
		"X-RapidAPI-Key":  apiKey,
		"X-RapidAPI-Host": apiHost,
	}
	return skyscanner.NewDriverForEndpoint(Name, apiBaseURL, headers, http, log)
}
