// Package googleflights implements the Google Flights back-end via the
// SearchAPI aggregation service.
package googleflights

const (
	searchAPIBaseURL = "https://www.searchapi.io/api/v1/search"
	searchAPIEngine  = "google_flights"

	bookingURLBase = "https://www.google.com/travel/flights"

	// otherFlightsLimit caps how many entries beyond best_flights are mapped.
	otherFlightsLimit = 10
)
