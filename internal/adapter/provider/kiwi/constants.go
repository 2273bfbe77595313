// Package kiwi implements the Kiwi back-end via the RapidAPI flights
// scraper service.
package kiwi

const (
	apiBaseURL   = "https://flights-scraper-real-time.p.rapidapi.com"
	searchOneway = "/flights/search-oneway"
	searchReturn = "/flights/search-return"
	rapidAPIHost = "flights-scraper-real-time.p.rapidapi.com"

	defaultLimit    = 50
	defaultCurrency = "USD"
	defaultLocale   = "en-US"
	defaultMarket   = "US"

	sortPrice = "PRICE"

	// The API rejects stops values above 2.
	maxStopsParam = 2
)
