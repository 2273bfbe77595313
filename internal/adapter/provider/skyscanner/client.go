package skyscanner

import (
	"context"
	"fmt"
	"time"

	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/infrastructure/httpclient"
	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
)

// apiClient drives the two-phase live search protocol: create a search
// session, then poll its token until results are complete. The same protocol
// is served from two endpoints (the partner API and its RapidAPI mirror), so
// the base URL and auth headers are injected.
type apiClient struct {
	name    string
	baseURL string
	headers map[string]string
	http    *httpclient.Client
	log     *logger.Logger
}

func newAPIClient(name, baseURL string, headers map[string]string, http *httpclient.Client, log *logger.Logger) *apiClient {
	return &apiClient{
		name:    name,
		baseURL: baseURL,
		headers: headers,
		http:    http,
		log:     log.WithContext("component", name+"_api_client"),
	}
}

type sessionDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

type placeRef struct {
	IATA string `json:"iata"`
}

type queryLeg struct {
	OriginPlaceID      placeRef    `json:"originPlaceId"`
	DestinationPlaceID placeRef    `json:"destinationPlaceId"`
	Date               sessionDate `json:"date"`
}

type sessionQuery struct {
	Market       string     `json:"market"`
	Locale       string     `json:"locale"`
	Currency     string     `json:"currency"`
	QueryLegs    []queryLeg `json:"queryLegs"`
	Adults       int        `json:"adults"`
	ChildrenAges []int      `json:"childrenAges"`
	CabinClass   string     `json:"cabinClass"`
}

type sessionRequest struct {
	Query sessionQuery `json:"query"`
}

type sessionResponse struct {
	SessionToken string `json:"sessionToken"`
	Status       string `json:"status"`
}

// createSession starts a live search and returns the session token to poll.
func (c *apiClient) createSession(ctx context.Context, criteria domain.SearchCriteria) (*sessionResponse, error) {
	c.log.Info().
		Str("origin", criteria.Origin().Code()).
		Str("destination", criteria.Destination().Code()).
		Msg("creating_session")

	resp, err := c.http.PostJSON(ctx, c.baseURL+sessionCreatePath, buildSessionRequest(criteria), c.headers)
	if err != nil {
		return nil, err
	}

	var session sessionResponse
	if err := resp.JSON(&session); err != nil {
		return nil, err
	}
	if session.SessionToken == "" {
		return nil, fmt.Errorf("create session: response carried no session token")
	}
	return &session, nil
}

// pollResults polls the session until the backend reports completion, waiting
// pollInterval between attempts. A failed or unknown status aborts the search.
func (c *apiClient) pollResults(ctx context.Context, sessionToken string) (*pollResponse, error) {
	url := c.baseURL + pollPathPrefix + sessionToken

	for attempt := 1; attempt <= maxPollAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(pollInterval):
			}
		}

		c.log.Debug().
			Int("attempt", attempt).
			Int("max_attempts", maxPollAttempts).
			Msg("polling_results")

		resp, err := c.http.Get(ctx, url, nil, c.headers)
		if err != nil {
			return nil, err
		}

		var poll pollResponse
		if err := resp.JSON(&poll); err != nil {
			return nil, err
		}

		switch poll.Status {
		case statusComplete:
			c.log.Info().Int("attempt", attempt).Msg("polling_complete")
			return &poll, nil
		case statusInProgress, "":
			continue
		default:
			return nil, fmt.Errorf("poll results: unexpected status %q", poll.Status)
		}
	}

	return nil, domain.NewTimeoutError(c.name,
		time.Duration(maxPollAttempts)*pollInterval,
		fmt.Errorf("results not ready after %d poll attempts", maxPollAttempts))
}

func buildSessionRequest(criteria domain.SearchCriteria) sessionRequest {
	dep := criteria.DepartureDate()
	legs := []queryLeg{{
		OriginPlaceID:      placeRef{IATA: criteria.Origin().Code()},
		DestinationPlaceID: placeRef{IATA: criteria.Destination().Code()},
		Date:               sessionDate{Year: dep.Year(), Month: int(dep.Month()), Day: dep.Day()},
	}}

	if ret, ok := criteria.ReturnDate(); ok {
		legs = append(legs, queryLeg{
			OriginPlaceID:      placeRef{IATA: criteria.Destination().Code()},
			DestinationPlaceID: placeRef{IATA: criteria.Origin().Code()},
			Date:               sessionDate{Year: ret.Year(), Month: int(ret.Month()), Day: ret.Day()},
		})
	}

	childrenAges := make([]int, criteria.Passengers().Children())
	for i := range childrenAges {
		childrenAges[i] = assumedChildAge
	}

	return sessionRequest{
		Query: sessionQuery{
			Market:       "US",
			Locale:       "en-US",
			Currency:     "USD",
			QueryLegs:    legs,
			Adults:       criteria.Passengers().Adults(),
			ChildrenAges: childrenAges,
			CabinClass:   mapCabinClass(criteria.CabinClass()),
		},
	}
}

func mapCabinClass(cabin domain.CabinClass) string {
	switch cabin {
	case domain.CabinPremiumEconomy:
		return "CABIN_CLASS_PREMIUM_ECONOMY"
	case domain.CabinBusiness:
		return "CABIN_CLASS_BUSINESS"
	case domain.CabinFirst:
		return "CABIN_CLASS_FIRST"
	default:
		return "CABIN_CLASS_ECONOMY"
	}
}
