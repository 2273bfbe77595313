package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/flight-search/flight-finder/internal/domain"
)

// AllProviders is the key namespace for aggregated (cross-provider) results.
const AllProviders = "all"

// Key derives a deterministic cache key from search criteria, scoped to a
// provider name (or AllProviders). Every parameter that affects results
// feeds a canonical JSON document; the key is the first 16 hex characters of
// its SHA-256. encoding/json sorts map keys, which keeps the document stable
// across runs.
func Key(criteria domain.SearchCriteria, provider string) string {
	if provider == "" {
		provider = AllProviders
	}

	var returnDate any
	if rd, ok := criteria.ReturnDate(); ok {
		returnDate = rd.Format("2006-01-02")
	}
	var maxStops any
	if stops, ok := criteria.EffectiveMaxStops(); ok {
		maxStops = stops
	}
	var flexDays any
	if criteria.FlexibleDates() {
		flexDays = criteria.DateFlexibilityDays()
	}

	doc := map[string]any{
		"provider":       provider,
		"origin":         criteria.Origin().Code(),
		"destination":    criteria.Destination().Code(),
		"departure_date": criteria.DepartureDate().Format("2006-01-02"),
		"return_date":    returnDate,
		"passengers": map[string]any{
			"adults":   criteria.Passengers().Adults(),
			"children": criteria.Passengers().Children(),
			"infants":  criteria.Passengers().Infants(),
		},
		"cabin_class":           criteria.CabinClass().String(),
		"max_stops":             maxStops,
		"flexible_dates":        criteria.FlexibleDates(),
		"date_flexibility_days": flexDays,
	}

	// Marshal of a map[string]any cannot fail for these value types.
	encoded, _ := json.Marshal(doc)
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:])[:16]
}
