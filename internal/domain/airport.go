package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// Airport is an immutable airport value object identified by its IATA code.
// Equality is defined over the code only; name, city, and country are
// descriptive extras that providers may or may not supply.
type Airport struct {
	code    string
	name    string
	city    string
	country string
}

// NewAirport creates an Airport from an IATA code, normalizing to uppercase
// and trimming whitespace. The code must be exactly 3 alphabetic characters.
func NewAirport(code string) (Airport, error) {
	return NewAirportDetailed(code, "", "", "")
}

// NewAirportDetailed creates an Airport with optional descriptive fields.
func NewAirportDetailed(code, name, city, country string) (Airport, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if len(normalized) != 3 {
		return Airport{}, NewValidationError("code", code, fmt.Sprintf("IATA code must be exactly 3 characters: %q", code))
	}
	for _, r := range normalized {
		if !unicode.IsLetter(r) {
			return Airport{}, NewValidationError("code", code, fmt.Sprintf("IATA code must contain only letters: %q", code))
		}
	}

	return Airport{
		code:    normalized,
		name:    name,
		city:    city,
		country: country,
	}, nil
}

// MustAirport creates an Airport or panics. Intended for tests and constants.
func MustAirport(code string) Airport {
	a, err := NewAirport(code)
	if err != nil {
		panic(err)
	}
	return a
}

// Code returns the 3-letter uppercase IATA code.
func (a Airport) Code() string { return a.code }

// Name returns the airport name, or empty if unknown.
func (a Airport) Name() string { return a.name }

// City returns the city name, or empty if unknown.
func (a Airport) City() string { return a.city }

// Country returns the country name, or empty if unknown.
func (a Airport) Country() string { return a.country }

// Equal reports whether two airports have the same IATA code.
func (a Airport) Equal(other Airport) bool { return a.code == other.code }

// IsZero reports whether the airport is the zero value (no code).
func (a Airport) IsZero() bool { return a.code == "" }

// String formats as "JFK (New York)" when the city is known, else "JFK".
func (a Airport) String() string {
	if a.city != "" {
		return fmt.Sprintf("%s (%s)", a.code, a.city)
	}
	return a.code
}
