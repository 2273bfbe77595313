package domain

import (
	"fmt"
	"strings"
)

// Passenger count limits enforced by airline booking systems.
const (
	MaxTotalPassengers = 9
	MaxAdults          = 9
	MaxChildren        = 8
	MaxInfants         = 4
)

// PassengerConfig is an immutable passenger breakdown for a search.
// Invariants: 1-9 adults, 0-8 children, 0-4 infants, total <= 9, and
// infants <= adults (lap-infant rule).
type PassengerConfig struct {
	adults   int
	children int
	infants  int
}

// NewPassengerConfig validates and creates a PassengerConfig.
func NewPassengerConfig(adults, children, infants int) (PassengerConfig, error) {
	if adults < 1 || adults > MaxAdults {
		return PassengerConfig{}, NewValidationError("adults", adults,
			fmt.Sprintf("adults must be between 1 and %d, got %d", MaxAdults, adults))
	}
	if children < 0 || children > MaxChildren {
		return PassengerConfig{}, NewValidationError("children", children,
			fmt.Sprintf("children must be between 0 and %d, got %d", MaxChildren, children))
	}
	if infants < 0 || infants > MaxInfants {
		return PassengerConfig{}, NewValidationError("infants", infants,
			fmt.Sprintf("infants must be between 0 and %d, got %d", MaxInfants, infants))
	}
	if total := adults + children + infants; total > MaxTotalPassengers {
		return PassengerConfig{}, NewValidationError("passengers", total,
			fmt.Sprintf("total passengers cannot exceed %d, got %d", MaxTotalPassengers, total))
	}
	if infants > adults {
		return PassengerConfig{}, NewValidationError("infants", infants,
			fmt.Sprintf("number of infants (%d) cannot exceed number of adults (%d)", infants, adults))
	}

	return PassengerConfig{adults: adults, children: children, infants: infants}, nil
}

// DefaultPassengers returns a single-adult configuration.
func DefaultPassengers() PassengerConfig {
	return PassengerConfig{adults: 1}
}

// Adults returns the adult count.
func (p PassengerConfig) Adults() int { return p.adults }

// Children returns the child count.
func (p PassengerConfig) Children() int { return p.children }

// Infants returns the infant count.
func (p PassengerConfig) Infants() int { return p.infants }

// Total returns the total passenger count.
func (p PassengerConfig) Total() int { return p.adults + p.children + p.infants }

// HasChildrenOrInfants reports whether any non-adult passengers are present.
func (p PassengerConfig) HasChildrenOrInfants() bool {
	return p.children > 0 || p.infants > 0
}

// String formats as "2 adults, 1 child" omitting zero counts.
func (p PassengerConfig) String() string {
	var parts []string
	if p.adults > 0 {
		parts = append(parts, plural(p.adults, "adult", "adults"))
	}
	if p.children > 0 {
		parts = append(parts, plural(p.children, "child", "children"))
	}
	if p.infants > 0 {
		parts = append(parts, plural(p.infants, "infant", "infants"))
	}
	if len(parts) == 0 {
		return "0 passengers"
	}
	return strings.Join(parts, ", ")
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, pluralForm)
}
