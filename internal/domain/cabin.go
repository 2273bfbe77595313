package domain

import "strings"

// CabinClass is the service tier requested for a search or offered on a flight.
type CabinClass string

// Valid cabin classes.
const (
	CabinEconomy        CabinClass = "economy"
	CabinPremiumEconomy CabinClass = "premium_economy"
	CabinBusiness       CabinClass = "business"
	CabinFirst          CabinClass = "first"
)

// IsValid checks whether the cabin class is one of the defined tiers.
func (c CabinClass) IsValid() bool {
	switch c {
	case CabinEconomy, CabinPremiumEconomy, CabinBusiness, CabinFirst:
		return true
	default:
		return false
	}
}

// IsPremium is true for every tier above economy.
func (c CabinClass) IsPremium() bool {
	return c.IsValid() && c != CabinEconomy
}

// String returns the canonical lowercase value.
func (c CabinClass) String() string { return string(c) }

// DisplayName formats as "Premium Economy".
func (c CabinClass) DisplayName() string {
	parts := strings.Split(string(c), "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

// ParseCabinClass maps a case-insensitive string, including alias forms like
// "premium economy" and "premiumeconomy", to a CabinClass. Unknown values
// default to economy.
func ParseCabinClass(s string) CabinClass {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "economy", "":
		return CabinEconomy
	case "premium_economy", "premium economy", "premiumeconomy":
		return CabinPremiumEconomy
	case "business":
		return CabinBusiness
	case "first":
		return CabinFirst
	default:
		return CabinEconomy
	}
}
