package domain

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// currencyRegex matches ISO 4217 currency codes (3 uppercase letters).
var currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// Price is an immutable monetary amount with a currency.
// Amounts are non-negative fixed-point values with at most 2 fractional
// digits. Comparison and arithmetic are only defined between prices of the
// same currency.
type Price struct {
	amount   decimal.Decimal
	currency string
}

// NewPrice creates a Price from a decimal amount and an ISO 4217 currency
// code. The amount must be non-negative with at most 2 decimal places.
func NewPrice(amount decimal.Decimal, currency string) (Price, error) {
	if amount.IsNegative() {
		return Price{}, NewValidationError("amount", amount.String(), "price amount cannot be negative")
	}
	if amount.Exponent() < -2 && !amount.Equal(amount.Round(2)) {
		return Price{}, NewValidationError("amount", amount.String(), "price amount cannot have more than 2 decimal places")
	}
	if !currencyRegex.MatchString(currency) {
		return Price{}, NewValidationError("currency", currency, fmt.Sprintf("currency must be a 3-letter uppercase ISO 4217 code: %q", currency))
	}

	return Price{amount: amount, currency: currency}, nil
}

// NewPriceFromString parses a decimal string amount (e.g. "299.00").
func NewPriceFromString(amount, currency string) (Price, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Price{}, NewValidationError("amount", amount, fmt.Sprintf("invalid price amount: %q", amount))
	}
	return NewPrice(d, currency)
}

// MustPrice creates a Price or panics. Intended for tests.
func MustPrice(amount, currency string) Price {
	p, err := NewPriceFromString(amount, currency)
	if err != nil {
		panic(err)
	}
	return p
}

// Amount returns the decimal amount in major units.
func (p Price) Amount() decimal.Decimal { return p.amount }

// Currency returns the ISO 4217 currency code.
func (p Price) Currency() string { return p.currency }

// Compare returns -1, 0, or +1 ordering p against other.
// Comparing prices of different currencies is an error.
func (p Price) Compare(other Price) (int, error) {
	if p.currency != other.currency {
		return 0, NewValidationError("currency", other.currency,
			fmt.Sprintf("cannot compare prices in different currencies: %s vs %s", p.currency, other.currency))
	}
	return p.amount.Cmp(other.amount), nil
}

// Add returns the sum of two same-currency prices.
func (p Price) Add(other Price) (Price, error) {
	if p.currency != other.currency {
		return Price{}, NewValidationError("currency", other.currency,
			fmt.Sprintf("cannot add prices in different currencies: %s vs %s", p.currency, other.currency))
	}
	return Price{amount: p.amount.Add(other.amount), currency: p.currency}, nil
}

// Equal reports whether amount and currency both match.
func (p Price) Equal(other Price) bool {
	return p.currency == other.currency && p.amount.Equal(other.amount)
}

// IsZero reports whether the price is the zero value.
func (p Price) IsZero() bool { return p.currency == "" }

// String formats as "USD 299.00".
func (p Price) String() string {
	return fmt.Sprintf("%s %s", p.currency, p.amount.StringFixed(2))
}
