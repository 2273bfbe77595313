package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAirport(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		wantCode string
		wantErr  bool
	}{
		{"uppercase code", "JFK", "JFK", false},
		{"lowercase normalized", "lhr", "LHR", false},
		{"whitespace trimmed", " cdg ", "CDG", false},
		{"too short", "JF", "", true},
		{"too long", "JFKX", "", true},
		{"digits rejected", "J1K", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAirport(tt.code)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, CodeValidationError, ErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, a.Code())
		})
	}
}

func TestAirport_Equal_IgnoresDescriptiveFields(t *testing.T) {
	plain := MustAirport("JFK")
	detailed, err := NewAirportDetailed("jfk", "John F. Kennedy", "New York", "US")
	require.NoError(t, err)

	assert.True(t, plain.Equal(detailed))
	assert.Equal(t, "JFK (New York)", detailed.String())
	assert.Equal(t, "JFK", plain.String())
}

func TestNewPrice(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		wantErr  bool
	}{
		{"valid", "299.99", "USD", false},
		{"zero amount", "0", "USD", false},
		{"whole amount", "1500", "IDR", false},
		{"negative amount", "-1.00", "USD", true},
		{"too many decimals", "1.999", "USD", true},
		{"lowercase currency", "10.00", "usd", true},
		{"short currency", "10.00", "US", true},
		{"empty currency", "10.00", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPriceFromString(tt.amount, tt.currency)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, CodeValidationError, ErrorCode(err))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNewPriceFromString_InvalidAmount(t *testing.T) {
	_, err := NewPriceFromString("abc", "USD")
	require.Error(t, err)
	assert.Equal(t, CodeValidationError, ErrorCode(err))
}

func TestPrice_Compare(t *testing.T) {
	cheap := MustPrice("100.00", "USD")
	expensive := MustPrice("250.50", "USD")

	cmp, err := cheap.Compare(expensive)
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	cmp, err = expensive.Compare(cheap)
	require.NoError(t, err)
	assert.Equal(t, 1, cmp)

	cmp, err = cheap.Compare(MustPrice("100.00", "USD"))
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)

	_, err = cheap.Compare(MustPrice("100.00", "EUR"))
	require.Error(t, err, "cross-currency comparison")
}

func TestPrice_Add(t *testing.T) {
	a := MustPrice("100.50", "USD")
	b := MustPrice("49.50", "USD")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.NewFromInt(150)))
	assert.Equal(t, "USD", sum.Currency())

	_, err = a.Add(MustPrice("1.00", "EUR"))
	require.Error(t, err)
}

func TestPrice_String(t *testing.T) {
	assert.Equal(t, "USD 299.00", MustPrice("299", "USD").String())
}

func TestNewPassengerConfig(t *testing.T) {
	tests := []struct {
		name                      string
		adults, children, infants int
		wantErr                   bool
	}{
		{"single adult", 1, 0, 0, false},
		{"full family", 2, 2, 2, false},
		{"max total", 4, 4, 1, false},
		{"zero adults", 0, 0, 0, true},
		{"too many adults", 10, 0, 0, true},
		{"too many children", 1, 9, 0, true},
		{"too many infants", 5, 0, 5, true},
		{"total over limit", 5, 5, 0, true},
		{"infants exceed adults", 1, 0, 2, true},
		{"negative children", 1, -1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPassengerConfig(tt.adults, tt.children, tt.infants)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, CodeValidationError, ErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.adults+tt.children+tt.infants, p.Total())
		})
	}
}

func TestPassengerConfig_String(t *testing.T) {
	p, err := NewPassengerConfig(2, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, "2 adults, 1 child", p.String())
}

func TestParseCabinClass(t *testing.T) {
	tests := []struct {
		in   string
		want CabinClass
	}{
		{"economy", CabinEconomy},
		{"", CabinEconomy},
		{"Business", CabinBusiness},
		{"FIRST", CabinFirst},
		{"premium economy", CabinPremiumEconomy},
		{"premium_economy", CabinPremiumEconomy},
		{"unknown", CabinEconomy},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseCabinClass(tt.in), "input %q", tt.in)
	}
}

func TestNewDateRange(t *testing.T) {
	start := futureDate(10)
	end := futureDate(15)

	r, err := NewDateRange(start, end)
	require.NoError(t, err)
	assert.Equal(t, 6, r.DurationDays())
	assert.True(t, r.Contains(futureDate(12)))
	assert.False(t, r.Contains(futureDate(20)))

	_, err = NewDateRange(end, start)
	require.Error(t, err, "end before start")

	_, err = NewDateRange(futureDate(-5), end)
	require.Error(t, err, "start in the past")
}

func TestDateRange_Overlaps(t *testing.T) {
	a, err := NewDateRange(futureDate(10), futureDate(15))
	require.NoError(t, err)
	b, err := NewDateRange(futureDate(14), futureDate(20))
	require.NoError(t, err)
	c, err := NewDateRange(futureDate(16), futureDate(18))
	require.NoError(t, err)

	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
	assert.False(t, a.Overlaps(c))
}
