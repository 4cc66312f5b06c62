package currency

import "strings"

type Currency string

const (
	NGN Currency = "NGN"
	USD Currency = "USD"
	GBP Currency = "GBP"
	EUR Currency = "EUR"
	CAD Currency = "CAD"
)

// RateTable maps a currency to its multiplier into NGN. It is always passed
// in explicitly so callers can swap tables per request or per test.
type RateTable map[Currency]float64

// DefaultRates mirrors the standing back-office table. NGN is 1 by
// definition; the table is static, there is no live refresh.
func DefaultRates() RateTable {
	return RateTable{
		NGN: 1,
		USD: 1500,
		GBP: 1900,
		EUR: 1650,
		CAD: 1100,
	}
}

// ConvertToNGN converts amount into NGN using the given table. A currency
// with no table entry passes through unchanged rather than failing; unknown
// currencies are tolerated, not rejected.
func ConvertToNGN(amount float64, c Currency, rates RateTable) float64 {
	if rate, ok := rates[c]; ok {
		return amount * rate
	}
	return amount
}

// Parse maps a vendor currency code onto the internal enum. Matching is
// case-insensitive and anything unrecognized falls back to USD.
func Parse(code string) Currency {
	switch strings.ToUpper(code) {
	case "NGN":
		return NGN
	case "USD":
		return USD
	case "GBP":
		return GBP
	case "EUR":
		return EUR
	case "CAD":
		return CAD
	default:
		return USD
	}
}
