package currency

import "testing"

func TestConvertToNGN(t *testing.T) {
	rates := DefaultRates()

	tests := []struct {
		name     string
		amount   float64
		currency Currency
		want     float64
	}{
		{"ngn identity", 2500, NGN, 2500},
		{"usd", 100, USD, 150000},
		{"gbp", 10, GBP, 19000},
		{"eur", 2, EUR, 3300},
		{"cad", 5, CAD, 5500},
		{"zero amount", 0, USD, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertToNGN(tt.amount, tt.currency, rates)
			if got != tt.want {
				t.Fatalf("ConvertToNGN(%v, %s) = %v, want %v", tt.amount, tt.currency, got, tt.want)
			}
		})
	}
}

func TestConvertToNGNUnknownCurrencyPassesThrough(t *testing.T) {
	rates := DefaultRates()
	if got := ConvertToNGN(42, Currency("JPY"), rates); got != 42 {
		t.Fatalf("unknown currency should pass through, got %v", got)
	}
	// idempotent no-op
	if got := ConvertToNGN(ConvertToNGN(42, Currency("JPY"), rates), Currency("JPY"), rates); got != 42 {
		t.Fatalf("double conversion of unknown currency should still be 42, got %v", got)
	}
}

func TestConvertToNGNEmptyTable(t *testing.T) {
	if got := ConvertToNGN(100, USD, RateTable{}); got != 100 {
		t.Fatalf("missing table entry should pass through, got %v", got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		code string
		want Currency
	}{
		{"NGN", NGN},
		{"ngn", NGN},
		{"usd", USD},
		{"Gbp", GBP},
		{"EUR", EUR},
		{"cad", CAD},
		{"JPY", USD},
		{"", USD},
	}
	for _, tt := range tests {
		if got := Parse(tt.code); got != tt.want {
			t.Errorf("Parse(%q) = %s, want %s", tt.code, got, tt.want)
		}
	}
}
