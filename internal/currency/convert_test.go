package currency

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testRates() map[string]float64 {
	return map[string]float64{
		"USD": 1,
		"EUR": 0.9,
		"TRY": 34.5,
		"JPY": 150,
	}
}

func TestConvertSameCurrencyIsExactIdentity(t *testing.T) {
	c := NewConverter()
	c.SetRates(testRates(), time.Now())

	amount := decimal.RequireFromString("123.45")
	if got := c.Convert(amount, "EUR", "EUR"); !got.Equal(amount) {
		t.Fatalf("EUR->EUR = %s, want %s", got, amount)
	}
}

func TestConvertEmptyTableFallsBackToIdentity(t *testing.T) {
	c := NewConverter()
	amount := decimal.RequireFromString("50")
	if got := c.Convert(amount, "USD", "TRY"); !got.Equal(amount) {
		t.Fatalf("without rates: %s, want identity", got)
	}
}

func TestConvertMissingRateFallsBackToIdentity(t *testing.T) {
	c := NewConverter()
	c.SetRates(map[string]float64{"USD": 1}, time.Now())
	amount := decimal.RequireFromString("50")
	if got := c.Convert(amount, "USD", "CHF"); !got.Equal(amount) {
		t.Fatalf("missing target rate: %s, want identity", got)
	}
	if got := c.Convert(amount, "CHF", "USD"); !got.Equal(amount) {
		t.Fatalf("missing source rate: %s, want identity", got)
	}
}

func TestConvertPivotsThroughUSD(t *testing.T) {
	c := NewConverter()
	c.SetRates(testRates(), time.Now())

	// 100 USD at 34.5 TRY per USD.
	got := c.Convert(decimal.NewFromInt(100), "USD", "TRY")
	if want := decimal.NewFromInt(3450); !got.Equal(want) {
		t.Fatalf("USD->TRY = %s, want %s", got, want)
	}

	// 90 EUR -> 100 USD -> 15000 JPY.
	got = c.Convert(decimal.NewFromInt(90), "EUR", "JPY")
	if want := decimal.NewFromInt(15000); !got.Equal(want) {
		t.Fatalf("EUR->JPY = %s, want %s", got, want)
	}
}

func TestConvertRoundTripStaysClose(t *testing.T) {
	c := NewConverter()
	c.SetRates(testRates(), time.Now())

	amount := decimal.RequireFromString("123.45")
	back := c.Convert(c.Convert(amount, "USD", "TRY"), "TRY", "USD")
	diff := back.Sub(amount).Abs()
	if diff.GreaterThan(decimal.RequireFromString("0.01")) {
		t.Fatalf("round trip drifted by %s", diff)
	}
}

func TestSetRatesDropsNonPositive(t *testing.T) {
	c := NewConverter()
	c.SetRates(map[string]float64{"USD": 1, "EUR": 0, "TRY": -3}, time.Now())
	amount := decimal.NewFromInt(10)
	if got := c.Convert(amount, "USD", "EUR"); !got.Equal(amount) {
		t.Fatalf("zero rate must be dropped, got %s", got)
	}
	if got := c.Convert(amount, "TRY", "USD"); !got.Equal(amount) {
		t.Fatalf("negative rate must be dropped, got %s", got)
	}
}

func TestByCode(t *testing.T) {
	if _, ok := ByCode("EUR"); !ok {
		t.Fatal("EUR must be supported")
	}
	if _, ok := ByCode("XXX"); ok {
		t.Fatal("XXX must not be supported")
	}
	if got := Symbol("TRY"); got != "₺" {
		t.Fatalf("Symbol(TRY) = %q", got)
	}
	if got := Symbol("XXX"); got != "XXX" {
		t.Fatalf("Symbol(XXX) = %q", got)
	}
}
