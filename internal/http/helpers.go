package http

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"kasa/internal/currency"
)

// nowFunc is swapped in tests that need a fixed clock.
var nowFunc = time.Now

// formatAmount renders a decimal amount with its currency symbol, e.g. "$12.34"
// or "₺1250.00".
func formatAmount(d decimal.Decimal, code string) string {
	if d.IsNegative() {
		return "-" + currency.Symbol(code) + d.Neg().StringFixed(2)
	}
	return currency.Symbol(code) + d.StringFixed(2)
}

// parseDate parses a date string in YYYY-MM-DD form.
func parseDate(dateStr string) (time.Time, error) {
	return time.Parse("2006-01-02", dateStr)
}

// sanitizeInput trims whitespace and strips control characters except tab,
// newline and carriage return.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
