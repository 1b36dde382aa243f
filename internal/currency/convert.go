package currency

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"kasa/internal/core"
)

// Converter converts amounts between currencies through a USD-pivoted rate
// table. Every rate is units of the target currency per one USD, as published
// by the rate feed. The zero table converts everything by identity, so the
// application stays usable before the first refresh and across feed outages.
//
// Safe for concurrent use: the refresher swaps the table in while request
// handlers read it.
type Converter struct {
	mu        sync.RWMutex
	rates     map[string]decimal.Decimal
	fetchedAt time.Time
}

func NewConverter() *Converter {
	return &Converter{}
}

// SetRates replaces the rate table. Rates at or below zero are dropped rather
// than poisoning later divisions.
func (c *Converter) SetRates(rates map[string]float64, fetchedAt time.Time) {
	table := make(map[string]decimal.Decimal, len(rates))
	for code, r := range rates {
		if r <= 0 {
			continue
		}
		table[code] = decimal.NewFromFloat(r)
	}
	c.mu.Lock()
	c.rates = table
	c.fetchedAt = fetchedAt
	c.mu.Unlock()
}

// FetchedAt reports when the current table was obtained; zero before the first
// successful refresh.
func (c *Converter) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt
}

// Convert expresses amount, denominated in from, in the to currency. Same
// currency is always identity, exactly. When either rate is missing the
// amount passes through unchanged; a stale or partial table must never zero
// out or inflate user data.
func (c *Converter) Convert(amount decimal.Decimal, from, to string) decimal.Decimal {
	if from == to {
		return amount
	}
	c.mu.RLock()
	fromRate, fromOK := c.rates[from]
	toRate, toOK := c.rates[to]
	c.mu.RUnlock()
	if !fromOK || !toOK {
		return amount
	}
	// Pivot through USD: amount / rate[from] * rate[to].
	return amount.DivRound(fromRate, 10).Mul(toRate).Round(6)
}

// Func binds a target currency, yielding the single-argument converter the
// aggregation layer consumes.
func (c *Converter) Func(to string) core.ConvertFunc {
	return func(amount decimal.Decimal, from string) decimal.Decimal {
		return c.Convert(amount, from, to)
	}
}
