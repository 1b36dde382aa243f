package core

import (
	"sort"
	"strings"
)

const (
	SortByDate    = "date"
	SortByAmount  = "amount"
	SortByName    = "name"
	SortByBudget  = "budget"
	SortByIncome  = "income"
	SortByExpense = "expense"
	SortByBalance = "balance"
)

type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

func (d SortDirection) multiplier() int {
	if d == Descending {
		return -1
	}
	return 1
}

// SortState tracks the sort column and direction of a table. The zero value
// means "unsorted": rows keep their stored order, which for transactions is
// newest-first.
//
// Most columns toggle ascending/descending on repeated clicks and start
// ascending when first selected. The transaction amount column instead cycles
// ascending, descending, then back to the unsorted (date-descending) state on
// the third click; recency is the table's primary sort, so amount ordering is
// deliberately transient. AmountClicks carries that cycle position and is
// exported so the HTTP layer can round-trip the state through query
// parameters.
type SortState struct {
	Field        string
	Direction    SortDirection
	AmountClicks int
}

// Click returns the state after a click on the given column header.
func (s SortState) Click(field string) SortState {
	if field == SortByAmount {
		switch s.AmountClicks {
		case 0:
			return SortState{Field: SortByAmount, Direction: Ascending, AmountClicks: 1}
		case 1:
			return SortState{Field: SortByAmount, Direction: Descending, AmountClicks: 2}
		default:
			return SortState{} // back to date-descending
		}
	}
	if s.Field == field {
		dir := Ascending
		if s.Direction == Ascending {
			dir = Descending
		}
		return SortState{Field: field, Direction: dir}
	}
	return SortState{Field: field, Direction: Ascending}
}

// SortTransactions returns a sorted copy. The unsorted state sorts by date
// descending, matching the stored newest-first order.
func (s SortState) SortTransactions(ts []Transaction) []Transaction {
	out := make([]Transaction, len(ts))
	copy(out, ts)
	field, mult := s.Field, s.Direction.multiplier()
	if field == "" {
		field, mult = SortByDate, -1
	}
	sort.SliceStable(out, func(i, j int) bool {
		var cmp int
		switch field {
		case SortByAmount:
			cmp = compareInt64(absCents(out[i].Amount), absCents(out[j].Amount))
		default:
			cmp = out[i].Date.Compare(out[j].Date)
		}
		return mult*cmp < 0
	})
	return out
}

// SortCategories returns a sorted copy of category totals. The compare
// function orders names (locale-aware when supplied by the i18n layer); nil
// falls back to byte order. The unsorted state keeps the stored order.
func (s SortState) SortCategories(rows []CategoryWithTotals, compare func(a, b string) int) []CategoryWithTotals {
	out := make([]CategoryWithTotals, len(rows))
	copy(out, rows)
	if s.Field == "" {
		return out
	}
	if compare == nil {
		compare = strings.Compare
	}
	mult := s.Direction.multiplier()
	sort.SliceStable(out, func(i, j int) bool {
		var cmp int
		switch s.Field {
		case SortByName:
			cmp = compare(out[i].Name, out[j].Name)
		case SortByBudget:
			cmp = compareInt64(budgetCents(out[i].Category), budgetCents(out[j].Category))
		case SortByIncome:
			cmp = out[i].TotalIncome.Cmp(out[j].TotalIncome)
		case SortByExpense:
			cmp = out[i].TotalExpense.Cmp(out[j].TotalExpense)
		case SortByBalance:
			cmp = out[i].Balance().Cmp(out[j].Balance())
		}
		return mult*cmp < 0
	})
	return out
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func absCents(m Money) int64 {
	if m.Cents < 0 {
		return -m.Cents
	}
	return m.Cents
}

// budgetCents sorts categories without a budget before any budgeted one.
func budgetCents(c Category) int64 {
	if c.Budget == nil {
		return -1
	}
	return c.Budget.Cents
}
