package core

import (
	"testing"
	"time"
)

func sortedIDs(ts []Transaction) []string {
	ids := make([]string, len(ts))
	for i, t := range ts {
		ids[i] = t.ID
	}
	return ids
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sortFixture() []Transaction {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	// Stored order is newest-first.
	return []Transaction{
		{ID: "c", Amount: Money{Cents: 5000}, Type: Expense, Date: base.Add(48 * time.Hour)},
		{ID: "b", Amount: Money{Cents: 100}, Type: Income, Date: base.Add(24 * time.Hour)},
		{ID: "a", Amount: Money{Cents: 2500}, Type: Expense, Date: base},
	}
}

func TestAmountClickCycle(t *testing.T) {
	txs := sortFixture()
	var state SortState

	state = state.Click(SortByAmount)
	if state.Direction != Ascending || state.AmountClicks != 1 {
		t.Fatalf("first click: %+v", state)
	}
	if got := sortedIDs(state.SortTransactions(txs)); !equalIDs(got, []string{"b", "a", "c"}) {
		t.Fatalf("ascending order = %v", got)
	}

	state = state.Click(SortByAmount)
	if state.Direction != Descending || state.AmountClicks != 2 {
		t.Fatalf("second click: %+v", state)
	}
	if got := sortedIDs(state.SortTransactions(txs)); !equalIDs(got, []string{"c", "a", "b"}) {
		t.Fatalf("descending order = %v", got)
	}

	// Third click resets to the unsorted, date-descending table.
	state = state.Click(SortByAmount)
	if state != (SortState{}) {
		t.Fatalf("third click: %+v", state)
	}
	if got := sortedIDs(state.SortTransactions(txs)); !equalIDs(got, []string{"c", "b", "a"}) {
		t.Fatalf("reset order = %v", got)
	}
}

func TestSortToggleAndSwitch(t *testing.T) {
	var state SortState

	state = state.Click(SortByName)
	if state.Field != SortByName || state.Direction != Ascending {
		t.Fatalf("new column: %+v", state)
	}
	state = state.Click(SortByName)
	if state.Direction != Descending {
		t.Fatalf("toggle: %+v", state)
	}
	state = state.Click(SortByName)
	if state.Direction != Ascending {
		t.Fatalf("toggle back: %+v", state)
	}

	// Switching columns resets to ascending.
	state = state.Click(SortByBudget)
	if state.Field != SortByBudget || state.Direction != Ascending {
		t.Fatalf("switch column: %+v", state)
	}
}

func TestSortTransactionsDoesNotMutate(t *testing.T) {
	txs := sortFixture()
	before := sortedIDs(txs)
	SortState{Field: SortByAmount, Direction: Ascending}.SortTransactions(txs)
	if got := sortedIDs(txs); !equalIDs(got, before) {
		t.Fatalf("input mutated: %v", got)
	}
}

func TestSortCategories(t *testing.T) {
	b1 := Money{Cents: 40000}
	b2 := Money{Cents: 7500}
	rows := []CategoryWithTotals{
		{Category: Category{ID: "1", Name: "Shopping", Budget: &b1}},
		{Category: Category{ID: "2", Name: "Education", Budget: &b2}},
		{Category: Category{ID: "3", Name: "Other"}},
	}

	byName := SortState{Field: SortByName, Direction: Ascending}.SortCategories(rows, nil)
	if byName[0].Name != "Education" || byName[2].Name != "Shopping" {
		t.Fatalf("name sort: %s, %s, %s", byName[0].Name, byName[1].Name, byName[2].Name)
	}

	// Budgetless categories sort before any budgeted one.
	byBudget := SortState{Field: SortByBudget, Direction: Ascending}.SortCategories(rows, nil)
	if byBudget[0].ID != "3" || byBudget[1].ID != "2" || byBudget[2].ID != "1" {
		t.Fatalf("budget sort: %s, %s, %s", byBudget[0].ID, byBudget[1].ID, byBudget[2].ID)
	}

	// Unsorted state preserves stored order.
	unsorted := SortState{}.SortCategories(rows, nil)
	if unsorted[0].ID != "1" || unsorted[2].ID != "3" {
		t.Fatalf("unsorted: %s, %s, %s", unsorted[0].ID, unsorted[1].ID, unsorted[2].ID)
	}
}

func TestSortCategoriesCustomComparator(t *testing.T) {
	rows := []CategoryWithTotals{
		{Category: Category{ID: "1", Name: "b"}},
		{Category: Category{ID: "2", Name: "a"}},
	}
	reversed := func(a, b string) int {
		switch {
		case a < b:
			return 1
		case a > b:
			return -1
		default:
			return 0
		}
	}
	got := SortState{Field: SortByName, Direction: Ascending}.SortCategories(rows, reversed)
	if got[0].Name != "b" {
		t.Fatalf("comparator not honored: %s first", got[0].Name)
	}
}
