package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func identity(amount decimal.Decimal, _ string) decimal.Decimal { return amount }

func testCategories() []Category {
	food := Money{Cents: 10000}
	return []Category{
		{ID: "1", Name: "Shopping", Icon: "🛍️"},
		{ID: "2", Name: "Food", Icon: "🍽️", Budget: &food},
	}
}

func tx(id, catID string, typ TransactionType, cents int64) Transaction {
	return Transaction{
		ID:          id,
		Description: "test transaction",
		Amount:      Money{Cents: cents},
		Type:        typ,
		CategoryID:  catID,
		Currency:    "USD",
		Date:        time.Now(),
	}
}

func TestCategoryTotalsPartition(t *testing.T) {
	cats := testCategories()
	txs := []Transaction{
		tx("a", "1", Income, 10000),
		tx("b", "1", Expense, 2500),
		tx("c", "2", Expense, 4000),
		tx("d", "2", Expense, 1999),
		tx("e", "2", Income, 50),
	}

	totals := CategoryTotals(cats, txs, identity, "USD")
	if len(totals) != 2 {
		t.Fatalf("got %d rows, want 2", len(totals))
	}
	if got := totals[0].TotalIncome.String(); got != "100" {
		t.Fatalf("shopping income = %s, want 100", got)
	}
	if got := totals[0].TotalExpense.String(); got != "25" {
		t.Fatalf("shopping expense = %s, want 25", got)
	}
	if got := totals[1].TotalExpense.String(); got != "59.99" {
		t.Fatalf("food expense = %s, want 59.99", got)
	}

	// The grand totals must equal the sum of all converted magnitudes,
	// partitioned by type.
	sum := Summarize(totals)
	var wantIncome, wantExpense decimal.Decimal
	for _, tr := range txs {
		switch tr.Type {
		case Income:
			wantIncome = wantIncome.Add(tr.Amount.Decimal())
		case Expense:
			wantExpense = wantExpense.Add(tr.Amount.Decimal())
		}
	}
	if !sum.TotalIncome.Equal(wantIncome) || !sum.TotalExpense.Equal(wantExpense) {
		t.Fatalf("summary %v/%v, want %v/%v", sum.TotalIncome, sum.TotalExpense, wantIncome, wantExpense)
	}
	if !sum.Balance().Equal(wantIncome.Sub(wantExpense)) {
		t.Fatalf("balance = %v", sum.Balance())
	}
}

func TestCategoryTotalsIgnoresOtherCategories(t *testing.T) {
	cats := testCategories()[:1]
	txs := []Transaction{
		tx("a", "1", Expense, 100),
		tx("b", "999", Expense, 5000), // orphaned, not aggregated
	}
	totals := CategoryTotals(cats, txs, identity, "USD")
	if got := totals[0].TotalExpense.String(); got != "1" {
		t.Fatalf("expense = %s, want 1", got)
	}
}

func TestBudgetWarningBoundary(t *testing.T) {
	budget := Money{Cents: 10000} // 100.00
	cats := []Category{{ID: "1", Name: "Food", Budget: &budget}}

	cases := []struct {
		expenseCents int64
		want         bool
	}{
		{7999, false}, // 79.99
		{8000, true},  // 80.00 exactly
		{10000, true},
		{12000, true},
	}
	for _, tc := range cases {
		totals := CategoryTotals(cats, []Transaction{tx("a", "1", Expense, tc.expenseCents)}, identity, "USD")
		if totals[0].BudgetWarning != tc.want {
			t.Fatalf("expense %d: warning = %v, want %v", tc.expenseCents, totals[0].BudgetWarning, tc.want)
		}
	}
}

func TestBudgetWarningNoBudget(t *testing.T) {
	cats := []Category{{ID: "1", Name: "Other"}}
	totals := CategoryTotals(cats, []Transaction{tx("a", "1", Expense, 1000000)}, identity, "USD")
	if totals[0].BudgetWarning {
		t.Fatalf("warning must stay off without a budget")
	}
}

func TestBudgetWarningUsesConvertedBudget(t *testing.T) {
	// Budget 100 USD, display currency at rate 2 per USD: threshold is 160.
	double := func(amount decimal.Decimal, from string) decimal.Decimal {
		if from == "USD" {
			return amount.Mul(decimal.NewFromInt(2))
		}
		return amount
	}
	budget := Money{Cents: 10000}
	cats := []Category{{ID: "1", Name: "Food", Budget: &budget}}

	local := Transaction{
		ID: "b", Description: "local spend", Amount: Money{Cents: 15999},
		Type: Expense, CategoryID: "1", Currency: "TRY", Date: time.Now(),
	}
	totals := CategoryTotals(cats, []Transaction{local}, double, "TRY")
	if totals[0].BudgetWarning {
		t.Fatalf("159.99 against converted budget 200*0.8=160: warning must be off")
	}
	local.Amount = Money{Cents: 16000}
	totals = CategoryTotals(cats, []Transaction{local}, double, "TRY")
	if !totals[0].BudgetWarning {
		t.Fatalf("160.00 against converted threshold 160: warning must be on")
	}
}

func TestTransactionCount(t *testing.T) {
	txs := []Transaction{
		tx("a", "1", Expense, 100),
		tx("b", "1", Income, 100),
		tx("c", "2", Expense, 100),
	}
	if got := TransactionCount(txs, "1"); got != 2 {
		t.Fatalf("count = %d, want 2", got)
	}
	if got := TransactionCount(txs, "3"); got != 0 {
		t.Fatalf("count = %d, want 0", got)
	}
}

func TestMonthlyTrend(t *testing.T) {
	jan := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	txs := []Transaction{
		{ID: "a", Description: "salary pay", Amount: Money{Cents: 300000}, Type: Income, CategoryID: "1", Currency: "USD", Date: feb},
		{ID: "b", Description: "groceries", Amount: Money{Cents: 12000}, Type: Expense, CategoryID: "2", Currency: "USD", Date: feb},
		{ID: "c", Description: "groceries", Amount: Money{Cents: 9000}, Type: Expense, CategoryID: "2", Currency: "USD", Date: jan},
	}
	rows := MonthlyTrend(txs, identity)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Month != "2025-02" || rows[1].Month != "2025-01" {
		t.Fatalf("order: %s, %s", rows[0].Month, rows[1].Month)
	}
	if got := rows[0].Expense.String(); got != "120" {
		t.Fatalf("feb expense = %s", got)
	}
	if got := rows[0].Income.String(); got != "3000" {
		t.Fatalf("feb income = %s", got)
	}
}
