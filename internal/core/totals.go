package core

import "github.com/shopspring/decimal"

// ConvertFunc converts an amount from the given source currency into the
// active display currency. Implementations must fall back to identity when a
// rate is unavailable.
type ConvertFunc func(amount decimal.Decimal, from string) decimal.Decimal

// budgetWarningRatio is the fraction of a budget at which the warning flag
// turns on.
var budgetWarningRatio = decimal.New(8, -1) // 0.8

// CategoryWithTotals is a category augmented with its aggregated totals,
// expressed in the display currency.
type CategoryWithTotals struct {
	Category
	TotalIncome   decimal.Decimal
	TotalExpense  decimal.Decimal
	BudgetWarning bool
}

// Balance is income minus expense, in the display currency.
func (c CategoryWithTotals) Balance() decimal.Decimal {
	return c.TotalIncome.Sub(c.TotalExpense)
}

// Summary aggregates totals across all categories.
type Summary struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
}

func (s Summary) Balance() decimal.Decimal {
	return s.TotalIncome.Sub(s.TotalExpense)
}

// CategoryTotals computes, for each category, the income and expense totals of
// its transactions converted into the display currency, plus the budget
// warning flag. Budgets are stored in USD and converted at the same instant as
// the expense totals they are compared against; the warning turns on when the
// expense total reaches 80% of the budget.
//
// Pure function of its inputs: safe to call on every request. Callers that
// need memoization should cache the result keyed on store version and display
// currency.
func CategoryTotals(categories []Category, transactions []Transaction, convert ConvertFunc, displayCurrency string) []CategoryWithTotals {
	out := make([]CategoryWithTotals, 0, len(categories))
	for _, cat := range categories {
		row := CategoryWithTotals{Category: cat}
		for _, t := range transactions {
			if t.CategoryID != cat.ID {
				continue
			}
			// Amounts are stored as magnitudes; Abs guards against data
			// written before that rule was enforced.
			amount := convert(t.Amount.Decimal().Abs(), t.Currency)
			switch t.Type {
			case Income:
				row.TotalIncome = row.TotalIncome.Add(amount)
			case Expense:
				row.TotalExpense = row.TotalExpense.Add(amount)
			}
		}
		if cat.Budget != nil && cat.Budget.Cents > 0 {
			budget := convert(cat.Budget.Decimal(), "USD")
			row.BudgetWarning = row.TotalExpense.GreaterThanOrEqual(budget.Mul(budgetWarningRatio))
		}
		out = append(out, row)
	}
	return out
}

// Summarize folds per-category totals into overall dashboard figures.
func Summarize(totals []CategoryWithTotals) Summary {
	var s Summary
	for _, row := range totals {
		s.TotalIncome = s.TotalIncome.Add(row.TotalIncome)
		s.TotalExpense = s.TotalExpense.Add(row.TotalExpense)
	}
	return s
}

// TransactionCount returns how many transactions reference the category.
func TransactionCount(transactions []Transaction, categoryID string) int {
	n := 0
	for _, t := range transactions {
		if t.CategoryID == categoryID {
			n++
		}
	}
	return n
}

// MonthlyTrend aggregates converted income/expense totals per calendar month
// ("2006-01" keys), newest month first, feeding the dashboard trend table.
type TrendRow struct {
	Month   string
	Income  decimal.Decimal
	Expense decimal.Decimal
}

func MonthlyTrend(transactions []Transaction, convert ConvertFunc) []TrendRow {
	byMonth := make(map[string]*TrendRow)
	order := make([]string, 0)
	for _, t := range transactions {
		key := t.Date.Format("2006-01")
		row, ok := byMonth[key]
		if !ok {
			row = &TrendRow{Month: key}
			byMonth[key] = row
			order = append(order, key)
		}
		amount := convert(t.Amount.Decimal().Abs(), t.Currency)
		switch t.Type {
		case Income:
			row.Income = row.Income.Add(amount)
		case Expense:
			row.Expense = row.Expense.Add(amount)
		}
	}
	out := make([]TrendRow, 0, len(order))
	for _, key := range order {
		out = append(out, *byMonth[key])
	}
	// Transactions arrive newest-first, so preserve first-seen order.
	return out
}
