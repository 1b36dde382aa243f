package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"kasa/internal/core"
	"kasa/internal/log"
)

type dashCategoryRow struct {
	Name          string
	Icon          string
	Income        string
	Expense       string
	Balance       string
	Percent       string
	BudgetWarning bool
}

type dashTrendRow struct {
	Month   string
	Income  string
	Expense string
}

// dashboardView is fully formatted so it can be cached as a value.
type dashboardView struct {
	Lang             string
	Currency         string
	TotalIncome      string
	TotalExpense     string
	Balance          string
	Rows             []dashCategoryRow
	Trend            []dashTrendRow
	TransactionCount int
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p := s.loadPrefs(ctx)

	cacheKey := p.Currency + "|" + p.Lang
	if view, ok := s.dashCache.Get(cacheKey); ok {
		s.render(w, r, p.Lang, "dashboard.html", view)
		return
	}

	view, err := s.buildDashboard(r, p)
	if err != nil {
		log.FromContext(ctx).ErrorContext(ctx, "Dashboard build failed", log.FieldError, err.Error())
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.dashCache.Set(cacheKey, view)
	s.render(w, r, p.Lang, "dashboard.html", view)
}

func (s *Server) buildDashboard(r *http.Request, p prefs) (dashboardView, error) {
	ctx := r.Context()

	categories, err := s.categories.List(ctx)
	if err != nil {
		return dashboardView{}, err
	}
	transactions, err := s.transactions.List(ctx)
	if err != nil {
		return dashboardView{}, err
	}

	convert := s.converter.Func(p.Currency)
	totals := core.CategoryTotals(categories, transactions, convert, p.Currency)
	sum := core.Summarize(totals)

	view := dashboardView{
		Lang:             p.Lang,
		Currency:         p.Currency,
		TotalIncome:      formatAmount(sum.TotalIncome, p.Currency),
		TotalExpense:     formatAmount(sum.TotalExpense, p.Currency),
		Balance:          formatAmount(sum.Balance(), p.Currency),
		TransactionCount: len(transactions),
	}

	for _, row := range totals {
		percent := ""
		if sum.TotalExpense.IsPositive() && row.TotalExpense.IsPositive() {
			share := row.TotalExpense.Div(sum.TotalExpense).Mul(decimal.NewFromInt(100))
			percent = share.StringFixed(1) + "%"
		}
		view.Rows = append(view.Rows, dashCategoryRow{
			Name:          row.Name,
			Icon:          row.Icon,
			Income:        formatAmount(row.TotalIncome, p.Currency),
			Expense:       formatAmount(row.TotalExpense, p.Currency),
			Balance:       formatAmount(row.Balance(), p.Currency),
			Percent:       percent,
			BudgetWarning: row.BudgetWarning,
		})
	}

	for _, row := range core.MonthlyTrend(transactions, convert) {
		view.Trend = append(view.Trend, dashTrendRow{
			Month:   row.Month,
			Income:  formatAmount(row.Income, p.Currency),
			Expense: formatAmount(row.Expense, p.Currency),
		})
	}

	return view, nil
}
