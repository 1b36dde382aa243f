package http

import (
	"errors"
	"net/http"

	"kasa/internal/core"
	"kasa/internal/currency"
	"kasa/internal/log"
)

type transactionRow struct {
	ID           string
	Description  string
	Amount       string // signed, in the display currency
	Original     string // as entered, in the transaction's own currency
	Type         string
	CategoryName string
	CategoryIcon string
	Date         string
	IsExpense    bool
}

type transactionsView struct {
	Lang       string
	Currency   string
	Rows       []transactionRow
	Categories []core.Category
	Currencies []currency.Option
	SortLinks  map[string]string
	SortField  string
	SortDir    string
	Today      string
}

func (s *Server) handleTransactionsPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p := s.loadPrefs(ctx)

	categories, err := s.categories.List(ctx)
	if err != nil {
		log.FromContext(ctx).ErrorContext(ctx, "List categories failed", log.FieldError, err.Error())
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	transactions, err := s.transactions.List(ctx)
	if err != nil {
		log.FromContext(ctx).ErrorContext(ctx, "List transactions failed", log.FieldError, err.Error())
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	byID := make(map[string]core.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	state := parseSortState(r.URL.Query())
	transactions = state.SortTransactions(transactions)

	convert := s.converter.Func(p.Currency)
	view := transactionsView{
		Lang:       p.Lang,
		Currency:   p.Currency,
		Categories: categories,
		Currencies: currency.Options,
		SortField:  state.Field,
		SortDir:    string(state.Direction),
		SortLinks: map[string]string{
			"date":   sortLink("/transactions", state, core.SortByDate),
			"amount": sortLink("/transactions", state, core.SortByAmount),
		},
		Today: nowFunc().Format("2006-01-02"),
	}
	for _, t := range transactions {
		row := transactionRow{
			ID:          t.ID,
			Description: t.Description,
			Amount:      formatAmount(convert(t.Signed().Decimal(), t.Currency), p.Currency),
			Original:    formatAmount(t.Amount.Decimal(), t.Currency),
			Type:        string(t.Type),
			Date:        t.Date.Format("2006-01-02"),
			IsExpense:   t.Type == core.Expense,
		}
		if c, ok := byID[t.CategoryID]; ok {
			row.CategoryName = c.Name
			row.CategoryIcon = c.Icon
		}
		view.Rows = append(view.Rows, row)
	}

	s.render(w, r, p.Lang, "transactions.html", view)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if !requireForm(w, r) {
		return
	}
	ctx := r.Context()

	t, err := s.transactions.Create(ctx, parseTransactionInput(r.Form))
	if err != nil {
		s.writeTransactionError(w, r, err)
		return
	}

	s.invalidateDashboard()
	NewHTMXResponse().
		TriggerTransactionCreated(t.ID).
		Header("HX-Redirect", "/transactions").
		Write(w)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	if err := s.transactions.Delete(ctx, id); err != nil {
		s.writeTransactionError(w, r, err)
		return
	}

	s.invalidateDashboard()
	NewHTMXResponse().
		TriggerTransactionDeleted(id).
		Header("HX-Redirect", "/transactions").
		Write(w)
}

func (s *Server) writeTransactionError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	switch {
	case errors.Is(err, core.ErrNotFound):
		NewHTMXResponse().Status(http.StatusNotFound).BodyMessage("error", "not found").Write(w)
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidDescription),
		errors.Is(err, core.ErrInvalidType),
		errors.Is(err, core.ErrUnsupportedCurrency):
		NewHTMXResponse().Status(http.StatusUnprocessableEntity).BodyMessage("error", err.Error()).Write(w)
	default:
		log.FromContext(ctx).ErrorContext(ctx, "Transaction operation failed", log.FieldError, err.Error())
		NewHTMXResponse().Status(http.StatusInternalServerError).BodyMessage("error", "internal error").Write(w)
	}
}
