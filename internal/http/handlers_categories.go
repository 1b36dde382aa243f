package http

import (
	"errors"
	"net/http"
	"strconv"

	"kasa/internal/core"
	"kasa/internal/i18n"
	"kasa/internal/log"
)

type categoryRow struct {
	ID            string
	Name          string
	Icon          string
	Budget        string // converted for display, empty when no budget is set
	BudgetInput   string // raw USD value prefilling the edit form
	Income        string
	Expense       string
	Balance       string
	BudgetWarning bool
}

type categoriesView struct {
	Lang      string
	Currency  string
	Rows      []categoryRow
	AtLimit   bool
	SortLinks map[string]string
	SortField string
	SortDir   string
}

func (s *Server) handleCategoriesPage(w http.ResponseWriter, r *http.Request) {
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

	convert := s.converter.Func(p.Currency)
	totals := core.CategoryTotals(categories, transactions, convert, p.Currency)

	state := parseSortState(r.URL.Query())
	totals = state.SortCategories(totals, i18n.Collator(p.Lang))

	view := categoriesView{
		Lang:      p.Lang,
		Currency:  p.Currency,
		AtLimit:   len(categories) >= core.MaxCategories,
		SortField: state.Field,
		SortDir:   string(state.Direction),
		SortLinks: map[string]string{
			"name":    sortLink("/categories", state, core.SortByName),
			"budget":  sortLink("/categories", state, core.SortByBudget),
			"income":  sortLink("/categories", state, core.SortByIncome),
			"expense": sortLink("/categories", state, core.SortByExpense),
			"balance": sortLink("/categories", state, core.SortByBalance),
		},
	}
	for _, row := range totals {
		cr := categoryRow{
			ID:            row.ID,
			Name:          row.Name,
			Icon:          row.Icon,
			Income:        formatAmount(row.TotalIncome, p.Currency),
			Expense:       formatAmount(row.TotalExpense, p.Currency),
			Balance:       formatAmount(row.Balance(), p.Currency),
			BudgetWarning: row.BudgetWarning,
		}
		if row.Budget != nil {
			cr.Budget = formatAmount(convert(row.Budget.Decimal(), "USD"), p.Currency)
			cr.BudgetInput = row.Budget.Decimal().StringFixed(2)
		}
		view.Rows = append(view.Rows, cr)
	}

	s.render(w, r, p.Lang, "categories.html", view)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	if !requireForm(w, r) {
		return
	}
	ctx := r.Context()

	budget, err := parseBudget(r.Form)
	if err != nil {
		NewHTMXResponse().
			Status(http.StatusUnprocessableEntity).
			BodyMessage("error", "invalid budget").
			Write(w)
		return
	}

	cat, err := s.categories.Create(ctx,
		sanitizeInput(r.Form.Get("name")),
		sanitizeInput(r.Form.Get("icon")),
		budget)
	if err != nil {
		s.writeCategoryError(w, r, err)
		return
	}

	s.invalidateDashboard()
	NewHTMXResponse().
		TriggerCategoryChanged(cat.ID).
		Header("HX-Redirect", "/categories").
		Write(w)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	if !requireForm(w, r) {
		return
	}
	ctx := r.Context()
	id := r.PathValue("id")

	budget, err := parseBudget(r.Form)
	if err != nil {
		NewHTMXResponse().
			Status(http.StatusUnprocessableEntity).
			BodyMessage("error", "invalid budget").
			Write(w)
		return
	}

	cat, err := s.categories.Update(ctx, id,
		sanitizeInput(r.Form.Get("name")),
		sanitizeInput(r.Form.Get("icon")),
		budget)
	if err != nil {
		s.writeCategoryError(w, r, err)
		return
	}

	s.invalidateDashboard()
	NewHTMXResponse().
		TriggerCategoryChanged(cat.ID).
		Header("HX-Redirect", "/categories").
		Write(w)
}

// handleDeleteCategory deletes a category. When the category still has
// transactions and the request does not carry confirmed=true, it answers 409
// with a confirmation fragment naming how many transactions the cascade will
// remove.
func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if !requireForm(w, r) {
		return
	}
	ctx := r.Context()
	p := s.loadPrefs(ctx)
	id := r.PathValue("id")
	confirmed := r.Form.Get("confirmed") == "true"

	count, err := s.categories.Delete(ctx, id, confirmed)
	if errors.Is(err, core.ErrConfirmationRequired) {
		data := struct {
			Lang  string
			ID    string
			Count int
		}{p.Lang, id, count}
		w.WriteHeader(http.StatusConflict)
		s.render(w, r, p.Lang, "confirm_delete.html", data)
		return
	}
	if err != nil {
		s.writeCategoryError(w, r, err)
		return
	}

	s.invalidateDashboard()
	NewHTMXResponse().
		TriggerCategoryChanged(id).
		TriggerNotification(NotificationSuccess, "deleted "+strconv.Itoa(count)+" transactions").
		Header("HX-Redirect", "/categories").
		Write(w)
}

func (s *Server) writeCategoryError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	switch {
	case errors.Is(err, core.ErrNotFound):
		NewHTMXResponse().Status(http.StatusNotFound).BodyMessage("error", "category not found").Write(w)
	case errors.Is(err, core.ErrCategoryLimit):
		p := s.loadPrefs(ctx)
		NewHTMXResponse().
			Status(http.StatusUnprocessableEntity).
			BodyMessage("error", i18n.T(p.Lang, "categories.limit")).
			Write(w)
	case errors.Is(err, core.ErrInvalidName), errors.Is(err, core.ErrNegativeBudget):
		NewHTMXResponse().Status(http.StatusUnprocessableEntity).BodyMessage("error", err.Error()).Write(w)
	default:
		log.FromContext(ctx).ErrorContext(ctx, "Category operation failed", log.FieldError, err.Error())
		NewHTMXResponse().Status(http.StatusInternalServerError).BodyMessage("error", "internal error").Write(w)
	}
}
