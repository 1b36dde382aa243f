// This file implements utilities for parsing and validating HTTP request
// data: form extraction, sort state round-tripping, and defaults.
package http

import (
	"net/http"
	"net/url"
	"strconv"

	"kasa/internal/core"
	"kasa/internal/services"
)

// parseSortState reconstructs the table sort state from query parameters and
// applies a pending header click when present.
func parseSortState(query url.Values) core.SortState {
	state := core.SortState{
		Field: query.Get("sort"),
	}
	switch query.Get("dir") {
	case string(core.Ascending):
		state.Direction = core.Ascending
	case string(core.Descending):
		state.Direction = core.Descending
	default:
		state.Field = ""
	}
	if state.Field == core.SortByAmount {
		if n, err := strconv.Atoi(query.Get("clicks")); err == nil && n >= 1 && n <= 2 {
			state.AmountClicks = n
		} else {
			state.Field = ""
			state.Direction = ""
		}
	}

	if click := query.Get("click"); click != "" {
		state = state.Click(click)
	}
	return state
}

// sortQuery serializes a sort state back into query parameters so header
// links can carry it between requests. The unsorted state serializes empty.
func sortQuery(state core.SortState) string {
	if state.Field == "" {
		return ""
	}
	q := url.Values{}
	q.Set("sort", state.Field)
	q.Set("dir", string(state.Direction))
	if state.Field == core.SortByAmount {
		q.Set("clicks", strconv.Itoa(state.AmountClicks))
	}
	return q.Encode()
}

// sortLink builds a header link that applies a click on the given column to
// the current state.
func sortLink(path string, state core.SortState, field string) string {
	q := sortQuery(state)
	if q != "" {
		q += "&"
	}
	return path + "?" + q + "click=" + url.QueryEscape(field)
}

// parseTransactionInput extracts a transaction create input from form values.
func parseTransactionInput(form url.Values) services.CreateInput {
	in := services.CreateInput{
		Description: sanitizeInput(form.Get("description")),
		Amount:      sanitizeInput(form.Get("amount")),
		Type:        core.TransactionType(form.Get("type")),
		CategoryID:  sanitizeInput(form.Get("category_id")),
		Currency:    sanitizeInput(form.Get("currency")),
	}
	if v := sanitizeInput(form.Get("date")); v != "" {
		if d, err := parseDate(v); err == nil {
			in.Date = d
		}
	}
	return in
}

// parseBudget parses the optional budget field; empty and "0" mean no budget.
func parseBudget(form url.Values) (*core.Money, error) {
	return core.ParseBudgetCents(sanitizeInput(form.Get("budget")))
}

// requireForm parses the request form, answering false after writing a 400
// when the body is malformed.
func requireForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		NewHTMXResponse().
			Status(http.StatusBadRequest).
			BodyMessage("error", "invalid request format").
			Write(w)
		return false
	}
	return true
}
