package http

import (
	"errors"
	"net/http"

	"kasa/internal/core"
	"kasa/internal/currency"
	"kasa/internal/i18n"
	"kasa/internal/log"
)

type settingsView struct {
	Lang       string
	Currency   string
	Currencies []currency.Option
	Languages  []string
}

func (s *Server) handleSettingsPage(w http.ResponseWriter, r *http.Request) {
	p := s.loadPrefs(r.Context())
	s.render(w, r, p.Lang, "settings.html", settingsView{
		Lang:       p.Lang,
		Currency:   p.Currency,
		Currencies: currency.Options,
		Languages:  i18n.Languages,
	})
}

func (s *Server) handleSetCurrency(w http.ResponseWriter, r *http.Request) {
	if !requireForm(w, r) {
		return
	}
	ctx := r.Context()

	code := sanitizeInput(r.Form.Get("currency"))
	if err := s.settings.SetDisplayCurrency(ctx, code); err != nil {
		s.writeSettingsError(w, r, err)
		return
	}

	s.invalidateDashboard()
	NewHTMXResponse().
		TriggerSettingsChanged().
		Header("HX-Redirect", "/settings").
		Write(w)
}

func (s *Server) handleSetLanguage(w http.ResponseWriter, r *http.Request) {
	if !requireForm(w, r) {
		return
	}
	ctx := r.Context()

	code := sanitizeInput(r.Form.Get("language"))
	if err := s.settings.SetLanguage(ctx, code); err != nil {
		s.writeSettingsError(w, r, err)
		return
	}

	s.invalidateDashboard()
	NewHTMXResponse().
		TriggerSettingsChanged().
		Header("HX-Redirect", "/settings").
		Write(w)
}

func (s *Server) writeSettingsError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	switch {
	case errors.Is(err, core.ErrUnsupportedCurrency), errors.Is(err, core.ErrUnsupportedLanguage):
		NewHTMXResponse().Status(http.StatusUnprocessableEntity).BodyMessage("error", err.Error()).Write(w)
	default:
		log.FromContext(ctx).ErrorContext(ctx, "Settings update failed", log.FieldError, err.Error())
		NewHTMXResponse().Status(http.StatusInternalServerError).BodyMessage("error", "internal error").Write(w)
	}
}
