package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"kasa/internal/cache"
	"kasa/internal/currency"
	"kasa/internal/i18n"
	"kasa/internal/log"
	"kasa/internal/services"
	appweb "kasa/web"
)

// Deps carries the server's collaborators.
type Deps struct {
	Categories   *services.CategoryService
	Transactions *services.TransactionService
	Settings     *services.SettingsService
	Converter    *currency.Converter
	Logger       *log.Logger
}

type Server struct {
	http.Server
	categories   *services.CategoryService
	transactions *services.TransactionService
	settings     *services.SettingsService
	converter    *currency.Converter
	logger       *log.Logger
	rateLimiter  *rateLimiter

	// Templates are parsed once per language so the t func can be bound at
	// parse time.
	templates map[string]*template.Template

	// Dashboard aggregates are recomputed on every write; between writes the
	// cache answers repeated loads.
	dashCache    *cache.LRUCache[dashboardView]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, deps Deps) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		categories:   deps.Categories,
		transactions: deps.Transactions,
		settings:     deps.Settings,
		converter:    deps.Converter,
		logger:       deps.Logger.WithComponent(log.ComponentHTTP),
		rateLimiter:  newRateLimiter(),
		dashCache:    cache.NewLRUCache[dashboardView](20, 30*time.Second),
		cacheManager: cache.NewManager(),
	}

	s.cacheManager.Register(s.dashCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	s.templates = parseTemplates(deps.Logger)

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", log.FieldError, err.Error())
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("GET /{$}", s.withMiddleware(s.handleDashboard))
	mux.HandleFunc("GET /categories", s.withMiddleware(s.handleCategoriesPage))
	mux.HandleFunc("POST /categories", s.withMiddleware(s.handleCreateCategory))
	mux.HandleFunc("POST /categories/{id}", s.withMiddleware(s.handleUpdateCategory))
	mux.HandleFunc("POST /categories/{id}/delete", s.withMiddleware(s.handleDeleteCategory))
	mux.HandleFunc("GET /transactions", s.withMiddleware(s.handleTransactionsPage))
	mux.HandleFunc("POST /transactions", s.withMiddleware(s.handleCreateTransaction))
	mux.HandleFunc("POST /transactions/{id}/delete", s.withMiddleware(s.handleDeleteTransaction))
	mux.HandleFunc("GET /settings", s.withMiddleware(s.handleSettingsPage))
	mux.HandleFunc("POST /settings/currency", s.withMiddleware(s.handleSetCurrency))
	mux.HandleFunc("POST /settings/language", s.withMiddleware(s.handleSetLanguage))

	return s
}

// parseTemplates parses the embedded templates once per supported language,
// binding each language's lookup function.
func parseTemplates(logger *log.Logger) map[string]*template.Template {
	out := make(map[string]*template.Template, len(i18n.Languages))
	for _, lang := range i18n.Languages {
		funcs := template.FuncMap{
			"t": i18n.Func(lang),
		}
		t, err := template.New("").Funcs(funcs).ParseFS(appweb.TemplatesFS, "templates/*.html")
		if err != nil {
			logger.Error("Failed parsing templates",
				"language", lang,
				log.FieldError, err.Error())
			continue
		}
		out[lang] = t
	}
	return out
}

// withMiddleware adds security headers, rate limiting and request logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		logger := s.logger.With(log.FieldRequestID, requestID)
		ctx := log.IntoContext(r.Context(), logger)
		r = r.WithContext(ctx)

		logger.InfoContext(ctx, "Request started",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldClientIP, clientIP,
			log.FieldUserAgent, r.Header.Get("User-Agent"))

		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP) {
			logger.WarnContext(ctx, "Rate limit exceeded",
				log.FieldClientIP, clientIP,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		setSecurityHeaders(w)

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		logger.InfoContext(ctx, "Request completed",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, time.Since(start).Milliseconds(),
			log.FieldClientIP, clientIP)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Shutdown stops the background routines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		s.cacheManager.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// prefs holds the per-request user preferences.
type prefs struct {
	Currency string
	Lang     string
}

func (s *Server) loadPrefs(ctx context.Context) prefs {
	p := prefs{Currency: currency.Default, Lang: i18n.Default}
	if cur, err := s.settings.DisplayCurrency(ctx); err == nil {
		p.Currency = cur
	}
	if lang, err := s.settings.Language(ctx); err == nil {
		p.Lang = lang
	}
	return p
}

// render executes the named template in the request's language.
func (s *Server) render(w http.ResponseWriter, r *http.Request, lang, name string, data any) {
	t, ok := s.templates[lang]
	if !ok {
		t, ok = s.templates[i18n.Default]
	}
	if !ok {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Templates not loaded", log.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Template execution failed",
			"template", name,
			log.FieldError, err.Error())
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// invalidateDashboard drops cached aggregates after any write.
func (s *Server) invalidateDashboard() {
	s.dashCache.Purge()
}
