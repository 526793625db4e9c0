package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/waypost/waypost/internal/logging"
)

// NewRouter wires the HTTP routes.
//
// resourceDir, when non-empty, is served under /res for stylesheets and
// other static assets. Every unmatched path falls back to the landing page.
func NewRouter(h *Handlers, logger logging.Logger, resourceDir string) chi.Router {
	r := chi.NewRouter()

	r.Use(requestLogger(logger))

	r.Get("/auth/signup", h.GetSignup)
	r.Post("/auth/signup", h.PostSignup)
	r.Get("/auth/login", h.GetLogin)

	if resourceDir != "" {
		fs := http.StripPrefix("/res/", http.FileServer(http.Dir(resourceDir)))
		r.Handle("/res/*", fs)
	}

	r.NotFound(h.GetLanding)

	return r
}

// requestLogger logs one line per request with method, path, and duration.
func requestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	log := logger.With("module", "http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Debug(r.Context(), "request served",
				"method", r.Method, "path", r.URL.Path, "duration", time.Since(start).String())
		})
	}
}
