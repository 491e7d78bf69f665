package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Triage/internal/config"
	"github.com/MikeSquared-Agency/Triage/internal/hermes"
	"github.com/MikeSquared-Agency/Triage/internal/scoring"
)

// NewRouter builds the public API. clock supplies "today" for every request;
// h may be nil when events are disabled.
func NewRouter(rk *scoring.Ranker, h hermes.Client, clock func() time.Time, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(JSONRecoverer(logger))
	r.Use(CORSMiddleware(cfg.CORS.AllowedOrigin))
	r.Use(chiMiddleware.StripSlashes)
	if cfg.Server.RateLimitPerMinute > 0 {
		r.Use(RateLimitMiddleware(cfg.Server.RateLimitPerMinute))
	}
	r.Use(MetricsMiddleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Only POST method allowed")
	})

	tasks := NewTasksHandler(rk, h, clock, cfg.Server.MaxBodyBytes, logger)

	r.Route("/api/tasks", func(r chi.Router) {
		r.Get("/analyze", readiness("Analyze"))
		r.Post("/analyze", tasks.Analyze)
		r.Options("/analyze", preflight)

		r.Get("/suggest", readiness("Suggest"))
		r.Post("/suggest", tasks.Suggest)
		r.Options("/suggest", preflight)

		r.Get("/explain", readiness("Explain"))
		r.Post("/explain", tasks.Explain)
		r.Options("/explain", preflight)
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func readiness(name string) http.HandlerFunc {
	msg := name + " endpoint is working. Use POST with task data."
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": msg})
	}
}

func preflight(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{})
}
