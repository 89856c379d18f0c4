package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Kinship/internal/config"
	"github.com/MikeSquared-Agency/Kinship/internal/intake"
)

const livenessMessage = "Relationship Support API — your wellbeing journey starts here"

func NewRouter(svc *intake.Service, cfg config.ServerConfig, logger *slog.Logger) (http.Handler, error) {
	assessment, err := NewAssessmentHandler(svc)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(CORSMiddleware(cfg.AllowedOrigins))
	r.Use(RateLimitMiddleware(cfg.RateLimitPerMinute))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "alive", "message": livenessMessage})
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	r.Route("/api/assessment", func(r chi.Router) {
		r.Get("/questions", assessment.Questions)
		r.Get("/questions/structured", assessment.Structured)
		r.Post("/submit", assessment.Submit)
		r.Get("/health", assessment.Health)
		r.Get("/results/{session_id}", assessment.Result)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminToken))
			r.Get("/stats", assessment.Stats)
			r.Get("/results", assessment.List)
		})
	})

	return r, nil
}

// NewMetricsRouter serves /health and the given gatherer on /metrics.
func NewMetricsRouter(g prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return r
}
