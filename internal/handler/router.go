package handler

import (
	"net/http"
	"time"

	"github.com/boddenberg/pj-collections-go/internal/domain"
	"github.com/boddenberg/pj-collections-go/internal/infra/observability"
	"github.com/boddenberg/pj-collections-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(svc *service.CollectionService, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(svc))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {
		// PIX BR Codes
		r.Post("/pix/brcode", generateBRCodeHandler(svc, logger))
		r.Post("/pix/brcode/batch", generateBRCodeBatchHandler(svc, logger))

		// CNAB remittances
		r.Get("/remittances/layouts", listLayoutsHandler(svc))
		r.Post("/remittances/{bank}", generateRemittanceHandler(svc, logger))

		r.Get("/metrics/collections", collectionMetricsHandler(metrics))
	})

	return r
}

// ============================================================
// Métricas & Health
// ============================================================

func healthzHandler(svc *service.CollectionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().Format(time.RFC3339)

		services := []domain.ServiceHealth{
			{Name: "collections-api", Status: "healthy", LastChecked: now},
		}

		if svc != nil {
			status := "healthy"
			if err := svc.CheckRemittanceDir(); err != nil {
				status = "unhealthy"
			}
			services = append(services, domain.ServiceHealth{
				Name: "remittance-storage", Status: status, LastChecked: now,
			})
		}

		overallStatus := "healthy"
		for _, s := range services {
			if s.Status == "unhealthy" {
				overallStatus = "unhealthy"
				break
			}
			if s.Status == "degraded" {
				overallStatus = "degraded"
			}
		}

		code := http.StatusOK
		if overallStatus == "unhealthy" {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, domain.HealthStatus{
			Status:   overallStatus,
			Services: services,
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func collectionMetricsHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.Snapshot())
	}
}
