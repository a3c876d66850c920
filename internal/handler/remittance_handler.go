package handler

import (
	"net/http"

	"github.com/boddenberg/pj-collections-go/internal/domain"
	"github.com/boddenberg/pj-collections-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// CNAB Remittances
// ============================================================

func generateRemittanceHandler(svc *service.CollectionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/remittances/{bank}")
		defer span.End()

		bank := chi.URLParam(r, "bank")
		span.SetAttributes(attribute.String("cnab.bank", bank))

		var req domain.RemittanceRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		rem, err := svc.GenerateRemittance(ctx, bank, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		if r.URL.Query().Get("content") == "false" {
			rem.Content = ""
		}
		writeJSON(w, http.StatusCreated, rem)
	}
}

func listLayoutsHandler(svc *service.CollectionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string][]string{"layouts": svc.Layouts()})
	}
}
