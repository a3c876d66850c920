package handler

import (
	"net/http"

	"github.com/boddenberg/pj-collections-go/internal/domain"
	"github.com/boddenberg/pj-collections-go/internal/service"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// PIX BR Codes
// ============================================================

// maxBatchItems bounds POST /v1/pix/brcode/batch.
const maxBatchItems = 500

func generateBRCodeHandler(svc *service.CollectionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/pix/brcode")
		defer span.End()

		var req domain.BRCodeRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.IdempotencyKey == "" {
			req.IdempotencyKey = r.Header.Get("Idempotency-Key")
		}

		code, err := svc.GenerateBRCode(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusCreated, code)
	}
}

func generateBRCodeBatchHandler(svc *service.CollectionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/pix/brcode/batch")
		defer span.End()

		var body struct {
			Items []domain.BRCodeRequest `json:"items"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		if len(body.Items) > maxBatchItems {
			writeError(w, http.StatusRequestEntityTooLarge, "too many items in batch")
			return
		}
		span.SetAttributes(attribute.Int("batch.size", len(body.Items)))

		codes, err := svc.GenerateBRCodes(ctx, body.Items)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusCreated, domain.BRCodeBatchResponse{Items: codes})
	}
}
