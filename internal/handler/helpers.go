package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/boddenberg/pj-collections-go/internal/domain"

	"go.uber.org/zap"
)

// ============================================================
// Shared helper functions
// ============================================================

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// maxBodyBytes caps request bodies; a remittance with a few thousand
// billets fits comfortably.
const maxBodyBytes = 8 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// handleServiceError maps domain errors to HTTP responses.
func handleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	var notFound *domain.ErrNotFound
	var circuitOpen *domain.ErrCircuitOpen
	var validation *domain.ErrValidation
	var fieldLength *domain.ErrFieldLengthExceeded
	var invalidWallet *domain.ErrInvalidWallet
	var lineLength *domain.ErrLineLengthMismatch
	var incomplete *domain.ErrIncompleteWrite
	var external *domain.ErrExternalService
	var conflict *domain.ErrConflict

	switch {
	case errors.As(err, &notFound):
		logger.Debug("not found", zap.String("error", err.Error()))
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &validation):
		logger.Debug("validation error", zap.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &fieldLength):
		logger.Debug("field too long",
			zap.String("tag", fieldLength.Tag),
			zap.Int("length", fieldLength.Length),
		)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &invalidWallet):
		logger.Debug("invalid wallet", zap.String("wallet", invalidWallet.Wallet))
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &conflict):
		logger.Debug("conflict", zap.String("error", err.Error()))
		writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &lineLength):
		logger.Error("layout produced a malformed record",
			zap.String("record", lineLength.Record),
			zap.Int("expected", lineLength.Expected),
			zap.Int("actual", lineLength.Actual),
		)
		writeError(w, http.StatusInternalServerError, "remittance layout error")
	case errors.As(err, &incomplete):
		logger.Error("incomplete remittance write", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "remittance file could not be saved")
	case errors.As(err, &circuitOpen):
		logger.Error("circuit breaker open", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &external):
		logger.Error("external service error", zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		logger.Error("unhandled error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
