package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/scholaris/intake-api/internal/entity"
	"github.com/scholaris/intake-api/internal/infra/http/middleware"
	"github.com/scholaris/intake-api/internal/usecase"
)

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type errorListResponse struct {
	Success bool                      `json:"success"`
	Errors  []usecase.ValidationError `json:"errors"`
}

type failureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeSuccess(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, successResponse{Success: true, Message: message})
}

func writeBadJSON(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, errorListResponse{
		Success: false,
		Errors:  []usecase.ValidationError{{Field: "body", Message: "invalid JSON"}},
	})
}

// writeUseCaseError translates the error taxonomy into the wire shapes.
// Only validation, rate-limit, conflict and domain errors carry specific
// messages; technical faults are logged in full and answered generically.
func writeUseCaseError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if errs, ok := usecase.AsValidationErrors(err); ok {
		writeJSON(w, http.StatusBadRequest, errorListResponse{Success: false, Errors: errs})
		return
	}

	if usecase.IsRateLimitError(err) {
		middleware.RecordRateLimited()
		writeJSON(w, http.StatusTooManyRequests, map[string]string{
			"error": "Too many requests. Please try again later.",
		})
		return
	}

	if usecase.IsConflictError(err) {
		writeJSON(w, http.StatusConflict, failureResponse{Success: false, Message: err.Error()})
		return
	}

	if usecase.IsDomainError(err) {
		writeJSON(w, http.StatusBadRequest, failureResponse{Success: false, Message: err.Error()})
		return
	}

	logger.Error("request failed", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, failureResponse{
		Success: false,
		Message: "Something went wrong. Please try again later.",
	})
}

// clientMeta resolves the caller's identity: first entry of the
// X-Forwarded-For chain, then X-Real-IP, then the literal "unknown".
func clientMeta(r *http.Request) entity.ClientMeta {
	ip := "unknown"
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ip = strings.TrimSpace(strings.Split(xff, ",")[0])
	} else if xri := r.Header.Get("X-Real-IP"); xri != "" {
		ip = xri
	}

	return entity.ClientMeta{
		IP:        ip,
		UserAgent: r.UserAgent(),
		Source:    r.Header.Get("Referer"),
	}
}
