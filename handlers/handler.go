// Package handlers serves the SmartPay HTTP API.
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"smartpay/backend/export"
	"smartpay/backend/listview"
	"smartpay/backend/middleware"
	"smartpay/backend/models"
	"smartpay/backend/services"
)

// Handler holds the services every endpoint needs.
type Handler struct {
	payments  *services.PaymentService
	residents *services.ResidentService
	dues      *services.DuesService
	filters   *services.FilterService
	policy    services.AuthorizationPolicy
	logger    *zap.Logger

	workbook func(listview.View, []models.PaymentRecord) (*bytes.Buffer, error)
}

// Deps are the collaborators a Handler is built from.
type Deps struct {
	Payments  *services.PaymentService
	Residents *services.ResidentService
	Dues      *services.DuesService
	Filters   *services.FilterService
	Policy    services.AuthorizationPolicy
	Logger    *zap.Logger
}

func New(d Deps) *Handler {
	return &Handler{
		payments:  d.Payments,
		residents: d.Residents,
		dues:      d.Dues,
		filters:   d.Filters,
		policy:    d.Policy,
		logger:    d.Logger,
		workbook:  export.Buffer,
	}
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// statusFor maps service errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, services.ErrIncomplete), errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUploadFailed):
		return http.StatusBadGateway
	case errors.Is(err, services.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// writeError answers with {"error": message}. Unmapped errors are logged and the
// caller's fallback message is shown instead of the cause.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": services.UserMessage(err, fallback)})
}

// identity returns the caller or answers 401.
func identity(w http.ResponseWriter, r *http.Request) (models.Identity, bool) {
	id, ok := middleware.GetIdentity(r)
	if !ok {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
	}
	return id, ok
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body: " + err.Error()})
		return false
	}
	return true
}
