package handlers

import (
	"errors"
	"net/http"

	"smartpay/backend/models"
	"smartpay/backend/services"
)

// meResponse is the dashboard identity.
type meResponse struct {
	Identity models.Identity  `json:"identity"`
	Resident *models.Resident `json:"resident"`
	IsAdmin  bool             `json:"isAdmin"`
}

// GetMe returns the caller, their resident row if any, and whether they are an admin.
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	resident, err := h.residents.Get(r.Context(), id.UID)
	if err != nil && !errors.Is(err, services.ErrNotFound) && !errors.Is(err, services.ErrUnavailable) {
		h.writeError(w, r, err, "Failed to load resident")
		return
	}

	writeJSON(w, http.StatusOK, meResponse{
		Identity: id,
		Resident: resident,
		IsAdmin:  h.policy.IsAdmin(r.Context(), id),
	})
}

type syncResponse struct {
	Resident *models.Resident `json:"resident"`
	Notice   string           `json:"notice,omitempty"`
}

// SyncResident creates the caller's resident row from the registration form.
// An existing row is reported with a notice and returned unchanged.
func (h *Handler) SyncResident(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var profile services.ResidentProfile
	if !decodeJSON(w, r, &profile) {
		return
	}

	resident, err := h.residents.Ensure(r.Context(), id, profile)
	switch {
	case errors.Is(err, services.ErrAlreadyRegistered):
		writeJSON(w, http.StatusOK, syncResponse{Resident: resident, Notice: services.UserMessage(err, "")})
	case err != nil:
		h.writeError(w, r, err, "Failed to register resident")
	default:
		writeJSON(w, http.StatusCreated, syncResponse{Resident: resident})
	}
}

// Register creates a local account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if !decodeJSON(w, r, &in) {
		return
	}
	result, err := h.residents.Register(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err, "Registration failed")
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// Login signs in with a local account.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	result, err := h.residents.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		h.writeError(w, r, err, "Login failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
