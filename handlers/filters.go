package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"smartpay/backend/services"
)

// GetSavedFilters returns all saved filters for the current user
func (h *Handler) GetSavedFilters(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	filters, err := h.filters.List(r.Context(), id.UID)
	if err != nil {
		h.writeError(w, r, err, "Failed to get saved filters")
		return
	}
	writeJSON(w, http.StatusOK, filters)
}

// GetSavedFilter returns a specific saved filter
func (h *Handler) GetSavedFilter(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	filter, err := h.filters.Get(r.Context(), id, mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err, "Failed to get saved filter")
		return
	}
	writeJSON(w, http.StatusOK, filter)
}

// CreateSavedFilter creates a new saved filter
func (h *Handler) CreateSavedFilter(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var in services.SavedFilterInput
	if !decodeJSON(w, r, &in) {
		return
	}
	filter, err := h.filters.Create(r.Context(), id, in)
	if err != nil {
		h.writeError(w, r, err, "Failed to create saved filter")
		return
	}
	writeJSON(w, http.StatusCreated, filter)
}

// UpdateSavedFilter updates an existing saved filter
func (h *Handler) UpdateSavedFilter(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var in services.SavedFilterInput
	if !decodeJSON(w, r, &in) {
		return
	}
	filter, err := h.filters.Update(r.Context(), id, mux.Vars(r)["id"], in)
	if err != nil {
		h.writeError(w, r, err, "Failed to update saved filter")
		return
	}
	writeJSON(w, http.StatusOK, filter)
}

// DeleteSavedFilter deletes a saved filter
func (h *Handler) DeleteSavedFilter(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	if err := h.filters.Delete(r.Context(), id, mux.Vars(r)["id"]); err != nil {
		h.writeError(w, r, err, "Failed to delete saved filter")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
