package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"smartpay/backend/models"
)

func duesID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid dues ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *Handler) GetDues(w http.ResponseWriter, r *http.Request) {
	dues, err := h.dues.List(r.Context())
	if err != nil {
		h.writeError(w, r, err, "Failed to get dues")
		return
	}
	writeJSON(w, http.StatusOK, dues)
}

func (h *Handler) CreateDues(w http.ResponseWriter, r *http.Request) {
	var d models.Dues
	if !decodeJSON(w, r, &d) {
		return
	}
	created, err := h.dues.Create(r.Context(), d)
	if err != nil {
		h.writeError(w, r, err, "Failed to create dues")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateDues(w http.ResponseWriter, r *http.Request) {
	id, ok := duesID(w, r)
	if !ok {
		return
	}
	var d models.Dues
	if !decodeJSON(w, r, &d) {
		return
	}
	d.ID = id

	updated, err := h.dues.Update(r.Context(), d)
	if err != nil {
		h.writeError(w, r, err, "Failed to update dues")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteDues(w http.ResponseWriter, r *http.Request) {
	id, ok := duesID(w, r)
	if !ok {
		return
	}
	if err := h.dues.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err, "Failed to delete dues")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
