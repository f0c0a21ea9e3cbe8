package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"smartpay/backend/export"
	"smartpay/backend/listview"
	"smartpay/backend/render"
	"smartpay/backend/services"
)

const maxProofSize = 10 << 20

// GetMyPayments returns a page of the caller's own payment history.
func (h *Handler) GetMyPayments(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	q, err := h.viewQuery(r, id, listview.Resident)
	if err != nil {
		h.writeError(w, r, err, "Failed to apply saved filter")
		return
	}

	res := h.payments.ResidentView(r.Context(), id.UID, q)
	writeJSON(w, http.StatusOK, render.JSON(listview.Resident, res, q.Sort))
}

// GetAdminPayments returns a page of the monitoring table over every household.
func (h *Handler) GetAdminPayments(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	q, err := h.viewQuery(r, id, listview.Admin)
	if err != nil {
		h.writeError(w, r, err, "Failed to apply saved filter")
		return
	}

	res := h.payments.AdminView(r.Context(), q)
	writeJSON(w, http.StatusOK, render.JSON(listview.Admin, res, q.Sort))
}

// ExportAdminPayments downloads the visible page of the monitoring table as xlsx.
func (h *Handler) ExportAdminPayments(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	q, err := h.viewQuery(r, id, listview.Admin)
	if err != nil {
		h.writeError(w, r, err, "Failed to apply saved filter")
		return
	}

	res := h.payments.AdminView(r.Context(), q)
	buf, err := h.workbook(listview.Admin, res.Rows)
	if err != nil {
		h.writeError(w, r, err, "Failed to export payments")
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.FileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("Export download interrupted", zap.Error(err))
	}
}

// SubmitPayment accepts the upload form: type, month, year and the proof file.
func (h *Handler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxProofSize)
	if err := r.ParseMultipartForm(maxProofSize); err != nil {
		h.writeError(w, r, services.NewUserError(services.MsgIncomplete, services.ErrIncomplete), "")
		return
	}

	in := services.SubmitProofInput{
		PaymentType: r.FormValue("type"),
		Month:       r.FormValue("month"),
		Year:        r.FormValue("year"),
	}
	if file, header, err := r.FormFile("proof"); err == nil {
		defer file.Close()
		in.File = file
		in.ContentType = header.Header.Get("Content-Type")
	}

	record, err := h.payments.SubmitProof(r.Context(), id, in)
	if err != nil {
		h.writeError(w, r, err, "Failed to submit payment")
		return
	}
	writeJSON(w, http.StatusCreated, record)
}
