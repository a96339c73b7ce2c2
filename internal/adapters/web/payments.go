package web

import (
	"net/http"

	"billfold/internal/app"
)

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	result, err := h.svc.ListPayments(r.Context(), claims.AdminID, queryInt(r, "client_id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	var req app.RecordPaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entry, err := h.svc.RecordPayment(r.Context(), claims.AdminID, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, entry)
}
