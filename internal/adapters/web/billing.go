package web

import (
	"net/http"

	"billfold/internal/app"
)

func (h *Handler) listBills(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	result, err := h.svc.ListBills(r.Context(), claims.AdminID, queryInt(r, "client_id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) createBill(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	var req app.CreateBillRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	bill, err := h.svc.CreateBill(r.Context(), claims.AdminID, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, bill)
}

func (h *Handler) getBill(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	billID, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	bill, err := h.svc.GetBill(r.Context(), claims.AdminID, billID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, bill)
}

// suggestMessage generates a share message for a bill. A failure here
// never affects the bill itself.
func (h *Handler) suggestMessage(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	billID, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	suggestion, err := h.svc.SuggestBillMessage(r.Context(), claims.AdminID, billID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, suggestion)
}
