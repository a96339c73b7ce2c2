package web

import (
	"net/http"

	"billfold/internal/app"
)

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	result, err := h.svc.ListProducts(r.Context(), claims.AdminID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	var req app.ProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	product, err := h.svc.CreateProduct(r.Context(), claims.AdminID, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, product)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	productID, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var req app.ProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	product, err := h.svc.UpdateProduct(r.Context(), claims.AdminID, productID, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, product)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	productID, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteProduct(r.Context(), claims.AdminID, productID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// resolvePrice returns the unit price a client would be charged for a
// product, after applying any override.
func (h *Handler) resolvePrice(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	clientID, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	productID, ok := urlID(w, r, "productID")
	if !ok {
		return
	}

	price, err := h.svc.ResolvePrice(r.Context(), claims.AdminID, clientID, productID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, price)
}
