package web

import "net/http"

func (h *Handler) listClients(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	result, err := h.svc.ListClients(r.Context(), claims.AdminID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) createClient(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	client, err := h.svc.CreateClient(r.Context(), claims.AdminID, req.Name, req.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, client)
}

func (h *Handler) deleteClient(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	clientID, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteClient(r.Context(), claims.AdminID, clientID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
