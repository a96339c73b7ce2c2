package web

import (
	"fmt"
	"net/http"
	"time"

	"billfold/internal/app"
)

// reportQuery reads the window selection from query parameters.
func reportQuery(r *http.Request) app.ReportQuery {
	q := r.URL.Query()
	return app.ReportQuery{
		Start:    q.Get("start"),
		End:      q.Get("end"),
		LastDays: queryInt(r, "last_days"),
		Year:     queryInt(r, "year"),
		Month:    queryInt(r, "month"),
	}
}

func (h *Handler) incomeReport(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	report, err := h.svc.IncomeReport(r.Context(), claims.AdminID, reportQuery(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, report)
}

func (h *Handler) exportIncomeReport(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	data, err := h.svc.ExportIncomeReport(r.Context(), claims.AdminID, reportQuery(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	filename := fmt.Sprintf("income-report-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(data)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	result, err := h.svc.Dashboard(r.Context(), claims.AdminID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) auditBalances(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	result, err := h.svc.AuditBalances(r.Context(), claims.AdminID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}
