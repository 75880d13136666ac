package handlers

import (
	"net/http"
	"time"

	"github.com/voxgate/voxgate/internal/audit"
)

type AdminHandler struct {
	auditSvc *audit.Service
}

func NewAdminHandler(auditSvc *audit.Service) *AdminHandler {
	return &AdminHandler{auditSvc: auditSvc}
}

// Usage aggregates tool calls per provider and model.
func (h *AdminHandler) Usage(w http.ResponseWriter, r *http.Request) {
	if h.auditSvc == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "usage tracking unavailable"})
		return
	}

	var start, end *time.Time
	if s := r.URL.Query().Get("start"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			start = &t
		}
	}
	if s := r.URL.Query().Get("end"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			end = &t
		}
	}

	summary, err := h.auditSvc.GetUsageSummary(r.Context(), start, end)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"usage": summary})
}
