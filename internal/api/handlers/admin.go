package handlers

import (
	"net/http"
	"strconv"

	"github.com/calebmoss/promptvault/internal/audit"
)

type AdminHandler struct {
	audit *audit.Recorder
}

func NewAdminHandler(rec *audit.Recorder) *AdminHandler {
	return &AdminHandler{audit: rec}
}

func (h *AdminHandler) AuditLog(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 50
	}

	records, err := h.audit.Recent(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"audit_log": records, "count": len(records)})
}
