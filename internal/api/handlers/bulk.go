package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/calebmoss/promptvault/internal/library"
)

type BulkHandler struct {
	svc *library.Service
}

func NewBulkHandler(svc *library.Service) *BulkHandler {
	return &BulkHandler{svc: svc}
}

func (h *BulkHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs        []uuid.UUID `json:"ids"`
		CategoryID uuid.UUID   `json:"category_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.svc.BulkMove(r.Context(), req.IDs, req.CategoryID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "moved", "count": len(req.IDs)})
}

func (h *BulkHandler) AddTags(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs  []uuid.UUID `json:"ids"`
		Tags []string    `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.svc.BulkAddTags(r.Context(), req.IDs, req.Tags); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "tagged", "count": len(req.IDs)})
}

func (h *BulkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []uuid.UUID `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.svc.BulkDelete(r.Context(), req.IDs); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "deleted", "count": len(req.IDs)})
}
