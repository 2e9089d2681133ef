package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/calebmoss/promptvault/internal/library"
)

type ShareHandler struct {
	svc *library.Service
}

func NewShareHandler(svc *library.Service) *ShareHandler {
	return &ShareHandler{svc: svc}
}

// Resolve renders the read-only view behind a share reference: the prompt
// plus its active version and word count. No signature, no expiry.
func (h *ShareHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	shareID := chi.URLParam(r, "shareID")

	p, v, err := h.svc.Share(r.Context(), shareID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"prompt":         p,
		"active_version": v,
		"word_count":     library.WordCount(v.Content),
	})
}
