package handlers

import (
	"net/http"
	"strconv"

	"github.com/calebmoss/promptvault/internal/library"
)

type TagHandler struct {
	svc *library.Service
}

func NewTagHandler(svc *library.Service) *TagHandler {
	return &TagHandler{svc: svc}
}

func (h *TagHandler) Trending(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 10
	}

	tags, err := h.svc.TrendingTags(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tags": tags})
}
