package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/calebmoss/promptvault/internal/library"
	"github.com/calebmoss/promptvault/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError maps the library's error kinds onto responses that let the
// caller tell "nothing happened" from "partially happened".
func writeError(w http.ResponseWriter, err error) {
	var vErr *library.ValidationError
	if errors.As(err, &vErr) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": vErr.Error()})
		return
	}

	var pErr *library.PartialError
	if errors.As(err, &pErr) {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":     pErr.Error(),
			"partial":   true,
			"applied":   pErr.Applied,
			"attempted": pErr.Attempted,
		})
		return
	}

	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	if errors.Is(err, library.ErrNoPreviousVersion) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": library.ErrNoPreviousVersion.Error()})
		return
	}

	var iErr *library.IntegrityError
	if errors.As(err, &iErr) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": iErr.Error()})
		return
	}

	var sErr *library.StoreError
	if errors.As(err, &sErr) {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": sErr.Error()})
		return
	}

	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}
