package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"clientdesk/internal/store"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// respondStoreError maps the store's closed error set onto API statuses:
// duplicate email 400, missing client 404, anything else 500.
func respondStoreError(w http.ResponseWriter, lg *zap.SugaredLogger, err error) {
	switch {
	case errors.Is(err, store.ErrEmailTaken):
		respondError(w, http.StatusBadRequest, "Email already exists")
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "Client not found")
	default:
		lg.Errorw("storage failure", "error", err)
		respondError(w, http.StatusInternalServerError, "unexpected error")
	}
}
