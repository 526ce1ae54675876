// Package handlers holds the chi HTTP surface. Each handler group depends
// on a narrow store interface so tests can substitute mocks.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/TareSY/MyBacklog-sub000/internal/logger"
	"github.com/TareSY/MyBacklog-sub000/internal/store"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeStoreError maps the store's sentinel errors onto the HTTP error
// taxonomy: 404 for missing targets, 403 for ownership and friendship
// failures, 409 for data-dependent conflicts, 500 otherwise.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrNotOwner):
		writeError(w, http.StatusForbidden, "not owned by caller")
	case errors.Is(err, store.ErrNotFriends):
		writeError(w, http.StatusForbidden, "not friends")
	case errors.Is(err, store.ErrDuplicateTitle):
		writeError(w, http.StatusConflict, "duplicate title in primary list")
	case errors.Is(err, store.ErrSlugTaken):
		writeError(w, http.StatusConflict, "share slug already taken")
	case errors.Is(err, store.ErrDuplicateRequest):
		writeError(w, http.StatusConflict, "friend request already exists")
	case errors.Is(err, store.ErrRequestResolved):
		writeError(w, http.StatusConflict, "friend request already resolved")
	default:
		logger.Log.WithError(err).Error("request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
