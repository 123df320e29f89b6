package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"campuscare-admin/internal/reconcile"
	"campuscare-admin/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// commandError maps a controller error to a status code and user-facing text.
func commandError(err error) (int, string) {
	switch {
	case errors.Is(err, reconcile.ErrInvalidStatus):
		return http.StatusBadRequest, "invalid status"
	case errors.Is(err, reconcile.ErrNotFound), errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrInvalidID):
		return http.StatusNotFound, "complaint not found"
	case errors.Is(err, reconcile.ErrUpdateFailed):
		return http.StatusBadGateway, "Failed to update. Please try again."
	case errors.Is(err, reconcile.ErrInsertFailed):
		return http.StatusBadGateway, "Failed to add sample. Make sure the database is enabled."
	case errors.Is(err, reconcile.ErrDisposed):
		return http.StatusServiceUnavailable, "surface closed"
	}
	return http.StatusInternalServerError, "internal server error"
}
