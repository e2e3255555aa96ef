package handlers

import (
	"net/http"
	"time"
)

// NewHealthHandler returns GET /health handler reporting uptime since started.
func NewHealthHandler(started time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"uptime": time.Since(started).Truncate(time.Second).String(),
		})
	}
}
