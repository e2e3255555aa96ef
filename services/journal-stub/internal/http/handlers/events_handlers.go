package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"tripjournal/libs/journal"
	"tripjournal/services/journal-stub/internal/service"
)

// NewCreateEventHandler handles POST /events.
func NewCreateEventHandler(store *service.JournalService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload journal.EventCreate
		if err := decodeBody(r, &payload); err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
			return
		}

		event, err := store.CreateEvent(r.Context(), owner(r), payload)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		linkEvent(requestBase(r), &event)
		writeJSON(w, http.StatusOK, event)
	}
}

// NewUpdateEventHandler handles PUT /events/{id}.
func NewUpdateEventHandler(store *service.JournalService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var payload journal.EventUpdate
		if err := decodeBody(r, &payload); err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
			return
		}

		event, err := store.UpdateEvent(r.Context(), owner(r), id, payload)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		linkEvent(requestBase(r), &event)
		writeJSON(w, http.StatusOK, event)
	}
}

// NewDeleteEventHandler handles DELETE /events/{id}.
func NewDeleteEventHandler(store *service.JournalService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		if err := store.DeleteEvent(r.Context(), owner(r), id); err != nil {
			writeServiceError(w, logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
