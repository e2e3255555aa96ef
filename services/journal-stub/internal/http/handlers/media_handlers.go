package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"tripjournal/libs/journal"
	"tripjournal/services/journal-stub/internal/service"
)

// NewCreateMediaHandler handles POST /media.
func NewCreateMediaHandler(store *service.JournalService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload journal.MediaCreate
		if err := decodeBody(r, &payload); err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
			return
		}

		media, err := store.CreateMedia(r.Context(), owner(r), payload)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		linkMedia(requestBase(r), &media)
		writeJSON(w, http.StatusOK, media)
	}
}

// NewDeleteMediaHandler handles DELETE /media/{id}.
func NewDeleteMediaHandler(store *service.JournalService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		if err := store.DeleteMedia(r.Context(), owner(r), id); err != nil {
			writeServiceError(w, logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// NewMediaContentHandler handles GET /media/{id}/content.
func NewMediaContentHandler(store *service.JournalService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		content, err := store.MediaContent(r.Context(), id)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		w.Header().Set("Content-Type", content.ContentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(content.Data)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(content.Data)
	}
}
