package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"tripjournal/libs/journal"
	"tripjournal/services/journal-stub/internal/http/middleware"
	"tripjournal/services/journal-stub/internal/service"
)

const maxBodyBytes = 32 << 20

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// NewDetailHandler answers every request with status and a {"detail"} body.
func NewDetailHandler(status int, detail string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, status, detail)
	}
}

// writeServiceError maps store errors onto status codes.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var validation *service.ValidationError
	var notFound *service.NotFoundError
	switch {
	case errors.As(err, &validation):
		writeDetail(w, http.StatusUnprocessableEntity, validation.Detail)
	case errors.As(err, &notFound):
		writeDetail(w, http.StatusNotFound, notFound.Error())
	case errors.Is(err, service.ErrUsernameTaken):
		writeDetail(w, http.StatusBadRequest, "Username already registered")
	case errors.Is(err, service.ErrTooManyAttempts):
		writeDetail(w, http.StatusTooManyRequests, "Too many login attempts, try again later")
	case errors.Is(err, service.ErrInvalidCredentials):
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeDetail(w, http.StatusUnauthorized, "Incorrect username or password")
	default:
		logger.Error("request failed", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

func decodeBody(r *http.Request, target interface{}) error {
	return json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(target)
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid id")
		return 0, false
	}
	return id, true
}

func owner(r *http.Request) string {
	username, _ := middleware.UsernameFromContext(r.Context())
	return username
}

// requestBase is the scheme and host the caller used to reach us.
func requestBase(r *http.Request) *url.URL {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}
	return &url.URL{Scheme: scheme, Host: r.Host}
}

func linkTrip(base *url.URL, trip *journal.Trip) {
	for i := range trip.Events {
		linkEvent(base, &trip.Events[i])
	}
}

func linkEvent(base *url.URL, event *journal.Event) {
	for i := range event.Medias {
		linkMedia(base, &event.Medias[i])
	}
}

func linkMedia(base *url.URL, media *journal.Media) {
	if media.URL != nil {
		media.URL = base.ResolveReference(media.URL)
	}
}
