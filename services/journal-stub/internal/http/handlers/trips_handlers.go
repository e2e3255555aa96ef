package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"tripjournal/libs/journal"
	"tripjournal/services/journal-stub/internal/service"
)

// NewCreateTripHandler handles POST /trips.
func NewCreateTripHandler(store *service.JournalService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload journal.TripCreate
		if err := decodeBody(r, &payload); err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
			return
		}

		trip, err := store.CreateTrip(r.Context(), owner(r), payload)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		linkTrip(requestBase(r), &trip)
		writeJSON(w, http.StatusOK, trip)
	}
}

// NewListTripsHandler handles GET /trips.
func NewListTripsHandler(store *service.JournalService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trips := store.ListTrips(r.Context(), owner(r))
		base := requestBase(r)
		for i := range trips {
			linkTrip(base, &trips[i])
		}
		writeJSON(w, http.StatusOK, trips)
	}
}

// NewGetTripHandler handles GET /trips/{id}.
func NewGetTripHandler(store *service.JournalService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		trip, err := store.GetTrip(r.Context(), owner(r), id)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		linkTrip(requestBase(r), &trip)
		writeJSON(w, http.StatusOK, trip)
	}
}

// NewUpdateTripHandler handles PUT /trips/{id}.
func NewUpdateTripHandler(store *service.JournalService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var payload journal.TripUpdate
		if err := decodeBody(r, &payload); err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
			return
		}

		trip, err := store.UpdateTrip(r.Context(), owner(r), id, payload)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		linkTrip(requestBase(r), &trip)
		writeJSON(w, http.StatusOK, trip)
	}
}

// NewDeleteTripHandler handles DELETE /trips/{id}.
func NewDeleteTripHandler(store *service.JournalService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		if err := store.DeleteTrip(r.Context(), owner(r), id); err != nil {
			writeServiceError(w, logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
