package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"go.uber.org/zap"

	"tripjournal/libs/journal"
	"tripjournal/services/journal-stub/internal/password"
)

var (
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("journal: username already registered")
	// ErrInvalidCredentials represents login failure.
	ErrInvalidCredentials = errors.New("journal: invalid credentials")
	// ErrNotFound is matched by every NotFoundError.
	ErrNotFound = errors.New("journal: not found")
	// ErrValidation is matched by every ValidationError.
	ErrValidation = errors.New("journal: validation failed")
)

// NotFoundError names the kind of record that is missing or owned by
// someone else.
type NotFoundError struct {
	Kind string
}

func (e *NotFoundError) Error() string { return e.Kind + " not found" }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError carries the message shown to the caller.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string { return e.Detail }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// MediaContent is the stored payload of an upload.
type MediaContent struct {
	Data        []byte
	ContentType string
}

type tripRecord struct {
	owner  string
	trip   journal.Trip
	events []int
}

type eventRecord struct {
	owner  string
	tripID int
	event  journal.Event
	medias []int
}

type mediaRecord struct {
	owner   string
	eventID int
	content MediaContent
}

// JournalService keeps accounts, trips, events and media in memory.
// Every record belongs to the user who created it and is invisible to
// everyone else.
type JournalService struct {
	hasher password.Hasher
	logger *zap.Logger

	mu        sync.RWMutex
	accounts  map[string]string
	trips     map[int]*tripRecord
	tripOrder []int
	events    map[int]*eventRecord
	media     map[int]*mediaRecord
	nextID    struct{ trip, event, media int }
}

// NewJournalService builds an empty store.
func NewJournalService(hasher password.Hasher, logger *zap.Logger) *JournalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JournalService{
		hasher:   hasher,
		logger:   logger,
		accounts: make(map[string]string),
		trips:    make(map[int]*tripRecord),
		events:   make(map[int]*eventRecord),
		media:    make(map[int]*mediaRecord),
	}
}

// CanonicalUsername is the form a username is stored, checked and owned under.
func CanonicalUsername(raw string) string {
	return strings.TrimSpace(raw)
}

// Register creates an account and returns its canonical username.
func (s *JournalService) Register(ctx context.Context, creds journal.Credentials) (string, error) {
	username := CanonicalUsername(creds.Username)
	if username == "" || creds.Password == "" {
		return "", &ValidationError{Detail: "Username and password are required"}
	}

	digest, err := s.hasher.Hash(creds.Password)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[username]; exists {
		return "", ErrUsernameTaken
	}
	s.accounts[username] = digest

	s.logger.Info("user registered", zap.String("username", username))
	return username, nil
}

// Authenticate checks a username and password pair and returns the
// canonical username the account is stored under.
func (s *JournalService) Authenticate(ctx context.Context, username, pass string) (string, error) {
	username = CanonicalUsername(username)

	s.mu.RLock()
	digest, ok := s.accounts[username]
	s.mu.RUnlock()
	if !ok || pass == "" {
		return "", ErrInvalidCredentials
	}

	if err := s.hasher.Verify(digest, pass); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	return username, nil
}

// CreateTrip stores a new trip without events.
func (s *JournalService) CreateTrip(ctx context.Context, owner string, in journal.TripCreate) (journal.Trip, error) {
	if err := validateTrip(in); err != nil {
		return journal.Trip{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID.trip++
	rec := &tripRecord{
		owner: owner,
		trip: journal.Trip{
			ID:        s.nextID.trip,
			Name:      strings.TrimSpace(in.Name),
			StartDate: in.StartDate,
			EndDate:   in.EndDate,
		},
	}
	s.trips[rec.trip.ID] = rec
	s.tripOrder = append(s.tripOrder, rec.trip.ID)

	s.logger.Debug("trip created", zap.String("owner", owner), zap.Int("trip_id", rec.trip.ID))
	return s.assembleTrip(rec), nil
}

// ListTrips returns the owner's trips in creation order.
func (s *JournalService) ListTrips(ctx context.Context, owner string) []journal.Trip {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trips := []journal.Trip{}
	for _, id := range s.tripOrder {
		if rec := s.trips[id]; rec.owner == owner {
			trips = append(trips, s.assembleTrip(rec))
		}
	}
	return trips
}

// GetTrip returns one trip with its events.
func (s *JournalService) GetTrip(ctx context.Context, owner string, id int) (journal.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, err := s.ownedTrip(owner, id)
	if err != nil {
		return journal.Trip{}, err
	}
	return s.assembleTrip(rec), nil
}

// UpdateTrip replaces the name and dates of a trip.
func (s *JournalService) UpdateTrip(ctx context.Context, owner string, id int, in journal.TripUpdate) (journal.Trip, error) {
	if err := validateTrip(journal.TripCreate(in)); err != nil {
		return journal.Trip{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.ownedTrip(owner, id)
	if err != nil {
		return journal.Trip{}, err
	}
	rec.trip.Name = strings.TrimSpace(in.Name)
	rec.trip.StartDate = in.StartDate
	rec.trip.EndDate = in.EndDate
	return s.assembleTrip(rec), nil
}

// DeleteTrip removes a trip together with its events and media.
func (s *JournalService) DeleteTrip(ctx context.Context, owner string, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.ownedTrip(owner, id)
	if err != nil {
		return err
	}
	for _, eventID := range rec.events {
		s.dropEvent(eventID)
	}
	delete(s.trips, id)
	s.tripOrder = without(s.tripOrder, id)

	s.logger.Debug("trip deleted", zap.String("owner", owner), zap.Int("trip_id", id), zap.Int("events", len(rec.events)))
	return nil
}

// CreateEvent appends an event to one of the owner's trips.
func (s *JournalService) CreateEvent(ctx context.Context, owner string, in journal.EventCreate) (journal.Event, error) {
	if err := validateEvent(in.Name, in.Location); err != nil {
		return journal.Event{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	trip, err := s.ownedTrip(owner, in.TripID)
	if err != nil {
		return journal.Event{}, err
	}

	s.nextID.event++
	rec := &eventRecord{
		owner:  owner,
		tripID: trip.trip.ID,
		event: journal.Event{
			ID:                     s.nextID.event,
			Name:                   strings.TrimSpace(in.Name),
			Note:                   in.Note,
			Date:                   in.Date,
			Location:               in.Location,
			TransitionFromPrevious: in.TransitionFromPrevious,
		},
	}
	s.events[rec.event.ID] = rec
	trip.events = append(trip.events, rec.event.ID)
	return s.assembleEvent(rec), nil
}

// UpdateEvent replaces every field of an event; absent optionals are cleared.
func (s *JournalService) UpdateEvent(ctx context.Context, owner string, id int, in journal.EventUpdate) (journal.Event, error) {
	if err := validateEvent(in.Name, in.Location); err != nil {
		return journal.Event{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.ownedEvent(owner, id)
	if err != nil {
		return journal.Event{}, err
	}
	rec.event.Name = strings.TrimSpace(in.Name)
	rec.event.Note = in.Note
	rec.event.Date = in.Date
	rec.event.Location = in.Location
	rec.event.TransitionFromPrevious = in.TransitionFromPrevious
	return s.assembleEvent(rec), nil
}

// DeleteEvent removes an event and its media.
func (s *JournalService) DeleteEvent(ctx context.Context, owner string, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.ownedEvent(owner, id)
	if err != nil {
		return err
	}
	if trip, ok := s.trips[rec.tripID]; ok {
		trip.events = without(trip.events, id)
	}
	s.dropEvent(id)
	return nil
}

// CreateMedia attaches uploaded bytes to an event.
func (s *JournalService) CreateMedia(ctx context.Context, owner string, in journal.MediaCreate) (journal.Media, error) {
	if len(in.Base64Data) == 0 {
		return journal.Media{}, &ValidationError{Detail: "Media data is empty"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	event, err := s.ownedEvent(owner, in.EventID)
	if err != nil {
		return journal.Media{}, err
	}

	s.nextID.media++
	id := s.nextID.media
	s.media[id] = &mediaRecord{
		owner:   owner,
		eventID: event.event.ID,
		content: MediaContent{
			Data:        append([]byte(nil), in.Base64Data...),
			ContentType: http.DetectContentType(in.Base64Data),
		},
	}
	event.medias = append(event.medias, id)

	s.logger.Debug("media stored", zap.Int("media_id", id), zap.Int("event_id", event.event.ID), zap.Int("bytes", len(in.Base64Data)))
	return mediaRef(id), nil
}

// DeleteMedia removes one upload.
func (s *JournalService) DeleteMedia(ctx context.Context, owner string, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.media[id]
	if !ok || rec.owner != owner {
		return &NotFoundError{Kind: "Media"}
	}
	if event, ok := s.events[rec.eventID]; ok {
		event.medias = without(event.medias, id)
	}
	delete(s.media, id)
	return nil
}

// MediaContent returns the stored bytes of an upload. Content is served
// without ownership checks so media URLs work as plain links.
func (s *JournalService) MediaContent(ctx context.Context, id int) (MediaContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.media[id]
	if !ok {
		return MediaContent{}, &NotFoundError{Kind: "Media"}
	}
	return rec.content, nil
}

func (s *JournalService) ownedTrip(owner string, id int) (*tripRecord, error) {
	rec, ok := s.trips[id]
	if !ok || rec.owner != owner {
		return nil, &NotFoundError{Kind: "Trip"}
	}
	return rec, nil
}

func (s *JournalService) ownedEvent(owner string, id int) (*eventRecord, error) {
	rec, ok := s.events[id]
	if !ok || rec.owner != owner {
		return nil, &NotFoundError{Kind: "Event"}
	}
	return rec, nil
}

// dropEvent deletes an event and its media; the caller holds mu and
// detaches the event from its trip.
func (s *JournalService) dropEvent(id int) {
	rec, ok := s.events[id]
	if !ok {
		return
	}
	for _, mediaID := range rec.medias {
		delete(s.media, mediaID)
	}
	delete(s.events, id)
}

func (s *JournalService) assembleTrip(rec *tripRecord) journal.Trip {
	trip := rec.trip
	trip.Events = make([]journal.Event, 0, len(rec.events))
	for _, id := range rec.events {
		if event, ok := s.events[id]; ok {
			trip.Events = append(trip.Events, s.assembleEvent(event))
		}
	}
	return trip
}

func (s *JournalService) assembleEvent(rec *eventRecord) journal.Event {
	event := rec.event
	event.Medias = make([]journal.Media, 0, len(rec.medias))
	for _, id := range rec.medias {
		event.Medias = append(event.Medias, mediaRef(id))
	}
	return event
}

// MediaPath is the server-relative location of an upload's bytes.
func MediaPath(id int) string {
	return fmt.Sprintf("/media/%d/content", id)
}

func mediaRef(id int) journal.Media {
	return journal.Media{ID: id, URL: &url.URL{Path: MediaPath(id)}}
}

func validateTrip(in journal.TripCreate) error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Detail: "Trip name is required"}
	}
	if in.EndDate.Before(in.StartDate) {
		return &ValidationError{Detail: "End date must not be before start date"}
	}
	return nil
}

func validateEvent(name string, loc *journal.Location) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Detail: "Event name is required"}
	}
	if loc != nil && (loc.Latitude < -90 || loc.Latitude > 90 || loc.Longitude < -180 || loc.Longitude > 180) {
		return &ValidationError{Detail: "Location is out of range"}
	}
	return nil
}

func without(ids []int, id int) []int {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
