package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tripjournal/libs/journal"
	"tripjournal/services/journal-stub/internal/password"
)

func newTestService(t *testing.T) *JournalService {
	t.Helper()
	return NewJournalService(password.NewBcryptHasher(bcrypt.MinCost), nil)
}

func sampleTrip(name string) journal.TripCreate {
	start := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	return journal.TripCreate{Name: name, StartDate: start, EndDate: start.Add(72 * time.Hour)}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	username, err := svc.Register(ctx, journal.Credentials{Username: " alice ", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, "alice", username)

	_, err = svc.Register(ctx, journal.Credentials{Username: "alice", Password: "other"})
	require.ErrorIs(t, err, ErrUsernameTaken)
	_, err = svc.Register(ctx, journal.Credentials{Username: " ", Password: "pw"})
	require.ErrorIs(t, err, ErrValidation)

	for _, raw := range []string{"alice", "  alice\t"} {
		owner, err := svc.Authenticate(ctx, raw, "pw")
		require.NoError(t, err, "username %q", raw)
		require.Equal(t, "alice", owner)
	}

	_, err = svc.Authenticate(ctx, "alice", "nope")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "bob", "pw")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "alice", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTripsAreScopedAndOrdered(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	first, err := svc.CreateTrip(ctx, "alice", sampleTrip("Alps"))
	require.NoError(t, err)
	_, err = svc.CreateTrip(ctx, "bob", sampleTrip("Coast"))
	require.NoError(t, err)
	second, err := svc.CreateTrip(ctx, "alice", sampleTrip("Lakes"))
	require.NoError(t, err)

	trips := svc.ListTrips(ctx, "alice")
	require.Len(t, trips, 2)
	require.Equal(t, []int{first.ID, second.ID}, []int{trips[0].ID, trips[1].ID})
	require.NotNil(t, trips[0].Events)

	require.Empty(t, svc.ListTrips(ctx, "carol"))
	require.NotNil(t, svc.ListTrips(ctx, "carol"))

	_, err = svc.GetTrip(ctx, "bob", first.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.EqualError(t, err, "Trip not found")
}

func TestTripValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.CreateTrip(ctx, "alice", sampleTrip("  "))
	require.ErrorIs(t, err, ErrValidation)

	bad := sampleTrip("Backwards")
	bad.EndDate = bad.StartDate.Add(-time.Hour)
	_, err = svc.CreateTrip(ctx, "alice", bad)
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateTripKeepsEvents(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	trip, err := svc.CreateTrip(ctx, "alice", sampleTrip("Alps"))
	require.NoError(t, err)
	_, err = svc.CreateEvent(ctx, "alice", journal.EventCreate{TripID: trip.ID, Name: "Pass", Date: trip.StartDate})
	require.NoError(t, err)

	update := journal.TripUpdate(sampleTrip("Alps again"))
	updated, err := svc.UpdateTrip(ctx, "alice", trip.ID, update)
	require.NoError(t, err)
	require.Equal(t, "Alps again", updated.Name)
	require.Len(t, updated.Events, 1)

	_, err = svc.UpdateTrip(ctx, "bob", trip.ID, update)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestEventLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	trip, err := svc.CreateTrip(ctx, "alice", sampleTrip("Alps"))
	require.NoError(t, err)

	note := "windy"
	created, err := svc.CreateEvent(ctx, "alice", journal.EventCreate{
		TripID:   trip.ID,
		Name:     "Pass",
		Note:     &note,
		Date:     trip.StartDate,
		Location: &journal.Location{Latitude: 46.5, Longitude: 8.5},
	})
	require.NoError(t, err)
	require.Equal(t, &note, created.Note)
	require.Empty(t, created.Medias)

	_, err = svc.CreateEvent(ctx, "bob", journal.EventCreate{TripID: trip.ID, Name: "Sneaky", Date: trip.StartDate})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.CreateEvent(ctx, "alice", journal.EventCreate{TripID: trip.ID, Name: "Far", Date: trip.StartDate, Location: &journal.Location{Latitude: 91}})
	require.ErrorIs(t, err, ErrValidation)

	updated, err := svc.UpdateEvent(ctx, "alice", created.ID, journal.EventUpdate{Name: "Pass summit", Date: trip.StartDate})
	require.NoError(t, err)
	require.Nil(t, updated.Note, "absent optionals are cleared")
	require.Nil(t, updated.Location)

	require.NoError(t, svc.DeleteEvent(ctx, "alice", created.ID))
	require.ErrorIs(t, svc.DeleteEvent(ctx, "alice", created.ID), ErrNotFound)

	got, err := svc.GetTrip(ctx, "alice", trip.ID)
	require.NoError(t, err)
	require.Empty(t, got.Events)
}

func TestMediaAndCascadingDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	trip, err := svc.CreateTrip(ctx, "alice", sampleTrip("Alps"))
	require.NoError(t, err)
	event, err := svc.CreateEvent(ctx, "alice", journal.EventCreate{TripID: trip.ID, Name: "Pass", Date: trip.StartDate})
	require.NoError(t, err)

	media, err := svc.CreateMedia(ctx, "alice", journal.MediaCreate{EventID: event.ID, Base64Data: []byte("hello")})
	require.NoError(t, err)
	require.Equal(t, MediaPath(media.ID), media.URL.String())

	content, err := svc.MediaContent(ctx, media.ID)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), content.Data)
	require.Equal(t, "text/plain; charset=utf-8", content.ContentType)

	_, err = svc.CreateMedia(ctx, "alice", journal.MediaCreate{EventID: event.ID})
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.CreateMedia(ctx, "bob", journal.MediaCreate{EventID: event.ID, Base64Data: []byte("x")})
	require.ErrorIs(t, err, ErrNotFound)

	got, err := svc.GetTrip(ctx, "alice", trip.ID)
	require.NoError(t, err)
	require.Len(t, got.Events[0].Medias, 1)

	require.ErrorIs(t, svc.DeleteMedia(ctx, "bob", media.ID), ErrNotFound)
	require.NoError(t, svc.DeleteTrip(ctx, "alice", trip.ID))

	_, err = svc.MediaContent(ctx, media.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, svc.DeleteEvent(ctx, "alice", event.ID), ErrNotFound)
	require.Empty(t, svc.ListTrips(ctx, "alice"))
}
