package journal

import "context"

// JournalService is everything a presentation layer can ask of the journal.
type JournalService interface {
	IsAuthenticated() bool
	Subscribe() *Subscription

	Register(ctx context.Context, username, password string) (Token, error)
	LogIn(ctx context.Context, username, password string) (Token, error)
	LogOut()

	CreateTrip(ctx context.Context, trip TripCreate) (Trip, error)
	GetTrips(ctx context.Context) ([]Trip, error)
	GetTrip(ctx context.Context, id int) (Trip, error)
	UpdateTrip(ctx context.Context, id int, trip TripUpdate) (Trip, error)
	DeleteTrip(ctx context.Context, id int) error

	CreateEvent(ctx context.Context, event EventCreate) (Event, error)
	UpdateEvent(ctx context.Context, id int, event EventUpdate) (Event, error)
	DeleteEvent(ctx context.Context, id int) error

	CreateMedia(ctx context.Context, media MediaCreate) (Media, error)
	DeleteMedia(ctx context.Context, id int) error
}

var (
	_ JournalService = (*Client)(nil)
	_ JournalService = Unimplemented{}
)

// Unimplemented is a JournalService whose calls all fail with
// ErrUnimplemented. It reports itself as logged out.
type Unimplemented struct{}

func (Unimplemented) IsAuthenticated() bool { return false }

// Subscribe returns a subscription on a private session that never changes.
func (Unimplemented) Subscribe() *Subscription { return NewSession().Subscribe() }

func (Unimplemented) Register(context.Context, string, string) (Token, error) {
	return Token{}, ErrUnimplemented
}

func (Unimplemented) LogIn(context.Context, string, string) (Token, error) {
	return Token{}, ErrUnimplemented
}

func (Unimplemented) LogOut() {}

func (Unimplemented) CreateTrip(context.Context, TripCreate) (Trip, error) {
	return Trip{}, ErrUnimplemented
}

func (Unimplemented) GetTrips(context.Context) ([]Trip, error) { return nil, ErrUnimplemented }

func (Unimplemented) GetTrip(context.Context, int) (Trip, error) { return Trip{}, ErrUnimplemented }

func (Unimplemented) UpdateTrip(context.Context, int, TripUpdate) (Trip, error) {
	return Trip{}, ErrUnimplemented
}

func (Unimplemented) DeleteTrip(context.Context, int) error { return ErrUnimplemented }

func (Unimplemented) CreateEvent(context.Context, EventCreate) (Event, error) {
	return Event{}, ErrUnimplemented
}

func (Unimplemented) UpdateEvent(context.Context, int, EventUpdate) (Event, error) {
	return Event{}, ErrUnimplemented
}

func (Unimplemented) DeleteEvent(context.Context, int) error { return ErrUnimplemented }

func (Unimplemented) CreateMedia(context.Context, MediaCreate) (Media, error) {
	return Media{}, ErrUnimplemented
}

func (Unimplemented) DeleteMedia(context.Context, int) error { return ErrUnimplemented }
