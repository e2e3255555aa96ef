package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"tripjournal/libs/journal"
	appconfig "tripjournal/services/journalctl/internal/config"
)

// ErrUsage marks malformed command lines.
var ErrUsage = errors.New("usage")

// Usage lists the supported commands.
const Usage = `usage: journalctl [flags] <command> [args]

commands:
  register
  trips
  trip <id>
  create-trip <name> <start> <end>
  delete-trip <id>
  create-event <trip-id> <name> <date> [lat lon]
  delete-event <id>
  upload-media <event-id> <file>
  delete-media <id>

dates are RFC 3339 (2024-06-01T08:00:00Z) or plain days (2024-06-01)`

// action performs a parsed command once the client is logged in.
type action func(ctx context.Context) (any, error)

type command struct {
	minArgs, maxArgs int
	parse            func(a *App, args []string) (action, error)
}

var commands = map[string]command{
	"register":     {0, 0, parseRegister},
	"trips":        {0, 0, parseTrips},
	"trip":         {1, 1, parseTrip},
	"create-trip":  {3, 3, parseCreateTrip},
	"delete-trip":  {1, 1, parseDeleteTrip},
	"create-event": {3, 5, parseCreateEvent},
	"delete-event": {1, 1, parseDeleteEvent},
	"upload-media": {2, 2, parseUploadMedia},
	"delete-media": {1, 1, parseDeleteMedia},
}

// App runs one journalctl command against the journal service.
type App struct {
	cfg     *appconfig.Config
	service journal.JournalService
	out     io.Writer
	logger  *zap.Logger
}

// New builds an App talking to cfg.BaseURL.
func New(cfg *appconfig.Config, logger *zap.Logger, out io.Writer) *App {
	client := journal.NewClient(cfg.BaseURL, journal.NewDefaultHTTPClient(cfg.HTTPTimeout), logger)
	return NewWithService(cfg, client, logger, out)
}

// NewWithService builds an App around an existing service implementation.
func NewWithService(cfg *appconfig.Config, service journal.JournalService, logger *zap.Logger, out io.Writer) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{cfg: cfg, service: service, out: out, logger: logger}
}

// Run executes args[0] with the remaining arguments and prints the result
// as JSON.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", ErrUsage)
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
	rest := args[1:]
	if len(rest) < cmd.minArgs || len(rest) > cmd.maxArgs {
		return fmt.Errorf("%w: wrong number of arguments for %s", ErrUsage, args[0])
	}
	run, err := cmd.parse(a, rest)
	if err != nil {
		return err
	}
	if err := a.cfg.RequireCredentials(); err != nil {
		return err
	}

	sub := a.service.Subscribe()
	watchCtx, stopWatch := context.WithCancel(ctx)
	watched := make(chan struct{})
	go func() {
		defer close(watched)
		a.watchSession(watchCtx, sub)
	}()
	defer func() {
		stopWatch()
		<-watched
	}()

	if args[0] != "register" {
		if _, err := a.service.LogIn(ctx, a.cfg.Username, a.cfg.Password); err != nil {
			return err
		}
	}

	result, err := run(ctx)
	if err != nil {
		return err
	}
	return a.print(result)
}

// watchSession logs every authentication change until ctx is done, then
// flushes the value still waiting in the mailbox.
func (a *App) watchSession(ctx context.Context, sub *journal.Subscription) {
	defer sub.Close()
	for {
		select {
		case <-ctx.Done():
			select {
			case authenticated, ok := <-sub.C:
				if ok {
					a.logAuth(authenticated)
				}
			default:
			}
			return
		case authenticated, ok := <-sub.C:
			if !ok {
				return
			}
			a.logAuth(authenticated)
		}
	}
}

func (a *App) logAuth(authenticated bool) {
	a.logger.Debug("journal authentication changed", zap.Bool("authenticated", authenticated))
}

func (a *App) print(result any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

type deleted struct {
	Deleted string `json:"deleted"`
	ID      int    `json:"id"`
}

func parseRegister(a *App, _ []string) (action, error) {
	return func(ctx context.Context) (any, error) {
		return a.service.Register(ctx, a.cfg.Username, a.cfg.Password)
	}, nil
}

func parseTrips(a *App, _ []string) (action, error) {
	return func(ctx context.Context) (any, error) {
		return a.service.GetTrips(ctx)
	}, nil
}

func parseTrip(a *App, args []string) (action, error) {
	id, err := parseID("trip id", args[0])
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context) (any, error) {
		return a.service.GetTrip(ctx, id)
	}, nil
}

func parseCreateTrip(a *App, args []string) (action, error) {
	start, err := parseDate("start", args[1])
	if err != nil {
		return nil, err
	}
	end, err := parseDate("end", args[2])
	if err != nil {
		return nil, err
	}
	trip := journal.TripCreate{Name: args[0], StartDate: start, EndDate: end}
	return func(ctx context.Context) (any, error) {
		return a.service.CreateTrip(ctx, trip)
	}, nil
}

func parseDeleteTrip(a *App, args []string) (action, error) {
	return removal(args[0], "trip", a.service.DeleteTrip)
}

func parseCreateEvent(a *App, args []string) (action, error) {
	if len(args) == 4 {
		return nil, fmt.Errorf("%w: latitude and longitude go together", ErrUsage)
	}
	tripID, err := parseID("trip id", args[0])
	if err != nil {
		return nil, err
	}
	date, err := parseDate("date", args[2])
	if err != nil {
		return nil, err
	}
	event := journal.EventCreate{TripID: tripID, Name: args[1], Date: date}
	if len(args) == 5 {
		lat, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad latitude %q", ErrUsage, args[3])
		}
		lon, err := strconv.ParseFloat(args[4], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad longitude %q", ErrUsage, args[4])
		}
		event.Location = &journal.Location{Latitude: lat, Longitude: lon}
	}
	return func(ctx context.Context) (any, error) {
		return a.service.CreateEvent(ctx, event)
	}, nil
}

func parseDeleteEvent(a *App, args []string) (action, error) {
	return removal(args[0], "event", a.service.DeleteEvent)
}

func parseUploadMedia(a *App, args []string) (action, error) {
	eventID, err := parseID("event id", args[0])
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(args[1])
	if err != nil {
		return nil, err
	}
	media := journal.MediaCreate{EventID: eventID, Base64Data: data}
	return func(ctx context.Context) (any, error) {
		return a.service.CreateMedia(ctx, media)
	}, nil
}

func parseDeleteMedia(a *App, args []string) (action, error) {
	return removal(args[0], "media", a.service.DeleteMedia)
}

func removal(raw, kind string, remove func(context.Context, int) error) (action, error) {
	id, err := parseID(kind+" id", raw)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context) (any, error) {
		if err := remove(ctx, id); err != nil {
			return nil, err
		}
		return deleted{Deleted: kind, ID: id}, nil
	}, nil
}

func parseID(name, raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", ErrUsage, name, raw)
	}
	return id, nil
}

func parseDate(name, raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %s must be a date, got %q", ErrUsage, name, raw)
}
