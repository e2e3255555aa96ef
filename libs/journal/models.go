package journal

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
)

// Token is returned when the user authenticates.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (t *Token) UnmarshalJSON(data []byte) error {
	var wire struct {
		AccessToken *string `json:"access_token"`
		TokenType   *string `json:"token_type"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if err := requireFields(map[string]bool{
		"access_token": wire.AccessToken != nil,
		"token_type":   wire.TokenType != nil,
	}); err != nil {
		return err
	}
	*t = Token{AccessToken: *wire.AccessToken, TokenType: *wire.TokenType}
	return nil
}

// Trip is the top-level aggregate; events belong to a trip and keep the
// order the server returned them in.
type Trip struct {
	ID        int
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Events    []Event
}

type tripWire struct {
	ID        *int       `json:"id"`
	Name      *string    `json:"name"`
	StartDate *timestamp `json:"start_date"`
	EndDate   *timestamp `json:"end_date"`
	Events    []Event    `json:"events"`
}

func (t Trip) MarshalJSON() ([]byte, error) {
	start, end := timestamp(t.StartDate), timestamp(t.EndDate)
	events := t.Events
	if events == nil {
		events = []Event{}
	}
	return json.Marshal(tripWire{ID: &t.ID, Name: &t.Name, StartDate: &start, EndDate: &end, Events: events})
}

func (t *Trip) UnmarshalJSON(data []byte) error {
	var wire tripWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if err := requireFields(map[string]bool{
		"id":         wire.ID != nil,
		"name":       wire.Name != nil,
		"start_date": wire.StartDate != nil,
		"end_date":   wire.EndDate != nil,
	}); err != nil {
		return err
	}
	events := wire.Events
	if events == nil {
		events = []Event{}
	}
	*t = Trip{
		ID:        *wire.ID,
		Name:      *wire.Name,
		StartDate: time.Time(*wire.StartDate),
		EndDate:   time.Time(*wire.EndDate),
		Events:    events,
	}
	return nil
}

// Event is a stop or happening inside a trip.
type Event struct {
	ID                     int
	Name                   string
	Note                   *string
	Date                   time.Time
	Location               *Location
	Medias                 []Media
	TransitionFromPrevious *string
}

type eventWire struct {
	ID                     *int       `json:"id"`
	Name                   *string    `json:"name"`
	Note                   *string    `json:"note,omitempty"`
	Date                   *timestamp `json:"date"`
	Location               *Location  `json:"location,omitempty"`
	Medias                 []Media    `json:"medias"`
	TransitionFromPrevious *string    `json:"transition_from_previous,omitempty"`
}

func (e Event) MarshalJSON() ([]byte, error) {
	date := timestamp(e.Date)
	medias := e.Medias
	if medias == nil {
		medias = []Media{}
	}
	return json.Marshal(eventWire{
		ID:                     &e.ID,
		Name:                   &e.Name,
		Note:                   e.Note,
		Date:                   &date,
		Location:               e.Location,
		Medias:                 medias,
		TransitionFromPrevious: e.TransitionFromPrevious,
	})
}

func (e *Event) UnmarshalJSON(data []byte) error {
	var wire eventWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if err := requireFields(map[string]bool{
		"id":   wire.ID != nil,
		"name": wire.Name != nil,
		"date": wire.Date != nil,
	}); err != nil {
		return err
	}
	medias := wire.Medias
	if medias == nil {
		medias = []Media{}
	}
	*e = Event{
		ID:                     *wire.ID,
		Name:                   *wire.Name,
		Note:                   wire.Note,
		Date:                   time.Time(*wire.Date),
		Location:               wire.Location,
		Medias:                 medias,
		TransitionFromPrevious: wire.TransitionFromPrevious,
	}
	return nil
}

// Location is a plain coordinate with an optional postal address.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   *string `json:"address,omitempty"`
}

// Media is an uploaded attachment of an event.
type Media struct {
	ID  int
	URL *url.URL
}

type mediaWire struct {
	ID  *int    `json:"id"`
	URL *string `json:"url"`
}

func (m Media) MarshalJSON() ([]byte, error) {
	wire := mediaWire{ID: &m.ID}
	if m.URL != nil {
		raw := m.URL.String()
		wire.URL = &raw
	}
	return json.Marshal(wire)
}

func (m *Media) UnmarshalJSON(data []byte) error {
	var wire mediaWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.ID == nil {
		return fmt.Errorf("missing field: id")
	}
	out := Media{ID: *wire.ID}
	if wire.URL != nil {
		if strings.TrimSpace(*wire.URL) == "" {
			return fmt.Errorf("url: empty")
		}
		parsed, err := url.Parse(*wire.URL)
		if err != nil {
			return fmt.Errorf("url: %w", err)
		}
		out.URL = parsed
	}
	*m = out
	return nil
}

// requireFields reports every key whose presence flag is false.
func requireFields(present map[string]bool) error {
	var missing []string
	for name, ok := range present {
		if !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("missing fields: %s", strings.Join(missing, ", "))
}
