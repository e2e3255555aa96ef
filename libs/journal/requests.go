package journal

import (
	"encoding/json"
	"time"
)

// Credentials are sent as JSON to /register.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TripCreate is the payload for creating a trip.
type TripCreate struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

// TripUpdate is the payload for replacing a trip's fields.
type TripUpdate struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

type tripPayload struct {
	Name      *string    `json:"name"`
	StartDate *timestamp `json:"start_date"`
	EndDate   *timestamp `json:"end_date"`
}

func marshalTripPayload(name string, start, end time.Time) ([]byte, error) {
	s, e := timestamp(start), timestamp(end)
	return json.Marshal(tripPayload{Name: &name, StartDate: &s, EndDate: &e})
}

func unmarshalTripPayload(data []byte) (string, time.Time, time.Time, error) {
	var wire tripPayload
	if err := json.Unmarshal(data, &wire); err != nil {
		return "", time.Time{}, time.Time{}, err
	}
	if err := requireFields(map[string]bool{
		"name":       wire.Name != nil,
		"start_date": wire.StartDate != nil,
		"end_date":   wire.EndDate != nil,
	}); err != nil {
		return "", time.Time{}, time.Time{}, err
	}
	return *wire.Name, time.Time(*wire.StartDate), time.Time(*wire.EndDate), nil
}

func (t TripCreate) MarshalJSON() ([]byte, error) {
	return marshalTripPayload(t.Name, t.StartDate, t.EndDate)
}

func (t *TripCreate) UnmarshalJSON(data []byte) error {
	name, start, end, err := unmarshalTripPayload(data)
	if err != nil {
		return err
	}
	*t = TripCreate{Name: name, StartDate: start, EndDate: end}
	return nil
}

func (t TripUpdate) MarshalJSON() ([]byte, error) {
	return marshalTripPayload(t.Name, t.StartDate, t.EndDate)
}

func (t *TripUpdate) UnmarshalJSON(data []byte) error {
	name, start, end, err := unmarshalTripPayload(data)
	if err != nil {
		return err
	}
	*t = TripUpdate{Name: name, StartDate: start, EndDate: end}
	return nil
}

// EventCreate is the payload for adding an event to a trip.
type EventCreate struct {
	TripID                 int
	Name                   string
	Note                   *string
	Date                   time.Time
	Location               *Location
	TransitionFromPrevious *string
}

// EventUpdate is the payload for replacing an event's fields.
type EventUpdate struct {
	Name                   string
	Note                   *string
	Date                   time.Time
	Location               *Location
	TransitionFromPrevious *string
}

type eventPayload struct {
	TripID                 *int       `json:"trip_id,omitempty"`
	Name                   *string    `json:"name"`
	Note                   *string    `json:"note,omitempty"`
	Date                   *timestamp `json:"date"`
	Location               *Location  `json:"location,omitempty"`
	TransitionFromPrevious *string    `json:"transition_from_previous,omitempty"`
}

func (e EventCreate) MarshalJSON() ([]byte, error) {
	date := timestamp(e.Date)
	return json.Marshal(eventPayload{
		TripID:                 &e.TripID,
		Name:                   &e.Name,
		Note:                   e.Note,
		Date:                   &date,
		Location:               e.Location,
		TransitionFromPrevious: e.TransitionFromPrevious,
	})
}

func (e *EventCreate) UnmarshalJSON(data []byte) error {
	var wire eventPayload
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if err := requireFields(map[string]bool{
		"trip_id": wire.TripID != nil,
		"name":    wire.Name != nil,
		"date":    wire.Date != nil,
	}); err != nil {
		return err
	}
	*e = EventCreate{
		TripID:                 *wire.TripID,
		Name:                   *wire.Name,
		Note:                   wire.Note,
		Date:                   time.Time(*wire.Date),
		Location:               wire.Location,
		TransitionFromPrevious: wire.TransitionFromPrevious,
	}
	return nil
}

func (e EventUpdate) MarshalJSON() ([]byte, error) {
	date := timestamp(e.Date)
	return json.Marshal(eventPayload{
		Name:                   &e.Name,
		Note:                   e.Note,
		Date:                   &date,
		Location:               e.Location,
		TransitionFromPrevious: e.TransitionFromPrevious,
	})
}

func (e *EventUpdate) UnmarshalJSON(data []byte) error {
	var wire eventPayload
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if err := requireFields(map[string]bool{
		"name": wire.Name != nil,
		"date": wire.Date != nil,
	}); err != nil {
		return err
	}
	*e = EventUpdate{
		Name:                   *wire.Name,
		Note:                   wire.Note,
		Date:                   time.Time(*wire.Date),
		Location:               wire.Location,
		TransitionFromPrevious: wire.TransitionFromPrevious,
	}
	return nil
}

// MediaCreate uploads raw bytes for an event. Base64Data holds the raw
// bytes; they travel as standard base64 text.
type MediaCreate struct {
	EventID    int    `json:"event_id"`
	Base64Data []byte `json:"base64_data"`
}
