package journal

import (
	"context"
	"fmt"
)

// CreateEvent adds an event to the trip named in event.TripID.
func (c *Client) CreateEvent(ctx context.Context, event EventCreate) (Event, error) {
	data, err := c.sendJSON(ctx, MethodPost, "/events", "event", event)
	if err != nil {
		return Event{}, err
	}
	return decode[Event]("event", data)
}

// UpdateEvent replaces an event's fields.
func (c *Client) UpdateEvent(ctx context.Context, id int, event EventUpdate) (Event, error) {
	data, err := c.sendJSON(ctx, MethodPut, eventPath(id), "event", event)
	if err != nil {
		return Event{}, err
	}
	return decode[Event]("event", data)
}

// DeleteEvent removes an event.
func (c *Client) DeleteEvent(ctx context.Context, id int) error {
	return c.remove(ctx, eventPath(id))
}

func eventPath(id int) string {
	return fmt.Sprintf("/events/%d", id)
}
