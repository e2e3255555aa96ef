package journal

import (
	"context"
	"fmt"
)

// CreateTrip adds a trip.
func (c *Client) CreateTrip(ctx context.Context, trip TripCreate) (Trip, error) {
	data, err := c.sendJSON(ctx, MethodPost, "/trips", "trip", trip)
	if err != nil {
		return Trip{}, err
	}
	return decode[Trip]("trip", data)
}

// GetTrips lists the caller's trips in server order.
func (c *Client) GetTrips(ctx context.Context) ([]Trip, error) {
	data, err := c.sendJSON(ctx, MethodGet, "/trips", "trips", nil)
	if err != nil {
		return nil, err
	}
	trips, err := decode[[]Trip]("trips", data)
	if err != nil {
		return nil, err
	}
	if trips == nil {
		trips = []Trip{}
	}
	return trips, nil
}

// GetTrip fetches one trip with its events.
func (c *Client) GetTrip(ctx context.Context, id int) (Trip, error) {
	data, err := c.sendJSON(ctx, MethodGet, tripPath(id), "trip", nil)
	if err != nil {
		return Trip{}, err
	}
	return decode[Trip]("trip", data)
}

// UpdateTrip replaces a trip's name and dates.
func (c *Client) UpdateTrip(ctx context.Context, id int, trip TripUpdate) (Trip, error) {
	data, err := c.sendJSON(ctx, MethodPut, tripPath(id), "trip", trip)
	if err != nil {
		return Trip{}, err
	}
	return decode[Trip]("trip", data)
}

// DeleteTrip removes a trip. Deleting it again is reported by the server,
// typically as *InvalidInputError.
func (c *Client) DeleteTrip(ctx context.Context, id int) error {
	return c.remove(ctx, tripPath(id))
}

func tripPath(id int) string {
	return fmt.Sprintf("/trips/%d", id)
}
