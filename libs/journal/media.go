package journal

import (
	"context"
	"fmt"
)

// CreateMedia uploads an attachment for an event.
func (c *Client) CreateMedia(ctx context.Context, media MediaCreate) (Media, error) {
	data, err := c.sendJSON(ctx, MethodPost, "/media", "media", media)
	if err != nil {
		return Media{}, err
	}
	return decode[Media]("media", data)
}

// DeleteMedia removes an attachment.
func (c *Client) DeleteMedia(ctx context.Context, id int) error {
	return c.remove(ctx, fmt.Sprintf("/media/%d", id))
}
