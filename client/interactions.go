package client

import (
	"context"
	"fmt"
)

// RecordView marks a content as viewed by the caller.
func (c *Client) RecordView(ctx context.Context, contentID int64) error {
	return c.interact(ctx, contentID, "view")
}

// Like toggles a like on a content.
func (c *Client) Like(ctx context.Context, contentID int64) error {
	return c.interact(ctx, contentID, "like")
}

// Dislike toggles a dislike on a content.
func (c *Client) Dislike(ctx context.Context, contentID int64) error {
	return c.interact(ctx, contentID, "dislike")
}

// Bookmark toggles a bookmark on a content.
func (c *Client) Bookmark(ctx context.Context, contentID int64) error {
	return c.interact(ctx, contentID, "bookmark")
}

func (c *Client) interact(ctx context.Context, contentID int64, action string) error {
	return c.postJSON(ctx, fmt.Sprintf("/api/interactions/%d/%s", contentID, action), nil, nil)
}

// Interactions returns the caller's recorded reactions to a content.
func (c *Client) Interactions(ctx context.Context, contentID int64) (*InteractionState, error) {
	var out InteractionState
	if err := c.getJSON(ctx, fmt.Sprintf("/api/interactions/%d/state", contentID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
