package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ForYou returns the personalized recommendation feed.
func (c *Client) ForYou(ctx context.Context, size int) ([]Recommendation, error) {
	return c.recommendList(ctx, "/api/recommend/for-you", size)
}

// ForYouWithReasons returns the feed with per-item explanations.
func (c *Client) ForYouWithReasons(ctx context.Context, size int) ([]Recommendation, error) {
	return c.recommendList(ctx, "/api/recommend/for-you/reason", size)
}

func (c *Client) recommendList(ctx context.Context, path string, size int) ([]Recommendation, error) {
	q := url.Values{}
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}
	var out []Recommendation
	if err := c.getJSON(ctx, path, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReportClick records a click on a recommendation impression, feeding
// click-through learning.
func (c *Client) ReportClick(ctx context.Context, logID int64) error {
	return c.postJSON(ctx, fmt.Sprintf("/api/recommend/click/%d", logID), nil, nil)
}
