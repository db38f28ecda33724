package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// RecommendLogParams filters the admin recommendation-log listing.
type RecommendLogParams struct {
	Days      int
	Source    string
	UserID    int64
	ContentID int64
	// Clicked filters on click-through when non-nil.
	Clicked *bool
	Page    int
	Size    int
}

func (p RecommendLogParams) values() url.Values {
	q := url.Values{}
	if p.Days > 0 {
		q.Set("days", strconv.Itoa(p.Days))
	}
	if p.Source != "" {
		q.Set("source", p.Source)
	}
	if p.UserID > 0 {
		q.Set("userId", strconv.FormatInt(p.UserID, 10))
	}
	if p.ContentID > 0 {
		q.Set("contentId", strconv.FormatInt(p.ContentID, 10))
	}
	if p.Clicked != nil {
		q.Set("clicked", strconv.FormatBool(*p.Clicked))
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Size > 0 {
		q.Set("size", strconv.Itoa(p.Size))
	}
	return q
}

// RecommendLogs lists recommendation impressions for the admin console.
func (c *Client) RecommendLogs(ctx context.Context, params RecommendLogParams) (*Page[RecommendLog], error) {
	var page Page[RecommendLog]
	if err := c.getJSON(ctx, "/api/admin/recommend-logs", params.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// RecommendDashboard aggregates recommendation performance over the
// trailing days window.
func (c *Client) RecommendDashboard(ctx context.Context, days int) (*Dashboard, error) {
	q := url.Values{}
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}
	var out Dashboard
	if err := c.getJSON(ctx, "/api/admin/recommend-dashboard", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecommendStatsBySource breaks recommendation performance down per
// source.
func (c *Client) RecommendStatsBySource(ctx context.Context, days int) ([]SourceStat, error) {
	q := url.Values{}
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}
	var out []SourceStat
	if err := c.getJSON(ctx, "/api/admin/recommend-stats/by-source", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminContents lists catalog entries for the admin console, with the
// same filters as the public search.
func (c *Client) AdminContents(ctx context.Context, params SearchParams) (*Page[Content], error) {
	var page Page[Content]
	if err := c.getJSON(ctx, "/api/admin/contents", params.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// AdminContent fetches one catalog entry by ID.
func (c *Client) AdminContent(ctx context.Context, id int64) (*Content, error) {
	var out Content
	if err := c.getJSON(ctx, fmt.Sprintf("/api/admin/contents/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateContent adds a catalog entry.
func (c *Client) CreateContent(ctx context.Context, content Content) (*Content, error) {
	var out Content
	if err := c.postJSON(ctx, "/api/admin/contents", content, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateContent replaces a catalog entry.
func (c *Client) UpdateContent(ctx context.Context, id int64, content Content) (*Content, error) {
	var out Content
	if err := c.putJSON(ctx, fmt.Sprintf("/api/admin/contents/%d", id), content, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteContent removes a catalog entry.
func (c *Client) DeleteContent(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/admin/contents/%d", id))
}
