package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SearchParams filters and orders a catalog search. Zero values are
// omitted from the query.
type SearchParams struct {
	Query     string
	Type      string // MOVIE | TV
	Genre     string
	Sort      string // id | releaseDate | rating | viewCount
	Direction string // asc | desc
	Page      int
	Size      int
}

var genreCaser = cases.Lower(language.Und)

func (p SearchParams) values() url.Values {
	q := url.Values{}
	if p.Query != "" {
		q.Set("q", p.Query)
	}
	if p.Type != "" {
		q.Set("type", strings.ToUpper(p.Type))
	}
	if p.Genre != "" {
		// Genre labels are matched case-insensitively server-side;
		// canonicalize with a Unicode-aware fold rather than ASCII lower.
		q.Set("genre", genreCaser.String(p.Genre))
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	if p.Direction != "" {
		q.Set("direction", p.Direction)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Size > 0 {
		q.Set("size", strconv.Itoa(p.Size))
	}
	return q
}

// Trending returns the current most-watched contents.
func (c *Client) Trending(ctx context.Context, size int) ([]Content, error) {
	return c.contentList(ctx, "/contents/trending", size)
}

// NewReleases returns recently released contents.
func (c *Client) NewReleases(ctx context.Context, size int) ([]Content, error) {
	return c.contentList(ctx, "/contents/new", size)
}

// TopRated returns the highest-rated contents.
func (c *Client) TopRated(ctx context.Context, size int) ([]Content, error) {
	return c.contentList(ctx, "/contents/top-rated", size)
}

func (c *Client) contentList(ctx context.Context, path string, size int) ([]Content, error) {
	q := url.Values{}
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}
	var out []Content
	if err := c.getJSON(ctx, path, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ContentDetail fetches one catalog entry.
func (c *Client) ContentDetail(ctx context.Context, id int64) (*Content, error) {
	var out Content
	if err := c.getJSON(ctx, fmt.Sprintf("/contents/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchContents runs a paged catalog search.
func (c *Client) SearchContents(ctx context.Context, params SearchParams) (*Page[Content], error) {
	var page Page[Content]
	if err := c.getJSON(ctx, "/contents/search", params.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Genres lists the known genre labels.
func (c *Client) Genres(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.getJSON(ctx, "/contents/genres", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
