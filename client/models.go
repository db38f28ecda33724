package client

import "time"

// ContentType distinguishes catalog entries.
const (
	ContentTypeMovie = "MOVIE"
	ContentTypeTV    = "TV"
)

// Content is one catalog entry.
type Content struct {
	ID          int64   `json:"id"`
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	Genres      string  `json:"genres"` // comma-separated labels
	ReleaseDate string  `json:"releaseDate"`
	PosterURL   string  `json:"posterUrl"`
	BackdropURL string  `json:"backdropUrl"`
	Rating      float64 `json:"rating"`
	ViewCount   int64   `json:"viewCount"`
}

// Page is one page of a paginated listing.
type Page[T any] struct {
	Content       []T  `json:"content"`
	Number        int  `json:"number"`
	Size          int  `json:"size"`
	TotalElements int  `json:"totalElements"`
	TotalPages    int  `json:"totalPages"`
	Last          bool `json:"last"`
}

// User is the authenticated user's profile.
type User struct {
	ID              int64  `json:"id"`
	Email           string `json:"email"`
	Nickname        string `json:"nickname"`
	Role            string `json:"role"`
	Phone           string `json:"phone,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
	Birth           string `json:"birth,omitempty"`
	Gender          string `json:"gender,omitempty"`
}

// LoginResult is the credential issued by a successful login.
type LoginResult struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	Nickname string `json:"nickname"`
}

// Recommendation is one for-you feed entry. LogID identifies the
// impression for click-through reporting; Reason is only populated by
// the explained variant of the feed.
type Recommendation struct {
	LogID   int64   `json:"logId"`
	Content Content `json:"content"`
	Source  string  `json:"source"`
	Reason  string  `json:"reason,omitempty"`
}

// InteractionState is the caller's recorded reactions to one content.
type InteractionState struct {
	Viewed     bool `json:"viewed"`
	Liked      bool `json:"liked"`
	Disliked   bool `json:"disliked"`
	Bookmarked bool `json:"bookmarked"`
}

// RecommendLog is one recommendation impression, as seen by the admin
// console.
type RecommendLog struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	ContentID int64     `json:"contentId"`
	Source    string    `json:"source"`
	Clicked   bool      `json:"clicked"`
	CreatedAt time.Time `json:"createdAt"`
}

// Dashboard aggregates recommendation performance over a trailing window.
type Dashboard struct {
	Days        int       `json:"days"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
	CTR         float64   `json:"ctr"`
	Daily       []DayStat `json:"daily"`
}

// DayStat is one day's slice of the dashboard.
type DayStat struct {
	Date        string  `json:"date"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	CTR         float64 `json:"ctr"`
}

// SourceStat aggregates performance per recommendation source.
type SourceStat struct {
	Source      string  `json:"source"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	CTR         float64 `json:"ctr"`
}
