package backend

import "time"

// Content mirrors the wire shape of one catalog entry.
type Content struct {
	ID          int64   `json:"id"`
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	Genres      string  `json:"genres"`
	ReleaseDate string  `json:"releaseDate"`
	PosterURL   string  `json:"posterUrl"`
	BackdropURL string  `json:"backdropUrl"`
	Rating      float64 `json:"rating"`
	ViewCount   int64   `json:"viewCount"`
}

// InteractionState is one user's recorded reactions to one content.
type InteractionState struct {
	Viewed     bool `json:"viewed"`
	Liked      bool `json:"liked"`
	Disliked   bool `json:"disliked"`
	Bookmarked bool `json:"bookmarked"`
}

type reactionKey struct {
	userID    int64
	contentID int64
}

type userRecord struct {
	ID              int64
	Email           string
	Nickname        string
	Role            string
	PasswordHash    []byte
	Phone           string
	Birth           string
	Gender          string
	ProfileImageURL string
}

type userResponse struct {
	ID              int64  `json:"id"`
	Email           string `json:"email"`
	Nickname        string `json:"nickname"`
	Role            string `json:"role"`
	Phone           string `json:"phone,omitempty"`
	Birth           string `json:"birth,omitempty"`
	Gender          string `json:"gender,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

func (u *userRecord) response() userResponse {
	return userResponse{
		ID:              u.ID,
		Email:           u.Email,
		Nickname:        u.Nickname,
		Role:            u.Role,
		Phone:           u.Phone,
		Birth:           u.Birth,
		Gender:          u.Gender,
		ProfileImageURL: u.ProfileImageURL,
	}
}

type recommendLog struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	ContentID int64     `json:"contentId"`
	Source    string    `json:"source"`
	Clicked   bool      `json:"clicked"`
	CreatedAt time.Time `json:"createdAt"`
}

type recommendation struct {
	LogID   int64   `json:"logId"`
	Content Content `json:"content"`
	Source  string  `json:"source"`
	Reason  string  `json:"reason,omitempty"`
}

type dashboard struct {
	Days        int       `json:"days"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
	CTR         float64   `json:"ctr"`
	Daily       []dayStat `json:"daily"`
}

type dayStat struct {
	Date        string  `json:"date"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	CTR         float64 `json:"ctr"`
}

type sourceStat struct {
	Source      string  `json:"source"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	CTR         float64 `json:"ctr"`
}
