// Package backend is an in-memory reference implementation of the
// CineFeed REST contract. It backs the demo command and the integration
// tests; it is a development double, not a production service.
package backend

import (
	_ "embed"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	openapimw "github.com/go-openapi/runtime/middleware"
	"github.com/rs/zerolog"
)

//go:embed openapi.yaml
var openapiSpec []byte

// Server holds the in-memory state behind the REST handlers.
type Server struct {
	mu sync.RWMutex

	users      map[int64]*userRecord
	emailIndex map[string]int64
	nickIndex  map[string]int64
	tokens     map[string]int64 // bearer token -> user ID
	contents   map[int64]*Content
	logs       []*recommendLog
	reactions  map[reactionKey]*InteractionState
	uploads    map[string][]byte
	phoneCodes map[string]string // phone -> pending code

	nextUserID    int64
	nextContentID int64
	nextLogID     int64

	log zerolog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the structured logger for request logging.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Server) { s.log = log }
}

// New creates an empty Server.
func New(opts ...Option) *Server {
	s := &Server{
		users:      make(map[int64]*userRecord),
		emailIndex: make(map[string]int64),
		nickIndex:  make(map[string]int64),
		tokens:     make(map[string]int64),
		contents:   make(map[int64]*Content),
		reactions:  make(map[reactionKey]*InteractionState),
		uploads:    make(map[string][]byte),
		phoneCodes: make(map[string]string),
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router returns a chi.Router with every route mounted.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openapiSpec)
	})
	r.Handle("/docs*", openapimw.SwaggerUI(openapimw.SwaggerUIOpts{
		SpecURL: "/openapi.yaml",
		Path:    "docs",
	}, nil))
	r.Handle("/redoc*", openapimw.Redoc(openapimw.RedocOpts{
		SpecURL: "/openapi.yaml",
		Path:    "redoc",
	}, nil))

	// Public surfaces: login, signup family, catalog, uploads.
	r.Post("/login", s.handleLogin)
	r.Get("/users/check-email", s.handleCheckEmail)
	r.Get("/users/check-nickname", s.handleCheckNickname)
	r.Post("/users", s.handleRegister)
	r.Post("/user/phone/request", s.handlePhoneRequest)
	r.Post("/user/phone/verify", s.handlePhoneVerify)
	r.Get("/public/uploads/{name}", s.handleServeUpload)

	r.Route("/contents", func(r chi.Router) {
		r.Get("/trending", s.handleTrending)
		r.Get("/new", s.handleNewReleases)
		r.Get("/top-rated", s.handleTopRated)
		r.Get("/search", s.handleSearch)
		r.Get("/genres", s.handleGenres)
		r.Get("/{contentID}", s.handleContentDetail)
	})

	// Authenticated surfaces.
	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/user/me", s.handleMe)
		r.Put("/user/nickname", s.handleUpdateNickname)
		r.Put("/user/password", s.handleChangePassword)
		r.Put("/user/extra-info", s.handleUpdateExtraInfo)
		r.Post("/user/profile-image", s.handleUploadProfileImage)
		r.Delete("/user/profile-image", s.handleDeleteProfileImage)
		r.Delete("/user", s.handleDeleteUser)

		r.Get("/api/recommend/for-you", s.handleForYou)
		r.Get("/api/recommend/for-you/reason", s.handleForYouReason)
		r.Post("/api/recommend/click/{logID}", s.handleRecommendClick)

		r.Route("/api/interactions/{contentID}", func(r chi.Router) {
			r.Post("/view", s.handleInteraction("view"))
			r.Post("/like", s.handleInteraction("like"))
			r.Post("/dislike", s.handleInteraction("dislike"))
			r.Post("/bookmark", s.handleInteraction("bookmark"))
			r.Get("/state", s.handleInteractionState)
		})
	})

	// Admin surfaces.
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Use(s.requireAdmin)
		r.Get("/recommend-logs", s.handleRecommendLogs)
		r.Get("/recommend-dashboard", s.handleRecommendDashboard)
		r.Get("/recommend-stats/by-source", s.handleStatsBySource)
		r.Get("/contents", s.handleAdminContents)
		r.Post("/contents", s.handleAdminCreateContent)
		r.Get("/contents/{contentID}", s.handleAdminContent)
		r.Put("/contents/{contentID}", s.handleAdminUpdateContent)
		r.Delete("/contents/{contentID}", s.handleAdminDeleteContent)
	})

	return r
}
