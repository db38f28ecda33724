package backend

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

const (
	sourceTopRated = "top_rated"
	sourceTrending = "trending"
)

func (s *Server) handleForYou(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.buildFeed(r, false))
}

func (s *Server) handleForYouReason(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.buildFeed(r, true))
}

// buildFeed ranks unviewed contents by rating and view count, records
// one impression log per entry, and returns the feed. The ranking is a
// stand-in: the real recommendation engine lives server-side and is out
// of scope here.
func (s *Server) buildFeed(r *http.Request, withReasons bool) []recommendation {
	user := userFromContext(r.Context())
	size := parseSize(r, 20)

	items := s.snapshotContents()

	s.mu.Lock()
	defer s.mu.Unlock()

	unviewed := items[:0]
	for _, c := range items {
		state := s.reactions[reactionKey{user.ID, c.ID}]
		if state == nil || !state.Viewed {
			unviewed = append(unviewed, c)
		}
	}
	sort.SliceStable(unviewed, func(i, j int) bool {
		if unviewed[i].Rating != unviewed[j].Rating {
			return unviewed[i].Rating > unviewed[j].Rating
		}
		return unviewed[i].ViewCount > unviewed[j].ViewCount
	})
	if len(unviewed) > size {
		unviewed = unviewed[:size]
	}

	feed := make([]recommendation, 0, len(unviewed))
	for i, c := range unviewed {
		source := sourceTopRated
		if i%2 == 1 {
			source = sourceTrending
		}
		s.nextLogID++
		entry := &recommendLog{
			ID:        s.nextLogID,
			UserID:    user.ID,
			ContentID: c.ID,
			Source:    source,
			CreatedAt: time.Now(),
		}
		s.logs = append(s.logs, entry)

		rec := recommendation{LogID: entry.ID, Content: c, Source: source}
		if withReasons {
			rec.Reason = feedReason(source, c)
		}
		feed = append(feed, rec)
	}
	return feed
}

func feedReason(source string, c Content) string {
	switch source {
	case sourceTrending:
		return fmt.Sprintf("trending now with %d views", c.ViewCount)
	default:
		return fmt.Sprintf("rated %.1f by viewers like you", c.Rating)
	}
}

func (s *Server) handleRecommendClick(w http.ResponseWriter, r *http.Request) {
	logID, err := strconv.ParseInt(chi.URLParam(r, "logID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid log id")
		return
	}
	user := userFromContext(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.logs {
		if entry.ID == logID && entry.UserID == user.ID {
			entry.Clicked = true
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "recommendation log not found")
}

func (s *Server) handleInteraction(action string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contentID, err := strconv.ParseInt(chi.URLParam(r, "contentID"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid content id")
			return
		}
		user := userFromContext(r.Context())

		s.mu.Lock()
		defer s.mu.Unlock()
		content, ok := s.contents[contentID]
		if !ok {
			writeError(w, http.StatusNotFound, "content not found")
			return
		}

		key := reactionKey{user.ID, contentID}
		state := s.reactions[key]
		if state == nil {
			state = &InteractionState{}
			s.reactions[key] = state
		}

		switch action {
		case "view":
			if !state.Viewed {
				state.Viewed = true
				content.ViewCount++
			}
		case "like":
			state.Liked = !state.Liked
			if state.Liked {
				state.Disliked = false
			}
		case "dislike":
			state.Disliked = !state.Disliked
			if state.Disliked {
				state.Liked = false
			}
		case "bookmark":
			state.Bookmarked = !state.Bookmarked
		}
		writeJSON(w, http.StatusOK, state)
	}
}

func (s *Server) handleInteractionState(w http.ResponseWriter, r *http.Request) {
	contentID, err := strconv.ParseInt(chi.URLParam(r, "contentID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid content id")
		return
	}
	user := userFromContext(r.Context())

	s.mu.RLock()
	state := s.reactions[reactionKey{user.ID, contentID}]
	var snapshot InteractionState
	if state != nil {
		snapshot = *state
	}
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, snapshot)
}
