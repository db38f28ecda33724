package backend

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func parseSize(r *http.Request, fallback int) int {
	if v := r.URL.Query().Get("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= maxPageSize {
			return n
		}
	}
	return fallback
}

// snapshotContents copies the catalog under the read lock so sorting can
// happen outside it.
func (s *Server) snapshotContents() []Content {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Content, 0, len(s.contents))
	for _, c := range s.contents {
		out = append(out, *c)
	}
	return out
}

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	items := s.snapshotContents()
	sort.Slice(items, func(i, j int) bool { return items[i].ViewCount > items[j].ViewCount })
	writeJSON(w, http.StatusOK, headOf(items, parseSize(r, 10)))
}

func (s *Server) handleNewReleases(w http.ResponseWriter, r *http.Request) {
	items := s.snapshotContents()
	sort.Slice(items, func(i, j int) bool { return items[i].ReleaseDate > items[j].ReleaseDate })
	writeJSON(w, http.StatusOK, headOf(items, parseSize(r, 10)))
}

func (s *Server) handleTopRated(w http.ResponseWriter, r *http.Request) {
	items := s.snapshotContents()
	sort.Slice(items, func(i, j int) bool { return items[i].Rating > items[j].Rating })
	writeJSON(w, http.StatusOK, headOf(items, parseSize(r, 10)))
}

func headOf(items []Content, n int) []Content {
	if len(items) > n {
		items = items[:n]
	}
	return items
}

func (s *Server) handleContentDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "contentID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid content id")
		return
	}
	s.mu.RLock()
	c, ok := s.contents[id]
	var snapshot Content
	if ok {
		snapshot = *c
	}
	s.mu.RUnlock()
	if !ok {
		writeError(w, http.StatusNotFound, "content not found")
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.searchContents(r))
}

// searchContents applies the shared q/type/genre filters, ordering, and
// paging used by both the public search and the admin listing.
func (s *Server) searchContents(r *http.Request) page[Content] {
	q := r.URL.Query()
	query := q.Get("q")
	typ := q.Get("type")
	genre := q.Get("genre")
	sortKey := q.Get("sort")
	direction := q.Get("direction")

	items := s.snapshotContents()
	filtered := items[:0]
	for _, c := range items {
		if typ != "" && c.Type != typ {
			continue
		}
		if genre != "" && !hasGenre(c.Genres, genre) {
			continue
		}
		if !textMatches(query, c.Title, c.Overview) {
			continue
		}
		filtered = append(filtered, c)
	}

	sortContents(filtered, sortKey, direction)

	pageNum, size := parsePage(r)
	return paginate(filtered, pageNum, size)
}

func sortContents(items []Content, key, direction string) {
	var less func(a, b Content) bool
	switch key {
	case "releaseDate":
		less = func(a, b Content) bool { return a.ReleaseDate < b.ReleaseDate }
	case "rating":
		less = func(a, b Content) bool { return a.Rating < b.Rating }
	case "viewCount":
		less = func(a, b Content) bool { return a.ViewCount < b.ViewCount }
	default:
		less = func(a, b Content) bool { return a.ID < b.ID }
	}
	asc := direction == "asc"
	sort.SliceStable(items, func(i, j int) bool {
		if asc {
			return less(items[i], items[j])
		}
		return less(items[j], items[i])
	})
}

func (s *Server) handleGenres(w http.ResponseWriter, r *http.Request) {
	seen := make(map[string]bool)
	var genres []string
	for _, c := range s.snapshotContents() {
		for _, g := range genreLabels(c.Genres) {
			label := canonicalGenre(g)
			if label != "" && !seen[label] {
				seen[label] = true
				genres = append(genres, label)
			}
		}
	}
	sort.Strings(genres)
	if genres == nil {
		genres = []string{}
	}
	writeJSON(w, http.StatusOK, genres)
}
