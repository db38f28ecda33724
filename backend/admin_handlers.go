package backend

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

func parseDays(r *http.Request) int {
	if v := r.URL.Query().Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 7
}

// logsInWindow copies logs no older than the trailing window, newest
// first.
func (s *Server) logsInWindow(days int) []recommendLog {
	cutoff := time.Now().AddDate(0, 0, -days)
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]recommendLog, 0, len(s.logs))
	for _, entry := range s.logs {
		if entry.CreatedAt.After(cutoff) {
			out = append(out, *entry)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *Server) handleRecommendLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	logs := s.logsInWindow(parseDays(r))

	filtered := logs[:0]
	for _, entry := range logs {
		if src := q.Get("source"); src != "" && entry.Source != src {
			continue
		}
		if v := q.Get("userId"); v != "" {
			if id, err := strconv.ParseInt(v, 10, 64); err != nil || entry.UserID != id {
				continue
			}
		}
		if v := q.Get("contentId"); v != "" {
			if id, err := strconv.ParseInt(v, 10, 64); err != nil || entry.ContentID != id {
				continue
			}
		}
		if v := q.Get("clicked"); v != "" {
			want, err := strconv.ParseBool(v)
			if err != nil || entry.Clicked != want {
				continue
			}
		}
		filtered = append(filtered, entry)
	}

	pageNum, size := parsePage(r)
	writeJSON(w, http.StatusOK, paginate(filtered, pageNum, size))
}

func ctr(clicks, impressions int64) float64 {
	if impressions == 0 {
		return 0
	}
	return float64(clicks) / float64(impressions)
}

func (s *Server) handleRecommendDashboard(w http.ResponseWriter, r *http.Request) {
	days := parseDays(r)
	logs := s.logsInWindow(days)

	byDay := make(map[string]*dayStat)
	var impressions, clicks int64
	for _, entry := range logs {
		impressions++
		date := entry.CreatedAt.Format("2006-01-02")
		stat := byDay[date]
		if stat == nil {
			stat = &dayStat{Date: date}
			byDay[date] = stat
		}
		stat.Impressions++
		if entry.Clicked {
			clicks++
			stat.Clicks++
		}
	}

	daily := make([]dayStat, 0, len(byDay))
	for _, stat := range byDay {
		stat.CTR = ctr(stat.Clicks, stat.Impressions)
		daily = append(daily, *stat)
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Date < daily[j].Date })

	writeJSON(w, http.StatusOK, dashboard{
		Days:        days,
		Impressions: impressions,
		Clicks:      clicks,
		CTR:         ctr(clicks, impressions),
		Daily:       daily,
	})
}

func (s *Server) handleStatsBySource(w http.ResponseWriter, r *http.Request) {
	logs := s.logsInWindow(parseDays(r))

	bySource := make(map[string]*sourceStat)
	for _, entry := range logs {
		stat := bySource[entry.Source]
		if stat == nil {
			stat = &sourceStat{Source: entry.Source}
			bySource[entry.Source] = stat
		}
		stat.Impressions++
		if entry.Clicked {
			stat.Clicks++
		}
	}

	stats := make([]sourceStat, 0, len(bySource))
	for _, stat := range bySource {
		stat.CTR = ctr(stat.Clicks, stat.Impressions)
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Source < stats[j].Source })
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleAdminContents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.searchContents(r))
}

func (s *Server) handleAdminContent(w http.ResponseWriter, r *http.Request) {
	s.handleContentDetail(w, r)
}

func validContent(c *Content) (string, bool) {
	if c.Title == "" {
		return "title required", false
	}
	if c.Type != "MOVIE" && c.Type != "TV" {
		return "type must be MOVIE or TV", false
	}
	return "", true
}

func (s *Server) handleAdminCreateContent(w http.ResponseWriter, r *http.Request) {
	var c Content
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg, ok := validContent(&c); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	s.mu.Lock()
	s.nextContentID++
	c.ID = s.nextContentID
	s.contents[c.ID] = &c
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleAdminUpdateContent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "contentID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid content id")
		return
	}
	var c Content
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg, ok := validContent(&c); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	s.mu.Lock()
	existing, ok := s.contents[id]
	if ok {
		c.ID = id
		c.ViewCount = existing.ViewCount
		s.contents[id] = &c
	}
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "content not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleAdminDeleteContent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "contentID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid content id")
		return
	}

	s.mu.Lock()
	_, ok := s.contents[id]
	delete(s.contents, id)
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "content not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
