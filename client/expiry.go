package client

import (
	"net/http"
	"strings"

	"github.com/yjkwon/cinefeed/session"
)

// ExemptPrefixes are the request-path prefixes that are never treated as
// session-expiry triggers, regardless of response status. They cover the
// public catalog, the signup family (including /users/check-email and
// /users/check-nickname), and login itself: flows that may legitimately
// return non-2xx while the user has no session yet.
var ExemptPrefixes = []string{"/public/", "/users", "/login"}

// ExpiredMessage accompanies every expiry broadcast.
const ExpiredMessage = "session expired, please log in again"

// observe classifies a failed response. The exemption check runs first,
// on the path as configured on the call; only then are the status codes
// tested. Exactly 401 and 403 classify as expiry: the credential store
// is purged (token, role, and nickname together) and one event is
// published synchronously. Every other status has no global side effect.
func (c *Client) observe(path string, status int) {
	if pathExempt(c.exempt, path) {
		return
	}
	if status != http.StatusUnauthorized && status != http.StatusForbidden {
		return
	}

	if err := c.store.Clear(); err != nil {
		c.log.Error().Err(err).Msg("clearing credential store on expiry")
	}
	c.log.Warn().Int("status", status).Str("path", path).Msg("session expired")
	c.bus.Publish(session.ExpiredEvent{Status: status, Message: ExpiredMessage})
}

func pathExempt(prefixes []string, path string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
