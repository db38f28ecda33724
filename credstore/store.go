// Package credstore owns the session credential: an opaque bearer token
// plus the cached authorization role and display nickname. The credential
// is created on login, read on every outbound request, and destroyed on
// logout, detected session expiry, or account deletion.
package credstore

// Store abstracts credential persistence so that credentials can be kept
// in-memory (tests, default) or in persistent backing storage that
// survives process restarts.
type Store interface {
	// Token returns the bearer token. Returns false if no token is stored
	// or the stored token is empty.
	Token() (string, bool)
	// Role returns the cached authorization role, if any. The role is a
	// display/cache value only; authorization decisions re-verify it.
	Role() (string, bool)
	// Nickname returns the cached display nickname, if any.
	Nickname() (string, bool)
	// SetSession stores a full credential in one step.
	SetSession(token, role, nickname string) error
	// SetRole updates only the cached role.
	SetRole(role string) error
	// SetNickname updates only the cached nickname.
	SetNickname(nickname string) error
	// Clear removes the token, role, and nickname. Clearing an empty
	// store is a no-op.
	Clear() error
}

// IsAdminRole reports whether a role label carries admin privilege.
// Both the plain and the prefixed spelling are accepted as equivalent.
func IsAdminRole(role string) bool {
	return role == "ADMIN" || role == "ROLE_ADMIN"
}
