package session

import (
	"context"

	"github.com/yjkwon/cinefeed/credstore"
)

// Decision is the terminal state of a guard evaluation.
type Decision int

const (
	// Allowed means the protected view may render.
	Allowed Decision = iota
	// DeniedToLogin redirects to the login surface (no credential, or
	// the credential failed verification).
	DeniedToLogin
	// DeniedToHome redirects an authenticated non-admin away from an
	// admin-gated view, to the ordinary home surface.
	DeniedToHome
)

func (d Decision) String() string {
	switch d {
	case Allowed:
		return "allowed"
	case DeniedToLogin:
		return "denied-to-login"
	case DeniedToHome:
		return "denied-to-home"
	}
	return "unknown"
}

// RoleVerifier performs the one network round-trip an admin-gated guard
// needs: fetch the caller's current role from the backend.
type RoleVerifier interface {
	VerifyRole(ctx context.Context) (string, error)
}

// Guard gates a protected view. A plain guard only requires a stored
// token and never touches the network. An admin-gated guard additionally
// verifies the role server-side before allowing the view, and never
// renders protected content while the check is in flight.
//
// A Guard evaluation runs the state machine
// Init -> Checking -> {Allowed, DeniedToHome, DeniedToLogin} exactly
// once; a route change evaluates a fresh guard.
type Guard struct {
	store        credstore.Store
	verifier     RoleVerifier
	requireAdmin bool
	onChecking   func()
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// RequireAdmin makes the guard admin-gated.
func RequireAdmin() GuardOption {
	return func(g *Guard) { g.requireAdmin = true }
}

// WithCheckingHook registers fn to run when the guard enters the
// transient Checking state, before the role-verification call is issued.
// Callers use it to render a placeholder.
func WithCheckingHook(fn func()) GuardOption {
	return func(g *Guard) { g.onChecking = fn }
}

// NewGuard returns a guard over the given credential store. verifier is
// only consulted for admin-gated guards and may be nil otherwise.
func NewGuard(store credstore.Store, verifier RoleVerifier, opts ...GuardOption) *Guard {
	g := &Guard{store: store, verifier: verifier}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Evaluate runs the guard to a terminal decision.
//
// No token: DeniedToLogin immediately, with no network call. Plain mode
// with a token: Allowed immediately. Admin mode with a token: one role
// verification call; an admin role allows, any other role denies to
// home, and a failed call (including one rejected by expiry detection)
// clears the credential and denies to login — the guard never fails open.
func (g *Guard) Evaluate(ctx context.Context) Decision {
	_, hasToken := g.store.Token()
	if !hasToken {
		return decide(false, g.requireAdmin, "", nil)
	}
	if !g.requireAdmin {
		return decide(true, false, "", nil)
	}

	if g.onChecking != nil {
		g.onChecking()
	}
	role, err := g.verifier.VerifyRole(ctx)
	if err != nil {
		// The credential may already be gone if expiry detection fired;
		// clearing again is a no-op.
		_ = g.store.Clear()
	}
	return decide(true, true, role, err)
}

// decide is the guard's transition table as a pure function, so it can
// be tested exhaustively without a store or a network.
func decide(hasToken, requireAdmin bool, role string, checkErr error) Decision {
	if !hasToken {
		return DeniedToLogin
	}
	if !requireAdmin {
		return Allowed
	}
	if checkErr != nil {
		return DeniedToLogin
	}
	if credstore.IsAdminRole(role) {
		return Allowed
	}
	return DeniedToHome
}
