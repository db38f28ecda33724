package session

// LoginPath is the surface users are sent to when their session ends.
const LoginPath = "/login"

// fallbackMessage is shown when an expiry event carries no message.
const fallbackMessage = "please log in"

// Navigator performs a forced navigation. Replace must swap the current
// history entry rather than push a new one, so the expired session's page
// is not reachable via back-navigation. The message accompanies the
// navigation for display on the target surface.
type Navigator interface {
	Replace(path, message string)
}

// Watcher subscribes to expiry events and redirects to the login surface
// on each one. A single Watcher is started at application startup and
// stopped only at teardown. Repeated events each trigger a navigation;
// replacing the same history entry twice is harmless.
type Watcher struct {
	bus    *Bus
	nav    Navigator
	cancel func()
}

// NewWatcher returns a Watcher wired to the given bus and navigator.
// It does not subscribe until Start is called.
func NewWatcher(bus *Bus, nav Navigator) *Watcher {
	return &Watcher{bus: bus, nav: nav}
}

// Start subscribes to the bus. Calling Start on an already-started
// Watcher is a no-op, so a remount cannot leak a second subscription.
func (w *Watcher) Start() {
	if w.cancel != nil {
		return
	}
	w.cancel = w.bus.Subscribe(func(ev ExpiredEvent) {
		msg := ev.Message
		if msg == "" {
			msg = fallbackMessage
		}
		w.nav.Replace(LoginPath, msg)
	})
}

// Stop unsubscribes from the bus. Safe to call more than once.
func (w *Watcher) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	w.cancel = nil
}
