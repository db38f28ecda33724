package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNavigator struct {
	paths    []string
	messages []string
}

func (n *fakeNavigator) Replace(path, message string) {
	n.paths = append(n.paths, path)
	n.messages = append(n.messages, message)
}

func TestWatcherNavigatesOnEvent(t *testing.T) {
	bus := NewBus()
	nav := &fakeNavigator{}
	w := NewWatcher(bus, nav)
	w.Start()
	defer w.Stop()

	bus.Publish(ExpiredEvent{Status: 403, Message: "session expired, please log in again"})

	require.Len(t, nav.paths, 1)
	assert.Equal(t, LoginPath, nav.paths[0])
	assert.Equal(t, "session expired, please log in again", nav.messages[0])
}

func TestWatcherOneNavigationPerEvent(t *testing.T) {
	bus := NewBus()
	nav := &fakeNavigator{}
	w := NewWatcher(bus, nav)
	w.Start()
	defer w.Stop()

	bus.Publish(ExpiredEvent{Status: 401})
	bus.Publish(ExpiredEvent{Status: 403})

	// Two events, two navigations, both to login. Navigating twice in a
	// row to the same replaced entry is harmless.
	require.Len(t, nav.paths, 2)
	assert.Equal(t, []string{LoginPath, LoginPath}, nav.paths)
}

func TestWatcherFallbackMessage(t *testing.T) {
	bus := NewBus()
	nav := &fakeNavigator{}
	w := NewWatcher(bus, nav)
	w.Start()
	defer w.Stop()

	bus.Publish(ExpiredEvent{Status: 401})

	require.Len(t, nav.messages, 1)
	assert.Equal(t, "please log in", nav.messages[0])
}

func TestWatcherStartIdempotent(t *testing.T) {
	bus := NewBus()
	nav := &fakeNavigator{}
	w := NewWatcher(bus, nav)
	w.Start()
	w.Start() // remount must not leak a second subscription
	defer w.Stop()

	assert.Equal(t, 1, bus.SubscriberCount())

	bus.Publish(ExpiredEvent{Status: 401})
	assert.Len(t, nav.paths, 1)
}

func TestWatcherStopUnsubscribes(t *testing.T) {
	bus := NewBus()
	nav := &fakeNavigator{}
	w := NewWatcher(bus, nav)
	w.Start()
	w.Stop()
	w.Stop() // safe to call twice

	assert.Equal(t, 0, bus.SubscriberCount())

	bus.Publish(ExpiredEvent{Status: 401})
	assert.Empty(t, nav.paths, "stopped watcher must not navigate")

	// A restarted watcher subscribes exactly once again.
	w.Start()
	defer w.Stop()
	bus.Publish(ExpiredEvent{Status: 403})
	assert.Len(t, nav.paths, 1)
}
