// Package session implements the session-expiry propagation core: a typed
// publish/subscribe bus for expiry events, a watcher that turns events
// into a forced navigation to the login surface, and an access guard for
// protected views.
package session

import "sync"

// ExpiredEvent is broadcast when a response has been classified as
// session expiry. It exists only for the duration of the synchronous
// dispatch to subscribers.
type ExpiredEvent struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Bus is a process-wide broadcast channel for ExpiredEvents. It is owned
// by the composition root and injected into both the HTTP client and the
// Watcher. Publish delivers synchronously, in subscription order, to all
// current subscribers before returning, so the expiry side effects
// happen-before the failed call's error reaches its caller.
type Bus struct {
	mu   sync.Mutex
	next int
	subs map[int]func(ExpiredEvent)
	// order preserves subscription order for deterministic dispatch.
	order []int
}

// NewBus returns a Bus with no subscribers.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]func(ExpiredEvent))}
}

// Subscribe registers fn to receive every subsequent event. The returned
// cancel function removes the subscription; calling it more than once is
// harmless.
func (b *Bus) Subscribe(fn func(ExpiredEvent)) (cancel func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.order = append(b.order, id)
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[id]; !ok {
			return
		}
		delete(b.subs, id)
		for i, v := range b.order {
			if v == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers ev to every current subscriber. Zero subscribers is
// fine: the event is simply dropped.
func (b *Bus) Publish(ev ExpiredEvent) {
	b.mu.Lock()
	fns := make([]func(ExpiredEvent), 0, len(b.order))
	for _, id := range b.order {
		fns = append(fns, b.subs[id])
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// SubscriberCount reports the number of active subscriptions.
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
