// Package events fans ledger event strings out to registered subscribers,
// such as websocket clients watching blocks being mined.
package events

import (
	"fmt"
	"sync"
)

// subscriberBuffer is how many events a subscriber can fall behind before
// new events are dropped for it. A websocket write can block for a while.
const subscriberBuffer = 100

// Events maintains the set of channels subscribers receive events on,
// keyed by a unique subscriber id.
type Events struct {
	mu   sync.RWMutex
	subs map[string]chan string
}

// New constructs an Events value with no subscribers.
func New() *Events {
	return &Events{
		subs: make(map[string]chan string),
	}
}

// Acquire registers the subscriber id and returns the channel events will
// be delivered on. Acquiring an id twice returns the same channel.
func (evt *Events) Acquire(id string) <-chan string {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	if ch, exists := evt.subs[id]; exists {
		return ch
	}

	ch := make(chan string, subscriberBuffer)
	evt.subs[id] = ch

	return ch
}

// Release closes and removes the channel for the subscriber id.
func (evt *Events) Release(id string) error {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.subs[id]
	if !exists {
		return fmt.Errorf("subscriber %q does not exist", id)
	}

	delete(evt.subs, id)
	close(ch)

	return nil
}

// Send delivers the event to every subscriber. Send never blocks; a
// subscriber whose buffer is full misses the event.
func (evt *Events) Send(s string) {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	for _, ch := range evt.subs {
		select {
		case ch <- s:
		default:
		}
	}
}

// Subscribers returns the number of registered subscribers.
func (evt *Events) Subscribers() int {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	return len(evt.subs)
}

// Shutdown closes and removes every subscriber channel.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, ch := range evt.subs {
		delete(evt.subs, id)
		close(ch)
	}
}
