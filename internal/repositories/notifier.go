package repositories

import (
	"sync"

	"github.com/desertthunder/inventory/internal/shared"
)

// Notifier fans out change signals to subscribers.
//
// Each subscriber channel has a buffer of one; pending signals are coalesced and [Notifier.Publish] never blocks.
type Notifier struct {
	mu     sync.Mutex
	subs   map[string]chan struct{}
	closed bool
}

// NewNotifier creates an empty Notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[string]chan struct{})}
}

// Subscribe registers a subscriber and returns its ID and signal channel.
//
// After [Notifier.Close] the returned channel is already closed.
func (n *Notifier) Subscribe() (string, <-chan struct{}) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := shared.GenerateID()
	ch := make(chan struct{}, 1)
	if n.closed {
		close(ch)
		return id, ch
	}

	n.subs[id] = ch
	return id, ch
}

// Unsubscribe removes the subscriber and closes its channel. Unknown IDs are ignored.
func (n *Notifier) Unsubscribe(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if ch, ok := n.subs[id]; ok {
		delete(n.subs, id)
		close(ch)
	}
}

// Publish signals every subscriber without blocking.
func (n *Notifier) Publish() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs {
		select {
		case ch <- struct{}{}:
		default:
			// already pending
		}
	}
}

// Len returns the number of active subscribers.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}

// Close closes every subscriber channel and rejects future subscriptions.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return
	}
	n.closed = true
	for id, ch := range n.subs {
		delete(n.subs, id)
		close(ch)
	}
}
