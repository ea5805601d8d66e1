// Package broadcast fans a zero-payload "data changed" signal out to every
// active session sharing the same cache. The signal is advisory: a slow
// subscriber drops it and simply misses one refresh.
package broadcast

import (
	"sync"
)

// Channel is an in-process fan-out of change notifications.
type Channel struct {
	mu   sync.Mutex
	subs map[int]chan struct{}
	next int
}

// New creates an empty broadcast channel.
func New() *Channel {
	return &Channel{
		subs: make(map[int]chan struct{}),
	}
}

// Subscribe registers a listener. The returned cancel function releases the
// subscription; after cancel the signal channel receives nothing further.
func (c *Channel) Subscribe() (<-chan struct{}, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.next
	c.next++

	ch := make(chan struct{}, 1)
	c.subs[id] = ch

	cancel := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(sub)
		}
	}

	return ch, cancel
}

// Notify signals every subscriber without blocking. A subscriber that has
// not drained its previous signal keeps the one pending signal it already
// has; coalescing is fine because the payload is empty.
func (c *Channel) Notify() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, ch := range c.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
