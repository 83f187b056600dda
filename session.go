package artily

import (
	"sync"

	"github.com/balumaqsud/artily-client/market"
)

// SessionCell is the process-wide holder of the current member profile:
// single writer (the session Manager), many readers. Every write replaces the
// profile wholesale, so readers never observe a partially updated member.
type SessionCell struct {
	mu     sync.RWMutex
	member market.Member

	subMu  sync.Mutex
	subs   map[int]func(market.Member)
	nextID int
}

// NewSessionCell returns a cell holding the anonymous sentinel.
func NewSessionCell() *SessionCell {
	return &SessionCell{subs: map[int]func(market.Member){}}
}

// Current returns the member profile as of the last write. The zero value
// means anonymous.
func (c *SessionCell) Current() market.Member {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.member
}

// Subscribe registers fn to run synchronously after every write, and returns
// an unsubscribe func. The new subscriber is immediately called with the
// current value so late subscribers do not miss the standing state.
func (c *SessionCell) Subscribe(fn func(market.Member)) func() {
	if fn == nil {
		return func() {}
	}

	c.subMu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.subMu.Unlock()

	fn(c.Current())

	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

// set replaces the profile and notifies subscribers. Package-private on
// purpose: only the session lifecycle operations write the cell, the same
// single-writer boundary the rest of the client relies on.
func (c *SessionCell) set(member market.Member) {
	c.mu.Lock()
	c.member = member
	c.mu.Unlock()

	c.subMu.Lock()
	subs := make([]func(market.Member), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.subMu.Unlock()

	for _, fn := range subs {
		fn(member)
	}
}
