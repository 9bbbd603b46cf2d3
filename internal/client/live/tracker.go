package live

import (
	"sync"
	"time"
)

// Tracker remembers the updated_at of the last applied success event and
// rejects events that are not newer.
type Tracker struct {
	last time.Time
	mu   sync.Mutex
	set  bool
}

// NewTracker returns a tracker with no last update.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Bind starts tracking from at, the moment the currently displayed artifact
// was produced.
func (t *Tracker) Bind(at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last = at
	t.set = true
}

// Clear forgets the last update.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last = time.Time{}
	t.set = false
}

// Accept reports whether updatedAt is newer than the last update and, if so,
// advances the last update to it.
func (t *Tracker) Accept(updatedAt time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.set && !updatedAt.After(t.last) {
		return false
	}
	t.last = updatedAt
	t.set = true
	return true
}

// Last returns the last update and whether one is set.
func (t *Tracker) Last() (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last, t.set
}
