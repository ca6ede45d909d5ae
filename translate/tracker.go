package translate

import (
	"sync"

	"github.com/google/uuid"
)

// Tracker reports whether any translation request is in flight. Each
// request holds its own token, so overlapping requests cannot clear each
// other's pending state.
type Tracker struct {
	mu       sync.Mutex
	inflight map[string]struct{}
	onChange func(loading bool)
}

// NewTracker returns a Tracker. onChange, if non-nil, runs on every
// idle/loading transition.
func NewTracker(onChange func(loading bool)) *Tracker {
	return &Tracker{
		inflight: make(map[string]struct{}),
		onChange: onChange,
	}
}

// Begin marks a request as started and returns its token.
func (t *Tracker) Begin() string {
	token := uuid.NewString()

	t.mu.Lock()
	t.inflight[token] = struct{}{}
	started := len(t.inflight) == 1
	t.mu.Unlock()

	if started && t.onChange != nil {
		t.onChange(true)
	}
	return token
}

// End marks the request identified by token as finished. Unknown tokens are
// ignored.
func (t *Tracker) End(token string) {
	t.mu.Lock()
	_, ok := t.inflight[token]
	delete(t.inflight, token)
	idle := ok && len(t.inflight) == 0
	t.mu.Unlock()

	if idle && t.onChange != nil {
		t.onChange(false)
	}
}

// Loading reports whether any request is in flight.
func (t *Tracker) Loading() bool {
	return t.InFlight() > 0
}

// InFlight returns the number of requests in flight.
func (t *Tracker) InFlight() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.inflight)
}
