package keypad

import (
	"sync"
	"time"
)

// DefaultStatusTTL is how long a status message stays up.
const DefaultStatusTTL = 4500 * time.Millisecond

// StatusTimer owns the single pending expiry for the status banner. Set
// always cancels the previous timer before (optionally) arming a new one,
// so at most one is pending at any time.
type StatusTimer struct {
	mu     sync.Mutex
	ttl    time.Duration
	timer  *time.Timer
	expire func(seq uint64)
}

// NewStatusTimer calls expire(seq) from its own goroutine once ttl has
// passed without another Set.
func NewStatusTimer(ttl time.Duration, expire func(seq uint64)) *StatusTimer {
	if ttl <= 0 {
		ttl = DefaultStatusTTL
	}
	return &StatusTimer{ttl: ttl, expire: expire}
}

// Apply handles a StatusChanged effect.
func (t *StatusTimer) Apply(c StatusChanged) {
	t.Set(c.Seq, c.Text != "")
}

// Set cancels any pending expiry and arms a new one for seq when arm is true.
func (t *StatusTimer) Set(seq uint64, arm bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	if !arm {
		return
	}

	var timer *time.Timer
	timer = time.AfterFunc(t.ttl, func() {
		t.mu.Lock()
		current := t.timer == timer
		if current {
			t.timer = nil
		}
		t.mu.Unlock()

		// Lost a race with Set; the replacement owns the banner now.
		if !current {
			return
		}
		t.expire(seq)
	})
	t.timer = timer
}

// Pending reports whether an expiry is armed.
func (t *StatusTimer) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}

// Stop cancels any pending expiry.
func (t *StatusTimer) Stop() {
	t.Set(0, false)
}
