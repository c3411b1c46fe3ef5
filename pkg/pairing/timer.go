package pairing

import (
	"sync"
	"time"
)

// attemptTimer fires once when an attempt's deadline passes.
// Stop disarms it; a stopped or fired timer never fires again.
type attemptTimer struct {
	mu        sync.Mutex
	timer     *time.Timer
	startedAt time.Time
	duration  time.Duration
	fired     bool
}

// startAttemptTimer arms a timer that calls onExpire after d.
func startAttemptTimer(d time.Duration, onExpire func()) *attemptTimer {
	t := &attemptTimer{
		startedAt: time.Now(),
		duration:  d,
	}
	t.mu.Lock()
	t.timer = time.AfterFunc(d, func() {
		t.mu.Lock()
		if t.timer == nil {
			t.mu.Unlock()
			return
		}
		t.timer = nil
		t.fired = true
		t.mu.Unlock()

		onExpire()
	})
	t.mu.Unlock()
	return t
}

// Stop disarms the timer. Returns false if it already fired or was stopped.
func (t *attemptTimer) Stop() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer == nil {
		return false
	}
	t.timer.Stop()
	t.timer = nil
	return true
}

// Remaining returns the time left before expiry, or 0 once stopped or fired.
func (t *attemptTimer) Remaining() time.Duration {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer == nil {
		return 0
	}
	remaining := t.duration - time.Since(t.startedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}
