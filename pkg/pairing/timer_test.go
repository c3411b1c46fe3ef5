package pairing

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAttemptTimerFires(t *testing.T) {
	fired := make(chan struct{})
	tm := startAttemptTimer(10*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}

	assert.False(t, tm.Stop(), "Stop after fire")
	assert.Zero(t, tm.Remaining())
}

func TestAttemptTimerStop(t *testing.T) {
	var calls atomic.Int32
	tm := startAttemptTimer(20*time.Millisecond, func() { calls.Add(1) })

	assert.Greater(t, tm.Remaining(), time.Duration(0))
	assert.True(t, tm.Stop())
	assert.False(t, tm.Stop(), "second Stop")

	time.Sleep(40 * time.Millisecond)
	assert.Zero(t, calls.Load())
	assert.Zero(t, tm.Remaining())
}

func TestAttemptTimerNil(t *testing.T) {
	var tm *attemptTimer
	assert.False(t, tm.Stop())
	assert.Zero(t, tm.Remaining())
}
