package pairing

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherPreservesOrder(t *testing.T) {
	var d dispatcher

	var mu sync.Mutex
	var got []string
	done := make(chan struct{})
	d.add(func(ev Event) {
		mu.Lock()
		got = append(got, ev.Message)
		n := len(got)
		mu.Unlock()
		if n == 100 {
			close(done)
		}
	})

	want := make([]string, 100)
	for i := range want {
		want[i] = time.Duration(i).String()
		d.emit(Event{Message: want[i]})
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("events not delivered")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, want, got)
}

func TestDispatcherHandlerMayEmit(t *testing.T) {
	var d dispatcher

	done := make(chan struct{})
	d.add(func(ev Event) {
		switch ev.Type {
		case EventStarted:
			d.emit(Event{Type: EventCompleted})
		case EventCompleted:
			close(done)
		}
	})
	d.emit(Event{Type: EventStarted})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("nested emit not delivered")
	}
}

func TestEventTypeString(t *testing.T) {
	tests := []struct {
		typ      EventType
		want     string
		terminal bool
	}{
		{EventStarted, "STARTED", false},
		{EventProgress, "PROGRESS", false},
		{EventCompleted, "COMPLETED", true},
		{EventFailed, "FAILED", true},
		{EventCancelled, "CANCELLED", true},
		{EventType(99), "UNKNOWN", false},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
			assert.Equal(t, tt.terminal, tt.typ.IsTerminal())
		})
	}
}

func TestStateString(t *testing.T) {
	require.Equal(t, "IDLE", StateIdle.String())
	require.Equal(t, "IN_PROGRESS", StateInProgress.String())
	require.Equal(t, "SUCCEEDED", StateSucceeded.String())
	require.Equal(t, "FAILED", StateFailed.String())
	require.Equal(t, "UNKNOWN", State(42).String())

	assert.False(t, StateIdle.IsTerminal())
	assert.False(t, StateInProgress.IsTerminal())
	assert.True(t, StateSucceeded.IsTerminal())
	assert.True(t, StateFailed.IsTerminal())
}
