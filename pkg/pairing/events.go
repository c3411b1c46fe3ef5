package pairing

import (
	"crypto/x509"
	"sync"
	"time"
)

// EventType identifies a pairing event.
type EventType uint8

const (
	// EventStarted - an attempt was accepted.
	EventStarted EventType = iota

	// EventProgress - the attempt reached a new step.
	EventProgress

	// EventCompleted - the host accepted the token; Identity is set.
	EventCompleted

	// EventFailed - the attempt failed; Err is set.
	EventFailed

	// EventCancelled - the attempt was cancelled by the caller.
	EventCancelled
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventStarted:
		return "STARTED"
	case EventProgress:
		return "PROGRESS"
	case EventCompleted:
		return "COMPLETED"
	case EventFailed:
		return "FAILED"
	case EventCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

// IsTerminal reports whether t ends an attempt.
func (t EventType) IsTerminal() bool {
	return t == EventCompleted || t == EventFailed || t == EventCancelled
}

// PairedIdentity is handed to the caller on success.
type PairedIdentity struct {
	// HostID is the paired host.
	HostID string

	// ServerCertificate is the certificate bytes the host returned.
	ServerCertificate []byte

	// Certificate is the parsed certificate, when it could be parsed.
	Certificate *x509.Certificate

	// PairedAt is when the pairing completed.
	PairedAt time.Time
}

// Event is a pairing notification.
type Event struct {
	// Type is the event type.
	Type EventType

	// AttemptID identifies the attempt (UUID).
	AttemptID string

	// HostID is the target host.
	HostID string

	// Message is human-readable text for display.
	Message string

	// Err is set for EventFailed.
	Err error

	// StatusCode is the host or HTTP status code, when known.
	StatusCode int

	// Identity is set for EventCompleted.
	Identity *PairedIdentity
}

// EventHandler is called for pairing events.
type EventHandler func(Event)

// dispatcher delivers events in emission order on one goroutine at a time.
type dispatcher struct {
	mu       sync.Mutex
	handlers []EventHandler
	queue    []Event
	running  bool
}

func (d *dispatcher) add(fn EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = append(d.handlers, fn)
}

// emit queues ev. It never blocks on handlers.
func (d *dispatcher) emit(ev Event) {
	d.mu.Lock()
	d.queue = append(d.queue, ev)
	if d.running {
		d.mu.Unlock()
		return
	}
	d.running = true
	d.mu.Unlock()

	go d.drain()
}

func (d *dispatcher) drain() {
	for {
		d.mu.Lock()
		if len(d.queue) == 0 {
			d.running = false
			d.mu.Unlock()
			return
		}
		ev := d.queue[0]
		d.queue[0] = Event{}
		d.queue = d.queue[1:]
		handlers := d.handlers
		d.mu.Unlock()

		for _, h := range handlers {
			h(ev)
		}
	}
}
