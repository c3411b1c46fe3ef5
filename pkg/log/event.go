package log

import (
	"time"
)

// Event represents a pairing log event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// AttemptID uniquely identifies the pairing attempt (UUID).
	AttemptID string `cbor:"2,keyasint"`

	// Direction indicates message flow.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// HostID is the target host's identifier.
	HostID string `cbor:"6,keyasint,omitempty"`

	// Address is the host address the request was sent to.
	Address string `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Request     *RequestEvent     `cbor:"10,keyasint,omitempty"` // Outgoing pairing request
	Response    *ResponseEvent    `cbor:"11,keyasint,omitempty"` // Host response
	StateChange *StateChangeEvent `cbor:"12,keyasint,omitempty"` // Session state
	Error       *ErrorEventData   `cbor:"13,keyasint,omitempty"` // Errors at any layer
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionIn indicates an incoming message.
	DirectionIn Direction = 0
	// DirectionOut indicates an outgoing message.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which layer captured the event.
type Layer uint8

const (
	// LayerTransport is the HTTP exchange layer.
	LayerTransport Layer = 0
	// LayerSession is the pairing session layer.
	LayerSession Layer = 1
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTransport:
		return "TRANSPORT"
	case LayerSession:
		return "SESSION"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryMessage indicates a request or response.
	CategoryMessage Category = 0
	// CategoryState indicates a state change.
	CategoryState Category = 1
	// CategoryError indicates an error event.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMessage:
		return "MESSAGE"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Redacted replaces secret parameter values in captured requests.
const Redacted = "<redacted>"

// Param is one captured request parameter.
type Param struct {
	Key   string `cbor:"1,keyasint"`
	Value string `cbor:"2,keyasint"`
}

// RedactParams returns a copy of params with the values of the named keys
// replaced by Redacted.
func RedactParams(params []Param, secretKeys ...string) []Param {
	out := make([]Param, len(params))
	for i, p := range params {
		out[i] = p
		for _, k := range secretKeys {
			if p.Key == k {
				out[i].Value = Redacted
				break
			}
		}
	}
	return out
}

// RequestEvent captures an outgoing pairing request.
type RequestEvent struct {
	// Endpoint is the request path segment.
	Endpoint string `cbor:"1,keyasint"`

	// Params are the request parameters, secrets redacted.
	Params []Param `cbor:"2,keyasint,omitempty"`
}

// MaxCapturedBody is the largest response body stored in a ResponseEvent.
const MaxCapturedBody = 4096

// ResponseEvent captures a host response.
type ResponseEvent struct {
	// Size is the response body size in bytes.
	Size int `cbor:"1,keyasint"`

	// Body is the response text (may be truncated for large bodies).
	Body string `cbor:"2,keyasint,omitempty"`

	// Truncated indicates if Body was truncated.
	Truncated bool `cbor:"3,keyasint,omitempty"`

	// Outcome is the classification of the response.
	Outcome string `cbor:"4,keyasint,omitempty"`

	// StatusCode is the status code the host reported, if any.
	StatusCode *int `cbor:"5,keyasint,omitempty"`

	// RoundTrip is the time from request send to response receipt.
	// Stored as nanoseconds.
	RoundTrip *time.Duration `cbor:"6,keyasint,omitempty"`
}

// NewResponseEvent builds a ResponseEvent, truncating body to MaxCapturedBody.
func NewResponseEvent(body string) *ResponseEvent {
	ev := &ResponseEvent{Size: len(body), Body: body}
	if len(body) > MaxCapturedBody {
		ev.Body = body[:MaxCapturedBody]
		ev.Truncated = true
	}
	return ev
}

// StateChangeEvent captures pairing session lifecycle events.
type StateChangeEvent struct {
	// OldState is the previous state (may be empty).
	OldState string `cbor:"1,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"2,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Code is the error code (if applicable).
	Code *int `cbor:"3,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"4,keyasint,omitempty"`
}
