package transport

import (
	"context"
	"time"
)

// Param is one query parameter. Order is preserved on the wire.
type Param struct {
	Key   string
	Value string
}

// Transport sends a request to a host endpoint and returns the raw
// response text.
type Transport interface {
	// Send performs one round trip. baseAddress is host or host:port;
	// endpoint is the path segment (e.g. "pair"). The call returns when a
	// response arrives, timeout elapses, or ctx is done.
	Send(ctx context.Context, baseAddress, endpoint string, params []Param, timeout time.Duration) (string, error)
}
