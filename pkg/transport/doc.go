// Package transport performs the request/response exchange with a
// streaming host's HTTP pairing endpoint.
//
// A request is a GET on http://<address>/<endpoint> with an ordered query
// string. Every request is tagged with the client's unique ID and a fresh
// per-request UUID ahead of the caller's parameters:
//
//	GET /pair?uniqueid=0123456789ABCDEF&uuid=<uuid>&devicename=roth&...
//
// # Failures
//
// Two kinds of failure are distinguished:
//   - *TransportError: the exchange did not complete (DNS, refused
//     connection, reset, deadline). StatusCode is 0.
//   - *ProtocolError: the host answered with an HTTP error status.
//
// A body with a 2xx status is returned as-is, even when it carries an
// application-level error envelope; interpreting it is the caller's job.
package transport
