// Package pairing drives OTP pairing with a streaming host.
//
// A Session owns at most one in-flight attempt. StartPairing validates its
// inputs synchronously and returns immediately; the exchange with the host
// runs in the background and its outcome is reported through events
// registered with OnEvent:
//
//	s := pairing.NewSession(pairing.Config{
//	    Transport: transport.NewHTTPTransport(transport.HTTPConfig{}),
//	    Identity:  identity,
//	    Hosts:     store,
//	})
//	s.OnEvent(func(ev pairing.Event) {
//	    switch ev.Type {
//	    case pairing.EventCompleted:
//	        // ev.Identity holds the host certificate
//	    case pairing.EventFailed:
//	        // ev.Err wraps one of the failure sentinels
//	    }
//	})
//	id, err := s.StartPairing(ctx, hostID, "9067", "passphrase")
//
// # Lifecycle
//
//	Idle -> InProgress -> Succeeded | Failed
//	InProgress -> Idle (Cancel)
//
// Exactly one EventCompleted, EventFailed or EventCancelled is delivered per
// accepted attempt. Events are delivered in order on a single goroutine,
// never while the session lock is held, so handlers may call back into the
// session.
//
// The attempt's PIN, passphrase, salt and derived token are zeroed before
// any terminal event is delivered.
package pairing
