// Package otp implements the client side of one-time-password host pairing
// secrets.
//
// # Overview
//
// A host that supports OTP pairing displays a short-lived 4-digit PIN. The
// user enters that PIN (plus an optional passphrase configured on the host)
// on the client. The client never transmits the PIN itself; it sends a
// token proving knowledge of it.
//
// # Token Derivation
//
//	token = SHA-256( pin || hex(salt) || passphrase )
//
// The salt is 16 fresh random bytes per attempt. It is mixed in as its
// lowercase hexadecimal text, not as raw bytes, because the host derives
// the token the same way from the salt query parameter it receives. The
// token is transmitted as uppercase hexadecimal.
//
// # Secret Hygiene
//
// Go strings are immutable, so callers that need to scrub secrets keep
// them in byte slices. PIN, Salt and Token provide Wipe helpers for that.
package otp
