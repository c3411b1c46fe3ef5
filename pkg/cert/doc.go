// Package cert handles the certificates involved in host pairing: the
// client's own identity certificate, which is sent to the host during
// pairing, and the host certificate returned on success, which is pinned
// for every later encrypted session.
//
// Hosts exchange certificates as hexadecimal text of a PEM document. The
// helpers here accept either PEM or raw DER so callers do not need to know
// which form a particular host used.
package cert
