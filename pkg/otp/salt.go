package otp

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// SaltSize is the number of random bytes in a pairing salt.
const SaltSize = 16

// Salt is the per-attempt random value mixed into the token.
type Salt [SaltSize]byte

// GenerateSalt reads a fresh salt from r.
// A nil reader uses crypto/rand.Reader.
func GenerateSalt(r io.Reader) (Salt, error) {
	if r == nil {
		r = rand.Reader
	}
	var s Salt
	if _, err := io.ReadFull(r, s[:]); err != nil {
		return Salt{}, fmt.Errorf("failed to generate salt: %w", err)
	}
	return s, nil
}

// Hex returns the salt as lowercase hexadecimal text.
// This is both the wire form and the form mixed into the token.
func (s Salt) Hex() string {
	return hex.EncodeToString(s[:])
}

// Wipe zeroes the salt.
func (s *Salt) Wipe() {
	*s = Salt{}
}
