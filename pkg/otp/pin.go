package otp

import (
	"errors"
	"fmt"
)

// PINLength is the number of digits in an OTP pairing PIN.
const PINLength = 4

// PIN errors.
var (
	ErrInvalidPIN = errors.New("invalid PIN")
)

// PIN is a validated 4-digit OTP PIN held as mutable bytes so it can be
// wiped after use.
type PIN []byte

// ParsePIN validates s and returns it as a PIN.
// The PIN must be exactly 4 ASCII digits. No trimming is applied.
func ParsePIN(s string) (PIN, error) {
	if err := ValidatePIN(s); err != nil {
		return nil, err
	}
	return PIN(s), nil
}

// ValidatePIN checks that s is exactly 4 ASCII digits.
func ValidatePIN(s string) error {
	if len(s) != PINLength {
		return fmt.Errorf("%w: must be exactly %d digits", ErrInvalidPIN, PINLength)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return fmt.Errorf("%w: must contain only digits", ErrInvalidPIN)
		}
	}
	return nil
}

// MustParsePIN parses a PIN and panics on error.
// Use only in tests or when the PIN is known to be valid.
func MustParsePIN(s string) PIN {
	p, err := ParsePIN(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the PIN digits.
func (p PIN) String() string {
	return string(p)
}

// Wipe zeroes the PIN bytes in place.
func (p PIN) Wipe() {
	Wipe(p)
}

// Wipe zeroes b in place.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
