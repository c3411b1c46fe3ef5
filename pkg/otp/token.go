package otp

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// TokenSize is the size of a derived token (SHA-256 width).
const TokenSize = sha256.Size

// Token is the derived authentication token sent in place of the PIN.
type Token [TokenSize]byte

// DeriveToken computes SHA-256(pin || hex(salt) || passphrase).
//
// The salt contributes its lowercase hex text, not its raw bytes. Any input
// is valid, including an empty passphrase.
func DeriveToken(pin []byte, salt Salt, passphrase []byte) Token {
	h := sha256.New()
	h.Write(pin)
	h.Write([]byte(salt.Hex()))
	h.Write(passphrase)

	var t Token
	copy(t[:], h.Sum(nil))
	return t
}

// DeriveTokenString is DeriveToken for string inputs.
func DeriveTokenString(pin string, salt Salt, passphrase string) Token {
	return DeriveToken([]byte(pin), salt, []byte(passphrase))
}

// Hex returns the token as uppercase hexadecimal, the form the host expects.
func (t Token) Hex() string {
	return strings.ToUpper(hex.EncodeToString(t[:]))
}

// Wipe zeroes the token.
func (t *Token) Wipe() {
	*t = Token{}
}
