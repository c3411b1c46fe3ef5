// Package blockcipher provides the AES-128-ECB primitive used by host
// pairing handshakes.
//
// The pairing protocol encrypts fixed-size challenges with a 128-bit key in
// electronic-codebook mode with padding disabled. Callers must supply whole
// blocks; anything else is a programming error and is rejected rather than
// padded or truncated.
package blockcipher

import (
	"crypto/aes"
	"crypto/sha256"
	"errors"
	"fmt"
)

// BlockSize is the AES block size in bytes.
const BlockSize = aes.BlockSize

// KeySize is the only supported key size (AES-128).
const KeySize = 16

// Cipher errors.
var (
	ErrInvalidInputLength = errors.New("input length is not a positive multiple of the block size")
	ErrInvalidKeySize     = errors.New("key must be 16 bytes")
)

// EncryptBlocks encrypts plaintext block by block under key.
// The returned ciphertext has the same length as plaintext.
func EncryptBlocks(key, plaintext []byte) ([]byte, error) {
	return process(key, plaintext, true)
}

// DecryptBlocks decrypts ciphertext block by block under key.
func DecryptBlocks(key, ciphertext []byte) ([]byte, error) {
	return process(key, ciphertext, false)
}

func process(key, in []byte, encrypt bool) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidKeySize, len(key))
	}
	if len(in) == 0 || len(in)%BlockSize != 0 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidInputLength, len(in))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(in))
	for off := 0; off < len(in); off += BlockSize {
		if encrypt {
			block.Encrypt(out[off:off+BlockSize], in[off:off+BlockSize])
		} else {
			block.Decrypt(out[off:off+BlockSize], in[off:off+BlockSize])
		}
	}
	return out, nil
}

// StandardPairingKey derives the AES key used by the standard PIN pairing
// flow: the first 16 bytes of SHA-256(salt || pin).
func StandardPairingKey(salt, pin []byte) []byte {
	h := sha256.New()
	h.Write(salt)
	h.Write(pin)
	return h.Sum(nil)[:KeySize]
}
