package blockcipher

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// FIPS-197 appendix C.1.
func TestEncryptBlocksKnownAnswer(t *testing.T) {
	key := mustHex(t, "000102030405060708090a0b0c0d0e0f")
	pt := mustHex(t, "00112233445566778899aabbccddeeff")
	want := mustHex(t, "69c4e0d86a7b0430d8cdb78070b4c55a")

	ct, err := EncryptBlocks(key, pt)
	require.NoError(t, err)
	assert.Equal(t, want, ct)

	back, err := DecryptBlocks(key, ct)
	require.NoError(t, err)
	assert.Equal(t, pt, back)
}

func TestECBBlocksAreIndependent(t *testing.T) {
	key := mustHex(t, "000102030405060708090a0b0c0d0e0f")
	pt := bytes.Repeat(mustHex(t, "00112233445566778899aabbccddeeff"), 3)

	ct, err := EncryptBlocks(key, pt)
	require.NoError(t, err)
	require.Len(t, ct, len(pt))

	assert.Equal(t, ct[:16], ct[16:32])
	assert.Equal(t, ct[:16], ct[32:])
}

func TestRoundTrip(t *testing.T) {
	for _, n := range []int{16, 32, 48, 160} {
		key := make([]byte, KeySize)
		msg := make([]byte, n)
		_, _ = rand.Read(key)
		_, _ = rand.Read(msg)

		ct, err := EncryptBlocks(key, msg)
		require.NoError(t, err)
		pt, err := DecryptBlocks(key, ct)
		require.NoError(t, err)
		assert.Equal(t, msg, pt, "decrypt(encrypt(m)) for %d bytes", n)

		pt2, err := DecryptBlocks(key, msg)
		require.NoError(t, err)
		ct2, err := EncryptBlocks(key, pt2)
		require.NoError(t, err)
		assert.Equal(t, msg, ct2, "encrypt(decrypt(c)) for %d bytes", n)
	}
}

func TestInvalidInputLength(t *testing.T) {
	key := make([]byte, KeySize)
	for _, n := range []int{0, 1, 15, 17, 31} {
		ct, err := EncryptBlocks(key, make([]byte, n))
		assert.True(t, errors.Is(err, ErrInvalidInputLength), "encrypt %d bytes: %v", n, err)
		assert.Nil(t, ct)

		pt, err := DecryptBlocks(key, make([]byte, n))
		assert.True(t, errors.Is(err, ErrInvalidInputLength), "decrypt %d bytes: %v", n, err)
		assert.Nil(t, pt)
	}
}

func TestInvalidKeySize(t *testing.T) {
	for _, n := range []int{0, 15, 24, 32} {
		_, err := EncryptBlocks(make([]byte, n), make([]byte, BlockSize))
		assert.ErrorIs(t, err, ErrInvalidKeySize, "key of %d bytes", n)
	}
}

func TestStandardPairingKey(t *testing.T) {
	salt := mustHex(t, "000102030405060708090a0b0c0d0e0f")
	key := StandardPairingKey(salt, []byte("1234"))

	assert.Len(t, key, KeySize)
	assert.Equal(t, mustHex(t, "bad0b4f7cae08eb7c1b5acc763a8ed25"), key)

	// The key must be usable with the cipher.
	_, err := EncryptBlocks(key, make([]byte, BlockSize))
	assert.NoError(t, err)
}
