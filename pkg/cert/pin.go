package cert

import (
	"bytes"
	"crypto/x509"
	"errors"
	"fmt"
)

// ErrCertMismatch is returned when a peer presents a certificate other than
// the one pinned at pairing time.
var ErrCertMismatch = errors.New("peer certificate does not match pinned certificate")

// VerifyPinned creates a verification callback for TLS connections to a
// paired host. The host's leaf certificate must be byte-identical to the
// certificate received during pairing; chain building is not used because
// hosts present self-signed certificates.
func VerifyPinned(pinned *x509.Certificate) func(rawCerts [][]byte, verifiedChains [][]*x509.Certificate) error {
	return func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
		if pinned == nil {
			return fmt.Errorf("%w: nothing pinned", ErrCertMismatch)
		}
		if len(rawCerts) == 0 {
			return fmt.Errorf("no peer certificate")
		}
		if !bytes.Equal(rawCerts[0], pinned.Raw) {
			return ErrCertMismatch
		}
		return nil
	}
}
