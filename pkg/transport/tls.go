package transport

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/streampair/streampair-go/pkg/cert"
)

// DefaultTLSPort is the host's TLS port. Hosts only complete a handshake
// on it for clients whose certificate they accepted during pairing.
const DefaultTLSPort = 47984

// TLSAddress maps a pairing address to the host's TLS endpoint. Any port
// in address is replaced by DefaultTLSPort.
func TLSAddress(address string) string {
	address = strings.TrimPrefix(address, "http://")
	address = strings.TrimSuffix(address, "/")
	if h, _, err := net.SplitHostPort(address); err == nil {
		address = h
	}
	address = strings.TrimSuffix(strings.TrimPrefix(address, "["), "]")
	return net.JoinHostPort(address, strconv.Itoa(DefaultTLSPort))
}

// VerifyPinnedHost performs a TLS handshake with address, presenting client
// as the client certificate. The handshake succeeds only if the host's leaf
// certificate is the pinned one. A mismatch wraps cert.ErrCertMismatch.
func VerifyPinnedHost(ctx context.Context, address string, client tls.Certificate, pinned *x509.Certificate, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	dialer := &tls.Dialer{
		Config: &tls.Config{
			Certificates: []tls.Certificate{client},
			// Hosts present self-signed certificates, so chain building
			// is replaced by the pin check.
			InsecureSkipVerify:    true,
			VerifyPeerCertificate: cert.VerifyPinned(pinned),
			MinVersion:            tls.VersionTLS12,
		},
	}

	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		if errors.Is(err, cert.ErrCertMismatch) {
			return &TransportError{Detail: "host certificate changed since pairing", Err: err}
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return &TransportError{Detail: ErrTimeout.Error(), Err: ErrTimeout}
		}
		return &TransportError{Detail: err.Error(), Err: err}
	}
	return conn.Close()
}
