package host

import (
	"crypto/x509"
	"time"

	"github.com/streampair/streampair-go/pkg/cert"
)

// DefaultHTTPPort is the host's plain-HTTP port used for pairing.
const DefaultHTTPPort = 47989

// ServerType identifies the server software running on a host.
type ServerType uint8

const (
	// ServerUnknown indicates the server software has not been identified.
	ServerUnknown ServerType = iota

	// ServerVendor indicates the GPU vendor's proprietary streaming server.
	// It does not implement OTP pairing.
	ServerVendor

	// ServerCompatible indicates a community-compatible server that
	// implements OTP pairing.
	ServerCompatible
)

// String returns a human-readable server type name.
func (s ServerType) String() string {
	switch s {
	case ServerUnknown:
		return "UNKNOWN"
	case ServerVendor:
		return "VENDOR"
	case ServerCompatible:
		return "COMPATIBLE"
	default:
		return "UNKNOWN"
	}
}

// ParseServerType parses the String form of a ServerType.
// Unrecognised names map to ServerUnknown.
func ParseServerType(s string) ServerType {
	switch s {
	case "VENDOR", "vendor":
		return ServerVendor
	case "COMPATIBLE", "compatible":
		return ServerCompatible
	default:
		return ServerUnknown
	}
}

// PairState is the client-side pairing marker for a host.
type PairState uint8

const (
	// PairStateUnknown indicates the pair state has not been determined.
	PairStateUnknown PairState = iota

	// PairStateNotPaired indicates no trusted certificate exists.
	PairStateNotPaired

	// PairStatePaired indicates the host certificate is trusted.
	PairStatePaired
)

// String returns a human-readable pair state name.
func (p PairState) String() string {
	switch p {
	case PairStateUnknown:
		return "UNKNOWN"
	case PairStateNotPaired:
		return "NOT_PAIRED"
	case PairStatePaired:
		return "PAIRED"
	default:
		return "UNKNOWN"
	}
}

// Host is the client's record of a streaming host.
type Host struct {
	// ID is the host's unique identifier.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name,omitempty"`

	// Address is host or host:port of the HTTP pairing endpoint.
	Address string `json:"address"`

	// ServerType identifies the server software.
	ServerType ServerType `json:"server_type"`

	// PairState is the client-side pairing marker.
	PairState PairState `json:"pair_state"`

	// ServerCert is the certificate bytes received at pairing time.
	ServerCert []byte `json:"server_cert,omitempty"`

	// PairedAt is when pairing last succeeded.
	PairedAt time.Time `json:"paired_at,omitempty"`

	// LastSeen is when the host was last discovered or contacted.
	LastSeen time.Time `json:"last_seen,omitempty"`
}

// SupportsOTP reports whether OTP pairing may be attempted with this host.
// The vendor's proprietary server is the only software known not to
// support it.
func (h *Host) SupportsOTP() bool {
	return h.ServerType != ServerVendor
}

// IsPaired reports whether the host is marked paired.
func (h *Host) IsPaired() bool {
	return h.PairState == PairStatePaired
}

// Certificate parses the stored server certificate.
func (h *Host) Certificate() (*x509.Certificate, error) {
	return cert.ParseCertificate(h.ServerCert)
}

// Clone returns a deep copy of h.
func (h *Host) Clone() *Host {
	if h == nil {
		return nil
	}
	c := *h
	if h.ServerCert != nil {
		c.ServerCert = append([]byte(nil), h.ServerCert...)
	}
	return &c
}
