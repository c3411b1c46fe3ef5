package response

import (
	"crypto/x509"
	"encoding/hex"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/streampair/streampair-go/pkg/cert"
)

// Response markers.
const (
	markerStatus503       = `status_code="503"`
	markerStatus400       = `status_code="400"`
	markerInvalidUniqueID = `Invalid uniqueid`
	markerOTPNotAvailable = `status_message="OTP auth not available."`
	markerRootStatus200   = `<root status_code="200">`
	markerPaired          = `<paired>1</paired>`
)

var (
	plainCertRegex     = regexp.MustCompile(`<plaincert>([A-Fa-f0-9]+)</plaincert>`)
	statusCodeRegex    = regexp.MustCompile(`status_code="(-?\d+)"`)
	statusMessageRegex = regexp.MustCompile(`status_message="([^"]*)"`)
)

// Kind is the classified result of a pairing response.
type Kind uint8

const (
	// KindNoResponse indicates the host returned nothing.
	KindNoResponse Kind = iota

	// KindSuccess indicates the host accepted the token and returned its certificate.
	KindSuccess

	// KindWrongSecret indicates the host rejected the derived token.
	KindWrongSecret

	// KindOTPUnavailable indicates no OTP is active on the host, or it expired.
	KindOTPUnavailable

	// KindMalformedRequest indicates the host rejected the request itself
	// (an invalid uniqueid), which is a configuration problem rather than a
	// wrong secret.
	KindMalformedRequest

	// KindParseError indicates the response could not be interpreted, or the
	// certificate it carried was missing or invalid.
	KindParseError
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindNoResponse:
		return "NO_RESPONSE"
	case KindSuccess:
		return "SUCCESS"
	case KindWrongSecret:
		return "WRONG_SECRET"
	case KindOTPUnavailable:
		return "OTP_UNAVAILABLE"
	case KindMalformedRequest:
		return "MALFORMED_REQUEST"
	case KindParseError:
		return "PARSE_ERROR"
	default:
		return "UNKNOWN"
	}
}

// Outcome is the immutable result of classifying a response.
// ServerCertificate is non-nil if and only if Kind is KindSuccess.
type Outcome struct {
	Kind Kind

	// ServerCertificate holds the bytes decoded from the plaincert field.
	ServerCertificate []byte

	// Certificate is the parsed form of ServerCertificate, when the
	// certificate check produced one.
	Certificate *x509.Certificate

	// Detail is a short diagnostic. For unrecognised responses it is the
	// raw response text.
	Detail string
}

// CertificateCheck validates the decoded plaincert bytes.
// It may return a nil certificate with a nil error to accept opaque bytes.
type CertificateCheck func(data []byte) (*x509.Certificate, error)

// ParseCertificate is the default check: the bytes must hold a PEM or DER
// X.509 certificate.
func ParseCertificate(data []byte) (*x509.Certificate, error) {
	return cert.ParseCertificate(data)
}

// AcceptAnyCertificate accepts any non-empty payload without parsing it.
func AcceptAnyCertificate(data []byte) (*x509.Certificate, error) {
	if len(data) == 0 {
		return nil, errors.New("empty certificate")
	}
	return nil, nil
}

// Classifier turns response text into an Outcome.
type Classifier struct {
	check CertificateCheck
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithCertificateCheck replaces the certificate check.
func WithCertificateCheck(fn CertificateCheck) Option {
	return func(c *Classifier) {
		if fn != nil {
			c.check = fn
		}
	}
}

// NewClassifier creates a classifier. The default certificate check is
// ParseCertificate.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{check: ParseCertificate}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultClassifier = NewClassifier()

// Classify classifies text with the default classifier, which requires the
// certificate payload to parse as X.509. For opaque payloads use
// NewClassifier(WithCertificateCheck(AcceptAnyCertificate)).
func Classify(text string) Outcome {
	return defaultClassifier.Classify(text)
}

// Classify applies the marker precedence to text.
func (c *Classifier) Classify(text string) Outcome {
	switch {
	case text == "":
		return Outcome{Kind: KindNoResponse}

	case strings.Contains(text, markerStatus503):
		return Outcome{Kind: KindOTPUnavailable, Detail: "OTP expired or not active"}

	case strings.Contains(text, markerStatus400):
		if strings.Contains(text, markerInvalidUniqueID) {
			return Outcome{Kind: KindMalformedRequest, Detail: "invalid uniqueid"}
		}
		return Outcome{Kind: KindWrongSecret, Detail: "invalid OTP hash"}

	case strings.Contains(text, markerOTPNotAvailable):
		return Outcome{Kind: KindOTPUnavailable, Detail: "OTP auth not available"}

	case strings.Contains(text, markerRootStatus200) && strings.Contains(text, markerPaired):
		return c.extractCertificate(text)
	}

	return Outcome{Kind: KindParseError, Detail: text}
}

func (c *Classifier) extractCertificate(text string) Outcome {
	m := plainCertRegex.FindStringSubmatch(text)
	if m == nil {
		return Outcome{Kind: KindParseError, Detail: "server certificate not found in response"}
	}

	data, err := hex.DecodeString(m[1])
	if err != nil {
		// Odd number of hex digits.
		return Outcome{Kind: KindParseError, Detail: "invalid server certificate encoding: " + err.Error()}
	}

	parsed, err := c.check(data)
	if err != nil {
		return Outcome{Kind: KindParseError, Detail: "invalid server certificate: " + err.Error()}
	}

	return Outcome{
		Kind:              KindSuccess,
		ServerCertificate: data,
		Certificate:       parsed,
	}
}

// StatusCode extracts the first status_code attribute from text.
func StatusCode(text string) (int, bool) {
	m := statusCodeRegex.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	code, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return code, true
}

// StatusMessage extracts the first status_message attribute from text.
func StatusMessage(text string) string {
	m := statusMessageRegex.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}
