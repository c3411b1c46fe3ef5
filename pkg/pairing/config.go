package pairing

import (
	"crypto/rand"
	"io"
	"log/slog"
	"time"

	"github.com/streampair/streampair-go/pkg/cert"
	"github.com/streampair/streampair-go/pkg/host"
	"github.com/streampair/streampair-go/pkg/log"
	"github.com/streampair/streampair-go/pkg/response"
	"github.com/streampair/streampair-go/pkg/transport"
)

// Session defaults.
const (
	// DefaultTimeout bounds one pairing attempt.
	DefaultTimeout = 5 * time.Second

	// DefaultDeviceName is the devicename parameter hosts expect.
	DefaultDeviceName = "roth"

	// Endpoint is the host's pairing endpoint.
	Endpoint = "pair"
)

// Request parameter names.
const (
	ParamDeviceName  = "devicename"
	ParamUpdateState = "updateState"
	ParamPhrase      = "phrase"
	ParamSalt        = "salt"
	ParamClientCert  = "clientcert"
	ParamOTPAuth     = "otpauth"

	// PhraseGetServerCert asks the host to return its certificate.
	PhraseGetServerCert = "getservercert"
)

// Config configures a Session.
type Config struct {
	// Transport sends requests to the host. Required.
	Transport transport.Transport

	// Identity supplies the client certificate sent to the host. Required.
	Identity cert.IdentityProvider

	// Hosts resolves host IDs and records paired state. Required.
	Hosts host.Store

	// Classifier interprets host responses (default: response.NewClassifier()).
	Classifier *response.Classifier

	// Timeout bounds one attempt (default: DefaultTimeout).
	Timeout time.Duration

	// DeviceName is sent as the devicename parameter (default: DefaultDeviceName).
	DeviceName string

	// Rand is the salt source (default: crypto/rand.Reader).
	Rand io.Reader

	// Logger is the operational logger. Nil disables logging.
	Logger *slog.Logger

	// ProtocolLogger captures requests, responses and state changes.
	// Nil disables capture.
	ProtocolLogger log.Logger

	// Now returns the current time (default: time.Now).
	Now func() time.Time
}

func (c *Config) applyDefaults() {
	if c.Classifier == nil {
		c.Classifier = response.NewClassifier()
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.DeviceName == "" {
		c.DeviceName = DefaultDeviceName
	}
	if c.Rand == nil {
		c.Rand = rand.Reader
	}
	if c.ProtocolLogger == nil {
		c.ProtocolLogger = log.NoopLogger{}
	}
	if c.Now == nil {
		c.Now = time.Now
	}
}
