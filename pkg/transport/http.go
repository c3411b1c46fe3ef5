package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/streampair/streampair-go/pkg/response"
)

// Transport defaults.
const (
	// DefaultPort is the host's HTTP pairing port.
	DefaultPort = 47989

	// DefaultUniqueID is the client unique ID hosts expect from clients
	// that do not generate their own.
	DefaultUniqueID = "0123456789ABCDEF"

	// DefaultMaxBodySize caps how much of a response body is read.
	DefaultMaxBodySize = 1 << 20
)

// HTTPConfig configures an HTTPTransport.
type HTTPConfig struct {
	// UniqueID is sent as the uniqueid parameter (default: DefaultUniqueID).
	UniqueID string

	// DefaultPort is appended to addresses without a port (default: DefaultPort).
	DefaultPort int

	// MaxBodySize caps the response body (default: DefaultMaxBodySize).
	MaxBodySize int64

	// Client is the HTTP client to use. A nil client gets a dedicated one
	// that does not follow proxies from the environment.
	Client *http.Client
}

// HTTPTransport implements Transport over plain HTTP.
type HTTPTransport struct {
	config HTTPConfig
	client *http.Client
}

// NewHTTPTransport creates an HTTP transport.
func NewHTTPTransport(config HTTPConfig) *HTTPTransport {
	if config.UniqueID == "" {
		config.UniqueID = DefaultUniqueID
	}
	if config.DefaultPort == 0 {
		config.DefaultPort = DefaultPort
	}
	if config.MaxBodySize == 0 {
		config.MaxBodySize = DefaultMaxBodySize
	}

	client := config.Client
	if client == nil {
		client = &http.Client{
			Transport: &http.Transport{
				Proxy:               nil,
				DialContext:         (&net.Dialer{}).DialContext,
				DisableKeepAlives:   true,
				MaxIdleConnsPerHost: 1,
			},
		}
	}

	return &HTTPTransport{
		config: config,
		client: client,
	}
}

// BuildURL returns the request URL for baseAddress, endpoint and params,
// including the uniqueid and uuid tags.
func (t *HTTPTransport) BuildURL(baseAddress, endpoint string, params []Param) string {
	return t.buildURL(baseAddress, endpoint, params, uuid.NewString())
}

func (t *HTTPTransport) buildURL(baseAddress, endpoint string, params []Param, requestID string) string {
	var q strings.Builder
	q.WriteString("uniqueid=")
	q.WriteString(url.QueryEscape(t.config.UniqueID))
	q.WriteString("&uuid=")
	q.WriteString(url.QueryEscape(requestID))
	for _, p := range params {
		q.WriteByte('&')
		q.WriteString(url.QueryEscape(p.Key))
		q.WriteByte('=')
		q.WriteString(url.QueryEscape(p.Value))
	}

	u := url.URL{
		Scheme:   "http",
		Host:     t.hostPort(baseAddress),
		Path:     "/" + strings.TrimPrefix(endpoint, "/"),
		RawQuery: q.String(),
	}
	return u.String()
}

// hostPort appends the default port when address has none.
func (t *HTTPTransport) hostPort(address string) string {
	address = strings.TrimPrefix(address, "http://")
	address = strings.TrimSuffix(address, "/")
	if _, _, err := net.SplitHostPort(address); err == nil {
		return address
	}
	address = strings.TrimSuffix(strings.TrimPrefix(address, "["), "]")
	return net.JoinHostPort(address, strconv.Itoa(t.config.DefaultPort))
}

// Send implements Transport.
func (t *HTTPTransport) Send(ctx context.Context, baseAddress, endpoint string, params []Param, timeout time.Duration) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.BuildURL(baseAddress, endpoint, params), nil)
	if err != nil {
		return "", &TransportError{Detail: err.Error(), Err: err}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return "", t.wrapError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, t.config.MaxBodySize))
	if err != nil {
		return "", t.wrapError(ctx, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		msg := response.StatusMessage(string(body))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", &ProtocolError{
			StatusCode: resp.StatusCode,
			Message:    msg,
			Body:       string(body),
		}
	}

	return string(body), nil
}

func (t *HTTPTransport) wrapError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &TransportError{Detail: ErrTimeout.Error(), Err: fmt.Errorf("%w: %v", ErrTimeout, err)}
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return &TransportError{Detail: "request canceled", Err: ctx.Err()}
	}
	return &TransportError{Detail: err.Error(), Err: err}
}

// Compile-time interface satisfaction check.
var _ Transport = (*HTTPTransport)(nil)
