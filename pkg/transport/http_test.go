package transport

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serverAddress(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	return strings.TrimPrefix(srv.URL, "http://")
}

func TestHTTPTransportBuildURL(t *testing.T) {
	tr := NewHTTPTransport(HTTPConfig{})

	got := tr.buildURL("192.168.1.20", "pair", []Param{
		{Key: "devicename", Value: "roth"},
		{Key: "updateState", Value: "1"},
		{Key: "phrase", Value: "getservercert"},
	}, "11111111-2222-3333-4444-555555555555")

	assert.Equal(t,
		"http://192.168.1.20:47989/pair?uniqueid=0123456789ABCDEF&uuid=11111111-2222-3333-4444-555555555555"+
			"&devicename=roth&updateState=1&phrase=getservercert",
		got)
}

func TestHTTPTransportHostPort(t *testing.T) {
	tr := NewHTTPTransport(HTTPConfig{})

	tests := []struct {
		in   string
		want string
	}{
		{"10.0.0.5", "10.0.0.5:47989"},
		{"10.0.0.5:8080", "10.0.0.5:8080"},
		{"http://10.0.0.5/", "10.0.0.5:47989"},
		{"gamebox.local", "gamebox.local:47989"},
		{"fe80::1", "[fe80::1]:47989"},
		{"[fe80::1]", "[fe80::1]:47989"},
		{"[fe80::1]:1234", "[fe80::1]:1234"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.hostPort(tt.in))
		})
	}
}

func TestHTTPTransportSend(t *testing.T) {
	var gotQuery []string
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = strings.Split(r.URL.RawQuery, "&")
		_, _ = w.Write([]byte(`<root status_code="200"><paired>1</paired></root>`))
	}))
	defer srv.Close()

	tr := NewHTTPTransport(HTTPConfig{UniqueID: "ABCDEF0123456789"})
	body, err := tr.Send(context.Background(), serverAddress(t, srv), "pair", []Param{
		{Key: "salt", Value: "00ff"},
		{Key: "otpauth", Value: "AB12"},
	}, time.Second)
	require.NoError(t, err)

	assert.Equal(t, `<root status_code="200"><paired>1</paired></root>`, body)
	assert.Equal(t, "/pair", gotPath)
	require.Len(t, gotQuery, 4)
	assert.Equal(t, "uniqueid=ABCDEF0123456789", gotQuery[0])
	assert.True(t, strings.HasPrefix(gotQuery[1], "uuid="))
	_, err = uuid.Parse(strings.TrimPrefix(gotQuery[1], "uuid="))
	assert.NoError(t, err)
	assert.Equal(t, "salt=00ff", gotQuery[2])
	assert.Equal(t, "otpauth=AB12", gotQuery[3])
}

func TestHTTPTransportFreshRequestID(t *testing.T) {
	ids := make(chan string, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids <- r.URL.Query().Get("uuid")
	}))
	defer srv.Close()

	tr := NewHTTPTransport(HTTPConfig{})
	for i := 0; i < 2; i++ {
		_, err := tr.Send(context.Background(), serverAddress(t, srv), "pair", nil, time.Second)
		require.NoError(t, err)
	}

	assert.NotEqual(t, <-ids, <-ids)
}

func TestHTTPTransportApplicationErrorIsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<root status_code="503" status_message="OTP auth not available."/>`))
	}))
	defer srv.Close()

	tr := NewHTTPTransport(HTTPConfig{})
	body, err := tr.Send(context.Background(), serverAddress(t, srv), "pair", nil, time.Second)
	require.NoError(t, err)
	assert.Contains(t, body, `status_code="503"`)
}

func TestHTTPTransportProtocolError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	tr := NewHTTPTransport(HTTPConfig{})
	_, err := tr.Send(context.Background(), serverAddress(t, srv), "pair", nil, time.Second)

	var perr *ProtocolError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusNotFound, perr.StatusCode)
	assert.Equal(t, "Not Found", perr.Message)
	assert.Contains(t, perr.Body, "nope")
}

func TestHTTPTransportProtocolErrorUsesHostMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`<root status_code="503" status_message="The host is busy"/>`))
	}))
	defer srv.Close()

	tr := NewHTTPTransport(HTTPConfig{})
	_, err := tr.Send(context.Background(), serverAddress(t, srv), "pair", nil, time.Second)

	var perr *ProtocolError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusServiceUnavailable, perr.StatusCode)
	assert.Equal(t, "The host is busy", perr.Message)
}

func TestHTTPTransportTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	tr := NewHTTPTransport(HTTPConfig{})
	_, err := tr.Send(context.Background(), serverAddress(t, srv), "pair", nil, 50*time.Millisecond)

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Zero(t, terr.StatusCode)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestHTTPTransportCanceled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	tr := NewHTTPTransport(HTTPConfig{})
	_, err := tr.Send(ctx, serverAddress(t, srv), "pair", nil, 5*time.Second)

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, errors.Is(err, ErrTimeout))
}

func TestHTTPTransportConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	tr := NewHTTPTransport(HTTPConfig{})
	_, err = tr.Send(context.Background(), addr, "pair", nil, time.Second)

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.NotEmpty(t, terr.Detail)
	assert.Zero(t, terr.StatusCode)
}

func TestHTTPTransportBodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 100)))
	}))
	defer srv.Close()

	tr := NewHTTPTransport(HTTPConfig{MaxBodySize: 10})
	body, err := tr.Send(context.Background(), serverAddress(t, srv), "pair", nil, time.Second)
	require.NoError(t, err)
	assert.Len(t, body, 10)
}

func TestTransportErrorMessages(t *testing.T) {
	assert.Equal(t, "transport error: connection refused", (&TransportError{Detail: "connection refused"}).Error())
	assert.Equal(t, "transport error: bad gateway (code 502)", (&TransportError{Detail: "bad gateway", StatusCode: 502}).Error())
	assert.Equal(t, "host returned status 500: Internal Server Error",
		(&ProtocolError{StatusCode: 500, Message: "Internal Server Error"}).Error())
}
