package interactive

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/streampair/streampair-go/internal/testcert"
	"github.com/streampair/streampair-go/pkg/cert"
	"github.com/streampair/streampair-go/pkg/host"
	"github.com/streampair/streampair-go/pkg/pairing"
	"github.com/streampair/streampair-go/pkg/transport"
	"github.com/streampair/streampair-go/pkg/transport/mocks"
)

// syncBuffer is a bytes.Buffer safe for the event goroutine and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type shellFixture struct {
	shell     *Shell
	out       *syncBuffer
	transport *mocks.MockTransport
	hosts     *host.MemoryStore
	session   *pairing.Session
}

func newShellFixture(t *testing.T, scan ScanFunc) *shellFixture {
	t.Helper()

	identity, err := cert.NewStaticIdentity(testcert.New(t, "client"))
	require.NoError(t, err)

	hosts := host.NewMemoryStore()
	require.NoError(t, hosts.Put(&host.Host{ID: "htpc", Address: "10.0.0.2", PairState: host.PairStateNotPaired}))

	tr := mocks.NewMockTransport(t)
	session := pairing.NewSession(pairing.Config{Transport: tr, Identity: identity, Hosts: hosts})
	t.Cleanup(func() { _ = session.Close() })

	out := &syncBuffer{}
	return &shellFixture{
		shell:     newShell(Config{Session: session, Hosts: hosts, Scan: scan}, out),
		out:       out,
		transport: tr,
		hosts:     hosts,
		session:   session,
	}
}

func TestExecuteHostsAndShow(t *testing.T) {
	f := newShellFixture(t, nil)
	ctx := context.Background()

	assert.True(t, f.shell.Execute(ctx, "hosts"))
	assert.Contains(t, f.out.String(), "10.0.0.2")

	assert.True(t, f.shell.Execute(ctx, "show HTPC"))
	assert.Contains(t, f.out.String(), "ID:          htpc")

	assert.True(t, f.shell.Execute(ctx, "show nope"))
	assert.Contains(t, f.out.String(), "host not found")
}

func TestExecuteUnknownAndBlank(t *testing.T) {
	f := newShellFixture(t, nil)

	assert.True(t, f.shell.Execute(context.Background(), "   "))
	assert.Empty(t, f.out.String())

	assert.True(t, f.shell.Execute(context.Background(), "frobnicate"))
	assert.Contains(t, f.out.String(), "Unknown command: frobnicate")
}

func TestExecuteQuit(t *testing.T) {
	f := newShellFixture(t, nil)
	assert.False(t, f.shell.Execute(context.Background(), "quit"))
	assert.Contains(t, f.out.String(), "Exiting...")
}

func TestExecutePairSuccess(t *testing.T) {
	f := newShellFixture(t, nil)
	server := testcert.New(t, "server")
	body := `<root status_code="200"><paired>1</paired><plaincert>` + testcert.PEMHex(server) + `</plaincert></root>`

	f.transport.EXPECT().
		Send(mock.Anything, "10.0.0.2", pairing.Endpoint, mock.Anything, pairing.DefaultTimeout).
		Return(body, nil).
		Once()

	assert.True(t, f.shell.Execute(context.Background(), "pair htpc 1234 secret"))
	assert.Contains(t, f.out.String(), "Pairing attempt ")

	require.Eventually(t, func() bool {
		return strings.Contains(f.out.String(), pairing.MsgCompleted)
	}, 2*time.Second, 10*time.Millisecond)

	h, err := f.hosts.Get("htpc")
	require.NoError(t, err)
	assert.True(t, h.IsPaired())
}

func TestExecutePairRejected(t *testing.T) {
	f := newShellFixture(t, nil)

	f.shell.Execute(context.Background(), "pair htpc 12")
	assert.Contains(t, f.out.String(), "Cannot start pairing")

	f.shell.Execute(context.Background(), "pair htpc")
	assert.Contains(t, f.out.String(), "Usage: pair")
}

func TestExecuteStatusAndCancel(t *testing.T) {
	f := newShellFixture(t, nil)

	release := make(chan struct{})
	f.transport.EXPECT().
		Send(mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ string, _ string, _ []transport.Param, _ time.Duration) (string, error) {
			select {
			case <-release:
			case <-ctx.Done():
			}
			return "", ctx.Err()
		}).
		Maybe()
	defer close(release)

	ctx := context.Background()
	f.shell.Execute(ctx, "pair htpc 1234")
	require.True(t, f.session.InProgress())

	f.shell.Execute(ctx, "status")
	assert.Contains(t, f.out.String(), "State: IN_PROGRESS")
	assert.Contains(t, f.out.String(), "Time remaining:")

	f.shell.Execute(ctx, "cancel")
	require.Eventually(t, func() bool {
		return strings.Contains(f.out.String(), pairing.MsgCancelled)
	}, 2*time.Second, 10*time.Millisecond)
	assert.False(t, f.session.InProgress())

	f.shell.Execute(ctx, "cancel")
	assert.Contains(t, f.out.String(), pairing.ErrNotInProgress.Error())
}

func TestExecuteDiscover(t *testing.T) {
	f := newShellFixture(t, nil)
	f.shell.Execute(context.Background(), "discover")
	assert.Contains(t, f.out.String(), "Discovery is not available.")

	scanned := newShellFixture(t, func(context.Context) ([]*host.Host, error) {
		return []*host.Host{{ID: "rig", Address: "10.0.0.9"}}, nil
	})
	scanned.shell.Execute(context.Background(), "discover")
	assert.Contains(t, scanned.out.String(), "Found 1 host(s).")
	assert.Contains(t, scanned.out.String(), "10.0.0.9")
}

func TestExecuteUnpair(t *testing.T) {
	f := newShellFixture(t, nil)
	require.NoError(t, f.hosts.SetPaired("htpc", []byte("cert")))

	f.shell.Execute(context.Background(), "unpair htpc")
	assert.Contains(t, f.out.String(), "Unpaired htpc.")

	h, err := f.hosts.Get("htpc")
	require.NoError(t, err)
	assert.False(t, h.IsPaired())
}
