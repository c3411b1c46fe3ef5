package discovery

import (
	"net"
	"testing"

	"github.com/enbility/zeroconf/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromZeroconf(t *testing.T) {
	entry := &zeroconf.ServiceEntry{}
	entry.Instance = "Living Room"
	entry.HostName = "living-room.local."
	entry.Port = 47989
	entry.AddrIPv4 = []net.IP{net.ParseIP("192.168.1.30")}
	entry.AddrIPv6 = []net.IP{net.ParseIP("fe80::2")}

	svc := fromZeroconf(entry)

	assert.Equal(t, "Living Room", svc.Instance)
	assert.Equal(t, "living-room.local.", svc.Host)
	assert.Equal(t, uint16(47989), svc.Port)
	assert.Equal(t, []string{"192.168.1.30", "fe80::2"}, svc.Addrs)
}

func TestNewMDNSBrowserRejectsUnknownInterface(t *testing.T) {
	_, err := NewMDNSBrowser(BrowserConfig{Interface: "does-not-exist0"})
	assert.Error(t, err)
}

func TestNewMDNSBrowserDefaults(t *testing.T) {
	b, err := NewMDNSBrowser(BrowserConfig{})
	require.NoError(t, err)
	assert.Equal(t, BrowseTimeout, b.config.BrowseTimeout)
	assert.Empty(t, b.browserOptions())
}
