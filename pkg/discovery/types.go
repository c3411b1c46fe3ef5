package discovery

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/streampair/streampair-go/pkg/host"
)

// Service constants.
const (
	// ServiceType is the DNS-SD service streaming hosts advertise.
	ServiceType = "_nvstream._tcp"

	// Domain is the mDNS domain.
	Domain = "local."

	// BrowseTimeout is the default duration of a Scan.
	BrowseTimeout = 5 * time.Second
)

// Discovery errors.
var (
	ErrInvalidEntry = errors.New("invalid service entry")
)

// ServiceEntry is one discovered host service, decoupled from the mDNS
// library's types.
type ServiceEntry struct {
	Instance string
	Host     string
	Port     uint16
	Text     []string
	Addrs    []string
}

// Validate checks that the entry can be turned into a host record.
func (e *ServiceEntry) Validate() error {
	if e.Instance == "" {
		return fmt.Errorf("%w: missing instance name", ErrInvalidEntry)
	}
	if len(e.Addrs) == 0 && e.Host == "" {
		return fmt.Errorf("%w: no address for %s", ErrInvalidEntry, e.Instance)
	}
	return nil
}

// HostID derives a stable host ID from the instance name.
func (e *ServiceEntry) HostID() string {
	return strings.ToLower(strings.TrimSpace(e.Instance))
}

// Address returns host:port for the preferred address. IPv4 addresses are
// preferred over IPv6, and IP addresses over the advertised host name.
func (e *ServiceEntry) Address() string {
	port := e.Port
	if port == 0 {
		port = host.DefaultHTTPPort
	}
	p := strconv.Itoa(int(port))

	var v6 string
	for _, a := range e.Addrs {
		ip := net.ParseIP(a)
		if ip == nil {
			continue
		}
		if ip.To4() != nil {
			return net.JoinHostPort(ip.String(), p)
		}
		if v6 == "" {
			v6 = ip.String()
		}
	}
	if v6 != "" {
		return net.JoinHostPort(v6, p)
	}
	if e.Host != "" {
		return net.JoinHostPort(strings.TrimSuffix(e.Host, "."), p)
	}
	return ""
}

// ToHost converts the entry to a host record.
// The server type is unknown until the host is queried.
func (e *ServiceEntry) ToHost(seen time.Time) (*host.Host, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &host.Host{
		ID:         e.HostID(),
		Name:       e.Instance,
		Address:    e.Address(),
		ServerType: host.ServerUnknown,
		PairState:  host.PairStateUnknown,
		LastSeen:   seen,
	}, nil
}

// mergeAddresses adds new addresses to existing list, avoiding duplicates.
func mergeAddresses(existing, added []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, addr := range existing {
		seen[addr] = true
	}

	for _, addr := range added {
		if !seen[addr] {
			existing = append(existing, addr)
			seen[addr] = true
		}
	}
	return existing
}

// removeAddresses returns addresses without any of gone.
func removeAddresses(addresses, gone []string) []string {
	toRemove := make(map[string]bool, len(gone))
	for _, a := range gone {
		toRemove[a] = true
	}

	result := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		if !toRemove[addr] {
			result = append(result, addr)
		}
	}
	return result
}
