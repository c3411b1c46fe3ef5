package discovery

import (
	"context"
	"fmt"
	"net"

	"github.com/enbility/zeroconf/v3"
)

// MDNSBrowser implements the Browser interface using zeroconf.
type MDNSBrowser struct {
	config BrowserConfig
}

// NewMDNSBrowser creates a new mDNS browser.
func NewMDNSBrowser(config BrowserConfig) (*MDNSBrowser, error) {
	if config.Interface != "" {
		if _, err := net.InterfaceByName(config.Interface); err != nil {
			return nil, fmt.Errorf("interface %q: %w", config.Interface, err)
		}
	}
	if config.BrowseTimeout == 0 {
		config.BrowseTimeout = BrowseTimeout
	}
	return &MDNSBrowser{config: config}, nil
}

// Browse implements Browser.
// Services are aggregated by instance name; addresses from multiple
// interfaces are combined into a single entry.
func (b *MDNSBrowser) Browse(ctx context.Context) (<-chan *ServiceEntry, error) {
	out := make(chan *ServiceEntry)

	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)

	opts := b.browserOptions()

	go func() {
		defer close(out)

		services := make(map[string]*ServiceEntry)

		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				svc := fromZeroconf(entry)

				existing, found := services[svc.Instance]
				if found {
					before := len(existing.Addrs)
					existing.Addrs = mergeAddresses(existing.Addrs, svc.Addrs)
					if len(existing.Addrs) == before {
						continue
					}
					svc = existing
				} else {
					services[svc.Instance] = svc
				}

				snapshot := *svc
				snapshot.Addrs = append([]string(nil), svc.Addrs...)
				select {
				case out <- &snapshot:
				case <-ctx.Done():
					return
				}

			case entry, ok := <-removed:
				if !ok {
					removed = nil
					continue
				}
				if existing, found := services[entry.Instance]; found {
					existing.Addrs = removeAddresses(existing.Addrs, fromZeroconf(entry).Addrs)
					if len(existing.Addrs) == 0 {
						delete(services, entry.Instance)
					}
				}

			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		_ = zeroconf.Browse(ctx, ServiceType, Domain, entries, removed, opts...)
	}()

	return out, nil
}

// browserOptions returns zeroconf client options based on config.
func (b *MDNSBrowser) browserOptions() []zeroconf.ClientOption {
	var opts []zeroconf.ClientOption

	if b.config.Interface != "" {
		iface, err := net.InterfaceByName(b.config.Interface)
		if err == nil {
			opts = append(opts, zeroconf.SelectIfaces([]net.Interface{*iface}))
		}
	}

	return opts
}

// fromZeroconf converts a zeroconf entry to a ServiceEntry.
func fromZeroconf(entry *zeroconf.ServiceEntry) *ServiceEntry {
	addrs := make([]string, 0, len(entry.AddrIPv4)+len(entry.AddrIPv6))
	for _, ip := range entry.AddrIPv4 {
		addrs = append(addrs, ip.String())
	}
	for _, ip := range entry.AddrIPv6 {
		addrs = append(addrs, ip.String())
	}

	return &ServiceEntry{
		Instance: entry.Instance,
		Host:     entry.HostName,
		Port:     uint16(entry.Port),
		Text:     entry.Text,
		Addrs:    addrs,
	}
}

// Ensure MDNSBrowser implements Browser interface.
var _ Browser = (*MDNSBrowser)(nil)
