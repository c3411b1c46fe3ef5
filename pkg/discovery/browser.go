package discovery

import (
	"context"
	"time"
)

// Browser provides mDNS service browsing capabilities.
type Browser interface {
	// Browse searches for streaming hosts. Each aggregated entry is sent
	// when first seen and again whenever its address set grows. The
	// channel is closed when ctx is cancelled.
	Browse(ctx context.Context) (<-chan *ServiceEntry, error)
}

// BrowserConfig configures browser behavior.
type BrowserConfig struct {
	// BrowseTimeout is the default duration of a Scan.
	// Default: 5 seconds.
	BrowseTimeout time.Duration

	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string
}

// DefaultBrowserConfig returns the default browser configuration.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		BrowseTimeout: BrowseTimeout,
	}
}
