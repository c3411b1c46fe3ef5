package discovery

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/streampair/streampair-go/pkg/host"
)

// Scanner records discovered hosts in a host store.
type Scanner struct {
	browser Browser
	store   host.Store
	timeout time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithTimeout sets how long Scan browses (default: BrowseTimeout).
func WithTimeout(d time.Duration) ScannerOption {
	return func(s *Scanner) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets the operational logger.
func WithLogger(l *slog.Logger) ScannerOption {
	return func(s *Scanner) {
		s.logger = l
	}
}

// NewScanner creates a scanner that feeds store from browser.
func NewScanner(browser Browser, store host.Store, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		browser: browser,
		store:   store,
		timeout: BrowseTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan browses for the configured timeout, or until ctx is done, and
// returns the hosts seen. Each host is upserted into the store; pairing
// state, server type and certificate already recorded are kept.
func (s *Scanner) Scan(ctx context.Context) ([]*host.Host, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	entries, err := s.browser.Browse(ctx)
	if err != nil {
		return nil, err
	}

	var found []*host.Host
	index := make(map[string]int)

	for entry := range entries {
		h, err := s.record(entry)
		if err != nil {
			if s.logger != nil {
				s.logger.Debug("skipping service entry", "instance", entry.Instance, "error", err)
			}
			continue
		}
		if i, ok := index[h.ID]; ok {
			found[i] = h
			continue
		}
		index[h.ID] = len(found)
		found = append(found, h)
	}

	return found, nil
}

// record upserts the host for entry and returns the stored record.
func (s *Scanner) record(entry *ServiceEntry) (*host.Host, error) {
	h, err := entry.ToHost(s.now())
	if err != nil {
		return nil, err
	}

	existing, err := s.store.Get(h.ID)
	switch {
	case err == nil:
		existing.Name = h.Name
		existing.Address = h.Address
		existing.LastSeen = h.LastSeen
		h = existing
	case !errors.Is(err, host.ErrHostNotFound):
		return nil, err
	}

	if err := s.store.Put(h); err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.Info("discovered host", "id", h.ID, "name", h.Name, "address", h.Address)
	}
	return h, nil
}
