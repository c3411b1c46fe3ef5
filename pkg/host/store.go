package host

import "errors"

// Store errors.
var (
	ErrHostNotFound = errors.New("host not found")
	ErrInvalidHost  = errors.New("invalid host")
)

// Store defines the interface for host record storage.
// Implementations must be safe for concurrent access. Returned hosts are
// copies; mutate them through Put or SetPaired.
type Store interface {
	// Get returns the host with the given ID.
	// Returns ErrHostNotFound if no such host exists.
	Get(id string) (*Host, error)

	// Put inserts or replaces a host record.
	Put(h *Host) error

	// Remove deletes a host record.
	// Returns ErrHostNotFound if no such host exists.
	Remove(id string) error

	// List returns all hosts.
	List() []*Host

	// SetPaired marks a host paired and records its server certificate.
	SetPaired(id string, serverCert []byte) error

	// Unpair clears the paired marker and certificate.
	Unpair(id string) error
}
