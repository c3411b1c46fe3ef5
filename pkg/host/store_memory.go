package host

import (
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory implementation of the Store interface.
type MemoryStore struct {
	mu    sync.RWMutex
	hosts map[string]*Host
	now   func() time.Time
}

// NewMemoryStore creates a new in-memory host store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		hosts: make(map[string]*Host),
		now:   time.Now,
	}
}

// Get returns a copy of the host with the given ID.
func (s *MemoryStore) Get(id string) (*Host, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, exists := s.hosts[id]
	if !exists {
		return nil, ErrHostNotFound
	}
	return h.Clone(), nil
}

// Put inserts or replaces a host record.
func (s *MemoryStore) Put(h *Host) error {
	if h == nil || h.ID == "" {
		return ErrInvalidHost
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.hosts[h.ID] = h.Clone()
	return nil
}

// Remove deletes a host record.
func (s *MemoryStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.hosts[id]; !exists {
		return ErrHostNotFound
	}
	delete(s.hosts, id)
	return nil
}

// List returns copies of all hosts ordered by ID.
func (s *MemoryStore) List() []*Host {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hosts := make([]*Host, 0, len(s.hosts))
	for _, h := range s.hosts {
		hosts = append(hosts, h.Clone())
	}
	sort.Slice(hosts, func(i, j int) bool { return hosts[i].ID < hosts[j].ID })
	return hosts
}

// SetPaired marks a host paired and records its server certificate.
func (s *MemoryStore) SetPaired(id string, serverCert []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, exists := s.hosts[id]
	if !exists {
		return ErrHostNotFound
	}
	h.PairState = PairStatePaired
	h.ServerCert = append([]byte(nil), serverCert...)
	h.PairedAt = s.now()
	return nil
}

// Unpair clears the paired marker and certificate.
func (s *MemoryStore) Unpair(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, exists := s.hosts[id]
	if !exists {
		return ErrHostNotFound
	}
	h.PairState = PairStateNotPaired
	h.ServerCert = nil
	h.PairedAt = time.Time{}
	return nil
}

// replace swaps in a new host set.
func (s *MemoryStore) replace(hosts []*Host) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hosts = make(map[string]*Host, len(hosts))
	for _, h := range hosts {
		if h == nil || h.ID == "" {
			continue
		}
		s.hosts[h.ID] = h.Clone()
	}
}

// Verify MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
