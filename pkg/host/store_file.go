package host

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// StateVersion is the current version of the hosts file format.
const StateVersion = 1

// HostsFile is the default file name inside a state directory.
const HostsFile = "hosts.json"

// fileState is the on-disk form of a FileStore.
type fileState struct {
	// Version is the state file format version.
	Version int `json:"version"`

	// SavedAt is when the state was last saved.
	SavedAt time.Time `json:"saved_at"`

	// Hosts are the known hosts.
	Hosts []*Host `json:"hosts,omitempty"`
}

// FileStore is a JSON-file-backed Store. Mutations are applied in memory;
// SetPaired and Unpair also write the file so a pairing result survives a
// crash, other mutations are written on Save.
type FileStore struct {
	*MemoryStore

	saveMu sync.Mutex
	path   string
}

// NewFileStore creates a file store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		MemoryStore: NewMemoryStore(),
		path:        path,
	}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// SetPaired marks the host paired and persists the change. If the write
// fails the in-memory record is restored and the error returned.
func (s *FileStore) SetPaired(id string, serverCert []byte) error {
	return s.commit(id, func() error { return s.MemoryStore.SetPaired(id, serverCert) })
}

// Unpair clears the paired marker and persists the change. If the write
// fails the host stays paired.
func (s *FileStore) Unpair(id string) error {
	return s.commit(id, func() error { return s.MemoryStore.Unpair(id) })
}

// commit applies a mutation of host id and writes the file, undoing the
// mutation when the write fails.
func (s *FileStore) commit(id string, apply func() error) error {
	prev, err := s.MemoryStore.Get(id)
	if err != nil {
		return err
	}
	if err := apply(); err != nil {
		return err
	}
	if err := s.Save(); err != nil {
		if rerr := s.MemoryStore.Put(prev); rerr != nil {
			return fmt.Errorf("%w (restore: %v)", err, rerr)
		}
		return err
	}
	return nil
}

// Save persists all hosts to disk.
func (s *FileStore) Save() error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	state := fileState{
		Version: StateVersion,
		SavedAt: time.Now(),
		Hosts:   s.List(),
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Load reads hosts from disk. A missing file leaves the store empty.
func (s *FileStore) Load() error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var state fileState
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("parse %s: %w", s.path, err)
	}
	if state.Version > StateVersion {
		return fmt.Errorf("%s: unsupported version %d", s.path, state.Version)
	}

	s.replace(state.Hosts)
	return nil
}

// Clear removes the hosts file and empties the store.
func (s *FileStore) Clear() error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.replace(nil)
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Verify FileStore implements Store.
var _ Store = (*FileStore)(nil)
