package cert

import (
	"crypto"
	"crypto/tls"
	"crypto/x509"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Identity file names inside a state directory.
const (
	IdentityCertFile = "client.pem"
	IdentityKeyFile  = "key.pem"
)

// Identity errors.
var (
	ErrNoIdentity = errors.New("no local identity")
)

// IdentityProvider exposes the client's own certificate.
// Implementations are read-only from the pairing code's point of view and
// must be safe for concurrent use.
type IdentityProvider interface {
	// Certificate returns the client certificate as a PEM document, the
	// form that is hex-encoded into pairing requests.
	Certificate() ([]byte, error)
}

// CertificateHex returns the provider's certificate as lowercase hex text.
func CertificateHex(p IdentityProvider) (string, error) {
	pemData, err := p.Certificate()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(pemData), nil
}

// Identity is a client certificate and its private key.
type Identity struct {
	Certificate *x509.Certificate
	PrivateKey  crypto.Signer
}

// TLSCertificate returns the identity in the form crypto/tls expects, for
// use as the client certificate in encrypted sessions after pairing.
func (id *Identity) TLSCertificate() tls.Certificate {
	return tls.Certificate{
		Certificate: [][]byte{id.Certificate.Raw},
		PrivateKey:  id.PrivateKey,
		Leaf:        id.Certificate,
	}
}

// StaticIdentity serves a fixed identity.
type StaticIdentity struct {
	identity *Identity
}

// NewStaticIdentity wraps an already-loaded identity.
func NewStaticIdentity(id *Identity) (*StaticIdentity, error) {
	if id == nil || id.Certificate == nil {
		return nil, ErrInvalidCert
	}
	return &StaticIdentity{identity: id}, nil
}

// Certificate implements IdentityProvider.
func (s *StaticIdentity) Certificate() ([]byte, error) {
	return EncodeCertPEM(s.identity.Certificate), nil
}

// Identity returns the wrapped identity.
func (s *StaticIdentity) Identity() *Identity {
	return s.identity
}

// FileIdentity loads the client identity from client.pem and key.pem in a
// state directory. Files are read once on Load and cached.
type FileIdentity struct {
	mu       sync.RWMutex
	baseDir  string
	identity *Identity
}

// NewFileIdentity creates a file-backed identity rooted at baseDir.
func NewFileIdentity(baseDir string) *FileIdentity {
	return &FileIdentity{baseDir: baseDir}
}

// Load reads the identity files. A missing certificate yields ErrNoIdentity.
func (f *FileIdentity) Load() error {
	certPath := filepath.Join(f.baseDir, IdentityCertFile)
	c, err := ReadCertFile(certPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s not found", ErrNoIdentity, certPath)
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", certPath, err)
	}

	key, err := ReadKeyFile(filepath.Join(f.baseDir, IdentityKeyFile))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load %s: %w", IdentityKeyFile, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.identity = &Identity{Certificate: c, PrivateKey: key}
	return nil
}

// Save writes id to the state directory and caches it.
func (f *FileIdentity) Save(id *Identity) error {
	if id == nil || id.Certificate == nil {
		return ErrInvalidCert
	}
	if err := os.MkdirAll(f.baseDir, 0700); err != nil {
		return err
	}
	if err := WriteCertFile(filepath.Join(f.baseDir, IdentityCertFile), id.Certificate); err != nil {
		return err
	}
	if id.PrivateKey != nil {
		if err := WriteKeyFile(filepath.Join(f.baseDir, IdentityKeyFile), id.PrivateKey); err != nil {
			return err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.identity = id
	return nil
}

// Certificate implements IdentityProvider.
func (f *FileIdentity) Certificate() ([]byte, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.identity == nil {
		return nil, ErrNoIdentity
	}
	return EncodeCertPEM(f.identity.Certificate), nil
}

// Identity returns the loaded identity, or nil before Load.
func (f *FileIdentity) Identity() *Identity {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.identity
}

// Compile-time interface satisfaction checks.
var (
	_ IdentityProvider = (*StaticIdentity)(nil)
	_ IdentityProvider = (*FileIdentity)(nil)
)
