package cert

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"fmt"
	"math/big"
	"time"
)

// Client identity defaults.
const (
	DefaultCommonName = "NVIDIA GameStream Client"
	DefaultValidity   = 20 * 365 * 24 * time.Hour
)

// GenerateIdentity creates a self-signed P-256 client identity.
// Hosts pin the certificate itself, so it carries no chain.
func GenerateIdentity(commonName string, validity time.Duration) (*Identity, error) {
	if commonName == "" {
		commonName = DefaultCommonName
	}
	if validity <= 0 {
		validity = DefaultValidity
	}

	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}

	serialNumber, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return nil, fmt.Errorf("generate serial: %w", err)
	}

	now := time.Now()
	template := &x509.Certificate{
		SerialNumber:          serialNumber,
		Subject:               pkix.Name{CommonName: commonName},
		NotBefore:             now.Add(-time.Hour),
		NotAfter:              now.Add(validity),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
		BasicConstraintsValid: true,
	}

	der, err := x509.CreateCertificate(rand.Reader, template, template, &privateKey.PublicKey, privateKey)
	if err != nil {
		return nil, fmt.Errorf("create certificate: %w", err)
	}
	c, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, fmt.Errorf("parse certificate: %w", err)
	}
	return &Identity{Certificate: c, PrivateKey: privateKey}, nil
}

// LoadOrGenerate loads the identity from disk, creating and saving a new
// one when none exists yet. It reports whether a new identity was made.
func (f *FileIdentity) LoadOrGenerate(commonName string) (bool, error) {
	err := f.Load()
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrNoIdentity) {
		return false, err
	}

	id, err := GenerateIdentity(commonName, 0)
	if err != nil {
		return false, err
	}
	if err := f.Save(id); err != nil {
		return false, fmt.Errorf("save identity: %w", err)
	}
	return true, nil
}
