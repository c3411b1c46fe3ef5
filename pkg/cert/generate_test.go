package cert_test

import (
	"crypto/x509"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streampair/streampair-go/pkg/cert"
)

func TestGenerateIdentity(t *testing.T) {
	id, err := cert.GenerateIdentity("", 0)
	require.NoError(t, err)

	assert.Equal(t, cert.DefaultCommonName, id.Certificate.Subject.CommonName)
	assert.Contains(t, id.Certificate.ExtKeyUsage, x509.ExtKeyUsageClientAuth)
	assert.True(t, id.Certificate.NotAfter.After(time.Now().Add(365*24*time.Hour)))
	require.NotNil(t, id.PrivateKey)

	// Self-signed: the certificate verifies against itself.
	assert.NoError(t, id.Certificate.CheckSignatureFrom(id.Certificate))
}

func TestLoadOrGenerate(t *testing.T) {
	dir := t.TempDir()

	fi := cert.NewFileIdentity(dir)
	created, err := fi.LoadOrGenerate("streampair")
	require.NoError(t, err)
	assert.True(t, created)
	first, err := fi.Certificate()
	require.NoError(t, err)

	again := cert.NewFileIdentity(dir)
	created, err = again.LoadOrGenerate("streampair")
	require.NoError(t, err)
	assert.False(t, created)
	second, err := again.Certificate()
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "streampair", again.Identity().Certificate.Subject.CommonName)
}
