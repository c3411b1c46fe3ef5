package response

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streampair/streampair-go/internal/testcert"
)

func TestClassifyPrecedence(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Kind
	}{
		{"empty", "", KindNoResponse},
		{"503", `<root status_code="503" status_message="OTP expired"/>`, KindOTPUnavailable},
		{"400 wrong secret", `<root status_code="400" status_message="Invalid OTP hash"/>`, KindWrongSecret},
		{"400 invalid uniqueid", `<root status_code="400" status_message="Invalid uniqueid"/>`, KindMalformedRequest},
		{"not available message", `<root status_code="401" status_message="OTP auth not available."/>`, KindOTPUnavailable},
		{"200 but not paired", `<root status_code="200"><paired>0</paired></root>`, KindParseError},
		{"unrelated", `<html>hello</html>`, KindParseError},

		// More specific failure markers beat the success markers.
		{"503 beats paired", `<root status_code="200"><paired>1</paired></root><x status_code="503"/>`, KindOTPUnavailable},
		{"400 beats paired", `<root status_code="200"><paired>1</paired></root><x status_code="400"/>`, KindWrongSecret},
		{"503 beats 400", `status_code="400" status_code="503"`, KindOTPUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text)
			assert.Equal(t, tt.want, got.Kind, "Classify(%q)", tt.text)
			if got.Kind != KindSuccess {
				assert.Nil(t, got.ServerCertificate, "certificate must only be set on success")
			}
		})
	}
}

func TestClassifyMalformedIsNotWrongSecret(t *testing.T) {
	got := Classify(`<root status_code="400" status_message="Invalid uniqueid"></root>`)
	assert.Equal(t, KindMalformedRequest, got.Kind)
	assert.NotEqual(t, KindWrongSecret, got.Kind)
}

func TestClassifyOpaqueCertificatePayload(t *testing.T) {
	c := NewClassifier(WithCertificateCheck(AcceptAnyCertificate))

	got := c.Classify(`<root status_code="200"><paired>1</paired><plaincert>4142434445</plaincert></root>`)
	require.Equal(t, KindSuccess, got.Kind)
	assert.Equal(t, []byte{0x41, 0x42, 0x43, 0x44, 0x45}, got.ServerCertificate)
	assert.Nil(t, got.Certificate)
}

func TestClassifyDefaultCheckRejectsNonCertificate(t *testing.T) {
	got := Classify(`<root status_code="200"><paired>1</paired><plaincert>4142434445</plaincert></root>`)
	assert.Equal(t, KindParseError, got.Kind)
	assert.Nil(t, got.ServerCertificate)
	assert.Contains(t, got.Detail, "invalid server certificate")
}

func TestClassifyRealCertificate(t *testing.T) {
	id := testcert.New(t, "host")

	for _, upper := range []bool{false, true} {
		hexCert := testcert.PEMHex(id)
		if upper {
			hexCert = strings.ToUpper(hexCert)
		}
		text := `<?xml version="1.0" encoding="utf-8"?>` +
			`<root status_code="200"><paired>1</paired><plaincert>` + hexCert + `</plaincert></root>`

		got := Classify(text)
		require.Equal(t, KindSuccess, got.Kind, "upper=%v detail=%s", upper, got.Detail)
		assert.Equal(t, testcert.PEM(id), got.ServerCertificate)
		require.NotNil(t, got.Certificate)
		assert.Equal(t, id.Certificate.Raw, got.Certificate.Raw)
	}
}

func TestClassifyMissingCertificate(t *testing.T) {
	got := Classify(`<root status_code="200"><paired>1</paired></root>`)
	assert.Equal(t, KindParseError, got.Kind)
	assert.Contains(t, got.Detail, "not found")
	assert.Nil(t, got.ServerCertificate)
}

func TestClassifyOddHexCertificate(t *testing.T) {
	c := NewClassifier(WithCertificateCheck(AcceptAnyCertificate))
	got := c.Classify(`<root status_code="200"><paired>1</paired><plaincert>414</plaincert></root>`)
	assert.Equal(t, KindParseError, got.Kind)
	assert.Nil(t, got.ServerCertificate)
}

func TestClassifyUnrecognisedKeepsRawText(t *testing.T) {
	text := `<root status_code="500" status_message="boom"/>`
	got := Classify(text)
	assert.Equal(t, KindParseError, got.Kind)
	assert.Equal(t, text, got.Detail)
}

func TestWithNilCertificateCheckKeepsDefault(t *testing.T) {
	c := NewClassifier(WithCertificateCheck(nil))
	got := c.Classify(`<root status_code="200"><paired>1</paired><plaincert>4142434445</plaincert></root>`)
	assert.Equal(t, KindParseError, got.Kind)
}

func TestStatusHelpers(t *testing.T) {
	text := `<root status_code="401" status_message="OTP auth not available."/>`

	code, ok := StatusCode(text)
	assert.True(t, ok)
	assert.Equal(t, 401, code)
	assert.Equal(t, "OTP auth not available.", StatusMessage(text))

	_, ok = StatusCode("nothing")
	assert.False(t, ok)
	assert.Equal(t, "", StatusMessage("nothing"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "SUCCESS", KindSuccess.String())
	assert.Equal(t, "MALFORMED_REQUEST", KindMalformedRequest.String())
	assert.Equal(t, "UNKNOWN", Kind(200).String())
}
