package dtls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCertificateRequest(t *testing.T) {
	var body []byte
	body = writeOpaque8(body, []byte{0x01, 0x40}) // rsa_sign, dss_sign
	var casBody []byte
	casBody = writeOpaque16(casBody, []byte("CN=root1"))
	casBody = writeOpaque16(casBody, []byte("CN=root2"))
	body = writeOpaque16(body, casBody)

	cr, err := parseCertificateRequest(body)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x40}, cr.CertificateTypes)
	require.Len(t, cr.CertificateAuthorities, 2)
	assert.Equal(t, []byte("CN=root1"), cr.CertificateAuthorities[0])
	assert.Equal(t, []byte("CN=root2"), cr.CertificateAuthorities[1])
}

func TestParseCertificateRequestRejectsTrailingBytes(t *testing.T) {
	var body []byte
	body = writeOpaque8(body, []byte{0x01})
	body = writeOpaque16(body, nil)
	body = append(body, 0xff)

	_, err := parseCertificateRequest(body)
	assert.ErrorIs(t, err, errTrailingBytes)
}
