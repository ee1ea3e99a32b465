package dtls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState(suites []CipherSuiteId, clientExt *ExtensionTable) *ClientHandshakeState {
	s := &ClientHandshakeState{
		clientVersion:      VersionDTLS10,
		offeredSuites:      suites,
		offeredCompression: []CompressionMethod{CompressionNull},
		clientExtensions:   clientExt,
	}
	copy(s.security.ClientRandom[:], bytesRepeat(0x22, RandomLength))
	return s
}

func TestSerializeClientHelloAppendsSCSVWhenNoRenegotiationExtension(t *testing.T) {
	state := newTestState([]CipherSuiteId{0x008c}, nil)
	body, err := serializeClientHello(state)
	require.NoError(t, err)

	r := newReader(body)
	_, err = r.readVersion()
	require.NoError(t, err)
	_, err = r.take(RandomLength)
	require.NoError(t, err)
	_, err = r.readOpaque8() // session_id
	require.NoError(t, err)
	_, err = r.readOpaque8() // cookie
	require.NoError(t, err)
	suites, err := r.readUint16Array()
	require.NoError(t, err)
	assert.Equal(t, []uint16{0x008c, uint16(TLSEmptyRenegotiationInfoSCSV)}, suites)
}

func TestSerializeClientHelloOmitsSCSVWhenRenegotiationExtensionPresent(t *testing.T) {
	ext := NewExtensionTable()
	ext.Set(ExtensionRenegotiationInfo, nil)
	state := newTestState([]CipherSuiteId{0x008c}, ext)

	body, err := serializeClientHello(state)
	require.NoError(t, err)

	r := newReader(body)
	_, _ = r.readVersion()
	_, _ = r.take(RandomLength)
	_, _ = r.readOpaque8()
	_, _ = r.readOpaque8()
	suites, err := r.readUint16Array()
	require.NoError(t, err)
	assert.Equal(t, []uint16{0x008c}, suites)
}

func TestSerializeClientHelloRejectsRC4(t *testing.T) {
	state := newTestState([]CipherSuiteId{0x0005}, nil)
	_, err := serializeClientHello(state)
	assert.ErrorIs(t, err, errRC4Forbidden)
}
