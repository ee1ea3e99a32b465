package dtls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderRoundTrip(t *testing.T) {
	var buf []byte
	buf = writeUint8(buf, 0x42)
	buf = writeUint16(buf, 0x1234)
	buf = writeUint24(buf, 0x00abcdef)
	buf = writeVersion(buf, VersionDTLS10)
	buf = writeOpaque8(buf, []byte("hello"))
	buf = writeOpaque16(buf, []byte("world!!"))
	buf = writeUint16Array(buf, []uint16{1, 2, 3})

	r := newReader(buf)

	u8, err := r.readUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x42), u8)

	u16, err := r.readUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), u16)

	u24, err := r.readUint24()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x00abcdef), u24)

	version, err := r.readVersion()
	require.NoError(t, err)
	assert.Equal(t, VersionDTLS10, version)

	op8, err := r.readOpaque8()
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), op8)

	op16, err := r.readOpaque16()
	require.NoError(t, err)
	assert.Equal(t, []byte("world!!"), op16)

	arr, err := r.readUint16Array()
	require.NoError(t, err)
	assert.Equal(t, []uint16{1, 2, 3}, arr)

	assert.NoError(t, r.assertEmpty())
}

func TestReaderShortBuffer(t *testing.T) {
	r := newReader([]byte{0x01})
	_, err := r.readUint16()
	assert.ErrorIs(t, err, errShortBuffer)
}

func TestReaderTrailingBytes(t *testing.T) {
	r := newReader([]byte{0x01, 0x02})
	_, err := r.readUint8()
	require.NoError(t, err)
	assert.ErrorIs(t, r.assertEmpty(), errTrailingBytes)
}

func TestReadUint16ArrayOddLength(t *testing.T) {
	var buf []byte
	buf = writeOpaque16(buf, []byte{0x01, 0x02, 0x03})
	r := newReader(buf)
	_, err := r.readUint16Array()
	assert.ErrorIs(t, err, errShortBuffer)
}
