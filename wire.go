package dtls

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// errTrailingBytes / errShortBuffer : the two low-level decode failures
// every message parser maps onto KindDecodeError.
var (
	errTrailingBytes = errors.New("trailing bytes after handshake message body")
	errShortBuffer   = errors.New("handshake message body too short")
)

// reader : a cursor over a handshake message body. All Read* methods
// advance the cursor and return errShortBuffer (wrapped by the caller
// into a KindDecodeError) if the remaining bytes are insufficient.
type reader struct {
	buf []byte
	pos int
}

func newReader(buf []byte) *reader {
	return &reader{buf: buf}
}

func (r *reader) remaining() int {
	return len(r.buf) - r.pos
}

func (r *reader) take(n int) ([]byte, error) {
	if r.remaining() < n {
		return nil, errShortBuffer
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) readUint8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) readUint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *reader) readUint24() (uint32, error) {
	b, err := r.take(3)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]), nil
}

func (r *reader) readVersion() (ProtocolVersion, error) {
	major, err := r.readUint8()
	if err != nil {
		return ProtocolVersion{}, err
	}
	minor, err := r.readUint8()
	if err != nil {
		return ProtocolVersion{}, err
	}
	return ProtocolVersion{Major: major, Minor: minor}, nil
}

// readOpaque8 : a u8-length-prefixed byte string (TLS "opaque<0..255>").
func (r *reader) readOpaque8() ([]byte, error) {
	n, err := r.readUint8()
	if err != nil {
		return nil, err
	}
	return r.take(int(n))
}

// readOpaque16 : a u16-length-prefixed byte string (TLS "opaque<0..2^16-1>").
func (r *reader) readOpaque16() ([]byte, error) {
	n, err := r.readUint16()
	if err != nil {
		return nil, err
	}
	return r.take(int(n))
}

// readUint16Array : a u16-length-prefixed list of u16 values (cipher
// suite id lists, signature scheme lists, ...). length is in bytes, so
// it must be even.
func (r *reader) readUint16Array() ([]uint16, error) {
	body, err := r.readOpaque16()
	if err != nil {
		return nil, err
	}
	if len(body)%2 != 0 {
		return nil, errShortBuffer
	}
	out := make([]uint16, len(body)/2)
	for i := range out {
		out[i] = binary.BigEndian.Uint16(body[i*2:])
	}
	return out, nil
}

// assertEmpty : fails if the reader still has unread bytes, per
// spec §4.1's assert_empty and the "trailing bytes are always fatal"
// rule in spec §4.4.
func (r *reader) assertEmpty() error {
	if r.remaining() != 0 {
		return errTrailingBytes
	}
	return nil
}

// --- writers ---
//
// Writers operate on a plain []byte accumulator rather than a dedicated
// buffer type: every message codec in the retrieval pack (e.g.
// MessageServerHello.Marshal) builds its wire form the same way, via
// repeated append() rather than a bytes.Buffer, so the encoder for each
// message follows suit instead of introducing a new abstraction.

func writeUint8(buf []byte, v uint8) []byte {
	return append(buf, v)
}

func writeUint16(buf []byte, v uint16) []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return append(buf, b[:]...)
}

func writeUint24(buf []byte, v uint32) []byte {
	return append(buf, byte(v>>16), byte(v>>8), byte(v))
}

func writeVersion(buf []byte, v ProtocolVersion) []byte {
	return append(buf, v.Major, v.Minor)
}

func writeOpaque8(buf []byte, data []byte) []byte {
	buf = writeUint8(buf, uint8(len(data)))
	return append(buf, data...)
}

func writeOpaque16(buf []byte, data []byte) []byte {
	buf = writeUint16(buf, uint16(len(data)))
	return append(buf, data...)
}

func writeUint16Array(buf []byte, vals []uint16) []byte {
	buf = writeUint16(buf, uint16(len(vals)*2))
	for _, v := range vals {
		buf = writeUint16(buf, v)
	}
	return buf
}
