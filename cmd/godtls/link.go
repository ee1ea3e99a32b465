package main

import (
	"context"
	"crypto/md5"  //nolint:gosec // pre-1.2 transcript digest, matches the core's own PRF
	"crypto/sha1" //nolint:gosec // ditto
	"encoding/binary"
	"errors"
	"net"
	"time"

	dtls "github.com/1stship/godtls"
)

const (
	contentTypeChangeCipherSpec = 20
	contentTypeAlert            = 21
	contentTypeHandshake        = 22
	maxDatagramSize             = 4096
)

// udpHandshakeLink is a bare-bones implementation of both
// dtls.ReliableHandshake and dtls.RecordLayer over a single UDP socket:
// no retransmission, no fragmentation, no record encryption. It only
// exists so cmd/godtls can drive dtls.Connect end-to-end against a
// cooperative, low-loss peer; a real deployment supplies both
// interfaces from a proper reliability layer and cipher-aware record
// layer instead (spec §1's external collaborators).
type udpHandshakeLink struct {
	conn net.Conn

	sendSeq    uint16
	transcript []byte

	peerVersion dtls.ProtocolVersion
	haveVersion bool
}

func newUDPHandshakeLink(host string) (*udpHandshakeLink, error) {
	conn, err := net.Dial("udp", host)
	if err != nil {
		return nil, err
	}
	return &udpHandshakeLink{conn: conn}, nil
}

func (l *udpHandshakeLink) Close() error {
	return l.conn.Close()
}

func (l *udpHandshakeLink) Send(ctx context.Context, msgType dtls.HandshakeType, body []byte) error {
	handshakeHeader := make([]byte, 0, 12+len(body))
	handshakeHeader = append(handshakeHeader, byte(msgType))
	handshakeHeader = append(handshakeHeader, u24(uint32(len(body)))...)
	handshakeHeader = append(handshakeHeader, u16(l.sendSeq)...)
	handshakeHeader = append(handshakeHeader, u24(0)...)                 // fragment_offset
	handshakeHeader = append(handshakeHeader, u24(uint32(len(body)))...) // fragment_length
	handshakeHeader = append(handshakeHeader, body...)
	l.sendSeq++
	l.transcript = append(l.transcript, handshakeHeader...)

	return l.writeRecord(ctx, contentTypeHandshake, handshakeHeader)
}

func (l *udpHandshakeLink) Receive(ctx context.Context) (dtls.HandshakeType, []byte, error) {
	for {
		contentType, content, err := l.readRecord(ctx)
		if err != nil {
			return 0, nil, err
		}
		switch contentType {
		case contentTypeHandshake:
			if len(content) < 12 {
				return 0, nil, errors.New("handshake record too short")
			}
			msgType := dtls.HandshakeType(content[0])
			fragLen := uint32(content[9])<<16 | uint32(content[10])<<8 | uint32(content[11])
			body := content[12 : 12+int(fragLen)]
			l.transcript = append(l.transcript, content[:12+int(fragLen)]...)
			return msgType, body, nil
		case contentTypeChangeCipherSpec:
			continue
		case contentTypeAlert:
			return 0, nil, errors.New("received alert from peer")
		default:
			continue
		}
	}
}

func (l *udpHandshakeLink) TranscriptHash() []byte {
	m := md5.Sum(l.transcript)  //nolint:gosec
	s := sha1.Sum(l.transcript) //nolint:gosec
	out := make([]byte, 0, len(m)+len(s))
	out = append(out, m[:]...)
	out = append(out, s[:]...)
	return out
}

func (l *udpHandshakeLink) ResetTranscript() {
	l.transcript = nil
}

func (l *udpHandshakeLink) Finish() error {
	return nil
}

func (l *udpHandshakeLink) DiscoveredPeerVersion() (dtls.ProtocolVersion, bool) {
	return l.peerVersion, l.haveVersion
}

func (l *udpHandshakeLink) InitPendingEpoch(dtls.PendingCipherSpec) error {
	return nil
}

func (l *udpHandshakeLink) HandshakeSuccessful() error {
	return nil
}

func (l *udpHandshakeLink) SendAlert(level dtls.AlertLevel, desc dtls.AlertDescription) error {
	return l.writeRecord(context.Background(), contentTypeAlert, []byte{byte(level), byte(desc)})
}

func (l *udpHandshakeLink) writeRecord(ctx context.Context, contentType byte, content []byte) error {
	if deadline, ok := ctx.Deadline(); ok {
		_ = l.conn.SetWriteDeadline(deadline)
	}
	record := make([]byte, 0, 13+len(content))
	record = append(record, contentType)
	record = append(record, 254, 255) // DTLS 1.0 record version
	record = append(record, 0, 0)     // epoch
	record = append(record, make([]byte, 6)...)
	record = append(record, u16(uint16(len(content)))...)
	record = append(record, content...)
	_, err := l.conn.Write(record)
	return err
}

func (l *udpHandshakeLink) readRecord(ctx context.Context) (byte, []byte, error) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = l.conn.SetReadDeadline(deadline)
	} else {
		_ = l.conn.SetReadDeadline(time.Time{})
	}
	buf := make([]byte, maxDatagramSize)
	n, err := l.conn.Read(buf)
	if err != nil {
		return 0, nil, err
	}
	if n < 13 {
		return 0, nil, errors.New("record too short")
	}
	contentType := buf[0]
	if !l.haveVersion {
		l.peerVersion = dtls.ProtocolVersion{Major: buf[1], Minor: buf[2]}
		l.haveVersion = true
	}
	length := binary.BigEndian.Uint16(buf[11:13])
	if n < 13+int(length) {
		return 0, nil, errors.New("truncated record")
	}
	return contentType, buf[13 : 13+int(length)], nil
}

func u16(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

func u24(v uint32) []byte {
	return []byte{byte(v >> 16), byte(v >> 8), byte(v)}
}
