package dtls

import "context"

// HandshakeType : RFC6347 4.3.2.
type HandshakeType byte

const (
	HandshakeTypeClientHello        HandshakeType = 1
	HandshakeTypeServerHello        HandshakeType = 2
	HandshakeTypeHelloVerifyRequest HandshakeType = 3
	HandshakeTypeCertificate        HandshakeType = 11
	HandshakeTypeServerKeyExchange  HandshakeType = 12
	HandshakeTypeCertificateRequest HandshakeType = 13
	HandshakeTypeServerHelloDone    HandshakeType = 14
	HandshakeTypeCertificateVerify  HandshakeType = 15
	HandshakeTypeClientKeyExchange  HandshakeType = 16
	HandshakeTypeFinished           HandshakeType = 20
	HandshakeTypeSupplementalData   HandshakeType = 23
)

// ReliableHandshake : the external collaborator that turns the
// driver's ordered message sends/receives into framed, retransmitted,
// reassembled DTLS handshake records (spec §1 "out of scope"
// collaborator #1). The core only ever calls these five methods.
type ReliableHandshake interface {
	// Send frames and transmits one handshake message, blocking until it
	// is queued for the network (retransmission happens internally).
	Send(ctx context.Context, msgType HandshakeType, body []byte) error
	// Receive blocks until the next fully-reassembled handshake message
	// arrives, handling fragmentation/reordering/retransmission
	// internally.
	Receive(ctx context.Context) (HandshakeType, []byte, error)
	// TranscriptHash returns the running MD5||SHA1 concatenation (spec
	// §4.5) over all handshake messages sent and received so far,
	// suitable as a PRF seed for CertificateVerify/Finished computations
	// at any point.
	TranscriptHash() []byte
	// ResetTranscript : the DTLS cookie-retry rewind (spec §4.4 step 4) —
	// the only point the transcript is ever reset mid-handshake.
	ResetTranscript()
	// Finish : drains/acknowledges any outstanding retransmission state
	// once the handshake completes (spec §4.4 step 19).
	Finish() error
}
