package dtls

import (
	"encoding/binary"
	"io"
	"time"
)

// RandomLength : bytes in a handshake Random, per RFC5246 7.4.1.2.
const RandomLength = 32

// Random : 32-byte nonce sent in ClientHello/ServerHello. The first four
// bytes are conventionally a gmt_unix_time, the remaining 28 are from
// the injected RNG — never a process-wide singleton (spec §9).
type Random [RandomLength]byte

// NewClientRandom : populates a Random using the supplied entropy
// source. rng must not be nil; callers inject it so tests can use a
// deterministic source.
func NewClientRandom(rng io.Reader) (Random, error) {
	var r Random
	binary.BigEndian.PutUint32(r[0:4], uint32(time.Now().Unix()))
	if _, err := io.ReadFull(rng, r[4:]); err != nil {
		return Random{}, err
	}
	return r, nil
}
