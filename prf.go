package dtls

import (
	"crypto/hmac"
	"crypto/md5"  //nolint:gosec // required by the legacy TLS 1.0/1.1 PRF this DTLS version reuses
	"crypto/sha1" //nolint:gosec // ditto
	"hash"
)

// PremasterSecret : a scoped wrapper around the key-exchange output.
// Every exit path from driver step 14 (success or failure) calls
// Zeroize before the buffer is released, per spec §3/§5's "overwrite
// the premaster buffer with zeros immediately after use, on all exit
// paths" invariant. There is no finalizer: Go has no reliable hook for
// that, so the driver zeroizes explicitly in a defer instead (spec §9's
// "systems-language implementation should prefer [a scoped-secret type]"
// is satisfied at the granularity Go actually offers).
type PremasterSecret struct {
	bytes []byte
}

func newPremasterSecret(b []byte) *PremasterSecret {
	return &PremasterSecret{bytes: b}
}

func (p *PremasterSecret) Bytes() []byte {
	if p == nil {
		return nil
	}
	return p.bytes
}

// Zeroize : overwrites the buffer with zero bytes. Safe to call more
// than once and on a nil receiver.
func (p *PremasterSecret) Zeroize() {
	if p == nil {
		return
	}
	for i := range p.bytes {
		p.bytes[i] = 0
	}
}

// pHash : RFC2246 5's P_hash(secret, seed) expansion function using the
// given HMAC hash constructor.
func pHash(newHash func() hash.Hash, secret, seed []byte, length int) []byte {
	out := make([]byte, 0, length)
	a := seed
	for len(out) < length {
		mac := hmac.New(newHash, secret)
		mac.Write(a)
		a = mac.Sum(nil)

		mac = hmac.New(newHash, secret)
		mac.Write(a)
		mac.Write(seed)
		out = append(out, mac.Sum(nil)...)
	}
	return out[:length]
}

// splitSecret : RFC2246 5's S1/S2 halves, overlapping by one byte when
// the secret has odd length.
func splitSecret(secret []byte) (s1, s2 []byte) {
	half := (len(secret) + 1) / 2
	s1 = secret[:half]
	s2 = secret[len(secret)-half:]
	return s1, s2
}

// prf10 : the pre-TLS-1.2 PRF — PRF(secret, label, seed) =
// P_MD5(S1, label+seed) XOR P_SHA-1(S2, label+seed). DTLS versions up
// to the one this core negotiates reuse this verbatim (spec §4.5); the
// single-hash TLS 1.2 PRF and its signature-algorithm negotiation are a
// non-goal.
func prf10(secret, label, seed []byte, length int) []byte {
	labelSeed := make([]byte, 0, len(label)+len(seed))
	labelSeed = append(labelSeed, label...)
	labelSeed = append(labelSeed, seed...)

	s1, s2 := splitSecret(secret)
	md5Out := pHash(md5.New, s1, labelSeed, length)
	sha1Out := pHash(sha1.New, s2, labelSeed, length)

	out := make([]byte, length)
	for i := 0; i < length; i++ {
		out[i] = md5Out[i] ^ sha1Out[i]
	}
	return out
}

// deriveMasterSecret : spec §4.5 — master_secret =
// PRF(pms, "master secret", client_random || server_random)[0..48].
func deriveMasterSecret(pms []byte, clientRandom, serverRandom Random) [48]byte {
	seed := make([]byte, 0, RandomLength*2)
	seed = append(seed, clientRandom[:]...)
	seed = append(seed, serverRandom[:]...)
	out := prf10(pms, []byte("master secret"), seed, 48)
	var ms [48]byte
	copy(ms[:], out)
	return ms
}

// md5Sha1Transcript : the pre-1.2 handshake transcript digest — the
// concatenation of an MD5 and a SHA-1 hash over the same byte stream,
// used as the PRF seed for CertificateVerify and Finished.
func md5Sha1Transcript(messages []byte) []byte {
	m := md5.Sum(messages)  //nolint:gosec
	s := sha1.Sum(messages) //nolint:gosec
	out := make([]byte, 0, len(m)+len(s))
	out = append(out, m[:]...)
	out = append(out, s[:]...)
	return out
}

// verifyDataFromTranscriptHash : spec §4.5 — verify_data =
// PRF(master_secret, label, transcript_hash)[0..12]. transcriptHash is
// taken as-is from ReliableHandshake.TranscriptHash(), which for the
// pre-1.2 versions this core negotiates is already the MD5||SHA1
// concatenation (see md5Sha1Transcript, used by fakes in tests to
// produce it from a raw message stream).
func verifyDataFromTranscriptHash(masterSecret [48]byte, label string, transcriptHash []byte) []byte {
	return prf10(masterSecret[:], []byte(label), transcriptHash, 12)
}
