package dtls

// patchClientHello : spec §4.3 — splices cookie into the exact bytes of
// a previously serialized ClientHello without re-serializing it, so
// everything outside the cookie field is preserved byte-for-byte and
// the handshake transcript stays deterministic.
//
// Layout up to the cookie field: 2 bytes client_version, 32 bytes
// random, then a u8-length-prefixed session_id, then a
// u8-length-prefixed cookie. The session_id length byte therefore sits
// at a fixed offset (2 + RandomLength = 34); the cookie length byte
// follows the session_id bytes.
func patchClientHello(original []byte, cookie []byte) ([]byte, error) {
	const sessionIDLenOffset = 2 + RandomLength
	if len(original) < sessionIDLenOffset+1 {
		return nil, errShortBuffer
	}

	sessionIDLen := int(original[sessionIDLenOffset])
	cookieLenOffset := sessionIDLenOffset + 1 + sessionIDLen
	if len(original) < cookieLenOffset+1 {
		return nil, errShortBuffer
	}

	oldCookieLen := int(original[cookieLenOffset])
	remainderOffset := cookieLenOffset + 1 + oldCookieLen
	if len(original) < remainderOffset {
		return nil, errShortBuffer
	}

	out := make([]byte, 0, cookieLenOffset+1+len(cookie)+(len(original)-remainderOffset))
	out = append(out, original[:cookieLenOffset]...)
	out = writeOpaque8(out, cookie)
	out = append(out, original[remainderOffset:]...)
	return out, nil
}
