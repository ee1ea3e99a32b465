package dtls

import "github.com/pkg/errors"

// errVersionMismatch : a handshake message's own version field disagrees
// with the recorded server_version (spec §7 KindDecodeError case).
var errVersionMismatch = errors.New("handshake message version does not match recorded server_version")

// errCookieLength : HelloVerifyRequest cookie outside the 1..32 range
// spec §4.2/§8 mandates.
var errCookieLength = errors.New("cookie length out of range")

// parseHelloVerifyRequest : spec §4.2 — version (must equal recorded
// server_version), opaque8 cookie (length 1..32), assert empty.
func parseHelloVerifyRequest(body []byte, serverVersion ProtocolVersion) ([]byte, error) {
	r := newReader(body)
	version, err := r.readVersion()
	if err != nil {
		return nil, err
	}
	if !version.Equal(serverVersion) {
		return nil, errVersionMismatch
	}
	cookie, err := r.readOpaque8()
	if err != nil {
		return nil, err
	}
	if len(cookie) < 1 || len(cookie) > 32 {
		return nil, errCookieLength
	}
	if err := r.assertEmpty(); err != nil {
		return nil, err
	}
	return append([]byte{}, cookie...), nil
}
