package dtls

import "github.com/pkg/errors"

// errRC4Forbidden : spec §4.2 — "the serializer must refuse any
// RC4-based suite". RFC6347 4.1.2.4 prohibits RC4 for DTLS because
// stream ciphers don't tolerate record loss/reordering.
var errRC4Forbidden = errors.New("RC4 cipher suite offered for DTLS")

// serializeClientHello : spec §4.2 ClientHello. cookie is nil/empty for
// the first ClientHello and non-empty on a cookie retry (though on a
// retry the wire bytes are produced by patchClientHello instead of this
// function, to satisfy the byte-identical-except-cookie invariant).
func serializeClientHello(state *ClientHandshakeState) ([]byte, error) {
	suites := append([]CipherSuiteId{}, state.offeredSuites...)
	for _, s := range suites {
		if isForbiddenForDTLS(s) {
			return nil, errRC4Forbidden
		}
	}

	// TLS_EMPTY_RENEGOTIATION_INFO_SCSV is offered iff the caller did not
	// supply its own renegotiation_info extension (spec §3 invariant).
	if state.clientExtensions == nil || !state.clientExtensions.Has(ExtensionRenegotiationInfo) {
		suites = append(suites, TLSEmptyRenegotiationInfoSCSV)
	}

	var out []byte
	out = writeVersion(out, state.clientVersion)
	out = append(out, state.security.ClientRandom[:]...)
	out = writeOpaque8(out, state.sessionID)
	out = writeOpaque8(out, state.cookie)

	suiteIDs := make([]uint16, len(suites))
	for i, s := range suites {
		suiteIDs[i] = uint16(s)
	}
	out = writeUint16Array(out, suiteIDs)

	compression := make([]byte, len(state.offeredCompression))
	for i, c := range state.offeredCompression {
		compression[i] = byte(c)
	}
	out = writeOpaque8(out, compression)

	if state.clientExtensions != nil && state.clientExtensions.Len() > 0 {
		out = append(out, state.clientExtensions.marshal()...)
	}

	return out, nil
}
