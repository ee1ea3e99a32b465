package dtls

import (
	"crypto/subtle"

	"github.com/pkg/errors"
)

var (
	errSuiteNotOffered       = errors.New("server selected a cipher suite the client did not offer")
	errSCSVSelected          = errors.New("server selected the SCSV pseudo cipher suite")
	errCompressionNotOffered = errors.New("server selected a compression method the client did not offer")
	errSessionIDTooLong      = errors.New("server_hello session_id longer than 32 bytes")
	errUnsupportedExtension  = errors.New("server returned an extension the client did not offer")
	errBadRenegotiationInfo  = errors.New("renegotiation_info payload is not an empty renegotiated_connection")
)

// serverHello : the parsed fields of spec §4.2's ServerHello, plus the
// secure_renegotiation flag it sets.
type serverHello struct {
	Random              Random
	SessionID           []byte
	CipherSuite         CipherSuiteId
	Compression         CompressionMethod
	SecureRenegotiation bool
}

// parseServerHello : spec §4.2. serverVersion is the authoritative
// version recorded at driver step 3; offeredSuites/offeredCompression/
// clientExtensions are what the client sent in its ClientHello.
func parseServerHello(body []byte, serverVersion ProtocolVersion, offeredSuites []CipherSuiteId, offeredCompression []CompressionMethod, clientExtensions *ExtensionTable) (*serverHello, error) {
	r := newReader(body)

	version, err := r.readVersion()
	if err != nil {
		return nil, err
	}
	if !version.Equal(serverVersion) {
		return nil, errVersionMismatch
	}

	randomBytes, err := r.take(RandomLength)
	if err != nil {
		return nil, err
	}
	var random Random
	copy(random[:], randomBytes)

	sessionID, err := r.readOpaque8()
	if err != nil {
		return nil, err
	}
	if len(sessionID) > 32 {
		return nil, errSessionIDTooLong
	}

	suiteID, err := r.readUint16()
	if err != nil {
		return nil, err
	}
	suite := CipherSuiteId(suiteID)
	if suite == TLSEmptyRenegotiationInfoSCSV {
		return nil, errSCSVSelected
	}
	if !containsSuite(offeredSuites, suite) {
		return nil, errSuiteNotOffered
	}

	compressionID, err := r.readUint8()
	if err != nil {
		return nil, err
	}
	compression := CompressionMethod(compressionID)
	if !containsCompression(offeredCompression, compression) {
		return nil, errCompressionNotOffered
	}

	extensions, err := parseExtensionTable(r)
	if err != nil {
		return nil, err
	}
	if err := r.assertEmpty(); err != nil {
		return nil, err
	}

	secureRenegotiation := false
	for _, typ := range extensions.Types() {
		if typ == ExtensionRenegotiationInfo {
			data, _ := extensions.Get(typ)
			// u8-prefixed empty renegotiated_connection: a single zero
			// length byte, compared constant-time (spec §4.2).
			if subtle.ConstantTimeCompare(data, []byte{0x00}) != 1 {
				return nil, errBadRenegotiationInfo
			}
			secureRenegotiation = true
			continue
		}
		if clientExtensions == nil || !clientExtensions.Has(typ) {
			return nil, errUnsupportedExtension
		}
	}

	return &serverHello{
		Random:              random,
		SessionID:           sessionID,
		CipherSuite:         suite,
		Compression:         compression,
		SecureRenegotiation: secureRenegotiation,
	}, nil
}

func containsSuite(suites []CipherSuiteId, target CipherSuiteId) bool {
	for _, s := range suites {
		if s == target {
			return true
		}
	}
	return false
}

func containsCompression(methods []CompressionMethod, target CompressionMethod) bool {
	for _, m := range methods {
		if m == target {
			return true
		}
	}
	return false
}
