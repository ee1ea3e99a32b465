package dtls

// CipherSuiteId : the two-byte IANA cipher suite identifier.
type CipherSuiteId uint16

// CompressionMethod : RFC5246 A.4.1. Only CompressionNull is supported;
// compression negotiation beyond offering it is a non-goal (spec §1).
type CompressionMethod byte

const CompressionNull CompressionMethod = 0x00

// TLSEmptyRenegotiationInfoSCSV : RFC5746 3.3 — a pseudo cipher suite
// that signals renegotiation_info support in-band, for clients that
// don't want to add the extension itself.
const TLSEmptyRenegotiationInfoSCSV CipherSuiteId = 0x00ff

// forbiddenDTLSSuites : RC4-based suites are explicitly prohibited for
// DTLS (RFC6347 4.1.2.4 forbids stream ciphers against record
// splitting/reordering). Detection is exact suite-id match, not a
// heuristic, per spec §4.2.
var forbiddenDTLSSuites = map[CipherSuiteId]bool{
	0x0005: true, // TLS_RSA_WITH_RC4_128_SHA
	0x0004: true, // TLS_RSA_WITH_RC4_128_MD5
	0xc007: true, // TLS_ECDHE_ECDSA_WITH_RC4_128_SHA
	0xc011: true, // TLS_ECDHE_RSA_WITH_RC4_128_SHA
	0xc002: true, // TLS_ECDH_ECDSA_WITH_RC4_128_SHA
	0xc00c: true, // TLS_ECDH_RSA_WITH_RC4_128_SHA
	0x0018: true, // TLS_DH_anon_WITH_RC4_128_MD5
}

func isForbiddenForDTLS(id CipherSuiteId) bool {
	return forbiddenDTLSSuites[id]
}
