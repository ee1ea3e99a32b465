package dtls

// SecurityParameters : the secrets assigned, in order, as the handshake
// progresses (spec §3). master_secret is derived exactly once.
type SecurityParameters struct {
	ClientRandom Random
	ServerRandom Random
	MasterSecret [48]byte
}

// ClientHandshakeState : the evolving negotiated context for exactly
// one handshake. It is never reused across handshakes and is dropped
// on completion or failure. The premaster secret is zeroized on every
// path; the master secret in security is not cleared.
type ClientHandshakeState struct {
	client TlsClient

	clientVersion       ProtocolVersion
	serverVersion       ProtocolVersion
	haveServerVersion   bool
	offeredSuites       []CipherSuiteId
	offeredCompression  []CompressionMethod
	clientExtensions    *ExtensionTable
	secureRenegotiation bool

	selectedSuite       CipherSuiteId
	selectedCompression CompressionMethod

	security SecurityParameters

	keyExchange    KeyExchange
	authentication Authentication
	certRequest    *CertificateRequest
	credentials    Credentials

	sessionID []byte
	cookie    []byte

	premaster *PremasterSecret
}

// resetForCookieRetry : called on a cookie retry (spec §4.4 step 4). It
// only records the server's cookie. Everything else survives unchanged:
// client_random, offered suites/compressions and extensions, and the
// server_version recorded at step 3. No key-exchange state exists yet at
// this point, since it is created only after ServerHello.
func (s *ClientHandshakeState) resetForCookieRetry(cookie []byte) {
	s.cookie = cookie
}
