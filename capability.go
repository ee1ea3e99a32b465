package dtls

// TlsClient : the caller-supplied capability through which cipher
// suites, key exchange, authentication and certificate handling are
// plugged in. The core never implements any cryptographic primitive
// itself — it only sequences calls into TlsClient and the objects it
// hands back, in the order spec §4.4 mandates.
type TlsClient interface {
	// ClientVersion is validated as a DTLS version at driver step 2.
	ClientVersion() ProtocolVersion
	CipherSuites() []CipherSuiteId
	CompressionMethods() []CompressionMethod
	// ClientExtensions may be nil or empty; TLS_EMPTY_RENEGOTIATION_INFO_SCSV
	// is appended to the offered suites by the driver iff no
	// renegotiation_info entry is present here (spec §3 invariant).
	ClientExtensions() *ExtensionTable

	NotifyServerVersion(ProtocolVersion) error
	NotifySessionID(id []byte)
	NotifyCipherSuite(CipherSuiteId) error
	NotifyCompressionMethod(CompressionMethod) error
	NotifySecureRenegotiation(bool)

	// GenerateSupplementalData returns entries to send at driver step 11;
	// a nil/empty result means nothing is sent.
	GenerateSupplementalData() ([]SupplementalDataEntry, error)
	// ProcessSupplementalData is always called at driver step 6, with a
	// nil slice when the server sent none.
	ProcessSupplementalData([]SupplementalDataEntry) error

	KeyExchangeFactory(suite CipherSuiteId) (KeyExchange, error)
	AuthenticationFactory(suite CipherSuiteId) (Authentication, error)
	// CipherFactory builds the PendingCipherSpec installed on the record
	// layer at driver step 16.
	CipherFactory(suite CipherSuiteId, masterSecret []byte, clientRandom, serverRandom Random) (PendingCipherSpec, error)
}

// KeyExchange : the pluggable key-exchange algorithm (RSA/DH/ECDH/PSK
// variants — all out of scope for this core). Created only after the
// ServerHello selects a cipher suite; observes server certificate,
// server key-exchange, and client credentials in that order with
// explicit skip calls when the optional message is absent (spec §3).
type KeyExchange interface {
	SkipServerCertificate()
	// ProcessServerCertificate may accept an empty chain; whether that's
	// acceptable is entirely this object's decision (spec §4.4 edge
	// policy).
	ProcessServerCertificate(chain [][]byte) error

	SkipServerKeyExchange()
	ProcessServerKeyExchange(body []byte) error

	ProcessClientCredentials(Credentials)

	GenerateClientKeyExchange() ([]byte, error)
	// GeneratePremasterSecret is called once, after ClientKeyExchange is
	// sent; the returned buffer is zeroized by the driver after deriving
	// the master secret.
	GeneratePremasterSecret() ([]byte, error)
}

// Authentication : supplied by TlsClient only when it wants to support
// client authentication. A CertificateRequest from the server is only
// valid if this object exists (spec §4.2).
type Authentication interface {
	ProcessCertificateRequest(*CertificateRequest) error
	// Credentials may return (nil, nil) to mean "respond with an empty
	// certificate chain".
	Credentials() (Credentials, error)
}

// Credentials : client certificate (possibly empty chain) plus, for
// signing credentials, the ability to sign the transcript hash for
// CertificateVerify.
type Credentials interface {
	CertificateChain() [][]byte
	IsSigning() bool
	Sign(transcriptHash []byte) ([]byte, error)
}

// PendingCipherSpec : an opaque token produced by TlsClient.CipherFactory
// and handed to RecordLayer.InitPendingEpoch. The core never inspects
// it — cipher suite implementations are out of scope (spec §1).
type PendingCipherSpec interface{}

// SupplementalDataEntry : RFC4680 supplemental data, opaque to the core.
type SupplementalDataEntry struct {
	Type uint16
	Data []byte
}

// CertificateRequest : server's request for client authentication
// (spec §4.2). CertificateAuthorities are DER-encoded distinguished
// names, passed through unparsed.
type CertificateRequest struct {
	CertificateTypes       []byte
	CertificateAuthorities [][]byte
}
