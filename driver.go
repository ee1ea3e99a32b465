package dtls

import (
	"context"

	"github.com/pion/logging"
)

// Connect : drives a single client-side DTLS handshake to completion
// over reliable/record, per the ordered protocol in spec §4.4. Returns
// a secured transport on success. A nil client, reliable or record is
// rejected with KindInvalidArgument before anything is sent and without
// an alert; on any later failure the matching alert has already been
// sent on record and any live premaster secret has been zeroized.
func Connect(ctx context.Context, client TlsClient, reliable ReliableHandshake, record RecordLayer, cfg *Config) (*SecuredTransport, error) {
	if client == nil || reliable == nil || record == nil {
		return nil, newError(KindInvalidArgument, "client and transport must not be nil", nil)
	}

	d := &connector{
		ctx:      ctx,
		client:   client,
		reliable: reliable,
		record:   record,
		cfg:      cfg,
		log:      cfg.logger(),
		state:    &ClientHandshakeState{client: client},
	}
	return d.run()
}

// connector : Init (spec §4.4 step 1) plus the per-handshake scratch
// space the remaining steps mutate. One connector is used for exactly
// one handshake and discarded.
type connector struct {
	ctx      context.Context
	client   TlsClient
	reliable ReliableHandshake
	record   RecordLayer
	cfg      *Config
	log      logging.LeveledLogger
	state    *ClientHandshakeState

	firstClientHello []byte
}

func (d *connector) run() (*SecuredTransport, error) {
	if err := d.init(); err != nil {
		return nil, d.fail(err)
	}
	msgType, body, err := d.sendClientHelloAndWaitForResponse()
	if err != nil {
		return nil, d.fail(err)
	}

	msgType, body, err = d.cookieLoop(msgType, body)
	if err != nil {
		return nil, d.fail(err)
	}

	msgType, body, err = d.processServerHello(msgType, body)
	if err != nil {
		return nil, d.fail(err)
	}

	msgType, body, err = d.processSupplementalData(msgType, body)
	if err != nil {
		return nil, d.fail(err)
	}

	msgType, body, err = d.processServerCertificate(msgType, body)
	if err != nil {
		return nil, d.fail(err)
	}

	msgType, body, err = d.processServerKeyExchange(msgType, body)
	if err != nil {
		return nil, d.fail(err)
	}

	msgType, body, err = d.processCertificateRequest(msgType, body)
	if err != nil {
		return nil, d.fail(err)
	}

	if err := d.processServerHelloDone(msgType, body); err != nil {
		return nil, d.fail(err)
	}

	if err := d.sendClientSupplementalData(); err != nil {
		return nil, d.fail(err)
	}
	if err := d.sendClientCertificate(); err != nil {
		return nil, d.fail(err)
	}
	if err := d.sendClientKeyExchange(); err != nil {
		return nil, d.fail(err)
	}
	if err := d.deriveSecrets(); err != nil {
		return nil, d.fail(err)
	}
	if err := d.sendCertificateVerify(); err != nil {
		return nil, d.fail(err)
	}
	if err := d.installPendingCipher(); err != nil {
		return nil, d.fail(err)
	}
	if err := d.sendClientFinished(); err != nil {
		return nil, d.fail(err)
	}
	if err := d.expectServerFinished(); err != nil {
		return nil, d.fail(err)
	}

	return d.finish()
}

// fail : the single point every error path in the driver funnels
// through. It zeroizes any live premaster secret, emits the matching
// alert on the record layer, logs, and returns a classified *Error.
// This replaces the source's silent "// TODO Alert" gaps (spec §9).
func (d *connector) fail(err error) error {
	if err == nil {
		return nil
	}
	d.state.premaster.Zeroize()

	var derr *Error
	if e, ok := err.(*Error); ok {
		derr = e
	} else {
		derr = newError(KindDecodeError, err.Error(), err)
	}

	if alertErr := d.record.SendAlert(AlertLevelFatal, alertFor(derr.Kind)); alertErr != nil {
		d.log.Debugf("failed to send alert for %s: %s", derr.Kind, alertErr)
	}
	d.log.Errorf("dtls handshake failed: %s", derr.Error())
	return derr
}

// classify wraps a raw decode/semantic sentinel error from a message
// codec into the *Error taxonomy spec §7 defines. Message codecs never
// know their own Kind — they return sentinel errors, and the driver
// (which knows which step is running) assigns the Kind.
func classify(kind Kind, description string, err error) error {
	if err == nil {
		return nil
	}
	return newError(kind, description, err)
}

func (d *connector) init() error {
	s := d.state
	s.clientVersion = d.client.ClientVersion()
	s.offeredSuites = d.client.CipherSuites()
	s.offeredCompression = d.client.CompressionMethods()
	s.clientExtensions = d.client.ClientExtensions()

	rng := d.cfg.rng()
	if rng == nil {
		return classify(KindInternalError, "no RNG configured", errNoRNG)
	}
	random, err := NewClientRandom(rng)
	if err != nil {
		return classify(KindInternalError, "failed to generate client random", err)
	}
	s.security.ClientRandom = random
	return nil
}

// sendClientHelloAndWaitForResponse : spec §4.4 steps 2-3.
func (d *connector) sendClientHelloAndWaitForResponse() (HandshakeType, []byte, error) {
	if !d.state.clientVersion.IsDTLS() {
		return 0, nil, classify(KindInternalError, "client_version is not a DTLS version", errNotDTLSVersion)
	}

	body, err := serializeClientHello(d.state)
	if err != nil {
		return 0, nil, classify(KindInvalidArgument, "failed to serialize ClientHello", err)
	}
	d.firstClientHello = body

	if err := d.reliable.Send(d.ctx, HandshakeTypeClientHello, body); err != nil {
		return 0, nil, classify(KindInternalError, "failed to send ClientHello", err)
	}

	msgType, respBody, err := d.reliable.Receive(d.ctx)
	if err != nil {
		return 0, nil, classify(KindInternalError, "failed to receive server response", err)
	}

	serverVersion, ok := d.record.DiscoveredPeerVersion()
	if !ok {
		return 0, nil, classify(KindInternalError, "record layer did not report a peer version", errNoDiscoveredVersion)
	}
	if serverVersion.IsNewerThan(d.state.clientVersion) {
		return 0, nil, classify(KindIllegalParameter, "server_version is newer than the offered client_version", errServerVersionTooNew)
	}
	d.state.serverVersion = serverVersion
	d.state.haveServerVersion = true

	return msgType, respBody, nil
}

// cookieLoop : spec §4.4 step 4. Loops while the server keeps replying
// with HelloVerifyRequest, patching and resending the same ClientHello
// bytes each time and resetting the transcript so only the final
// ClientHello contributes to it.
func (d *connector) cookieLoop(msgType HandshakeType, body []byte) (HandshakeType, []byte, error) {
	current := d.firstClientHello
	for msgType == HandshakeTypeHelloVerifyRequest {
		cookie, err := parseHelloVerifyRequest(body, d.state.serverVersion)
		if err != nil {
			return 0, nil, classify(KindDecodeError, "failed to parse HelloVerifyRequest", err)
		}
		d.state.resetForCookieRetry(cookie)

		patched, err := patchClientHello(current, cookie)
		if err != nil {
			return 0, nil, classify(KindDecodeError, "failed to patch ClientHello with cookie", err)
		}
		current = patched

		d.reliable.ResetTranscript()
		if err := d.reliable.Send(d.ctx, HandshakeTypeClientHello, patched); err != nil {
			return 0, nil, classify(KindInternalError, "failed to resend ClientHello with cookie", err)
		}

		msgType, body, err = d.reliable.Receive(d.ctx)
		if err != nil {
			return 0, nil, classify(KindInternalError, "failed to receive server response after cookie", err)
		}
	}
	return msgType, body, nil
}

// processServerHello : spec §4.4 step 5.
func (d *connector) processServerHello(msgType HandshakeType, body []byte) (HandshakeType, []byte, error) {
	if msgType != HandshakeTypeServerHello {
		return 0, nil, classify(KindUnexpectedMessage, "expected ServerHello", errExpectedServerHello)
	}

	sh, err := parseServerHello(body, d.state.serverVersion, d.state.offeredSuites, d.state.offeredCompression, d.state.clientExtensions)
	if err != nil {
		return 0, nil, classifyServerHelloError(err)
	}

	d.state.security.ServerRandom = sh.Random
	d.state.sessionID = sh.SessionID
	d.state.selectedSuite = sh.CipherSuite
	d.state.selectedCompression = sh.Compression
	d.state.secureRenegotiation = sh.SecureRenegotiation

	if err := d.client.NotifyServerVersion(d.state.serverVersion); err != nil {
		return 0, nil, classify(KindInternalError, "TlsClient rejected server_version", err)
	}
	d.client.NotifySessionID(sh.SessionID)
	if err := d.client.NotifyCipherSuite(sh.CipherSuite); err != nil {
		return 0, nil, classify(KindInternalError, "TlsClient rejected cipher suite", err)
	}
	if err := d.client.NotifyCompressionMethod(sh.Compression); err != nil {
		return 0, nil, classify(KindInternalError, "TlsClient rejected compression method", err)
	}
	d.client.NotifySecureRenegotiation(sh.SecureRenegotiation)

	kx, err := d.client.KeyExchangeFactory(sh.CipherSuite)
	if err != nil {
		return 0, nil, classify(KindInternalError, "failed to create key exchange", err)
	}
	d.state.keyExchange = kx

	msgType, body, err = d.reliable.Receive(d.ctx)
	if err != nil {
		return 0, nil, classify(KindInternalError, "failed to receive message after ServerHello", err)
	}
	return msgType, body, nil
}

// classifyServerHelloError maps the sentinel errors parseServerHello can
// return onto the taxonomy in spec §7.
func classifyServerHelloError(err error) error {
	switch err {
	case errUnsupportedExtension:
		return classify(KindUnsupportedExtension, "server returned an unsolicited extension", err)
	case errBadRenegotiationInfo:
		return classify(KindHandshakeFailure, "bad renegotiation_info payload", err)
	case errSuiteNotOffered, errSCSVSelected, errCompressionNotOffered, errSessionIDTooLong:
		return classify(KindDecodeError, "invalid ServerHello", err)
	default:
		return classify(KindDecodeError, "failed to parse ServerHello", err)
	}
}

// processSupplementalData : spec §4.4 step 6 (optional).
func (d *connector) processSupplementalData(msgType HandshakeType, body []byte) (HandshakeType, []byte, error) {
	if msgType != HandshakeTypeSupplementalData {
		if err := d.client.ProcessSupplementalData(nil); err != nil {
			return 0, nil, classify(KindInternalError, "TlsClient rejected absent supplemental data", err)
		}
		return msgType, body, nil
	}

	entries, err := parseSupplementalData(body)
	if err != nil {
		return 0, nil, classify(KindDecodeError, "failed to parse SupplementalData", err)
	}
	if err := d.client.ProcessSupplementalData(entries); err != nil {
		return 0, nil, classify(KindInternalError, "TlsClient rejected supplemental data", err)
	}

	msgType, body, err = d.reliable.Receive(d.ctx)
	if err != nil {
		return 0, nil, classify(KindInternalError, "failed to receive message after SupplementalData", err)
	}
	return msgType, body, nil
}

// processServerCertificate : spec §4.4 step 7 (optional).
func (d *connector) processServerCertificate(msgType HandshakeType, body []byte) (HandshakeType, []byte, error) {
	kx := d.state.keyExchange
	if msgType != HandshakeTypeCertificate {
		kx.SkipServerCertificate()
		return msgType, body, nil
	}

	chain, err := parseCertificateChain(body)
	if err != nil {
		return 0, nil, classify(KindDecodeError, "failed to parse server Certificate", err)
	}
	if err := kx.ProcessServerCertificate(chain); err != nil {
		return 0, nil, classify(KindHandshakeFailure, "key exchange rejected server certificate", err)
	}

	auth, err := d.client.AuthenticationFactory(d.state.selectedSuite)
	if err != nil {
		return 0, nil, classify(KindInternalError, "failed to create authentication object", err)
	}
	d.state.authentication = auth

	msgType, body, err = d.reliable.Receive(d.ctx)
	if err != nil {
		return 0, nil, classify(KindInternalError, "failed to receive message after Certificate", err)
	}
	return msgType, body, nil
}

// processServerKeyExchange : spec §4.4 step 8 (optional).
func (d *connector) processServerKeyExchange(msgType HandshakeType, body []byte) (HandshakeType, []byte, error) {
	kx := d.state.keyExchange
	if msgType != HandshakeTypeServerKeyExchange {
		kx.SkipServerKeyExchange()
		return msgType, body, nil
	}

	if err := processServerKeyExchange(kx, body); err != nil {
		return 0, nil, classify(KindHandshakeFailure, "key exchange rejected ServerKeyExchange", err)
	}

	msgType, body, err := d.reliable.Receive(d.ctx)
	if err != nil {
		return 0, nil, classify(KindInternalError, "failed to receive message after ServerKeyExchange", err)
	}
	return msgType, body, nil
}

// processCertificateRequest : spec §4.4 step 9 (optional).
func (d *connector) processCertificateRequest(msgType HandshakeType, body []byte) (HandshakeType, []byte, error) {
	if msgType != HandshakeTypeCertificateRequest {
		return msgType, body, nil
	}

	if d.state.authentication == nil {
		return 0, nil, classify(KindUnexpectedMessage, "CertificateRequest received without an authentication capability", errCertRequestWithoutAuth)
	}

	cr, err := parseCertificateRequest(body)
	if err != nil {
		return 0, nil, classify(KindDecodeError, "failed to parse CertificateRequest", err)
	}
	if err := d.state.authentication.ProcessCertificateRequest(cr); err != nil {
		return 0, nil, classify(KindHandshakeFailure, "authentication object rejected CertificateRequest", err)
	}
	d.state.certRequest = cr

	msgType, body, err = d.reliable.Receive(d.ctx)
	if err != nil {
		return 0, nil, classify(KindInternalError, "failed to receive message after CertificateRequest", err)
	}
	return msgType, body, nil
}

// processServerHelloDone : spec §4.4 step 10.
func (d *connector) processServerHelloDone(msgType HandshakeType, body []byte) error {
	if msgType != HandshakeTypeServerHelloDone {
		return classify(KindUnexpectedMessage, "expected ServerHelloDone", errExpectedServerHelloDone)
	}
	if err := parseServerHelloDone(body); err != nil {
		return classify(KindUnexpectedMessage, "ServerHelloDone body must be empty", err)
	}
	return nil
}

// sendClientSupplementalData : spec §4.4 step 11.
func (d *connector) sendClientSupplementalData() error {
	entries, err := d.client.GenerateSupplementalData()
	if err != nil {
		return classify(KindInternalError, "TlsClient failed to generate supplemental data", err)
	}
	if len(entries) == 0 {
		return nil
	}
	body := serializeSupplementalData(entries)
	if err := d.reliable.Send(d.ctx, HandshakeTypeSupplementalData, body); err != nil {
		return classify(KindInternalError, "failed to send SupplementalData", err)
	}
	return nil
}

// sendClientCertificate : spec §4.4 step 12.
func (d *connector) sendClientCertificate() error {
	if d.state.certRequest == nil {
		return nil
	}

	creds, err := d.state.authentication.Credentials()
	if err != nil {
		return classify(KindInternalError, "authentication object failed to produce credentials", err)
	}
	d.state.credentials = creds

	var chain [][]byte
	if creds != nil {
		chain = creds.CertificateChain()
	}
	if err := d.reliable.Send(d.ctx, HandshakeTypeCertificate, serializeCertificateChain(chain)); err != nil {
		return classify(KindInternalError, "failed to send client Certificate", err)
	}
	return nil
}

// sendClientKeyExchange : spec §4.4 step 13.
func (d *connector) sendClientKeyExchange() error {
	kx := d.state.keyExchange
	kx.ProcessClientCredentials(d.state.credentials)

	body, err := kx.GenerateClientKeyExchange()
	if err != nil {
		return classify(KindHandshakeFailure, "key exchange failed to generate ClientKeyExchange", err)
	}
	if err := d.reliable.Send(d.ctx, HandshakeTypeClientKeyExchange, body); err != nil {
		return classify(KindInternalError, "failed to send ClientKeyExchange", err)
	}
	return nil
}

// deriveSecrets : spec §4.4 step 14 / §4.5. The premaster buffer is
// zeroized immediately after deriving the master secret, and again
// (harmlessly) by connector.fail on any later failure path.
func (d *connector) deriveSecrets() error {
	pms, err := d.state.keyExchange.GeneratePremasterSecret()
	if err != nil {
		return classify(KindHandshakeFailure, "key exchange failed to generate premaster secret", err)
	}
	d.state.premaster = newPremasterSecret(pms)
	defer d.state.premaster.Zeroize()

	master := deriveMasterSecret(d.state.premaster.Bytes(), d.state.security.ClientRandom, d.state.security.ServerRandom)
	d.state.premaster.Zeroize()
	d.state.security.MasterSecret = master
	return nil
}

// sendCertificateVerify : spec §4.4 step 15 (only for signing
// credentials).
func (d *connector) sendCertificateVerify() error {
	creds := d.state.credentials
	if creds == nil || !creds.IsSigning() {
		return nil
	}

	transcriptHash := d.reliable.TranscriptHash()
	signature, err := creds.Sign(transcriptHash)
	if err != nil {
		return classify(KindHandshakeFailure, "failed to sign CertificateVerify transcript", err)
	}
	body := serializeCertificateVerify(signature)
	if err := d.reliable.Send(d.ctx, HandshakeTypeCertificateVerify, body); err != nil {
		return classify(KindInternalError, "failed to send CertificateVerify", err)
	}
	return nil
}

// installPendingCipher : spec §4.4 step 16.
func (d *connector) installPendingCipher() error {
	cipherSpec, err := d.client.CipherFactory(d.state.selectedSuite, d.state.security.MasterSecret[:], d.state.security.ClientRandom, d.state.security.ServerRandom)
	if err != nil {
		return classify(KindInternalError, "TlsClient failed to build cipher spec", err)
	}
	if err := d.record.InitPendingEpoch(cipherSpec); err != nil {
		return classify(KindInternalError, "record layer rejected pending cipher spec", err)
	}
	return nil
}

// sendClientFinished : spec §4.4 step 17.
func (d *connector) sendClientFinished() error {
	transcriptHash := d.reliable.TranscriptHash()
	verifyData := verifyDataFromTranscriptHash(d.state.security.MasterSecret, "client finished", transcriptHash)
	if err := d.reliable.Send(d.ctx, HandshakeTypeFinished, serializeFinished(verifyData)); err != nil {
		return classify(KindInternalError, "failed to send Finished", err)
	}
	return nil
}

// expectServerFinished : spec §4.4 step 18. The expected verify_data is
// computed from the transcript *including* the client's own Finished,
// before the blocking receive, per spec §8's transcript property.
func (d *connector) expectServerFinished() error {
	transcriptHash := d.reliable.TranscriptHash()
	expected := verifyDataFromTranscriptHash(d.state.security.MasterSecret, "server finished", transcriptHash)

	msgType, body, err := d.reliable.Receive(d.ctx)
	if err != nil {
		return classify(KindInternalError, "failed to receive server Finished", err)
	}
	if msgType != HandshakeTypeFinished {
		return classify(KindUnexpectedMessage, "expected Finished", errExpectedFinished)
	}
	if !verifyFinished(body, expected) {
		return classify(KindHandshakeFailure, "server Finished verify_data mismatch", errFinishedMismatch)
	}
	return nil
}

// finish : spec §4.4 step 19.
func (d *connector) finish() (*SecuredTransport, error) {
	if err := d.reliable.Finish(); err != nil {
		return nil, d.fail(classify(KindInternalError, "failed to finalize reliable handshake layer", err))
	}
	if err := d.record.HandshakeSuccessful(); err != nil {
		return nil, d.fail(classify(KindInternalError, "record layer failed to commit handshake", err))
	}
	return &SecuredTransport{Record: d.record}, nil
}
