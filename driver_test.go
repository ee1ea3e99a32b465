package dtls

import (
	"bytes"
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCipherSuite : an arbitrary non-RC4 suite id these fixtures
// negotiate. Its value has no bearing on the driver, which never
// inspects suite semantics (spec §1).
const testCipherSuite CipherSuiteId = 0x008c

func fixedRNG() *bytes.Reader {
	return bytes.NewReader(bytes.Repeat([]byte{0x42}, 28))
}

func buildServerHello(version ProtocolVersion, random Random, sessionID []byte, suite CipherSuiteId, compression CompressionMethod, ext *ExtensionTable) []byte {
	var out []byte
	out = writeVersion(out, version)
	out = append(out, random[:]...)
	out = writeOpaque8(out, sessionID)
	out = writeUint16(out, uint16(suite))
	out = writeUint8(out, uint8(compression))
	if ext != nil && ext.Len() > 0 {
		out = append(out, ext.marshal()...)
	}
	return out
}

func buildHelloVerifyRequest(version ProtocolVersion, cookie []byte) []byte {
	var out []byte
	out = writeVersion(out, version)
	out = writeOpaque8(out, cookie)
	return out
}

// fakeReliable is a hand-written ReliableHandshake: Send/Receive are
// scripted per test, and the transcript/Finished verify_data are
// computed honestly from whatever bytes actually crossed Send/Receive,
// so a driver bug (wrong message, wrong order) shows up as a genuine
// transcript or verify_data mismatch rather than a canned pass.
type fakeReliable struct {
	premaster    []byte
	serverRandom Random
	clientRandom Random
	haveClient   bool

	transcript []byte
	sendLog    []HandshakeType
	recvScript []func(f *fakeReliable) (HandshakeType, []byte)
	recvIdx    int
	resetCount int
	finished   bool
}

func (f *fakeReliable) Send(_ context.Context, msgType HandshakeType, body []byte) error {
	f.sendLog = append(f.sendLog, msgType)
	if msgType == HandshakeTypeClientHello && !f.haveClient {
		copy(f.clientRandom[:], body[2:2+RandomLength])
		f.haveClient = true
	}
	f.transcript = append(f.transcript, body...)
	return nil
}

func (f *fakeReliable) Receive(context.Context) (HandshakeType, []byte, error) {
	if f.recvIdx >= len(f.recvScript) {
		return 0, nil, errors.New("fakeReliable: script exhausted")
	}
	fn := f.recvScript[f.recvIdx]
	f.recvIdx++
	msgType, body := fn(f)
	f.transcript = append(f.transcript, body...)
	return msgType, body, nil
}

func (f *fakeReliable) TranscriptHash() []byte { return md5Sha1Transcript(f.transcript) }
func (f *fakeReliable) ResetTranscript()       { f.transcript = nil; f.resetCount++ }
func (f *fakeReliable) Finish() error          { f.finished = true; return nil }

// serverFinishedStep returns the recvScript step for the server's
// Finished message, computed from whatever the fake actually observed
// so far (clientRandom captured off the wire, transcript accumulated
// in real call order) rather than a value precomputed by the test.
func serverFinishedStep(corrupt bool) func(f *fakeReliable) (HandshakeType, []byte) {
	return func(f *fakeReliable) (HandshakeType, []byte) {
		master := deriveMasterSecret(f.premaster, f.clientRandom, f.serverRandom)
		hash := md5Sha1Transcript(f.transcript)
		vd := verifyDataFromTranscriptHash(master, "server finished", hash)
		if corrupt {
			vd = append([]byte{}, vd...)
			vd[0] ^= 0xff
		}
		return HandshakeTypeFinished, vd
	}
}

type fakeKeyExchange struct {
	premaster   []byte
	cke         []byte
	skippedCert bool
	skippedKex  bool
}

func (k *fakeKeyExchange) SkipServerCertificate()                  { k.skippedCert = true }
func (k *fakeKeyExchange) ProcessServerCertificate([][]byte) error { return nil }
func (k *fakeKeyExchange) SkipServerKeyExchange()                  { k.skippedKex = true }
func (k *fakeKeyExchange) ProcessServerKeyExchange([]byte) error   { return nil }
func (k *fakeKeyExchange) ProcessClientCredentials(Credentials)    {}
func (k *fakeKeyExchange) GenerateClientKeyExchange() ([]byte, error) {
	return k.cke, nil
}
func (k *fakeKeyExchange) GeneratePremasterSecret() ([]byte, error) {
	return append([]byte{}, k.premaster...), nil
}

type fakeClient struct {
	suites      []CipherSuiteId
	compression []CompressionMethod
	kx          KeyExchange

	notifiedSuite       CipherSuiteId
	notifiedCompression CompressionMethod
	suppDataCalls       int
}

func (c *fakeClient) ClientVersion() ProtocolVersion          { return VersionDTLS10 }
func (c *fakeClient) CipherSuites() []CipherSuiteId           { return c.suites }
func (c *fakeClient) CompressionMethods() []CompressionMethod { return c.compression }
func (c *fakeClient) ClientExtensions() *ExtensionTable       { return nil }

func (c *fakeClient) NotifyServerVersion(ProtocolVersion) error { return nil }
func (c *fakeClient) NotifySessionID([]byte)                    {}
func (c *fakeClient) NotifyCipherSuite(s CipherSuiteId) error {
	c.notifiedSuite = s
	return nil
}
func (c *fakeClient) NotifyCompressionMethod(m CompressionMethod) error {
	c.notifiedCompression = m
	return nil
}
func (c *fakeClient) NotifySecureRenegotiation(bool) {}

func (c *fakeClient) GenerateSupplementalData() ([]SupplementalDataEntry, error) { return nil, nil }
func (c *fakeClient) ProcessSupplementalData(entries []SupplementalDataEntry) error {
	c.suppDataCalls++
	if entries != nil {
		return errors.New("unexpected supplemental data in this fixture")
	}
	return nil
}

func (c *fakeClient) KeyExchangeFactory(CipherSuiteId) (KeyExchange, error) { return c.kx, nil }
func (c *fakeClient) AuthenticationFactory(CipherSuiteId) (Authentication, error) {
	return nil, nil
}
func (c *fakeClient) CipherFactory(CipherSuiteId, []byte, Random, Random) (PendingCipherSpec, error) {
	return "fake-cipher-spec", nil
}

type fakeRecord struct {
	version     ProtocolVersion
	alerts      []AlertDescription
	pendingSpec PendingCipherSpec
	handshakeOK bool
}

func (r *fakeRecord) DiscoveredPeerVersion() (ProtocolVersion, bool) { return r.version, true }
func (r *fakeRecord) InitPendingEpoch(spec PendingCipherSpec) error {
	r.pendingSpec = spec
	return nil
}
func (r *fakeRecord) HandshakeSuccessful() error { r.handshakeOK = true; return nil }
func (r *fakeRecord) SendAlert(_ AlertLevel, desc AlertDescription) error {
	r.alerts = append(r.alerts, desc)
	return nil
}

// fixture bundles the three fakes for a single-suite, no-client-auth
// PSK-shaped handshake; individual tests override whichever script
// step exercises the behavior under test.
type fixture struct {
	client   *fakeClient
	kx       *fakeKeyExchange
	reliable *fakeReliable
	record   *fakeRecord
}

func newFixture(serverRandom Random) *fixture {
	premaster := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	kx := &fakeKeyExchange{premaster: premaster, cke: []byte{0x00, 0x04, 't', 'e', 's', 't'}}
	client := &fakeClient{
		suites:      []CipherSuiteId{testCipherSuite},
		compression: []CompressionMethod{CompressionNull},
		kx:          kx,
	}
	reliable := &fakeReliable{premaster: premaster, serverRandom: serverRandom}
	record := &fakeRecord{version: VersionDTLS10}
	return &fixture{client: client, kx: kx, reliable: reliable, record: record}
}

func happyPathScript(corruptFinished bool) []func(f *fakeReliable) (HandshakeType, []byte) {
	return []func(f *fakeReliable) (HandshakeType, []byte){
		func(f *fakeReliable) (HandshakeType, []byte) {
			return HandshakeTypeServerHello, buildServerHello(VersionDTLS10, f.serverRandom, nil, testCipherSuite, CompressionNull, nil)
		},
		func(f *fakeReliable) (HandshakeType, []byte) {
			return HandshakeTypeServerHelloDone, nil
		},
		serverFinishedStep(corruptFinished),
	}
}

func TestConnect_HappyPath(t *testing.T) {
	var serverRandom Random
	copy(serverRandom[:], bytes.Repeat([]byte{0x99}, RandomLength))
	fx := newFixture(serverRandom)
	fx.reliable.recvScript = happyPathScript(false)

	cfg := &Config{RNG: fixedRNG()}
	transport, err := Connect(context.Background(), fx.client, fx.reliable, fx.record, cfg)

	require.NoError(t, err)
	require.NotNil(t, transport)
	assert.Same(t, fx.record, transport.Record)
	assert.True(t, fx.record.handshakeOK)
	assert.True(t, fx.reliable.finished)
	assert.Empty(t, fx.record.alerts)
	assert.Equal(t, testCipherSuite, fx.client.notifiedSuite)
	assert.Equal(t, CompressionNull, fx.client.notifiedCompression)
	assert.True(t, fx.kx.skippedCert)
	assert.True(t, fx.kx.skippedKex)
}

func TestConnect_CookieRoundTrip(t *testing.T) {
	var serverRandom Random
	copy(serverRandom[:], bytes.Repeat([]byte{0x77}, RandomLength))
	fx := newFixture(serverRandom)
	cookie := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	script := []func(f *fakeReliable) (HandshakeType, []byte){
		func(f *fakeReliable) (HandshakeType, []byte) {
			return HandshakeTypeHelloVerifyRequest, buildHelloVerifyRequest(VersionDTLS10, cookie)
		},
	}
	script = append(script, happyPathScript(false)...)
	fx.reliable.recvScript = script

	cfg := &Config{RNG: fixedRNG()}
	transport, err := Connect(context.Background(), fx.client, fx.reliable, fx.record, cfg)

	require.NoError(t, err)
	require.NotNil(t, transport)
	assert.Equal(t, 1, fx.reliable.resetCount, "cookie retry must reset the transcript exactly once")
	// Two ClientHello sends: the original and the cookie-patched resend.
	chCount := 0
	for _, m := range fx.reliable.sendLog {
		if m == HandshakeTypeClientHello {
			chCount++
		}
	}
	assert.Equal(t, 2, chCount)
}

func TestConnect_ServerVersionTooNew_IllegalParameter(t *testing.T) {
	var serverRandom Random
	fx := newFixture(serverRandom)
	fx.record.version = VersionDTLS12 // newer than the VersionDTLS10 the client offers
	fx.reliable.recvScript = []func(f *fakeReliable) (HandshakeType, []byte){
		func(f *fakeReliable) (HandshakeType, []byte) { return HandshakeTypeServerHello, nil },
	}

	cfg := &Config{RNG: fixedRNG()}
	_, err := Connect(context.Background(), fx.client, fx.reliable, fx.record, cfg)

	require.Error(t, err)
	derr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, KindIllegalParameter, derr.Kind)
	require.Len(t, fx.record.alerts, 1)
	assert.Equal(t, AlertIllegalParameter, fx.record.alerts[0])
}

func TestConnect_RC4Refused_InvalidArgument(t *testing.T) {
	var serverRandom Random
	fx := newFixture(serverRandom)
	fx.client.suites = []CipherSuiteId{0x0005} // TLS_RSA_WITH_RC4_128_SHA

	cfg := &Config{RNG: fixedRNG()}
	_, err := Connect(context.Background(), fx.client, fx.reliable, fx.record, cfg)

	require.Error(t, err)
	derr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, KindInvalidArgument, derr.Kind)
	assert.Empty(t, fx.reliable.sendLog, "RC4 must be refused before anything is sent on the wire")
}

func TestConnect_BadFinished_HandshakeFailure(t *testing.T) {
	var serverRandom Random
	copy(serverRandom[:], bytes.Repeat([]byte{0x55}, RandomLength))
	fx := newFixture(serverRandom)
	fx.reliable.recvScript = happyPathScript(true)

	cfg := &Config{RNG: fixedRNG()}
	_, err := Connect(context.Background(), fx.client, fx.reliable, fx.record, cfg)

	require.Error(t, err)
	derr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, KindHandshakeFailure, derr.Kind)
	require.Len(t, fx.record.alerts, 1)
	assert.Equal(t, AlertHandshakeFailure, fx.record.alerts[0])
}

func TestConnect_UnsolicitedExtension_Unsupported(t *testing.T) {
	var serverRandom Random
	fx := newFixture(serverRandom)

	unsolicited := NewExtensionTable()
	unsolicited.Set(0x0000, nil) // server_name; client offered no extensions at all

	fx.reliable.recvScript = []func(f *fakeReliable) (HandshakeType, []byte){
		func(f *fakeReliable) (HandshakeType, []byte) {
			return HandshakeTypeServerHello, buildServerHello(VersionDTLS10, f.serverRandom, nil, testCipherSuite, CompressionNull, unsolicited)
		},
	}

	cfg := &Config{RNG: fixedRNG()}
	_, err := Connect(context.Background(), fx.client, fx.reliable, fx.record, cfg)

	require.Error(t, err)
	derr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, KindUnsupportedExtension, derr.Kind)
	require.Len(t, fx.record.alerts, 1)
	assert.Equal(t, AlertUnsupportedExtension, fx.record.alerts[0])
}
