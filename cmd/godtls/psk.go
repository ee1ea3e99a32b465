package main

import (
	"encoding/binary"

	dtls "github.com/1stship/godtls"
)

// cipherSuitePSKWithAES128CBCSHA : TLS_PSK_WITH_AES_128_CBC_SHA
// (RFC4279 2), the only suite this demo client offers.
const cipherSuitePSKWithAES128CBCSHA dtls.CipherSuiteId = 0x008c

// pskClient is a minimal dtls.TlsClient offering a single PSK cipher
// suite and no client authentication, extensions or compression beyond
// null. It exists to give cmd/godtls something concrete to hand
// dtls.Connect; a real TlsClient would also support certificate-based
// suites and supplemental data.
type pskClient struct {
	identity []byte
	psk      []byte
}

func newPSKClient(identity string, psk []byte) *pskClient {
	return &pskClient{identity: []byte(identity), psk: psk}
}

func (c *pskClient) ClientVersion() dtls.ProtocolVersion { return dtls.VersionDTLS10 }

func (c *pskClient) CipherSuites() []dtls.CipherSuiteId {
	return []dtls.CipherSuiteId{cipherSuitePSKWithAES128CBCSHA}
}

func (c *pskClient) CompressionMethods() []dtls.CompressionMethod {
	return []dtls.CompressionMethod{dtls.CompressionNull}
}

func (c *pskClient) ClientExtensions() *dtls.ExtensionTable { return nil }

func (c *pskClient) NotifyServerVersion(dtls.ProtocolVersion) error { return nil }
func (c *pskClient) NotifySessionID([]byte)                         {}

func (c *pskClient) NotifyCipherSuite(suite dtls.CipherSuiteId) error {
	if suite != cipherSuitePSKWithAES128CBCSHA {
		return errUnexpectedSuite
	}
	return nil
}

func (c *pskClient) NotifyCompressionMethod(dtls.CompressionMethod) error { return nil }
func (c *pskClient) NotifySecureRenegotiation(bool)                       {}

func (c *pskClient) GenerateSupplementalData() ([]dtls.SupplementalDataEntry, error) { return nil, nil }
func (c *pskClient) ProcessSupplementalData([]dtls.SupplementalDataEntry) error      { return nil }

func (c *pskClient) KeyExchangeFactory(suite dtls.CipherSuiteId) (dtls.KeyExchange, error) {
	if suite != cipherSuitePSKWithAES128CBCSHA {
		return nil, errUnexpectedSuite
	}
	return &pskKeyExchange{identity: c.identity, psk: c.psk}, nil
}

func (c *pskClient) AuthenticationFactory(dtls.CipherSuiteId) (dtls.Authentication, error) {
	return nil, nil
}

func (c *pskClient) CipherFactory(suite dtls.CipherSuiteId, masterSecret []byte, clientRandom, serverRandom dtls.Random) (dtls.PendingCipherSpec, error) {
	return &pskCipherSpec{suite: suite, masterSecret: append([]byte(nil), masterSecret...)}, nil
}

// pskKeyExchange implements dtls.KeyExchange for TLS_PSK_* suites
// (RFC4279 2): no certificate or server key-exchange material is
// expected, and the premaster secret is derived from the PSK alone.
type pskKeyExchange struct {
	identity []byte
	psk      []byte
}

func (k *pskKeyExchange) SkipServerCertificate()                    {}
func (k *pskKeyExchange) ProcessServerCertificate([][]byte) error   { return errUnexpectedCertificate }
func (k *pskKeyExchange) SkipServerKeyExchange()                    {}
func (k *pskKeyExchange) ProcessServerKeyExchange([]byte) error     { return nil }
func (k *pskKeyExchange) ProcessClientCredentials(dtls.Credentials) {}

// GenerateClientKeyExchange builds the PSK ClientKeyExchange body:
// opaque16 psk_identity (RFC4279 3).
func (k *pskKeyExchange) GenerateClientKeyExchange() ([]byte, error) {
	out := make([]byte, 0, 2+len(k.identity))
	lenBytes := make([]byte, 2)
	binary.BigEndian.PutUint16(lenBytes, uint16(len(k.identity)))
	out = append(out, lenBytes...)
	out = append(out, k.identity...)
	return out, nil
}

// GeneratePremasterSecret : RFC4279 2 — uint16(N) || N zero octets ||
// uint16(N) || psk, where N is the PSK length.
func (k *pskKeyExchange) GeneratePremasterSecret() ([]byte, error) {
	n := uint16(len(k.psk))
	lenBytes := make([]byte, 2)
	binary.BigEndian.PutUint16(lenBytes, n)

	out := make([]byte, 0, 4+2*len(k.psk))
	out = append(out, lenBytes...)
	out = append(out, make([]byte, n)...)
	out = append(out, lenBytes...)
	out = append(out, k.psk...)
	return out, nil
}

// pskCipherSpec is the opaque token this demo hands to
// RecordLayer.InitPendingEpoch; udpHandshakeLink ignores it since it
// never encrypts records.
type pskCipherSpec struct {
	suite        dtls.CipherSuiteId
	masterSecret []byte
}
