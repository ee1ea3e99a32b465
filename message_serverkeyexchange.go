package dtls

// ServerKeyExchange's body format is entirely suite-dependent (RSA/DH/
// ECDH params — all out of scope, spec §1). The core hands the whole
// raw body to the key-exchange object and does no check of its own for
// trailing bytes: KeyExchange.ProcessServerKeyExchange does not report
// how much it consumed, so any emptiness check happens only inside the
// key-exchange's own parsing.
func processServerKeyExchange(kx KeyExchange, body []byte) error {
	return kx.ProcessServerKeyExchange(body)
}
