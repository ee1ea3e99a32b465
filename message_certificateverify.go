package dtls

// serializeCertificateVerify : spec §4.2 — a u16-length-prefixed
// signature blob (RFC5246 7.4.8, pre-1.2 shape with no
// SignatureAndHashAlgorithm prefix: signature algorithm negotiation for
// DTLS 1.2 is a non-goal, spec §1).
func serializeCertificateVerify(signature []byte) []byte {
	return writeOpaque16(nil, signature)
}
