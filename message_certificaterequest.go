package dtls

// parseCertificateRequest : spec §4.2 — an opaque8 list of certificate
// types followed by a u16-length-prefixed list of opaque16 CA
// distinguished names (RFC5246 7.4.4).
func parseCertificateRequest(body []byte) (*CertificateRequest, error) {
	r := newReader(body)

	types, err := r.readOpaque8()
	if err != nil {
		return nil, err
	}

	casBody, err := r.readOpaque16()
	if err != nil {
		return nil, err
	}
	if err := r.assertEmpty(); err != nil {
		return nil, err
	}

	sub := newReader(casBody)
	var cas [][]byte
	for sub.remaining() > 0 {
		dn, err := sub.readOpaque16()
		if err != nil {
			return nil, err
		}
		cas = append(cas, append([]byte{}, dn...))
	}

	return &CertificateRequest{
		CertificateTypes:       append([]byte{}, types...),
		CertificateAuthorities: cas,
	}, nil
}
