package dtls

// Certificate message wire format, RFC5246 7.4.2: a u24-length-prefixed
// list of u24-length-prefixed DER certificates, used both for the
// server's Certificate (parse) and the client's Certificate (serialize)
// — spec §4.2 treats these as one shape with two directions.

func parseCertificateChain(body []byte) ([][]byte, error) {
	r := newReader(body)
	totalLen, err := r.readUint24()
	if err != nil {
		return nil, err
	}
	certsBody, err := r.take(int(totalLen))
	if err != nil {
		return nil, err
	}
	if err := r.assertEmpty(); err != nil {
		return nil, err
	}

	sub := newReader(certsBody)
	var chain [][]byte
	for sub.remaining() > 0 {
		n, err := sub.readUint24()
		if err != nil {
			return nil, err
		}
		cert, err := sub.take(int(n))
		if err != nil {
			return nil, err
		}
		chain = append(chain, append([]byte{}, cert...))
	}
	return chain, nil
}

func serializeCertificateChain(chain [][]byte) []byte {
	var body []byte
	for _, cert := range chain {
		body = writeUint24(body, uint32(len(cert)))
		body = append(body, cert...)
	}
	out := writeUint24(nil, uint32(len(body)))
	return append(out, body...)
}
