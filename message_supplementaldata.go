package dtls

// SupplementalData wire format, RFC4680 3: a u24-length-prefixed list
// of (u16 type, opaque16 data) entries.

func serializeSupplementalData(entries []SupplementalDataEntry) []byte {
	var body []byte
	for _, e := range entries {
		body = writeUint16(body, e.Type)
		body = writeOpaque16(body, e.Data)
	}
	out := writeUint24(nil, uint32(len(body)))
	return append(out, body...)
}

func parseSupplementalData(body []byte) ([]SupplementalDataEntry, error) {
	r := newReader(body)
	n, err := r.readUint24()
	if err != nil {
		return nil, err
	}
	listBody, err := r.take(int(n))
	if err != nil {
		return nil, err
	}
	if err := r.assertEmpty(); err != nil {
		return nil, err
	}

	sub := newReader(listBody)
	var entries []SupplementalDataEntry
	for sub.remaining() > 0 {
		typ, err := sub.readUint16()
		if err != nil {
			return nil, err
		}
		data, err := sub.readOpaque16()
		if err != nil {
			return nil, err
		}
		entries = append(entries, SupplementalDataEntry{Type: typ, Data: append([]byte{}, data...)})
	}
	return entries, nil
}
