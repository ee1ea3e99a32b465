package dtls

import "github.com/pkg/errors"

// Well-known extension types this core inspects directly; the rest pass
// through as opaque entries (negotiation of their *content* belongs to
// TlsClient, not the core).
const (
	ExtensionRenegotiationInfo uint16 = 0xff01
)

// extensionEntry : one (type, opaque data) pair, kept in the order it
// was inserted/parsed so the wire form round-trips byte-for-byte.
type extensionEntry struct {
	Type uint16
	Data []byte
}

// ExtensionTable : an ordered type->data map. Iteration order is
// insertion order, which matters because the cookie-retry ClientHello
// must be byte-identical to the first (spec §3 invariant) and because
// §4.2's ServerHello validation needs to compare entries against what
// the client offered without reordering anything.
type ExtensionTable struct {
	entries []extensionEntry
}

// NewExtensionTable : an empty table, ready for Set.
func NewExtensionTable() *ExtensionTable {
	return &ExtensionTable{}
}

// Set : appends or replaces the entry for typ, preserving the position
// of the first insertion on replace.
func (t *ExtensionTable) Set(typ uint16, data []byte) {
	for i := range t.entries {
		if t.entries[i].Type == typ {
			t.entries[i].Data = data
			return
		}
	}
	t.entries = append(t.entries, extensionEntry{Type: typ, Data: data})
}

// Get : the data for typ, and whether it was present.
func (t *ExtensionTable) Get(typ uint16) ([]byte, bool) {
	for _, e := range t.entries {
		if e.Type == typ {
			return e.Data, true
		}
	}
	return nil, false
}

// Has : whether typ is present.
func (t *ExtensionTable) Has(typ uint16) bool {
	_, ok := t.Get(typ)
	return ok
}

// Len : number of entries.
func (t *ExtensionTable) Len() int {
	return len(t.entries)
}

// Types : the types present, in wire order.
func (t *ExtensionTable) Types() []uint16 {
	out := make([]uint16, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Type
	}
	return out
}

// marshal : u16 total-length prefix followed by (u16 type, u16 length,
// bytes) triples, per spec §4.1. Returns nil if the table is empty —
// callers decide whether to emit the block at all (ClientHello omits it
// entirely when there are no extensions).
func (t *ExtensionTable) marshal() []byte {
	if t == nil || len(t.entries) == 0 {
		return nil
	}
	var body []byte
	for _, e := range t.entries {
		body = writeUint16(body, e.Type)
		body = writeOpaque16(body, e.Data)
	}
	return writeOpaque16(nil, body)
}

// parseExtensionTable : consumes the remainder of r as an extension
// block, or returns an empty table if r has no bytes left (both
// ClientHello's and ServerHello's extension block are optional).
// Duplicate extension types are rejected with KindDecodeError: the wire
// format has no legitimate use for them and silently keeping "last
// wins" would make the cookie-retry byte-identity invariant harder to
// reason about.
func parseExtensionTable(r *reader) (*ExtensionTable, error) {
	table := NewExtensionTable()
	if r.remaining() == 0 {
		return table, nil
	}
	body, err := r.readOpaque16()
	if err != nil {
		return nil, err
	}
	sub := newReader(body)
	for sub.remaining() > 0 {
		typ, err := sub.readUint16()
		if err != nil {
			return nil, err
		}
		data, err := sub.readOpaque16()
		if err != nil {
			return nil, err
		}
		if table.Has(typ) {
			return nil, errors.New("duplicate extension type in table")
		}
		table.Set(typ, data)
	}
	return table, nil
}
