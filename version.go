package dtls

// ProtocolVersion : the two-byte (major, minor) version pair carried by
// every handshake message. DTLS uses the inverted encoding from RFC6347
// 4.1: DTLS 1.0 is wire-encoded as {254, 255} and DTLS 1.2 as {254, 253},
// so newer DTLS versions encode as *smaller* minor values.
type ProtocolVersion struct {
	Major byte
	Minor byte
}

// DTLS versions this core understands. DTLS 1.2 signature-algorithm
// negotiation and DTLS 1.3 are non-goals; VersionDTLS12 is accepted on
// the wire but negotiated the DTLS-1.0 way (MD5||SHA1 PRF, no signature
// algorithm extension).
var (
	VersionDTLS10 = ProtocolVersion{Major: 254, Minor: 255}
	VersionDTLS12 = ProtocolVersion{Major: 254, Minor: 253}
)

// Equal : value equality for ProtocolVersion.
func (v ProtocolVersion) Equal(other ProtocolVersion) bool {
	return v.Major == other.Major && v.Minor == other.Minor
}

// IsDTLS : true for any recognized DTLS major/minor pair.
func (v ProtocolVersion) IsDTLS() bool {
	return v.Equal(VersionDTLS10) || v.Equal(VersionDTLS12)
}

// IsNewerThan : reports whether v negotiates a strictly newer DTLS
// version than other, under DTLS's inverted ordering (lower minor =
// newer version, within the same major). Used at driver step 3 to
// reject a server_version later than the client offered.
func (v ProtocolVersion) IsNewerThan(other ProtocolVersion) bool {
	if v.Major != other.Major {
		return v.Major > other.Major
	}
	return v.Minor < other.Minor
}
