package dtls

// RecordLayer : the external collaborator owning encryption, MAC,
// epoch rollover and datagram I/O (spec §1 "out of scope" collaborator
// #2). Constructed by the caller over a datagram transport and content
// type; the core only drives the three operations below plus alerting.
type RecordLayer interface {
	// DiscoveredPeerVersion reports the version carried by the first
	// inbound record, populated the moment any server record arrives.
	// This becomes the authoritative server_version (spec §4.4 step 3).
	DiscoveredPeerVersion() (ProtocolVersion, bool)
	// InitPendingEpoch installs spec as the pending (not-yet-active)
	// cipher for the next epoch; it takes effect once the peer's
	// ChangeCipherSpec flips the record layer over.
	InitPendingEpoch(spec PendingCipherSpec) error
	// HandshakeSuccessful tells the record layer the handshake
	// completed, so application data may now flow.
	HandshakeSuccessful() error
	// SendAlert emits a fatal/warning alert record. Called on every
	// error path the driver takes (spec §7).
	SendAlert(level AlertLevel, desc AlertDescription) error
}

// SecuredTransport : returned by Connect on success. It does not expose
// application-data I/O itself (out of scope, spec §1) — callers read
// and write through the RecordLayer they supplied, now holding a
// committed cipher spec.
type SecuredTransport struct {
	Record RecordLayer
}
