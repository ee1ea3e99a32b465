package dtls

import "github.com/pkg/errors"

// Sentinel causes for the driver's own classify() calls — decode/codec
// errors have their own sentinels in wire.go and the message_*.go
// files; these cover failures the driver detects itself (missing
// input, wrong message type for the current step, ...).
var (
	errNoRNG                   = errors.New("no RNG configured")
	errNotDTLSVersion          = errors.New("client_version is not a DTLS version")
	errNoDiscoveredVersion     = errors.New("record layer did not report a peer version")
	errServerVersionTooNew     = errors.New("server_version is newer than the offered client_version")
	errExpectedServerHello     = errors.New("expected ServerHello")
	errExpectedServerHelloDone = errors.New("expected ServerHelloDone")
	errCertRequestWithoutAuth  = errors.New("CertificateRequest received without an authentication capability")
	errExpectedFinished        = errors.New("expected Finished")
	errFinishedMismatch        = errors.New("server Finished verify_data mismatch")
)
