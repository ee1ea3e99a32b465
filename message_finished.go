package dtls

import "crypto/subtle"

// FinishedVerifyDataLength : 12-byte PRF output, RFC5246 7.4.9.
const FinishedVerifyDataLength = 12

// serializeFinished : spec §4.2/§4.4 step 17 — the body is exactly
// verify_data.
func serializeFinished(verifyData []byte) []byte {
	return append([]byte{}, verifyData...)
}

// verifyFinished : spec §4.4 step 18 — constant-time compare of the
// peer's 12-byte Finished body against the locally computed value.
func verifyFinished(body, expected []byte) bool {
	if len(body) != FinishedVerifyDataLength || len(expected) != FinishedVerifyDataLength {
		return false
	}
	return subtle.ConstantTimeCompare(body, expected) == 1
}
