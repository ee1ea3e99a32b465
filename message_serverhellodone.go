package dtls

import "github.com/pkg/errors"

// errNonEmptyServerHelloDone : spec §4.2/§7 — any non-zero body length
// is fatal KindUnexpectedMessage.
var errNonEmptyServerHelloDone = errors.New("ServerHelloDone body is non-empty")

func parseServerHelloDone(body []byte) error {
	if len(body) != 0 {
		return errNonEmptyServerHelloDone
	}
	return nil
}
