package dtls

import "github.com/pkg/errors"

// Kind : the error taxonomy from spec §7. Every failure the driver
// surfaces to the caller carries exactly one of these.
type Kind string

const (
	KindInvalidArgument      Kind = "invalid_argument"
	KindIllegalParameter     Kind = "illegal_parameter"
	KindUnexpectedMessage    Kind = "unexpected_message"
	KindDecodeError          Kind = "decode_error"
	KindUnsupportedExtension Kind = "unsupported_extension"
	KindHandshakeFailure     Kind = "handshake_failure"
	KindInternalError        Kind = "internal_error"
)

// Error : the library's public failure type. Description is
// human-readable; Cause is the underlying error (transport I/O, a wire
// decode failure, ...), wrapped with a stack trace by newError, and is
// reachable via the standard errors.Unwrap/errors.Is/errors.As. Because
// Cause is a field and not a Cause() method, pkg/errors.Cause applied
// to an *Error returns the *Error itself.
type Error struct {
	Kind        Kind
	Description string
	Cause       error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Description + ": " + e.Cause.Error()
	}
	return e.Description
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(kind Kind, description string, cause error) *Error {
	return &Error{
		Kind:        kind,
		Description: description,
		Cause:       errors.WithStack(cause),
	}
}

// alertFor : the alert a given error Kind must raise before the
// handshake fails, per spec §7's propagation policy. internal_error,
// not covered by a specific alert in the source's RFC reading, raises
// AlertInternalError like every other unrecoverable local fault.
func alertFor(kind Kind) AlertDescription {
	switch kind {
	case KindIllegalParameter:
		return AlertIllegalParameter
	case KindUnexpectedMessage:
		return AlertUnexpectedMessage
	case KindDecodeError:
		return AlertDecodeError
	case KindUnsupportedExtension:
		return AlertUnsupportedExtension
	case KindHandshakeFailure:
		return AlertHandshakeFailure
	default:
		return AlertInternalError
	}
}
