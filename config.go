package dtls

import (
	"io"

	"github.com/pion/logging"
)

// Config : driver-level knobs that aren't part of the TlsClient
// capability. No file or environment parsing happens here — this is a
// library core (spec §6); the caller builds one of these in code.
type Config struct {
	// LoggerFactory builds the logger the driver reports handshake
	// failures (Error level) and failed alert sends (Debug level)
	// through; individual steps are not traced. If nil, a fresh logger
	// from logging.NewDefaultLoggerFactory() is used, never a
	// package-level singleton (spec §9).
	LoggerFactory logging.LoggerFactory

	// RNG is read for client_random generation. Must be injected; there
	// is no fallback to a global source (spec §9's "avoid hidden global
	// state").
	RNG io.Reader
}

func (c *Config) logger() logging.LeveledLogger {
	if c == nil || c.LoggerFactory == nil {
		return logging.NewDefaultLoggerFactory().NewLogger("dtls")
	}
	return c.LoggerFactory.NewLogger("dtls")
}

func (c *Config) rng() io.Reader {
	if c == nil {
		return nil
	}
	return c.RNG
}
