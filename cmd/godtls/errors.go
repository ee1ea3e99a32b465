package main

import "errors"

var (
	errUnexpectedSuite       = errors.New("server selected a suite this client didn't offer")
	errUnexpectedCertificate = errors.New("PSK key exchange does not expect a server certificate")
)
