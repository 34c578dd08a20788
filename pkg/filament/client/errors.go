package client

import "errors"

// Failure taxonomy. Every public operation returns nil or exactly one of
// these kinds (wrapped, errors.Is-matchable); there is no partial success.
var (
	// ErrInvalidURL indicates the target URL could not be parsed or uses a
	// scheme other than http/https
	ErrInvalidURL = errors.New("client: invalid URL")

	// ErrResolution indicates hostname resolution failed
	ErrResolution = errors.New("client: address resolution failed")

	// ErrConnection indicates no transport connection could be established
	ErrConnection = errors.New("client: connection failed")

	// ErrTransport indicates a read or write failed mid-stream
	ErrTransport = errors.New("client: transport failure")

	// ErrTimeout indicates a phase deadline (dial, write, or read) expired.
	// Partially read data is discarded, never surfaced as a response.
	ErrTimeout = errors.New("client: timeout")

	// ErrTLS indicates the TLS handshake failed
	ErrTLS = errors.New("client: TLS handshake failed")

	// ErrTLSUnsupported indicates a https URL was requested but no TLS
	// capability is configured on this client
	ErrTLSUnsupported = errors.New("client: TLS not supported by this client")
)
