package http11

import "errors"

// Parser errors - pre-allocated for zero runtime allocation
var (
	// ErrIncomplete indicates the filled range ends before the header/body
	// separator (or before a Content-Length sized body). The caller may read
	// more bytes into the same buffer and retry, bounded by its read timeout.
	ErrIncomplete = errors.New("http11: incomplete message")

	// ErrInvalidRequestLine indicates the request line is malformed
	// Request line format: METHOD PATH PROTOCOL\r\n
	ErrInvalidRequestLine = errors.New("http11: invalid request line")

	// ErrInvalidStatusLine indicates the response status line is malformed
	// Status line format: PROTOCOL CODE REASON\r\n
	ErrInvalidStatusLine = errors.New("http11: invalid status line")

	// ErrInvalidMethod indicates an unsupported or malformed HTTP method
	ErrInvalidMethod = errors.New("http11: invalid HTTP method")

	// ErrInvalidPath indicates the request path is malformed
	ErrInvalidPath = errors.New("http11: invalid request path")

	// ErrInvalidProtocol indicates an unsupported protocol version
	// Only HTTP/1.1 is supported by this engine
	ErrInvalidProtocol = errors.New("http11: invalid or unsupported protocol version")

	// ErrInvalidStatusCode indicates a status code outside 100-599 or one
	// that is not a well-formed number
	ErrInvalidStatusCode = errors.New("http11: invalid status code")

	// ErrInvalidHeader indicates a malformed header
	// Headers must be in format: Name: Value\r\n with no CR/LF in either part
	ErrInvalidHeader = errors.New("http11: invalid HTTP header")

	// ErrInvalidContentLength indicates Content-Length is malformed
	ErrInvalidContentLength = errors.New("http11: invalid Content-Length")

	// ErrTooManyHeaders indicates a message carries more than MaxHeaders
	// headers; inline storage is fixed and never grows
	ErrTooManyHeaders = errors.New("http11: too many headers")

	// ErrBufferTooSmall indicates the destination buffer cannot hold the
	// rendered message. Nothing is written when this is returned.
	ErrBufferTooSmall = errors.New("http11: buffer too small")
)
