package http11

// Header is a single name/value pair with no owned storage. Both fields
// borrow from either a caller literal or the buffer a message was parsed
// out of; a Header taken from a parsed message is invalid once that buffer
// is rewritten.
//
// HTTP allows duplicate names; collections of Header preserve order and
// never deduplicate. Name comparison is ASCII case-insensitive per
// RFC 7230.
type Header struct {
	Name  []byte
	Value []byte
}

// H builds a Header from string literals. Convenient for callers that
// assemble static header lists.
func H(name, value string) Header {
	return Header{Name: []byte(name), Value: []byte(value)}
}

// EqualName reports whether the header's name matches, case-insensitively.
//
// Allocation behavior: 0 allocs/op
func (h Header) EqualName(name []byte) bool {
	return bytesEqualCaseInsensitive(h.Name, name)
}

// LookupHeader returns the value of the first header matching name
// (case-insensitive), or nil if absent. Duplicates after the first are
// reachable by iterating the slice directly.
//
// Allocation behavior: 0 allocs/op
func LookupHeader(headers []Header, name []byte) []byte {
	// Linear scan; for the inline sizes this engine works with, this beats
	// any map-based lookup on cache locality alone.
	for i := range headers {
		if headers[i].EqualName(name) {
			return headers[i].Value
		}
	}
	return nil
}

// HasHeader reports whether any header matches name (case-insensitive).
func HasHeader(headers []Header, name []byte) bool {
	for i := range headers {
		if headers[i].EqualName(name) {
			return true
		}
	}
	return false
}

// bytesEqualCaseInsensitive compares two byte slices case-insensitively.
// Required per RFC 7230 - header field names are case-insensitive.
//
// Allocation behavior: 0 allocs/op
func bytesEqualCaseInsensitive(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if toLower(a[i]) != toLower(b[i]) {
			return false
		}
	}
	return true
}

// toLower converts an ASCII uppercase letter to lowercase.
// Non-letter bytes are returned unchanged; header names are ASCII.
func toLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + 32
	}
	return b
}

// trimLeadingSpace trims leading spaces and tabs. Header values are
// trimmed on the left only; trailing whitespace is the caller's to keep.
func trimLeadingSpace(b []byte) []byte {
	for len(b) > 0 && (b[0] == ' ' || b[0] == '\t') {
		b = b[1:]
	}
	return b
}

// containsCRLF reports whether b carries a CR or LF byte. Header names and
// values with embedded CRLF are rejected to prevent response splitting.
func containsCRLF(b []byte) bool {
	for _, c := range b {
		if c == '\r' || c == '\n' {
			return true
		}
	}
	return false
}
