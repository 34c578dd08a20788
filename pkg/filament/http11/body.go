package http11

import "unicode/utf8"

// BodyKind discriminates the Body variant. Exactly one variant applies to
// any parsed message.
type BodyKind uint8

const (
	// BodyEmpty means zero body bytes were observed (Content-Length 0 or
	// no bytes after the header separator).
	BodyEmpty BodyKind = iota

	// BodyText means the body has a textual Content-Type and is valid UTF-8.
	BodyText

	// BodyBinary means anything else: a binary media type, or a textual one
	// whose bytes are not valid UTF-8 (the deterministic downgrade).
	BodyBinary
)

// Body is a tagged view of a message body. Data borrows from the parse
// buffer and is nil when Kind is BodyEmpty.
type Body struct {
	Kind BodyKind
	Data []byte
}

// IsEmpty reports whether the body holds no bytes.
func (b Body) IsEmpty() bool {
	return b.Kind == BodyEmpty
}

// Len returns the body size in bytes.
func (b Body) Len() int {
	return len(b.Data)
}

// Text returns the body as a string when Kind is BodyText, "" otherwise.
// This allocates; use Data for the zero-copy view.
func (b Body) Text() string {
	if b.Kind != BodyText {
		return ""
	}
	return string(b.Data)
}

// TextBody builds a textual Body from a string literal. For handler-built
// responses; the string's bytes are the body verbatim.
func TextBody(s string) Body {
	if len(s) == 0 {
		return Body{}
	}
	return Body{Kind: BodyText, Data: []byte(s)}
}

// BinaryBody builds a binary Body over caller-owned bytes.
func BinaryBody(data []byte) Body {
	if len(data) == 0 {
		return Body{}
	}
	return Body{Kind: BodyBinary, Data: data}
}

// ClassifyBody decides the Body variant for raw body bytes under the given
// Content-Type value (nil when the header is absent).
//
// Policy: empty wins over everything; a textual media type with valid
// UTF-8 bytes is Text; a textual media type with invalid bytes downgrades
// to Binary rather than surfacing a corrupt text value; any other media
// type is Binary. The downgrade is a designed behavior, not an error path.
//
// Allocation behavior: 0 allocs/op
func ClassifyBody(contentType, data []byte) Body {
	if len(data) == 0 {
		return Body{}
	}
	if isTextualContentType(contentType) && utf8.Valid(data) {
		return Body{Kind: BodyText, Data: data}
	}
	return Body{Kind: BodyBinary, Data: data}
}

// isTextualContentType matches the media types this engine treats as text:
// text/*, application/json, application/xml, application/javascript, and
// structured-syntax suffixes +json / +xml. Parameters after ';' are
// ignored and the match is ASCII case-insensitive.
//
// Allocation behavior: 0 allocs/op
func isTextualContentType(ct []byte) bool {
	if len(ct) == 0 {
		return false
	}

	// Strip parameters ("application/json; charset=utf-8")
	for i := 0; i < len(ct); i++ {
		if ct[i] == ';' {
			ct = ct[:i]
			break
		}
	}
	// Trim surrounding whitespace left by the parameter split
	ct = trimLeadingSpace(ct)
	for len(ct) > 0 && (ct[len(ct)-1] == ' ' || ct[len(ct)-1] == '\t') {
		ct = ct[:len(ct)-1]
	}

	if hasPrefixCaseInsensitive(ct, ctTextPrefix) {
		return true
	}
	if bytesEqualCaseInsensitive(ct, ctJSON) ||
		bytesEqualCaseInsensitive(ct, ctXML) ||
		bytesEqualCaseInsensitive(ct, ctJavaScript) {
		return true
	}
	if hasSuffixCaseInsensitive(ct, ctJSONSuffix) || hasSuffixCaseInsensitive(ct, ctXMLSuffix) {
		return true
	}
	return false
}

func hasPrefixCaseInsensitive(b, prefix []byte) bool {
	return len(b) >= len(prefix) && bytesEqualCaseInsensitive(b[:len(prefix)], prefix)
}

func hasSuffixCaseInsensitive(b, suffix []byte) bool {
	return len(b) >= len(suffix) && bytesEqualCaseInsensitive(b[len(b)-len(suffix):], suffix)
}
