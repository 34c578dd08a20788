package http11

// Response is a structured HTTP/1.1 response.
//
// Client-side it is the borrowed view ParseResponse produces: headers and
// body alias the response buffer and die with it. Server-side a handler
// builds one by hand; its headers and body then borrow from whatever the
// handler owns (typically static data), since the engine never copies
// payload bytes either way.
type Response struct {
	// StatusCode is the numeric status. Parsed responses may carry any
	// well-formed code in 100-599, known or not.
	StatusCode StatusCode

	// Reason is the reason phrase as received; nil on handler-built
	// responses (the serializer renders the canonical phrase).
	Reason []byte

	// Body is the classified body variant.
	Body Body

	headers       [MaxHeaders]Header
	headerCount   int
	contentLength int64 // -1 when no Content-Length header was parsed
}

// Headers returns the headers in order, duplicates preserved. The slice
// aliases internal storage.
func (r *Response) Headers() []Header {
	return r.headers[:r.headerCount]
}

// Header returns the value of the first header matching name
// (case-insensitive), or nil.
//
// Allocation behavior: 0 allocs/op
func (r *Response) Header(name []byte) []byte {
	return LookupHeader(r.headers[:r.headerCount], name)
}

// HeaderString is Header for string callers.
func (r *Response) HeaderString(name string) string {
	v := r.Header([]byte(name))
	if v == nil {
		return ""
	}
	return string(v)
}

// AddHeader appends a header, preserving insertion order. Fails once the
// fixed inline storage is full or if name/value embed CR/LF.
func (r *Response) AddHeader(h Header) error {
	if containsCRLF(h.Name) || containsCRLF(h.Value) {
		return ErrInvalidHeader
	}
	if r.headerCount >= MaxHeaders {
		return ErrTooManyHeaders
	}
	r.headers[r.headerCount] = h
	r.headerCount++
	return nil
}

// AddHeaderString is AddHeader from string literals.
func (r *Response) AddHeaderString(name, value string) error {
	return r.AddHeader(H(name, value))
}

// ContentLength returns the declared Content-Length of a parsed response,
// or the body size for a handler-built one.
func (r *Response) ContentLength() int64 {
	if r.contentLength >= 0 {
		return r.contentLength
	}
	return int64(r.Body.Len())
}

// Reset clears the response so its buffer can be rewritten, or so a
// handler can rebuild it for the next dispatch.
//
// Allocation behavior: 0 allocs/op
func (r *Response) Reset() {
	r.StatusCode = 0
	r.Reason = nil
	r.Body = Body{}
	r.headerCount = 0
	r.contentLength = -1
}

// addHeader is the parser-side append: no CRLF check, the wire format
// already guarantees none survive the line split.
func (r *Response) addHeader(name, value []byte) error {
	if r.headerCount >= MaxHeaders {
		return ErrTooManyHeaders
	}
	r.headers[r.headerCount] = Header{Name: name, Value: value}
	r.headerCount++
	return nil
}
