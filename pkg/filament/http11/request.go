package http11

// Request is the server-observed view of one parsed HTTP/1.1 request.
//
// Every field borrows from the buffer ParseRequest was given: the view is
// valid only until the next write into that buffer. Header storage is a
// fixed inline array; nothing here touches the heap after construction.
type Request struct {
	// MethodID is one of the Method* constants.
	MethodID uint8

	// Path is the request path, excluding any query string.
	Path []byte

	// Query is the raw query string without the leading '?', nil if absent.
	Query []byte

	// Proto is the protocol token from the request line ("HTTP/1.1").
	Proto []byte

	// ContentLength is the declared body length, -1 when no Content-Length
	// header was present.
	ContentLength int64

	// Body is the raw body bytes, nil when the request has no body.
	// A chunked body passes through uninterpreted.
	Body []byte

	headers     [MaxHeaders]Header
	headerCount int
}

// Method returns the request method as a string constant.
func (r *Request) Method() string {
	return MethodString(r.MethodID)
}

// Headers returns the parsed headers in wire order, duplicates preserved.
// The slice aliases internal storage; it is valid as long as the Request is.
func (r *Request) Headers() []Header {
	return r.headers[:r.headerCount]
}

// Header returns the value of the first header matching name
// (case-insensitive), or nil.
//
// Allocation behavior: 0 allocs/op
func (r *Request) Header(name []byte) []byte {
	return LookupHeader(r.headers[:r.headerCount], name)
}

// HeaderString is Header for string callers. Allocates for the name
// conversion; prefer Header on hot paths.
func (r *Request) HeaderString(name string) string {
	v := r.Header([]byte(name))
	if v == nil {
		return ""
	}
	return string(v)
}

// Reset clears the request so the underlying buffer can be rewritten.
//
// Allocation behavior: 0 allocs/op
func (r *Request) Reset() {
	r.MethodID = MethodUnknown
	r.Path = nil
	r.Query = nil
	r.Proto = nil
	r.ContentLength = -1
	r.Body = nil
	r.headerCount = 0
}

// addHeader appends a borrowed header pair, failing once inline storage
// is exhausted.
func (r *Request) addHeader(name, value []byte) error {
	if r.headerCount >= MaxHeaders {
		return ErrTooManyHeaders
	}
	r.headers[r.headerCount] = Header{Name: name, Value: value}
	r.headerCount++
	return nil
}
