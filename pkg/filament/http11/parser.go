package http11

import "bytes"

// Zero-copy HTTP/1.1 message parsing over a caller-owned buffer.
//
// Both entry points take the filled range of a transport buffer (length =
// bytes actually read, which may be less than capacity) and carve the
// start line, headers, and body out of it without copying a single payload
// byte. The resulting view borrows from buf and must not outlive the next
// write into it.
//
// A message whose header/body separator has not arrived yet fails with
// ErrIncomplete; the caller may read more bytes into the same buffer and
// retry, bounded by its read timeout.

// ParseRequest parses one complete HTTP/1.1 request from buf into req.
//
// Allocation behavior: 0 allocs/op
func ParseRequest(buf []byte, req *Request) error {
	req.Reset()

	sep := bytes.Index(buf, []byte("\r\n\r\n"))
	if sep == -1 {
		return ErrIncomplete
	}

	// Request line: METHOD SP path[?query] SP HTTP/1.1
	lineEnd := bytes.Index(buf, crlfBytes)
	line := buf[:lineEnd]

	sp := bytes.IndexByte(line, ' ')
	if sp == -1 {
		return ErrInvalidRequestLine
	}
	req.MethodID = ParseMethodID(line[:sp])
	if req.MethodID == MethodUnknown {
		return ErrInvalidMethod
	}

	line = line[sp+1:]
	sp = bytes.IndexByte(line, ' ')
	if sp == -1 {
		return ErrInvalidRequestLine
	}
	uri := line[:sp]
	if len(uri) == 0 || (uri[0] != '/' && uri[0] != '*') {
		return ErrInvalidPath
	}
	if q := bytes.IndexByte(uri, '?'); q != -1 {
		req.Path = uri[:q]
		req.Query = uri[q+1:]
	} else {
		req.Path = uri
	}

	proto := line[sp+1:]
	if !bytes.Equal(proto, http11Bytes) {
		return ErrInvalidProtocol
	}
	req.Proto = proto

	cl, _, err := parseHeaderLines(buf, lineEnd+2, req.addHeader)
	if err != nil {
		return err
	}
	req.ContentLength = cl

	bodyStart := sep + 4
	body, err := frameBody(buf, bodyStart, cl)
	if err != nil {
		return err
	}
	req.Body = body
	return nil
}

// ParseResponse parses one complete HTTP/1.1 response from buf into resp,
// classifying the body via ClassifyBody.
//
// Allocation behavior: 0 allocs/op
func ParseResponse(buf []byte, resp *Response) error {
	return parseResponse(buf, resp, true)
}

// ParseResponseHeader parses a response that carries no body by contract,
// such as the reply to a HEAD request: any Content-Length is recorded but
// no body bytes are expected or consumed.
func ParseResponseHeader(buf []byte, resp *Response) error {
	return parseResponse(buf, resp, false)
}

func parseResponse(buf []byte, resp *Response, withBody bool) error {
	resp.Reset()

	sep := bytes.Index(buf, []byte("\r\n\r\n"))
	if sep == -1 {
		return ErrIncomplete
	}

	// Status line: HTTP/1.1 SP 3DIGIT SP reason
	lineEnd := bytes.Index(buf, crlfBytes)
	line := buf[:lineEnd]

	sp := bytes.IndexByte(line, ' ')
	if sp == -1 {
		return ErrInvalidStatusLine
	}
	if !bytes.Equal(line[:sp], http11Bytes) {
		return ErrInvalidProtocol
	}

	rest := line[sp+1:]
	if len(rest) < 3 {
		return ErrInvalidStatusLine
	}
	code, err := parseStatusCode(rest[:3])
	if err != nil {
		return err
	}
	resp.StatusCode = code

	// Reason phrase is whatever follows, possibly empty. An unrecognized
	// code with a well-formed line parses fine.
	if len(rest) > 3 {
		if rest[3] != ' ' {
			return ErrInvalidStatusLine
		}
		resp.Reason = rest[4:]
	}

	cl, ct, err := parseHeaderLines(buf, lineEnd+2, resp.addHeader)
	if err != nil {
		return err
	}
	resp.contentLength = cl

	// 1xx, 204, and 304 responses never carry a body regardless of headers,
	// and neither does a reply the caller knows is to a HEAD request.
	if !withBody || code.IsInformational() || code == StatusNoContent || code == StatusNotModified {
		return nil
	}

	body, err := frameBody(buf, sep+4, cl)
	if err != nil {
		return err
	}
	resp.Body = ClassifyBody(ct, body)
	return nil
}

// parseHeaderLines walks CRLF-terminated header lines starting at pos,
// invoking add for each borrowed name/value pair, until the blank line.
// Returns the declared Content-Length (-1 if absent) and the Content-Type
// value (nil if absent).
//
// Callers have already located the header/body separator, so every line
// here is fully present.
func parseHeaderLines(buf []byte, pos int, add func(name, value []byte) error) (int64, []byte, error) {
	var (
		contentLength int64 = -1
		contentType   []byte
	)

	for {
		if pos+1 < len(buf) && buf[pos] == '\r' && buf[pos+1] == '\n' {
			break // blank line: end of headers
		}

		lineEnd := bytes.Index(buf[pos:], crlfBytes)
		if lineEnd == -1 {
			return 0, nil, ErrInvalidHeader
		}
		line := buf[pos : pos+lineEnd]

		colon := bytes.IndexByte(line, ':')
		if colon == -1 {
			return 0, nil, ErrInvalidHeader
		}
		name := line[:colon]
		value := trimLeadingSpace(line[colon+1:])

		// RFC 7230 §3.2: no whitespace between field name and colon, and
		// none inside the name
		if len(name) == 0 ||
			name[len(name)-1] == ' ' || name[len(name)-1] == '\t' ||
			bytes.IndexByte(name, ' ') != -1 || bytes.IndexByte(name, '\t') != -1 {
			return 0, nil, ErrInvalidHeader
		}

		if err := add(name, value); err != nil {
			return 0, nil, err
		}

		if bytesEqualCaseInsensitive(name, headerContentLength) {
			cl, err := parseContentLength(value)
			if err != nil {
				return 0, nil, err
			}
			// Conflicting duplicates are a smuggling vector, reject
			if contentLength >= 0 && contentLength != cl {
				return 0, nil, ErrInvalidContentLength
			}
			contentLength = cl
		} else if contentType == nil && bytesEqualCaseInsensitive(name, headerContentType) {
			contentType = value
		}

		pos += lineEnd + 2
	}

	return contentLength, contentType, nil
}

// frameBody slices the body out of the filled range. With a declared
// Content-Length the body is exactly that many bytes and fewer available
// is ErrIncomplete; without one, the rest of the filled range is the body.
func frameBody(buf []byte, bodyStart int, contentLength int64) ([]byte, error) {
	if contentLength >= 0 {
		if contentLength == 0 {
			return nil, nil
		}
		if int64(len(buf)-bodyStart) < contentLength {
			return nil, ErrIncomplete
		}
		return buf[bodyStart : bodyStart+int(contentLength)], nil
	}
	if bodyStart >= len(buf) {
		return nil, nil
	}
	return buf[bodyStart:], nil
}

// parseStatusCode parses exactly three ASCII digits into a StatusCode,
// enforcing the 100-599 range.
func parseStatusCode(b []byte) (StatusCode, error) {
	var n int
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, ErrInvalidStatusCode
		}
		n = n*10 + int(c-'0')
	}
	code := StatusCode(n)
	if !code.Valid() {
		return 0, ErrInvalidStatusCode
	}
	return code, nil
}

// parseContentLength parses a Content-Length value (digits only).
func parseContentLength(b []byte) (int64, error) {
	if len(b) == 0 {
		return -1, ErrInvalidContentLength
	}
	var n int64
	for _, c := range b {
		if c < '0' || c > '9' {
			return -1, ErrInvalidContentLength
		}
		n = n*10 + int64(c-'0')
		if n < 0 { // overflow
			return -1, ErrInvalidContentLength
		}
	}
	return n, nil
}
