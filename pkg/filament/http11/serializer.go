package http11

// Bounded-buffer HTTP/1.1 serialization.
//
// Both entry points render into a fixed-capacity destination slice whose
// length is its capacity. The exact rendered size is computed before the
// first byte is written: an oversized message fails with ErrBufferTooSmall
// while dst still holds whatever it held before, so a truncated render can
// never reach the transport.

// AppendRequest renders a request line, the given headers in order, a
// Content-Length header when body is non-empty and the caller supplied
// none, a blank line, and the body into dst. Returns the byte count
// written.
//
// Header order is preserved exactly; values are not trimmed and duplicates
// are not collapsed. Names or values embedding CR/LF are rejected.
//
// Allocation behavior: 0 allocs/op
func AppendRequest(dst []byte, methodID uint8, path []byte, headers []Header, body []byte) (int, error) {
	method := MethodBytes(methodID)
	if method == nil {
		return 0, ErrInvalidMethod
	}
	if len(path) == 0 || (path[0] != '/' && path[0] != '*') {
		return 0, ErrInvalidPath
	}

	needCL := len(body) > 0 && !HasHeader(headers, headerContentLength)

	size := len(method) + 1 + len(path) + 1 + len(http11Bytes) + len(crlfBytes)
	hsize, err := headerBlockSize(headers)
	if err != nil {
		return 0, err
	}
	size += hsize
	if needCL {
		size += len(headerContentLength) + len(colonSpace) + intLen(len(body)) + len(crlfBytes)
	}
	size += len(crlfBytes) + len(body)

	if size > len(dst) {
		return 0, ErrBufferTooSmall
	}

	b := dst[:0]
	b = append(b, method...)
	b = append(b, ' ')
	b = append(b, path...)
	b = append(b, ' ')
	b = append(b, http11Bytes...)
	b = append(b, crlfBytes...)
	b = appendHeaderBlock(b, headers)
	if needCL {
		b = appendContentLength(b, len(body))
	}
	b = append(b, crlfBytes...)
	b = append(b, body...)
	return len(b), nil
}

// AppendResponse renders resp into dst: status line with the canonical
// reason phrase, headers in insertion order, a Content-Length header when
// the caller supplied none, a blank line, and the body bytes. Returns the
// byte count written.
//
// A Content-Length is emitted even for empty bodies so clients can frame
// the message without waiting for EOF.
//
// Allocation behavior: 0 allocs/op
func AppendResponse(dst []byte, resp *Response) (int, error) {
	if !resp.StatusCode.Valid() {
		return 0, ErrInvalidStatusCode
	}

	headers := resp.Headers()
	needCL := !HasHeader(headers, headerContentLength)

	size := statusLineSize(resp.StatusCode)
	hsize, err := headerBlockSize(headers)
	if err != nil {
		return 0, err
	}
	size += hsize
	if needCL {
		size += len(headerContentLength) + len(colonSpace) + intLen(resp.Body.Len()) + len(crlfBytes)
	}
	size += len(crlfBytes) + resp.Body.Len()

	if size > len(dst) {
		return 0, ErrBufferTooSmall
	}

	b := dst[:0]
	b = appendStatusLine(b, resp.StatusCode)
	b = appendHeaderBlock(b, headers)
	if needCL {
		b = appendContentLength(b, resp.Body.Len())
	}
	b = append(b, crlfBytes...)
	b = append(b, resp.Body.Data...)
	return len(b), nil
}

// headerBlockSize sums the rendered size of "Name: Value\r\n" lines,
// validating each pair on the way.
func headerBlockSize(headers []Header) (int, error) {
	size := 0
	for i := range headers {
		h := headers[i]
		if len(h.Name) == 0 || containsCRLF(h.Name) || containsCRLF(h.Value) {
			return 0, ErrInvalidHeader
		}
		size += len(h.Name) + len(colonSpace) + len(h.Value) + len(crlfBytes)
	}
	return size, nil
}

func appendHeaderBlock(b []byte, headers []Header) []byte {
	for i := range headers {
		b = append(b, headers[i].Name...)
		b = append(b, colonSpace...)
		b = append(b, headers[i].Value...)
		b = append(b, crlfBytes...)
	}
	return b
}

func appendContentLength(b []byte, n int) []byte {
	b = append(b, headerContentLength...)
	b = append(b, colonSpace...)
	b = appendInt(b, n)
	b = append(b, crlfBytes...)
	return b
}

// appendInt renders a non-negative integer without allocation.
func appendInt(b []byte, n int) []byte {
	if n == 0 {
		return append(b, '0')
	}
	var tmp [20]byte
	i := len(tmp)
	for n > 0 {
		i--
		tmp[i] = byte('0' + n%10)
		n /= 10
	}
	return append(b, tmp[i:]...)
}

// intLen returns the decimal digit count of a non-negative integer.
func intLen(n int) int {
	if n == 0 {
		return 1
	}
	l := 0
	for n > 0 {
		l++
		n /= 10
	}
	return l
}
