package http11

// StatusCode is an HTTP status code in the range 100-599.
//
// Generation uses the closed reason-phrase mapping in Text(); parsing
// accepts any well-formed in-range code, including ones this package has
// no phrase for.
type StatusCode int

// Common status codes
const (
	StatusContinue           StatusCode = 100
	StatusSwitchingProtocols StatusCode = 101

	StatusOK             StatusCode = 200
	StatusCreated        StatusCode = 201
	StatusAccepted       StatusCode = 202
	StatusNoContent      StatusCode = 204
	StatusPartialContent StatusCode = 206

	StatusMovedPermanently  StatusCode = 301
	StatusFound             StatusCode = 302
	StatusSeeOther          StatusCode = 303
	StatusNotModified       StatusCode = 304
	StatusTemporaryRedirect StatusCode = 307
	StatusPermanentRedirect StatusCode = 308

	StatusBadRequest           StatusCode = 400
	StatusUnauthorized         StatusCode = 401
	StatusForbidden            StatusCode = 403
	StatusNotFound             StatusCode = 404
	StatusMethodNotAllowed     StatusCode = 405
	StatusNotAcceptable        StatusCode = 406
	StatusRequestTimeout       StatusCode = 408
	StatusConflict             StatusCode = 409
	StatusGone                 StatusCode = 410
	StatusLengthRequired       StatusCode = 411
	StatusPayloadTooLarge      StatusCode = 413
	StatusURITooLong           StatusCode = 414
	StatusUnsupportedMediaType StatusCode = 415
	StatusTooManyRequests      StatusCode = 429

	StatusInternalServerError StatusCode = 500
	StatusNotImplemented      StatusCode = 501
	StatusBadGateway          StatusCode = 502
	StatusServiceUnavailable  StatusCode = 503
	StatusGatewayTimeout      StatusCode = 504
)

// Valid reports whether the code is inside the HTTP status range.
func (s StatusCode) Valid() bool {
	return s >= 100 && s <= 599
}

// IsInformational reports whether the code is 1xx.
func (s StatusCode) IsInformational() bool {
	return s >= 100 && s <= 199
}

// IsSuccess reports whether the code is 2xx.
func (s StatusCode) IsSuccess() bool {
	return s >= 200 && s <= 299
}

// IsRedirect reports whether the code is 3xx.
func (s StatusCode) IsRedirect() bool {
	return s >= 300 && s <= 399
}

// IsClientError reports whether the code is 4xx.
func (s StatusCode) IsClientError() bool {
	return s >= 400 && s <= 499
}

// IsServerError reports whether the code is 5xx.
func (s StatusCode) IsServerError() bool {
	return s >= 500 && s <= 599
}

// Text returns the reason phrase for the code, per RFC 7231 Section 6.
// Unknown codes return "Unknown".
func (s StatusCode) Text() string {
	switch s {
	// 1xx Informational
	case 100:
		return "Continue"
	case 101:
		return "Switching Protocols"

	// 2xx Success
	case 200:
		return "OK"
	case 201:
		return "Created"
	case 202:
		return "Accepted"
	case 203:
		return "Non-Authoritative Information"
	case 204:
		return "No Content"
	case 205:
		return "Reset Content"
	case 206:
		return "Partial Content"

	// 3xx Redirection
	case 300:
		return "Multiple Choices"
	case 301:
		return "Moved Permanently"
	case 302:
		return "Found"
	case 303:
		return "See Other"
	case 304:
		return "Not Modified"
	case 307:
		return "Temporary Redirect"
	case 308:
		return "Permanent Redirect"

	// 4xx Client Error
	case 400:
		return "Bad Request"
	case 401:
		return "Unauthorized"
	case 402:
		return "Payment Required"
	case 403:
		return "Forbidden"
	case 404:
		return "Not Found"
	case 405:
		return "Method Not Allowed"
	case 406:
		return "Not Acceptable"
	case 407:
		return "Proxy Authentication Required"
	case 408:
		return "Request Timeout"
	case 409:
		return "Conflict"
	case 410:
		return "Gone"
	case 411:
		return "Length Required"
	case 412:
		return "Precondition Failed"
	case 413:
		return "Payload Too Large"
	case 414:
		return "URI Too Long"
	case 415:
		return "Unsupported Media Type"
	case 416:
		return "Range Not Satisfiable"
	case 417:
		return "Expectation Failed"
	case 422:
		return "Unprocessable Entity"
	case 426:
		return "Upgrade Required"
	case 428:
		return "Precondition Required"
	case 429:
		return "Too Many Requests"
	case 431:
		return "Request Header Fields Too Large"

	// 5xx Server Error
	case 500:
		return "Internal Server Error"
	case 501:
		return "Not Implemented"
	case 502:
		return "Bad Gateway"
	case 503:
		return "Service Unavailable"
	case 504:
		return "Gateway Timeout"
	case 505:
		return "HTTP Version Not Supported"

	default:
		return "Unknown"
	}
}

// statusLineSize returns the rendered size of "HTTP/1.1 CODE REASON\r\n".
func statusLineSize(code StatusCode) int {
	return len(versionPrefix) + 3 + 1 + len(code.Text()) + len(crlfBytes)
}

// appendStatusLine renders "HTTP/1.1 CODE REASON\r\n" into dst.
// dst must have room; callers size-check via statusLineSize first.
//
// Allocation behavior: 0 allocs/op
func appendStatusLine(dst []byte, code StatusCode) []byte {
	dst = append(dst, versionPrefix...)
	dst = append(dst, byte('0'+code/100), byte('0'+(code/10)%10), byte('0'+code%10))
	dst = append(dst, ' ')
	dst = append(dst, code.Text()...)
	dst = append(dst, crlfBytes...)
	return dst
}
