// Package http11 implements the HTTP/1.1 protocol core for fixed-capacity,
// allocation-free environments: a zero-copy request/response parser and a
// bounded-buffer serializer.
package http11

// HTTP Method IDs for O(1) switching
// Numeric IDs enable fast method identification without string comparisons
const (
	MethodUnknown uint8 = 0
	MethodGET     uint8 = 1
	MethodPOST    uint8 = 2
	MethodPUT     uint8 = 3
	MethodDELETE  uint8 = 4
	MethodPATCH   uint8 = 5
	MethodHEAD    uint8 = 6
	MethodOPTIONS uint8 = 7
	MethodCONNECT uint8 = 8
	MethodTRACE   uint8 = 9
)

// MaxHeaders is the inline header capacity of Request and Response.
// 32 headers covers the overwhelming majority of real-world messages;
// exceeding it is a hard error rather than a heap fallback, because the
// engine guarantees no dynamic growth.
const MaxHeaders = 32

// Wire framing bytes, pre-compiled for zero-allocation writes
var (
	crlfBytes     = []byte("\r\n")
	colonSpace    = []byte(": ")
	http11Bytes   = []byte("HTTP/1.1")
	versionPrefix = []byte("HTTP/1.1 ")
)

// Well-known header names (case-insensitive on the wire)
var (
	headerContentLength = []byte("Content-Length")
	headerContentType   = []byte("Content-Type")
	headerHost          = []byte("Host")
)

// Textual media types for body classification
var (
	ctTextPrefix = []byte("text/")
	ctJSON       = []byte("application/json")
	ctXML        = []byte("application/xml")
	ctJavaScript = []byte("application/javascript")
	ctJSONSuffix = []byte("+json")
	ctXMLSuffix  = []byte("+xml")
)

// HTTP Methods - Strings for zero-allocation lookups
const (
	methodGETString     = "GET"
	methodPOSTString    = "POST"
	methodPUTString     = "PUT"
	methodDELETEString  = "DELETE"
	methodPATCHString   = "PATCH"
	methodHEADString    = "HEAD"
	methodOPTIONSString = "OPTIONS"
	methodCONNECTString = "CONNECT"
	methodTRACEString   = "TRACE"
)

// HTTP Methods - Byte slices for serialization
var (
	methodGETBytes     = []byte(methodGETString)
	methodPOSTBytes    = []byte(methodPOSTString)
	methodPUTBytes     = []byte(methodPUTString)
	methodDELETEBytes  = []byte(methodDELETEString)
	methodPATCHBytes   = []byte(methodPATCHString)
	methodHEADBytes    = []byte(methodHEADString)
	methodOPTIONSBytes = []byte(methodOPTIONSString)
	methodCONNECTBytes = []byte(methodCONNECTString)
	methodTRACEBytes   = []byte(methodTRACEString)
)
