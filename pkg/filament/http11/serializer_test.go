package http11

import (
	"bytes"
	"errors"
	"testing"
)

func TestAppendRequest(t *testing.T) {
	buf := make([]byte, 256)
	headers := []Header{H("Host", "example.com"), H("Accept", "*/*")}
	n, err := AppendRequest(buf, MethodGET, []byte("/index.html"), headers, nil)
	if err != nil {
		t.Fatalf("AppendRequest() error = %v", err)
	}
	want := "GET /index.html HTTP/1.1\r\nHost: example.com\r\nAccept: */*\r\n\r\n"
	if string(buf[:n]) != want {
		t.Errorf("rendered = %q, want %q", buf[:n], want)
	}
}

func TestAppendRequestBodyAddsContentLength(t *testing.T) {
	buf := make([]byte, 256)
	body := []byte(`{"a":1}`)
	n, err := AppendRequest(buf, MethodPOST, []byte("/submit"), []Header{H("Host", "x")}, body)
	if err != nil {
		t.Fatalf("AppendRequest() error = %v", err)
	}
	want := "POST /submit HTTP/1.1\r\nHost: x\r\nContent-Length: 7\r\n\r\n{\"a\":1}"
	if string(buf[:n]) != want {
		t.Errorf("rendered = %q, want %q", buf[:n], want)
	}
}

func TestAppendRequestCallerContentLengthWins(t *testing.T) {
	buf := make([]byte, 256)
	headers := []Header{H("content-length", "3")}
	n, err := AppendRequest(buf, MethodPUT, []byte("/x"), headers, []byte("abc"))
	if err != nil {
		t.Fatalf("AppendRequest() error = %v", err)
	}
	if bytes.Count(buf[:n], []byte("ontent-")) != 1 {
		t.Errorf("duplicate Content-Length emitted: %q", buf[:n])
	}
}

func TestAppendRequestRoundTrip(t *testing.T) {
	buf := make([]byte, 512)
	headers := []Header{H("Host", "api.example.com"), H("X-Token", "abc123")}
	body := []byte("payload bytes")
	n, err := AppendRequest(buf, MethodPATCH, []byte("/v1/things?id=7"), headers, body)
	if err != nil {
		t.Fatalf("AppendRequest() error = %v", err)
	}

	var req Request
	if err := ParseRequest(buf[:n], &req); err != nil {
		t.Fatalf("ParseRequest() error = %v", err)
	}
	if req.MethodID != MethodPATCH {
		t.Errorf("MethodID = %d, want MethodPATCH", req.MethodID)
	}
	if !bytes.Equal(req.Path, []byte("/v1/things")) || !bytes.Equal(req.Query, []byte("id=7")) {
		t.Errorf("Path/Query = %q/%q", req.Path, req.Query)
	}
	if got := req.HeaderString("X-Token"); got != "abc123" {
		t.Errorf("X-Token = %q, want abc123", got)
	}
	if !bytes.Equal(req.Body, body) {
		t.Errorf("Body = %q, want %q", req.Body, body)
	}
}

func TestAppendRequestValidation(t *testing.T) {
	buf := make([]byte, 256)
	tests := []struct {
		name     string
		methodID uint8
		path     string
		headers  []Header
		want     error
	}{
		{"unknown method", MethodUnknown, "/", nil, ErrInvalidMethod},
		{"empty path", MethodGET, "", nil, ErrInvalidPath},
		{"relative path", MethodGET, "x/y", nil, ErrInvalidPath},
		{"crlf in value", MethodGET, "/", []Header{H("X", "a\r\nInjected: 1")}, ErrInvalidHeader},
		{"crlf in name", MethodGET, "/", []Header{H("X\r\nY", "v")}, ErrInvalidHeader},
		{"empty header name", MethodGET, "/", []Header{H("", "v")}, ErrInvalidHeader},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := AppendRequest(buf, tt.methodID, []byte(tt.path), tt.headers, nil); !errors.Is(err, tt.want) {
				t.Errorf("AppendRequest() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAppendRequestBufferTooSmall(t *testing.T) {
	buf := make([]byte, 16)
	for i := range buf {
		buf[i] = 0xAA
	}
	n, err := AppendRequest(buf, MethodGET, []byte("/a/very/long/path"), []Header{H("Host", "x")}, nil)
	if !errors.Is(err, ErrBufferTooSmall) {
		t.Fatalf("AppendRequest() error = %v, want ErrBufferTooSmall", err)
	}
	if n != 0 {
		t.Errorf("n = %d, want 0", n)
	}
	// Nothing may have been written before the size check failed.
	for i, b := range buf {
		if b != 0xAA {
			t.Fatalf("buf[%d] = %#x, buffer was partially written", i, b)
		}
	}
}

func TestAppendRequestExactFit(t *testing.T) {
	want := "GET / HTTP/1.1\r\n\r\n"
	buf := make([]byte, len(want))
	n, err := AppendRequest(buf, MethodGET, []byte("/"), nil, nil)
	if err != nil {
		t.Fatalf("AppendRequest() error = %v", err)
	}
	if string(buf[:n]) != want {
		t.Errorf("rendered = %q, want %q", buf[:n], want)
	}

	short := make([]byte, len(want)-1)
	if _, err := AppendRequest(short, MethodGET, []byte("/"), nil, nil); !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("one byte short: error = %v, want ErrBufferTooSmall", err)
	}
}

func TestAppendResponse(t *testing.T) {
	var resp Response
	resp.StatusCode = StatusOK
	if err := resp.AddHeader(H("Content-Type", "text/plain")); err != nil {
		t.Fatal(err)
	}
	resp.Body = TextBody("hello")

	buf := make([]byte, 256)
	n, err := AppendResponse(buf, &resp)
	if err != nil {
		t.Fatalf("AppendResponse() error = %v", err)
	}
	want := "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 5\r\n\r\nhello"
	if string(buf[:n]) != want {
		t.Errorf("rendered = %q, want %q", buf[:n], want)
	}
}

func TestAppendResponseEmptyBodyContentLength(t *testing.T) {
	// Explicit zero length even for empty bodies keeps clients from
	// waiting on EOF to frame the message.
	var resp Response
	resp.StatusCode = StatusNotFound

	buf := make([]byte, 128)
	n, err := AppendResponse(buf, &resp)
	if err != nil {
		t.Fatalf("AppendResponse() error = %v", err)
	}
	want := "HTTP/1.1 404 Not Found\r\nContent-Length: 0\r\n\r\n"
	if string(buf[:n]) != want {
		t.Errorf("rendered = %q, want %q", buf[:n], want)
	}
}

func TestAppendResponseRoundTrip(t *testing.T) {
	var resp Response
	resp.StatusCode = StatusCreated
	if err := resp.AddHeader(H("Content-Type", "application/json")); err != nil {
		t.Fatal(err)
	}
	resp.Body = TextBody(`{"id":42}`)

	buf := make([]byte, 256)
	n, err := AppendResponse(buf, &resp)
	if err != nil {
		t.Fatalf("AppendResponse() error = %v", err)
	}

	var parsed Response
	if err := ParseResponse(buf[:n], &parsed); err != nil {
		t.Fatalf("ParseResponse() error = %v", err)
	}
	if parsed.StatusCode != StatusCreated {
		t.Errorf("StatusCode = %d, want 201", parsed.StatusCode)
	}
	if parsed.Body.Kind != BodyText || parsed.Body.Text() != `{"id":42}` {
		t.Errorf("Body = %v %q", parsed.Body.Kind, parsed.Body.Text())
	}
	if parsed.ContentLength() != 9 {
		t.Errorf("ContentLength() = %d, want 9", parsed.ContentLength())
	}
}

func TestAppendResponseBufferTooSmall(t *testing.T) {
	var resp Response
	resp.StatusCode = StatusOK
	resp.Body = TextBody("a body that will not fit")

	buf := make([]byte, 24)
	saved := append([]byte(nil), buf...)
	n, err := AppendResponse(buf, &resp)
	if !errors.Is(err, ErrBufferTooSmall) {
		t.Fatalf("AppendResponse() error = %v, want ErrBufferTooSmall", err)
	}
	if n != 0 {
		t.Errorf("n = %d, want 0", n)
	}
	if !bytes.Equal(buf, saved) {
		t.Error("buffer was partially written")
	}
}

func TestAppendResponseInvalidStatus(t *testing.T) {
	var resp Response
	resp.StatusCode = 42
	if _, err := AppendResponse(make([]byte, 128), &resp); !errors.Is(err, ErrInvalidStatusCode) {
		t.Errorf("AppendResponse() error = %v, want ErrInvalidStatusCode", err)
	}
}

func BenchmarkAppendRequest(b *testing.B) {
	buf := make([]byte, 512)
	path := []byte("/api/status")
	headers := []Header{H("Host", "example.com"), H("Accept", "application/json")}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := AppendRequest(buf, MethodGET, path, headers, nil); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAppendResponse(b *testing.B) {
	var resp Response
	resp.StatusCode = StatusOK
	resp.Body = TextBody(`{"status":"ok"}`)
	buf := make([]byte, 512)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := AppendResponse(buf, &resp); err != nil {
			b.Fatal(err)
		}
	}
}
