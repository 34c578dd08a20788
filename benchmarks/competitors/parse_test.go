// Package competitors benchmarks the filament protocol engine against
// net/http and fasthttp on the same messages.
package competitors

import (
	"bufio"
	"bytes"
	"io"
	"net/http"
	"testing"

	"github.com/valyala/fasthttp"

	"github.com/yourusername/filament/pkg/filament/http11"
)

var (
	rawRequest  = []byte("GET /api/status HTTP/1.1\r\nHost: example.com\r\nAccept: application/json\r\nUser-Agent: bench/1.0\r\nX-Request-Id: 12345\r\n\r\n")
	rawResponse = []byte("HTTP/1.1 200 OK\r\nContent-Type: application/json\r\nContent-Length: 15\r\nServer: bench\r\n\r\n{\"status\":\"ok\"}")
)

func generateBody(size int) []byte {
	body := make([]byte, size)
	for i := range body {
		body[i] = byte('A' + (i % 26))
	}
	return body
}

// BenchmarkComparisonParseRequest compares request parsing performance
func BenchmarkComparisonParseRequest(b *testing.B) {
	b.Run("filament", func(b *testing.B) {
		var req http11.Request
		b.ReportAllocs()
		b.SetBytes(int64(len(rawRequest)))
		for i := 0; i < b.N; i++ {
			if err := http11.ParseRequest(rawRequest, &req); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("net/http", func(b *testing.B) {
		b.ReportAllocs()
		b.SetBytes(int64(len(rawRequest)))
		for i := 0; i < b.N; i++ {
			req, err := http.ReadRequest(bufio.NewReader(bytes.NewReader(rawRequest)))
			if err != nil {
				b.Fatal(err)
			}
			_ = req
		}
	})

	b.Run("fasthttp", func(b *testing.B) {
		var req fasthttp.Request
		b.ReportAllocs()
		b.SetBytes(int64(len(rawRequest)))
		for i := 0; i < b.N; i++ {
			req.Reset()
			if err := req.Read(bufio.NewReader(bytes.NewReader(rawRequest))); err != nil {
				b.Fatal(err)
			}
		}
	})
}

// BenchmarkComparisonParseResponse compares response parsing performance
func BenchmarkComparisonParseResponse(b *testing.B) {
	b.Run("filament", func(b *testing.B) {
		var resp http11.Response
		b.ReportAllocs()
		b.SetBytes(int64(len(rawResponse)))
		for i := 0; i < b.N; i++ {
			if err := http11.ParseResponse(rawResponse, &resp); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("net/http", func(b *testing.B) {
		b.ReportAllocs()
		b.SetBytes(int64(len(rawResponse)))
		for i := 0; i < b.N; i++ {
			resp, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(rawResponse)), nil)
			if err != nil {
				b.Fatal(err)
			}
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}
	})

	b.Run("fasthttp", func(b *testing.B) {
		var resp fasthttp.Response
		b.ReportAllocs()
		b.SetBytes(int64(len(rawResponse)))
		for i := 0; i < b.N; i++ {
			resp.Reset()
			if err := resp.Read(bufio.NewReader(bytes.NewReader(rawResponse))); err != nil {
				b.Fatal(err)
			}
		}
	})
}

// BenchmarkComparisonSerializeResponse compares response serialization
func BenchmarkComparisonSerializeResponse(b *testing.B) {
	body := generateBody(512)

	b.Run("filament", func(b *testing.B) {
		var resp http11.Response
		resp.StatusCode = http11.StatusOK
		resp.AddHeaderString("Content-Type", "text/plain")
		resp.Body = http11.BinaryBody(body)
		buf := make([]byte, 1024)

		b.ReportAllocs()
		b.SetBytes(int64(len(body)))
		for i := 0; i < b.N; i++ {
			if _, err := http11.AppendResponse(buf, &resp); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("fasthttp", func(b *testing.B) {
		var resp fasthttp.Response
		resp.SetStatusCode(fasthttp.StatusOK)
		resp.Header.SetContentType("text/plain")
		resp.SetBody(body)
		bw := bufio.NewWriter(io.Discard)

		b.ReportAllocs()
		b.SetBytes(int64(len(body)))
		for i := 0; i < b.N; i++ {
			bw.Reset(io.Discard)
			if err := resp.Write(bw); err != nil {
				b.Fatal(err)
			}
			bw.Flush()
		}
	})
}
