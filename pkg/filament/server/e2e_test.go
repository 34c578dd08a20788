package server_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/yourusername/filament/pkg/filament/client"
	"github.com/yourusername/filament/pkg/filament/http11"
	"github.com/yourusername/filament/pkg/filament/server"
	"github.com/yourusername/filament/pkg/filament/transport"
)

// startEngine runs a server over a loopback listener and returns a URL
// base like "http://127.0.0.1:PORT".
func startEngine(t *testing.T, handler server.Handler) string {
	t.Helper()

	ln, err := transport.Listen(0)
	if err != nil {
		t.Fatalf("Listen(0) error = %v", err)
	}
	srv, err := server.New(server.Config{
		Handler:  handler,
		Listener: ln,
		Timeouts: server.Timeouts{
			Accept:  50 * time.Millisecond,
			Read:    2 * time.Second,
			Handler: 2 * time.Second,
		},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		srv.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return fmt.Sprintf("http://%s", srv.Addr())
}

func TestEndToEndGet(t *testing.T) {
	api := server.HandlerFunc(func(req *http11.Request, resp *http11.Response) error {
		if string(req.Path) != "/api/status" {
			resp.StatusCode = http11.StatusNotFound
			resp.Body = http11.TextBody("Not Found")
			return nil
		}
		resp.StatusCode = http11.StatusOK
		resp.AddHeaderString("Content-Type", "application/json")
		resp.Body = http11.TextBody(`{"status":"ok"}`)
		return nil
	})
	base := startEngine(t, api)

	c := client.New(client.Config{})
	respBuf := make([]byte, 4096)
	var resp http11.Response
	n, err := c.Get(context.Background(), base+"/api/status",
		[]http11.Header{http11.H("Accept", "application/json")}, respBuf, &resp)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if n == 0 {
		t.Error("no bytes read")
	}
	if resp.StatusCode != http11.StatusOK || !resp.StatusCode.IsSuccess() {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if resp.Body.Kind != http11.BodyText || resp.Body.Text() != `{"status":"ok"}` {
		t.Errorf("Body = %v %q", resp.Body.Kind, resp.Body.Text())
	}
	if resp.ContentLength() != 15 {
		t.Errorf("ContentLength() = %d, want 15", resp.ContentLength())
	}
}

func TestEndToEndPostEcho(t *testing.T) {
	echo := server.HandlerFunc(func(req *http11.Request, resp *http11.Response) error {
		resp.StatusCode = http11.StatusOK
		resp.AddHeaderString("Content-Type", "application/octet-stream")
		resp.Body = http11.BinaryBody(req.Body)
		return nil
	})
	base := startEngine(t, echo)

	c := client.New(client.Config{})
	var resp http11.Response
	payload := []byte("\x00\x01binary\xffpayload")
	_, err := c.Post(context.Background(), base+"/echo", nil, payload, make([]byte, 4096), &resp)
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if resp.Body.Kind != http11.BodyBinary {
		t.Errorf("Body.Kind = %v, want BodyBinary", resp.Body.Kind)
	}
	if string(resp.Body.Data) != string(payload) {
		t.Errorf("echoed body = %q, want %q", resp.Body.Data, payload)
	}
}

func TestEndToEndHead(t *testing.T) {
	base := startEngine(t, server.ReferenceHandler{})

	c := client.New(client.Config{})
	var resp http11.Response
	_, err := c.Head(context.Background(), base+"/health", nil, make([]byte, 4096), &resp)
	if err != nil {
		t.Fatalf("Head() error = %v", err)
	}
	if resp.StatusCode != http11.StatusOK {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
}

func TestEndToEndUndersizedReceiveBuffer(t *testing.T) {
	big := server.HandlerFunc(func(req *http11.Request, resp *http11.Response) error {
		resp.StatusCode = http11.StatusOK
		resp.AddHeaderString("Content-Type", "text/plain")
		resp.Body = http11.TextBody(string(make([]byte, 512)))
		return nil
	})
	base := startEngine(t, big)

	// A response that cannot fit the caller's buffer fails loudly instead
	// of truncating.
	c := client.New(client.Config{})
	var resp http11.Response
	_, err := c.Get(context.Background(), base+"/", nil, make([]byte, 64), &resp)
	if !errors.Is(err, http11.ErrBufferTooSmall) {
		t.Errorf("Get() error = %v, want ErrBufferTooSmall", err)
	}
}
