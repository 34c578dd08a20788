package server

import (
	"bytes"

	"github.com/yourusername/filament/pkg/filament/http11"
)

// Handler is the capability that turns a parsed request into a response.
// Serve fills resp; returning an error makes the engine answer with a
// generated 500 instead of crashing the accept loop.
//
// req and resp borrow from engine-owned buffers and must not be retained
// past the call.
type Handler interface {
	Serve(req *http11.Request, resp *http11.Response) error
}

// HandlerFunc adapts an ordinary function to the Handler capability.
type HandlerFunc func(req *http11.Request, resp *http11.Response) error

// Serve calls f(req, resp).
func (f HandlerFunc) Serve(req *http11.Request, resp *http11.Response) error {
	return f(req, resp)
}

// Reference handler payloads
var (
	refRootPath   = []byte("/")
	refHealthPath = []byte("/health")

	refRootBody   = []byte("<!DOCTYPE html><html><body><h1>filament</h1><p>It works.</p></body></html>")
	refHealthBody = []byte(`{"status":"ok"}`)
	refNotFound   = []byte("Not Found")
)

// ReferenceHandler answers the root path with a fixed HTML page, the
// health path with a JSON status, and everything else with 404 Not Found.
// Useful for conformance testing; not part of the protocol core.
type ReferenceHandler struct{}

// Serve implements Handler.
func (ReferenceHandler) Serve(req *http11.Request, resp *http11.Response) error {
	switch {
	case bytes.Equal(req.Path, refRootPath):
		resp.StatusCode = http11.StatusOK
		if err := resp.AddHeaderString("Content-Type", "text/html"); err != nil {
			return err
		}
		resp.Body = http11.Body{Kind: http11.BodyText, Data: refRootBody}

	case bytes.Equal(req.Path, refHealthPath):
		resp.StatusCode = http11.StatusOK
		if err := resp.AddHeaderString("Content-Type", "application/json"); err != nil {
			return err
		}
		resp.Body = http11.Body{Kind: http11.BodyText, Data: refHealthBody}

	default:
		resp.StatusCode = http11.StatusNotFound
		if err := resp.AddHeaderString("Content-Type", "text/plain"); err != nil {
			return err
		}
		resp.Body = http11.Body{Kind: http11.BodyText, Data: refNotFound}
	}
	return nil
}
