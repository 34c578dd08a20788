// Package server implements the HTTP/1.1 server engine: an accept loop
// over fixed request/response buffers, phase timeouts for accept, read,
// and handler execution, and a user-supplied Handler capability.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yourusername/filament/pkg/filament/http11"
	"github.com/yourusername/filament/pkg/filament/transport"
)

// ErrHandler wraps failures propagated from the handler capability. They
// are converted into generated 500 responses, never crashes.
var ErrHandler = errors.New("server: handler failure")

// DefaultBufferSize is the request and response buffer capacity used when
// the config leaves them zero.
const DefaultBufferSize = 4096

// Pre-rendered fallback responses for paths where the normal serializer
// cannot run (parse failure, oversized request, response overflow)
var (
	canned400 = []byte("HTTP/1.1 400 Bad Request\r\nContent-Type: text/plain\r\nContent-Length: 11\r\n\r\nBad Request")
	canned413 = []byte("HTTP/1.1 413 Payload Too Large\r\nContent-Type: text/plain\r\nContent-Length: 17\r\n\r\nPayload Too Large")
	canned500 = []byte("HTTP/1.1 500 Internal Server Error\r\nContent-Type: text/plain\r\nContent-Length: 21\r\n\r\nInternal Server Error")
)

// Timeouts are the wall-clock bounds of the three server phases.
type Timeouts struct {
	// Accept bounds each wait for an inbound connection; expiry just
	// re-arms the loop
	Accept time.Duration

	// Read bounds the arrival of one complete request on an accepted
	// connection; it also bounds writing the response back
	Read time.Duration

	// Handler bounds one handler invocation
	Handler time.Duration
}

// DefaultTimeouts returns the default phase bounds: 10s accept, 30s read,
// 60s handler.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Accept:  10 * time.Second,
		Read:    30 * time.Second,
		Handler: 60 * time.Second,
	}
}

// Logger is the minimal logging surface the engine emits to. A nil logger
// silences the engine; internal/logger satisfies this interface.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Config holds server construction parameters. Buffer capacities are
// fixed here and immutable for the server's lifetime.
type Config struct {
	// Port is the TCP port to listen on. Ignored when Listener is set.
	Port uint16

	// Timeouts are the phase bounds; zero fields take the defaults.
	Timeouts Timeouts

	// RequestBufferSize is the fixed capacity of each loop's request
	// buffer. A request that does not fit is answered with 413.
	// Default: 4096 bytes
	RequestBufferSize int

	// ResponseBufferSize is the fixed capacity of each loop's response
	// buffer. A response that does not fit degrades to a canned 500.
	// Default: 4096 bytes
	ResponseBufferSize int

	// Handler is the request handling capability. Required.
	Handler Handler

	// Listener overrides Port with a caller-supplied accept capability;
	// tests use in-memory listeners here.
	Listener transport.Listener

	// Log receives engine diagnostics; nil disables logging.
	Log Logger
}

// Server owns the accept loop(s) and their fixed buffers. One loop
// handles one connection at a time; RunPool composes several independent
// loops for concurrent serving, each with its own buffers.
type Server struct {
	cfg   Config
	ln    transport.Listener
	stats Stats
}

// New validates cfg and creates a server. The listener is not opened
// until Run or RunPool.
func New(cfg Config) (*Server, error) {
	if cfg.Handler == nil {
		return nil, errors.New("server: Handler is required")
	}
	if cfg.Timeouts.Accept == 0 {
		cfg.Timeouts.Accept = DefaultTimeouts().Accept
	}
	if cfg.Timeouts.Read == 0 {
		cfg.Timeouts.Read = DefaultTimeouts().Read
	}
	if cfg.Timeouts.Handler == 0 {
		cfg.Timeouts.Handler = DefaultTimeouts().Handler
	}
	if cfg.RequestBufferSize == 0 {
		cfg.RequestBufferSize = DefaultBufferSize
	}
	if cfg.ResponseBufferSize == 0 {
		cfg.ResponseBufferSize = DefaultBufferSize
	}

	s := &Server{cfg: cfg, ln: cfg.Listener}
	s.stats.StartTime = time.Now()
	return s, nil
}

// Stats returns the server's counters.
func (s *Server) Stats() *Stats {
	return &s.stats
}

// Addr returns the listening address once Run or RunPool has opened the
// listener, nil before.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Run opens the listener and serves connections one at a time until ctx
// is done. Errors on individual connections abort that connection only;
// Run returns only on ctx cancellation or a dead listener.
func (s *Server) Run(ctx context.Context) error {
	if err := s.listen(); err != nil {
		return err
	}
	defer s.ln.Close()
	return s.runLoop(ctx)
}

// RunPool opens the listener and serves with n independent accept-or-
// handle loops, each owning its own buffers, scheduled as concurrent
// tasks. This is the composition layer for multi-connection serving; the
// engine itself stays one-connection-at-a-time per loop.
func (s *Server) RunPool(ctx context.Context, n int) error {
	if n < 1 {
		n = 1
	}
	if err := s.listen(); err != nil {
		return err
	}
	defer s.ln.Close()

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			return s.runLoop(ctx)
		})
	}
	return g.Wait()
}

func (s *Server) listen() error {
	if s.ln != nil {
		return nil
	}
	ln, err := transport.Listen(s.cfg.Port)
	if err != nil {
		return fmt.Errorf("server: listen on port %d: %w", s.cfg.Port, err)
	}
	s.ln = ln
	s.logf(func(l Logger) { l.Infof("http server listening on %s", ln.Addr()) })
	return nil
}

// ioState is one loop's fixed working set. It is abandoned wholesale when
// a handler overruns its deadline, because the overrunning handler still
// holds views into these buffers.
type ioState struct {
	reqBuf  []byte
	respBuf []byte
	req     *http11.Request
	resp    *http11.Response
}

func (s *Server) newIOState() *ioState {
	return &ioState{
		reqBuf:  make([]byte, s.cfg.RequestBufferSize),
		respBuf: make([]byte, s.cfg.ResponseBufferSize),
		req:     new(http11.Request),
		resp:    new(http11.Response),
	}
}

// runLoop is one accept-or-handle sequence: accept with deadline, handle
// one connection to completion, repeat. A connection failure of any kind
// never escapes the loop.
func (s *Server) runLoop(ctx context.Context) error {
	st := s.newIOState()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.ln.SetDeadline(time.Now().Add(s.cfg.Timeouts.Accept))
		conn, err := s.ln.Accept()
		if err != nil {
			if transport.IsTimeout(err) {
				continue // re-arm and keep listening
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.stats.AcceptErrors.Add(1)
			s.logf(func(l Logger) { l.Warnf("accept error: %v", err) })
			time.Sleep(100 * time.Millisecond)
			continue
		}

		s.stats.TotalConnections.Add(1)
		st = s.handleConn(conn, st)
		conn.Close()
	}
}

// handleConn runs the read-parse-dispatch-serialize-write sequence for
// one accepted connection. It returns the ioState to use next: the same
// one normally, a fresh one if this connection's handler was abandoned.
func (s *Server) handleConn(conn transport.Conn, st *ioState) *ioState {
	// Read phase: accumulate until one complete request parses
	conn.SetReadDeadline(time.Now().Add(s.cfg.Timeouts.Read))

	filled := 0
	for {
		if filled == len(st.reqBuf) {
			// Fixed capacity exhausted without a complete request
			s.stats.ParseErrors.Add(1)
			s.writeRaw(conn, canned413)
			return st
		}

		n, err := conn.Read(st.reqBuf[filled:])
		filled += n
		s.stats.BytesRead.Add(uint64(n))

		if n > 0 {
			perr := http11.ParseRequest(st.reqBuf[:filled], st.req)
			if perr == nil {
				break
			}
			if !errors.Is(perr, http11.ErrIncomplete) {
				s.stats.ParseErrors.Add(1)
				s.logf(func(l Logger) { l.Debugf("request parse error: %v", perr) })
				s.writeRaw(conn, canned400)
				return st
			}
		}

		if err != nil {
			if transport.IsTimeout(err) {
				// Scenario: connection accepted, request never arrives. Abort
				// this connection only; the loop serves the next one.
				s.stats.ReadTimeouts.Add(1)
				s.logf(func(l Logger) { l.Debugf("read timeout after %d bytes", filled) })
				return st
			}
			if filled > 0 {
				s.stats.ParseErrors.Add(1)
				s.writeRaw(conn, canned400)
			}
			return st
		}
	}

	// Dispatch phase, bounded by the handler deadline
	s.stats.TotalRequests.Add(1)
	st.resp.Reset()

	done := make(chan error, 1)
	go func(req *http11.Request, resp *http11.Response) {
		done <- s.cfg.Handler.Serve(req, resp)
	}(st.req, st.resp)

	timer := time.NewTimer(s.cfg.Timeouts.Handler)
	defer timer.Stop()

	select {
	case herr := <-done:
		if herr != nil {
			// Converted, never propagated as a crash
			s.stats.HandlerErrors.Add(1)
			s.logf(func(l Logger) { l.Warnf("handler error: %v", fmt.Errorf("%w: %v", ErrHandler, herr)) })
			st.resp.Reset()
			st.resp.StatusCode = http11.StatusInternalServerError
			st.resp.AddHeaderString("Content-Type", "text/plain")
			st.resp.Body = http11.TextBody("Internal Server Error")
		}
	case <-timer.C:
		// The overrunning handler still owns st's buffers; abandon them and
		// answer from a fresh state.
		s.stats.HandlerTimeouts.Add(1)
		s.logf(func(l Logger) { l.Warnf("handler deadline exceeded") })
		st = s.newIOState()
		st.resp.StatusCode = http11.StatusRequestTimeout
		st.resp.AddHeaderString("Content-Type", "text/plain")
		st.resp.Body = http11.TextBody("Request Timeout")
	}

	// Serialize and write phases
	n, err := http11.AppendResponse(st.respBuf, st.resp)
	if err != nil {
		s.logf(func(l Logger) { l.Warnf("response serialization failed: %v", err) })
		s.writeRaw(conn, canned500)
		return st
	}
	s.write(conn, st.respBuf[:n])
	return st
}

// write sends buf under the write deadline, counting bytes out.
func (s *Server) write(conn transport.Conn, buf []byte) {
	conn.SetWriteDeadline(time.Now().Add(s.cfg.Timeouts.Read))
	for written := 0; written < len(buf); {
		n, err := conn.Write(buf[written:])
		written += n
		s.stats.BytesWritten.Add(uint64(n))
		if err != nil {
			s.logf(func(l Logger) { l.Debugf("response write error: %v", err) })
			return
		}
	}
}

// writeRaw sends a pre-rendered fallback response.
func (s *Server) writeRaw(conn transport.Conn, raw []byte) {
	s.write(conn, raw)
}

// logf runs fn against the configured logger, if any.
func (s *Server) logf(fn func(Logger)) {
	if s.cfg.Log != nil {
		fn(s.cfg.Log)
	}
}
