// Package client implements the HTTP/1.1 client engine: one transport
// connection per request, fixed-capacity buffers decided at construction,
// and a zero-copy parsed response borrowing from the caller's receive
// buffer.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/yourusername/filament/pkg/filament/http11"
	"github.com/yourusername/filament/pkg/filament/transport"
)

// Well-known header names, pre-compiled for zero-allocation lookups
var (
	headerHostName          = []byte("Host")
	headerUserAgentName     = []byte("User-Agent")
	headerContentLengthName = []byte("Content-Length")
)

// Client drives request/response cycles. Each call runs the sequence
// Resolve, Connect, optional TLS, Send, Receive, Parse, strictly in that
// order, over exactly one connection that is torn down before returning.
//
// One transport failure (connect or mid-stream read/write) is retried a
// single time by rerunning the whole cycle. The retry does not distinguish
// idempotent from non-idempotent methods; retrying a POST whose first
// attempt died with unknown outcome can duplicate side effects on the
// remote end. Set Config.DisableRetry when that matters.
//
// A Client owns its transmit buffer exclusively; concurrent calls on one
// Client are not supported. The response buffer is caller-owned and the
// returned Response borrows from it: the Response dies when that buffer is
// next rewritten.
type Client struct {
	cfg     Config
	sendBuf []byte

	// Scratch for the Host header value ("host:port"); bounded by the
	// 253-byte DNS name limit plus port
	hostScratch [262]byte
}

// New creates a client. All buffer capacities are fixed here and reused
// for every request made through this instance.
func New(cfg Config) *Client {
	cfg.withDefaults()
	return &Client{
		cfg:     cfg,
		sendBuf: make([]byte, cfg.SendBufferSize),
	}
}

// Get issues a GET request. respBuf receives the raw response; resp is
// filled with the parsed view borrowing from respBuf. Returns the number
// of bytes read.
func (c *Client) Get(ctx context.Context, url string, headers []http11.Header, respBuf []byte, resp *http11.Response) (int, error) {
	return c.Do(ctx, http11.MethodGET, url, headers, nil, respBuf, resp)
}

// Head issues a HEAD request. The response is parsed without expecting
// body bytes even when it declares a Content-Length.
func (c *Client) Head(ctx context.Context, url string, headers []http11.Header, respBuf []byte, resp *http11.Response) (int, error) {
	return c.Do(ctx, http11.MethodHEAD, url, headers, nil, respBuf, resp)
}

// Options issues an OPTIONS request.
func (c *Client) Options(ctx context.Context, url string, headers []http11.Header, respBuf []byte, resp *http11.Response) (int, error) {
	return c.Do(ctx, http11.MethodOPTIONS, url, headers, nil, respBuf, resp)
}

// Trace issues a TRACE request.
func (c *Client) Trace(ctx context.Context, url string, headers []http11.Header, respBuf []byte, resp *http11.Response) (int, error) {
	return c.Do(ctx, http11.MethodTRACE, url, headers, nil, respBuf, resp)
}

// Connect issues a CONNECT request.
func (c *Client) Connect(ctx context.Context, url string, headers []http11.Header, respBuf []byte, resp *http11.Response) (int, error) {
	return c.Do(ctx, http11.MethodCONNECT, url, headers, nil, respBuf, resp)
}

// Post issues a POST request carrying body.
func (c *Client) Post(ctx context.Context, url string, headers []http11.Header, body []byte, respBuf []byte, resp *http11.Response) (int, error) {
	return c.Do(ctx, http11.MethodPOST, url, headers, body, respBuf, resp)
}

// Put issues a PUT request carrying body.
func (c *Client) Put(ctx context.Context, url string, headers []http11.Header, body []byte, respBuf []byte, resp *http11.Response) (int, error) {
	return c.Do(ctx, http11.MethodPUT, url, headers, body, respBuf, resp)
}

// Patch issues a PATCH request carrying body.
func (c *Client) Patch(ctx context.Context, url string, headers []http11.Header, body []byte, respBuf []byte, resp *http11.Response) (int, error) {
	return c.Do(ctx, http11.MethodPATCH, url, headers, body, respBuf, resp)
}

// Delete issues a DELETE request; body may be nil.
func (c *Client) Delete(ctx context.Context, url string, headers []http11.Header, body []byte, respBuf []byte, resp *http11.Response) (int, error) {
	return c.Do(ctx, http11.MethodDELETE, url, headers, body, respBuf, resp)
}

// Do executes one request cycle for any verb. On success, resp borrows
// from respBuf and the return value is the count of bytes read into it.
// On failure, exactly one sentinel from this package or http11 is
// matchable via errors.Is.
func (c *Client) Do(ctx context.Context, methodID uint8, url string, headers []http11.Header, body []byte, respBuf []byte, resp *http11.Response) (int, error) {
	t, err := parseTarget(url)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidURL, url)
	}

	n, err := c.doOnce(ctx, methodID, t, headers, body, respBuf, resp)
	if err != nil && !c.cfg.DisableRetry && isRetryable(err) {
		n, err = c.doOnce(ctx, methodID, t, headers, body, respBuf, resp)
	}
	return n, err
}

// isRetryable reports whether the failure is a transport-level one worth
// one more attempt: connect refusal or a mid-stream read/write failure.
// Timeouts, TLS failures, and protocol errors are final.
func isRetryable(err error) bool {
	return errors.Is(err, ErrConnection) || errors.Is(err, ErrTransport)
}

func (c *Client) doOnce(ctx context.Context, methodID uint8, t target, headers []http11.Header, body []byte, respBuf []byte, resp *http11.Response) (int, error) {
	// Resolve
	addrs, err := c.cfg.Resolver.LookupHost(ctx, t.host)
	if err != nil || len(addrs) == 0 {
		return 0, fmt.Errorf("%w: %s: %v", ErrResolution, t.host, err)
	}

	// Connect: first address that answers wins
	conn, err := c.connect(ctx, t, addrs)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	// TLS, when the scheme demands it
	if t.secure {
		if c.cfg.TLS == nil {
			return 0, ErrTLSUnsupported
		}
		sc, err := c.cfg.TLS.Wrap(ctx, conn, t.host)
		if err != nil {
			if transport.IsTimeout(err) {
				return 0, fmt.Errorf("%w: TLS handshake: %v", ErrTimeout, err)
			}
			return 0, fmt.Errorf("%w: %v", ErrTLS, err)
		}
		conn = sc
	}

	// Send
	if err := c.send(conn, methodID, t, headers, body); err != nil {
		return 0, err
	}

	// Receive and parse
	return c.receive(conn, methodID, respBuf, resp)
}

func (c *Client) connect(ctx context.Context, t target, addrs []string) (transport.Conn, error) {
	port := t.port
	if port == "" {
		if t.secure {
			port = "443"
		} else {
			port = "80"
		}
	}

	var lastErr error
	for _, addr := range addrs {
		conn, err := c.cfg.Dialer.DialContext(ctx, net.JoinHostPort(addr, port))
		if err == nil {
			return conn, nil
		}
		lastErr = err
	}
	if transport.IsTimeout(lastErr) {
		return nil, fmt.Errorf("%w: connect: %v", ErrTimeout, lastErr)
	}
	return nil, fmt.Errorf("%w: %v", ErrConnection, lastErr)
}

// send serializes the request into the fixed transmit buffer and writes it
// out under the write deadline. Serialization overflow surfaces before a
// single byte reaches the transport.
func (c *Client) send(conn transport.Conn, methodID uint8, t target, headers []http11.Header, body []byte) error {
	// Caller headers first, in order, then Host and User-Agent when absent
	var hdrs [http11.MaxHeaders]http11.Header
	if len(headers) > http11.MaxHeaders-2 {
		return http11.ErrTooManyHeaders
	}
	count := copy(hdrs[:], headers)
	if !http11.HasHeader(headers, headerHostName) {
		hdrs[count] = http11.Header{Name: headerHostName, Value: c.hostHeader(t)}
		count++
	}
	if !http11.HasHeader(headers, headerUserAgentName) {
		hdrs[count] = http11.Header{Name: headerUserAgentName, Value: stringToBytesUnsafe(c.cfg.UserAgent)}
		count++
	}

	n, err := http11.AppendRequest(c.sendBuf, methodID, stringToBytesUnsafe(t.pathq), hdrs[:count], body)
	if err != nil {
		return err
	}

	if err := conn.SetWriteDeadline(deadline(c.cfg.WriteTimeout)); err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	for written := 0; written < n; {
		m, err := conn.Write(c.sendBuf[written:n])
		written += m
		if err != nil {
			if transport.IsTimeout(err) {
				return fmt.Errorf("%w: write: %v", ErrTimeout, err)
			}
			return fmt.Errorf("%w: write: %v", ErrTransport, err)
		}
	}
	return nil
}

// receive fills respBuf from the connection and parses after every read.
// The loop ends on a complete message, a fatal parse error, buffer
// exhaustion, EOF, or the read deadline.
func (c *Client) receive(conn transport.Conn, methodID uint8, respBuf []byte, resp *http11.Response) (int, error) {
	if err := conn.SetReadDeadline(deadline(c.cfg.ReadTimeout)); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	parse := http11.ParseResponse
	if methodID == http11.MethodHEAD {
		parse = http11.ParseResponseHeader
	}

	filled := 0
	for {
		if filled == len(respBuf) {
			// Capacity exhausted: either the message fit exactly or it never
			// will
			if err := parse(respBuf[:filled], resp); err == nil && c.framed(resp, methodID) {
				return filled, nil
			}
			return filled, http11.ErrBufferTooSmall
		}

		n, rerr := conn.Read(respBuf[filled:])
		filled += n

		if n > 0 {
			perr := parse(respBuf[:filled], resp)
			switch {
			case perr == nil:
				// Without a Content-Length the body runs to EOF, so only a
				// framed message is complete here
				if c.framed(resp, methodID) {
					return filled, nil
				}
			case errors.Is(perr, http11.ErrIncomplete):
				// Read more
			default:
				return filled, perr
			}
		}

		if rerr != nil {
			if rerr == io.EOF {
				// Peer closed: whatever arrived is the whole message
				if perr := parse(respBuf[:filled], resp); perr != nil {
					return filled, perr
				}
				return filled, nil
			}
			if transport.IsTimeout(rerr) {
				return filled, fmt.Errorf("%w: read: %v", ErrTimeout, rerr)
			}
			return filled, fmt.Errorf("%w: read: %v", ErrTransport, rerr)
		}
	}
}

// framed reports whether the parsed response's extent was known from its
// headers, as opposed to running until EOF.
func (c *Client) framed(resp *http11.Response, methodID uint8) bool {
	if methodID == http11.MethodHEAD {
		return true
	}
	if resp.StatusCode.IsInformational() ||
		resp.StatusCode == http11.StatusNoContent || resp.StatusCode == http11.StatusNotModified {
		return true
	}
	return resp.Header(headerContentLengthName) != nil
}

// deadline converts a phase timeout to an absolute deadline; a
// non-positive timeout means no deadline.
func deadline(d time.Duration) time.Time {
	if d <= 0 {
		return time.Time{}
	}
	return time.Now().Add(d)
}

// hostHeader renders "host" or "host:port" into the client scratch.
func (c *Client) hostHeader(t target) []byte {
	n := copy(c.hostScratch[:], t.host)
	if t.port != "" {
		c.hostScratch[n] = ':'
		n++
		n += copy(c.hostScratch[n:], t.port)
	}
	return c.hostScratch[:n]
}
