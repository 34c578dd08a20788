// Package transport defines the network capabilities the filament engines
// consume: address resolution, connection establishment, accepting, and
// optional TLS upgrade. The engines never touch the net package directly;
// they call these contracts, and tests substitute in-memory fakes.
package transport

import (
	"context"
	"errors"
	"net"
	"os"
	"time"
)

// Conn is an established, deadline-capable byte stream. *net.TCPConn and
// *tls.Conn both satisfy it.
type Conn interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
}

// Resolver maps a hostname to one or more network addresses.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// Dialer establishes a connection to a "host:port" address.
type Dialer interface {
	DialContext(ctx context.Context, address string) (Conn, error)
}

// Listener accepts inbound connections. SetDeadline bounds the next
// Accept call; an expired deadline surfaces as a timeout error from
// Accept.
type Listener interface {
	Accept() (Conn, error)
	Close() error
	Addr() net.Addr
	SetDeadline(t time.Time) error
}

// NetResolver resolves through the process default resolver.
type NetResolver struct{}

// LookupHost resolves host to its addresses. Literal IP addresses pass
// through without a DNS round trip.
func (NetResolver) LookupHost(ctx context.Context, host string) ([]string, error) {
	if ip := net.ParseIP(host); ip != nil {
		return []string{host}, nil
	}
	return net.DefaultResolver.LookupHost(ctx, host)
}

// NetDialer dials TCP connections with an optional per-dial timeout.
type NetDialer struct {
	Timeout time.Duration
}

// DialContext connects to address, honoring both the dialer timeout and
// the context deadline, whichever is sooner.
func (d NetDialer) DialContext(ctx context.Context, address string) (Conn, error) {
	nd := net.Dialer{Timeout: d.Timeout}
	conn, err := nd.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// netListener adapts *net.TCPListener to the Listener contract.
type netListener struct {
	ln *net.TCPListener
}

// Listen opens a TCP listener on the given port on all interfaces.
func Listen(port uint16) (Listener, error) {
	addr := &net.TCPAddr{Port: int(port)}
	ln, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &netListener{ln: ln}, nil
}

func (l *netListener) Accept() (Conn, error) {
	conn, err := l.ln.Accept()
	if err != nil {
		return nil, err
	}
	return conn, nil
}

func (l *netListener) Close() error {
	return l.ln.Close()
}

func (l *netListener) Addr() net.Addr {
	return l.ln.Addr()
}

func (l *netListener) SetDeadline(t time.Time) error {
	return l.ln.SetDeadline(t)
}

// IsTimeout reports whether err is a deadline expiry, whether it came
// from a Conn/Listener primitive or from a context deadline.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
