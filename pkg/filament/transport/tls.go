package transport

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
)

// ErrTLSNotNetConn is returned when the TLS wrapper is handed a Conn that
// is not backed by a real network connection.
var ErrTLSNotNetConn = errors.New("transport: connection does not support TLS upgrade")

// TLSWrapper upgrades an established connection to a secure one offering
// the same read/write/close surface. Engines treat it as an optional
// capability: a nil wrapper means secure schemes are unsupported at
// runtime, no separate build required.
type TLSWrapper interface {
	Wrap(ctx context.Context, conn Conn, serverName string) (Conn, error)
}

// StdTLS wraps connections with crypto/tls.
type StdTLS struct {
	// Config is cloned per connection so ServerName can be set. A nil
	// Config uses the library defaults.
	Config *tls.Config
}

// Wrap performs the client-side TLS handshake over conn for serverName.
// The handshake is bounded by ctx; on failure the underlying connection
// is left to the caller to close.
func (t StdTLS) Wrap(ctx context.Context, conn Conn, serverName string) (Conn, error) {
	nc, ok := conn.(net.Conn)
	if !ok {
		return nil, ErrTLSNotNetConn
	}

	var cfg *tls.Config
	if t.Config != nil {
		cfg = t.Config.Clone()
	} else {
		cfg = &tls.Config{}
	}
	if cfg.ServerName == "" {
		cfg.ServerName = serverName
	}

	tc := tls.Client(nc, cfg)
	if err := tc.HandshakeContext(ctx); err != nil {
		return nil, err
	}
	return tc, nil
}
