package client

import (
	"time"

	"github.com/yourusername/filament/pkg/filament/transport"
)

// DefaultSendBufferSize is the transmit buffer capacity used when the
// config leaves it zero.
const DefaultSendBufferSize = 4096

// defaultUserAgent is sent when the caller supplies no User-Agent header.
const defaultUserAgent = "filament/1.0"

// Config holds client construction parameters. Buffer capacity is fixed
// here, before any request is seen, and never grows afterwards.
type Config struct {
	// DialTimeout bounds the connect phase.
	// Default: 10 seconds
	DialTimeout time.Duration

	// ReadTimeout bounds the whole receive phase of one request.
	// Default: 30 seconds
	ReadTimeout time.Duration

	// WriteTimeout bounds the send phase.
	// Default: 30 seconds
	WriteTimeout time.Duration

	// SendBufferSize is the fixed capacity of the request transmit buffer.
	// A request that renders larger than this fails with ErrBufferTooSmall.
	// Default: 4096 bytes
	SendBufferSize int

	// UserAgent overrides the default User-Agent header value.
	UserAgent string

	// Resolver is the hostname resolution capability.
	// Default: transport.NetResolver
	Resolver transport.Resolver

	// Dialer is the connection establishment capability.
	// Default: transport.NetDialer with DialTimeout
	Dialer transport.Dialer

	// TLS is the optional secure transport capability. Leaving it nil makes
	// any https request fail fast with ErrTLSUnsupported; tests exercise
	// both paths in one build by toggling this field.
	TLS transport.TLSWrapper

	// DisableRetry turns off the single retry on transport failure.
	DisableRetry bool
}

// DefaultConfig returns the default client configuration with the standard
// TLS capability enabled.
func DefaultConfig() Config {
	return Config{
		DialTimeout:    10 * time.Second,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		SendBufferSize: DefaultSendBufferSize,
		TLS:            transport.StdTLS{},
	}
}

// withDefaults fills zero fields in place.
func (c *Config) withDefaults() {
	if c.DialTimeout == 0 {
		c.DialTimeout = 10 * time.Second
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 30 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 30 * time.Second
	}
	if c.SendBufferSize == 0 {
		c.SendBufferSize = DefaultSendBufferSize
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	if c.Resolver == nil {
		c.Resolver = transport.NetResolver{}
	}
	if c.Dialer == nil {
		c.Dialer = transport.NetDialer{Timeout: c.DialTimeout}
	}
}
