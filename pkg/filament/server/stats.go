package server

import (
	"sync/atomic"
	"time"
)

// Stats tracks engine counters across all accept loops of one Server.
// All fields are atomics; reading while serving is safe.
type Stats struct {
	// Total number of connections accepted
	TotalConnections atomic.Uint64

	// Total number of requests dispatched to the handler
	TotalRequests atomic.Uint64

	// Total number of bytes read from and written to connections
	BytesRead    atomic.Uint64
	BytesWritten atomic.Uint64

	// Requests rejected because they could not be parsed
	ParseErrors atomic.Uint64

	// Connections aborted because no complete request arrived in time
	ReadTimeouts atomic.Uint64

	// Handler invocations that returned an error
	HandlerErrors atomic.Uint64

	// Handler invocations abandoned at the handler deadline
	HandlerTimeouts atomic.Uint64

	// Accept calls that failed for reasons other than deadline expiry
	AcceptErrors atomic.Uint64

	// Server start time
	StartTime time.Time
}

// Duration returns the time since the server started.
func (s *Stats) Duration() time.Duration {
	return time.Since(s.StartTime)
}

// RequestsPerSecond returns the average requests per second.
func (s *Stats) RequestsPerSecond() float64 {
	secs := s.Duration().Seconds()
	if secs == 0 {
		return 0
	}
	return float64(s.TotalRequests.Load()) / secs
}
