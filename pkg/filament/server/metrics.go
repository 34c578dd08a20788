package server

import "github.com/prometheus/client_golang/prometheus"

// StatsCollector exposes a Server's counters as Prometheus metrics. It
// reads the atomic Stats on every scrape, so registering it costs nothing
// on the request path.
//
// Usage:
//
//	prometheus.MustRegister(server.NewStatsCollector(srv.Stats()))
type StatsCollector struct {
	stats *Stats

	connections     *prometheus.Desc
	requests        *prometheus.Desc
	bytesRead       *prometheus.Desc
	bytesWritten    *prometheus.Desc
	parseErrors     *prometheus.Desc
	readTimeouts    *prometheus.Desc
	handlerErrors   *prometheus.Desc
	handlerTimeouts *prometheus.Desc
	acceptErrors    *prometheus.Desc
	uptime          *prometheus.Desc
}

// NewStatsCollector creates a collector over stats.
func NewStatsCollector(stats *Stats) *StatsCollector {
	fqName := func(name string) string {
		return prometheus.BuildFQName("filament", "server", name)
	}
	return &StatsCollector{
		stats: stats,

		connections: prometheus.NewDesc(fqName("connections_total"),
			"Total number of connections accepted", nil, nil),
		requests: prometheus.NewDesc(fqName("requests_total"),
			"Total number of requests dispatched to the handler", nil, nil),
		bytesRead: prometheus.NewDesc(fqName("bytes_read_total"),
			"Total bytes read from connections", nil, nil),
		bytesWritten: prometheus.NewDesc(fqName("bytes_written_total"),
			"Total bytes written to connections", nil, nil),
		parseErrors: prometheus.NewDesc(fqName("parse_errors_total"),
			"Requests rejected as unparseable or oversized", nil, nil),
		readTimeouts: prometheus.NewDesc(fqName("read_timeouts_total"),
			"Connections aborted waiting for a complete request", nil, nil),
		handlerErrors: prometheus.NewDesc(fqName("handler_errors_total"),
			"Handler invocations that returned an error", nil, nil),
		handlerTimeouts: prometheus.NewDesc(fqName("handler_timeouts_total"),
			"Handler invocations abandoned at the deadline", nil, nil),
		acceptErrors: prometheus.NewDesc(fqName("accept_errors_total"),
			"Accept failures other than deadline expiry", nil, nil),
		uptime: prometheus.NewDesc(fqName("uptime_seconds"),
			"Seconds since the server started", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.connections
	ch <- c.requests
	ch <- c.bytesRead
	ch <- c.bytesWritten
	ch <- c.parseErrors
	ch <- c.readTimeouts
	ch <- c.handlerErrors
	ch <- c.handlerTimeouts
	ch <- c.acceptErrors
	ch <- c.uptime
}

// Collect implements prometheus.Collector.
func (c *StatsCollector) Collect(ch chan<- prometheus.Metric) {
	counter := func(d *prometheus.Desc, v uint64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v))
	}
	counter(c.connections, c.stats.TotalConnections.Load())
	counter(c.requests, c.stats.TotalRequests.Load())
	counter(c.bytesRead, c.stats.BytesRead.Load())
	counter(c.bytesWritten, c.stats.BytesWritten.Load())
	counter(c.parseErrors, c.stats.ParseErrors.Load())
	counter(c.readTimeouts, c.stats.ReadTimeouts.Load())
	counter(c.handlerErrors, c.stats.HandlerErrors.Load())
	counter(c.handlerTimeouts, c.stats.HandlerTimeouts.Load())
	counter(c.acceptErrors, c.stats.AcceptErrors.Load())

	ch <- prometheus.MustNewConstMetric(c.uptime, prometheus.GaugeValue, c.stats.Duration().Seconds())
}
