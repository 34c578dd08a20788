package cli

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/yourusername/filament/internal/logger"
	"github.com/yourusername/filament/pkg/filament/server"
)

var (
	servePort    uint16
	serveWorkers int
	metricsAddr  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the reference HTTP server",
	Long: `Serve runs the fixed-buffer HTTP/1.1 server with the reference
handler ("/", "/health"). Buffer capacities and phase timeouts come from
the config file; flags override the port and worker count.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Uint16VarP(&servePort, "port", "p", 0, "listen port (overrides config)")
	serveCmd.Flags().IntVarP(&serveWorkers, "workers", "w", 0, "accept loops (overrides config)")
	serveCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Prometheus /metrics listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	defer log.Close()

	port := cfg.Server.Port
	if servePort != 0 {
		port = servePort
	}
	workers := cfg.Server.Workers
	if serveWorkers != 0 {
		workers = serveWorkers
	}

	srv, err := server.New(server.Config{
		Port: port,
		Timeouts: server.Timeouts{
			Accept:  cfg.Server.AcceptTimeout,
			Read:    cfg.Server.ReadTimeout,
			Handler: cfg.Server.HandlerTimeout,
		},
		RequestBufferSize:  cfg.Server.RequestBufferSize,
		ResponseBufferSize: cfg.Server.ResponseBufferSize,
		Handler:            server.ReferenceHandler{},
		Log:                log,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := metricsAddr
	if addr == "" {
		addr = cfg.Server.MetricsAddr
	}
	if addr != "" {
		go serveMetrics(ctx, addr, srv.Stats(), log)
	}

	log.Infof("serving on port %d with %d worker(s)", port, workers)
	if workers > 1 {
		return srv.RunPool(ctx, workers)
	}
	return srv.Run(ctx)
}

// serveMetrics exposes the engine counters on a standard Prometheus
// endpoint. Only the data plane uses the fixed-buffer engine; the
// metrics listener is plain net/http.
func serveMetrics(ctx context.Context, addr string, stats *server.Stats, log *logger.Logger) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(server.NewStatsCollector(stats))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	ms := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = ms.Shutdown(shutdownCtx)
	}()

	log.Infof("metrics on %s/metrics", addr)
	if err := ms.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Errorf("metrics listener: %v", err)
	}
}
