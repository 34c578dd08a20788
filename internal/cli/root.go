// Package cli implements the filament command tree.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/filament/internal/config"
	"github.com/yourusername/filament/internal/logger"
)

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "filament",
	Short: "Fixed-buffer HTTP/1.1 engine",
	Long: `Filament is an HTTP/1.1 client and server built on fixed-capacity
buffers: requests and responses are parsed and serialized in place, with
no allocation on the hot path and explicit errors when a message does
not fit.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// loadConfig reads the config file named by --config, just defaults and
// environment when the flag is empty.
func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

// newLogger builds the process logger from config, with the --log-level
// flag taking precedence.
func newLogger(cfg *config.Config) *logger.Logger {
	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	if cfg.Log.File != "" {
		return logger.NewRotatingFile(cfg.Log.File, cfg.Log.MaxSizeMB,
			cfg.Log.MaxBackups, cfg.Log.MaxAgeDays, logger.ParseLevel(level))
	}
	return logger.NewStderr(logger.ParseLevel(level))
}
