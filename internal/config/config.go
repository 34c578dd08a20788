// Package config loads the filament binary's configuration from a YAML
// file and FILAMENT_* environment variables, with defaults matching the
// engine defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig configures the serve command.
type ServerConfig struct {
	Port               uint16        `mapstructure:"port"`
	AcceptTimeout      time.Duration `mapstructure:"accept_timeout"`
	ReadTimeout        time.Duration `mapstructure:"read_timeout"`
	HandlerTimeout     time.Duration `mapstructure:"handler_timeout"`
	RequestBufferSize  int           `mapstructure:"request_buffer_size"`
	ResponseBufferSize int           `mapstructure:"response_buffer_size"`
	Workers            int           `mapstructure:"workers"`
	MetricsAddr        string        `mapstructure:"metrics_addr"`
}

// ClientConfig configures the fetch command.
type ClientConfig struct {
	DialTimeout    time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	SendBufferSize int           `mapstructure:"send_buffer_size"`
	RecvBufferSize int           `mapstructure:"recv_buffer_size"`
	UserAgent      string        `mapstructure:"user_agent"`
	DisableRetry   bool          `mapstructure:"disable_retry"`
	DisableTLS     bool          `mapstructure:"disable_tls"`
	TLSSkipVerify  bool          `mapstructure:"tls_skip_verify"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Config is the root configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Client ClientConfig `mapstructure:"client"`
	Log    LogConfig    `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.accept_timeout", 10*time.Second)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.handler_timeout", 60*time.Second)
	v.SetDefault("server.request_buffer_size", 4096)
	v.SetDefault("server.response_buffer_size", 4096)
	v.SetDefault("server.workers", 1)
	v.SetDefault("server.metrics_addr", "")

	v.SetDefault("client.dial_timeout", 10*time.Second)
	v.SetDefault("client.read_timeout", 30*time.Second)
	v.SetDefault("client.write_timeout", 30*time.Second)
	v.SetDefault("client.send_buffer_size", 4096)
	v.SetDefault("client.recv_buffer_size", 4096)
	v.SetDefault("client.user_agent", "filament/1.0")
	v.SetDefault("client.disable_retry", false)
	v.SetDefault("client.disable_tls", false)
	v.SetDefault("client.tls_skip_verify", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
}

// Load reads configuration from path. An empty path loads defaults and
// environment variables only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("FILAMENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the engines would refuse.
func (c *Config) Validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("config: server.port must be nonzero")
	}
	if c.Server.RequestBufferSize <= 0 || c.Server.ResponseBufferSize <= 0 {
		return fmt.Errorf("config: server buffer sizes must be positive")
	}
	if c.Server.Workers <= 0 {
		return fmt.Errorf("config: server.workers must be positive")
	}
	if c.Client.SendBufferSize <= 0 || c.Client.RecvBufferSize <= 0 {
		return fmt.Errorf("config: client buffer sizes must be positive")
	}
	return nil
}
