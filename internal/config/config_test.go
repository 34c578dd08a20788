package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.AcceptTimeout != 10*time.Second {
		t.Errorf("Server.AcceptTimeout = %v, want 10s", cfg.Server.AcceptTimeout)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 30s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.HandlerTimeout != 60*time.Second {
		t.Errorf("Server.HandlerTimeout = %v, want 60s", cfg.Server.HandlerTimeout)
	}
	if cfg.Server.RequestBufferSize != 4096 {
		t.Errorf("Server.RequestBufferSize = %d, want 4096", cfg.Server.RequestBufferSize)
	}
	if cfg.Client.UserAgent != "filament/1.0" {
		t.Errorf("Client.UserAgent = %q, want filament/1.0", cfg.Client.UserAgent)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filament.yaml")
	data := []byte(`
server:
  port: 9090
  read_timeout: 5s
  workers: 4
client:
  user_agent: test-agent/2.0
log:
  level: debug
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error = %v", path, err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 5s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.Workers != 4 {
		t.Errorf("Server.Workers = %d, want 4", cfg.Server.Workers)
	}
	if cfg.Server.HandlerTimeout != 60*time.Second {
		t.Errorf("Server.HandlerTimeout = %v, want default 60s", cfg.Server.HandlerTimeout)
	}
	if cfg.Client.UserAgent != "test-agent/2.0" {
		t.Errorf("Client.UserAgent = %q, want test-agent/2.0", cfg.Client.UserAgent)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() with missing file: expected error, got nil")
	}
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	bad := *cfg
	bad.Server.Port = 0
	if err := bad.Validate(); err == nil {
		t.Error("Validate() with zero port: expected error")
	}

	bad = *cfg
	bad.Server.RequestBufferSize = 0
	if err := bad.Validate(); err == nil {
		t.Error("Validate() with zero request buffer: expected error")
	}

	bad = *cfg
	bad.Server.Workers = 0
	if err := bad.Validate(); err == nil {
		t.Error("Validate() with zero workers: expected error")
	}
}
