package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/moroboxai/game-sdk-go/internal/infra/confloader"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.File.Host != DefaultHost {
		t.Errorf("File.Host = %q, want %q", cfg.Server.File.Host, DefaultHost)
	}
	if cfg.Server.File.Port != 0 {
		t.Errorf("File.Port = %d, want ephemeral", cfg.Server.File.Port)
	}
	if cfg.Server.File.Root != "." {
		t.Errorf("File.Root = %q, want working directory", cfg.Server.File.Root)
	}
	if cfg.Server.Control.Enabled {
		t.Error("control server should be disabled by default")
	}
	if cfg.Metrics.Enabled {
		t.Error("metrics should be disabled by default")
	}
	if cfg.Server.ShutdownTimeout != DefaultShutdownTimeout {
		t.Errorf("ShutdownTimeout = %v", cfg.Server.ShutdownTimeout)
	}
	if err := Verify(cfg); err != nil {
		t.Errorf("Verify(Default()) error = %v", err)
	}
}

func TestToMap_RoundTrip(t *testing.T) {
	want := Default()
	want.Server.File.Port = 8080
	want.Server.File.CORSOrigins = []string{"*"}
	want.Server.Control.Enabled = true

	l := confloader.NewLoader()
	if err := l.LoadMap(want.ToMap()); err != nil {
		t.Fatal(err)
	}

	var got ServerConfig
	if err := l.Unmarshal(&got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if got.Server.File.Port != 8080 || !got.Server.Control.Enabled {
		t.Errorf("round trip lost values: %+v", got.Server)
	}
	if len(got.Server.File.CORSOrigins) != 1 || got.Server.File.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v", got.Server.File.CORSOrigins)
	}
	if got.Server.ShutdownTimeout != DefaultShutdownTimeout {
		t.Errorf("ShutdownTimeout = %v", got.Server.ShutdownTimeout)
	}
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("GAMESDK_SERVER_CONTROL_ENABLED", "true")
	t.Setenv("GAMESDK_SERVER_FILE_RATE_BURST", "5")
	t.Setenv("GAMESDK_SERVER_SHUTDOWN_TIMEOUT", "1s")

	l := confloader.NewLoader(confloader.WithDefaults(Default().ToMap()))

	var cfg ServerConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !cfg.Server.Control.Enabled {
		t.Error("Control.Enabled should come from env")
	}
	if cfg.Server.File.RateBurst != 5 {
		t.Errorf("RateBurst = %d, want 5", cfg.Server.File.RateBurst)
	}
	if cfg.Server.ShutdownTimeout != time.Second {
		t.Errorf("ShutdownTimeout = %v, want 1s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, default should survive", cfg.Log.Level)
	}
}

func TestVerify(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		mutate  func(*ServerConfig)
		wantErr string
	}{
		{"defaults", func(*ServerConfig) {}, ""},
		{"ipv6 loopback", func(c *ServerConfig) { c.Server.File.Host = "::1" }, ""},
		{"public host", func(c *ServerConfig) { c.Server.File.Host = "0.0.0.0" }, "not a loopback address"},
		{"hostname", func(c *ServerConfig) { c.Server.File.Host = "localhost" }, "not an IP address"},
		{"negative port", func(c *ServerConfig) { c.Server.File.Port = -1 }, "out of range"},
		{"port too large", func(c *ServerConfig) { c.Server.File.Port = 70000 }, "out of range"},
		{"missing root", func(c *ServerConfig) { c.Server.File.Root = "/nonexistent/game" }, "server.file.root"},
		{"root is file", func(c *ServerConfig) { c.Server.File.Root = file }, "is not a directory"},
		{"empty root", func(c *ServerConfig) { c.Server.File.Root = "" }, "server.file.root is required"},
		{"negative rate", func(c *ServerConfig) { c.Server.File.RateLimit = -1 }, "rate_limit must not be negative"},
		{"rate without burst", func(c *ServerConfig) {
			c.Server.File.RateLimit = 10
			c.Server.File.RateBurst = 0
		}, "rate_burst must be positive"},
		{"disabled control skips checks", func(c *ServerConfig) { c.Server.Control.Host = "10.0.0.1" }, ""},
		{"enabled control public", func(c *ServerConfig) {
			c.Server.Control.Enabled = true
			c.Server.Control.Host = "10.0.0.1"
		}, "server.control.host"},
		{"metrics bad addr", func(c *ServerConfig) {
			c.Metrics.Enabled = true
			c.Metrics.Addr = "9465"
		}, "metrics.addr"},
		{"metrics loopback", func(c *ServerConfig) {
			c.Metrics.Enabled = true
			c.Metrics.Addr = "127.0.0.1:0"
		}, ""},
		{"metrics public", func(c *ServerConfig) {
			c.Metrics.Enabled = true
			c.Metrics.Addr = "0.0.0.0:9465"
		}, "metrics.addr: 0.0.0.0 is not a loopback address"},
		{"metrics all interfaces", func(c *ServerConfig) {
			c.Metrics.Enabled = true
			c.Metrics.Addr = ":9465"
		}, "metrics.addr"},
		{"metrics port range", func(c *ServerConfig) {
			c.Metrics.Enabled = true
			c.Metrics.Addr = "127.0.0.1:70000"
		}, "out of range"},
		{"bad log level", func(c *ServerConfig) { c.Log.Level = "loud" }, "log.level"},
		{"bad log format", func(c *ServerConfig) { c.Log.Format = "xml" }, "log.format"},
		{"negative shutdown", func(c *ServerConfig) { c.Server.ShutdownTimeout = -time.Second }, "shutdown_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Server.File.Root = t.TempDir()
			tt.mutate(cfg)

			err := Verify(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Verify() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Verify() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestVerify_ReportsAll(t *testing.T) {
	cfg := Default()
	cfg.Server.File.Host = "0.0.0.0"
	cfg.Server.File.Port = -5
	cfg.Log.Level = "loud"

	err := Verify(cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"server.file.host", "server.file.port", "log.level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %s", err, want)
		}
	}
}
