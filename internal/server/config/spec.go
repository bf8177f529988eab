package config

import "time"

// ServerConfig is the root configuration for gamesdk-server.
type ServerConfig struct {
	Server  ServerSection  `koanf:"server"`
	Metrics MetricsSection `koanf:"metrics"`
	Log     LogSection     `koanf:"log"`
}

// ServerSection configures the local servers.
type ServerSection struct {
	File    FileConfig    `koanf:"file"`
	Control ControlConfig `koanf:"control"`

	// ShutdownTimeout bounds the drain of in-flight requests on exit.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// FileConfig configures the asset file server.
type FileConfig struct {
	Host string `koanf:"host"`
	// Port 0 selects an ephemeral port.
	Port int    `koanf:"port"`
	Root string `koanf:"root"`

	// CORSOrigins lists origins allowed to fetch assets. "*" allows any.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimit is requests per second per client; 0 disables limiting.
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`
}

// ControlConfig configures the control listener.
type ControlConfig struct {
	Enabled bool   `koanf:"enabled"`
	Host    string `koanf:"host"`
	Port    int    `koanf:"port"`
}

// MetricsSection configures the Prometheus endpoint.
type MetricsSection struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
