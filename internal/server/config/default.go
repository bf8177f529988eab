package config

import "time"

// Default configuration values.
const (
	DefaultHost            = "127.0.0.1"
	DefaultFilePort        = 0
	DefaultFileRoot        = "."
	DefaultRateBurst       = 20
	DefaultControlPort     = 0
	DefaultShutdownTimeout = 5 * time.Second

	DefaultMetricsAddr = "127.0.0.1:9465"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			File: FileConfig{
				Host:        DefaultHost,
				Port:        DefaultFilePort,
				Root:        DefaultFileRoot,
				CORSOrigins: []string{},
				RateBurst:   DefaultRateBurst,
			},
			Control: ControlConfig{
				Enabled: false,
				Host:    DefaultHost,
				Port:    DefaultControlPort,
			},
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Metrics: MetricsSection{
			Enabled: false,
			Addr:    DefaultMetricsAddr,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// ToMap flattens cfg into dotted koanf keys.
func (c *ServerConfig) ToMap() map[string]any {
	return map[string]any{
		"server.file.host":         c.Server.File.Host,
		"server.file.port":         c.Server.File.Port,
		"server.file.root":         c.Server.File.Root,
		"server.file.cors_origins": append([]string{}, c.Server.File.CORSOrigins...),
		"server.file.rate_limit":   c.Server.File.RateLimit,
		"server.file.rate_burst":   c.Server.File.RateBurst,
		"server.control.enabled":   c.Server.Control.Enabled,
		"server.control.host":      c.Server.Control.Host,
		"server.control.port":      c.Server.Control.Port,
		"server.shutdown_timeout":  c.Server.ShutdownTimeout,
		"metrics.enabled":          c.Metrics.Enabled,
		"metrics.addr":             c.Metrics.Addr,
		"log.level":                c.Log.Level,
		"log.format":               c.Log.Format,
	}
}
