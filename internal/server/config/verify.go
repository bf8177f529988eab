package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
)

// Verify validates the configuration. All problems are reported together.
func Verify(cfg *ServerConfig) error {
	var errs []error
	errs = append(errs, verifyFile(&cfg.Server.File)...)
	errs = append(errs, verifyControl(&cfg.Server.Control)...)
	errs = append(errs, verifyMetrics(&cfg.Metrics)...)
	errs = append(errs, verifyLog(&cfg.Log)...)

	if cfg.Server.ShutdownTimeout < 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must not be negative"))
	}
	return errors.Join(errs...)
}

func verifyFile(cfg *FileConfig) []error {
	var errs []error

	if err := verifyLoopback("server.file.host", cfg.Host); err != nil {
		errs = append(errs, err)
	}
	if err := verifyPort("server.file.port", cfg.Port); err != nil {
		errs = append(errs, err)
	}

	if cfg.Root == "" {
		errs = append(errs, errors.New("server.file.root is required"))
	} else if info, err := os.Stat(cfg.Root); err != nil {
		errs = append(errs, fmt.Errorf("server.file.root: %w", err))
	} else if !info.IsDir() {
		errs = append(errs, fmt.Errorf("server.file.root: %s is not a directory", cfg.Root))
	}

	if cfg.RateLimit < 0 {
		errs = append(errs, errors.New("server.file.rate_limit must not be negative"))
	}
	if cfg.RateBurst < 0 {
		errs = append(errs, errors.New("server.file.rate_burst must not be negative"))
	}
	if cfg.RateLimit > 0 && cfg.RateBurst == 0 {
		errs = append(errs, errors.New("server.file.rate_burst must be positive when rate_limit is set"))
	}
	return errs
}

func verifyControl(cfg *ControlConfig) []error {
	if !cfg.Enabled {
		return nil
	}

	var errs []error
	if err := verifyLoopback("server.control.host", cfg.Host); err != nil {
		errs = append(errs, err)
	}
	if err := verifyPort("server.control.port", cfg.Port); err != nil {
		errs = append(errs, err)
	}
	return errs
}

func verifyMetrics(cfg *MetricsSection) []error {
	if !cfg.Enabled {
		return nil
	}
	host, portStr, err := net.SplitHostPort(cfg.Addr)
	if err != nil {
		return []error{fmt.Errorf("metrics.addr: %w", err)}
	}

	var errs []error
	if err := verifyLoopback("metrics.addr", host); err != nil {
		errs = append(errs, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		errs = append(errs, fmt.Errorf("metrics.addr: invalid port %q", portStr))
	} else if err := verifyPort("metrics.addr", port); err != nil {
		errs = append(errs, err)
	}
	return errs
}

func verifyLog(cfg *LogSection) []error {
	var errs []error
	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", cfg.Level))
	}
	switch strings.ToLower(cfg.Format) {
	case "json", "text", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", cfg.Format))
	}
	return errs
}

// verifyLoopback rejects anything but a literal loopback IP. The servers
// have no authentication and must never be reachable off-host.
func verifyLoopback(key, host string) error {
	ip := net.ParseIP(host)
	if ip == nil {
		return fmt.Errorf("%s: %q is not an IP address", key, host)
	}
	if !ip.IsLoopback() {
		return fmt.Errorf("%s: %s is not a loopback address", key, host)
	}
	return nil
}

func verifyPort(key string, port int) error {
	if port < 0 || port > 65535 {
		return fmt.Errorf("%s: %d out of range 0..65535", key, port)
	}
	return nil
}
