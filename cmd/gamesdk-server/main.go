package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"

	"github.com/moroboxai/game-sdk-go/internal/infra/buildinfo"
	"github.com/moroboxai/game-sdk-go/internal/infra/confloader"
	"github.com/moroboxai/game-sdk-go/internal/infra/shutdown"
	"github.com/moroboxai/game-sdk-go/internal/server/config"
	"github.com/moroboxai/game-sdk-go/internal/server/controlserver"
	"github.com/moroboxai/game-sdk-go/internal/server/fileserver"
	"github.com/moroboxai/game-sdk-go/internal/server/httpserver"
	"github.com/moroboxai/game-sdk-go/internal/server/lifecycle"
	"github.com/moroboxai/game-sdk-go/internal/telemetry/logger"
	"github.com/moroboxai/game-sdk-go/internal/telemetry/metric"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, nil); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// options holds parsed command-line flags. Only flags the user set
// override configuration.
type options struct {
	configFile  string
	showVersion bool
	overrides   map[string]any
}

func parseFlags(args []string) (*options, error) {
	fs := flag.NewFlagSet("gamesdk-server", flag.ContinueOnError)

	opts := &options{overrides: make(map[string]any)}
	fs.StringVar(&opts.configFile, "config", "", "Path to configuration file")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	port := fs.Int("port", 0, "File server port (0 picks a free port)")
	root := fs.String("root", "", "Directory to serve")
	control := fs.Bool("control", false, "Enable the control listener")
	controlPort := fs.Int("control-port", 0, "Control listener port")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			opts.overrides["server.file.port"] = *port
		case "root":
			opts.overrides["server.file.root"] = *root
		case "control":
			opts.overrides["server.control.enabled"] = *control
		case "control-port":
			opts.overrides["server.control.port"] = *controlPort
		case "log-level":
			opts.overrides["log.level"] = *logLevel
		}
	})
	return opts, nil
}

// run starts the servers and blocks until shutdown. The file server URL is
// printed to stdout once it is ready. If started is non-nil it receives
// the shutdown handler after startup so callers can stop the process.
func run(args []string, stdout io.Writer, started chan<- *shutdown.Handler) (err error) {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "gamesdk-server %s\n", buildinfo.String())
		return nil
	}

	cfg, err := loadConfig(opts.configFile, opts.overrides)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	log.Info("starting gamesdk-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"sdk", buildinfo.Get().SDKVersion,
		"config", opts.configFile)

	var reg *metric.Registry
	if cfg.Metrics.Enabled {
		reg = metric.NewRegistry()
	}

	shutdownHandler := shutdown.NewHandler(cfg.Server.ShutdownTimeout)
	// A failed startup releases whatever was already started.
	defer func() {
		if err == nil {
			return
		}
		select {
		case <-shutdownHandler.Done():
			return
		default:
		}
		if serr := shutdownHandler.Shutdown(); serr != nil {
			log.Warn("cleanup after failed startup", "error", serr)
		}
	}()

	// Hooks run in reverse order: servers stop before metrics and the watcher.
	if opts.configFile != "" {
		stop, err := watchConfig(opts.configFile, opts.overrides, log)
		if err != nil {
			log.Warn("config watcher disabled", "error", err)
		} else {
			shutdownHandler.OnShutdown(func(ctx context.Context) error {
				return stop()
			})
		}
	}

	if reg != nil {
		stop, err := serveMetrics(cfg.Metrics.Addr, reg, log)
		if err != nil {
			return fmt.Errorf("start metrics: %w", err)
		}
		shutdownHandler.OnShutdown(stop)
	}

	if cfg.Server.Control.Enabled {
		control := controlserver.New(
			controlserver.WithHost(cfg.Server.Control.Host),
			controlserver.WithLogger(log),
			controlserver.WithMetrics(reg),
			controlserver.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		)
		if err := control.Listen(cfg.Server.Control.Port); err != nil {
			return fmt.Errorf("start control server: %w", err)
		}
		fmt.Fprintf(stdout, "control listening on %s\n", control.Addr())
		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			log.Info("shutting down control server")
			return control.Shutdown(ctx)
		})
	}

	files := fileserver.New(fileServerOptions(cfg, log, reg)...)
	files.Ready(func() {
		fmt.Fprintf(stdout, "serving %s at %s\n", cfg.Server.File.Root, files.Href(""))
	})
	if err := files.Listen(cfg.Server.File.Port); err != nil {
		var bindErr *lifecycle.BindError
		if errors.As(err, &bindErr) {
			return fmt.Errorf("file server cannot bind %s: %w", bindErr.Addr, bindErr.Err)
		}
		return fmt.Errorf("start file server: %w", err)
	}
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down file server")
		return files.Shutdown(ctx)
	})

	if started != nil {
		started <- shutdownHandler
	}

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

func fileServerOptions(cfg *config.ServerConfig, log *slog.Logger, reg *metric.Registry) []fileserver.Option {
	fc := cfg.Server.File

	opts := []fileserver.Option{
		fileserver.WithHost(fc.Host),
		fileserver.WithRoot(fc.Root),
		fileserver.WithLogger(log),
		fileserver.WithMetrics(reg),
		fileserver.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
	}

	var mw []httpserver.Middleware
	if len(fc.CORSOrigins) > 0 {
		mw = append(mw, httpserver.CORS(fc.CORSOrigins))
	}
	if fc.RateLimit > 0 {
		mw = append(mw, httpserver.RateLimit(fc.RateLimit, fc.RateBurst))
	}
	if len(mw) > 0 {
		opts = append(opts, fileserver.WithMiddleware(mw...))
	}
	return opts
}

// loadConfig merges defaults, file, environment and flag overrides, then
// validates the result.
func loadConfig(configFile string, overrides map[string]any) (*config.ServerConfig, error) {
	loader := confloader.NewLoader(
		confloader.WithDefaults(config.Default().ToMap()),
		confloader.WithConfigFile(configFile),
	)

	cfg := &config.ServerConfig{}
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if len(overrides) > 0 {
		if err := loader.LoadMap(overrides); err != nil {
			return nil, err
		}
		if err := loader.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("apply flags: %w", err)
		}
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func initLogger(cfg *config.ServerConfig) (*slog.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})
	if err != nil {
		return nil, err
	}

	slog.SetDefault(log)
	return log, nil
}

// watchConfig reloads the configuration file on change and applies the
// new log level. Other settings need a restart.
func watchConfig(path string, overrides map[string]any, log *slog.Logger) (func() error, error) {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		w.Stop()
		return nil, err
	}

	w.OnChange(func(string) {
		cfg, err := loadConfig(path, overrides)
		if err != nil {
			log.Warn("config reload rejected", "error", err)
			return
		}
		prev := logger.Level()
		if err := logger.SetLevel(cfg.Log.Level); err != nil {
			log.Warn("log level not applied", "error", err)
			return
		}
		if now := logger.Level(); now != prev {
			log.Info("log level changed", "from", prev, "to", now)
		}
	})
	w.StartAsync()

	return w.Stop, nil
}

// serveMetrics exposes reg on addr and returns a shutdown hook.
func serveMetrics(addr string, reg *metric.Registry, log *slog.Logger) (shutdown.Hook, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	srv := httpserver.New(reg.Handler())
	go func() {
		if err := srv.Serve(l); err != nil {
			log.Error("metrics server error", "error", err)
		}
	}()
	log.Info("metrics listening", "addr", l.Addr().String())

	return func(ctx context.Context) error {
		log.Info("shutting down metrics server")
		return srv.Shutdown(ctx)
	}, nil
}
