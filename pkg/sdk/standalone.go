package sdk

import (
	"context"
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/moroboxai/game-sdk-go/internal/server/fileserver"
	"github.com/moroboxai/game-sdk-go/internal/telemetry/metric"
)

// ErrNotReady is returned when assets are requested from a player that is
// not serving.
var ErrNotReady = errors.New("player not ready")

// StandaloneOptions configures NewStandalone. The zero value serves the
// working directory on an ephemeral port.
type StandaloneOptions struct {
	Root   string
	Port   int
	Logger *slog.Logger

	// Metrics, if set, receives the gamesdk_* file server metrics. The
	// caller exposes the registry.
	Metrics prometheus.Registerer
}

// Standalone is a Player that serves assets itself, for running a game
// outside the hosting application.
type Standalone struct {
	server *fileserver.Server
	client *AssetClient
}

var _ Player = (*Standalone)(nil)

// NewStandalone starts a file server on 127.0.0.1 and returns a Player
// bound to it.
func NewStandalone(opts StandaloneOptions) (*Standalone, error) {
	fopts := []fileserver.Option{}
	if opts.Root != "" {
		fopts = append(fopts, fileserver.WithRoot(opts.Root))
	}
	if opts.Logger != nil {
		fopts = append(fopts, fileserver.WithLogger(opts.Logger))
	}
	if opts.Metrics != nil {
		reg, err := metric.Register(opts.Metrics)
		if err != nil {
			return nil, err
		}
		fopts = append(fopts, fileserver.WithMetrics(reg))
	}

	srv := fileserver.New(fopts...)
	if err := srv.Listen(opts.Port); err != nil {
		return nil, err
	}

	return &Standalone{
		server: srv,
		client: NewAssetClient(srv.Href("")),
	}, nil
}

// Version returns the contract version.
func (s *Standalone) Version() string {
	return Version
}

// Href implements Player.
func (s *Standalone) Href(path string) string {
	return s.server.Href(path)
}

// Get implements Player.
func (s *Standalone) Get(ctx context.Context, path string) ([]byte, error) {
	if !s.server.IsReady() {
		return nil, ErrNotReady
	}
	return s.client.Get(ctx, path)
}

// Ready implements Player.
func (s *Standalone) Ready(cb func()) {
	s.server.Ready(cb)
}

// Close stops the file server.
func (s *Standalone) Close(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
