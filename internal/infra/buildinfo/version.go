package buildinfo

import (
	"fmt"
	"runtime"

	"github.com/moroboxai/game-sdk-go/pkg/sdk"
)

// Build-time variables (set via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Info contains build information.
type Info struct {
	Version    string `json:"version" yaml:"version"`
	Commit     string `json:"commit" yaml:"commit"`
	BuildTime  string `json:"build_time" yaml:"build_time"`
	GoVersion  string `json:"go_version" yaml:"go_version"`
	SDKVersion string `json:"sdk_version" yaml:"sdk_version"`
}

// Get returns the build information.
func Get() Info {
	return Info{
		Version:    Version,
		Commit:     Commit,
		BuildTime:  BuildTime,
		GoVersion:  runtime.Version(),
		SDKVersion: sdk.Version,
	}
}

// String returns a one-line version string.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s, sdk: %s)", Version, Commit, BuildTime, sdk.Version)
}
