// Package command defines the gamesdk command-line tool.
//
// Commands are built with urfave/cli/v2:
//
//   - header.go: validate and show game headers
//   - fetch.go: download an asset from a running file server
//   - ping.go: check that a control server accepts connections
//   - config.go: validate and show gamesdk-server configuration
//   - root.go: application, global flags and version
//
// Results are written to the app writer through internal/cli/output so
// every command honours the global -o flag.
package command
