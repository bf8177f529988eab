// Package buildinfo exposes build information injected via ldflags:
//
//   - Version: release version of the binaries
//   - Commit: Git commit hash
//   - BuildTime: Build timestamp
//
// The Go toolchain version and the game contract version are filled in
// at runtime.
//
// Usage:
//
//	go build -ldflags "-X github.com/moroboxai/game-sdk-go/internal/infra/buildinfo.Version=v0.3.0"
package buildinfo
