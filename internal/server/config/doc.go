// Package config defines the gamesdk-server configuration.
//
//   - spec.go: ServerConfig structure
//   - default.go: default values and their flat key form
//   - verify.go: validation before servers start
//
// Values are loaded through internal/infra/confloader from defaults, a
// YAML file, GAMESDK_ environment variables and flags.
package config
