// Package confloader loads layered configuration with koanf.
//
// Sources are merged in increasing priority:
//
//  1. Defaults supplied with WithDefaults
//  2. The YAML configuration file
//  3. Environment variables (GAMESDK_ prefix by default)
//  4. Command-line flags, applied with LoadMap
//
// Environment names are matched against known keys, so
// GAMESDK_SERVER_FILE_RATE_LIMIT sets server.file.rate_limit. Known list
// keys accept comma-separated values.
//
// Watcher reports changes to the configuration file so long-running
// processes can re-read it.
package confloader
