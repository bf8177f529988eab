// Package main provides the entry point for gamesdk-server.
//
// gamesdk-server serves a game directory over loopback HTTP so a player,
// or the game in standalone mode, can fetch its assets. It can also open
// the control listener reserved for player-to-game messages.
//
// Usage:
//
//	gamesdk-server [flags]
//	gamesdk-server -config gamesdk.yaml
//	gamesdk-server -root ./game -port 8080
//
// Configuration is merged from defaults, the YAML file, GAMESDK_
// environment variables and flags. Changing log.level in the file takes
// effect without a restart.
package main
