// Package connection dials the gamesdk control server from the CLI.
package connection
