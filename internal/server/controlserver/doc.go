// Package controlserver provides a bare loopback TCP listener reserved
// for a future player-to-game control channel.
//
// It shares the listen/ready/close lifecycle of the file server but has
// no protocol: connections are accepted, their input is discarded, and
// they stay open until the peer hangs up or the server shuts down.
package controlserver
