// Package sdk defines the contract between a game and the player that
// hosts it.
//
// A game exports a BootFunc. The player calls it with BootOptions once its
// asset server is ready, then drives the returned Game through Play,
// Pause, Stop and one Tick per frame. Games fetch their assets through
// the Player, which resolves names against a loopback file server.
//
// Standalone provides a Player for running and testing a game without
// the hosting application: it serves the working directory on an
// ephemeral port of 127.0.0.1.
//
// The contract has been revised several times; CHANGELOG.md records how
// the earlier revisions map onto the current one.
package sdk
