// Package lifecycle tracks the listen/ready/close state shared by the
// local servers.
//
// A Readiness value starts not ready. It becomes ready once the owning
// server has bound its listener and stays ready until the server is
// closed. Closing is terminal: a closed Readiness never becomes ready
// again and silently drops callbacks registered afterwards.
//
// Two notification styles are offered:
//
//   - OnReady: a single callback slot. Registering again before the
//     server is ready replaces the pending callback. Registering after
//     the server is ready runs the callback immediately on the caller's
//     goroutine.
//   - Done / Wait: a broadcast channel that any number of goroutines can
//     wait on.
package lifecycle
