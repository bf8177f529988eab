// Package httpserver provides the HTTP plumbing shared by the local servers.
//
// It uses the standard library net/http for serving and adds:
//
//   - Server: a thin http.Server wrapper that serves on an already-bound
//     listener so the caller controls binding and readiness
//   - Middleware chain: RequestID, Recover, Audit, CORS, RateLimit, Metrics
//
// Middleware is applied with Chain; the first middleware in the list is
// the outermost.
package httpserver
