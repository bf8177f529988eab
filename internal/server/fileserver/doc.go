// Package fileserver serves game assets over HTTP on loopback.
//
// A game running under a test harness fetches its own assets by URL.
// The Server binds 127.0.0.1 on a chosen or ephemeral port and maps
// each request path onto a root directory:
//
//   - GET /<path> returns the bytes of <root>/<path> with status 200
//   - anything that is not a readable regular file returns 404 with an
//     empty body
//
// There is no directory listing and there are no caching headers.
// A custom http.Handler can replace the file route entirely.
//
// Lifecycle:
//
//	srv := fileserver.New(fileserver.WithRoot("./game"))
//	srv.Ready(func() { fmt.Println(srv.Href("header.yml")) })
//	if err := srv.Listen(0); err != nil { ... }
//	srv.Close(func(err error) { ... })
package fileserver
