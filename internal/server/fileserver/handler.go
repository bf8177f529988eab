package fileserver

import (
	"io"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
)

// FileHandler returns the default route: it serves regular files below
// root and answers everything else with an empty 404.
func FileHandler(root string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL == nil {
			notFound(w)
			return
		}

		data, name, ok := readRegularFile(root, r.URL.Path)
		if !ok {
			notFound(w)
			return
		}

		if ctype := mime.TypeByExtension(filepath.Ext(name)); ctype != "" {
			w.Header().Set("Content-Type", ctype)
		}
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.Write(data)
	})
}

// Resolve maps a URL path onto a filesystem path below root. The path is
// cleaned as if rooted, so ".." segments cannot leave root.
func Resolve(root, urlPath string) string {
	if root == "" {
		root = "."
	}
	cleaned := path.Clean("/" + urlPath)
	return filepath.Join(root, filepath.FromSlash(cleaned))
}

// readRegularFile reads the whole file behind urlPath. ok is false when
// the path does not exist, is not a regular file, cannot be read, or
// resolves outside root through a symlink.
func readRegularFile(root, urlPath string) (data []byte, name string, ok bool) {
	if root == "" {
		root = "."
	}
	name = Resolve(root, urlPath)

	rel := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if rel == "" {
		rel = "."
	}
	f, err := os.OpenInRoot(root, filepath.FromSlash(rel))
	if err != nil {
		return nil, name, false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return nil, name, false
	}

	data, err = io.ReadAll(f)
	if err != nil {
		return nil, name, false
	}
	return data, name, true
}

func notFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
}
