package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter writes data as two-space indented JSON. Asset paths are
// left unescaped so that URLs stay readable.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
