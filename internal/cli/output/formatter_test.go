package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type header struct {
	Title  string  `json:"title" yaml:"title"`
	Width  int     `json:"width" yaml:"width"`
	Scale  float64 `json:"scale" yaml:"scale"`
	Secret string  `json:"-" yaml:"-"`
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(string(f))
		if err != nil || got != f {
			t.Errorf("ParseFormat(%q) = %q, %v", f, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatJSON, "*output.JSONFormatter"},
		{FormatYAML, "*output.YAMLFormatter"},
		{FormatTable, "*output.TableFormatter"},
		{"unknown", "*output.TableFormatter"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			got := fmt.Sprintf("%T", NewFormatter(tt.format))
			if got != tt.want {
				t.Errorf("NewFormatter(%q) = %s, want %s", tt.format, got, tt.want)
			}
		})
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).Format(&buf, header{Title: "Pong", Width: 256, Scale: 2, Secret: "x"}); err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got["title"] != "Pong" {
		t.Errorf("title = %v", got["title"])
	}
	if _, ok := got["Secret"]; ok {
		t.Error("json:\"-\" field should be omitted")
	}
	if !strings.Contains(buf.String(), "\n  \"title\"") {
		t.Errorf("JSON should be indented:\n%s", buf.String())
	}
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&YAMLFormatter{}).Format(&buf, header{Title: "Pong", Width: 256, Scale: 2}); err != nil {
		t.Fatal(err)
	}

	var got header
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if got.Title != "Pong" || got.Width != 256 || got.Scale != 2 {
		t.Errorf("decoded = %+v", got)
	}
	if !strings.HasPrefix(buf.String(), "title: Pong\n") {
		t.Errorf("YAML output =\n%s", buf.String())
	}
}
