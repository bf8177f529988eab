package sdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidHeader is wrapped by every header validation failure.
var ErrInvalidHeader = errors.New("invalid game header")

// Header formats accepted by ParseHeader.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// GameHeader describes a game package. It is usually stored next to the
// game as header.yml.
type GameHeader struct {
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Boot        string  `json:"boot" yaml:"boot"`
	PreviewURL  string  `json:"previewUrl,omitempty" yaml:"previewUrl,omitempty"`
	Width       int     `json:"width" yaml:"width"`
	Height      int     `json:"height" yaml:"height"`
	Scale       float64 `json:"scale,omitempty" yaml:"scale,omitempty"`
}

// LoadHeader reads and validates a header file. The format follows the
// file extension; anything other than .json is read as YAML.
func LoadHeader(path string) (*GameHeader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	format := FormatYAML
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = FormatJSON
	}
	return ParseHeader(data, format)
}

// ParseHeader decodes and validates a header. A zero Scale defaults to 1.
func ParseHeader(data []byte, format string) (*GameHeader, error) {
	var h GameHeader

	switch format {
	case FormatYAML, "yml":
		if err := yaml.Unmarshal(data, &h); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &h); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
		}
	default:
		return nil, fmt.Errorf("unsupported header format %q", format)
	}

	if h.Scale == 0 {
		h.Scale = 1
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return &h, nil
}

// Validate checks the fields a player needs to boot the game.
func (h *GameHeader) Validate() error {
	var errs []error

	if strings.TrimSpace(h.Title) == "" {
		errs = append(errs, errors.New("title is required"))
	}
	if strings.TrimSpace(h.Boot) == "" {
		errs = append(errs, errors.New("boot is required"))
	}
	if h.Width <= 0 {
		errs = append(errs, fmt.Errorf("width must be positive, got %d", h.Width))
	}
	if h.Height <= 0 {
		errs = append(errs, fmt.Errorf("height must be positive, got %d", h.Height))
	}
	if h.Scale < 0 {
		errs = append(errs, fmt.Errorf("scale must not be negative, got %g", h.Scale))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidHeader, errors.Join(errs...))
	}
	return nil
}
