package signature

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is the encoding of a signature document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Formats lists the supported formats in lookup order.
var Formats = []Format{FormatYAML, FormatJSON, FormatTOML}

// ParseFormat converts a format name. An empty name means YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported signature format %q", s)
	}
}

// FormatFromPath picks the format from the file extension, defaulting to YAML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatYAML
	}
}

// Extensions returns the file extensions used for f.
func (f Format) Extensions() []string {
	switch f {
	case FormatJSON:
		return []string{".json"}
	case FormatTOML:
		return []string{".toml"}
	default:
		return []string{".yaml", ".yml"}
	}
}

func (f Format) String() string { return string(f) }
