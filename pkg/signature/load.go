package signature

import (
	"fmt"
	"os"
	"strings"

	"github.com/robertdigital/ml4ir/pkg/domain"
)

// Load reads and parses the signature document at path.
func Load(path string) ([]domain.FieldDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read signature %s: %w", path, err)
	}
	descs, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return descs, nil
}

// LoadArg accepts either a path to a signature file or an inline JSON
// document, as passed on a command line.
func LoadArg(arg string) ([]domain.FieldDescriptor, error) {
	if trimmed := strings.TrimSpace(arg); strings.HasPrefix(trimmed, "{") {
		return Parse([]byte(trimmed), FormatJSON)
	}
	return Load(arg)
}
