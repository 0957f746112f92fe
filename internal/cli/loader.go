package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"treeproof/internal/tree"
)

// LoadTreeFromFile reads and parses the tree document at path.
//
// The format is chosen by extension: .yaml/.yml parse as YAML, everything
// else as JSON. Both loaders are deterministic: unknown fields and trailing
// data are rejected, and no environment is consulted.
func LoadTreeFromFile(path string) (*tree.Tree, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tree: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return tree.DecodeYAML(b)
	default:
		return tree.DecodeJSON(b)
	}
}
