package tree

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// DecodeYAML parses a tree document from YAML bytes.
//
// The document shape matches DecodeJSON: a node is a mapping with a
// required value and optional left/right submappings; an empty document or
// an explicit null is the empty tree. Unknown fields are rejected.
func DecodeYAML(b []byte) (*Tree, error) {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	var doc *treeDoc
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parse tree yaml: %w", err)
	}
	// A second YAML document would make the file ambiguous.
	var trailing any
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		if err == nil {
			return nil, fmt.Errorf("parse tree yaml: trailing document")
		}
		return nil, fmt.Errorf("parse tree yaml: %w", err)
	}
	t, err := doc.toTree()
	if err != nil {
		return nil, fmt.Errorf("parse tree yaml: %w", err)
	}
	return t, nil
}
