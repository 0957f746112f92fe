package tree

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// TreeHash is the deterministic identity of a tree.
//
// It is computed solely from structure and values (sha256 over the
// canonical JSON bytes) and MUST be stable regardless of how the tree was
// constructed. Two trees are Equal iff their hashes match.
type TreeHash string

// String returns the string representation of the TreeHash.
func (h TreeHash) String() string { return string(h) }

// CanonicalJSON returns the canonical JSON encoding of t.
//
// Canonical rules:
//   - The empty tree encodes as the literal null.
//   - A node encodes as an object with fields in the fixed order
//     value, left, right.
//   - Empty subtrees are omitted, never encoded as null fields.
//
// These bytes are the input to Hash; byte-for-byte stability is required.
func CanonicalJSON(t *Tree) []byte {
	var buf bytes.Buffer
	writeCanonical(&buf, t)
	return buf.Bytes()
}

func writeCanonical(buf *bytes.Buffer, t *Tree) {
	if t == nil {
		buf.WriteString("null")
		return
	}
	buf.WriteString(`{"value":`)
	buf.WriteString(strconv.FormatInt(t.Value, 10))
	if t.Left != nil {
		buf.WriteString(`,"left":`)
		writeCanonical(buf, t.Left)
	}
	if t.Right != nil {
		buf.WriteString(`,"right":`)
		writeCanonical(buf, t.Right)
	}
	buf.WriteByte('}')
}

// Hash returns the deterministic tree hash (sha256 hex of the canonical bytes).
func Hash(t *Tree) TreeHash {
	sum := sha256.Sum256(CanonicalJSON(t))
	return TreeHash(hex.EncodeToString(sum[:]))
}

// treeDoc is the on-disk document shape shared by the JSON and YAML loaders.
//
// Value is a pointer so that a node object missing its value is detected
// rather than silently defaulting to zero.
type treeDoc struct {
	Value *int64   `json:"value" yaml:"value"`
	Left  *treeDoc `json:"left" yaml:"left"`
	Right *treeDoc `json:"right" yaml:"right"`
}

func (d *treeDoc) toTree() (*Tree, error) {
	if d == nil {
		return nil, nil
	}
	if d.Value == nil {
		return nil, fmt.Errorf("node is missing required field %q", "value")
	}
	left, err := d.Left.toTree()
	if err != nil {
		return nil, err
	}
	right, err := d.Right.toTree()
	if err != nil {
		return nil, err
	}
	return &Tree{Left: left, Value: *d.Value, Right: right}, nil
}

// DecodeJSON parses a tree document from JSON bytes.
//
// The decoder is deterministic and strict:
//   - Unknown fields are rejected (to avoid silent divergence).
//   - Trailing data after the document is rejected.
//   - The literal null is the empty tree.
func DecodeJSON(b []byte) (*Tree, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	var doc *treeDoc
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse tree json: %w", err)
	}
	// Ensure there is no trailing garbage (including a second JSON value).
	var trailing any
	if err := dec.Decode(&trailing); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse tree json: trailing data")
		}
		return nil, fmt.Errorf("parse tree json: %w", err)
	}
	t, err := doc.toTree()
	if err != nil {
		return nil, fmt.Errorf("parse tree json: %w", err)
	}
	return t, nil
}
