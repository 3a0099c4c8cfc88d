package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/markout/pkg/abbr"
)

// node is the wire form of one abbreviation tree node.
type node struct {
	Name        string      `json:"name,omitempty"`
	Value       string      `json:"value,omitempty"`
	Attributes  []attribute `json:"attributes,omitempty"`
	SelfClosing bool        `json:"selfClosing,omitempty"`
	TextOnly    bool        `json:"textOnly,omitempty"`
	Children    []node      `json:"children,omitempty"`
}

// attribute is the wire form of one attribute. A null or absent value
// means "no explicit value", which is distinct from an empty string for
// implied and boolean attributes.
type attribute struct {
	Name    string  `json:"name"`
	Value   *string `json:"value,omitempty"`
	Implied bool    `json:"implied,omitempty"`
	Boolean bool    `json:"boolean,omitempty"`
}

// ReadJSON decodes an abbreviation tree from r.
//
// The top-level JSON object becomes the synthetic root node. ReadJSON
// returns an error if the JSON is malformed; it performs no semantic
// validation of the tree beyond its shape, matching the renderer's
// contract that tree construction is responsible for consistency.
//
// Errors are wrapped with the path of the offending node (child indices
// from the root, e.g. "node /0/2").
func ReadJSON(r io.Reader) (*abbr.Node, error) {
	var doc node
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return buildNode(doc, "/")
}

// ImportJSON reads a JSON file at path and returns the decoded tree.
func ImportJSON(path string) (*abbr.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

func buildNode(wire node, path string) (*abbr.Node, error) {
	n := &abbr.Node{
		Name:        wire.Name,
		Value:       wire.Value,
		SelfClosing: wire.SelfClosing,
		TextOnly:    wire.TextOnly,
	}

	for _, a := range wire.Attributes {
		if a.Name == "" {
			return nil, fmt.Errorf("node %s: attribute without a name", path)
		}
		attr := abbr.Attribute{Name: a.Name, Implied: a.Implied, Boolean: a.Boolean}
		if a.Value != nil {
			attr.Value = *a.Value
			attr.HasValue = true
		}
		n.Attributes = append(n.Attributes, attr)
	}

	for i, c := range wire.Children {
		childPath := fmt.Sprintf("%s%d", path, i)
		if path != "/" {
			childPath = fmt.Sprintf("%s/%d", path, i)
		}
		child, err := buildNode(c, childPath)
		if err != nil {
			return nil, err
		}
		if err := n.Append(child); err != nil {
			return nil, fmt.Errorf("node %s: %w", childPath, err)
		}
	}

	return n, nil
}
