package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/markout/pkg/abbr"
)

// WriteJSON encodes a tree as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip
// processing. WriteJSON does not close w.
func WriteJSON(tree *abbr.Node, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toWire(tree)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes the tree to a JSON file at path, creating or
// truncating it.
func ExportJSON(tree *abbr.Node, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteJSON(tree, f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func toWire(n *abbr.Node) node {
	wire := node{
		Name:        n.Name,
		Value:       n.Value,
		SelfClosing: n.SelfClosing,
		TextOnly:    n.TextOnly,
	}

	for _, a := range n.Attributes {
		attr := attribute{Name: a.Name, Implied: a.Implied, Boolean: a.Boolean}
		if a.HasValue {
			v := a.Value
			attr.Value = &v
		}
		wire.Attributes = append(wire.Attributes, attr)
	}

	for _, c := range n.Children() {
		wire.Children = append(wire.Children, toWire(c))
	}

	return wire
}
