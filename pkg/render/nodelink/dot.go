// Package nodelink renders abbreviation trees as Graphviz node-link
// diagrams. It exists for debugging and documentation: the markup
// renderer's formatting decisions depend on tree shape (siblings,
// text-only parents, pseudo-snippets), and a picture of the tree makes
// those decisions much easier to reason about.
package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/markout/pkg/abbr"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed includes attributes and content excerpts in node labels.
	// When false, only the tag name or a text marker is shown.
	Detailed bool
}

// ToDOT converts an abbreviation tree to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG].
//
// Text-only nodes are drawn with dashed outlines and grey fill;
// pseudo-snippets additionally carry a "snippet" tag in their label.
func ToDOT(tree *abbr.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph T {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	if tree != nil {
		writeNode(&buf, tree, "/", opts)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeNode(buf *bytes.Buffer, n *abbr.Node, id string, opts Options) {
	label := fmtLabel(n, opts.Detailed)
	attrs := fmtAttrs(n, label)
	fmt.Fprintf(buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))

	for i, c := range n.Children() {
		childID := fmt.Sprintf("%s%d", id, i)
		if id != "/" {
			childID = fmt.Sprintf("%s/%d", id, i)
		}
		writeNode(buf, c, childID, opts)
		fmt.Fprintf(buf, "  %q -> %q;\n", id, childID)
	}
}

func fmtLabel(n *abbr.Node, detailed bool) string {
	base := "#root"
	switch {
	case n.Kind() == abbr.KindPseudoSnippet:
		base = "#snippet"
	case n.TextOnly:
		base = "#text"
	case n.Name != "":
		base = "<" + n.Name + ">"
	case !n.IsRoot():
		base = "#group"
	}

	if !detailed {
		return base
	}

	var parts []string
	if n.Value != "" {
		parts = append(parts, fmt.Sprintf("value: %s", excerpt(n.Value)))
	}
	for _, a := range n.Attributes {
		switch {
		case a.HasValue:
			parts = append(parts, fmt.Sprintf("%s=%s", a.Name, excerpt(a.Value)))
		case a.Implied:
			parts = append(parts, a.Name+" (implied)")
		default:
			parts = append(parts, a.Name)
		}
	}
	if n.SelfClosing {
		parts = append(parts, "self-closing")
	}

	if len(parts) == 0 {
		return base
	}
	return base + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n *abbr.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.TextOnly {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// excerpt shortens a value for display inside a node label.
func excerpt(s string) string {
	const max = 24
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > max {
		return s[:max-1] + "…"
	}
	return s
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
