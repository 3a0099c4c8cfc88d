// Package markup serializes abbreviation trees as formatted markup.
//
// The renderer walks a tree depth-first and, for every node, decides how
// the node participates in formatting: whether it sits on its own
// indented line, how deep that line is indented, and whether its inner
// content is expanded onto child lines. Inline-level nodes flow with
// their siblings unless the shape of the surrounding tree forces them
// apart. The decision rules live in format.go; attribute serialization
// lives in attrs.go.
//
// Rendering is a pure computation: the tree, the profile, and the field
// renderer are never mutated, and the same inputs always produce
// byte-identical output.
package markup

import (
	"strings"

	"github.com/matzehuels/markout/pkg/abbr"
	"github.com/matzehuels/markout/pkg/field"
	"github.com/matzehuels/markout/pkg/profile"
)

// FieldRenderer substitutes tab-stop placeholders in a raw text or
// attribute value. It must be total: any input string yields an output
// string. See the field package for ready-made implementations.
type FieldRenderer func(string) string

// Render serializes the tree rooted at root according to p.
//
// root is treated as a synthetic container: its children are emitted in
// document order and root itself produces no output. As a convenience, a
// root that carries its own name or value is rendered as a single node.
//
// A nil profile falls back to [profile.Default]; a nil fields renderer
// falls back to [field.Discard].
func Render(root *abbr.Node, p *profile.Profile, fields FieldRenderer) string {
	if root == nil {
		return ""
	}
	if p == nil {
		p = profile.Default()
	}
	if fields == nil {
		fields = field.Discard
	}

	r := &renderer{profile: p, fields: fields}

	nodes := root.Children()
	if root.Name != "" || root.Value != "" {
		// The root is a real node, not a synthetic container. It still
		// plays the container role for depth accounting so the same
		// subtree formats identically either way.
		nodes = []*abbr.Node{root}
		r.entry = root
	}
	if len(nodes) > 0 {
		r.first = nodes[0]
	}

	var out strings.Builder
	for _, n := range nodes {
		out.WriteString(r.renderNode(n))
	}
	return out.String()
}

// renderer carries the read-only render inputs through the walk.
type renderer struct {
	profile *profile.Profile
	fields  FieldRenderer

	// first is the very first node emitted by this render pass; it
	// never receives leading whitespace.
	first *abbr.Node
	// entry is set when a named or valued root is rendered directly.
	// It stands in for the synthetic container in depth accounting.
	entry *abbr.Node
}

// fragment is the assembled output of one node: the open and close tags,
// the optional text slot, and the whitespace computed by the format
// decision. Each whitespace slot is emitted only when the part it
// precedes exists, so an all-empty descriptor degrades to plain
// concatenation.
type fragment struct {
	descriptor

	open    string
	close   string
	text    string
	hasText bool
}

// assemble concatenates the fragment around its fully rendered children.
// Children carry their own leading whitespace, so they join by plain
// concatenation.
func (f *fragment) assemble(children string) string {
	var out strings.Builder
	if f.open != "" {
		out.WriteString(f.beforeOpen)
		out.WriteString(f.open)
	}
	if f.hasText {
		out.WriteString(f.beforeText)
		out.WriteString(f.text)
	}
	out.WriteString(children)
	if f.close != "" {
		out.WriteString(f.beforeClose)
		out.WriteString(f.close)
	}
	return out.String()
}

// renderNode produces the output fragment for n and its whole subtree.
// Children are rendered before the node's own assembly so that a parent
// always wraps fully rendered content.
func (r *renderer) renderNode(n *abbr.Node) string {
	frag := fragment{descriptor: r.format(n)}

	if n.Kind() == abbr.KindPseudoSnippet {
		// Pre-rendered literal substitute: the text slot is the node's
		// content and no tags are synthesized.
		frag.text = r.fields(n.Value)
		frag.hasText = true
	} else {
		if n.Name != "" {
			name := r.profile.Name(n.Name)
			open := "<" + name + r.renderAttributes(n)
			if n.SelfClosing {
				open += r.profile.SelfClose()
			} else {
				frag.close = "</" + name + ">"
			}
			frag.open = open + ">"
		}

		// The text slot renders for non-empty content, and also for an
		// empty leaf so that fields inside an otherwise-empty value are
		// not lost.
		if n.Value != "" || (n.ChildCount() == 0 && !n.SelfClosing) {
			frag.text = r.fields(n.Value)
			frag.hasText = true
		}
	}

	var children strings.Builder
	for _, c := range n.Children() {
		children.WriteString(r.renderNode(c))
	}

	return frag.assemble(children.String())
}
