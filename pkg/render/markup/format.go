package markup

import (
	"github.com/matzehuels/markout/pkg/abbr"
	"github.com/matzehuels/markout/pkg/field"
)

// descriptor holds the whitespace fragments that place one node in the
// formatted output. The zero value means "not formatted": the node flows
// inline with its neighbors.
type descriptor struct {
	indent  string
	newline string

	beforeOpen  string
	beforeText  string
	beforeClose string
}

// format computes the formatting descriptor for n.
func (r *renderer) format(n *abbr.Node) descriptor {
	var d descriptor
	if !r.shouldFormat(n) {
		return d
	}

	d.indent = r.profile.IndentFor(r.indentLevel(n))
	d.newline = "\n"
	prefix := d.newline + d.indent

	// The very first node of the tree has nothing preceding it, so it
	// never receives leading whitespace.
	if n != r.first {
		d.beforeOpen = prefix
		if n.TextOnly {
			d.beforeText = prefix
		}
	}

	if r.hasInnerFormatting(n) {
		if !n.TextOnly {
			d.beforeText = prefix + r.profile.IndentFor(1)
		}
		d.beforeClose = prefix
	}

	return d
}

// shouldFormat decides whether n occupies its own formatted line.
func (r *renderer) shouldFormat(n *abbr.Node) bool {
	if !r.profile.Format {
		return false
	}

	// A sole structural child of a text-only parent whose value embeds a
	// field stays unformatted: the field marks where the child belongs,
	// and a line break would detach them visually.
	if p := n.Parent(); p != nil && p.TextOnly && p.ChildCount() == 1 && field.Contains(p.Value) {
		return false
	}

	if r.profile.IsInline(n) {
		return r.shouldFormatInline(n)
	}
	return true
}

// shouldFormatInline decides whether an inline-level node is forced onto
// its own line. Inline nodes normally flow with their siblings; they
// break only at an inline/block boundary or when enough inline siblings
// pile up to cross the profile's inline-break threshold.
func (r *renderer) shouldFormatInline(n *abbr.Node) bool {
	if n.Kind() == abbr.KindPseudoSnippet {
		return true
	}

	if n.ChildIndex() == 0 {
		// First child: break if any later sibling is block-level.
		for next := n.NextSibling(); next != nil; next = next.NextSibling() {
			if !r.profile.IsInline(next) {
				return true
			}
		}
	} else if prev := n.PreviousSibling(); prev != nil && !r.profile.IsInline(prev) {
		// Right after a block-level sibling.
		return true
	}

	if threshold := r.profile.InlineBreak; threshold > 0 {
		adjacent := 1
		for prev := n.PreviousSibling(); prev != nil && r.profile.IsInline(prev); prev = prev.PreviousSibling() {
			adjacent++
		}
		for next := n.NextSibling(); next != nil && r.profile.IsInline(next); next = next.NextSibling() {
			adjacent++
		}
		if adjacent >= threshold {
			return true
		}
	}

	return false
}

// indentLevel computes the indentation depth of n: its nesting level,
// minus one for every ancestor in the profile's format-skip set, minus
// one more when the immediate parent is a text container. Clamped at
// zero.
//
// Indentation depth and inline/block classification are deliberately
// independent: a skipped ancestor changes depth only, never whether a
// node breaks onto its own line.
func (r *renderer) indentLevel(n *abbr.Node) int {
	level := -1
	if p := n.Parent(); p != nil && p.TextOnly {
		level = -2
	}
	for ctx := n.Parent(); ctx != nil; ctx = ctx.Parent() {
		if ctx.Name != "" && r.profile.SkipsIndent(ctx.Name) {
			continue
		}
		level++
	}
	// A directly rendered root has no synthetic container above it;
	// count the missing container level so depths match the wrapped
	// form of the same tree.
	if r.entry != nil {
		level++
	}
	if level < 0 {
		return 0
	}
	return level
}

// hasInnerFormatting reports whether n's content is expanded onto its
// own indented lines: either the tag is force-formatted by the profile,
// or some descendant would be formatted on its own.
func (r *renderer) hasInnerFormatting(n *abbr.Node) bool {
	if n.Name != "" && r.profile.ForcesFormat(n.Name) {
		return true
	}
	return r.hasFormattedDescendant(n)
}

func (r *renderer) hasFormattedDescendant(n *abbr.Node) bool {
	for _, c := range n.Children() {
		if r.shouldFormat(c) || r.hasFormattedDescendant(c) {
			return true
		}
	}
	return false
}
