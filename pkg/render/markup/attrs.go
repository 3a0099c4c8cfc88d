package markup

import (
	"strings"

	"github.com/matzehuels/markout/pkg/abbr"
)

// renderAttributes serializes a node's attribute sequence, with a
// leading space before every attribute. Returns the empty string for a
// node without attributes.
//
// Implied attributes are a hint-only construct: without an explicit
// value they have no serialized form at all. Boolean attributes without
// an explicit value render as name="name", or as a bare name when the
// profile enables compact boolean attributes.
func (r *renderer) renderAttributes(n *abbr.Node) string {
	var out strings.Builder

	for _, a := range n.Attributes {
		if a.Implied && !a.HasValue {
			continue
		}

		name := r.profile.Attribute(a.Name)
		boolean := a.Boolean || r.profile.IsBooleanAttribute(name)

		var value string
		switch {
		case boolean && !a.HasValue && r.profile.CompactBooleanAttributes:
			out.WriteString(" ")
			out.WriteString(name)
			continue
		case boolean && !a.HasValue:
			value = name
		default:
			value = r.fields(a.Value)
		}

		out.WriteString(" ")
		out.WriteString(name)
		out.WriteString("=")
		out.WriteString(r.profile.QuoteValue(value))
	}

	return out.String()
}
