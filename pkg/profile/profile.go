// Package profile defines the output profile that controls how an
// abbreviation tree is serialized: indentation, tag and attribute
// casing, quoting, self-closing style, and the formatting knobs the
// renderer queries per node.
//
// A profile is a plain configuration struct resolved once at
// construction time. It holds no mutable state during rendering, so a
// single profile can serve any number of concurrent renders.
package profile

import (
	"strings"

	"github.com/matzehuels/markout/pkg/abbr"
)

// Case selects a tag or attribute name transform.
type Case string

const (
	CaseKeep  Case = ""      // emit names as written
	CaseLower Case = "lower" // lowercase names
	CaseUpper Case = "upper" // uppercase names
)

// Quote selects the attribute value quote character.
type Quote string

const (
	QuoteDouble Quote = "double"
	QuoteSingle Quote = "single"
)

// SelfClosing selects the marker appended to self-closing open tags.
type SelfClosing string

const (
	SelfClosingHTML  SelfClosing = "html"  // <br>
	SelfClosingXHTML SelfClosing = "xhtml" // <br />
	SelfClosingXML   SelfClosing = "xml"   // <br/>
)

// Profile is the complete output configuration surface.
//
// The zero value disables formatting entirely and emits names as
// written; use [Default] for the usual HTML output profile. Tag-name
// sets (FormatForce, FormatSkip, InlineElements, BooleanAttributes) are
// matched case-insensitively.
type Profile struct {
	// Format is the master switch: when false no node is ever placed on
	// its own line and the output contains no inserted whitespace.
	Format bool `toml:"format"`

	// FormatForce lists tag names whose inner content is always
	// expanded onto indented lines, even when empty.
	FormatForce []string `toml:"format_force"`

	// FormatSkip lists tag names that do not contribute an indent level
	// to their descendants (transparent wrappers such as "html").
	FormatSkip []string `toml:"format_skip"`

	// InlineBreak is the number of adjacent inline siblings at which
	// inline nodes are broken onto their own lines. Zero disables the
	// threshold.
	InlineBreak int `toml:"inline_break"`

	// BooleanAttributes lists attribute names rendered without an
	// explicit value (or with value = name, depending on
	// CompactBooleanAttributes).
	BooleanAttributes []string `toml:"boolean_attributes"`

	// CompactBooleanAttributes renders valueless boolean attributes as
	// a bare name instead of name="name".
	CompactBooleanAttributes bool `toml:"compact_boolean_attributes"`

	// Indent is the string emitted once per indentation level.
	Indent string `toml:"indent"`

	TagCase          Case        `toml:"tag_case"`
	AttributeCase    Case        `toml:"attribute_case"`
	AttributeQuote   Quote       `toml:"attribute_quote"`
	SelfClosingStyle SelfClosing `toml:"self_closing_style"`

	// InlineElements lists tag names classified as inline-level.
	InlineElements []string `toml:"inline_elements"`
}

// Default returns the standard HTML output profile: tab indentation,
// double quotes, HTML-style self-closing tags, inline break at three
// adjacent inline siblings, "html" skipped for indentation and "body"
// force-formatted.
func Default() *Profile {
	return &Profile{
		Format:      true,
		FormatForce: []string{"body"},
		FormatSkip:  []string{"html"},
		InlineBreak: 3,
		BooleanAttributes: []string{
			"allowfullscreen", "async", "autofocus", "autoplay", "checked",
			"contenteditable", "controls", "default", "defer", "disabled",
			"formnovalidate", "hidden", "ismap", "loop", "multiple", "muted",
			"novalidate", "readonly", "required", "reversed", "seamless",
			"selected", "typemustmatch",
		},
		Indent:           "\t",
		AttributeQuote:   QuoteDouble,
		SelfClosingStyle: SelfClosingHTML,
		InlineElements: []string{
			"a", "abbr", "acronym", "applet", "b", "basefont", "bdo", "big",
			"br", "button", "cite", "code", "del", "dfn", "em", "font", "i",
			"iframe", "img", "input", "ins", "kbd", "label", "map", "object",
			"q", "s", "samp", "select", "small", "span", "strike", "strong",
			"sub", "sup", "textarea", "tt", "u", "var",
		},
	}
}

// IndentFor returns the indentation string for one nesting depth.
// Negative levels yield an empty string.
func (p *Profile) IndentFor(level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat(p.Indent, level)
}

// Name returns the tag name transformed per the profile's tag casing.
func (p *Profile) Name(tag string) string {
	return applyCase(tag, p.TagCase)
}

// Attribute returns the attribute name transformed per the profile's
// attribute casing.
func (p *Profile) Attribute(name string) string {
	return applyCase(name, p.AttributeCase)
}

// QuoteValue wraps an attribute value in the profile's quote character.
func (p *Profile) QuoteValue(value string) string {
	q := `"`
	if p.AttributeQuote == QuoteSingle {
		q = "'"
	}
	return q + value + q
}

// SelfClose returns the marker appended before the closing bracket of a
// self-closing open tag.
func (p *Profile) SelfClose() string {
	switch p.SelfClosingStyle {
	case SelfClosingXHTML:
		return " /"
	case SelfClosingXML:
		return "/"
	default:
		return ""
	}
}

// IsInline reports whether the profile classifies the node as
// inline-level. Text-only nodes are always inline.
func (p *Profile) IsInline(n *abbr.Node) bool {
	if n == nil {
		return false
	}
	if n.TextOnly {
		return true
	}
	return containsFold(p.InlineElements, n.Name)
}

// IsBooleanAttribute reports whether the attribute name is in the
// profile's boolean-attribute set.
func (p *Profile) IsBooleanAttribute(name string) bool {
	return containsFold(p.BooleanAttributes, name)
}

// ForcesFormat reports whether the tag name is in the format-force set.
func (p *Profile) ForcesFormat(tag string) bool {
	return containsFold(p.FormatForce, tag)
}

// SkipsIndent reports whether the tag name is in the format-skip set.
func (p *Profile) SkipsIndent(tag string) bool {
	return containsFold(p.FormatSkip, tag)
}

func applyCase(s string, c Case) string {
	switch c {
	case CaseLower:
		return strings.ToLower(s)
	case CaseUpper:
		return strings.ToUpper(s)
	default:
		return s
	}
}

func containsFold(set []string, name string) bool {
	for _, s := range set {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}
