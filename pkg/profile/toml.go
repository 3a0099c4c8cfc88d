package profile

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Load reads a TOML profile file and merges it over [Default].
// Keys absent from the file keep their default values, so a profile
// file only needs to list the options it changes:
//
//	format = true
//	indent = "  "
//	attribute_quote = "single"
//	format_skip = ["html"]
//
// Load returns an error if the file cannot be read or parsed.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile %s: %w", path, err)
	}

	p := Default()
	if err := toml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

// Validate checks the profile's enumerated options and numeric bounds.
// It is called by [Load] and again after flag overrides at the CLI boundary.
func (p *Profile) Validate() error {
	switch p.TagCase {
	case CaseKeep, CaseLower, CaseUpper:
	default:
		return fmt.Errorf("invalid tag_case %q", p.TagCase)
	}
	switch p.AttributeCase {
	case CaseKeep, CaseLower, CaseUpper:
	default:
		return fmt.Errorf("invalid attribute_case %q", p.AttributeCase)
	}
	switch p.AttributeQuote {
	case QuoteDouble, QuoteSingle:
	default:
		return fmt.Errorf("invalid attribute_quote %q", p.AttributeQuote)
	}
	switch p.SelfClosingStyle {
	case SelfClosingHTML, SelfClosingXHTML, SelfClosingXML:
	default:
		return fmt.Errorf("invalid self_closing_style %q", p.SelfClosingStyle)
	}
	if p.InlineBreak < 0 {
		return fmt.Errorf("inline_break must not be negative, got %d", p.InlineBreak)
	}
	return nil
}
