package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/markout/pkg/abbr"
)

func TestIndentFor(t *testing.T) {
	p := Default()

	tests := []struct {
		level int
		want  string
	}{
		{-1, ""},
		{0, ""},
		{1, "\t"},
		{3, "\t\t\t"},
	}
	for _, tt := range tests {
		if got := p.IndentFor(tt.level); got != tt.want {
			t.Errorf("IndentFor(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}

	p.Indent = "  "
	if got := p.IndentFor(2); got != "    " {
		t.Errorf("IndentFor(2) with two-space indent = %q", got)
	}
}

func TestNameCasing(t *testing.T) {
	p := Default()

	if got := p.Name("DIV"); got != "DIV" {
		t.Errorf("Name with CaseKeep = %q, want %q", got, "DIV")
	}

	p.TagCase = CaseLower
	if got := p.Name("DIV"); got != "div" {
		t.Errorf("Name with CaseLower = %q, want %q", got, "div")
	}

	p.AttributeCase = CaseUpper
	if got := p.Attribute("onClick"); got != "ONCLICK" {
		t.Errorf("Attribute with CaseUpper = %q, want %q", got, "ONCLICK")
	}
}

func TestQuoteValue(t *testing.T) {
	p := Default()
	if got := p.QuoteValue("x"); got != `"x"` {
		t.Errorf("QuoteValue double = %q", got)
	}

	p.AttributeQuote = QuoteSingle
	if got := p.QuoteValue("x"); got != "'x'" {
		t.Errorf("QuoteValue single = %q", got)
	}
}

func TestSelfClose(t *testing.T) {
	tests := []struct {
		style SelfClosing
		want  string
	}{
		{SelfClosingHTML, ""},
		{SelfClosingXHTML, " /"},
		{SelfClosingXML, "/"},
	}
	for _, tt := range tests {
		p := Default()
		p.SelfClosingStyle = tt.style
		if got := p.SelfClose(); got != tt.want {
			t.Errorf("SelfClose(%s) = %q, want %q", tt.style, got, tt.want)
		}
	}
}

func TestIsInline(t *testing.T) {
	p := Default()

	if !p.IsInline(abbr.Element("span")) {
		t.Error("span should be inline")
	}
	if !p.IsInline(abbr.Element("SPAN")) {
		t.Error("inline classification should be case-insensitive")
	}
	if p.IsInline(abbr.Element("div")) {
		t.Error("div should not be inline")
	}
	if !p.IsInline(abbr.Text("hi")) {
		t.Error("text-only nodes are always inline")
	}
	if p.IsInline(nil) {
		t.Error("nil node should not be inline")
	}
}

func TestBooleanAndFormatSets(t *testing.T) {
	p := Default()

	if !p.IsBooleanAttribute("Disabled") {
		t.Error("disabled should be a boolean attribute")
	}
	if p.IsBooleanAttribute("href") {
		t.Error("href should not be a boolean attribute")
	}
	if !p.ForcesFormat("body") {
		t.Error("body should be force-formatted by default")
	}
	if !p.SkipsIndent("HTML") {
		t.Error("html should skip indentation by default")
	}
	if p.SkipsIndent("div") {
		t.Error("div should not skip indentation by default")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.toml")
	content := `
indent = "  "
inline_break = 2
attribute_quote = "single"
tag_case = "upper"
format_skip = ["html", "wrapper"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if p.Indent != "  " {
		t.Errorf("Indent = %q, want two spaces", p.Indent)
	}
	if p.InlineBreak != 2 {
		t.Errorf("InlineBreak = %d, want 2", p.InlineBreak)
	}
	if p.AttributeQuote != QuoteSingle {
		t.Errorf("AttributeQuote = %q, want single", p.AttributeQuote)
	}
	if p.Name("div") != "DIV" {
		t.Error("tag_case = upper should uppercase names")
	}
	if !p.SkipsIndent("wrapper") {
		t.Error("format_skip from file should be honored")
	}

	// Defaults survive when the file omits keys.
	if !p.Format {
		t.Error("format should default to true")
	}
	if !p.IsInline(abbr.Element("span")) {
		t.Error("inline elements should keep their defaults")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load of a missing file should fail")
	}

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte(`attribute_quote = "backtick"`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load should reject an invalid attribute_quote")
	}
}
