package markup

import (
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/markout/pkg/abbr"
	"github.com/matzehuels/markout/pkg/field"
	"github.com/matzehuels/markout/pkg/profile"
)

// blockProfile returns a formatting profile where every element is
// block-level, which keeps tree-shape tests independent of the default
// inline-element set.
func blockProfile() *profile.Profile {
	p := profile.Default()
	p.InlineElements = nil
	p.FormatForce = nil
	p.FormatSkip = nil
	p.InlineBreak = 0
	return p
}

func TestRenderBlockSiblings(t *testing.T) {
	tree := abbr.Root(
		abbr.Element("div",
			abbr.Element("p"),
			abbr.Element("p"),
		),
	)

	got := Render(tree, profile.Default(), nil)
	want := "<div>\n\t<p></p>\n\t<p></p>\n</div>"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderAdjacentInline(t *testing.T) {
	p := profile.Default()
	p.InlineBreak = 0

	tree := abbr.Root(
		abbr.Element("div",
			abbr.Element("span"),
			abbr.Element("span"),
		),
	)

	got := Render(tree, p, nil)
	want := "<div><span></span><span></span></div>"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderFirstNodeHasNoLeadingWhitespace(t *testing.T) {
	trees := map[string]*abbr.Node{
		"block root":  abbr.Root(abbr.Element("div")),
		"inline root": abbr.Root(abbr.Element("span"), abbr.Element("div")),
		"text root":   abbr.Root(abbr.Text("hello"), abbr.Element("div")),
	}

	for name, tree := range trees {
		t.Run(name, func(t *testing.T) {
			got := Render(tree, profile.Default(), nil)
			if len(got) == 0 {
				t.Fatal("empty output")
			}
			if got[0] == '\n' || got[0] == '\t' || got[0] == ' ' {
				t.Errorf("output starts with whitespace: %q", got)
			}
		})
	}
}

func TestRenderMasterSwitchOff(t *testing.T) {
	p := profile.Default()
	p.Format = false

	tree := abbr.Root(
		abbr.Element("html",
			abbr.Element("body",
				abbr.Element("div",
					abbr.Element("p", abbr.Element("span")),
					abbr.Element("p"),
				),
			),
		),
	)

	got := Render(tree, p, nil)
	if strings.ContainsAny(got, "\n\t") {
		t.Errorf("format=false output contains whitespace: %q", got)
	}
	want := "<html><body><div><p><span></span></p><p></p></div></body></html>"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderFormatSkip(t *testing.T) {
	build := func() *abbr.Node {
		return abbr.Root(
			abbr.Element("div",
				abbr.Element("section",
					abbr.Element("article"),
				),
			),
		)
	}

	plain := blockProfile()
	withoutSkip := Render(build(), plain, nil)

	skipping := blockProfile()
	skipping.FormatSkip = []string{"div"}
	withSkip := Render(build(), skipping, nil)

	if !strings.Contains(withoutSkip, "\n\t\t<article>") {
		t.Errorf("without skip, article should be indented twice: %q", withoutSkip)
	}
	if !strings.Contains(withSkip, "\n\t<article>") || strings.Contains(withSkip, "\n\t\t<article>") {
		t.Errorf("with skip, article should be indented once: %q", withSkip)
	}
	if !strings.Contains(withSkip, "\n<section>") {
		t.Errorf("with skip, section should sit at depth zero: %q", withSkip)
	}
}

func TestRenderFormatForce(t *testing.T) {
	p := blockProfile()
	p.FormatForce = []string{"body"}

	tree := abbr.Root(abbr.Element("body"))
	got := Render(tree, p, nil)
	want := "<body>\n\t\n</body>"
	if got != want {
		t.Errorf("forced empty body = %q, want %q", got, want)
	}
}

func TestRenderInlineBreak(t *testing.T) {
	build := func() *abbr.Node {
		return abbr.Root(
			abbr.Element("div",
				abbr.Element("span"),
				abbr.Element("span"),
				abbr.Element("span"),
			),
		)
	}

	p := profile.Default()
	p.InlineBreak = 3
	got := Render(build(), p, nil)
	want := "<div>\n\t<span></span>\n\t<span></span>\n\t<span></span>\n</div>"
	if got != want {
		t.Errorf("inlineBreak=3 output = %q, want %q", got, want)
	}

	p.InlineBreak = 4
	got = Render(build(), p, nil)
	want = "<div><span></span><span></span><span></span></div>"
	if got != want {
		t.Errorf("inlineBreak=4 output = %q, want %q", got, want)
	}
}

func TestRenderInlineAtBlockBoundary(t *testing.T) {
	p := profile.Default()
	p.InlineBreak = 0

	t.Run("inline before block", func(t *testing.T) {
		tree := abbr.Root(
			abbr.Element("div",
				abbr.Element("span"),
				abbr.Element("p"),
			),
		)
		got := Render(tree, p, nil)
		want := "<div>\n\t<span></span>\n\t<p></p>\n</div>"
		if got != want {
			t.Errorf("Render() = %q, want %q", got, want)
		}
	})

	t.Run("inline after block", func(t *testing.T) {
		tree := abbr.Root(
			abbr.Element("div",
				abbr.Element("p"),
				abbr.Element("span"),
			),
		)
		got := Render(tree, p, nil)
		want := "<div>\n\t<p></p>\n\t<span></span>\n</div>"
		if got != want {
			t.Errorf("Render() = %q, want %q", got, want)
		}
	})

	t.Run("inline between inline", func(t *testing.T) {
		tree := abbr.Root(
			abbr.Element("div",
				abbr.Element("span"),
				abbr.Element("em"),
			),
		)
		got := Render(tree, p, nil)
		want := "<div><span></span><em></em></div>"
		if got != want {
			t.Errorf("Render() = %q, want %q", got, want)
		}
	})
}

func TestRenderTextOnlyParentEdgeCase(t *testing.T) {
	build := func(value string) *abbr.Node {
		wrapper := abbr.Text(value)
		wrapper.Append(abbr.Element("p"))
		return abbr.Root(abbr.Element("div", wrapper))
	}

	p := profile.Default()

	withField := Render(build("before $1 after"), p, nil)
	if strings.Contains(withField, "\n\t\t") {
		t.Errorf("sole child under field-bearing text parent should stay unformatted: %q", withField)
	}
	if !strings.Contains(withField, "before  after<p></p>") {
		t.Errorf("child should follow the rendered text directly: %q", withField)
	}

	withoutField := Render(build("before after"), p, nil)
	if !strings.Contains(withoutField, "\n\t<p></p>") {
		t.Errorf("without a field the child formats normally: %q", withoutField)
	}
}

func TestRenderPseudoSnippet(t *testing.T) {
	snippet := abbr.Text("start $1 end")
	snippet.Append(abbr.Element("p"))
	snippet.Append(abbr.Element("p"))
	tree := abbr.Root(abbr.Element("div"), snippet)

	got := Render(tree, profile.Default(), nil)

	if strings.Contains(got, "<start") {
		t.Errorf("pseudo-snippet must not synthesize tags: %q", got)
	}
	if !strings.Contains(got, "start  end") {
		t.Errorf("pseudo-snippet literal content missing: %q", got)
	}
	// Pseudo-snippets are always formatted, even though they are inline.
	if !strings.Contains(got, "</div>\nstart") {
		t.Errorf("pseudo-snippet should start on its own line: %q", got)
	}
	// Children render after the literal text; the text-only parent does
	// not consume an indent level.
	if !strings.Contains(got, "start  end\n<p></p>\n<p></p>") {
		t.Errorf("pseudo-snippet children render after its text: %q", got)
	}
}

func TestRenderSelfClosing(t *testing.T) {
	tests := []struct {
		style profile.SelfClosing
		want  string
	}{
		{profile.SelfClosingHTML, "<br>"},
		{profile.SelfClosingXHTML, "<br />"},
		{profile.SelfClosingXML, "<br/>"},
	}

	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			p := profile.Default()
			p.SelfClosingStyle = tt.style

			br := abbr.Element("br")
			br.SelfClosing = true
			got := Render(abbr.Root(br), p, nil)

			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
			if strings.Contains(got, "</br>") {
				t.Errorf("self-closing node produced a close tag: %q", got)
			}
		})
	}
}

func TestRenderTextValue(t *testing.T) {
	div := abbr.Element("div")
	div.Value = "hello"
	got := Render(abbr.Root(div), profile.Default(), nil)
	if got != "<div>hello</div>" {
		t.Errorf("Render() = %q, want %q", got, "<div>hello</div>")
	}
}

func TestRenderFields(t *testing.T) {
	div := abbr.Element("div")
	div.Value = "say ${1:hi}"
	div.SetAttribute(abbr.Attr("title", "tip $2"))
	tree := abbr.Root(div)

	numbered := func(text string) string {
		return field.Render(text, func(index int, placeholder string) string {
			return fmt.Sprintf("<%d:%s>", index, placeholder)
		})
	}

	got := Render(tree, profile.Default(), numbered)
	want := `<div title="tip <2:>">say <1:hi></div>`
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}

	// Default renderer strips markers and keeps placeholders.
	got = Render(tree, profile.Default(), nil)
	want = `<div title="tip ">say hi</div>`
	if got != want {
		t.Errorf("Render() with discard = %q, want %q", got, want)
	}
}

func TestRenderRootElementDirectly(t *testing.T) {
	got := Render(abbr.Element("div", abbr.Element("p")), profile.Default(), nil)
	want := "<div>\n\t<p></p>\n</div>"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

// A tree must format identically whether its top node is passed
// directly or wrapped in a synthetic root: first-node detection and
// indent depth are relative to the render entry point, not to parent
// pointers.
func TestRenderDirectRootMatchesWrapped(t *testing.T) {
	build := func() *abbr.Node {
		return abbr.Element("div",
			abbr.Element("p", abbr.Element("em")),
			abbr.Element("p"),
		)
	}

	direct := Render(build(), profile.Default(), nil)
	wrapped := Render(abbr.Root(build()), profile.Default(), nil)

	if direct != wrapped {
		t.Errorf("direct = %q, wrapped = %q; formatting must not depend on the wrapper", direct, wrapped)
	}
	want := "<div>\n\t<p><em></em></p>\n\t<p></p>\n</div>"
	if direct != want {
		t.Errorf("direct = %q, want %q", direct, want)
	}
}

func TestRenderDirectRootSkippedTag(t *testing.T) {
	build := func() *abbr.Node {
		return abbr.Element("html",
			abbr.Element("body",
				abbr.Element("div"),
			),
		)
	}

	direct := Render(build(), profile.Default(), nil)
	wrapped := Render(abbr.Root(build()), profile.Default(), nil)

	if direct != wrapped {
		t.Errorf("direct = %q, wrapped = %q", direct, wrapped)
	}
}

func TestRenderNilInputs(t *testing.T) {
	if got := Render(nil, nil, nil); got != "" {
		t.Errorf("Render(nil) = %q, want empty", got)
	}
	if got := Render(abbr.Root(), nil, nil); got != "" {
		t.Errorf("Render(empty root) = %q, want empty", got)
	}
}

func TestRenderDeterministic(t *testing.T) {
	tree := abbr.Root(
		abbr.Element("html",
			abbr.Element("body",
				abbr.Element("div",
					abbr.Element("span"),
					abbr.Element("p"),
					abbr.Text("tail $1"),
				),
			),
		),
	)

	p := profile.Default()
	first := Render(tree, p, nil)
	for i := 0; i < 5; i++ {
		if got := Render(tree, p, nil); got != first {
			t.Fatalf("render %d differs:\n%q\n%q", i, got, first)
		}
	}
}

func TestRenderFullDocumentShape(t *testing.T) {
	// html is format-skipped by default, so body and its content shift
	// one level left while html itself still occupies its own lines.
	tree := abbr.Root(
		abbr.Element("html",
			abbr.Element("body",
				abbr.Element("div"),
			),
		),
	)

	got := Render(tree, profile.Default(), nil)
	want := "<html>\n<body>\n\t<div></div>\n</body>\n</html>"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}
