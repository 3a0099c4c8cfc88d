package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/markout/pkg/abbr"
	"github.com/matzehuels/markout/pkg/field"
	"github.com/matzehuels/markout/pkg/io"
	"github.com/matzehuels/markout/pkg/observability"
	"github.com/matzehuels/markout/pkg/profile"
	"github.com/matzehuels/markout/pkg/render/markup"
)

const (
	fieldsKeep    = "keep"    // re-emit placeholders as ${n:text}
	fieldsDiscard = "discard" // strip placeholders, keep their text
)

// renderOpts holds the command-line flags for the render command.
// These options select the output profile and override individual knobs.
type renderOpts struct {
	output      string // output file path (stdout if empty)
	profilePath string // TOML profile file (defaults if empty)
	compact     bool   // disable formatting entirely
	fields      string // field placeholder handling: "keep" or "discard"
	indent      string // indent string override
	inlineBreak int    // inline sibling threshold override
	selfClosing string // self-closing style: "html", "xhtml", "xml"
	tagCase     string // tag name casing: "", "lower", "upper"
	attrCase    string // attribute name casing: "", "lower", "upper"
	attrQuote   string // attribute quoting: "double", "single"
}

// newRenderCmd creates the render command for producing markup from a tree file.
//
// The profile is resolved in three layers: built-in HTML defaults, then an
// optional TOML profile file, then individual flag overrides. Only flags the
// user actually set override the file.
func newRenderCmd() *cobra.Command {
	opts := renderOpts{fields: fieldsDiscard}

	cmd := &cobra.Command{
		Use:   "render [tree.json]",
		Short: "Render an abbreviation tree as formatted markup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFields(opts.fields); err != nil {
				return err
			}
			p, err := resolveProfile(&opts, cmd.Flags().Changed)
			if err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], p, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if omitted)")
	cmd.Flags().StringVarP(&opts.profilePath, "profile", "p", "", "TOML profile file")
	cmd.Flags().BoolVar(&opts.compact, "compact", false, "disable formatting (no newlines or indent)")
	cmd.Flags().StringVar(&opts.fields, "fields", opts.fields, "field placeholders: keep or discard")
	cmd.Flags().StringVar(&opts.indent, "indent", "", "indent string override")
	cmd.Flags().IntVar(&opts.inlineBreak, "inline-break", 0, "inline sibling threshold override (0 disables)")
	cmd.Flags().StringVar(&opts.selfClosing, "self-closing", "", "self-closing style: html, xhtml, xml")
	cmd.Flags().StringVar(&opts.tagCase, "tag-case", "", "tag name casing: lower, upper")
	cmd.Flags().StringVar(&opts.attrCase, "attr-case", "", "attribute name casing: lower, upper")
	cmd.Flags().StringVar(&opts.attrQuote, "attr-quote", "", "attribute quoting: double, single")

	return cmd
}

// validateFields checks the --fields flag value.
func validateFields(mode string) error {
	if mode != fieldsKeep && mode != fieldsDiscard {
		return fmt.Errorf("invalid fields mode: %s (must be 'keep' or 'discard')", mode)
	}
	return nil
}

// resolveProfile builds the effective profile from defaults, the optional
// profile file, and flag overrides. The changed function reports whether a
// flag was explicitly set, so zero values do not clobber file settings.
func resolveProfile(opts *renderOpts, changed func(string) bool) (*profile.Profile, error) {
	p := profile.Default()
	if opts.profilePath != "" {
		loaded, err := profile.Load(opts.profilePath)
		if err != nil {
			return nil, fmt.Errorf("load profile %s: %w", opts.profilePath, err)
		}
		p = loaded
	}

	if changed("compact") {
		p.Format = !opts.compact
	}
	if changed("indent") {
		p.Indent = opts.indent
	}
	if changed("inline-break") {
		if opts.inlineBreak < 0 {
			return nil, fmt.Errorf("inline-break must be >= 0, got %d", opts.inlineBreak)
		}
		p.InlineBreak = opts.inlineBreak
	}
	if changed("self-closing") {
		p.SelfClosingStyle = profile.SelfClosing(opts.selfClosing)
	}
	if changed("tag-case") {
		p.TagCase = profile.Case(opts.tagCase)
	}
	if changed("attr-case") {
		p.AttributeCase = profile.Case(opts.attrCase)
	}
	if changed("attr-quote") {
		p.AttributeQuote = profile.Quote(opts.attrQuote)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// fieldRenderer returns the field handling function for the given mode.
// In keep mode placeholders survive as ${n} or ${n:text} tokens; in discard
// mode only the placeholder text remains.
func fieldRenderer(mode string) markup.FieldRenderer {
	if mode == fieldsKeep {
		return func(text string) string {
			return field.Render(text, func(index int, placeholder string) string {
				if placeholder == "" {
					return fmt.Sprintf("${%d}", index)
				}
				return fmt.Sprintf("${%d:%s}", index, placeholder)
			})
		}
	}
	return field.Discard
}

// countNodes reports the number of nodes in the tree, the root included.
func countNodes(root *abbr.Node) int {
	count := 0
	root.Walk(func(*abbr.Node) bool {
		count++
		return true
	})
	return count
}

// runRender loads the tree from input, renders it with the resolved profile,
// and writes the markup to the output file or stdout.
func runRender(ctx context.Context, input string, p *profile.Profile, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Debugf("Rendering %s", input)

	tree, err := io.ImportJSON(input)
	if err != nil {
		return err
	}
	nodes := countNodes(tree)
	logger.Debugf("Loaded tree: %d nodes", nodes)

	prog := newProgress(logger)
	start := time.Now()
	observability.Render().OnRenderStart(ctx, profileDescription(opts))

	out := markup.Render(tree, p, fieldRenderer(opts.fields))
	observability.Render().OnRenderComplete(ctx, profileDescription(opts), nodes, len(out), time.Since(start), nil)

	w, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer w.Close()

	if _, err := fmt.Fprintln(w, out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	// Timing goes to the stderr logger, never to stdout.
	prog.done(fmt.Sprintf("Rendered %d nodes", nodes))

	if opts.output != "" {
		printSuccess("Rendered %s", input)
		printFile(opts.output)
		printStats(nodes, len(out), false)
		printNextStep("Inspect the tree", "markout dot "+input)
	}
	return nil
}

// profileDescription names the profile source for observability events.
func profileDescription(opts *renderOpts) string {
	if opts.profilePath != "" {
		return strings.TrimSuffix(opts.profilePath, ".toml")
	}
	return "default"
}
