package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/markout/pkg/io"
	"github.com/matzehuels/markout/pkg/render/nodelink"
)

const (
	dotFormatDOT = "dot"
	dotFormatSVG = "svg"
)

// dotOpts holds the command-line flags for the dot command.
type dotOpts struct {
	output   string // output file path (stdout if empty)
	format   string // "dot" or "svg"
	detailed bool   // include values and attributes in node labels
}

// newDotCmd creates the dot command for inspecting a tree as a diagram.
// This is a debugging aid: the node-link view shows the tree shape that
// drives formatting decisions without rendering any markup.
func newDotCmd() *cobra.Command {
	opts := dotOpts{format: dotFormatDOT}

	cmd := &cobra.Command{
		Use:   "dot [tree.json]",
		Short: "Generate a DOT or SVG diagram of an abbreviation tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != dotFormatDOT && opts.format != dotFormatSVG {
				return fmt.Errorf("invalid format: %s (must be 'dot' or 'svg')", opts.format)
			}
			return runDot(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if omitted)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot or svg")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include values and attributes in labels")

	return cmd
}

// runDot loads the tree and writes its diagram in the requested format.
func runDot(ctx context.Context, input string, opts *dotOpts) error {
	logger := loggerFromContext(ctx)

	tree, err := io.ImportJSON(input)
	if err != nil {
		return err
	}

	dot := nodelink.ToDOT(tree, nodelink.Options{Detailed: opts.detailed})

	var data []byte
	switch opts.format {
	case dotFormatSVG:
		data, err = nodelink.RenderSVG(dot)
		if err != nil {
			return fmt.Errorf("render svg: %w", err)
		}
	default:
		data = []byte(dot)
	}
	logger.Debugf("Generated %s: %d bytes", opts.format, len(data))

	w, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer w.Close()

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if opts.output != "" {
		printSuccess("Generated %s", opts.output)
	}
	return nil
}
