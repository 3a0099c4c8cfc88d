// Package pkg provides the core libraries for Markout markup rendering.
//
// # Overview
//
// Markout turns parsed abbreviation trees into formatted markup. A tree is
// produced by an abbreviation parser (Emmet-style), and the renderer walks it
// making per-node formatting decisions driven by an output profile. The pkg
// directory is organized into five main areas:
//
//  1. [abbr] - The abbreviation tree model (nodes, attributes, navigation)
//  2. [profile] - Output profiles (indentation, casing, quoting, inline sets)
//  3. [field] - Field placeholder parsing and rendering (${1:text})
//  4. [render] - Markup rendering and tree diagrams
//  5. [cache], [errors], [observability] - Supporting infrastructure
//
// # Architecture
//
// The typical data flow through Markout:
//
//	Abbreviation tree (JSON)
//	         ↓
//	    [io] package (decode the wire form)
//	         ↓
//	    [abbr] package (tree structure + navigation)
//	         ↓
//	    [render/markup] package (formatting decisions + tag synthesis)
//	         ↓
//	    Formatted markup output
//
// # Quick Start
//
// Build a tree and render it with the default HTML profile:
//
//	import (
//	    "github.com/matzehuels/markout/pkg/abbr"
//	    "github.com/matzehuels/markout/pkg/render/markup"
//	)
//
//	tree := abbr.Root(
//	    abbr.Element("div",
//	        abbr.Element("p"),
//	        abbr.Element("p"),
//	    ),
//	)
//	out := markup.Render(tree, nil, nil)
//	// "<div>\n\t<p></p>\n\t<p></p>\n</div>"
//
// # Main Packages
//
// [abbr] - The node tree produced by abbreviation expansion. Nodes carry a
// name, text value, ordered attributes, and flags for self-closing and
// text-only nodes. Children are owned and ordered; parents are weak backrefs.
//
// [profile] - Output profile configuration: indent string, tag and attribute
// casing, quote style, self-closing markers, inline element sets, and the
// formatting toggles (format, format_force, format_skip, inline_break).
// Profiles load from TOML files and merge over the HTML defaults.
//
// [field] - Field placeholder syntax ($1, ${2}, ${3:hint}) used inside node
// values and attribute values. Rendering accepts a token callback so output
// targets can keep, transform, or discard placeholders.
//
// [render/markup] - The formatting decision engine: inline vs block
// classification, indent depth, sibling run thresholds, forced and skipped
// formatting, and final tag assembly.
//
// [render/nodelink] - Tree diagrams via Graphviz DOT/SVG, for debugging the
// structures that drive formatting decisions.
//
// [io] - JSON wire format for trees (import/export).
//
// [cache] - Render result caching with file, Redis, and null backends.
// Rendering is deterministic, so results are cached by input hash.
//
// [errors] - Structured error codes shared by the CLI and the HTTP API.
//
// [observability] - Hook interfaces for metrics and tracing backends.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                # All tests
//	go test ./pkg/render/markup/...  # Specific package
//
// [abbr]: https://pkg.go.dev/github.com/matzehuels/markout/pkg/abbr
// [profile]: https://pkg.go.dev/github.com/matzehuels/markout/pkg/profile
// [field]: https://pkg.go.dev/github.com/matzehuels/markout/pkg/field
// [render]: https://pkg.go.dev/github.com/matzehuels/markout/pkg/render
// [render/markup]: https://pkg.go.dev/github.com/matzehuels/markout/pkg/render/markup
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/markout/pkg/render/nodelink
// [io]: https://pkg.go.dev/github.com/matzehuels/markout/pkg/io
// [cache]: https://pkg.go.dev/github.com/matzehuels/markout/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/markout/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/markout/pkg/observability
package pkg
