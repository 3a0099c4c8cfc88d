// Package render provides output rendering for abbreviation trees.
//
// # Overview
//
// Rendering is split into focused subpackages:
//
//   - [markup]: serializes a tree as formatted HTML/XML markup according
//     to an output profile. This is the core of the project.
//   - [nodelink]: renders a tree as a Graphviz node-link diagram for
//     debugging and documentation.
//
// # Markup Rendering
//
//	out := markup.Render(tree, profile.Default(), field.Discard)
//
// # Debug Diagrams
//
//	dot := nodelink.ToDOT(tree, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// [markup]: github.com/matzehuels/markout/pkg/render/markup
// [nodelink]: github.com/matzehuels/markout/pkg/render/nodelink
package render
