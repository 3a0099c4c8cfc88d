// Package abbr defines the abbreviation tree consumed by the markup
// renderer.
//
// An abbreviation tree is an ordered hierarchy of nodes produced by an
// abbreviation parser: elements with names and attributes, text-only
// nodes, and pseudo-snippets (text-only nodes that own children). This
// package only models the tree - it performs no parsing and no
// validation of abbreviation syntax.
//
// Trees are built with [Node.Append] and are expected to be treated as
// read-only once handed to a renderer. Navigation (parent, siblings,
// child index) is derived from the owning parent's child sequence, so
// the tree carries no cyclic ownership.
package abbr

import "errors"

var (
	// ErrNilChild is returned by [Node.Append] when the child is nil.
	ErrNilChild = errors.New("child must not be nil")

	// ErrAttached is returned by [Node.Append] when the child already
	// belongs to a parent. Detach is not supported; build each tree
	// fresh instead of moving nodes between trees.
	ErrAttached = errors.New("child already has a parent")
)

// Kind classifies a node for rendering dispatch. It is derived from the
// node's shape once per lookup rather than re-inspected field by field.
type Kind int

const (
	// KindElement is a regular element node, rendered with an open tag,
	// optional text and children, and a close tag.
	KindElement Kind = iota
	// KindText is a text-only leaf: no tag identity, only content.
	KindText
	// KindPseudoSnippet is a text-only node that owns children. Its
	// output is its literal content; no tags are synthesized for it.
	KindPseudoSnippet
)

// Attribute is a single element attribute in document order.
//
// HasValue distinguishes "no explicit value was supplied" from an
// explicit empty string: boolean and implied attributes behave
// differently in the two cases.
type Attribute struct {
	Name     string
	Value    string
	HasValue bool

	// Implied marks a hint-only attribute that is skipped entirely
	// unless an explicit value was supplied.
	Implied bool
	// Boolean forces boolean-attribute treatment regardless of the
	// profile's boolean-attribute set.
	Boolean bool
}

// Attr builds a regular attribute with an explicit value.
func Attr(name, value string) Attribute {
	return Attribute{Name: name, Value: value, HasValue: true}
}

// Node is one vertex of an abbreviation tree.
//
// The zero value is a valid empty node. A node with an empty Name and
// TextOnly set carries only content; the synthetic root of a tree is a
// node with no parent, typically with no name or value of its own.
//
// Node is not safe for concurrent mutation. Rendering never mutates a
// node, so concurrent renders of the same tree are safe.
type Node struct {
	Name        string      // tag name; empty for text-only nodes
	Value       string      // raw content, may contain field placeholders
	Attributes  []Attribute // ordered attribute sequence
	SelfClosing bool
	TextOnly    bool

	parent   *Node
	index    int
	children []*Node
}

// Root creates an empty container node used as the synthetic tree root.
// The root itself is never emitted; renderers walk its children.
func Root(children ...*Node) *Node {
	root := &Node{}
	for _, c := range children {
		_ = root.Append(c)
	}
	return root
}

// Element creates a named element node with the given children attached.
func Element(name string, children ...*Node) *Node {
	n := &Node{Name: name}
	for _, c := range children {
		_ = n.Append(c)
	}
	return n
}

// Text creates a text-only node with the given content.
func Text(value string) *Node {
	return &Node{Value: value, TextOnly: true}
}

// Append attaches child as the last child of n.
// Returns ErrNilChild if child is nil, or ErrAttached if child already
// belongs to a parent.
func (n *Node) Append(child *Node) error {
	if child == nil {
		return ErrNilChild
	}
	if child.parent != nil {
		return ErrAttached
	}
	child.parent = n
	child.index = len(n.children)
	n.children = append(n.children, child)
	return nil
}

// Kind reports the rendering classification of the node.
func (n *Node) Kind() Kind {
	if n.TextOnly {
		if len(n.children) > 0 {
			return KindPseudoSnippet
		}
		return KindText
	}
	return KindElement
}

// Parent returns the owning parent, or nil for the tree root.
func (n *Node) Parent() *Node { return n.parent }

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool { return n.parent == nil }

// ChildIndex returns the node's position in its parent's child sequence,
// or 0 for the root.
func (n *Node) ChildIndex() int { return n.index }

// Children returns the node's child sequence in document order.
// The returned slice is the node's own storage and must not be modified
// by callers that treat the tree as read-only.
func (n *Node) Children() []*Node { return n.children }

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.children) }

// FirstChild returns the first child, or nil if the node has none.
func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// LastChild returns the last child, or nil if the node has none.
func (n *Node) LastChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// PreviousSibling returns the sibling immediately before the node in its
// parent's child sequence, or nil for a first child or the root.
func (n *Node) PreviousSibling() *Node {
	if n.parent == nil || n.index == 0 {
		return nil
	}
	return n.parent.children[n.index-1]
}

// NextSibling returns the sibling immediately after the node, or nil for
// a last child or the root.
func (n *Node) NextSibling() *Node {
	if n.parent == nil || n.index+1 >= len(n.parent.children) {
		return nil
	}
	return n.parent.children[n.index+1]
}

// Attribute returns the first attribute with the given name and true, or
// a zero Attribute and false if no such attribute exists.
func (n *Node) Attribute(name string) (Attribute, bool) {
	for _, a := range n.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// SetAttribute appends an attribute, replacing an existing attribute of
// the same name in place to preserve document order.
func (n *Node) SetAttribute(a Attribute) {
	for i := range n.Attributes {
		if n.Attributes[i].Name == a.Name {
			n.Attributes[i] = a
			return
		}
	}
	n.Attributes = append(n.Attributes, a)
}

// Walk visits the node and every descendant in document order, calling
// fn for each. Walk stops early and returns false if fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}
