package syntax

import (
	"fmt"
	"strings"
)

// Kind tags a token or a node. Each grammar declares its own set of kinds.
type Kind uint16

// Token is a lexer output: a kind and the raw text it covers.
type Token struct {
	Kind Kind
	Text string
}

// GreenElement is an element of the immutable tree: either a *GreenNode or a
// *GreenToken.
type GreenElement interface {
	// Kind returns the kind tag of the element.
	Kind() Kind
	// Width returns the length in bytes of the text covered by the element.
	Width() int
	// String returns the text covered by the element.
	String() string

	writeTo(b *strings.Builder)
}

// GreenToken is a leaf of the immutable tree.
type GreenToken struct {
	kind Kind
	text string
}

// NewToken creates a green token.
func NewToken(kind Kind, text string) *GreenToken {
	return &GreenToken{kind: kind, text: text}
}

// Kind returns the kind of the token.
func (t *GreenToken) Kind() Kind { return t.kind }

// Text returns the raw text of the token.
func (t *GreenToken) Text() string { return t.text }

// Width returns the length in bytes of the token text.
func (t *GreenToken) Width() int { return len(t.text) }

// String returns the raw text of the token.
func (t *GreenToken) String() string { return t.text }

func (t *GreenToken) writeTo(b *strings.Builder) { b.WriteString(t.text) }

// GreenNode is an interior node of the immutable tree.
// A GreenNode is never modified once created; every edit returns a new node
// that shares the unchanged children with the old one.
type GreenNode struct {
	kind     Kind
	children []GreenElement
	width    int
}

// NewNode creates a green node with the given children.
// The children slice is copied.
func NewNode(kind Kind, children ...GreenElement) *GreenNode {
	cs := make([]GreenElement, len(children))
	copy(cs, children)
	return newNode(kind, cs)
}

// newNode takes ownership of children.
func newNode(kind Kind, children []GreenElement) *GreenNode {
	w := 0
	for _, c := range children {
		if c == nil {
			panic("syntax: nil child")
		}
		w += c.Width()
	}
	return &GreenNode{kind: kind, children: children, width: w}
}

// Kind returns the kind of the node.
func (n *GreenNode) Kind() Kind { return n.kind }

// Width returns the length in bytes of the text covered by the node.
func (n *GreenNode) Width() int { return n.width }

// Len returns the number of direct children.
func (n *GreenNode) Len() int { return len(n.children) }

// Child returns the i-th direct child.
func (n *GreenNode) Child(i int) GreenElement {
	if i < 0 || i >= len(n.children) {
		panic(fmt.Sprintf("syntax: child index %d out of range [0,%d)", i, len(n.children)))
	}
	return n.children[i]
}

// Children returns a copy of the direct children.
func (n *GreenNode) Children() []GreenElement {
	cs := make([]GreenElement, len(n.children))
	copy(cs, n.children)
	return cs
}

// String returns the text covered by the node.
func (n *GreenNode) String() string {
	var b strings.Builder
	b.Grow(n.width)
	n.writeTo(&b)
	return b.String()
}

func (n *GreenNode) writeTo(b *strings.Builder) {
	for _, c := range n.children {
		c.writeTo(b)
	}
}

// Tokens returns every descendant token in document order.
func (n *GreenNode) Tokens() []*GreenToken {
	var toks []*GreenToken
	var walk func(e GreenElement)
	walk = func(e GreenElement) {
		switch e := e.(type) {
		case *GreenToken:
			toks = append(toks, e)
		case *GreenNode:
			for _, c := range e.children {
				walk(c)
			}
		}
	}
	walk(n)
	return toks
}

// Splice returns a copy of n where the children in [start, end) are replaced
// by repl.
func (n *GreenNode) Splice(start, end int, repl ...GreenElement) *GreenNode {
	if start < 0 || end < start || end > len(n.children) {
		panic(fmt.Sprintf("syntax: splice range [%d,%d) out of range [0,%d]", start, end, len(n.children)))
	}
	cs := make([]GreenElement, 0, len(n.children)-(end-start)+len(repl))
	cs = append(cs, n.children[:start]...)
	cs = append(cs, repl...)
	cs = append(cs, n.children[end:]...)
	return newNode(n.kind, cs)
}

// ReplaceChild returns a copy of n where the i-th child is replaced by c.
func (n *GreenNode) ReplaceChild(i int, c GreenElement) *GreenNode {
	if i < 0 || i >= len(n.children) {
		panic(fmt.Sprintf("syntax: child index %d out of range [0,%d)", i, len(n.children)))
	}
	return n.Splice(i, i+1, c)
}

// Equal reports whether a and b have the same kinds and the same text all the
// way down.
func Equal(a, b GreenElement) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() || a.Width() != b.Width() {
		return false
	}
	switch a := a.(type) {
	case *GreenToken:
		b, ok := b.(*GreenToken)
		return ok && (a == b || a.text == b.text)
	case *GreenNode:
		b, ok := b.(*GreenNode)
		if !ok {
			return false
		}
		if a == b {
			return true
		}
		if len(a.children) != len(b.children) {
			return false
		}
		for i := range a.children {
			if !Equal(a.children[i], b.children[i]) {
				return false
			}
		}
		return true
	}
	return false
}
