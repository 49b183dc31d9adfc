package syntax

import (
	"fmt"
	"slices"
	"sync"
)

// tree is the shared, mutable handle on the current green root of a document.
type tree struct {
	root *GreenNode

	mu sync.Mutex
	// edits logs every structural edit. An anchor created after edits[:g]
	// replays edits[g:] to find its element again.
	edits []splice
}

// splice records that the children [start, end) of the node at parent were
// replaced by n new children.
type splice struct {
	parent     []int
	start, end int
	n          int
}

// anchor is the position of an element at generation gen.
type anchor struct {
	path    []int
	gen     int
	removed bool
}

// rebase moves a past s. It reports false if s removed the element.
func (a *anchor) rebase(s splice) bool {
	d := len(s.parent)
	if len(a.path) <= d || !slices.Equal(a.path[:d], s.parent) {
		return true
	}
	switch i := a.path[d]; {
	case i < s.start:
	case i >= s.end:
		a.path = slices.Clone(a.path)
		a.path[d] += s.n - (s.end - s.start)
	default:
		return false
	}
	return true
}

// Node is a positioned view of a green element: a node or a token.
//
// A Node is cheap to copy. It holds the document handle and an anchor on its
// element, and resolves the green element on demand. Edits made through any
// Node of a document are visible through every other Node of that document.
//
// A Node follows its element across structural edits (Splice, Append,
// Detach): inserting or removing siblings before it does not make it point
// at another element. Using a Node whose element was removed panics. A
// Replace keeps the Node of the replaced element valid; Nodes below it keep
// their index path.
type Node struct {
	t *tree
	a *anchor
}

// NewTree returns the root Node of a new document holding root.
func NewTree(root *GreenNode) Node {
	if root == nil {
		panic("syntax: nil root")
	}
	return Node{t: &tree{root: root}, a: &anchor{}}
}

func (t *tree) at(path []int) Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Node{t: t, a: &anchor{path: path, gen: len(t.edits)}}
}

// resolve brings the anchor of n up to date with the edit log.
func (n Node) resolve() ([]int, bool) {
	n.t.mu.Lock()
	defer n.t.mu.Unlock()
	a := n.a
	for a.gen < len(n.t.edits) && !a.removed {
		a.removed = !a.rebase(n.t.edits[a.gen])
		a.gen++
	}
	return a.path, !a.removed
}

// path returns the current index path of n. It panics if the element was
// removed from the tree.
func (n Node) path() []int {
	path, ok := n.resolve()
	if !ok {
		panic("syntax: node was removed from the tree")
	}
	return path
}

// Removed reports whether the element of n was removed by a structural
// edit.
func (n Node) Removed() bool {
	_, ok := n.resolve()
	return !ok
}

// IsZero reports whether n is the zero Node.
func (n Node) IsZero() bool { return n.t == nil }

// Root returns the root Node of the document.
func (n Node) Root() Node { return n.t.at(nil) }

// GreenRoot returns the current green root of the document.
func (n Node) GreenRoot() *GreenNode { return n.t.root }

// Green resolves the green element n currently points at.
func (n Node) Green() GreenElement {
	path := n.path()
	var e GreenElement = n.t.root
	for _, i := range path {
		g, ok := e.(*GreenNode)
		if !ok || i >= len(g.children) {
			panic(fmt.Sprintf("syntax: stale node path %v", path))
		}
		e = g.children[i]
	}
	return e
}

// greenNode resolves n and panics if it is a token.
func (n Node) greenNode() *GreenNode {
	g, ok := n.Green().(*GreenNode)
	if !ok {
		panic("syntax: token has no children")
	}
	return g
}

// Kind returns the kind of the element.
func (n Node) Kind() Kind { return n.Green().Kind() }

// IsToken reports whether the element is a token.
func (n Node) IsToken() bool {
	_, ok := n.Green().(*GreenToken)
	return ok
}

// String returns the text covered by the element.
func (n Node) String() string { return n.Green().String() }

// Width returns the length in bytes of the text covered by the element.
func (n Node) Width() int { return n.Green().Width() }

// Path returns a copy of the index path from the root to n.
func (n Node) Path() []int { return slices.Clone(n.path()) }

// Index returns the position of n among its siblings, or -1 for the root.
func (n Node) Index() int {
	path := n.path()
	if len(path) == 0 {
		return -1
	}
	return path[len(path)-1]
}

// Offset returns the absolute byte offset of n in the document text.
func (n Node) Offset() int {
	off := 0
	g := n.t.root
	path := n.path()
	for depth, i := range path {
		for _, c := range g.children[:i] {
			off += c.Width()
		}
		if depth < len(path)-1 {
			g = g.children[i].(*GreenNode)
		}
	}
	return off
}

// Same reports whether n and o designate the same element of the same
// document.
func (n Node) Same(o Node) bool {
	if n.t == nil || o.t == nil {
		return n.t == o.t
	}
	return n.t == o.t && slices.Equal(n.path(), o.path())
}

// Parent returns the parent of n. The root has no parent.
func (n Node) Parent() (Node, bool) {
	path := n.path()
	if len(path) == 0 {
		return Node{}, false
	}
	return n.t.at(path[: len(path)-1 : len(path)-1]), true
}

// Ancestors returns the parents of n, nearest first.
func (n Node) Ancestors() []Node {
	var as []Node
	for p, ok := n.Parent(); ok; p, ok = p.Parent() {
		as = append(as, p)
	}
	return as
}

// Len returns the number of direct children of n. Tokens have none.
func (n Node) Len() int {
	g, ok := n.Green().(*GreenNode)
	if !ok {
		return 0
	}
	return len(g.children)
}

// Child returns the i-th direct child of n.
func (n Node) Child(i int) Node {
	g := n.greenNode()
	if i < 0 || i >= len(g.children) {
		panic(fmt.Sprintf("syntax: child index %d out of range [0,%d)", i, len(g.children)))
	}
	return n.child(i)
}

func (n Node) child(i int) Node {
	path := n.path()
	p := make([]int, len(path)+1)
	copy(p, path)
	p[len(path)] = i
	return n.t.at(p)
}

// Children returns the direct children of n.
func (n Node) Children() []Node {
	g, ok := n.Green().(*GreenNode)
	if !ok {
		return nil
	}
	cs := make([]Node, len(g.children))
	for i := range g.children {
		cs[i] = n.child(i)
	}
	return cs
}

// ChildrenOfKind returns the direct children of n with the given kind.
func (n Node) ChildrenOfKind(kind Kind) []Node {
	g, ok := n.Green().(*GreenNode)
	if !ok {
		return nil
	}
	var cs []Node
	for i, c := range g.children {
		if c.Kind() == kind {
			cs = append(cs, n.child(i))
		}
	}
	return cs
}

// FirstChild returns the first direct child of n with the given kind.
func (n Node) FirstChild(kind Kind) (Node, bool) {
	g, ok := n.Green().(*GreenNode)
	if !ok {
		return Node{}, false
	}
	for i, c := range g.children {
		if c.Kind() == kind {
			return n.child(i), true
		}
	}
	return Node{}, false
}

// NextSibling returns the sibling following n.
func (n Node) NextSibling() (Node, bool) {
	p, ok := n.Parent()
	if !ok || n.Index()+1 >= p.Len() {
		return Node{}, false
	}
	return p.child(n.Index() + 1), true
}

// PrevSibling returns the sibling preceding n.
func (n Node) PrevSibling() (Node, bool) {
	p, ok := n.Parent()
	if !ok || n.Index() == 0 {
		return Node{}, false
	}
	return p.child(n.Index() - 1), true
}

// Replace substitutes e for the element n points at. The root can only be
// replaced by a node.
func (n Node) Replace(e GreenElement) {
	path := n.path()
	if len(path) == 0 {
		root, ok := e.(*GreenNode)
		if !ok {
			panic("syntax: the root must be a node")
		}
		n.t.root = root
		return
	}
	n.t.root = replaceAt(n.t.root, path, e)
}

func replaceAt(g *GreenNode, path []int, e GreenElement) *GreenNode {
	i := path[0]
	if len(path) == 1 {
		return g.ReplaceChild(i, e)
	}
	child, ok := g.Child(i).(*GreenNode)
	if !ok {
		panic(fmt.Sprintf("syntax: path goes through a token at index %d", i))
	}
	return g.ReplaceChild(i, replaceAt(child, path[1:], e))
}

// Splice replaces the children of n in [start, end) by repl. Nodes of the
// replaced children are removed; Nodes of later children follow them.
func (n Node) Splice(start, end int, repl ...GreenElement) {
	path := n.path()
	n.Replace(n.greenNode().Splice(start, end, repl...))
	n.t.mu.Lock()
	n.t.edits = append(n.t.edits, splice{parent: path, start: start, end: end, n: len(repl)})
	n.t.mu.Unlock()
}

// Append adds elements after the last child of n.
func (n Node) Append(elems ...GreenElement) {
	l := n.Len()
	n.Splice(l, l, elems...)
}

// Detach unlinks n from its parent and returns the detached element.
// Detaching the root empties it.
func (n Node) Detach() GreenElement {
	g := n.Green()
	p, ok := n.Parent()
	if !ok {
		n.Splice(0, n.Len())
		return g
	}
	i := n.Index()
	p.Splice(i, i+1)
	return g
}
