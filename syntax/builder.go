package syntax

// Builder assembles a green tree bottom-up, as a recursive-descent parser
// walks its input. The zero value is ready to use.
//
//	var b Builder
//	b.StartNode(root)
//	b.Token(key, "Source")
//	b.FinishNode()
//	tree := b.Finish()
type Builder struct {
	parents  []frame
	children []GreenElement
}

type frame struct {
	kind  Kind
	start int
}

// StartNode opens a node of the given kind. Elements added until the matching
// FinishNode become its children.
func (b *Builder) StartNode(kind Kind) {
	b.parents = append(b.parents, frame{kind: kind, start: len(b.children)})
}

// Checkpoint returns a marker that StartNodeAt can later use to wrap every
// element added since.
func (b *Builder) Checkpoint() int {
	return len(b.children)
}

// StartNodeAt opens a node of the given kind whose children start at the
// checkpoint.
func (b *Builder) StartNodeAt(checkpoint int, kind Kind) {
	if checkpoint > len(b.children) {
		panic("syntax: checkpoint beyond current position")
	}
	if len(b.parents) > 0 && checkpoint < b.parents[len(b.parents)-1].start {
		panic("syntax: checkpoint before the start of the open node")
	}
	b.parents = append(b.parents, frame{kind: kind, start: checkpoint})
}

// Token adds a token to the open node.
func (b *Builder) Token(kind Kind, text string) {
	b.children = append(b.children, NewToken(kind, text))
}

// Push adds an existing green element to the open node.
func (b *Builder) Push(e GreenElement) {
	b.children = append(b.children, e)
}

// FinishNode closes the most recently opened node.
func (b *Builder) FinishNode() {
	if len(b.parents) == 0 {
		panic("syntax: FinishNode without StartNode")
	}
	f := b.parents[len(b.parents)-1]
	b.parents = b.parents[:len(b.parents)-1]
	cs := make([]GreenElement, len(b.children)-f.start)
	copy(cs, b.children[f.start:])
	b.children = append(b.children[:f.start], newNode(f.kind, cs))
}

// Finish returns the single root node built so far and resets the builder.
func (b *Builder) Finish() *GreenNode {
	if len(b.parents) != 0 {
		panic("syntax: Finish with unclosed nodes")
	}
	if len(b.children) != 1 {
		panic("syntax: Finish expects exactly one root node")
	}
	root, ok := b.children[0].(*GreenNode)
	if !ok {
		panic("syntax: Finish expects a node at the root")
	}
	b.children = nil
	return root
}
