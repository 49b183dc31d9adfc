package relations

import (
	"github.com/etnz/debedit/syntax"
)

// Entry is one comma-separated item of a relations field: a set of
// alternative relations joined by "|", of which one is enough.
type Entry struct {
	node syntax.Node
}

// NewEntry returns a standalone entry holding copies of rels, in order.
func NewEntry(rels ...*Relation) *Entry {
	es := make([]syntax.GreenElement, len(rels))
	for i, r := range rels {
		es[i] = r.node.Green()
	}
	root := syntax.NewTree(rootGreen([]syntax.GreenElement{entryGreen(es)}))
	return &Entry{node: root.Child(0)}
}

// ParseEntry parses text holding exactly one entry.
func ParseEntry(text string, opts ...ParseOption) (*Entry, error) {
	rs, err := Parse(text, opts...)
	if err != nil {
		return nil, err
	}
	switch rs.Len() {
	case 0:
		return nil, ErrNoEntry
	case 1:
		return rs.Entry(0), nil
	}
	return nil, ErrMultipleEntries
}

// Node returns the syntax node of the entry.
func (e *Entry) Node() syntax.Node { return e.node }

func (e *Entry) String() string { return e.node.String() }

// Relations returns the alternatives of the entry.
func (e *Entry) Relations() []*Relation {
	var rs []*Relation
	for _, n := range e.node.ChildrenOfKind(KindRelation) {
		rs = append(rs, &Relation{node: n})
	}
	return rs
}

// Relation returns the i-th alternative. It panics if i is out of range.
func (e *Entry) Relation(i int) *Relation {
	rs := e.node.ChildrenOfKind(KindRelation)
	if i < 0 || i >= len(rs) {
		panic("relations: relation index out of range")
	}
	return &Relation{node: rs[i]}
}

// Len returns the number of alternatives.
func (e *Entry) Len() int { return len(e.node.ChildrenOfKind(KindRelation)) }

// IsEmpty reports whether the entry has no alternative.
func (e *Entry) IsEmpty() bool { return e.Len() == 0 }

// Push appends an alternative.
func (e *Entry) Push(r *Relation) {
	g := r.node.Green()
	rs := e.node.ChildrenOfKind(KindRelation)
	if len(rs) == 0 {
		e.node.Append(g)
		return
	}
	at := rs[len(rs)-1].Index() + 1
	e.node.Splice(at, at, space(), tok(KindPipe, "|"), space(), g)
}

// Remove detaches the entry from its list, along with one adjacent ",".
func (e *Entry) Remove() {
	parent, ok := e.node.Parent()
	if !ok {
		e.node.Detach()
		return
	}
	removeItem(parent, e.node.Index(), KindComma)
}

// SatisfiedBy reports whether any alternative is satisfied by the versions
// that lookup knows about.
func (e *Entry) SatisfiedBy(lookup VersionLookup) bool {
	for _, r := range e.Relations() {
		if r.SatisfiedBy(lookup) {
			return true
		}
	}
	return false
}

// Compare orders entries by their alternatives, then by their number.
func (e *Entry) Compare(o *Entry) int {
	a, b := e.Relations(), o.Relations()
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := CompareRelations(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}
