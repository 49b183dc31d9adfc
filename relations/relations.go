package relations

import (
	"slices"

	"github.com/etnz/debedit/syntax"
)

// Relations is a parsed relations field, such as the value of Depends or
// Build-Depends: a comma separated list of entries.
//
// Edits go through the lossless tree, so text outside the edited entry is
// kept byte for byte, including malformed parts of a relaxed parse.
type Relations struct {
	root syntax.Node
}

// New returns a relations field holding copies of entries, joined by ", ".
func New(entries ...*Entry) *Relations {
	es := make([]syntax.GreenElement, len(entries))
	for i, e := range entries {
		es[i] = e.node.Green()
	}
	return &Relations{root: syntax.NewTree(rootGreen(es))}
}

// Parse parses text strictly: any diagnostic makes it fail with a
// *ParseError.
func Parse(text string, opts ...ParseOption) (*Relations, error) {
	rs, errs := ParseRelaxed(text, opts...)
	if len(errs) > 0 {
		return nil, &ParseError{Errors: errs}
	}
	return rs, nil
}

// ParseRelaxed parses text, recovering from every error. The returned tree
// always renders back to text.
func ParseRelaxed(text string, opts ...ParseOption) (*Relations, []string) {
	g, errs := parse(text, opts...)
	return &Relations{root: syntax.NewTree(g)}, errs
}

// UnmarshalText parses text strictly into rs.
func (rs *Relations) UnmarshalText(text []byte) error {
	p, err := Parse(string(text))
	if err != nil {
		return err
	}
	*rs = *p
	return nil
}

// MarshalText returns the text of rs.
func (rs *Relations) MarshalText() ([]byte, error) {
	if rs.root.IsZero() {
		return nil, nil
	}
	return []byte(rs.String()), nil
}

// Node returns the root node.
func (rs *Relations) Node() syntax.Node { return rs.root }

func (rs *Relations) String() string { return rs.root.String() }

// Entries returns the entries, in order.
func (rs *Relations) Entries() []*Entry {
	var es []*Entry
	for _, n := range rs.root.ChildrenOfKind(KindEntry) {
		es = append(es, &Entry{node: n})
	}
	return es
}

// Entry returns the i-th entry. It panics if i is out of range.
func (rs *Relations) Entry(i int) *Entry {
	ns := rs.root.ChildrenOfKind(KindEntry)
	if i < 0 || i >= len(ns) {
		panic("relations: entry index out of range")
	}
	return &Entry{node: ns[i]}
}

// Len returns the number of entries.
func (rs *Relations) Len() int { return len(rs.root.ChildrenOfKind(KindEntry)) }

// IsEmpty reports whether there is no entry.
func (rs *Relations) IsEmpty() bool { return rs.Len() == 0 }

// Substvars returns the substitution variables, such as "${misc:Depends}".
func (rs *Relations) Substvars() []string {
	var ss []string
	for _, n := range rs.root.ChildrenOfKind(KindSubstvar) {
		ss = append(ss, n.String())
	}
	return ss
}

// Insert adds a copy of e so that it becomes entry i. Inserting at Len
// appends. It panics if i is out of range.
func (rs *Relations) Insert(i int, e *Entry) {
	ns := rs.root.ChildrenOfKind(KindEntry)
	if i < 0 || i > len(ns) {
		panic("relations: entry index out of range")
	}
	if i == len(ns) {
		rs.Push(e)
		return
	}
	at := ns[i].Index()
	rs.root.Splice(at, at, e.node.Green(), tok(KindComma, ","), space())
}

// Push appends a copy of e.
func (rs *Relations) Push(e *Entry) {
	g := e.node.Green()
	last := -1
	for i, n := range rs.root.Children() {
		if !isTrivia(n.Kind()) {
			last = i
		}
	}
	if last < 0 {
		rs.root.Splice(0, 0, g)
		return
	}
	at := last + 1
	if rs.root.Child(last).Kind() != KindComma {
		rs.root.Splice(at, at, tok(KindComma, ","), space(), g)
		return
	}
	if at < rs.root.Len() && rs.root.Child(at).Kind() == KindWhitespace {
		rs.root.Splice(at+1, at+1, g)
		return
	}
	rs.root.Splice(at, at, space(), g)
}

// Replace substitutes a copy of e for entry i. It panics if i is out of
// range.
func (rs *Relations) Replace(i int, e *Entry) {
	rs.Entry(i).node.Replace(e.node.Green())
}

// Remove detaches entry i. It panics if i is out of range.
func (rs *Relations) Remove(i int) {
	rs.Entry(i).Remove()
}

// SatisfiedBy reports whether every entry is satisfied by the versions that
// lookup knows about.
func (rs *Relations) SatisfiedBy(lookup VersionLookup) bool {
	for _, e := range rs.Entries() {
		if !e.SatisfiedBy(lookup) {
			return false
		}
	}
	return true
}

// Requirements returns the plain-data form of the entries.
func (rs *Relations) Requirements() [][]Requirement {
	var reqs [][]Requirement
	for _, e := range rs.Entries() {
		var alts []Requirement
		for _, r := range e.Relations() {
			alts = append(alts, r.Requirement())
		}
		reqs = append(reqs, alts)
	}
	return reqs
}

// WrapAndSort returns a normalized copy: every relation in canonical form,
// entries sorted, substvars last, all joined by ", ". Alternatives keep
// their order. Comments and malformed parts are dropped.
func (rs *Relations) WrapAndSort() *Relations {
	entries := rs.Entries()
	slices.SortStableFunc(entries, (*Entry).Compare)

	var items []syntax.GreenElement
	for _, e := range entries {
		var alts []syntax.GreenElement
		for _, r := range e.Relations() {
			alts = append(alts, relationGreen(r.Requirement()))
		}
		items = append(items, entryGreen(alts))
	}
	for _, s := range rs.root.ChildrenOfKind(KindSubstvar) {
		items = append(items, s.Green())
	}
	return &Relations{root: syntax.NewTree(rootGreen(items))}
}
