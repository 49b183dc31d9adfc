package relations

import (
	"strings"

	"github.com/etnz/debedit/syntax"
)

// Relation is one alternative of an entry: a package name with its optional
// architecture qualifier, version constraint, architecture restriction and
// build-profile restrictions.
//
//	libc6:amd64 (>= 2.36) [amd64 arm64] <!nocheck>
type Relation struct {
	node syntax.Node
}

// Requirement is the plain-data form of a Relation.
type Requirement struct {
	Name     string
	Archqual string
	// Constraint is zero when the relation is not versioned.
	Constraint VersionConstraint
	Version    string
	// Architectures are architecture names, "!" prefixed when negated.
	Architectures []string
	Profiles      [][]BuildProfile
}

// String renders r in canonical form.
func (r Requirement) String() string { return relationGreen(r).String() }

// RelationBuilder assembles a new Relation.
type RelationBuilder struct {
	r Requirement
}

// NewRelation starts building a relation on the package name.
func NewRelation(name string) *RelationBuilder {
	return &RelationBuilder{r: Requirement{Name: name}}
}

// Archqual sets the architecture qualifier, as in "python3:any".
func (b *RelationBuilder) Archqual(arch string) *RelationBuilder {
	b.r.Archqual = arch
	return b
}

// Version sets the version constraint.
func (b *RelationBuilder) Version(c VersionConstraint, version string) *RelationBuilder {
	b.r.Constraint, b.r.Version = c, version
	return b
}

// Architectures restricts the relation to some architectures.
func (b *RelationBuilder) Architectures(archs ...string) *RelationBuilder {
	b.r.Architectures = archs
	return b
}

// Profile adds a build-profile restriction list.
func (b *RelationBuilder) Profile(terms ...BuildProfile) *RelationBuilder {
	b.r.Profiles = append(b.r.Profiles, terms)
	return b
}

// Build returns the relation, alone in its own entry.
func (b *RelationBuilder) Build() *Relation {
	return FromRequirement(b.r)
}

// FromRequirement renders r as a standalone relation.
func FromRequirement(r Requirement) *Relation {
	root := syntax.NewTree(rootGreen([]syntax.GreenElement{
		entryGreen([]syntax.GreenElement{relationGreen(r)}),
	}))
	return &Relation{node: root.Child(0).Child(0)}
}

// ParseRelation parses text holding exactly one relation.
func ParseRelation(text string, opts ...ParseOption) (*Relation, error) {
	e, err := ParseEntry(text, opts...)
	if err != nil {
		return nil, err
	}
	if e.Len() > 1 {
		return nil, ErrMultipleRelations
	}
	return e.Relation(0), nil
}

// Node returns the syntax node of the relation.
func (r *Relation) Node() syntax.Node { return r.node }

func (r *Relation) String() string { return r.node.String() }

// Name returns the package name.
func (r *Relation) Name() string {
	if n, ok := r.node.FirstChild(KindIdent); ok {
		return n.String()
	}
	return ""
}

// Archqual returns the architecture qualifier.
func (r *Relation) Archqual() (string, bool) {
	q, ok := r.node.FirstChild(KindArchqual)
	if !ok {
		return "", false
	}
	id, ok := q.FirstChild(KindIdent)
	if !ok {
		return "", false
	}
	return id.String(), true
}

// SetArchqual sets the architecture qualifier. An empty arch removes it.
func (r *Relation) SetArchqual(arch string) {
	q, ok := r.node.FirstChild(KindArchqual)
	switch {
	case ok && arch == "":
		r.detachWithSpace(q)
	case ok:
		q.Replace(archqualGreen(arch))
	case arch != "":
		at := 0
		if n, ok := r.node.FirstChild(KindIdent); ok {
			at = n.Index() + 1
		}
		r.node.Splice(at, at, archqualGreen(arch))
	}
}

// Version returns the constraint and the version the relation requires.
func (r *Relation) Version() (VersionConstraint, string, bool) {
	v, ok := r.node.FirstChild(KindVersion)
	if !ok {
		return 0, "", false
	}
	cn, ok := v.FirstChild(KindConstraint)
	if !ok {
		return 0, "", false
	}
	c, err := ParseVersionConstraint(cn.String())
	if err != nil {
		return 0, "", false
	}
	var version strings.Builder
	for _, t := range v.Children() {
		if k := t.Kind(); k == KindIdent || k == KindColon {
			version.WriteString(t.String())
		}
	}
	if version.Len() == 0 {
		return 0, "", false
	}
	return c, version.String(), true
}

// SetVersion sets the version constraint, keeping the rest of the relation.
func (r *Relation) SetVersion(c VersionConstraint, version string) {
	g := versionGreen(c, version)
	if v, ok := r.node.FirstChild(KindVersion); ok {
		v.Replace(g)
		return
	}
	at := 0
	if n, ok := r.node.FirstChild(KindArchqual); ok {
		at = n.Index() + 1
	} else if n, ok := r.node.FirstChild(KindIdent); ok {
		at = n.Index() + 1
	}
	r.node.Splice(at, at, space(), g)
}

// DropConstraint removes the version constraint and reports whether there
// was one.
func (r *Relation) DropConstraint() bool {
	v, ok := r.node.FirstChild(KindVersion)
	if ok {
		r.detachWithSpace(v)
	}
	return ok
}

// Architectures returns the architecture restriction, negated names
// prefixed with "!".
func (r *Relation) Architectures() ([]string, bool) {
	a, ok := r.node.FirstChild(KindArchitectures)
	if !ok {
		return nil, false
	}
	return terms(a), true
}

// SetArchitectures replaces the architecture restriction. No architecture
// removes it.
func (r *Relation) SetArchitectures(archs ...string) {
	a, ok := r.node.FirstChild(KindArchitectures)
	switch {
	case ok && len(archs) == 0:
		r.detachWithSpace(a)
	case ok:
		a.Replace(architecturesGreen(archs))
	case len(archs) > 0:
		at := r.node.Len()
		if p, ok := r.node.FirstChild(KindProfiles); ok {
			at = p.Index()
			// Keep the space before the profiles where it is.
			if prev, ok := p.PrevSibling(); ok && prev.Kind() == KindWhitespace {
				at = prev.Index()
			}
		}
		r.node.Splice(at, at, space(), architecturesGreen(archs))
	}
}

// Profiles returns the build-profile restriction lists.
func (r *Relation) Profiles() [][]BuildProfile {
	var ps [][]BuildProfile
	for _, n := range r.node.ChildrenOfKind(KindProfiles) {
		var list []BuildProfile
		for _, t := range terms(n) {
			list = append(list, ParseBuildProfile(t))
		}
		ps = append(ps, list)
	}
	return ps
}

// AddProfile appends a build-profile restriction list.
func (r *Relation) AddProfile(terms ...BuildProfile) {
	r.node.Append(space(), profilesGreen(terms))
}

// Requirement returns the plain-data form of the relation.
func (r *Relation) Requirement() Requirement {
	req := Requirement{Name: r.Name(), Profiles: r.Profiles()}
	req.Archqual, _ = r.Archqual()
	req.Constraint, req.Version, _ = r.Version()
	req.Architectures, _ = r.Architectures()
	return req
}

// Remove detaches the relation from its entry, along with one adjacent "|".
// An entry left without relations is removed from its list as well.
func (r *Relation) Remove() {
	parent, ok := r.node.Parent()
	if !ok {
		r.node.Detach()
		return
	}
	removeItem(parent, r.node.Index(), KindPipe)
	if len(parent.ChildrenOfKind(KindRelation)) == 0 {
		(&Entry{node: parent}).Remove()
	}
}

// detachWithSpace removes n and the whitespace preceding it.
func (r *Relation) detachWithSpace(n syntax.Node) {
	end := n.Index() + 1
	start := n.Index()
	for start > 0 && isTrivia(r.node.Child(start-1).Kind()) {
		start--
	}
	r.node.Splice(start, end)
}

// terms returns the names of a bracketed list, "!" prefixed when negated.
func terms(n syntax.Node) []string {
	var ts []string
	negated := false
	for _, c := range n.Children() {
		switch c.Kind() {
		case KindNot:
			negated = true
		case KindIdent:
			t := c.String()
			if negated {
				t = "!" + t
			}
			ts = append(ts, t)
			negated = false
		}
	}
	return ts
}

// removeItem detaches the child at index i of n together with one adjacent
// separator: the one before it if any, otherwise the one after it.
func removeItem(n syntax.Node, i int, sep syntax.Kind) {
	g := n.Green().(*syntax.GreenNode)
	kind := func(j int) syntax.Kind { return g.Child(j).Kind() }
	start, end := i, i+1

	j := i - 1
	for j >= 0 && isTrivia(kind(j)) {
		j--
	}
	if j >= 0 && kind(j) == sep {
		start = j
		for start > 0 && kind(start-1) == KindWhitespace {
			start--
		}
		n.Splice(start, end)
		return
	}

	k := end
	for k < g.Len() && isTrivia(kind(k)) {
		k++
	}
	if k < g.Len() && kind(k) == sep {
		end = k + 1
		for end < g.Len() && isTrivia(kind(end)) {
			end++
		}
	}
	n.Splice(start, end)
}
