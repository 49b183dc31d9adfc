package relations

import (
	"strings"

	version "github.com/knqyf263/go-deb-version"
)

// VersionLookup gives the version of the installed or available package
// called name.
type VersionLookup interface {
	LookupVersion(name string) (string, bool)
}

// VersionLookupFunc adapts a function to VersionLookup.
type VersionLookupFunc func(name string) (string, bool)

// LookupVersion calls f(name).
func (f VersionLookupFunc) LookupVersion(name string) (string, bool) { return f(name) }

// VersionMap is a VersionLookup over a fixed set of packages.
type VersionMap map[string]string

// LookupVersion returns m[name].
func (m VersionMap) LookupVersion(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// SatisfiedBy reports whether lookup knows the package and, when the
// relation is versioned, whether its version meets the constraint.
func (r *Relation) SatisfiedBy(lookup VersionLookup) bool {
	actual, ok := lookup.LookupVersion(r.Name())
	if !ok {
		return false
	}
	if _, versioned := r.node.FirstChild(KindVersion); !versioned {
		return true
	}
	c, want, ok := r.Version()
	if !ok {
		return false
	}
	a, err := version.NewVersion(actual)
	if err != nil {
		return false
	}
	w, err := version.NewVersion(want)
	if err != nil {
		return false
	}
	return c.Holds(a.Compare(w))
}

// CompareVersions compares two Debian versions. Versions that do not parse
// are compared as strings.
func CompareVersions(a, b string) int {
	va, err := version.NewVersion(a)
	if err != nil {
		return strings.Compare(a, b)
	}
	vb, err := version.NewVersion(b)
	if err != nil {
		return strings.Compare(a, b)
	}
	return va.Compare(vb)
}

// CompareRelations orders relations by name, then by constraint and
// version. A relation without a version sorts first.
func CompareRelations(a, b *Relation) int {
	if c := strings.Compare(a.Name(), b.Name()); c != 0 {
		return c
	}
	ac, av, aok := a.Version()
	bc, bv, bok := b.Version()
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	}
	if ac != bc {
		return int(ac) - int(bc)
	}
	return CompareVersions(av, bv)
}
