package relations

import (
	"fmt"
	"strings"
)

// VersionConstraint is the comparison operator of a versioned relation.
// The zero value means "no constraint".
//
// Reference: https://www.debian.org/doc/debian-policy/ch-relationships.html#syntax-of-relationship-fields
type VersionConstraint int

// Constraints, in sort order.
const (
	LessThan         VersionConstraint = iota + 1 // <<
	LessThanEqual                                 // <=
	Equal                                         // =
	GreaterThan                                   // >>
	GreaterThanEqual                              // >=
)

var constraintText = map[VersionConstraint]string{
	LessThan:         "<<",
	LessThanEqual:    "<=",
	Equal:            "=",
	GreaterThan:      ">>",
	GreaterThanEqual: ">=",
}

func (c VersionConstraint) String() string {
	if s, ok := constraintText[c]; ok {
		return s
	}
	return fmt.Sprintf("VersionConstraint(%d)", int(c))
}

// ParseVersionConstraint parses one of ">=", "<=", "=", ">>" and "<<".
func ParseVersionConstraint(s string) (VersionConstraint, error) {
	for c, text := range constraintText {
		if s == text {
			return c, nil
		}
	}
	return 0, fmt.Errorf("invalid version constraint %q", s)
}

// Holds reports whether cmp, the result of comparing an actual version to
// the required one, satisfies the constraint.
func (c VersionConstraint) Holds(cmp int) bool {
	switch c {
	case LessThan:
		return cmp < 0
	case LessThanEqual:
		return cmp <= 0
	case Equal:
		return cmp == 0
	case GreaterThan:
		return cmp > 0
	case GreaterThanEqual:
		return cmp >= 0
	}
	return false
}

// BuildProfile is one term of a build-profile restriction list, such as
// "nocheck" or "!cross".
type BuildProfile struct {
	Name    string
	Negated bool
}

func (b BuildProfile) String() string {
	if b.Negated {
		return "!" + b.Name
	}
	return b.Name
}

// ParseBuildProfile parses a term such as "!nocheck".
func ParseBuildProfile(s string) BuildProfile {
	if name, ok := strings.CutPrefix(s, "!"); ok {
		return BuildProfile{Name: name, Negated: true}
	}
	return BuildProfile{Name: s}
}
