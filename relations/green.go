package relations

import (
	"strings"

	"github.com/etnz/debedit/syntax"
)

func tok(kind syntax.Kind, text string) *syntax.GreenToken { return syntax.NewToken(kind, text) }

func space() *syntax.GreenToken { return tok(KindWhitespace, " ") }

// lexed turns text into green tokens.
func lexed(text string) []syntax.GreenElement {
	var es []syntax.GreenElement
	for _, t := range Lex(text) {
		es = append(es, tok(t.Kind, t.Text))
	}
	return es
}

func archqualGreen(arch string) *syntax.GreenNode {
	return syntax.NewNode(KindArchqual, tok(KindColon, ":"), tok(KindIdent, arch))
}

func versionGreen(c VersionConstraint, version string) *syntax.GreenNode {
	es := []syntax.GreenElement{tok(KindLParens, "(")}
	es = append(es, syntax.NewNode(KindConstraint, lexed(c.String())...))
	es = append(es, space())
	es = append(es, lexed(version)...)
	es = append(es, tok(KindRParens, ")"))
	return syntax.NewNode(KindVersion, es...)
}

// termsGreen renders a bracketed list of possibly negated names.
func termsGreen(kind, openKind, closeKind syntax.Kind, openText, closeText string, terms []string) *syntax.GreenNode {
	es := []syntax.GreenElement{tok(openKind, openText)}
	for i, t := range terms {
		if i > 0 {
			es = append(es, space())
		}
		if name, ok := strings.CutPrefix(t, "!"); ok {
			es = append(es, tok(KindNot, "!"))
			t = name
		}
		es = append(es, tok(KindIdent, t))
	}
	es = append(es, tok(closeKind, closeText))
	return syntax.NewNode(kind, es...)
}

func architecturesGreen(archs []string) *syntax.GreenNode {
	return termsGreen(KindArchitectures, KindLBracket, KindRBracket, "[", "]", archs)
}

func profilesGreen(profiles []BuildProfile) *syntax.GreenNode {
	terms := make([]string, len(profiles))
	for i, p := range profiles {
		terms[i] = p.String()
	}
	return termsGreen(KindProfiles, KindLAngle, KindRAngle, "<", ">", terms)
}

// relationGreen renders r in canonical form.
func relationGreen(r Requirement) *syntax.GreenNode {
	es := []syntax.GreenElement{tok(KindIdent, r.Name)}
	if r.Archqual != "" {
		es = append(es, archqualGreen(r.Archqual))
	}
	if r.Constraint != 0 {
		es = append(es, space(), versionGreen(r.Constraint, r.Version))
	}
	if len(r.Architectures) > 0 {
		es = append(es, space(), architecturesGreen(r.Architectures))
	}
	for _, p := range r.Profiles {
		es = append(es, space(), profilesGreen(p))
	}
	return syntax.NewNode(KindRelation, es...)
}

// joined returns the items separated by sep and the given padding.
func joined(kind, sep syntax.Kind, sepText string, padBefore bool, items []syntax.GreenElement) *syntax.GreenNode {
	var es []syntax.GreenElement
	for i, it := range items {
		if i > 0 {
			if padBefore {
				es = append(es, space())
			}
			es = append(es, tok(sep, sepText), space())
		}
		es = append(es, it)
	}
	return syntax.NewNode(kind, es...)
}

func entryGreen(rels []syntax.GreenElement) *syntax.GreenNode {
	return joined(KindEntry, KindPipe, "|", true, rels)
}

func rootGreen(items []syntax.GreenElement) *syntax.GreenNode {
	return joined(KindRoot, KindComma, ",", false, items)
}
