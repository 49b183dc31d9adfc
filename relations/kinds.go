package relations

import "github.com/etnz/debedit/syntax"

// Token and node kinds of the relation grammar.
const (
	KindIdent syntax.Kind = iota
	KindColon
	KindPipe
	KindComma
	KindLParens
	KindRParens
	KindLBracket
	KindRBracket
	KindNot
	KindLAngle
	KindRAngle
	KindEqual
	KindWhitespace
	KindNewline
	KindComment
	KindDollar
	KindLCurly
	KindRCurly
	KindError

	KindRoot
	KindEntry
	KindRelation
	KindArchqual
	KindVersion
	KindConstraint
	KindArchitectures
	KindProfiles
	KindSubstvar
)

var kindNames = map[syntax.Kind]string{
	KindIdent:         "IDENT",
	KindColon:         "COLON",
	KindPipe:          "PIPE",
	KindComma:         "COMMA",
	KindLParens:       "L_PARENS",
	KindRParens:       "R_PARENS",
	KindLBracket:      "L_BRACKET",
	KindRBracket:      "R_BRACKET",
	KindNot:           "NOT",
	KindLAngle:        "L_ANGLE",
	KindRAngle:        "R_ANGLE",
	KindEqual:         "EQUAL",
	KindWhitespace:    "WHITESPACE",
	KindNewline:       "NEWLINE",
	KindComment:       "COMMENT",
	KindDollar:        "DOLLAR",
	KindLCurly:        "L_CURLY",
	KindRCurly:        "R_CURLY",
	KindError:         "ERROR",
	KindRoot:          "ROOT",
	KindEntry:         "ENTRY",
	KindRelation:      "RELATION",
	KindArchqual:      "ARCHQUAL",
	KindVersion:       "VERSION",
	KindConstraint:    "CONSTRAINT",
	KindArchitectures: "ARCHITECTURES",
	KindProfiles:      "PROFILES",
	KindSubstvar:      "SUBSTVAR",
}

// KindName returns the display name of a relation kind, such as "IDENT".
func KindName(k syntax.Kind) string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "UNKNOWN"
}

// isTrivia reports whether tokens of kind k carry no meaning.
func isTrivia(k syntax.Kind) bool {
	return k == KindWhitespace || k == KindNewline || k == KindComment
}
