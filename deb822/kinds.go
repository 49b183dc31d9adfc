package deb822

import "github.com/etnz/debedit/syntax"

// Token and node kinds of the deb822 grammar.
const (
	KindKey syntax.Kind = iota
	KindValue
	KindColon
	KindIndent
	KindNewline
	KindWhitespace
	KindComment
	KindError

	KindRoot
	KindParagraph
	KindEntry
	KindEmptyLine
)

var kindNames = map[syntax.Kind]string{
	KindKey:        "KEY",
	KindValue:      "VALUE",
	KindColon:      "COLON",
	KindIndent:     "INDENT",
	KindNewline:    "NEWLINE",
	KindWhitespace: "WHITESPACE",
	KindComment:    "COMMENT",
	KindError:      "ERROR",
	KindRoot:       "ROOT",
	KindParagraph:  "PARAGRAPH",
	KindEntry:      "ENTRY",
	KindEmptyLine:  "EMPTY_LINE",
}

// KindName returns the display name of a deb822 kind, such as "KEY".
func KindName(k syntax.Kind) string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "UNKNOWN"
}
