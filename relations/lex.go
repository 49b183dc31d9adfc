package relations

import (
	"strings"
	"unicode/utf8"

	"github.com/etnz/debedit/syntax"
)

var punctuation = map[byte]syntax.Kind{
	':': KindColon,
	'|': KindPipe,
	',': KindComma,
	'(': KindLParens,
	')': KindRParens,
	'[': KindLBracket,
	']': KindRBracket,
	'!': KindNot,
	'<': KindLAngle,
	'>': KindRAngle,
	'=': KindEqual,
	'$': KindDollar,
	'{': KindLCurly,
	'}': KindRCurly,
	'\n': KindNewline,
}

// Lex splits a relation field value into tokens. Package names, versions
// and architecture names are all IDENT tokens; characters that fit no rule
// become one-rune ERROR tokens.
func Lex(text string) []syntax.Token {
	var toks []syntax.Token
	for pos := 0; pos < len(text); {
		rest := text[pos:]
		c := rest[0]
		kind, n := KindError, 0
		if k, ok := punctuation[c]; ok {
			kind, n = k, 1
		} else {
			switch {
			case isSpace(c):
				kind, n = KindWhitespace, span(rest, isSpace)
			case c == '#':
				kind, n = KindComment, len(rest)
				if i := strings.IndexAny(rest, "\r\n"); i >= 0 {
					n = i
				}
			case isIdentChar(c):
				kind, n = KindIdent, span(rest, isIdentChar)
			default:
				_, n = utf8.DecodeRuneInString(rest)
			}
		}
		toks = append(toks, syntax.Token{Kind: kind, Text: rest[:n]})
		pos += n
	}
	return toks
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' }

func isIdentChar(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' ||
		c == '-' || c == '.' || c == '+' || c == '~'
}

func span(s string, f func(byte) bool) int {
	n := 0
	for n < len(s) && f(s[n]) {
		n++
	}
	return n
}
