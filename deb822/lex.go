package deb822

import (
	"strings"
	"unicode/utf8"

	"github.com/etnz/debedit/syntax"
)

// lexer holds the line state of a single tokenization run.
type lexer struct {
	input string
	pos   int

	startOfLine bool
	indent      int
	afterKey    bool
	colonCount  int

	// valueOnly lexes every line as value content.
	valueOnly bool
}

// Lex splits text into deb822 tokens. It never fails: characters that fit no
// rule become one-rune ERROR tokens, and concatenating the token texts gives
// back text exactly.
func Lex(text string) []syntax.Token {
	l := lexer{input: text, startOfLine: true}
	return l.run()
}

// LexValue splits an isolated field value into tokens. There is no key or
// colon: the first line is VALUE content and each later line is an optional
// INDENT followed by VALUE content.
func LexValue(text string) []syntax.Token {
	l := lexer{input: text, valueOnly: true}
	return l.run()
}

func (l *lexer) run() []syntax.Token {
	var toks []syntax.Token
	for l.pos < len(l.input) {
		toks = append(toks, l.next())
	}
	return toks
}

func (l *lexer) emit(kind syntax.Kind, n int) syntax.Token {
	t := syntax.Token{Kind: kind, Text: l.input[l.pos : l.pos+n]}
	l.pos += n
	return t
}

func (l *lexer) next() syntax.Token {
	rest := l.input[l.pos:]
	c := rest[0]
	switch {
	case c == '\n' || c == '\r':
		n := 1
		if c == '\r' && len(rest) > 1 && rest[1] == '\n' {
			n = 2
		}
		l.startOfLine, l.indent, l.afterKey, l.colonCount = true, 0, false, 0
		return l.emit(KindNewline, n)

	case c == '#' && l.startOfLine && l.indent == 0 && !l.valueOnly:
		l.startOfLine = false
		return l.emit(KindComment, lineLen(rest))

	case isIndentChar(c):
		n := spanOf(rest, isIndentChar)
		if l.startOfLine {
			l.startOfLine = false
			l.indent = n
			return l.emit(KindIndent, n)
		}
		return l.emit(KindWhitespace, n)

	case c == ':' && l.afterKey && l.colonCount == 0:
		l.colonCount++
		return l.emit(KindColon, 1)

	case l.startOfLine && !l.valueOnly && isKeyStart(c):
		l.startOfLine = false
		l.afterKey = true
		return l.emit(KindKey, spanOf(rest, isKeyChar))

	case !l.startOfLine || l.valueOnly:
		l.startOfLine = false
		return l.emit(KindValue, lineLen(rest))
	}
	l.startOfLine = false
	_, n := utf8.DecodeRuneInString(rest)
	return l.emit(KindError, n)
}

func isIndentChar(c byte) bool { return c == ' ' || c == '\t' }

// isKeyChar reports whether c may appear in a field name: ASCII letters,
// digits, '-', '_' and '.'.
func isKeyChar(c byte) bool {
	return isKeyStart(c) || '0' <= c && c <= '9' || c == '-' || c == '_' || c == '.'
}

func isKeyStart(c byte) bool { return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }

// ValidKey reports whether key is a well-formed field name, matching
// [A-Za-z][A-Za-z0-9-_.]*.
func ValidKey(key string) bool {
	return key != "" && isKeyStart(key[0]) && spanOf(key, isKeyChar) == len(key)
}

func spanOf(s string, f func(byte) bool) int {
	n := 0
	for n < len(s) && f(s[n]) {
		n++
	}
	return n
}

// lineLen returns the length of s up to, not including, the first line
// terminator.
func lineLen(s string) int {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return i
	}
	return len(s)
}
