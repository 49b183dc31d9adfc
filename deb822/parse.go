package deb822

import (
	"fmt"

	"github.com/etnz/debedit/syntax"
)

// parser is a recursive-descent parser over the token stream of a document.
// It never stops on bad input: unexpected tokens are wrapped in ERROR nodes
// and reported in errors.
type parser struct {
	tokens []syntax.Token
	pos    int
	b      syntax.Builder
	errors []string
}

// parse builds the green tree of text and returns it with its diagnostics.
func parse(text string) (*syntax.GreenNode, []string) {
	p := &parser{tokens: Lex(text)}
	p.b.StartNode(KindRoot)
	for !p.eof() {
		p.blankLines()
		if !p.eof() {
			p.paragraph()
		}
	}
	p.b.FinishNode()
	return p.b.Finish(), p.errors
}

func (p *parser) eof() bool { return p.pos >= len(p.tokens) }

// kindAt returns the kind of the token n positions ahead.
func (p *parser) kindAt(n int) (syntax.Kind, bool) {
	if p.pos+n >= len(p.tokens) {
		return 0, false
	}
	return p.tokens[p.pos+n].Kind, true
}

func (p *parser) at(kind syntax.Kind) bool {
	k, ok := p.kindAt(0)
	return ok && k == kind
}

// lineEndAt reports whether the token n positions ahead ends a line.
func (p *parser) lineEndAt(n int) bool {
	k, ok := p.kindAt(n)
	return !ok || k == KindNewline
}

func (p *parser) bump() {
	t := p.tokens[p.pos]
	p.b.Token(t.Kind, t.Text)
	p.pos++
}

// describe renders the current token for a diagnostic.
func (p *parser) describe() string {
	t := p.tokens[p.pos]
	return fmt.Sprintf("%s %q", KindName(t.Kind), t.Text)
}

// unexpected reports that what was expected and wraps the current token in an
// ERROR node. At the end of input only the report is made.
func (p *parser) unexpected(what string) {
	if p.eof() {
		p.errors = append(p.errors, fmt.Sprintf("expected %s but got end of file", what))
		return
	}
	p.errors = append(p.errors, fmt.Sprintf("expected %s, got %s", what, p.describe()))
	p.b.StartNode(KindError)
	p.bump()
	p.b.FinishNode()
}

// missing reports that what was expected without consuming anything. It is
// used before line ends so that the line structure survives.
func (p *parser) missing(what string) {
	if p.eof() {
		p.errors = append(p.errors, fmt.Sprintf("expected %s but got end of file", what))
		return
	}
	p.errors = append(p.errors, fmt.Sprintf("expected %s, got %s", what, p.describe()))
}

// blankLine reports whether the current line holds no field: an empty line,
// a whitespace-only line or a comment line.
func (p *parser) blankLine() bool {
	k, ok := p.kindAt(0)
	if !ok {
		return false
	}
	switch k {
	case KindNewline, KindWhitespace, KindComment:
		return true
	case KindIndent:
		return p.lineEndAt(1)
	}
	return false
}

// blankLines wraps each blank or comment line in an EMPTY_LINE node.
func (p *parser) blankLines() {
	for p.blankLine() {
		p.b.StartNode(KindEmptyLine)
		for !p.eof() {
			nl := p.at(KindNewline)
			p.bump()
			if nl {
				break
			}
		}
		p.b.FinishNode()
	}
}

// paragraphEnd reports whether the current line closes the paragraph: a
// blank line, or a run of comment lines not followed by another field.
func (p *parser) paragraphEnd() bool {
	k, _ := p.kindAt(0)
	switch k {
	case KindNewline:
		return true
	case KindIndent:
		return p.lineEndAt(1)
	case KindComment:
		n := 0
		for {
			k, ok := p.kindAt(n)
			if !ok {
				return true
			}
			switch k {
			case KindComment:
				n++
				if k, ok := p.kindAt(n); ok && k == KindNewline {
					n++
				}
				continue
			case KindNewline:
				return true
			case KindIndent:
				return p.lineEndAt(n + 1)
			}
			return false
		}
	}
	return false
}

func (p *parser) paragraph() {
	p.b.StartNode(KindParagraph)
	for !p.eof() && !p.paragraphEnd() {
		p.entry()
	}
	p.b.FinishNode()
}

func (p *parser) entry() {
	p.b.StartNode(KindEntry)
	for p.at(KindComment) {
		p.bump()
		if p.at(KindNewline) {
			p.bump()
		}
	}

	if p.at(KindKey) {
		p.bump()
	} else if p.lineEndAt(0) {
		p.missing("key")
	} else {
		p.unexpected("key")
	}
	for p.at(KindWhitespace) {
		p.bump()
	}
	if p.at(KindColon) {
		p.bump()
	} else if p.lineEndAt(0) {
		p.missing("':'")
	} else {
		p.unexpected("':'")
	}

	for {
		for p.at(KindWhitespace) || p.at(KindValue) {
			p.bump()
		}
		if p.eof() {
			break
		}
		if p.at(KindNewline) {
			p.bump()
			if p.at(KindIndent) && !p.lineEndAt(1) {
				p.bump()
				continue
			}
			break
		}
		p.unexpected("newline")
	}
	p.b.FinishNode()
}
