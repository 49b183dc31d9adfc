package relations

import (
	"fmt"
	"strings"

	"github.com/etnz/debedit/syntax"
)

type parseOpts struct {
	substvars bool
}

// ParseOption configures Parse and ParseRelaxed.
type ParseOption func(*parseOpts)

// AllowSubstvars accepts ${name} and ${name:key} substitution variables
// where an entry is expected, as debian/control does before the build
// resolves them.
func AllowSubstvars() ParseOption {
	return func(o *parseOpts) { o.substvars = true }
}

type parser struct {
	tokens []syntax.Token
	pos    int
	b      syntax.Builder
	errors []string
	opts   parseOpts
}

func parse(text string, opts ...ParseOption) (*syntax.GreenNode, []string) {
	p := &parser{tokens: Lex(text)}
	for _, o := range opts {
		o(&p.opts)
	}
	p.b.StartNode(KindRoot)
	for {
		p.trivia()
		if p.eof() {
			break
		}
		p.item()
		p.trivia()
		if p.eof() {
			break
		}
		if p.at(KindComma) {
			p.bump()
			continue
		}
		p.unexpected("',' or end of file")
	}
	p.b.FinishNode()
	return p.b.Finish(), p.errors
}

func (p *parser) eof() bool { return p.pos >= len(p.tokens) }

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

// next returns the kind of the first token after the pending trivia.
func (p *parser) next() (syntax.Kind, bool) {
	n := 0
	for {
		k, ok := p.kindAt(n)
		if !ok || !isTrivia(k) {
			return k, ok
		}
		n++
	}
}

func (p *parser) nextIs(kind syntax.Kind) bool {
	k, ok := p.next()
	return ok && k == kind
}

func (p *parser) bump() {
	t := p.tokens[p.pos]
	p.b.Token(t.Kind, t.Text)
	p.pos++
}

func (p *parser) trivia() {
	for !p.eof() && isTrivia(p.tokens[p.pos].Kind) {
		p.bump()
	}
}

func (p *parser) describe() string {
	t := p.tokens[p.pos]
	return fmt.Sprintf("%s %q", KindName(t.Kind), t.Text)
}

// unexpected reports what was expected and wraps the current token in an
// ERROR node.
func (p *parser) unexpected(what string) {
	if p.eof() {
		p.missing(what)
		return
	}
	p.errors = append(p.errors, fmt.Sprintf("expected %s, got %s", what, p.describe()))
	p.b.StartNode(KindError)
	p.bump()
	p.b.FinishNode()
}

// missing reports what was expected without consuming anything.
func (p *parser) missing(what string) {
	if p.eof() {
		p.errors = append(p.errors, fmt.Sprintf("expected %s but got end of file", what))
		return
	}
	p.errors = append(p.errors, fmt.Sprintf("expected %s, got %s", what, p.describe()))
}

// text returns the text of the tokens from start to the current one.
func (p *parser) text(start int) string {
	var b strings.Builder
	for _, t := range p.tokens[start:p.pos] {
		b.WriteString(t.Text)
	}
	return b.String()
}

// atBoundary reports whether the current token closes the relation being
// parsed.
func (p *parser) atBoundary() bool {
	return p.eof() || p.at(KindComma) || p.at(KindPipe)
}

// item parses whatever may stand between two commas.
func (p *parser) item() {
	switch {
	case p.at(KindIdent):
		p.entry()
	case p.at(KindDollar):
		if p.opts.substvars {
			p.substvar()
			return
		}
		start := p.pos
		p.b.StartNode(KindError)
		p.substvar()
		p.b.FinishNode()
		p.errors = append(p.errors, fmt.Sprintf("expected package name, got substvar %q", p.text(start)))
	case p.at(KindComma):
		p.missing("package name")
	default:
		p.unexpected("package name")
	}
}

func (p *parser) substvar() {
	p.b.StartNode(KindSubstvar)
	p.bump()
	if p.at(KindLCurly) {
		p.bump()
	} else {
		p.missing("'{'")
	}
	for p.at(KindIdent) || p.at(KindColon) {
		p.bump()
	}
	if p.at(KindRCurly) {
		p.bump()
	} else {
		p.missing("'}'")
	}
	p.b.FinishNode()
}

func (p *parser) entry() {
	p.b.StartNode(KindEntry)
	p.relation()
	for p.nextIs(KindPipe) {
		p.trivia()
		p.bump()
		p.trivia()
		if p.at(KindIdent) {
			p.relation()
		} else {
			p.missing("package name")
		}
	}
	p.b.FinishNode()
}

func (p *parser) relation() {
	p.b.StartNode(KindRelation)
	p.bump()
	if p.nextIs(KindColon) {
		p.trivia()
		p.b.StartNode(KindArchqual)
		p.bump()
		p.trivia()
		if p.at(KindIdent) {
			p.bump()
		} else if p.atBoundary() {
			p.missing("architecture name")
		} else {
			p.unexpected("architecture name")
		}
		p.b.FinishNode()
	}
	if p.nextIs(KindLParens) {
		p.trivia()
		p.version()
	}
	if p.nextIs(KindLBracket) {
		p.trivia()
		p.architectures()
	}
	for p.nextIs(KindLAngle) {
		p.trivia()
		p.profiles()
	}
	p.b.FinishNode()
}

func (p *parser) version() {
	p.b.StartNode(KindVersion)
	p.bump()
	p.trivia()

	p.b.StartNode(KindConstraint)
	start := p.pos
	for p.at(KindLAngle) || p.at(KindRAngle) || p.at(KindEqual) {
		p.bump()
	}
	p.b.FinishNode()
	if op := p.text(start); op == "" {
		p.missing("version constraint")
	} else if _, err := ParseVersionConstraint(op); err != nil {
		p.errors = append(p.errors, fmt.Sprintf("expected version constraint, got %q", op))
	}

	p.trivia()
	if p.at(KindIdent) {
		for p.at(KindIdent) || p.at(KindColon) {
			p.bump()
		}
	} else if p.atBoundary() || p.at(KindRParens) {
		p.missing("version")
	} else {
		p.unexpected("version")
	}
	p.trivia()
	switch {
	case p.at(KindRParens):
		p.bump()
	case p.atBoundary():
		p.missing("')'")
	default:
		p.unexpected("')'")
		if p.at(KindRParens) {
			p.bump()
		}
	}
	p.b.FinishNode()
}

func (p *parser) architectures() {
	p.b.StartNode(KindArchitectures)
	p.bump()
	for {
		p.trivia()
		switch {
		case p.at(KindNot):
			p.bump()
			if p.at(KindIdent) {
				p.bump()
			} else {
				p.missing("architecture name")
			}
			continue
		case p.at(KindIdent):
			p.bump()
			continue
		case p.at(KindRBracket):
			p.bump()
		case p.atBoundary():
			p.missing("architecture name or ']'")
		default:
			p.unexpected("architecture name or ']'")
			continue
		}
		break
	}
	p.b.FinishNode()
}

func (p *parser) profiles() {
	p.b.StartNode(KindProfiles)
	p.bump()
	for {
		p.trivia()
		switch {
		case p.at(KindNot):
			p.bump()
			if p.at(KindIdent) {
				p.bump()
			} else {
				p.missing("profile name")
			}
			continue
		case p.at(KindIdent):
			p.bump()
			continue
		case p.at(KindRAngle):
			p.bump()
		case p.atBoundary():
			p.missing("profile name or '>'")
		default:
			p.unexpected("profile name or '>'")
			continue
		}
		break
	}
	p.b.FinishNode()
}
