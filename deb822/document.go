package deb822

import (
	"fmt"
	"io"

	"github.com/etnz/debedit/syntax"
)

// Document is a lossless, editable deb822 file: a sequence of paragraphs
// separated by blank lines, with comments kept where they were written.
//
// String always returns the exact input text until the document is edited,
// and edits only touch the text of the element they are applied to.
type Document struct {
	root syntax.Node
}

// New returns an empty document.
func New() *Document {
	return &Document{root: syntax.NewTree(syntax.NewNode(KindRoot))}
}

// Parse parses text strictly. Any diagnostic makes it fail with a
// *ParseError holding all of them.
func Parse(text string) (*Document, error) {
	d, errs := ParseRelaxed(text)
	if len(errs) > 0 {
		return nil, &ParseError{Errors: errs}
	}
	return d, nil
}

// ParseRelaxed parses text and always returns a document, along with the
// diagnostics of the malformed parts. The document still reproduces text
// exactly; malformed parts are kept in ERROR nodes.
func ParseRelaxed(text string) (*Document, []string) {
	g, errs := parse(text)
	return &Document{root: syntax.NewTree(g)}, errs
}

// Node returns the root syntax node of the document.
func (d *Document) Node() syntax.Node { return d.root }

// Green returns the current immutable tree of the document.
func (d *Document) Green() *syntax.GreenNode { return d.root.GreenRoot() }

// String returns the text of the document.
func (d *Document) String() string { return d.root.String() }

// WriteTo writes the text of the document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.String())
	return int64(n), err
}

// Dump returns a debug rendering of the syntax tree.
func (d *Document) Dump() string { return syntax.Dump(d.Green(), KindName) }

// Clone returns an independent copy of the document. Edits on either one are
// not visible through the other.
func (d *Document) Clone() *Document {
	return &Document{root: syntax.NewTree(d.Green())}
}

// Equal reports whether both documents have the same tree.
func (d *Document) Equal(o *Document) bool {
	return syntax.Equal(d.Green(), o.Green())
}

// Paragraphs returns the paragraphs of the document in order.
func (d *Document) Paragraphs() []*Paragraph {
	var ps []*Paragraph
	for _, n := range d.root.ChildrenOfKind(KindParagraph) {
		ps = append(ps, &Paragraph{node: n})
	}
	return ps
}

// Len returns the number of paragraphs.
func (d *Document) Len() int {
	return len(d.root.ChildrenOfKind(KindParagraph))
}

// Paragraph returns the i-th paragraph. It panics if i is out of range.
func (d *Document) Paragraph(i int) *Paragraph {
	ps := d.Paragraphs()
	if i < 0 || i >= len(ps) {
		panic(fmt.Sprintf("deb822: paragraph index %d out of range [0,%d)", i, len(ps)))
	}
	return ps[i]
}

// AddParagraph appends an empty paragraph, separated from the previous
// content by a blank line, and returns it.
func (d *Document) AddParagraph() *Paragraph {
	if d.root.Len() > 0 {
		ensureTrailingNewline(d.root)
		if last := d.root.Child(d.root.Len() - 1); !isSeparator(last) {
			d.root.Append(syntax.NewNode(KindEmptyLine, newline()))
		}
	}
	d.root.Append(syntax.NewNode(KindParagraph))
	return &Paragraph{node: d.root.Child(d.root.Len() - 1)}
}

// InsertParagraphAt inserts an empty paragraph so that it becomes the i-th
// one, and returns it. It panics if i is out of range [0, Len()].
func (d *Document) InsertParagraphAt(i int) *Paragraph {
	ps := d.Paragraphs()
	if i == len(ps) {
		return d.AddParagraph()
	}
	if i < 0 || i > len(ps) {
		panic(fmt.Sprintf("deb822: paragraph index %d out of range [0,%d]", i, len(ps)))
	}
	at := ps[i].node.Index()
	d.root.Splice(at, at, syntax.NewNode(KindParagraph), syntax.NewNode(KindEmptyLine, newline()))
	return &Paragraph{node: d.root.Child(at)}
}

// Find returns the first paragraph whose key field has the given value.
func (d *Document) Find(key, value string) (*Paragraph, bool) {
	for _, p := range d.Paragraphs() {
		if v, ok := p.Get(key); ok && v == value {
			return p, true
		}
	}
	return nil, false
}
