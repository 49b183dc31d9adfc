package deb822

import (
	"fmt"
	"strings"

	"github.com/etnz/debedit/syntax"
)

// Paragraph is a group of consecutive fields.
//
// Keys are matched case-insensitively, as field names are in Debian control
// files. Paragraphs obtained from a Document edit that document.
type Paragraph struct {
	node syntax.Node
}

// Field is a key and its logical value.
type Field struct {
	Key   string
	Value string
}

// NewParagraph builds a standalone paragraph holding fields in order.
func NewParagraph(fields ...Field) *Paragraph {
	p := New().AddParagraph()
	for _, f := range fields {
		p.Append(f.Key, f.Value)
	}
	return p
}

// ParseParagraph parses text strictly and returns its first paragraph.
func ParseParagraph(text string) (*Paragraph, error) {
	d, err := Parse(text)
	if err != nil {
		return nil, err
	}
	ps := d.Paragraphs()
	if len(ps) == 0 {
		return nil, ErrNoParagraph
	}
	return ps[0], nil
}

// Node returns the syntax node of the paragraph.
func (p *Paragraph) Node() syntax.Node { return p.node }

// String returns the text of the paragraph.
func (p *Paragraph) String() string { return p.node.String() }

// Document returns the document the paragraph belongs to.
func (p *Paragraph) Document() *Document { return &Document{root: p.node.Root()} }

// Entries returns the fields of the paragraph in order.
func (p *Paragraph) Entries() []*Entry {
	var es []*Entry
	for _, n := range p.node.ChildrenOfKind(KindEntry) {
		es = append(es, &Entry{node: n})
	}
	return es
}

// Len returns the number of fields.
func (p *Paragraph) Len() int {
	return len(p.node.ChildrenOfKind(KindEntry))
}

// Entry returns the first field named key.
func (p *Paragraph) Entry(key string) (*Entry, bool) {
	for _, e := range p.Entries() {
		if strings.EqualFold(e.Key(), key) {
			return e, true
		}
	}
	return nil, false
}

// Get returns the logical value of the first field named key.
func (p *Paragraph) Get(key string) (string, bool) {
	e, ok := p.Entry(key)
	if !ok {
		return "", false
	}
	return e.Value(), true
}

// GetAll returns the values of every field named key.
func (p *Paragraph) GetAll(key string) []string {
	var vs []string
	for _, e := range p.Entries() {
		if strings.EqualFold(e.Key(), key) {
			vs = append(vs, e.Value())
		}
	}
	return vs
}

// Has reports whether a field named key exists.
func (p *Paragraph) Has(key string) bool {
	_, ok := p.Entry(key)
	return ok
}

// Keys returns the field names in order.
func (p *Paragraph) Keys() []string {
	var ks []string
	for _, e := range p.Entries() {
		ks = append(ks, e.Key())
	}
	return ks
}

// Items returns the fields and their logical values in order.
func (p *Paragraph) Items() []Field {
	var fs []Field
	for _, e := range p.Entries() {
		fs = append(fs, Field{Key: e.Key(), Value: e.Value()})
	}
	return fs
}

// Insert sets the value of the field named key. An existing field keeps its
// name, position and comments; otherwise the field is appended. It panics if
// key is not a valid field name, as do the other methods adding a key.
func (p *Paragraph) Insert(key, value string) {
	mustValidKey(key)
	if e, ok := p.Entry(key); ok {
		e.SetValue(value)
		return
	}
	p.Append(key, value)
}

// Append adds a field after the last one, even if the key already exists.
func (p *Paragraph) Append(key, value string) {
	mustValidKey(key)
	ensureTrailingNewline(p.node)
	p.node.Append(entryGreen(key, value))
}

// InsertAt adds a field so that it becomes the i-th one. It panics if i is
// out of range [0, Len()].
func (p *Paragraph) InsertAt(i int, key, value string) {
	es := p.Entries()
	if i == len(es) {
		p.Append(key, value)
		return
	}
	if i < 0 || i > len(es) {
		panic(fmt.Sprintf("deb822: entry index %d out of range [0,%d]", i, len(es)))
	}
	at := es[i].node.Index()
	p.node.Splice(at, at, entryGreen(key, value))
}

// Remove removes the first field named key and reports whether one existed.
func (p *Paragraph) Remove(key string) bool {
	e, ok := p.Entry(key)
	if ok {
		e.Detach()
	}
	return ok
}

// RemoveAll removes every field named key and returns how many were removed.
func (p *Paragraph) RemoveAll(key string) int {
	n := 0
	for p.Remove(key) {
		n++
	}
	return n
}

// Rename changes the name of the first field named oldKey, keeping its value
// and position.
func (p *Paragraph) Rename(oldKey, newKey string) bool {
	mustValidKey(newKey)
	e, ok := p.Entry(oldKey)
	if ok {
		e.SetKey(newKey)
	}
	return ok
}

// Detach removes the paragraph from its document along with one adjacent
// blank separator line. The paragraph moves to a document of its own.
func (p *Paragraph) Detach() {
	parent, ok := p.node.Parent()
	if !ok {
		p.node.Detach()
		return
	}
	g := p.node.Green()
	i := p.node.Index()
	switch {
	case i+1 < parent.Len() && isSeparator(parent.Child(i+1)):
		parent.Splice(i, i+2)
	case i > 0 && isSeparator(parent.Child(i-1)):
		parent.Splice(i-1, i+1)
	default:
		parent.Splice(i, i+1)
	}
	p.node = syntax.NewTree(syntax.NewNode(KindRoot, g)).Child(0)
}

// isSeparator reports whether n is an EMPTY_LINE without comment.
func isSeparator(n syntax.Node) bool {
	if n.Kind() != KindEmptyLine {
		return false
	}
	_, ok := n.FirstChild(KindComment)
	return !ok
}
