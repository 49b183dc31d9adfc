package deb822

import (
	"slices"
	"strings"

	"github.com/etnz/debedit/syntax"
)

// Indentation is the width of continuation lines written by the formatter.
type Indentation int

const (
	// FieldNameLength aligns continuation lines with the end of the field
	// name, so that values line up vertically.
	FieldNameLength Indentation = -1
	// DefaultIndentation is used when Formatter.Indentation is zero.
	DefaultIndentation Indentation = 4
)

// EntryComparator orders the fields of a paragraph.
type EntryComparator interface {
	CompareEntries(a, b *Entry) int
}

// EntryComparatorFunc adapts a function to EntryComparator.
type EntryComparatorFunc func(a, b *Entry) int

// CompareEntries calls f(a, b).
func (f EntryComparatorFunc) CompareEntries(a, b *Entry) int { return f(a, b) }

// ValueFormatter rewrites the logical value of a field before it is laid
// out. It receives the field name and the value with lines joined by "\n".
type ValueFormatter interface {
	FormatValue(key, value string) string
}

// ValueFormatterFunc adapts a function to ValueFormatter.
type ValueFormatterFunc func(key, value string) string

// FormatValue calls f(key, value).
func (f ValueFormatterFunc) FormatValue(key, value string) string { return f(key, value) }

// ParagraphComparator orders the paragraphs of a document.
type ParagraphComparator interface {
	CompareParagraphs(a, b *Paragraph) int
}

// ParagraphComparatorFunc adapts a function to ParagraphComparator.
type ParagraphComparatorFunc func(a, b *Paragraph) int

// CompareParagraphs calls f(a, b).
func (f ParagraphComparatorFunc) CompareParagraphs(a, b *Paragraph) int { return f(a, b) }

// ParagraphFormatter rewrites a paragraph. Formatter is the usual one.
type ParagraphFormatter interface {
	FormatParagraph(p *Paragraph) *Paragraph
}

// ParagraphFormatterFunc adapts a function to ParagraphFormatter.
type ParagraphFormatterFunc func(p *Paragraph) *Paragraph

// FormatParagraph calls f(p).
func (f ParagraphFormatterFunc) FormatParagraph(p *Paragraph) *Paragraph { return f(p) }

// Formatter lays out the fields of a paragraph.
type Formatter struct {
	// Indentation of continuation lines. Zero means DefaultIndentation.
	Indentation Indentation
	// ImmediateEmptyLine starts multi-line values on the line after the key.
	ImmediateEmptyLine bool
	// MaxLineLengthOneLiner is the longest "Key: value" line kept on one
	// line. Longer single-line values holding ", " separated items are
	// split one item per line. Zero disables both behaviours.
	MaxLineLengthOneLiner int
	// SortEntries, if set, stable-sorts the fields.
	SortEntries EntryComparator
	// FormatValue, if set, rewrites each value before layout.
	FormatValue ValueFormatter
}

// FormatParagraph returns p.WrapAndSort(f).
func (f Formatter) FormatParagraph(p *Paragraph) *Paragraph { return p.WrapAndSort(f) }

// FieldOrder returns a comparator ranking fields in the order of keys.
// Fields not listed sort after the listed ones and keep their relative
// order.
func FieldOrder(keys ...string) EntryComparator {
	rank := make(map[string]int, len(keys))
	for i, k := range keys {
		rank[strings.ToLower(k)] = i
	}
	pos := func(e *Entry) int {
		if r, ok := rank[strings.ToLower(e.Key())]; ok {
			return r
		}
		return len(keys)
	}
	return EntryComparatorFunc(func(a, b *Entry) int { return pos(a) - pos(b) })
}

func (f Formatter) width(key string) int {
	w := int(f.Indentation)
	switch f.Indentation {
	case FieldNameLength:
		w = len(key)
	case 0:
		w = int(DefaultIndentation)
	}
	if w < 1 {
		panic("deb822: indentation must be at least one column")
	}
	return w
}

// WrapAndSort returns a reformatted copy of the paragraph. Comments stay
// with the field they precede; fields holding syntax errors are kept
// verbatim.
func (p *Paragraph) WrapAndSort(f Formatter) *Paragraph {
	var (
		pending []syntax.GreenElement
		groups  []entryGroup
	)
	for _, c := range p.node.Children() {
		if c.Kind() != KindEntry {
			pending = append(pending, c.Green())
			continue
		}
		groups = append(groups, entryGroup{trivia: pending, entry: &Entry{node: c}})
		pending = nil
	}
	if f.SortEntries != nil {
		slices.SortStableFunc(groups, func(a, b entryGroup) int {
			return f.SortEntries.CompareEntries(a.entry, b.entry)
		})
	}
	var es []syntax.GreenElement
	for _, g := range groups {
		es = append(es, g.trivia...)
		es = append(es, f.formatEntry(g.entry))
	}
	es = append(es, pending...)
	root := syntax.NewTree(syntax.NewNode(KindRoot, syntax.NewNode(KindParagraph, es...)))
	return &Paragraph{node: root.Child(0)}
}

type entryGroup struct {
	trivia []syntax.GreenElement
	entry  *Entry
}

// formatEntry rebuilds the value layout of e.
func (f Formatter) formatEntry(e *Entry) syntax.GreenElement {
	g := e.node.Green().(*syntax.GreenNode)
	cs := g.Children()
	key := e.Key()
	ci := slices.IndexFunc(cs, func(c syntax.GreenElement) bool { return c.Kind() == KindColon })
	if ci < 0 || key == "" || slices.ContainsFunc(cs, func(c syntax.GreenElement) bool { return c.Kind() == KindError }) {
		return terminate(g)
	}

	var es []syntax.GreenElement
	for _, c := range cs[:ci+1] {
		if c.Kind() != KindWhitespace {
			es = append(es, c)
		}
	}

	var lines []string
	if f.FormatValue != nil {
		lines = valueTokenLines(LexValue(f.FormatValue.FormatValue(key, e.Value())))
	} else {
		lines = strings.Split(e.RawValue(), "\n")
	}
	lines = trimLines(lines)

	if len(lines) == 0 {
		return syntax.NewNode(KindEntry, append(es, newline())...)
	}
	if limit := f.MaxLineLengthOneLiner; limit > 0 && len(lines) == 1 {
		if len(key)+len(": ")+len(lines[0]) <= limit {
			return syntax.NewNode(KindEntry, append(es,
				syntax.NewToken(KindWhitespace, " "),
				syntax.NewToken(KindValue, lines[0]),
				newline())...)
		}
		if strings.Contains(lines[0], ", ") {
			lines = splitItems(lines[0])
		}
	}

	indent := strings.Repeat(" ", f.width(key))
	if f.ImmediateEmptyLine && len(lines) > 1 {
		es = append(es, newline())
	} else {
		es = append(es, syntax.NewToken(KindWhitespace, " "), syntax.NewToken(KindValue, dotted(lines[0])), newline())
		lines = lines[1:]
	}
	for _, l := range lines {
		es = append(es, syntax.NewToken(KindIndent, indent), syntax.NewToken(KindValue, dotted(l)), newline())
	}
	return syntax.NewNode(KindEntry, es...)
}

// valueTokenLines collects the VALUE text of each line of a lexed value.
func valueTokenLines(toks []syntax.Token) []string {
	var (
		lines []string
		cur   strings.Builder
	)
	for _, t := range toks {
		switch t.Kind {
		case KindValue:
			cur.WriteString(t.Text)
		case KindNewline:
			lines = append(lines, cur.String())
			cur.Reset()
		}
	}
	return append(lines, cur.String())
}

// trimLines trims trailing blanks, decodes "." lines, and drops empty lines
// at both ends.
func trimLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "." {
			l = ""
		}
		out = append(out, l)
	}
	for len(out) > 0 && out[0] == "" {
		out = out[1:]
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

func dotted(l string) string {
	if l == "" {
		return "."
	}
	return l
}

// splitItems splits a ", " separated list, keeping the comma on every item
// but the last.
func splitItems(s string) []string {
	items := strings.Split(s, ", ")
	for i := range items[:len(items)-1] {
		items[i] = strings.TrimSpace(items[i]) + ","
	}
	items[len(items)-1] = strings.TrimSpace(items[len(items)-1])
	return items
}

// WrapAndSort returns a reformatted copy of the document.
//
// Paragraphs are optionally stable-sorted with cmp, and each one is passed
// through f when it is not nil. Comment lines preceding a paragraph move
// with it. Blank lines are normalized to exactly one between paragraphs and
// empty paragraphs are dropped.
func (d *Document) WrapAndSort(cmp ParagraphComparator, f ParagraphFormatter) *Document {
	type group struct {
		trivia []syntax.GreenElement
		blank  bool // a blank line separated trivia from the paragraph
		p      *Paragraph
	}
	var (
		groups  []group
		pending []syntax.GreenElement
		blank   bool
		// gap records a blank line before the first pending comment.
		gap, lead bool
	)
	for _, c := range d.root.Children() {
		switch {
		case c.Kind() == KindParagraph:
			if c.Len() == 0 {
				continue
			}
			groups = append(groups, group{trivia: pending, blank: blank, p: &Paragraph{node: c}})
			pending, blank, gap = nil, false, false
		case c.Kind() == KindEmptyLine && !isSeparator(c):
			if len(pending) == 0 {
				lead = gap
			}
			pending = append(pending, c.Green())
			blank = false
		case len(pending) > 0:
			blank = true
		default:
			gap = true
		}
	}
	if cmp != nil {
		slices.SortStableFunc(groups, func(a, b group) int {
			return cmp.CompareParagraphs(a.p, b.p)
		})
	}

	sep := func() syntax.GreenElement { return syntax.NewNode(KindEmptyLine, newline()) }
	var es []syntax.GreenElement
	for i, g := range groups {
		if i > 0 {
			es = append(es, sep())
		}
		es = append(es, g.trivia...)
		if g.blank {
			es = append(es, sep())
		}
		p := g.p
		if f != nil {
			p = f.FormatParagraph(p)
		}
		es = append(es, terminate(p.node.Green().(*syntax.GreenNode)))
	}
	if len(pending) > 0 && len(groups) > 0 && lead {
		es = append(es, sep())
	}
	es = append(es, pending...)
	return &Document{root: syntax.NewTree(syntax.NewNode(KindRoot, es...))}
}

// terminate returns g with its last line terminated.
func terminate(g *syntax.GreenNode) *syntax.GreenNode {
	n := syntax.NewTree(g)
	ensureTrailingNewline(n)
	return n.GreenRoot()
}
