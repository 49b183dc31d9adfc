package deb822

import (
	"fmt"
	"strings"

	"github.com/etnz/debedit/syntax"
)

// Entry is one field of a paragraph: leading comment lines, a key, a colon,
// and a value that may span several continuation lines.
type Entry struct {
	node syntax.Node
}

// NewEntry builds a standalone entry. Lines of a multi-line value become
// continuation lines indented by one space; empty lines are written as ".".
// It panics if key is not a valid field name.
func NewEntry(key, value string) *Entry {
	return &Entry{node: syntax.NewTree(entryGreen(key, value))}
}

// Node returns the positioned syntax node of the entry.
func (e *Entry) Node() syntax.Node { return e.node }

// String returns the text of the entry, including its line terminators.
func (e *Entry) String() string { return e.node.String() }

// Key returns the field name, or "" when the entry has none.
func (e *Entry) Key() string {
	if k, ok := e.node.FirstChild(KindKey); ok {
		return k.String()
	}
	return ""
}

// Comments returns the comment lines preceding the key, "#" included.
func (e *Entry) Comments() []string {
	var cs []string
	for _, c := range e.node.ChildrenOfKind(KindComment) {
		cs = append(cs, c.String())
	}
	return cs
}

// valueLines returns the text of every VALUE token, one per physical line.
func (e *Entry) valueLines() []string {
	var ls []string
	for _, c := range e.node.ChildrenOfKind(KindValue) {
		ls = append(ls, c.String())
	}
	return ls
}

// RawValue returns the value lines joined with "\n", exactly as written:
// continuation markers are dropped, "." lines and trailing blanks are kept.
func (e *Entry) RawValue() string {
	return strings.Join(e.valueLines(), "\n")
}

// Value returns the logical value: lines joined with "\n", trailing blanks
// trimmed, and "." continuation lines decoded as empty lines.
func (e *Entry) Value() string {
	ls := e.valueLines()
	for i, l := range ls {
		l = strings.TrimRight(l, " \t")
		if l == "." {
			l = ""
		}
		ls[i] = l
	}
	return strings.Join(ls, "\n")
}

// SetValue replaces the value of the entry, keeping its comments and key.
func (e *Entry) SetValue(value string) {
	cs := e.node.Green().(*syntax.GreenNode).Children()
	var prefix []syntax.GreenElement
	for i, c := range cs {
		if c.Kind() == KindColon {
			prefix = cs[:i+1]
			break
		}
	}
	if prefix == nil {
		// No colon: keep everything up to the key and add one.
		cut := leadingTrivia(cs)
		for i, c := range cs {
			if c.Kind() == KindKey {
				cut = i + 1
				break
			}
		}
		prefix = append(cs[:cut:cut], colon())
	}
	e.node.Replace(syntax.NewNode(KindEntry, append(prefix, valueElems(value)...)...))
}

// SetKey renames the entry in place. It panics if key is not a valid field
// name.
func (e *Entry) SetKey(key string) {
	mustValidKey(key)
	if k, ok := e.node.FirstChild(KindKey); ok {
		k.Replace(syntax.NewToken(KindKey, key))
		return
	}
	cs := e.node.Green().(*syntax.GreenNode).Children()
	i := leadingTrivia(cs)
	e.node.Splice(i, i, syntax.NewToken(KindKey, key))
}

// Detach removes the entry, with its leading comments, from its paragraph.
// Every entry owns its line terminators, so the surrounding entries are left
// untouched. The entry becomes standalone.
func (e *Entry) Detach() {
	if _, ok := e.node.Parent(); !ok {
		return
	}
	g := e.node.Detach().(*syntax.GreenNode)
	e.node = syntax.NewTree(g)
}

// leadingTrivia returns the number of comment and newline elements before
// the key.
func leadingTrivia(cs []syntax.GreenElement) int {
	i := 0
	for i < len(cs) && (cs[i].Kind() == KindComment || cs[i].Kind() == KindNewline) {
		i++
	}
	return i
}

func newline() *syntax.GreenToken { return syntax.NewToken(KindNewline, "\n") }

func colon() *syntax.GreenToken { return syntax.NewToken(KindColon, ":") }

func mustValidKey(key string) {
	if !ValidKey(key) {
		panic(fmt.Sprintf("deb822: invalid field name %q", key))
	}
}

// entryGreen builds the ENTRY node of a new field.
func entryGreen(key, value string) *syntax.GreenNode {
	mustValidKey(key)
	es := []syntax.GreenElement{syntax.NewToken(KindKey, key), colon()}
	return syntax.NewNode(KindEntry, append(es, valueElems(value)...)...)
}

// splitValue normalizes line terminators and splits value into lines.
// Trailing line terminators are dropped.
func splitValue(value string) []string {
	value = strings.ReplaceAll(value, "\r\n", "\n")
	value = strings.ReplaceAll(value, "\r", "\n")
	value = strings.TrimRight(value, "\n")
	return strings.Split(value, "\n")
}

// valueElems renders value as the elements following the colon of an entry.
func valueElems(value string) []syntax.GreenElement {
	lines := splitValue(value)
	var es []syntax.GreenElement
	if first := strings.TrimLeft(lines[0], " \t"); first != "" {
		es = append(es, syntax.NewToken(KindWhitespace, " "), syntax.NewToken(KindValue, first))
	}
	es = append(es, newline())
	for _, l := range lines[1:] {
		es = append(es, continuation(" ", l)...)
	}
	return es
}

// continuation renders one continuation line. Leading blanks of the line
// join the indent so that the text reads back the same way.
func continuation(indent, line string) []syntax.GreenElement {
	trimmed := strings.TrimLeft(line, " \t")
	if strings.TrimRight(trimmed, " \t") == "" {
		trimmed = "."
	} else {
		indent += line[:len(line)-len(trimmed)]
	}
	return []syntax.GreenElement{
		syntax.NewToken(KindIndent, indent),
		syntax.NewToken(KindValue, trimmed),
		newline(),
	}
}

// ensureTrailingNewline terminates the last line under n if it is not
// terminated yet.
func ensureTrailingNewline(n syntax.Node) {
	s := n.String()
	if s == "" || strings.HasSuffix(s, "\n") || strings.HasSuffix(s, "\r") {
		return
	}
	for {
		last := n.Child(n.Len() - 1)
		if last.IsToken() || last.Kind() == KindError || last.Len() == 0 {
			n.Append(newline())
			return
		}
		n = last
	}
}
