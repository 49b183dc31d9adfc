package deb

import (
	"slices"
	"strings"

	"github.com/etnz/debedit/deb822"
	"github.com/etnz/debedit/relations"
)

// ControlFormat configures Control.WrapAndSort.
type ControlFormat struct {
	// Indentation of continuation lines, deb822.FieldNameLength to align
	// them after the field name.
	Indentation           deb822.Indentation
	ImmediateEmptyLine    bool
	MaxLineLengthOneLiner int
	// SortFields puts the well-known fields in their conventional order.
	SortFields bool
}

// WrapAndSort returns a reformatted copy of the control file: the source
// paragraph first, then the binary paragraphs by package name. Relation
// fields are normalized and sorted; values that do not parse as relations
// are kept as they are.
func (c *Control) WrapAndSort(f ControlFormat) *Control {
	base := deb822.Formatter{
		Indentation:           f.Indentation,
		ImmediateEmptyLine:    f.ImmediateEmptyLine,
		MaxLineLengthOneLiner: f.MaxLineLengthOneLiner,
		FormatValue:           deb822.ValueFormatterFunc(FormatRelationField),
	}
	source, binary := base, base
	if f.SortFields {
		source.SortEntries = fieldOrder(sourceFieldOrder)
		binary.SortEntries = fieldOrder(binaryFieldOrder)
	}
	format := deb822.ParagraphFormatterFunc(func(p *deb822.Paragraph) *deb822.Paragraph {
		if isSource(p) {
			return p.WrapAndSort(source)
		}
		return p.WrapAndSort(binary)
	})
	return &Control{doc: c.doc.WrapAndSort(deb822.ParagraphComparatorFunc(compareControlParagraphs), format)}
}

// FormatRelationField normalizes the value of relation fields, leaving
// other fields and unparsable values alone. It is a deb822.ValueFormatter.
func FormatRelationField(key, value string) string {
	if !IsRelationField(key) {
		return value
	}
	rs, err := relations.Parse(value, relations.AllowSubstvars())
	if err != nil {
		return value
	}
	return rs.WrapAndSort().String()
}

// IsRelationField reports whether the field named key holds package
// relations, such as Depends or Build-Depends.
func IsRelationField(key string) bool {
	return slices.ContainsFunc(relationFields, func(f ControlField) bool {
		return strings.EqualFold(string(f), key)
	})
}

func fieldOrder(fields []ControlField) deb822.EntryComparator {
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = string(f)
	}
	return deb822.FieldOrder(keys...)
}

// compareControlParagraphs puts the source paragraph first and orders the
// rest by package name.
func compareControlParagraphs(a, b *deb822.Paragraph) int {
	as, bs := isSource(a), isSource(b)
	switch {
	case as && !bs:
		return -1
	case bs && !as:
		return 1
	}
	an, _ := a.Get(string(FieldPackage))
	bn, _ := b.Get(string(FieldPackage))
	return strings.Compare(an, bn)
}
