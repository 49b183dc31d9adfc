package deb

import (
	"errors"

	"github.com/etnz/debedit/deb822"
	"github.com/etnz/debedit/relations"
)

// stanza is the typed view shared by Source, Binary and Release. Every
// accessor reads from, and every setter edits, the underlying paragraph, so
// the rest of the file is left untouched.
type stanza struct {
	p *deb822.Paragraph
}

// Paragraph returns the underlying paragraph.
func (s stanza) Paragraph() *deb822.Paragraph { return s.p }

func (s stanza) String() string { return s.p.String() }

func (s stanza) get(f string) string {
	v, _ := s.p.Get(f)
	return v
}

func (s stanza) set(f, value string) {
	if value == "" {
		s.p.Remove(f)
		return
	}
	s.p.Insert(f, value)
}

// relations parses a relation field. A missing field is an empty list.
func (s stanza) relations(f ControlField) (*relations.Relations, error) {
	v, ok := s.p.Get(string(f))
	if !ok {
		return relations.New(), nil
	}
	rs, err := relations.Parse(v, relations.AllowSubstvars())
	if err != nil {
		return nil, &FieldError{Field: string(f), Value: v, Err: err}
	}
	return rs, nil
}

// setRelations writes rs to the field, or removes the field when rs is
// empty.
func (s stanza) setRelations(f ControlField, rs *relations.Relations) {
	if rs == nil || (rs.IsEmpty() && len(rs.Substvars()) == 0) {
		s.p.Remove(string(f))
		return
	}
	s.p.Insert(string(f), rs.String())
}

// yesNo decodes a boolean field. A missing field is false.
func (s stanza) yesNo(f string) (bool, error) {
	v, ok := s.p.Get(f)
	if !ok {
		return false, nil
	}
	switch v {
	case "yes":
		return true, nil
	case "no":
		return false, nil
	}
	return false, &FieldError{Field: f, Value: v, Err: errors.New("want yes or no")}
}
