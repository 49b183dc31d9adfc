// Package lossy is the read-only view of deb822 data: paragraphs reduced to
// their fields and logical values, with comments and layout dropped after
// parsing.
//
// Parsing goes through the strict deb822 parser, so both models accept the
// same input. Unmarshal and Marshal map paragraphs to Go structs through
// "deb822" struct tags:
//
//	type Package struct {
//		Name    string               `deb822:"Package,required"`
//		Version string               `deb822:"Version,required"`
//		Depends *relations.Relations `deb822:"Depends,omitempty"`
//		Tags    []string             `deb822:"Tag,comma,omitempty"`
//	}
package lossy

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/debedit/deb822"
)

// ErrManyParagraphs is returned by ParseParagraph when the input holds more
// than one paragraph.
var ErrManyParagraphs = errors.New("more than one paragraph")

// Field is a field name and its logical value.
type Field = deb822.Field

// Paragraph is an ordered list of fields.
type Paragraph struct {
	Fields []Field
}

// Get returns the value of the first field named key, matched
// case-insensitively.
func (p Paragraph) Get(key string) (string, bool) {
	for _, f := range p.Fields {
		if strings.EqualFold(f.Key, key) {
			return f.Value, true
		}
	}
	return "", false
}

// Has reports whether a field named key exists.
func (p Paragraph) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Len returns the number of fields.
func (p Paragraph) Len() int { return len(p.Fields) }

// Set replaces the value of the first field named key, or appends the field.
// It panics if key is not a valid field name.
func (p *Paragraph) Set(key, value string) {
	if !deb822.ValidKey(key) {
		panic(fmt.Sprintf("lossy: invalid field name %q", key))
	}
	for i, f := range p.Fields {
		if strings.EqualFold(f.Key, key) {
			p.Fields[i].Value = value
			return
		}
	}
	p.Fields = append(p.Fields, Field{Key: key, Value: value})
}

// Lossless builds a deb822 paragraph holding the fields, in a document of
// its own.
func (p Paragraph) Lossless() *deb822.Paragraph {
	return deb822.NewParagraph(p.Fields...)
}

// String renders the paragraph in canonical deb822 form.
func (p Paragraph) String() string { return p.Lossless().String() }

// FromParagraph copies the fields of a lossless paragraph.
func FromParagraph(p *deb822.Paragraph) Paragraph {
	return Paragraph{Fields: p.Items()}
}

// Document is a list of paragraphs.
type Document []Paragraph

// FromDocument copies the fields of every non-empty paragraph of d.
func FromDocument(d *deb822.Document) Document {
	var doc Document
	for _, p := range d.Paragraphs() {
		if p.Len() > 0 {
			doc = append(doc, FromParagraph(p))
		}
	}
	return doc
}

// Parse parses text strictly.
func Parse(text string) (Document, error) {
	d, err := deb822.Parse(text)
	if err != nil {
		return nil, err
	}
	return FromDocument(d), nil
}

// Read parses a document strictly from r.
func Read(r io.Reader) (Document, error) {
	d, err := deb822.Read(r)
	if err != nil {
		return nil, err
	}
	return FromDocument(d), nil
}

// ParseParagraph parses text holding exactly one paragraph.
func ParseParagraph(text string) (Paragraph, error) {
	doc, err := Parse(text)
	if err != nil {
		return Paragraph{}, err
	}
	switch len(doc) {
	case 0:
		return Paragraph{}, deb822.ErrNoParagraph
	case 1:
		return doc[0], nil
	}
	return Paragraph{}, ErrManyParagraphs
}

// Lossless builds a deb822 document holding the paragraphs, separated by
// blank lines.
func (d Document) Lossless() *deb822.Document {
	doc := deb822.New()
	for _, p := range d {
		dp := doc.AddParagraph()
		for _, f := range p.Fields {
			dp.Append(f.Key, f.Value)
		}
	}
	return doc
}

// String renders the document in canonical deb822 form.
func (d Document) String() string { return d.Lossless().String() }
