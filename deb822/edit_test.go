package deb822

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParagraphInsert(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		key, value string
		want       string
	}{
		{
			name:  "replace keeps casing, position and comments",
			input: "Source: foo\n# the section\nSection: net\nPriority: optional\n",
			key:   "section", value: "admin",
			want: "Source: foo\n# the section\nSection: admin\nPriority: optional\n",
		},
		{
			name:  "replace a continued value",
			input: "Source:   foo  \n# keep me\nBuild-Depends: a,\n    b\n\nPackage: x\n",
			key:   "Build-Depends", value: "c",
			want: "Source:   foo  \n# keep me\nBuild-Depends: c\n\nPackage: x\n",
		},
		{
			name:  "append",
			input: "Source: foo\n",
			key:   "Homepage", value: "https://example.com",
			want: "Source: foo\nHomepage: https://example.com\n",
		},
		{
			name:  "append after an unterminated line",
			input: "Source: foo",
			key:   "A", value: "b",
			want: "Source: foo\nA: b\n",
		},
		{
			name:  "multi-line value",
			input: "Package: foo\n",
			key:   "Description", value: "short\nlong line\n\nmore",
			want: "Package: foo\nDescription: short\n long line\n .\n more\n",
		},
		{
			name:  "empty value",
			input: "Package: foo\n",
			key:   "Essential", value: "",
			want: "Package: foo\nEssential:\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustParse(t, tt.input)
			d.Paragraph(0).Insert(tt.key, tt.value)
			if got := d.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if v, _ := d.Paragraph(0).Get(tt.key); v != tt.value {
				t.Errorf("Get(%q) = %q, want %q", tt.key, v, tt.value)
			}
		})
	}
}

func TestParagraphRemove(t *testing.T) {
	const in = "A: 1\n# about b\nB: 2\n two\nC: 3\n"
	tests := []struct {
		key  string
		want string
	}{
		{"A", "# about b\nB: 2\n two\nC: 3\n"},
		{"b", "A: 1\nC: 3\n"},
		{"C", "A: 1\n# about b\nB: 2\n two\n"},
	}
	for _, tt := range tests {
		d := mustParse(t, in)
		if !d.Paragraph(0).Remove(tt.key) {
			t.Errorf("Remove(%q) found nothing", tt.key)
		}
		if got := d.String(); got != tt.want {
			t.Errorf("Remove(%q) gave %q, want %q", tt.key, got, tt.want)
		}
	}

	d := mustParse(t, in)
	if d.Paragraph(0).Remove("D") {
		t.Error("Remove of a missing key reported success")
	}
	if d.String() != in {
		t.Error("Remove of a missing key changed the document")
	}
}

func TestParagraphRemoveLastEntryKeepsParagraph(t *testing.T) {
	d := mustParse(t, "A: 1\n\nB: 2\n")
	d.Paragraph(0).Remove("A")
	if d.Len() != 2 {
		t.Fatalf("expected the emptied paragraph to stay, got %d paragraphs", d.Len())
	}
	if d.Paragraph(0).Len() != 0 {
		t.Errorf("emptied paragraph has %d entries", d.Paragraph(0).Len())
	}
	if got := d.String(); got != "\nB: 2\n" {
		t.Errorf("got %q", got)
	}
}

func TestParagraphRemoveAll(t *testing.T) {
	d := mustParse(t, "A: 1\nB: 2\na: 3\n")
	if n := d.Paragraph(0).RemoveAll("A"); n != 2 {
		t.Errorf("RemoveAll removed %d entries, want 2", n)
	}
	if got := d.String(); got != "B: 2\n" {
		t.Errorf("got %q", got)
	}
}

func TestParagraphRename(t *testing.T) {
	d := mustParse(t, "Source: foo\nSection: net\n\nSection: other\n")
	if !d.Paragraph(0).Rename("section", "Component") {
		t.Fatal("Rename found nothing")
	}
	if got, want := d.String(), "Source: foo\nComponent: net\n\nSection: other\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if d.Paragraph(0).Rename("Missing", "X") {
		t.Error("Rename of a missing key reported success")
	}
}

func TestParagraphInsertAt(t *testing.T) {
	d := mustParse(t, "A: 1\nC: 3\n")
	p := d.Paragraph(0)
	p.InsertAt(1, "B", "2")
	p.InsertAt(0, "Z", "0")
	p.InsertAt(4, "D", "4")
	if got, want := d.String(), "Z: 0\nA: 1\nB: 2\nC: 3\nD: 4\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	defer func() {
		if recover() == nil {
			t.Error("InsertAt out of range did not panic")
		}
	}()
	p.InsertAt(9, "X", "x")
}

func TestParagraphGetAll(t *testing.T) {
	d := mustParse(t, "Dup: 1\nOther: x\ndup: 2\n")
	if diff := cmp.Diff([]string{"1", "2"}, d.Paragraph(0).GetAll("DUP")); diff != "" {
		t.Errorf("GetAll mismatch (-want +got):\n%s", diff)
	}
	if !d.Paragraph(0).Has("other") || d.Paragraph(0).Has("none") {
		t.Error("Has gave a wrong answer")
	}
}

func TestDocumentAddParagraph(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "Package: foo\n"},
		{"Source: foo\n", "Source: foo\n\nPackage: foo\n"},
		{"Source: foo", "Source: foo\n\nPackage: foo\n"},
		{"Source: foo\n\n", "Source: foo\n\nPackage: foo\n"},
		{"Source: foo\n# end\n", "Source: foo\n# end\n\nPackage: foo\n"},
	}
	for _, tt := range tests {
		d, _ := ParseRelaxed(tt.input)
		d.AddParagraph().Insert("Package", "foo")
		if got := d.String(); got != tt.want {
			t.Errorf("AddParagraph on %q gave %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDocumentInsertParagraphAt(t *testing.T) {
	d := mustParse(t, "A: 1\n\nB: 2\n")
	d.InsertParagraphAt(0).Insert("Z", "0")
	d.InsertParagraphAt(2).Insert("Y", "1")
	if got, want := d.String(), "Z: 0\n\nA: 1\n\nY: 1\n\nB: 2\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParagraphDetach(t *testing.T) {
	const in = "A: 1\n\nB: 2\n\nC: 3\n"
	tests := []struct {
		index int
		want  string
	}{
		{0, "B: 2\n\nC: 3\n"},
		{1, "A: 1\n\nC: 3\n"},
		{2, "A: 1\n\nB: 2\n"},
	}
	for _, tt := range tests {
		d := mustParse(t, in)
		d.Paragraph(tt.index).Detach()
		if got := d.String(); got != tt.want {
			t.Errorf("Detach(%d) gave %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestEditRelaxedDocument(t *testing.T) {
	d, errs := ParseRelaxed("no colon\nA: b\n")
	if len(errs) == 0 {
		t.Fatal("expected diagnostics")
	}
	p := d.Paragraph(0)
	p.Insert("A", "c")
	p.Insert("C", "d")
	if got, want := d.String(), "no colon\nA: c\nC: d\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	p.Entries()[0].SetValue("x")
	if got, want := d.String(), "no: x\nA: c\nC: d\n"; got != want {
		t.Errorf("SetValue on a broken entry gave %q, want %q", got, want)
	}
}

func TestMutationLocality(t *testing.T) {
	const in = "# head\nSource: foo\nBuild-Depends: a,\n               b\n\n" +
		"Package: foo\nDescription: x\n y\n .\n z\n\n" +
		"Package: bar\nArchitecture:   any  \n"
	d := mustParse(t, in)
	for pi, p := range d.Paragraphs() {
		for _, key := range p.Keys() {
			for _, edit := range []func(*Paragraph){
				func(p *Paragraph) { p.Remove(key) },
				func(p *Paragraph) { p.Insert(key, "new") },
				func(p *Paragraph) { p.Rename(key, "Renamed") },
			} {
				c := d.Clone()
				edit(c.Paragraph(pi))
				if c.Len() != d.Len() {
					t.Fatalf("editing %q changed the paragraph count", key)
				}
				for i := range d.Len() {
					if i != pi && c.Paragraph(i).String() != d.Paragraph(i).String() {
						t.Errorf("editing %q in paragraph %d changed paragraph %d", key, pi, i)
					}
				}
				for _, e := range d.Paragraph(pi).Entries() {
					if e.Key() == key {
						continue
					}
					ce, ok := c.Paragraph(pi).Entry(e.Key())
					if !ok || ce.String() != e.String() {
						t.Errorf("editing %q changed field %q", key, e.Key())
					}
				}
			}
		}
	}
	if d.String() != in {
		t.Error("edits on clones changed the original document")
	}
}

func TestNewParagraphAndEntry(t *testing.T) {
	p := NewParagraph(Field{"Package", "foo"}, Field{"Version", "1.0"})
	if got, want := p.String(), "Package: foo\nVersion: 1.0\n"; got != want {
		t.Errorf("NewParagraph gave %q, want %q", got, want)
	}
	if got, want := NewEntry("Key", "v").String(), "Key: v\n"; got != want {
		t.Errorf("NewEntry gave %q, want %q", got, want)
	}
	if got, want := NewEntry("Key", "\nline\n").String(), "Key:\n line\n"; got != want {
		t.Errorf("NewEntry gave %q, want %q", got, want)
	}
	e := NewEntry("Key", "v")
	e.SetKey("Other")
	e.SetValue("w")
	if got, want := e.String(), "Other: w\n"; got != want {
		t.Errorf("edited entry is %q, want %q", got, want)
	}
}

func TestDocumentEqual(t *testing.T) {
	a := mustParse(t, "A: b\n")
	b := mustParse(t, "A: b\n")
	if !a.Equal(b) {
		t.Error("identical documents are not Equal")
	}
	b.Paragraph(0).Insert("A", "c")
	if a.Equal(b) {
		t.Error("different documents are Equal")
	}
}

func TestDetachWhileIterating(t *testing.T) {
	d := mustParse(t, "A: 1\nX-Drop: 2\nX-Drop: 3\nB: 4\n")
	for _, e := range d.Paragraph(0).Entries() {
		if e.Key() == "X-Drop" {
			e.Detach()
		}
	}
	if got, want := d.String(), "A: 1\nB: 4\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHandlesSurviveStructuralEdits(t *testing.T) {
	tests := []struct {
		name  string
		input string
		edit  func(d *Document, held *Paragraph)
		want  string
	}{
		{
			name:  "paragraph inserted before",
			input: "Package: a\n\nPackage: b\n",
			edit: func(d *Document, held *Paragraph) {
				d.InsertParagraphAt(0).Insert("Source", "s")
				held.Insert("Depends", "libc6")
			},
			want: "Source: s\n\nPackage: a\n\nPackage: b\nDepends: libc6\n",
		},
		{
			name:  "paragraph removed before",
			input: "Package: a\n\nPackage: b\n\nPackage: c\n",
			edit: func(d *Document, held *Paragraph) {
				d.Paragraph(0).Detach()
				held.Insert("Depends", "libc6")
			},
			want: "Package: b\nDepends: libc6\n\nPackage: c\n",
		},
		{
			name:  "entry removed before",
			input: "Package: a\n\nPackage: b\nSection: x\nPriority: optional\n",
			edit: func(d *Document, held *Paragraph) {
				e, _ := held.Entry("Priority")
				held.Remove("Section")
				e.SetValue("extra")
			},
			want: "Package: a\n\nPackage: b\nPriority: extra\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustParse(t, tt.input)
			held := d.Paragraph(1)
			tt.edit(d, held)
			if diff := cmp.Diff(tt.want, d.String()); diff != "" {
				t.Errorf("document mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDetachedParagraphIsStandalone(t *testing.T) {
	d := mustParse(t, "A: 1\n\nB: 2\n")
	p := d.Paragraph(0)
	p.Detach()
	if v, ok := p.Get("A"); !ok || v != "1" {
		t.Errorf("Get(A) on the detached paragraph = %q, %v", v, ok)
	}
	p.Insert("C", "3")
	if got, want := d.String(), "B: 2\n"; got != want {
		t.Errorf("document = %q, want %q", got, want)
	}
	if got, want := p.String(), "A: 1\nC: 3\n"; got != want {
		t.Errorf("detached paragraph = %q, want %q", got, want)
	}
}

func TestInvalidKeyPanics(t *testing.T) {
	const in = "A: 1\n"
	ops := []struct {
		name string
		op   func(d *Document, key string)
	}{
		{"Insert", func(d *Document, key string) { d.Paragraph(0).Insert(key, "v") }},
		{"Append", func(d *Document, key string) { d.Paragraph(0).Append(key, "v") }},
		{"InsertAt", func(d *Document, key string) { d.Paragraph(0).InsertAt(0, key, "v") }},
		{"Rename", func(d *Document, key string) { d.Paragraph(0).Rename("A", key) }},
		{"SetKey", func(d *Document, key string) { d.Paragraph(0).Entries()[0].SetKey(key) }},
		{"NewEntry", func(d *Document, key string) { NewEntry(key, "v") }},
		{"NewParagraph", func(d *Document, key string) { NewParagraph(Field{key, "v"}) }},
	}
	for _, key := range []string{"a b", "#c", "a:b", " lead", ""} {
		for _, o := range ops {
			t.Run(o.name+"/"+key, func(t *testing.T) {
				d := mustParse(t, in)
				defer func() {
					if recover() == nil {
						t.Errorf("%s(%q) did not panic", o.name, key)
					}
					if got := d.String(); got != in {
						t.Errorf("%s(%q) changed the document to %q", o.name, key, got)
					}
				}()
				o.op(d, key)
			})
		}
	}
}
