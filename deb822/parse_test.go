package deb822

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustParse(t *testing.T, text string) *Document {
	t.Helper()
	d, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", text, err)
	}
	return d
}

func TestParseParagraphs(t *testing.T) {
	d := mustParse(t, "Source: foo\nSection: net\n\nPackage: foo\n")
	if d.Len() != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", d.Len())
	}
	if v, ok := d.Paragraph(0).Get("Source"); !ok || v != "foo" {
		t.Errorf("Get(Source) = %q, %v; want foo", v, ok)
	}
	if v, ok := d.Paragraph(0).Get("section"); !ok || v != "net" {
		t.Errorf("case-insensitive Get(section) = %q, %v; want net", v, ok)
	}
	if _, ok := d.Paragraph(1).Get("Source"); ok {
		t.Error("second paragraph sees the Source field of the first")
	}
	if v, _ := d.Paragraph(1).Get("Package"); v != "foo" {
		t.Errorf("Get(Package) = %q, want foo", v)
	}
}

func TestParseContinuationLines(t *testing.T) {
	d := mustParse(t, "Package: foo\nDepends:\n bar,\n blah\nDescription: short\n line one  \n .\n line two\n")
	p := d.Paragraph(0)
	if v, _ := p.Get("Depends"); v != "bar,\nblah" {
		t.Errorf("Get(Depends) = %q, want %q", v, "bar,\nblah")
	}
	e, ok := p.Entry("Description")
	if !ok {
		t.Fatal("Description not found")
	}
	if got, want := e.Value(), "short\nline one\n\nline two"; got != want {
		t.Errorf("Value() = %q, want %q", got, want)
	}
	if got, want := e.RawValue(), "short\nline one  \n.\nline two"; got != want {
		t.Errorf("RawValue() = %q, want %q", got, want)
	}
}

func TestParseKeepsCommentsWithTheirField(t *testing.T) {
	d := mustParse(t, "Source: foo\n# a\n# b\nSection: net\n")
	p := d.Paragraph(0)
	if diff := cmp.Diff([]string{"Source", "Section"}, p.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	e, _ := p.Entry("Section")
	if diff := cmp.Diff([]string{"# a", "# b"}, e.Comments()); diff != "" {
		t.Errorf("Comments() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSeparators(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"\n\n", 0},
		{"# only a comment\n", 0},
		{"A: b", 1},
		{"A: b\n  \nC: d\n", 2},
		{"A: b\n\t\nC: d\n", 2},
		{"A: b\n# trailing\n", 1},
		{"A: b\n# between\n\nC: d\n", 2},
		{"A: b\r\n\r\nC: d\r\n", 2},
	}
	for _, tt := range tests {
		d := mustParse(t, tt.input)
		if d.Len() != tt.want {
			t.Errorf("Parse(%q) has %d paragraphs, want %d\n%s", tt.input, d.Len(), tt.want, d.Dump())
		}
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"Source: foo\n",
		"# comment\nSource: foo\n\n\n# between\n\nPackage: bar\nDescription: short\n long\n .\n more\n",
		"Key: value   \n",
		"A: b\r\nC: d\r\n",
		"deb [arch=arm64] http://x/ noble stable\n",
		"no colon here\n",
		": no key\n",
		" leading indent\nA: b\n",
		"A: b\n  \nC: d",
		"A: b\n# trailing comment",
		"-Foo: bar\n",
		"A: b\n\n\n\n",
		"\xff\xfeA: b\n",
		"Build-Depends: debhelper (>= 11~),\n               dh-golang,\n               golang-any\n",
	}
	for _, in := range inputs {
		d, _ := ParseRelaxed(in)
		if got := d.String(); got != in {
			t.Errorf("round trip of %q gave %q", in, got)
		}
	}
}

func TestParseStrictFailure(t *testing.T) {
	_, err := Parse("deb [arch=arm64] http://x/ noble stable\n")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, ErrParse) {
		t.Errorf("error %v is not ErrParse", err)
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error %T is not a *ParseError", err)
	}
	want := []string{`expected ':', got VALUE "[arch=arm64] http://x/ noble stable"`}
	if diff := cmp.Diff(want, pe.Errors); diff != "" {
		t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRelaxedDiagnostics(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{": no key\n", []string{`expected key, got ERROR ":"`, `expected ':', got VALUE "no key"`}},
		{"Key\n", []string{`expected ':', got NEWLINE "\n"`}},
		{"Key", []string{"expected ':' but got end of file"}},
		{"A: b\n leading\n", nil},
		{"Foo/Bar: x\n", []string{`expected ':', got VALUE "/Bar: x"`}},
		{"X[1]: y\n", []string{`expected ':', got VALUE "[1]: y"`}},
		{"1abc: z\n", []string{`expected key, got ERROR "1"`, `expected ':', got VALUE "abc: z"`}},
		{"a@b: c\n", []string{`expected ':', got VALUE "@b: c"`}},
	}
	for _, tt := range tests {
		d, errs := ParseRelaxed(tt.input)
		if diff := cmp.Diff(tt.want, errs); diff != "" {
			t.Errorf("ParseRelaxed(%q) diagnostics mismatch (-want +got):\n%s", tt.input, diff)
		}
		if d.String() != tt.input {
			t.Errorf("ParseRelaxed(%q) does not round trip", tt.input)
		}
	}
}

func TestDump(t *testing.T) {
	want := strings.Join([]string{
		"ROOT@0..5",
		"  PARAGRAPH@0..5",
		"    ENTRY@0..5",
		`      KEY@0..1 "A"`,
		`      COLON@1..2 ":"`,
		`      WHITESPACE@2..3 " "`,
		`      VALUE@3..4 "b"`,
		`      NEWLINE@4..5 "\n"`,
		"",
	}, "\n")
	if got := mustParse(t, "A: b\n").Dump(); got != want {
		t.Errorf("Dump() =\n%s\nwant\n%s", got, want)
	}
}

func TestParseParagraph(t *testing.T) {
	p, err := ParseParagraph("Package: foo\nVersion: 1.0\n")
	if err != nil {
		t.Fatalf("ParseParagraph failed: %v", err)
	}
	if diff := cmp.Diff([]Field{{"Package", "foo"}, {"Version", "1.0"}}, p.Items()); diff != "" {
		t.Errorf("Items() mismatch (-want +got):\n%s", diff)
	}
	for _, in := range []string{"", "\n\n", "# nothing\n"} {
		if _, err := ParseParagraph(in); !errors.Is(err, ErrNoParagraph) {
			t.Errorf("ParseParagraph(%q) error = %v, want ErrNoParagraph", in, err)
		}
	}
}

func TestRead(t *testing.T) {
	d, err := Read(strings.NewReader("A: b\n"))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if d.String() != "A: b\n" {
		t.Errorf("Read gave %q", d.String())
	}
	_, errs, err := ReadRelaxed(strings.NewReader("oops\n"))
	if err != nil {
		t.Fatalf("ReadRelaxed failed: %v", err)
	}
	if len(errs) != 1 {
		t.Errorf("ReadRelaxed gave %d diagnostics, want 1", len(errs))
	}
}
