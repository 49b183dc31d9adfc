package deb822

import (
	"strings"
	"testing"

	"github.com/etnz/debedit/syntax"
	"github.com/google/go-cmp/cmp"
)

func tk(kind syntax.Kind, text string) syntax.Token {
	return syntax.Token{Kind: kind, Text: text}
}

func TestLex(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []syntax.Token
	}{
		{
			name:  "field with continuation and comment",
			input: "Source: foo\n Bar\n# c\n",
			want: []syntax.Token{
				tk(KindKey, "Source"), tk(KindColon, ":"), tk(KindWhitespace, " "), tk(KindValue, "foo"), tk(KindNewline, "\n"),
				tk(KindIndent, " "), tk(KindValue, "Bar"), tk(KindNewline, "\n"),
				tk(KindComment, "# c"), tk(KindNewline, "\n"),
			},
		},
		{
			name:  "second colon belongs to the value",
			input: "A:b:c",
			want:  []syntax.Token{tk(KindKey, "A"), tk(KindColon, ":"), tk(KindValue, "b:c")},
		},
		{
			name:  "whitespace before the colon",
			input: "A : b",
			want: []syntax.Token{
				tk(KindKey, "A"), tk(KindWhitespace, " "), tk(KindColon, ":"), tk(KindWhitespace, " "), tk(KindValue, "b"),
			},
		},
		{
			name:  "crlf is one newline",
			input: "A: b\r\n",
			want:  []syntax.Token{tk(KindKey, "A"), tk(KindColon, ":"), tk(KindWhitespace, " "), tk(KindValue, "b"), tk(KindNewline, "\r\n")},
		},
		{
			name:  "indented hash is a value",
			input: "A: b\n # not a comment\n",
			want: []syntax.Token{
				tk(KindKey, "A"), tk(KindColon, ":"), tk(KindWhitespace, " "), tk(KindValue, "b"), tk(KindNewline, "\n"),
				tk(KindIndent, " "), tk(KindValue, "# not a comment"), tk(KindNewline, "\n"),
			},
		},
		{
			name:  "dash cannot start a key",
			input: "-Foo: bar",
			want:  []syntax.Token{tk(KindError, "-"), tk(KindValue, "Foo: bar")},
		},
		{
			name:  "digit cannot start a key",
			input: "1abc: z",
			want:  []syntax.Token{tk(KindError, "1"), tk(KindValue, "abc: z")},
		},
		{
			name:  "key stops at a slash",
			input: "Foo/Bar: x",
			want:  []syntax.Token{tk(KindKey, "Foo"), tk(KindValue, "/Bar: x")},
		},
		{
			name:  "key chars",
			input: "X-Foo_bar.2: y",
			want:  []syntax.Token{tk(KindKey, "X-Foo_bar.2"), tk(KindColon, ":"), tk(KindWhitespace, " "), tk(KindValue, "y")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lex(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Lex(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestLexValue(t *testing.T) {
	got := LexValue("a\n b\n\n #c")
	want := []syntax.Token{
		tk(KindValue, "a"), tk(KindNewline, "\n"),
		tk(KindIndent, " "), tk(KindValue, "b"), tk(KindNewline, "\n"),
		tk(KindNewline, "\n"),
		tk(KindIndent, " "), tk(KindValue, "#c"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LexValue mismatch (-want +got):\n%s", diff)
	}
}

func TestLexIsLossless(t *testing.T) {
	inputs := []string{
		"",
		"Package: foo\nDescription: x\n .\n y\n",
		"\t\tweird\n::\n\xff\xfe\n",
		"# only a comment",
		"A: b\r\rC: d\r",
	}
	for _, in := range inputs {
		var b strings.Builder
		for _, tok := range Lex(in) {
			if tok.Text == "" {
				t.Errorf("Lex(%q) produced an empty %s token", in, KindName(tok.Kind))
			}
			b.WriteString(tok.Text)
		}
		if b.String() != in {
			t.Errorf("Lex(%q) concatenates to %q", in, b.String())
		}
	}
}

func TestValidKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"Package", true},
		{"X-Foo_bar.2", true},
		{"a", true},
		{"", false},
		{"a b", false},
		{"#c", false},
		{"a:b", false},
		{" lead", false},
		{"1abc", false},
		{"-Foo", false},
		{"Foo/Bar", false},
		{"X[1]", false},
		{"a@b", false},
		{"Café", false},
	}
	for _, tt := range tests {
		if got := ValidKey(tt.key); got != tt.want {
			t.Errorf("ValidKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}
