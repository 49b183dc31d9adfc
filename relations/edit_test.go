package relations

import (
	"testing"
)

func mustEntry(t *testing.T, text string) *Entry {
	t.Helper()
	e, err := ParseEntry(text)
	if err != nil {
		t.Fatalf("ParseEntry(%q) failed: %v", text, err)
	}
	return e
}

func TestRemoveEntry(t *testing.T) {
	tests := []struct {
		input string
		i     int
		want  string
	}{
		{"a, b, c", 1, "a, c"},
		{"a, b, c", 0, "b, c"},
		{"a, b, c", 2, "a, b"},
		{"a,b", 1, "a"},
		{"a", 0, ""},
		{"a,\n b,\n c\n", 1, "a,\n c\n"},
		{"a (>= 1) [i386],   b <!nocheck>", 0, "b <!nocheck>"},
	}
	for _, tt := range tests {
		rs := mustParse(t, tt.input)
		rs.Remove(tt.i)
		if rs.String() != tt.want {
			t.Errorf("Remove(%d) on %q gave %q, want %q", tt.i, tt.input, rs.String(), tt.want)
		}
	}
}

func TestRemoveWhileIterating(t *testing.T) {
	rs := mustParse(t, "a, drop, b | drop, drop (>= 1), c")
	for _, e := range rs.Entries() {
		for _, r := range e.Relations() {
			if r.Name() == "drop" {
				r.Remove()
			}
		}
	}
	if got, want := rs.String(), "a, b, c"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRemoveOutOfRangePanics(t *testing.T) {
	rs := mustParse(t, "a, b")
	defer func() {
		if recover() == nil {
			t.Error("Remove(5) did not panic")
		}
	}()
	rs.Remove(5)
}

func TestRemoveRelation(t *testing.T) {
	tests := []struct {
		input    string
		entry, i int
		want     string
	}{
		{"a | b | c", 0, 1, "a | c"},
		{"a | b | c", 0, 0, "b | c"},
		{"a | b | c", 0, 2, "a | b"},
		{"x, a | b", 1, 0, "x, b"},
		{"x, a, y", 1, 0, "x, y"},
		{"a, x", 0, 0, "x"},
	}
	for _, tt := range tests {
		rs := mustParse(t, tt.input)
		rs.Entry(tt.entry).Relation(tt.i).Remove()
		if rs.String() != tt.want {
			t.Errorf("removing relation %d.%d of %q gave %q, want %q", tt.entry, tt.i, tt.input, rs.String(), tt.want)
		}
	}
}

func TestInsert(t *testing.T) {
	tests := []struct {
		input string
		i     int
		want  string
	}{
		{"a, c", 1, "a, b, c"},
		{"a, c", 0, "b, a, c"},
		{"a, c", 2, "a, c, b"},
		{"", 0, "b"},
		{"debhelper (>= 1.0), @foo@, bla", 0, "b, debhelper (>= 1.0), @foo@, bla"},
	}
	for _, tt := range tests {
		rs, _ := ParseRelaxed(tt.input)
		rs.Insert(tt.i, mustEntry(t, "b"))
		if rs.String() != tt.want {
			t.Errorf("Insert(%d) on %q gave %q, want %q", tt.i, tt.input, rs.String(), tt.want)
		}
	}
}

func TestPush(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "b"},
		{"a", "a, b"},
		{"a,", "a, b"},
		{"a, ", "a, b"},
		{"a\n", "a, b\n"},
		{"a (>= 1) | c", "a (>= 1) | c, b"},
	}
	for _, tt := range tests {
		rs := mustParse(t, tt.input)
		rs.Push(mustEntry(t, "b"))
		if rs.String() != tt.want {
			t.Errorf("Push on %q gave %q, want %q", tt.input, rs.String(), tt.want)
		}
	}
}

func TestReplace(t *testing.T) {
	rs := mustParse(t, "a,   b (>= 1)  ,c")
	rs.Replace(1, mustEntry(t, "d | e"))
	if want := "a,   d | e  ,c"; rs.String() != want {
		t.Errorf("Replace gave %q, want %q", rs.String(), want)
	}
}

func TestEntryPush(t *testing.T) {
	rs := mustParse(t, "a, b")
	rs.Entry(0).Push(NewRelation("c").Version(GreaterThanEqual, "2").Build())
	if want := "a | c (>= 2), b"; rs.String() != want {
		t.Errorf("Entry.Push gave %q, want %q", rs.String(), want)
	}
}

func TestRelationEdits(t *testing.T) {
	tests := []struct {
		name  string
		input string
		edit  func(r *Relation)
		want  string
	}{
		{
			name:  "add archqual",
			input: "samba",
			edit:  func(r *Relation) { r.SetArchqual("any") },
			want:  "samba:any",
		},
		{
			name:  "remove archqual",
			input: "samba:amd64 (>= 1)",
			edit:  func(r *Relation) { r.SetArchqual("") },
			want:  "samba (>= 1)",
		},
		{
			name:  "add version",
			input: "foo",
			edit:  func(r *Relation) { r.SetVersion(GreaterThanEqual, "1.0") },
			want:  "foo (>= 1.0)",
		},
		{
			name:  "add version after archqual",
			input: "foo:any [amd64]",
			edit:  func(r *Relation) { r.SetVersion(GreaterThanEqual, "1.0") },
			want:  "foo:any (>= 1.0) [amd64]",
		},
		{
			name:  "replace version keeps spacing",
			input: "foo  (<< 2)  [i386]",
			edit:  func(r *Relation) { r.SetVersion(GreaterThanEqual, "1:1.0") },
			want:  "foo  (>= 1:1.0)  [i386]",
		},
		{
			name:  "drop constraint",
			input: "foo (>= 1) [i386]",
			edit:  func(r *Relation) { r.DropConstraint() },
			want:  "foo [i386]",
		},
		{
			name:  "add architectures before profiles",
			input: "foo <!nocheck>",
			edit:  func(r *Relation) { r.SetArchitectures("amd64", "!i386") },
			want:  "foo [amd64 !i386] <!nocheck>",
		},
		{
			name:  "replace architectures",
			input: "foo [ i386 ]",
			edit:  func(r *Relation) { r.SetArchitectures("arm64") },
			want:  "foo [arm64]",
		},
		{
			name:  "remove architectures",
			input: "foo [i386] <x>",
			edit:  func(r *Relation) { r.SetArchitectures() },
			want:  "foo <x>",
		},
		{
			name:  "add profile",
			input: "foo <stage1>",
			edit:  func(r *Relation) { r.AddProfile(BuildProfile{Name: "nocheck", Negated: true}) },
			want:  "foo <stage1> <!nocheck>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := mustParse(t, "bar,  "+tt.input+" | baz")
			tt.edit(rs.Entry(1).Relation(0))
			if want := "bar,  " + tt.want + " | baz"; rs.String() != want {
				t.Errorf("got %q, want %q", rs.String(), want)
			}
			if _, err := Parse(rs.String()); err != nil {
				t.Errorf("edited text does not parse: %v", err)
			}
		})
	}
}

func TestDropConstraintReportsAbsence(t *testing.T) {
	r := NewRelation("foo").Build()
	if r.DropConstraint() {
		t.Error("DropConstraint() = true on an unversioned relation")
	}
}

func TestBuilders(t *testing.T) {
	r := NewRelation("foo").
		Archqual("any").
		Version(GreaterThanEqual, "1.0").
		Architectures("amd64", "!i386").
		Profile(BuildProfile{Name: "nocheck", Negated: true}).
		Profile(BuildProfile{Name: "stage1"}).
		Build()
	if want := "foo:any (>= 1.0) [amd64 !i386] <!nocheck> <stage1>"; r.String() != want {
		t.Errorf("Build() = %q, want %q", r.String(), want)
	}
	got, err := ParseRelation(r.String())
	if err != nil {
		t.Fatalf("built relation does not parse: %v", err)
	}
	if got.Requirement().String() != r.Requirement().String() {
		t.Errorf("requirement changed across a round trip: %q", got.Requirement())
	}

	e := NewEntry(NewRelation("a").Build(), NewRelation("b").Build())
	rs := New(e, NewEntry(NewRelation("c").Build()))
	if want := "a | b, c"; rs.String() != want {
		t.Errorf("New() = %q, want %q", rs.String(), want)
	}
	rs.Entry(0).Relation(0).SetVersion(Equal, "2")
	if e.String() != "a | b" {
		t.Errorf("New() shares its entries: %q", e.String())
	}

	if got := (Requirement{Name: "foo", Constraint: Equal, Version: "1"}).String(); got != "foo (= 1)" {
		t.Errorf("Requirement.String() = %q", got)
	}
}
