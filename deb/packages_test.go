package deb

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"testing"

	"github.com/etnz/debedit/relations"
	"github.com/google/go-cmp/cmp"
)

const testPackages = `Package: libc6
Version: 2.36-9
Architecture: amd64
Filename: pool/main/g/glibc/libc6_2.36-9_amd64.deb
Size: 2757936

Package: libc6
Version: 2.31-13
Architecture: amd64

Package: zlib1g
Version: 1:1.2.13.dfsg-1
Architecture: amd64
`

func TestPackagesIndex(t *testing.T) {
	x, err := ReadPackagesIndex(strings.NewReader(testPackages))
	if err != nil {
		t.Fatalf("ReadPackagesIndex() failed: %v", err)
	}
	if got := len(x.Packages()); got != 3 {
		t.Errorf("len(Packages()) = %d, want 3", got)
	}
	if got := len(x.Get("libc6")); got != 2 {
		t.Errorf("len(Get(libc6)) = %d, want 2", got)
	}
	newest, ok := x.Newest("libc6")
	if !ok || newest.Version() != "2.36-9" {
		t.Fatalf("Newest(libc6) = %v, %v", newest, ok)
	}
	if size, err := newest.Size(); err != nil || size != 2757936 {
		t.Errorf("Size() = %d, %v", size, err)
	}
	if _, ok := x.Newest("missing"); ok {
		t.Error("Newest(missing) found")
	}
	if x.String() != testPackages {
		t.Error("parsing changed the text")
	}
}

// A package's Depends field is evaluated against the newest versions of a
// Packages index.
func TestDependsSatisfiedByIndex(t *testing.T) {
	x, err := ParsePackagesIndex(testPackages)
	if err != nil {
		t.Fatal(err)
	}
	lookup := x.Lookup()

	tests := []struct {
		depends string
		want    bool
	}{
		{"libc6 (>= 2.34)", true},
		{"libc6 (>= 2.37)", false},
		{"libc6 (>= 2.37) | zlib1g", true},
		{"libc6 (<< 2.36), zlib1g", false},
		{"zlib1g (>= 1:1.2)", true},
		{"zlib1g (>= 1.3)", true},
		{"libssl3", false},
	}
	for _, tt := range tests {
		ctl, err := ParseControl("Package: app\nDepends: " + tt.depends + "\n")
		if err != nil {
			t.Fatal(err)
		}
		b, _ := ctl.Binary("app")
		deps, err := b.Depends()
		if err != nil {
			t.Fatalf("Depends(%q) failed: %v", tt.depends, err)
		}
		if got := deps.SatisfiedBy(lookup); got != tt.want {
			t.Errorf("%q satisfied = %v, want %v", tt.depends, got, tt.want)
		}
	}
}

func TestPackagesIndexAdd(t *testing.T) {
	deb := createMockDeb(t, PkgControlTarXz, map[string]string{
		"./control": testControl + "Size: 12\nSHA256: stale\n",
	})
	x := NewPackagesIndex()
	b, err := x.AddDeb("pool/main/t/test/test_1.0_amd64.deb", deb)
	if err != nil {
		t.Fatalf("AddDeb() failed: %v", err)
	}

	hash := sha256.Sum256(deb)
	want := testControl +
		"Filename: pool/main/t/test/test_1.0_amd64.deb\n" +
		"Size: " + strconv.Itoa(len(deb)) + "\n" +
		"SHA256: " + hex.EncodeToString(hash[:]) + "\n"
	if diff := cmp.Diff(want, x.String()); diff != "" {
		t.Errorf("index mismatch (-want +got):\n%s", diff)
	}
	if b.SHA256() != hex.EncodeToString(hash[:]) {
		t.Errorf("SHA256() = %q", b.SHA256())
	}

	if _, err := x.AddDeb("broken.deb", []byte("not an archive")); err == nil {
		t.Error("AddDeb(broken) succeeded")
	}

	deps, err := b.Depends()
	if err != nil {
		t.Fatal(err)
	}
	if deps.SatisfiedBy(relations.VersionMap{"libc6": "2.31-13"}) {
		t.Error("Depends satisfied by an older libc6")
	}
	other, _ := ReadPackagesIndex(bytes.NewReader([]byte(x.String())))
	if len(other.Packages()) != 1 {
		t.Error("index does not read back")
	}
}

func TestPackagesIndexRecords(t *testing.T) {
	const index = `# generated
Package: hello
Version: 2.12-1
Architecture: amd64
Installed-Size: 280
Depends: libc6 (>= 2.34)
Tag: devel::lang:c, role::program
Description: greets
 the world

Package: base-files
Version: 13
Essential: yes
`
	x, err := ParsePackagesIndex(index)
	if err != nil {
		t.Fatal(err)
	}
	got, err := x.Records()
	if err != nil {
		t.Fatalf("Records() failed: %v", err)
	}
	want := []PackageRecord{
		{
			Package:       "hello",
			Version:       "2.12-1",
			Architecture:  "amd64",
			InstalledSize: 280,
			Depends:       mustRelations(t, "libc6 (>= 2.34)"),
			Tag:           []string{"devel::lang:c", "role::program"},
			Description:   "greets\nthe world",
		},
		{Package: "base-files", Version: "13", Essential: true},
	}
	if diff := cmp.Diff(want, got, relationsText); diff != "" {
		t.Errorf("Records() mismatch (-want +got):\n%s", diff)
	}

	y := NewPackagesIndex()
	for _, r := range got {
		if _, err := y.AddRecord(r); err != nil {
			t.Fatalf("AddRecord(%s) failed: %v", r.Package, err)
		}
	}
	wantIndex := "Package: hello\nVersion: 2.12-1\nArchitecture: amd64\nInstalled-Size: 280\n" +
		"Depends: libc6 (>= 2.34)\nTag: devel::lang:c, role::program\nDescription: greets\n the world\n" +
		"\nPackage: base-files\nVersion: 13\nEssential: yes\n"
	if diff := cmp.Diff(wantIndex, y.String()); diff != "" {
		t.Errorf("AddRecord() index mismatch (-want +got):\n%s", diff)
	}
}

func TestPackagesIndexRecordsErrors(t *testing.T) {
	tests := []struct {
		name  string
		index string
	}{
		{"missing version", "Package: hello\n"},
		{"bad size", "Package: hello\nVersion: 1\nInstalled-Size: big\n"},
		{"bad essential", "Package: hello\nVersion: 1\nEssential: maybe\n"},
		{"bad depends", "Package: hello\nVersion: 1\nDepends: libc6 (>=\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, err := ParsePackagesIndex(tt.index)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := x.Records(); err == nil {
				t.Error("Records() succeeded")
			}
		})
	}
}

var relationsText = cmp.Comparer(func(a, b *relations.Relations) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
})

func mustRelations(t *testing.T, text string) *relations.Relations {
	t.Helper()
	rs, err := relations.Parse(text)
	if err != nil {
		t.Fatalf("relations.Parse(%q) failed: %v", text, err)
	}
	return rs
}
