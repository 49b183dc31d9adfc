package deb

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"

	"github.com/etnz/debedit/deb822"
	"github.com/etnz/debedit/deb822/lossy"
	"github.com/etnz/debedit/relations"
)

// PackagesIndex is the Packages file of an APT repository: one binary
// paragraph per available package version.
//
// Reference: https://wiki.debian.org/DebianRepository/Format#A.22Packages.22_Indices
type PackagesIndex struct {
	doc *deb822.Document
}

// ParsePackagesIndex parses a Packages file strictly.
func ParsePackagesIndex(text string) (*PackagesIndex, error) {
	d, err := deb822.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing Packages: %w", err)
	}
	return &PackagesIndex{doc: d}, nil
}

// ReadPackagesIndex reads and parses a Packages file.
func ReadPackagesIndex(r io.Reader) (*PackagesIndex, error) {
	d, err := deb822.Read(r)
	if err != nil {
		return nil, fmt.Errorf("parsing Packages: %w", err)
	}
	return &PackagesIndex{doc: d}, nil
}

// NewPackagesIndex returns an empty index.
func NewPackagesIndex() *PackagesIndex { return &PackagesIndex{doc: deb822.New()} }

// Document returns the underlying document.
func (x *PackagesIndex) Document() *deb822.Document { return x.doc }

func (x *PackagesIndex) String() string { return x.doc.String() }

// Packages returns every package of the index, in file order.
func (x *PackagesIndex) Packages() []*Binary {
	var bs []*Binary
	for _, p := range x.doc.Paragraphs() {
		if p.Has(string(FieldPackage)) {
			bs = append(bs, &Binary{stanza{p}})
		}
	}
	return bs
}

// Get returns every version of the named package.
func (x *PackagesIndex) Get(name string) []*Binary {
	var bs []*Binary
	for _, b := range x.Packages() {
		if b.Name() == name {
			bs = append(bs, b)
		}
	}
	return bs
}

// Newest returns the highest version of the named package, by Debian
// version ordering.
func (x *PackagesIndex) Newest(name string) (*Binary, bool) {
	var newest *Binary
	for _, b := range x.Get(name) {
		if newest == nil || relations.CompareVersions(b.Version(), newest.Version()) > 0 {
			newest = b
		}
	}
	return newest, newest != nil
}

// Lookup returns the newest version of each package, to evaluate relations
// against this index.
func (x *PackagesIndex) Lookup() relations.VersionLookup {
	versions := relations.VersionMap{}
	for _, b := range x.Packages() {
		v, ok := versions[b.Name()]
		if !ok || relations.CompareVersions(b.Version(), v) > 0 {
			versions[b.Name()] = b.Version()
		}
	}
	return versions
}

// Add appends the control paragraph of a package, followed by the fields
// locating its .deb in the repository: Filename, Size and SHA256.
func (x *PackagesIndex) Add(control *deb822.Paragraph, filename string, deb []byte) *Binary {
	p := x.doc.AddParagraph()
	for _, f := range control.Items() {
		switch ControlField(f.Key) {
		case FieldFilename, FieldSize, FieldSHA256, FieldMD5sum:
			continue
		}
		p.Append(f.Key, f.Value)
	}
	hash := sha256.Sum256(deb)
	p.Append(string(FieldFilename), filename)
	p.Append(string(FieldSize), strconv.Itoa(len(deb)))
	p.Append(string(FieldSHA256), hex.EncodeToString(hash[:]))
	return &Binary{stanza{p}}
}

// AddDeb reads the control file of a .deb and adds it to the index.
func (x *PackagesIndex) AddDeb(filename string, deb []byte) (*Binary, error) {
	control, err := ReadControl(bytes.NewReader(deb))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return x.Add(control, filename, deb), nil
}

// PackageRecord is the plain data of one package of an index.
type PackageRecord struct {
	Package       string               `deb822:"Package,required"`
	Version       string               `deb822:"Version,required"`
	Architecture  string               `deb822:"Architecture,omitempty"`
	Maintainer    string               `deb822:"Maintainer,omitempty"`
	InstalledSize uint64               `deb822:"Installed-Size,omitempty"`
	Depends       *relations.Relations `deb822:"Depends,omitempty"`
	PreDepends    *relations.Relations `deb822:"Pre-Depends,omitempty"`
	Provides      *relations.Relations `deb822:"Provides,omitempty"`
	Essential     bool                 `deb822:"Essential,omitempty"`
	Section       string               `deb822:"Section,omitempty"`
	Priority      string               `deb822:"Priority,omitempty"`
	Tag           []string             `deb822:"Tag,comma,omitempty"`
	Filename      string               `deb822:"Filename,omitempty"`
	Size          uint64               `deb822:"Size,omitempty"`
	SHA256        string               `deb822:"SHA256,omitempty"`
	Description   string               `deb822:"Description,omitempty"`
}

// Records decodes every package of the index into plain data. Comments and
// layout are dropped.
func (x *PackagesIndex) Records() ([]PackageRecord, error) {
	rs, err := lossy.UnmarshalAll[PackageRecord](lossy.FromDocument(x.doc))
	if err != nil {
		return nil, fmt.Errorf("decoding Packages: %w", err)
	}
	return rs, nil
}

// AddRecord appends the paragraph of r.
func (x *PackagesIndex) AddRecord(r PackageRecord) (*Binary, error) {
	lp, err := lossy.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", r.Package, err)
	}
	p := x.doc.AddParagraph()
	for _, f := range lp.Fields {
		p.Append(f.Key, f.Value)
	}
	return &Binary{stanza{p}}, nil
}
