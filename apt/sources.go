package apt

import (
	"fmt"
	"strings"

	"github.com/etnz/debedit/deb822"
)

// Sources is a deb822 .sources file: one repository per paragraph.
type Sources struct {
	doc *deb822.Document
}

// ParseSources parses a .sources file strictly. The one-line format of
// sources.list is rejected.
func ParseSources(text string) (*Sources, error) {
	d, err := deb822.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing sources: %w", err)
	}
	return &Sources{doc: d}, nil
}

// ParseSourcesRelaxed parses a .sources file, recovering from syntax
// errors.
func ParseSourcesRelaxed(text string) (*Sources, []string) {
	d, errs := deb822.ParseRelaxed(text)
	return &Sources{doc: d}, errs
}

// ReadSourcesFile parses the .sources file at path.
func ReadSourcesFile(path string) (*Sources, error) {
	d, err := deb822.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Sources{doc: d}, nil
}

// Document returns the underlying document.
func (s *Sources) Document() *deb822.Document { return s.doc }

func (s *Sources) String() string { return s.doc.String() }

// Repositories returns the repositories in file order.
func (s *Sources) Repositories() []*Repository {
	var rs []*Repository
	for _, p := range s.doc.Paragraphs() {
		rs = append(rs, &Repository{p: p})
	}
	return rs
}

// Add appends a repository described by info.
func (s *Sources) Add(info RepositoryInfo) *Repository {
	r := &Repository{p: s.doc.AddParagraph()}
	if info.Disabled {
		r.SetEnabled(false)
	}
	r.SetTypes(info.Types...)
	r.SetURIs(info.URIs...)
	r.SetSuites(info.Suites...)
	r.SetComponents(info.Components...)
	r.SetArchitectures(info.Architectures...)
	if info.SignedBy != (Signature{}) {
		r.SetSignedBy(info.SignedBy)
	}
	if info.Description != "" {
		r.p.Insert(string(FieldDescription), strings.TrimSpace(info.Description))
	}
	return r
}
