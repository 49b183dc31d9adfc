package deb

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/debedit/deb822"
	"github.com/etnz/debedit/relations"
)

// Control is a debian/control file: one source paragraph followed by the
// binary paragraphs built from it.
//
// Reference: https://www.debian.org/doc/debian-policy/ch-controlfields.html#source-package-control-files-debian-control
type Control struct {
	doc *deb822.Document
}

// ParseControl parses a debian/control file strictly.
func ParseControl(text string) (*Control, error) {
	d, err := deb822.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing control file: %w", err)
	}
	return &Control{doc: d}, nil
}

// ParseControlRelaxed parses a debian/control file, recovering from syntax
// errors.
func ParseControlRelaxed(text string) (*Control, []string) {
	d, errs := deb822.ParseRelaxed(text)
	return &Control{doc: d}, errs
}

// NewControl wraps an already parsed document.
func NewControl(d *deb822.Document) *Control { return &Control{doc: d} }

// Document returns the underlying document.
func (c *Control) Document() *deb822.Document { return c.doc }

func (c *Control) String() string { return c.doc.String() }

// Source returns the source paragraph: the first one with a Source field
// and no Package field.
func (c *Control) Source() (*Source, bool) {
	for _, p := range c.doc.Paragraphs() {
		if isSource(p) {
			return &Source{stanza{p}}, true
		}
	}
	return nil, false
}

// AddSource inserts a source paragraph for the named package at the top of
// the file, or returns the existing one renamed.
func (c *Control) AddSource(name string) *Source {
	s, ok := c.Source()
	if !ok {
		s = &Source{stanza{c.doc.InsertParagraphAt(0)}}
	}
	s.p.Insert(string(FieldSource), name)
	return s
}

// Binaries returns the binary paragraphs, in file order.
func (c *Control) Binaries() []*Binary {
	var bs []*Binary
	for _, p := range c.doc.Paragraphs() {
		if p.Has(string(FieldPackage)) {
			bs = append(bs, &Binary{stanza{p}})
		}
	}
	return bs
}

// Binary returns the binary paragraph of the named package.
func (c *Control) Binary(name string) (*Binary, bool) {
	for _, b := range c.Binaries() {
		if b.Name() == name {
			return b, true
		}
	}
	return nil, false
}

// AddBinary appends a binary paragraph for the named package.
func (c *Control) AddBinary(name string) *Binary {
	p := c.doc.AddParagraph()
	p.Insert(string(FieldPackage), name)
	return &Binary{stanza{p}}
}

func isSource(p *deb822.Paragraph) bool {
	return p.Has(string(FieldSource)) && !p.Has(string(FieldPackage))
}

// Source is the source paragraph of a debian/control file.
type Source struct {
	stanza
}

// Name is the name of the source package.
//
// Reference: https://www.debian.org/doc/debian-policy/ch-controlfields.html#s-f-source
func (s *Source) Name() string { return s.get(string(FieldSource)) }

// Maintainer is the name and email address of the package maintainer.
func (s *Source) Maintainer() string { return s.get(string(FieldMaintainer)) }

// SetMaintainer sets the Maintainer field.
func (s *Source) SetMaintainer(v string) { s.set(string(FieldMaintainer), v) }

// Section classifies the package into a category (e.g., "utils", "net").
func (s *Source) Section() string { return s.get(string(FieldSection)) }

// Priority is the importance of the package, usually "optional".
func (s *Source) Priority() string { return s.get(string(FieldPriority)) }

// Homepage is the URL of the upstream project.
func (s *Source) Homepage() string { return s.get(string(FieldHomepage)) }

// StandardsVersion is the most recent version of the policy the package
// complies with.
//
// Reference: https://www.debian.org/doc/debian-policy/ch-controlfields.html#s-f-standards-version
func (s *Source) StandardsVersion() string { return s.get(string(FieldStandardsVersion)) }

// SetStandardsVersion sets the Standards-Version field.
func (s *Source) SetStandardsVersion(v string) { s.set(string(FieldStandardsVersion), v) }

// VcsGit is the URL of the git repository holding the packaging.
//
// Reference: https://www.debian.org/doc/debian-policy/ch-controlfields.html#s-f-vcs-fields
func (s *Source) VcsGit() string { return s.get(string(FieldVcsGit)) }

// BuildDepends lists the packages needed to build the source package.
//
// Reference: https://www.debian.org/doc/debian-policy/ch-relationships.html#relationships-between-source-and-binary-packages-build-depends-build-depends-indep-build-depends-arch-build-conflicts-build-conflicts-indep-build-conflicts-arch
func (s *Source) BuildDepends() (*relations.Relations, error) {
	return s.relations(FieldBuildDepends)
}

// SetBuildDepends replaces the Build-Depends field. An empty list removes it.
func (s *Source) SetBuildDepends(rs *relations.Relations) { s.setRelations(FieldBuildDepends, rs) }

// BuildDependsIndep lists the packages needed to build the
// architecture-independent binary packages.
func (s *Source) BuildDependsIndep() (*relations.Relations, error) {
	return s.relations(FieldBuildDependsIndep)
}

// BuildDependsArch lists the packages needed to build the
// architecture-dependent binary packages.
func (s *Source) BuildDependsArch() (*relations.Relations, error) {
	return s.relations(FieldBuildDependsArch)
}

// BuildConflicts lists the packages that must not be installed while
// building.
func (s *Source) BuildConflicts() (*relations.Relations, error) {
	return s.relations(FieldBuildConflicts)
}

// Binary is a binary package paragraph, as found in debian/control, in the
// control file of a .deb, or in a Packages index.
//
// Reference: https://www.debian.org/doc/debian-policy/ch-controlfields.html#binary-package-control-files-debian-control
type Binary struct {
	stanza
}

// Name is the name of the binary package.
func (b *Binary) Name() string { return b.get(string(FieldPackage)) }

// Version is the version of the package: [epoch:]upstream_version[-debian_revision].
// It is empty in debian/control, where the version comes from the changelog.
func (b *Binary) Version() string { return b.get(string(FieldVersion)) }

// SetVersion sets the Version field.
func (b *Binary) SetVersion(v string) { b.set(string(FieldVersion), v) }

// Architecture is "any", "all", or a list of architectures.
func (b *Binary) Architecture() string { return b.get(string(FieldArchitecture)) }

// SetArchitecture sets the Architecture field.
func (b *Binary) SetArchitecture(v string) { b.set(string(FieldArchitecture), v) }

// Section classifies the package into a category.
func (b *Binary) Section() string { return b.get(string(FieldSection)) }

// Maintainer is set in .deb control files and Packages indices.
func (b *Binary) Maintainer() string { return b.get(string(FieldMaintainer)) }

// Essential reports whether the package is essential for the system to
// function.
//
// Reference: https://www.debian.org/doc/debian-policy/ch-controlfields.html#s-f-essential
func (b *Binary) Essential() (bool, error) { return b.yesNo(string(FieldEssential)) }

// Description returns the synopsis and the extended description, whose
// "." lines are decoded as empty lines.
//
// Reference: https://www.debian.org/doc/debian-policy/ch-controlfields.html#s-f-description
func (b *Binary) Description() (synopsis, long string) {
	synopsis, long, _ = strings.Cut(b.get(string(FieldDescription)), "\n")
	return synopsis, long
}

// SetDescription sets the synopsis and extended description.
func (b *Binary) SetDescription(synopsis, long string) {
	v := synopsis
	if long != "" {
		v += "\n" + long
	}
	b.set(string(FieldDescription), v)
}

// InstalledSize is the estimated disk space the package uses, in KiB.
func (b *Binary) InstalledSize() (int64, error) {
	return b.integer(string(FieldInstalledSize))
}

// Filename is the path of the .deb, relative to the repository root. It is
// set in Packages indices only.
func (b *Binary) Filename() string { return b.get(string(FieldFilename)) }

// Size is the size of the .deb in bytes. It is set in Packages indices
// only.
func (b *Binary) Size() (int64, error) { return b.integer(string(FieldSize)) }

// SHA256 is the checksum of the .deb. It is set in Packages indices only.
func (b *Binary) SHA256() string { return b.get(string(FieldSHA256)) }

func (b *Binary) integer(f string) (int64, error) {
	v, ok := b.p.Get(f)
	if !ok {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, &FieldError{Field: f, Value: v, Err: err}
	}
	return n, nil
}

// Depends lists packages that must be installed for this package to
// provide a significant amount of functionality.
//
// Reference: https://www.debian.org/doc/debian-policy/ch-relationships.html#s-binarydeps
func (b *Binary) Depends() (*relations.Relations, error) { return b.relations(FieldDepends) }

// SetDepends replaces the Depends field. An empty list removes it.
func (b *Binary) SetDepends(rs *relations.Relations) { b.setRelations(FieldDepends, rs) }

// PreDepends lists packages that must be configured before this one is
// unpacked.
func (b *Binary) PreDepends() (*relations.Relations, error) { return b.relations(FieldPreDepends) }

// Recommends lists packages found with this one in all but unusual
// installations.
func (b *Binary) Recommends() (*relations.Relations, error) { return b.relations(FieldRecommends) }

// Suggests lists packages that enhance the usefulness of this one.
func (b *Binary) Suggests() (*relations.Relations, error) { return b.relations(FieldSuggests) }

// Enhances is the reverse of Suggests.
func (b *Binary) Enhances() (*relations.Relations, error) { return b.relations(FieldEnhances) }

// Conflicts lists packages that cannot be unpacked alongside this one.
//
// Reference: https://www.debian.org/doc/debian-policy/ch-relationships.html#s-conflicts
func (b *Binary) Conflicts() (*relations.Relations, error) { return b.relations(FieldConflicts) }

// Breaks lists packages that this package breaks.
func (b *Binary) Breaks() (*relations.Relations, error) { return b.relations(FieldBreaks) }

// Replaces lists packages whose files this package overwrites.
func (b *Binary) Replaces() (*relations.Relations, error) { return b.relations(FieldReplaces) }

// Provides lists the virtual packages this package provides.
//
// Reference: https://www.debian.org/doc/debian-policy/ch-relationships.html#s-virtual
func (b *Binary) Provides() (*relations.Relations, error) { return b.relations(FieldProvides) }
