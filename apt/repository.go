package apt

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/etnz/debedit/deb"
	"github.com/etnz/debedit/deb822"
)

// SourceField represents a field of a deb822 data source.
type SourceField string

const (
	FieldEnabled       SourceField = "Enabled"
	FieldTypes         SourceField = "Types"
	FieldURIs          SourceField = "URIs"
	FieldSuites        SourceField = "Suites"
	FieldComponents    SourceField = "Components"
	FieldArchitectures SourceField = "Architectures"
	FieldLanguages     SourceField = "Languages"
	FieldTargets       SourceField = "Targets"
	FieldPDiffs        SourceField = "PDiffs"
	FieldByHash        SourceField = "By-Hash"
	FieldAllowInsecure SourceField = "Allow-Insecure"
	FieldTrusted       SourceField = "Trusted"
	FieldSignedBy      SourceField = "Signed-By"
	FieldXRepolibName  SourceField = "X-Repolib-Name"
	FieldDescription   SourceField = "Description"
)

// RepositoryType is a value of the Types field.
type RepositoryType string

const (
	// Binary repositories provide binary packages.
	Binary RepositoryType = "deb"
	// Source repositories provide source packages.
	Source RepositoryType = "deb-src"
)

// ParseRepositoryType validates a Types word.
func ParseRepositoryType(s string) (RepositoryType, error) {
	switch t := RepositoryType(s); t {
	case Binary, Source:
		return t, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrInvalidType)
}

// Signature is the value of a Signed-By field: either the path of a key
// ring file, or an ASCII-armored key block embedded in the field.
type Signature struct {
	KeyPath  string
	KeyBlock string
}

// ParseSignature decodes a Signed-By value. A multi-line value is a key
// block, a single line is a path.
func ParseSignature(value string) Signature {
	if strings.Contains(value, "\n") {
		return Signature{KeyBlock: strings.TrimLeft(value, "\n")}
	}
	return Signature{KeyPath: strings.TrimSpace(value)}
}

// String returns the field value. A key block starts on the line after the
// field name.
func (s Signature) String() string {
	if s.KeyBlock != "" {
		return "\n" + s.KeyBlock
	}
	return s.KeyPath
}

// KeyRing decodes the key block, or reads the key ring file, armored or
// binary.
func (s Signature) KeyRing() (openpgp.EntityList, error) {
	if s.KeyBlock != "" {
		return openpgp.ReadArmoredKeyRing(strings.NewReader(s.KeyBlock))
	}
	data, err := os.ReadFile(s.KeyPath)
	if err != nil {
		return nil, err
	}
	if ring, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(data)); err == nil {
		return ring, nil
	}
	return openpgp.ReadKeyRing(bytes.NewReader(data))
}

// RepositoryInfo is the plain-data form of a repository, used to add one
// to a Sources file.
type RepositoryInfo struct {
	Types         []RepositoryType
	URIs          []string
	Suites        []string
	Components    []string
	Architectures []string
	// Disabled writes "Enabled: no".
	Disabled    bool
	SignedBy    Signature
	Description string
}

// Repository is one paragraph of a .sources file.
type Repository struct {
	p *deb822.Paragraph
}

// Paragraph returns the underlying paragraph.
func (r *Repository) Paragraph() *deb822.Paragraph { return r.p }

func (r *Repository) String() string { return r.p.String() }

func (r *Repository) words(f SourceField) []string {
	v, _ := r.p.Get(string(f))
	return strings.Fields(v)
}

func (r *Repository) setWords(f SourceField, ws []string) {
	if len(ws) == 0 {
		r.p.Remove(string(f))
		return
	}
	r.p.Insert(string(f), strings.Join(ws, " "))
}

// Types returns the repository types, deb and/or deb-src.
func (r *Repository) Types() ([]RepositoryType, error) {
	var ts []RepositoryType
	for _, w := range r.words(FieldTypes) {
		t, err := ParseRepositoryType(w)
		if err != nil {
			v, _ := r.p.Get(string(FieldTypes))
			return nil, &deb.FieldError{Field: string(FieldTypes), Value: v, Err: err}
		}
		ts = append(ts, t)
	}
	return ts, nil
}

// SetTypes replaces the Types field.
func (r *Repository) SetTypes(ts ...RepositoryType) {
	ws := make([]string, len(ts))
	for i, t := range ts {
		ws[i] = string(t)
	}
	r.setWords(FieldTypes, ws)
}

// URIs returns the base URIs of the repository. The field is mandatory.
func (r *Repository) URIs() ([]*url.URL, error) {
	v, ok := r.p.Get(string(FieldURIs))
	if !ok || strings.TrimSpace(v) == "" {
		return nil, ErrMissingURI
	}
	var us []*url.URL
	for _, w := range strings.Fields(v) {
		u, err := url.Parse(w)
		if err != nil || !u.IsAbs() {
			return nil, &deb.FieldError{Field: string(FieldURIs), Value: w, Err: ErrInvalidURI}
		}
		us = append(us, u)
	}
	return us, nil
}

// SetURIs replaces the URIs field.
func (r *Repository) SetURIs(uris ...string) { r.setWords(FieldURIs, uris) }

// Suites returns the suites, such as "noble" or "stable". A suite ending
// with "/" names a flat repository path.
func (r *Repository) Suites() []string { return r.words(FieldSuites) }

// SetSuites replaces the Suites field.
func (r *Repository) SetSuites(suites ...string) { r.setWords(FieldSuites, suites) }

// Components returns the components, such as "main". Flat repositories
// have none.
func (r *Repository) Components() []string { return r.words(FieldComponents) }

// SetComponents replaces the Components field.
func (r *Repository) SetComponents(cs ...string) { r.setWords(FieldComponents, cs) }

// Architectures returns the architectures to download indices for. None
// means the system's architectures.
func (r *Repository) Architectures() []string { return r.words(FieldArchitectures) }

// SetArchitectures replaces the Architectures field.
func (r *Repository) SetArchitectures(archs ...string) { r.setWords(FieldArchitectures, archs) }

// Languages returns the languages to download translations for.
func (r *Repository) Languages() []string { return r.words(FieldLanguages) }

// Targets returns the index targets to download.
func (r *Repository) Targets() []string { return r.words(FieldTargets) }

// Description is a free-form description of the repository.
func (r *Repository) Description() string {
	v, _ := r.p.Get(string(FieldDescription))
	return v
}

// Name is the X-Repolib-Name of the repository, as Pop!_OS writes it.
func (r *Repository) Name() string {
	v, _ := r.p.Get(string(FieldXRepolibName))
	return v
}

// Enabled reports whether APT uses the repository. A missing field means
// yes.
func (r *Repository) Enabled() (bool, error) { return r.yesNo(FieldEnabled, true) }

// SetEnabled sets the Enabled field, editing it in place when present.
func (r *Repository) SetEnabled(enabled bool) {
	v := "no"
	if enabled {
		v = "yes"
	}
	r.p.Insert(string(FieldEnabled), v)
}

// PDiffs reports whether index diffs are used. A missing field means yes.
func (r *Repository) PDiffs() (bool, error) { return r.yesNo(FieldPDiffs, true) }

// AllowInsecure reports whether an unsigned repository is accepted.
func (r *Repository) AllowInsecure() (bool, error) { return r.yesNo(FieldAllowInsecure, false) }

// Trusted reports whether the repository is trusted without a signature
// check.
func (r *Repository) Trusted() (bool, error) { return r.yesNo(FieldTrusted, false) }

// ByHash returns the By-Hash field: "yes", "no" or "force". A missing field
// is "yes".
func (r *Repository) ByHash() (string, error) {
	v, ok := r.p.Get(string(FieldByHash))
	if !ok {
		return "yes", nil
	}
	switch v {
	case "yes", "no", "force":
		return v, nil
	}
	return "", &deb.FieldError{Field: string(FieldByHash), Value: v, Err: errors.New("want yes, no or force")}
}

func (r *Repository) yesNo(f SourceField, def bool) (bool, error) {
	v, ok := r.p.Get(string(f))
	if !ok {
		return def, nil
	}
	switch v {
	case "yes":
		return true, nil
	case "no":
		return false, nil
	}
	return false, &deb.FieldError{Field: string(f), Value: v, Err: errors.New("want yes or no")}
}

// SignedBy returns the Signed-By field.
func (r *Repository) SignedBy() (Signature, error) {
	v, ok := r.p.Get(string(FieldSignedBy))
	if !ok {
		return Signature{}, ErrNoSignedBy
	}
	return ParseSignature(v), nil
}

// SetSignedBy replaces the Signed-By field.
func (r *Repository) SetSignedBy(s Signature) { r.p.Insert(string(FieldSignedBy), s.String()) }

// SignedByKeyRing returns the keys the repository must be signed with.
func (r *Repository) SignedByKeyRing() (openpgp.EntityList, error) {
	s, err := r.SignedBy()
	if err != nil {
		return nil, err
	}
	ring, err := s.KeyRing()
	if err != nil {
		return nil, &deb.FieldError{Field: string(FieldSignedBy), Value: s.KeyPath, Err: err}
	}
	return ring, nil
}

// Info returns the plain-data form of the repository.
func (r *Repository) Info() (RepositoryInfo, error) {
	ts, err := r.Types()
	if err != nil {
		return RepositoryInfo{}, err
	}
	enabled, err := r.Enabled()
	if err != nil {
		return RepositoryInfo{}, err
	}
	info := RepositoryInfo{
		Types:         ts,
		URIs:          r.words(FieldURIs),
		Suites:        r.Suites(),
		Components:    r.Components(),
		Architectures: r.Architectures(),
		Disabled:      !enabled,
		Description:   r.Description(),
	}
	if s, err := r.SignedBy(); err == nil {
		info.SignedBy = s
	}
	return info, nil
}

// PackagesURLs returns the URL of the Packages index of every combination
// of URI, suite, component and architecture.
func (r *Repository) PackagesURLs(archs ...string) ([]string, error) {
	uris, err := r.URIs()
	if err != nil {
		return nil, err
	}
	if a := r.Architectures(); len(a) > 0 {
		archs = a
	}
	var urls []string
	for _, u := range uris {
		for _, suite := range r.Suites() {
			if strings.HasSuffix(suite, "/") {
				urls = append(urls, PackagesURL(u, suite, "", ""))
				continue
			}
			for _, c := range r.Components() {
				for _, a := range archs {
					urls = append(urls, PackagesURL(u, suite, c, a))
				}
			}
		}
	}
	return urls, nil
}
