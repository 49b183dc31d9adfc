package deb

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/debedit/deb822"
)

// ArchiveInfo holds metadata about the repository itself, as written to
// its Release file.
//
// Reference: https://wiki.debian.org/DebianRepository/Format#Release_file
type ArchiveInfo struct {
	// Origin identifies the repository origin (e.g., "Debian", "MyOrg").
	Origin string
	// Label is a short label for the repository.
	Label string
	// Suite specifies the suite name (e.g., "stable", "testing").
	Suite string
	// Version is the version of the release (e.g., "12.0").
	Version string
	// Codename specifies the release codename (e.g., "bookworm", "noble").
	Codename string
	// Date is when the Release file was generated. The zero value means now.
	Date time.Time
	// ValidUntil is the expiration date of the Release file, if any.
	ValidUntil time.Time
	// Architectures supported by the repository.
	Architectures []string
	// Components of the repository (e.g., "main", "contrib").
	Components []string
	// Description provides a description of the repository.
	Description string
	// NotAutomatic prevents the repository from being selected by default
	// for upgrades.
	NotAutomatic bool
	// ButAutomaticUpgrades allows automatic upgrades for packages already
	// installed from a NotAutomatic repository.
	ButAutomaticUpgrades bool
	// AcquireByHash indicates support for acquiring indices by hash.
	AcquireByHash bool
}

// FileChecksum is one line of a checksum field of a Release file.
type FileChecksum struct {
	Hash string
	Size int64
	// Path is relative to the directory of the Release file.
	Path string
}

func (c FileChecksum) String() string {
	return fmt.Sprintf("%s %d %s", c.Hash, c.Size, c.Path)
}

// Release is the Release (or InRelease payload) file of an APT repository.
type Release struct {
	stanza
}

// ParseRelease parses a Release file. A clearsigned InRelease file is
// accepted too: its signature is stripped, not verified.
func ParseRelease(text string) (*Release, error) {
	payload, _, err := StripSignature(text)
	if err != nil {
		return nil, err
	}
	p, err := deb822.ParseParagraph(payload)
	if err != nil {
		return nil, fmt.Errorf("parsing Release: %w", err)
	}
	return &Release{stanza{p}}, nil
}

// NewRelease returns a Release file describing info, with no checksum yet.
func NewRelease(info ArchiveInfo) *Release {
	p := deb822.NewParagraph()
	writeField := func(key ReleaseField, value string) {
		if value != "" {
			p.Append(string(key), value)
		}
	}
	yes := func(b bool) string {
		if b {
			return "yes"
		}
		return ""
	}
	date := info.Date
	if date.IsZero() {
		date = time.Now()
	}

	writeField(RelOrigin, info.Origin)
	writeField(RelLabel, info.Label)
	writeField(RelSuite, info.Suite)
	writeField(RelVersion, info.Version)
	writeField(RelCodename, info.Codename)
	writeField(RelDate, date.UTC().Format(time.RFC1123Z))
	if !info.ValidUntil.IsZero() {
		writeField(RelValidUntil, info.ValidUntil.UTC().Format(time.RFC1123Z))
	}
	writeField(RelArchitectures, strings.Join(info.Architectures, " "))
	writeField(RelComponents, strings.Join(info.Components, " "))
	writeField(RelDescription, info.Description)
	writeField(RelNotAutomatic, yes(info.NotAutomatic))
	writeField(RelButAutomaticUpgrades, yes(info.ButAutomaticUpgrades))
	writeField(RelAcquireByHash, yes(info.AcquireByHash))
	return &Release{stanza{p}}
}

func (r *Release) Origin() string      { return r.get(string(RelOrigin)) }
func (r *Release) Label() string       { return r.get(string(RelLabel)) }
func (r *Release) Suite() string       { return r.get(string(RelSuite)) }
func (r *Release) Version() string     { return r.get(string(RelVersion)) }
func (r *Release) Codename() string    { return r.get(string(RelCodename)) }
func (r *Release) Description() string { return r.get(string(RelDescription)) }

// Architectures returns the space separated Architectures field.
func (r *Release) Architectures() []string { return strings.Fields(r.get(string(RelArchitectures))) }

// Components returns the space separated Components field.
func (r *Release) Components() []string { return strings.Fields(r.get(string(RelComponents))) }

// Date returns the generation date.
func (r *Release) Date() (time.Time, error) { return r.date(string(RelDate)) }

// ValidUntil returns the expiration date, or the zero time if there is
// none.
func (r *Release) ValidUntil() (time.Time, error) { return r.date(string(RelValidUntil)) }

// AcquireByHash reports whether indices may be fetched by hash.
func (r *Release) AcquireByHash() (bool, error) { return r.yesNo(string(RelAcquireByHash)) }

func (r *Release) date(f string) (time.Time, error) {
	v, ok := r.p.Get(f)
	if !ok {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC1123Z, v)
	if err != nil {
		// dak writes the zone as "UTC".
		t, err = time.Parse(time.RFC1123, v)
	}
	if err != nil {
		return time.Time{}, &FieldError{Field: f, Value: v, Err: err}
	}
	return t, nil
}

// Checksums returns the files listed in a checksum field, such as SHA256.
func (r *Release) Checksums(field ReleaseField) ([]FileChecksum, error) {
	v, ok := r.p.Get(string(field))
	if !ok {
		return nil, nil
	}
	var sums []FileChecksum
	for _, line := range strings.Split(v, "\n") {
		fs := strings.Fields(line)
		if len(fs) == 0 {
			continue
		}
		if len(fs) != 3 {
			return nil, &FieldError{Field: string(field), Value: line, Err: fmt.Errorf("want 3 columns, got %d", len(fs))}
		}
		size, err := strconv.ParseInt(fs[1], 10, 64)
		if err != nil {
			return nil, &FieldError{Field: string(field), Value: line, Err: err}
		}
		sums = append(sums, FileChecksum{Hash: fs[0], Size: size, Path: fs[2]})
	}
	return sums, nil
}

// SetChecksums replaces a checksum field. Files are listed by path, one per
// continuation line.
func (r *Release) SetChecksums(field ReleaseField, sums []FileChecksum) {
	sums = slices.Clone(sums)
	slices.SortFunc(sums, func(a, b FileChecksum) int { return strings.Compare(a.Path, b.Path) })
	var b strings.Builder
	for _, s := range sums {
		b.WriteString("\n")
		b.WriteString(s.String())
	}
	r.p.Insert(string(field), b.String())
}

// AddFile records the SHA256 checksum of an index file, replacing the
// previous entry for the same path.
func (r *Release) AddFile(path string, content []byte) error {
	sums, err := r.Checksums(RelSHA256)
	if err != nil {
		return err
	}
	hash := sha256.Sum256(content)
	sum := FileChecksum{Hash: hex.EncodeToString(hash[:]), Size: int64(len(content)), Path: path}
	sums = slices.DeleteFunc(sums, func(s FileChecksum) bool { return s.Path == path })
	r.SetChecksums(RelSHA256, append(sums, sum))
	return nil
}
