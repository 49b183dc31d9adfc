package deb822

import (
	"fmt"
	"io"
	"os"
)

// Read parses a document strictly from r.
func Read(r io.Reader) (*Document, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return Parse(string(b))
}

// ReadRelaxed parses a document from r, returning diagnostics instead of
// failing on malformed content.
func ReadRelaxed(r io.Reader) (*Document, []string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read document: %w", err)
	}
	d, errs := ParseRelaxed(string(b))
	return d, errs, nil
}

// ReadFile parses the file at path strictly.
func ReadFile(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := Parse(string(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// ReadFileRelaxed parses the file at path, returning diagnostics instead of
// failing on malformed content.
func ReadFileRelaxed(path string) (*Document, []string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	d, errs := ParseRelaxed(string(b))
	return d, errs, nil
}
