package deb822

import (
	"errors"
	"strings"
)

var (
	// ErrParse is matched by every *ParseError.
	ErrParse = errors.New("parse error")
	// ErrNoParagraph is returned when a single paragraph was expected but the
	// input holds none.
	ErrNoParagraph = errors.New("no paragraph found")
)

// ParseError is returned by the strict entry points when the input produced
// diagnostics. Errors holds the diagnostics in document order.
type ParseError struct {
	Errors []string
}

// Error joins the diagnostics with newlines.
func (e *ParseError) Error() string {
	return strings.Join(e.Errors, "\n")
}

// Is makes errors.Is(err, ErrParse) hold for every *ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
