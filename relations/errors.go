package relations

import (
	"errors"
	"strings"
)

var (
	// ErrParse is matched by every *ParseError.
	ErrParse = errors.New("parse error")
	// ErrNoEntry is returned by ParseEntry and ParseRelation on empty input.
	ErrNoEntry = errors.New("no entry found")
	// ErrMultipleEntries is returned by ParseEntry when the input holds a
	// comma separated list.
	ErrMultipleEntries = errors.New("multiple entries found")
	// ErrMultipleRelations is returned by ParseRelation when the input holds
	// alternatives.
	ErrMultipleRelations = errors.New("multiple relations found")
)

// ParseError holds the diagnostics of a failed strict parse.
type ParseError struct {
	Errors []string
}

func (e *ParseError) Error() string {
	return strings.Join(e.Errors, "\n")
}

// Is makes errors.Is(err, ErrParse) hold for every *ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
