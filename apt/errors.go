package apt

import "errors"

var (
	// ErrInvalidType is returned for a Types value other than deb or
	// deb-src.
	ErrInvalidType = errors.New("invalid repository type")
	// ErrInvalidURI is returned for a URIs value that is not an absolute
	// URI.
	ErrInvalidURI = errors.New("invalid repository URI")
	// ErrMissingURI is returned when a repository has no URIs field.
	ErrMissingURI = errors.New("missing repository URI")
	// ErrNoSignedBy is returned when a repository has no Signed-By field.
	ErrNoSignedBy = errors.New("no Signed-By field")
)
