package deb

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidField is matched by every *FieldError.
	ErrInvalidField = errors.New("invalid field")
	// ErrNoSignature is returned when a clearsigned message was expected.
	ErrNoSignature = errors.New("no clearsign signature")
	// ErrNoPrivateKey is returned when a key ring holds no private key to
	// sign with.
	ErrNoPrivateKey = errors.New("no private key found")
	// ErrNoControl is returned when a .deb has no control file.
	ErrNoControl = errors.New("control file not found")
)

// FieldError reports a field whose value a typed accessor could not decode.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: invalid value %q: %v", e.Field, e.Value, e.Err)
}

// Is makes errors.Is(err, ErrInvalidField) hold for every *FieldError.
func (e *FieldError) Is(target error) bool { return target == ErrInvalidField }

func (e *FieldError) Unwrap() error { return e.Err }
