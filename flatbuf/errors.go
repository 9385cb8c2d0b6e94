package flatbuf

import "github.com/pkg/errors"

var (
	// ErrMalformed reports a buffer whose offsets or lengths point outside of it.
	ErrMalformed    = errors.New("malformed buffer")
	ErrMissingField = errors.New("missing required field")
	ErrDuplicateKey = errors.New("duplicate map key")
)
