package spi

import (
	"errors"
	"fmt"
)

// Error kinds. Concrete errors wrap one of these so callers can use errors.Is.
var (
	// ErrGrammar reports conflicting flag declarations found while building the grammar.
	ErrGrammar = errors.New("grammar error")
	// ErrParse reports a malformed invocation.
	ErrParse = errors.New("parse error")
	// ErrTypeMismatch reports an accessor used on a value of another kind.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrNotFound reports an accessor used on a flag that was not matched.
	ErrNotFound = errors.New("argument not found")
	// ErrActivation reports an invalid set of active plugins.
	ErrActivation = errors.New("activation error")
	// ErrUnknownApp reports a request for an application missing from the catalog.
	ErrUnknownApp = errors.New("unknown application")
)

// ArgError is returned by Arguments accessors.
type ArgError struct {
	Key string
	Err error
	// Detail is optional extra context, e.g. the text that failed to convert.
	Detail string
}

func (e *ArgError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("argument %q: %v: %s", e.Key, e.Err, e.Detail)
	}
	return fmt.Sprintf("argument %q: %v", e.Key, e.Err)
}

func (e *ArgError) Unwrap() error { return e.Err }
