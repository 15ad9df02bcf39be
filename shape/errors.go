package shape

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	// ErrNilValue reports a required argument that was absent.
	ErrNilValue = errors.New("shape: nil value")
	// ErrBlankName reports an empty or whitespace-only name.
	ErrBlankName = errors.New("shape: blank name")
	// ErrReservedName reports a name from the reserved keyword space.
	ErrReservedName = errors.New("shape: reserved name")
	// ErrRelativeIRI reports an IRI that is not absolute.
	ErrRelativeIRI = errors.New("shape: relative IRI")
	// ErrNegativeLimit reports a negative length or count limit.
	ErrNegativeLimit = errors.New("shape: negative limit")
	// ErrArrayValue reports an array value where a scalar is required.
	ErrArrayValue = errors.New("shape: array value")
)

// ConflictError reports two facet values that cannot be reconciled.
type ConflictError struct {
	Facet string
	X, Y  interface{}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("shape: conflicting %s: %v / %v", e.Facet, e.X, e.Y)
}

func conflict(facet string, x, y interface{}) error {
	return &ConflictError{Facet: facet, X: x, Y: y}
}

// reserved reports whether a term belongs to the reserved keyword space.
// Keywords are the "@"-prefixed names of the serialization layer.
func reserved(name string) bool {
	return strings.HasPrefix(name, "@")
}

func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: %q", ErrBlankName, name)
	}
	if reserved(name) {
		return fmt.Errorf("%w: %q", ErrReservedName, name)
	}
	return nil
}

func checkAbsolute(iri string) error {
	u, err := url.Parse(iri)
	if err != nil || !u.IsAbs() {
		return fmt.Errorf("%w: %q", ErrRelativeIRI, iri)
	}
	return nil
}
