package shape

import (
	"strings"

	"github.com/glazegraph/glaze/voc"
)

// Type identifies an object class by name and IRI.
//
// Types carry no constraints of their own; shapes accumulate them in their
// class facets and reject colliding pairs at construction.
type Type struct {
	name        string
	description string
	iri         string
}

// NewType returns a Type named name, deriving its IRI by term expansion.
func NewType(name string) (Type, error) {
	if err := checkName(name); err != nil {
		return Type{}, err
	}
	return NewTypeFull(name, voc.Expand(name))
}

// NewTypeIRI returns a Type identified by iri, deriving a default name from
// the IRI's last fragment or path segment.
func NewTypeIRI(iri string) (Type, error) {
	if err := checkAbsolute(iri); err != nil {
		return Type{}, err
	}
	return NewTypeFull(lastSegment(iri), iri)
}

// NewTypeFull returns a Type with an explicit name and IRI.
func NewTypeFull(name, iri string) (Type, error) {
	if err := checkName(name); err != nil {
		return Type{}, err
	}
	if err := checkAbsolute(iri); err != nil {
		return Type{}, err
	}
	return Type{name: name, iri: iri}, nil
}

func lastSegment(iri string) string {
	if i := strings.LastIndexAny(iri, "#/"); i >= 0 && i+1 < len(iri) {
		return iri[i+1:]
	}
	return iri
}

// Name returns the class name.
func (t Type) Name() string { return t.name }

// Description returns the class description.
func (t Type) Description() string { return t.description }

// IRI returns the class IRI.
func (t Type) IRI() string { return t.iri }

// WithName returns a copy of t with a new name.
func (t Type) WithName(name string) (Type, error) {
	if err := checkName(name); err != nil {
		return Type{}, err
	}
	t.name = name
	return t, nil
}

// WithDescription returns a copy of t with a new description.
func (t Type) WithDescription(description string) Type {
	t.description = description
	return t
}

// WithIRI returns a copy of t with a new IRI.
func (t Type) WithIRI(iri string) (Type, error) {
	if err := checkAbsolute(iri); err != nil {
		return Type{}, err
	}
	t.iri = iri
	return t, nil
}

// ConflictsWith reports whether two types disagree on identity: same name
// with different IRIs, or same IRI with different names.
func (t Type) ConflictsWith(o Type) bool {
	return (t.name == o.name) != (t.iri == o.iri)
}

func (t Type) String() string {
	return t.name + "=<" + t.iri + ">"
}
