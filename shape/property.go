package shape

import (
	"fmt"
	"sync"

	"github.com/glazegraph/glaze/frame"
	"github.com/glazegraph/glaze/voc"
)

// ShapeFunc produces a nested shape on demand. Generators may legitimately
// fail when they fold together conflicting shapes; the error surfaces from
// Property.Shape at force time.
type ShapeFunc func() (Shape, error)

// cell memoizes a ShapeFunc. The generator runs at most once; properties
// deriving from one another share the same cell, and property equality is
// cell identity, never the forced result.
type cell struct {
	fn   ShapeFunc
	once sync.Once
	s    Shape
	err  error
}

func newCell(fn ShapeFunc) *cell { return &cell{fn: fn} }

func constCell(s Shape) *cell {
	return newCell(func() (Shape, error) { return s, nil })
}

func (c *cell) force() (Shape, error) {
	c.once.Do(func() { c.s, c.err = c.fn() })
	return c.s, c.err
}

// emptyCell is the canonical generator of the empty shape.
var emptyCell = constCell(Shape{})

// Property is a named, directional edge from an owning shape to a nested one.
type Property struct {
	hidden   bool
	foreign  bool
	embedded bool

	name        string
	description string

	forward string
	reverse string

	gen *cell
}

// PropertyOption configures a property under construction.
type PropertyOption func(*Property) error

// NewProperty returns a property named name with an empty nested shape.
func NewProperty(name string, opts ...PropertyOption) (Property, error) {
	p := Property{name: name, gen: emptyCell}
	if err := checkName(name); err != nil {
		return Property{}, err
	}
	return p.With(opts...)
}

// With returns a copy of p reconfigured by opts. The nested shape generator
// is shared unless an option replaces it.
func (p Property) With(opts ...PropertyOption) (Property, error) {
	for _, opt := range opts {
		if opt == nil {
			return Property{}, fmt.Errorf("%w: property option", ErrNilValue)
		}
		if err := opt(&p); err != nil {
			return Property{}, err
		}
	}
	if p.foreign && p.embedded {
		return Property{}, conflict("property flags", "foreign", "embedded")
	}
	return p, nil
}

// Hidden marks the property as excluded from default retrieval.
func Hidden() PropertyOption {
	return func(p *Property) error { p.hidden = true; return nil }
}

// Foreign marks the property as stored outside the owning resource.
func Foreign() PropertyOption {
	return func(p *Property) error { p.foreign = true; return nil }
}

// Embedded marks the nested shape as an inline object.
func Embedded() PropertyOption {
	return func(p *Property) error { p.embedded = true; return nil }
}

// Description sets the property description.
func Description(description string) PropertyOption {
	return func(p *Property) error { p.description = description; return nil }
}

// Rename sets a new property name.
func Rename(name string) PropertyOption {
	return func(p *Property) error {
		if err := checkName(name); err != nil {
			return err
		}
		p.name = name
		return nil
	}
}

// Forward sets the forward predicate IRI explicitly.
func Forward(iri string) PropertyOption {
	return func(p *Property) error {
		if err := checkAbsolute(iri); err != nil {
			return err
		}
		p.forward = iri
		return nil
	}
}

// Reverse sets the reverse predicate IRI explicitly.
func Reverse(iri string) PropertyOption {
	return func(p *Property) error {
		if err := checkAbsolute(iri); err != nil {
			return err
		}
		p.reverse = iri
		return nil
	}
}

// ForwardTerm derives the forward predicate from the property name by term
// expansion against the vocabulary base.
func ForwardTerm() PropertyOption {
	return func(p *Property) error {
		p.forward = voc.Expand(p.name)
		return nil
	}
}

// ReverseTerm derives the reverse predicate from the property name by term
// expansion against the vocabulary base.
func ReverseTerm() PropertyOption {
	return func(p *Property) error {
		p.reverse = voc.Expand(p.name)
		return nil
	}
}

// Nested sets the nested shape to a fixed value.
func Nested(s Shape) PropertyOption {
	return func(p *Property) error {
		p.gen = constCell(s)
		return nil
	}
}

// NestedFunc sets the nested shape generator. The generator is deferred and
// memoized, which is what makes mutually recursive shape graphs finite.
func NestedFunc(fn ShapeFunc) PropertyOption {
	return func(p *Property) error {
		if fn == nil {
			return fmt.Errorf("%w: shape generator", ErrNilValue)
		}
		p.gen = newCell(fn)
		return nil
	}
}

// Name returns the property name.
func (p Property) Name() string { return p.name }

// Description returns the property description.
func (p Property) Description() string { return p.description }

// Hidden reports the hidden flag.
func (p Property) Hidden() bool { return p.hidden }

// Foreign reports the foreign flag.
func (p Property) Foreign() bool { return p.foreign }

// Embedded reports the embedded flag.
func (p Property) Embedded() bool { return p.embedded }

// ForwardIRI returns the forward predicate, if any.
func (p Property) ForwardIRI() (string, bool) { return p.forward, p.forward != "" }

// ReverseIRI returns the reverse predicate, if any.
func (p Property) ReverseIRI() (string, bool) { return p.reverse, p.reverse != "" }

// Shape forces the nested shape generator, caching the result on first use.
// Embedded properties see the forced shape with its datatype pinned to
// Object; the overlay is a transformation of the result, the underlying
// generator is untouched.
func (p Property) Shape() (Shape, error) {
	s, err := p.gen.force()
	if err != nil {
		return Shape{}, fmt.Errorf("property %q: %w", p.name, err)
	}
	if p.embedded {
		return s.With(Datatype(frame.KindObject))
	}
	return s, nil
}

// Equal reports structural equality. Nested shapes compare by generator
// identity: two properties sharing the same unforced generator are equal
// regardless of cached state.
func (p Property) Equal(o Property) bool {
	return p.hidden == o.hidden &&
		p.foreign == o.foreign &&
		p.embedded == o.embedded &&
		p.name == o.name &&
		p.description == o.description &&
		p.forward == o.forward &&
		p.reverse == o.reverse &&
		p.gen == o.gen
}

func (p Property) String() string {
	return p.name
}
