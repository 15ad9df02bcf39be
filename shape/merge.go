package shape

import (
	"fmt"
	"regexp"

	"github.com/glazegraph/glaze/frame"
	"golang.org/x/text/language"
)

// Extend overlays s onto a more general shape o, keeping s's explicit class
// untouched: local identity always wins, every other facet is reconciled.
func (s Shape) Extend(o Shape) (Shape, error) {
	return s.combine(o, false)
}

// Merge reconciles every facet of s and o, the explicit class included:
// both sides must agree on it or leave it absent on one side.
func (s Shape) Merge(o Shape) (Shape, error) {
	return s.combine(o, true)
}

func (s Shape) combine(o Shape, mergeClass bool) (Shape, error) {
	var r Shape
	var err error

	r.virtual = s.virtual || o.virtual
	r.uniqueLang = s.uniqueLang || o.uniqueLang

	if r.id, err = mergeString("id", s.id, o.id); err != nil {
		return Shape{}, err
	}
	if r.typ, err = mergeString("type", s.typ, o.typ); err != nil {
		return Shape{}, err
	}
	if r.datatype, err = mergeKind(s.datatype, o.datatype); err != nil {
		return Shape{}, err
	}
	if r.pattern, err = mergeString("pattern", s.pattern, o.pattern); err != nil {
		return Shape{}, err
	}
	if r.pattern != "" {
		// both sides carry compiled patterns for their sources
		r.regex = s.regex
		if r.regex == nil {
			r.regex = o.regex
		}
		if r.regex == nil {
			r.regex = regexp.MustCompile(r.pattern)
		}
	}

	if mergeClass {
		if r.clazz, err = mergeClazz(s.clazz, o.clazz); err != nil {
			return Shape{}, err
		}
	} else {
		r.clazz = s.clazz
	}
	r.clazzes = append(append([]Type(nil), s.clazzes...), o.clazzes...)

	if r.minExclusive, err = mergeMin(s.minExclusive, o.minExclusive); err != nil {
		return Shape{}, err
	}
	if r.minInclusive, err = mergeMin(s.minInclusive, o.minInclusive); err != nil {
		return Shape{}, err
	}
	if r.maxExclusive, err = mergeMax(s.maxExclusive, o.maxExclusive); err != nil {
		return Shape{}, err
	}
	if r.maxInclusive, err = mergeMax(s.maxInclusive, o.maxInclusive); err != nil {
		return Shape{}, err
	}

	r.minLength = maxLimit(s.minLength, o.minLength)
	r.maxLength = minLimit(s.maxLength, o.maxLength)
	r.minCount = maxLimit(s.minCount, o.minCount)
	r.maxCount = minLimit(s.maxCount, o.maxCount)

	r.in = append(append([]frame.Value(nil), s.in...), o.in...)
	r.hasValue = append(append([]frame.Value(nil), s.hasValue...), o.hasValue...)
	r.langs = append(append([]language.Tag(nil), s.langs...), o.langs...)
	r.constraints = append(append([]Constraint(nil), s.constraints...), o.constraints...)

	r.properties = mergeProperties(s.properties, o.properties)

	return finish(r)
}

func mergeString(facet, a, b string) (string, error) {
	switch {
	case a == "":
		return b, nil
	case b == "" || a == b:
		return a, nil
	}
	return "", conflict(facet, a, b)
}

func mergeKind(a, b frame.Kind) (frame.Kind, error) {
	switch {
	case a == frame.KindInvalid:
		return b, nil
	case b == frame.KindInvalid || a == b:
		return a, nil
	}
	return frame.KindInvalid, conflict("datatype", a, b)
}

func mergeClazz(a, b *Type) (*Type, error) {
	switch {
	case a == nil:
		return b, nil
	case b == nil || *a == *b:
		return a, nil
	}
	return nil, conflict("class", *a, *b)
}

// mergeMin keeps the more restrictive (larger) lower bound.
func mergeMin(a, b frame.Value) (frame.Value, error) {
	switch {
	case a == nil:
		return b, nil
	case b == nil:
		return a, nil
	}
	c, err := frame.Compare(a, b)
	if err != nil {
		return nil, fmt.Errorf("shape: lower bounds: %w", err)
	}
	if c < 0 {
		return b, nil
	}
	return a, nil
}

// mergeMax keeps the more restrictive (smaller) upper bound.
func mergeMax(a, b frame.Value) (frame.Value, error) {
	switch {
	case a == nil:
		return b, nil
	case b == nil:
		return a, nil
	}
	c, err := frame.Compare(a, b)
	if err != nil {
		return nil, fmt.Errorf("shape: upper bounds: %w", err)
	}
	if c > 0 {
		return b, nil
	}
	return a, nil
}

// maxLimit keeps the larger of two integer minima, zero meaning absent.
func maxLimit(a, b int) int {
	if a == 0 {
		return b
	}
	if b == 0 || a > b {
		return a
	}
	return b
}

// minLimit keeps the smaller of two integer maxima, zero meaning absent.
func minLimit(a, b int) int {
	if a == 0 {
		return b
	}
	if b == 0 || a < b {
		return a
	}
	return b
}

// propKey is a property's identity with its shape generator erased, so that
// two properties differing only in their nested shapes fall into the same
// group.
type propKey struct {
	hidden, foreign, embedded bool
	name, description         string
	forward, reverse          string
}

func keyOf(p Property) propKey {
	return propKey{
		hidden: p.hidden, foreign: p.foreign, embedded: p.embedded,
		name: p.name, description: p.description,
		forward: p.forward, reverse: p.reverse,
	}
}

// mergeProperties groups the union of both property collections by identity.
// Singleton groups pass through unchanged; paired groups get a generator
// that extends one forced shape with the other, deferred until the nested
// shape is actually requested. Forcing eagerly would never terminate on
// mutually recursive shape graphs.
func mergeProperties(a, b []Property) []Property {
	if len(b) == 0 {
		return a
	}
	if len(a) == 0 {
		return b
	}
	var order []propKey
	groups := make(map[propKey][]Property, len(a)+len(b))
	for _, p := range append(append([]Property(nil), a...), b...) {
		k := keyOf(p)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], p)
	}
	out := make([]Property, 0, len(order))
	for _, k := range order {
		g := groups[k]
		if len(g) == 1 {
			out = append(out, g[0])
			continue
		}
		first, second := g[0], g[1]
		merged := first
		merged.gen = newCell(func() (Shape, error) {
			x, err := first.Shape()
			if err != nil {
				return Shape{}, err
			}
			y, err := second.Shape()
			if err != nil {
				return Shape{}, err
			}
			return x.Extend(y)
		})
		out = append(out, merged)
	}
	return out
}
