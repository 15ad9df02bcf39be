// Package query implements the filter/order criterion algebra applied to
// shape-scoped result sets.
//
// A Criterion is the query-side counterpart of a shape: an immutable bag of
// ordering, range and membership facets, validated for consistency at
// construction and combined by intersection. Unlike shape merging, which
// unions enumerations, criteria narrow: two merged criteria accept only
// what both accepted.
package query

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/glazegraph/glaze/frame"
)

var (
	// ErrNilValue reports a required argument that was absent.
	ErrNilValue = errors.New("query: nil value")
	// ErrBlankLike reports an empty or whitespace-only like pattern.
	ErrBlankLike = errors.New("query: blank like pattern")
	// ErrArrayValue reports an array value where a scalar is required.
	ErrArrayValue = errors.New("query: array value")
)

// ConflictError reports two criterion facets that cannot be reconciled.
type ConflictError struct {
	Facet string
	X, Y  interface{}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("query: conflicting %s: %v / %v", e.Facet, e.X, e.Y)
}

func conflict(facet string, x, y interface{}) error {
	return &ConflictError{Facet: facet, X: x, Y: y}
}

// Criterion is an immutable set of filter and ordering constraints.
//
// The zero value is the empty criterion, which accepts everything.
type Criterion struct {
	order    int
	hasOrder bool

	focus []frame.Value

	lt  frame.Value
	gt  frame.Value
	lte frame.Value
	gte frame.Value

	like string

	// any distinguishes absent from present-but-empty: an empty any set is
	// a valid, always-false constraint.
	any    []frame.Value
	hasAny bool
}

// Option configures a criterion under construction.
type Option func(*Criterion) error

// New builds a validated criterion from the given options.
func New(opts ...Option) (Criterion, error) {
	return Criterion{}.With(opts...)
}

// With returns a validated copy of c reconfigured by opts.
func (c Criterion) With(opts ...Option) (Criterion, error) {
	for _, opt := range opts {
		if opt == nil {
			return Criterion{}, fmt.Errorf("%w: criterion option", ErrNilValue)
		}
		if err := opt(&c); err != nil {
			return Criterion{}, err
		}
	}
	return finish(c)
}

// Order assigns a sorting priority; negative values sort descending.
func Order(priority int) Option {
	return func(c *Criterion) error {
		c.order = priority
		c.hasOrder = true
		return nil
	}
}

// Focus promotes matching values to the head of the result set.
func Focus(vs ...frame.Value) Option {
	return func(c *Criterion) error {
		out, err := scalars("focus", vs)
		if err != nil {
			return err
		}
		c.focus = out
		return nil
	}
}

// Lt constrains values to be strictly less than v.
func Lt(v frame.Value) Option {
	return boundOpt("lt", v, func(c *Criterion, v frame.Value) { c.lt = v })
}

// Gt constrains values to be strictly greater than v.
func Gt(v frame.Value) Option {
	return boundOpt("gt", v, func(c *Criterion, v frame.Value) { c.gt = v })
}

// Lte constrains values to be less than or equal to v.
func Lte(v frame.Value) Option {
	return boundOpt("lte", v, func(c *Criterion, v frame.Value) { c.lte = v })
}

// Gte constrains values to be greater than or equal to v.
func Gte(v frame.Value) Option {
	return boundOpt("gte", v, func(c *Criterion, v frame.Value) { c.gte = v })
}

func boundOpt(facet string, v frame.Value, set func(*Criterion, frame.Value)) Option {
	return func(c *Criterion) error {
		if v == nil {
			return fmt.Errorf("%w: %s", ErrNilValue, facet)
		}
		if !frame.Comparable(v) {
			return fmt.Errorf("query: %s: value %s is not comparable", facet, v)
		}
		set(c, v)
		return nil
	}
}

// Like constrains lexical forms to a keyword search pattern.
func Like(keywords string) Option {
	return func(c *Criterion) error {
		if strings.TrimSpace(keywords) == "" {
			return fmt.Errorf("%w: %q", ErrBlankLike, keywords)
		}
		c.like = keywords
		return nil
	}
}

// Any constrains values to an enumeration. An empty enumeration is a valid,
// always-false constraint; every other set facet treats empty as absent.
func Any(vs ...frame.Value) Option {
	return func(c *Criterion) error {
		out, err := scalars("any", vs)
		if err != nil {
			return err
		}
		if out == nil {
			out = []frame.Value{}
		}
		c.any = out
		c.hasAny = true
		return nil
	}
}

func scalars(facet string, vs []frame.Value) ([]frame.Value, error) {
	if len(vs) == 0 {
		return nil, nil
	}
	for _, v := range vs {
		if v == nil {
			return nil, fmt.Errorf("%w: %s", ErrNilValue, facet)
		}
		if frame.IsArray(v) {
			return nil, fmt.Errorf("%w: %s: %s", ErrArrayValue, facet, v)
		}
	}
	return append([]frame.Value(nil), vs...), nil
}

func finish(c Criterion) (Criterion, error) {
	c.focus = normValues(c.focus)
	if c.hasAny {
		c.any = normValues(c.any)
		if c.any == nil {
			c.any = []frame.Value{}
		}
	}
	if err := c.validate(); err != nil {
		return Criterion{}, err
	}
	return c, nil
}

func normValues(vs []frame.Value) []frame.Value {
	if len(vs) == 0 {
		return nil
	}
	out := append([]frame.Value(nil), vs...)
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	dst := out[:1]
	for _, v := range out[1:] {
		if !frame.Equal(v, dst[len(dst)-1]) {
			dst = append(dst, v)
		}
	}
	return dst
}

func (c *Criterion) validate() error {
	if c.lt != nil && c.lte != nil {
		return conflict("upper bounds", c.lt, c.lte)
	}
	if c.gt != nil && c.gte != nil {
		return conflict("lower bounds", c.gt, c.gte)
	}
	if err := checkRange(c.gt, c.lt, true); err != nil {
		return err
	}
	if err := checkRange(c.gt, c.lte, true); err != nil {
		return err
	}
	if err := checkRange(c.gte, c.lt, true); err != nil {
		return err
	}
	if err := checkRange(c.gte, c.lte, false); err != nil {
		return err
	}
	return nil
}

// checkRange rejects lower/upper bound pairs that leave no acceptable value.
// Equality is tolerated only between the two inclusive bounds.
func checkRange(lo, hi frame.Value, strict bool) error {
	if lo == nil || hi == nil {
		return nil
	}
	cmp, err := frame.Compare(lo, hi)
	if err != nil {
		return fmt.Errorf("query: range bounds: %w", err)
	}
	if cmp > 0 || (strict && cmp == 0) {
		return conflict("range bounds", lo, hi)
	}
	return nil
}

// Merge intersects two criteria into the most restrictive combination of
// both. Ordering and keyword facets must agree or be absent on one side;
// range bounds narrow; enumerations must refine one another.
func (c Criterion) Merge(o Criterion) (Criterion, error) {
	var r Criterion
	var err error

	switch {
	case !c.hasOrder:
		r.order, r.hasOrder = o.order, o.hasOrder
	case !o.hasOrder || c.order == o.order:
		r.order, r.hasOrder = c.order, true
	default:
		return Criterion{}, conflict("order", c.order, o.order)
	}

	switch {
	case c.like == "":
		r.like = o.like
	case o.like == "" || c.like == o.like:
		r.like = c.like
	default:
		return Criterion{}, conflict("like", c.like, o.like)
	}

	// focus values accumulate, they don't narrow
	r.focus = append(append([]frame.Value(nil), c.focus...), o.focus...)

	if r.lt, err = mergeUpper(c.lt, o.lt); err != nil {
		return Criterion{}, err
	}
	if r.lte, err = mergeUpper(c.lte, o.lte); err != nil {
		return Criterion{}, err
	}
	if r.gt, err = mergeLower(c.gt, o.gt); err != nil {
		return Criterion{}, err
	}
	if r.gte, err = mergeLower(c.gte, o.gte); err != nil {
		return Criterion{}, err
	}

	if r.any, r.hasAny, err = mergeAny(c, o); err != nil {
		return Criterion{}, err
	}

	return finish(r)
}

func mergeUpper(a, b frame.Value) (frame.Value, error) {
	switch {
	case a == nil:
		return b, nil
	case b == nil:
		return a, nil
	}
	cmp, err := frame.Compare(a, b)
	if err != nil {
		return nil, fmt.Errorf("query: upper bounds: %w", err)
	}
	if cmp > 0 {
		return b, nil
	}
	return a, nil
}

func mergeLower(a, b frame.Value) (frame.Value, error) {
	switch {
	case a == nil:
		return b, nil
	case b == nil:
		return a, nil
	}
	cmp, err := frame.Compare(a, b)
	if err != nil {
		return nil, fmt.Errorf("query: lower bounds: %w", err)
	}
	if cmp < 0 {
		return b, nil
	}
	return a, nil
}

// mergeAny keeps whichever enumeration is a subset of the other: either both
// criteria agree, or one refines the other. Overlapping but unordered sets
// are a conflict, deliberately stricter than a plain intersection.
func mergeAny(c, o Criterion) ([]frame.Value, bool, error) {
	switch {
	case !c.hasAny:
		return o.any, o.hasAny, nil
	case !o.hasAny:
		return c.any, true, nil
	case subset(c.any, o.any):
		return c.any, true, nil
	case subset(o.any, c.any):
		return o.any, true, nil
	}
	return nil, false, conflict("any", frame.Array(c.any), frame.Array(o.any))
}

func subset(a, b []frame.Value) bool {
	for _, v := range a {
		if !contains(b, v) {
			return false
		}
	}
	return true
}

func contains(vs []frame.Value, v frame.Value) bool {
	for _, w := range vs {
		if frame.Equal(w, v) {
			return true
		}
	}
	return false
}

// Order returns the sorting priority, if any.
func (c Criterion) Order() (int, bool) { return c.order, c.hasOrder }

// Focus returns the focus values, if any.
func (c Criterion) Focus() []frame.Value { return c.focus }

// Lt returns the strict upper bound, if any.
func (c Criterion) Lt() (frame.Value, bool) { return c.lt, c.lt != nil }

// Gt returns the strict lower bound, if any.
func (c Criterion) Gt() (frame.Value, bool) { return c.gt, c.gt != nil }

// Lte returns the upper bound, if any.
func (c Criterion) Lte() (frame.Value, bool) { return c.lte, c.lte != nil }

// Gte returns the lower bound, if any.
func (c Criterion) Gte() (frame.Value, bool) { return c.gte, c.gte != nil }

// Like returns the keyword pattern, if any.
func (c Criterion) Like() (string, bool) { return c.like, c.like != "" }

// Any returns the enumeration and whether it is present; a present empty
// enumeration accepts nothing.
func (c Criterion) Any() ([]frame.Value, bool) { return c.any, c.hasAny }

// IsEmpty reports whether the criterion constrains anything at all.
func (c Criterion) IsEmpty() bool {
	return !c.hasOrder && c.focus == nil &&
		c.lt == nil && c.gt == nil && c.lte == nil && c.gte == nil &&
		c.like == "" && !c.hasAny
}

// Equal reports structural equality of two criteria.
func (c Criterion) Equal(o Criterion) bool {
	if c.hasOrder != o.hasOrder || (c.hasOrder && c.order != o.order) {
		return false
	}
	if c.like != o.like || c.hasAny != o.hasAny {
		return false
	}
	if !frame.Equal(c.lt, o.lt) || !frame.Equal(c.gt, o.gt) ||
		!frame.Equal(c.lte, o.lte) || !frame.Equal(c.gte, o.gte) {
		return false
	}
	return equalValues(c.focus, o.focus) && equalValues(c.any, o.any)
}

func equalValues(a, b []frame.Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !frame.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
