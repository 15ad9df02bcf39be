// Package shape models declarative validation constraints over the frame
// value model, in the SHACL tradition.
//
// A Shape is an immutable bag of independent optional facets plus a set of
// named Property edges to nested shapes. Shapes are built through functional
// options, validated for internal consistency at construction, and combined
// with the Extend and Merge operators defined in merge.go.
package shape

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/glazegraph/glaze/frame"
	"golang.org/x/text/language"
)

// Constraint is a custom validation hook attached to a shape. Constraints
// are identified by ID for set union and equality; the forced value check
// runs in the validation layer, outside this package.
type Constraint interface {
	ID() string
	Validate(v frame.Value) error
}

// Shape is an immutable set of validation constraints.
//
// The zero value is the empty shape, which accepts everything.
type Shape struct {
	virtual bool

	id       string
	typ      string
	datatype frame.Kind

	clazz   *Type
	clazzes []Type

	minExclusive frame.Value
	maxExclusive frame.Value
	minInclusive frame.Value
	maxInclusive frame.Value

	minLength int
	maxLength int

	pattern string
	regex   *regexp.Regexp

	in         []frame.Value
	langs      []language.Tag
	uniqueLang bool

	minCount int
	maxCount int

	hasValue    []frame.Value
	constraints []Constraint
	properties  []Property
}

// Option configures a shape under construction.
type Option func(*Shape) error

// Empty returns the empty shape.
func Empty() Shape { return Shape{} }

// New builds a validated shape from the given options.
func New(opts ...Option) (Shape, error) {
	return Shape{}.With(opts...)
}

// With returns a validated copy of s reconfigured by opts.
func (s Shape) With(opts ...Option) (Shape, error) {
	for _, opt := range opts {
		if opt == nil {
			return Shape{}, fmt.Errorf("%w: shape option", ErrNilValue)
		}
		if err := opt(&s); err != nil {
			return Shape{}, err
		}
	}
	return finish(s)
}

// Virtual marks the shape as describing a computed resource.
func Virtual() Option {
	return func(s *Shape) error { s.virtual = true; return nil }
}

// ID names the property carrying resource identifiers.
func ID(name string) Option {
	return func(s *Shape) error {
		if err := checkName(name); err != nil {
			return err
		}
		s.id = name
		return nil
	}
}

// TypeLabel names the property carrying resource types.
func TypeLabel(name string) Option {
	return func(s *Shape) error {
		if err := checkName(name); err != nil {
			return err
		}
		s.typ = name
		return nil
	}
}

// Datatype constrains values to a single scalar kind.
func Datatype(k frame.Kind) Option {
	return func(s *Shape) error {
		if k == frame.KindInvalid {
			return fmt.Errorf("%w: datatype", ErrNilValue)
		}
		s.datatype = k
		return nil
	}
}

// Class sets the explicit class constraint.
func Class(t Type) Option {
	return func(s *Shape) error {
		t := t
		s.clazz = &t
		return nil
	}
}

// Classes sets the implicit class set. The explicit class, if any, is always
// folded in during normalization.
func Classes(ts ...Type) Option {
	return func(s *Shape) error {
		s.clazzes = append([]Type(nil), ts...)
		return nil
	}
}

// MinExclusive constrains values to be strictly greater than v.
func MinExclusive(v frame.Value) Option {
	return boundOpt("minExclusive", v, func(s *Shape, v frame.Value) { s.minExclusive = v })
}

// MaxExclusive constrains values to be strictly less than v.
func MaxExclusive(v frame.Value) Option {
	return boundOpt("maxExclusive", v, func(s *Shape, v frame.Value) { s.maxExclusive = v })
}

// MinInclusive constrains values to be greater than or equal to v.
func MinInclusive(v frame.Value) Option {
	return boundOpt("minInclusive", v, func(s *Shape, v frame.Value) { s.minInclusive = v })
}

// MaxInclusive constrains values to be less than or equal to v.
func MaxInclusive(v frame.Value) Option {
	return boundOpt("maxInclusive", v, func(s *Shape, v frame.Value) { s.maxInclusive = v })
}

func boundOpt(facet string, v frame.Value, set func(*Shape, frame.Value)) Option {
	return func(s *Shape) error {
		if v == nil {
			return fmt.Errorf("%w: %s", ErrNilValue, facet)
		}
		if !frame.Comparable(v) {
			return fmt.Errorf("shape: %s: value %s is not comparable", facet, v)
		}
		set(s, v)
		return nil
	}
}

// MinLength sets the minimum lexical length. Zero collapses to absent.
func MinLength(n int) Option {
	return limitOpt("minLength", n, func(s *Shape, n int) { s.minLength = n })
}

// MaxLength sets the maximum lexical length. Zero collapses to absent.
func MaxLength(n int) Option {
	return limitOpt("maxLength", n, func(s *Shape, n int) { s.maxLength = n })
}

// MinCount sets the minimum cardinality. Zero collapses to absent.
func MinCount(n int) Option {
	return limitOpt("minCount", n, func(s *Shape, n int) { s.minCount = n })
}

// MaxCount sets the maximum cardinality. Zero collapses to absent.
func MaxCount(n int) Option {
	return limitOpt("maxCount", n, func(s *Shape, n int) { s.maxCount = n })
}

// Exactly sets both cardinality bounds to n.
func Exactly(n int) Option {
	return func(s *Shape) error {
		if err := MinCount(n)(s); err != nil {
			return err
		}
		return MaxCount(n)(s)
	}
}

// Required constrains the property to at least one value.
func Required() Option { return MinCount(1) }

// Optional constrains the property to at most one value.
func Optional() Option { return MaxCount(1) }

// Multiple lifts the upper cardinality bound.
func Multiple() Option {
	return func(s *Shape) error {
		s.maxCount = 0
		return nil
	}
}

func limitOpt(facet string, n int, set func(*Shape, int)) Option {
	return func(s *Shape) error {
		if n < 0 {
			return fmt.Errorf("%w: %s %d", ErrNegativeLimit, facet, n)
		}
		set(s, n)
		return nil
	}
}

// Pattern constrains lexical forms to match a regular expression.
func Pattern(expr string) Option {
	return func(s *Shape) error {
		if expr == "" {
			return fmt.Errorf("%w: pattern", ErrBlankName)
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return fmt.Errorf("shape: pattern: %w", err)
		}
		s.pattern = expr
		s.regex = re
		return nil
	}
}

// In enumerates the acceptable values.
func In(vs ...frame.Value) Option {
	return valuesOpt("in", vs, func(s *Shape, vs []frame.Value) { s.in = vs })
}

// HasValue requires all listed values to be present.
func HasValue(vs ...frame.Value) Option {
	return valuesOpt("hasValue", vs, func(s *Shape, vs []frame.Value) { s.hasValue = vs })
}

func valuesOpt(facet string, vs []frame.Value, set func(*Shape, []frame.Value)) Option {
	return func(s *Shape) error {
		for _, v := range vs {
			if v == nil {
				return fmt.Errorf("%w: %s", ErrNilValue, facet)
			}
			if frame.IsArray(v) {
				return fmt.Errorf("%w: %s: %s", ErrArrayValue, facet, v)
			}
		}
		set(s, append([]frame.Value(nil), vs...))
		return nil
	}
}

// LanguageIn enumerates the acceptable language tags.
func LanguageIn(tags ...language.Tag) Option {
	return func(s *Shape) error {
		s.langs = append([]language.Tag(nil), tags...)
		return nil
	}
}

// UniqueLang requires at most one value per language tag.
func UniqueLang() Option {
	return func(s *Shape) error { s.uniqueLang = true; return nil }
}

// Constraints attaches custom validators.
func Constraints(cs ...Constraint) Option {
	return func(s *Shape) error {
		for _, c := range cs {
			if c == nil {
				return fmt.Errorf("%w: constraint", ErrNilValue)
			}
		}
		s.constraints = append(append([]Constraint(nil), s.constraints...), cs...)
		return nil
	}
}

// Properties adds property edges to the shape.
func Properties(ps ...Property) Option {
	return func(s *Shape) error {
		for _, p := range ps {
			if p.gen == nil {
				return fmt.Errorf("%w: property", ErrNilValue)
			}
		}
		s.properties = append(append([]Property(nil), s.properties...), ps...)
		return nil
	}
}

// finish normalizes set facets and re-runs every construction invariant.
func finish(s Shape) (Shape, error) {
	s.in = normValues(s.in)
	s.hasValue = normValues(s.hasValue)
	s.langs = normTags(s.langs)
	s.clazzes = normTypes(s.clazz, s.clazzes)
	s.constraints = normConstraints(s.constraints)
	s.properties = normProperties(s.properties)

	if err := s.validate(); err != nil {
		return Shape{}, err
	}
	return s, nil
}

func normValues(vs []frame.Value) []frame.Value {
	if len(vs) == 0 {
		return nil
	}
	out := append([]frame.Value(nil), vs...)
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return dedupValues(out)
}

func dedupValues(vs []frame.Value) []frame.Value {
	out := vs[:1]
	for _, v := range vs[1:] {
		if !frame.Equal(v, out[len(out)-1]) {
			out = append(out, v)
		}
	}
	return out
}

func normTags(tags []language.Tag) []language.Tag {
	if len(tags) == 0 {
		return nil
	}
	out := append([]language.Tag(nil), tags...)
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	dst := out[:1]
	for _, t := range out[1:] {
		if t != dst[len(dst)-1] {
			dst = append(dst, t)
		}
	}
	return dst
}

func normTypes(explicit *Type, ts []Type) []Type {
	if explicit == nil && len(ts) == 0 {
		return nil
	}
	out := append([]Type(nil), ts...)
	if explicit != nil {
		out = append(out, *explicit)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].iri != out[j].iri {
			return out[i].iri < out[j].iri
		}
		return out[i].name < out[j].name
	})
	dst := out[:1]
	for _, t := range out[1:] {
		if t != dst[len(dst)-1] {
			dst = append(dst, t)
		}
	}
	return dst
}

func normConstraints(cs []Constraint) []Constraint {
	if len(cs) == 0 {
		return nil
	}
	out := append([]Constraint(nil), cs...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	dst := out[:1]
	for _, c := range out[1:] {
		if c.ID() != dst[len(dst)-1].ID() {
			dst = append(dst, c)
		}
	}
	return dst
}

func normProperties(ps []Property) []Property {
	if len(ps) == 0 {
		return nil
	}
	out := append([]Property(nil), ps...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func (s *Shape) validate() error {
	if s.datatype == frame.KindArray {
		return fmt.Errorf("shape: array datatype")
	}

	object := s.virtual || s.id != "" || s.typ != "" ||
		s.datatype == frame.KindObject ||
		s.clazz != nil || len(s.clazzes) > 0 || len(s.constraints) > 0
	for _, p := range s.properties {
		if p.forward != "" {
			object = true
			break
		}
	}
	text := s.uniqueLang || len(s.langs) > 0

	if object && text {
		return conflict("datatype", frame.KindObject, frame.KindText)
	}
	if object {
		if s.datatype != frame.KindInvalid && s.datatype != frame.KindObject {
			return conflict("datatype", frame.KindObject, s.datatype)
		}
		s.datatype = frame.KindObject
	}
	if text {
		if s.datatype != frame.KindInvalid && s.datatype != frame.KindText {
			return conflict("datatype", frame.KindText, s.datatype)
		}
		s.datatype = frame.KindText
	}

	if s.minInclusive != nil && s.minExclusive != nil {
		return conflict("min bounds", s.minInclusive, s.minExclusive)
	}
	if s.maxInclusive != nil && s.maxExclusive != nil {
		return conflict("max bounds", s.maxInclusive, s.maxExclusive)
	}
	if err := checkRange(s.minInclusive, s.maxInclusive, false); err != nil {
		return err
	}
	if err := checkRange(s.minInclusive, s.maxExclusive, true); err != nil {
		return err
	}
	if err := checkRange(s.minExclusive, s.maxInclusive, true); err != nil {
		return err
	}
	if err := checkRange(s.minExclusive, s.maxExclusive, true); err != nil {
		return err
	}

	if s.minLength > 0 && s.maxLength > 0 && s.minLength > s.maxLength {
		return conflict("length bounds", s.minLength, s.maxLength)
	}
	if s.minCount > 0 && s.maxCount > 0 && s.minCount > s.maxCount {
		return conflict("count bounds", s.minCount, s.maxCount)
	}

	for i, a := range s.clazzes {
		for _, b := range s.clazzes[i+1:] {
			if a.ConflictsWith(b) {
				return conflict("classes", a, b)
			}
		}
	}

	for i, a := range s.properties {
		if a.forward == "" && a.reverse == "" {
			return fmt.Errorf("shape: property %q has no predicate", a.name)
		}
		for _, b := range s.properties[i+1:] {
			if a.name == b.name {
				return conflict("property name", a.name, b.name)
			}
			if a.forward != "" && a.forward == b.forward {
				return conflict("forward predicate", a.name, b.name)
			}
			if a.reverse != "" && a.reverse == b.reverse {
				return conflict("reverse predicate", a.name, b.name)
			}
		}
	}

	return nil
}

// checkRange rejects lower/upper bound pairs that leave no acceptable value.
// Equality is tolerated only between two inclusive bounds.
func checkRange(lo, hi frame.Value, strict bool) error {
	if lo == nil || hi == nil {
		return nil
	}
	c, err := frame.Compare(lo, hi)
	if err != nil {
		return fmt.Errorf("shape: range bounds: %w", err)
	}
	if c > 0 || (strict && c == 0) {
		return conflict("range bounds", lo, hi)
	}
	return nil
}

// Virtual reports the virtual flag.
func (s Shape) Virtual() bool { return s.virtual }

// ID returns the identifier property name, if any.
func (s Shape) ID() (string, bool) { return s.id, s.id != "" }

// TypeLabel returns the type property name, if any.
func (s Shape) TypeLabel() (string, bool) { return s.typ, s.typ != "" }

// Datatype returns the datatype constraint, if any.
func (s Shape) Datatype() (frame.Kind, bool) {
	return s.datatype, s.datatype != frame.KindInvalid
}

// Class returns the explicit class constraint, if any.
func (s Shape) Class() (Type, bool) {
	if s.clazz == nil {
		return Type{}, false
	}
	return *s.clazz, true
}

// Classes returns the implicit class set, explicit class included.
func (s Shape) Classes() []Type { return s.clazzes }

// MinExclusive returns the strict lower bound, if any.
func (s Shape) MinExclusive() (frame.Value, bool) {
	return s.minExclusive, s.minExclusive != nil
}

// MaxExclusive returns the strict upper bound, if any.
func (s Shape) MaxExclusive() (frame.Value, bool) {
	return s.maxExclusive, s.maxExclusive != nil
}

// MinInclusive returns the lower bound, if any.
func (s Shape) MinInclusive() (frame.Value, bool) {
	return s.minInclusive, s.minInclusive != nil
}

// MaxInclusive returns the upper bound, if any.
func (s Shape) MaxInclusive() (frame.Value, bool) {
	return s.maxInclusive, s.maxInclusive != nil
}

// MinLength returns the minimum lexical length, if any.
func (s Shape) MinLength() (int, bool) { return s.minLength, s.minLength > 0 }

// MaxLength returns the maximum lexical length, if any.
func (s Shape) MaxLength() (int, bool) { return s.maxLength, s.maxLength > 0 }

// Pattern returns the pattern source, if any.
func (s Shape) Pattern() (string, bool) { return s.pattern, s.pattern != "" }

// In returns the value enumeration, if any.
func (s Shape) In() []frame.Value { return s.in }

// LanguageIn returns the language tag enumeration, if any.
func (s Shape) LanguageIn() []language.Tag { return s.langs }

// UniqueLang reports the unique-language flag.
func (s Shape) UniqueLang() bool { return s.uniqueLang }

// MinCount returns the minimum cardinality, if any.
func (s Shape) MinCount() (int, bool) { return s.minCount, s.minCount > 0 }

// MaxCount returns the maximum cardinality, if any.
func (s Shape) MaxCount() (int, bool) { return s.maxCount, s.maxCount > 0 }

// HasValue returns the required values, if any.
func (s Shape) HasValue() []frame.Value { return s.hasValue }

// Constraints returns the custom validators, if any.
func (s Shape) Constraints() []Constraint { return s.constraints }

// Properties returns the property edges, sorted by name.
func (s Shape) Properties() []Property { return s.properties }

// Property looks up a property edge by name.
func (s Shape) Property(name string) (Property, bool) {
	for _, p := range s.properties {
		if p.name == name {
			return p, true
		}
	}
	return Property{}, false
}

// Is reports whether the shape constrains values to the given kind.
func (s Shape) Is(k frame.Kind) bool { return s.datatype == k }

// IsMultiple reports whether the shape denotes a to-many relationship.
func (s Shape) IsMultiple() bool { return s.maxCount != 1 }

// Matches reports whether a lexical form satisfies the pattern facet.
func (s Shape) Matches(text string) bool {
	return s.regex == nil || s.regex.MatchString(text)
}

// Equal reports structural equality of two shapes. Nested property shapes
// compare by generator identity, so recursively regenerated shapes stay
// equal before their generators are forced.
func (s Shape) Equal(o Shape) bool {
	if s.virtual != o.virtual || s.id != o.id || s.typ != o.typ ||
		s.datatype != o.datatype || s.uniqueLang != o.uniqueLang ||
		s.minLength != o.minLength || s.maxLength != o.maxLength ||
		s.minCount != o.minCount || s.maxCount != o.maxCount ||
		s.pattern != o.pattern {
		return false
	}
	if (s.clazz == nil) != (o.clazz == nil) || (s.clazz != nil && *s.clazz != *o.clazz) {
		return false
	}
	if !frame.Equal(s.minExclusive, o.minExclusive) ||
		!frame.Equal(s.maxExclusive, o.maxExclusive) ||
		!frame.Equal(s.minInclusive, o.minInclusive) ||
		!frame.Equal(s.maxInclusive, o.maxInclusive) {
		return false
	}
	if !equalValues(s.in, o.in) || !equalValues(s.hasValue, o.hasValue) {
		return false
	}
	if len(s.langs) != len(o.langs) {
		return false
	}
	for i := range s.langs {
		if s.langs[i] != o.langs[i] {
			return false
		}
	}
	if len(s.clazzes) != len(o.clazzes) {
		return false
	}
	for i := range s.clazzes {
		if s.clazzes[i] != o.clazzes[i] {
			return false
		}
	}
	if len(s.constraints) != len(o.constraints) {
		return false
	}
	for i := range s.constraints {
		if s.constraints[i].ID() != o.constraints[i].ID() {
			return false
		}
	}
	if len(s.properties) != len(o.properties) {
		return false
	}
	for i := range s.properties {
		if !s.properties[i].Equal(o.properties[i]) {
			return false
		}
	}
	return true
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
