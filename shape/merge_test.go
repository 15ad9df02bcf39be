package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/glazegraph/glaze/frame"
)

func TestMergeEmptyIsIdentity(t *testing.T) {
	s, err := New(
		Datatype(frame.KindIntegral),
		MinInclusive(frame.Integral(0)),
		MaxInclusive(frame.Integral(10)),
		In(frame.Integral(1), frame.Integral(2)),
		MinCount(1),
		Pattern(`\d+`),
	)
	require.NoError(t, err)

	ext, err := s.Extend(Empty())
	require.NoError(t, err)
	assert.True(t, ext.Equal(s))

	mrg, err := s.Merge(Empty())
	require.NoError(t, err)
	assert.True(t, mrg.Equal(s))

	rev, err := Empty().Merge(s)
	require.NoError(t, err)
	assert.True(t, rev.Equal(s))
}

func TestMergeUnionFacetsCommute(t *testing.T) {
	employee := mustType(t, "Employee", "http://example.com/#Employee")
	office := mustType(t, "Office", "http://example.com/#Office")

	a, err := New(
		In(frame.Integral(1), frame.Integral(2)),
		HasValue(frame.String("x")),
		LanguageIn(language.English),
	)
	require.NoError(t, err)
	b, err := New(
		In(frame.Integral(2), frame.Integral(3)),
		HasValue(frame.String("y")),
		LanguageIn(language.French),
	)
	require.NoError(t, err)

	ab, err := a.Merge(b)
	require.NoError(t, err)
	ba, err := b.Merge(a)
	require.NoError(t, err)

	assert.Equal(t, ab.In(), ba.In())
	assert.Len(t, ab.In(), 3)
	assert.Equal(t, ab.HasValue(), ba.HasValue())
	assert.Equal(t, ab.LanguageIn(), ba.LanguageIn())

	// class sets union commutatively as well
	ca, err := New(Classes(employee))
	require.NoError(t, err)
	cb, err := New(Classes(office))
	require.NoError(t, err)
	m1, err := ca.Merge(cb)
	require.NoError(t, err)
	m2, err := cb.Merge(ca)
	require.NoError(t, err)
	assert.Equal(t, m1.Classes(), m2.Classes())
	assert.Len(t, m1.Classes(), 2)
}

func TestExtendKeepsExplicitClass(t *testing.T) {
	x := mustType(t, "Employee", "http://example.com/#Employee")
	y := mustType(t, "Office", "http://example.com/#Office")

	a, err := New(Class(x))
	require.NoError(t, err)
	b, err := New(Class(y))
	require.NoError(t, err)

	ext, err := a.Extend(b)
	require.NoError(t, err)
	got, ok := ext.Class()
	require.True(t, ok)
	assert.Equal(t, x, got, "extend never lets the other side override local identity")
	assert.Len(t, ext.Classes(), 2, "the implicit set still unions")
}

func TestMergeRejectsClassConflict(t *testing.T) {
	x := mustType(t, "Employee", "http://example.com/#Employee")
	y := mustType(t, "Office", "http://example.com/#Office")

	a, err := New(Class(x))
	require.NoError(t, err)
	b, err := New(Class(y))
	require.NoError(t, err)

	_, err = a.Merge(b)
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "class", conflictErr.Facet)

	// agreeing or one-sided explicit classes merge fine
	m, err := a.Merge(a)
	require.NoError(t, err)
	got, ok := m.Class()
	require.True(t, ok)
	assert.Equal(t, x, got)
}

func TestMergeNarrowsRanges(t *testing.T) {
	a, err := New(
		Datatype(frame.KindIntegral),
		MinInclusive(frame.Integral(0)),
		MaxInclusive(frame.Integral(10)),
	)
	require.NoError(t, err)
	b, err := New(
		MinInclusive(frame.Integral(5)),
		MaxInclusive(frame.Integral(20)),
	)
	require.NoError(t, err)

	m, err := a.Merge(b)
	require.NoError(t, err)

	min, _ := m.MinInclusive()
	assert.True(t, frame.Equal(frame.Integral(5), min))
	max, _ := m.MaxInclusive()
	assert.True(t, frame.Equal(frame.Integral(10), max))
	assert.True(t, m.Is(frame.KindIntegral))

	// a per-facet-valid merge can still fail the combined invariants
	c, err := New(MinInclusive(frame.Integral(11)))
	require.NoError(t, err)
	_, err = a.Merge(c)
	var conflictErr *ConflictError
	assert.ErrorAs(t, err, &conflictErr)
}

func TestMergeNarrowsCounts(t *testing.T) {
	a, err := New(MinCount(1), MaxCount(10), MinLength(2))
	require.NoError(t, err)
	b, err := New(MinCount(3), MaxCount(5), MaxLength(8))
	require.NoError(t, err)

	m, err := a.Merge(b)
	require.NoError(t, err)

	min, _ := m.MinCount()
	assert.Equal(t, 3, min)
	max, _ := m.MaxCount()
	assert.Equal(t, 5, max)
	minLen, _ := m.MinLength()
	assert.Equal(t, 2, minLen)
	maxLen, _ := m.MaxLength()
	assert.Equal(t, 8, maxLen)

	// narrowed counts crossing is caught by the final validation
	c, err := New(MaxCount(2))
	require.NoError(t, err)
	d, err := New(MinCount(3))
	require.NoError(t, err)
	_, err = c.Merge(d)
	var conflictErr *ConflictError
	assert.ErrorAs(t, err, &conflictErr)
}

func TestMergeRejectsNominalConflicts(t *testing.T) {
	var conflictErr *ConflictError

	a, err := New(ID("id"))
	require.NoError(t, err)
	b, err := New(ID("identifier"))
	require.NoError(t, err)
	_, err = a.Merge(b)
	assert.ErrorAs(t, err, &conflictErr)

	a, err = New(Datatype(frame.KindString))
	require.NoError(t, err)
	b, err = New(Datatype(frame.KindIRI))
	require.NoError(t, err)
	_, err = a.Merge(b)
	assert.ErrorAs(t, err, &conflictErr)

	a, err = New(Pattern(`\d+`))
	require.NoError(t, err)
	b, err = New(Pattern(`\w+`))
	require.NoError(t, err)
	_, err = a.Merge(b)
	assert.ErrorAs(t, err, &conflictErr)
}

func TestMergeBooleanFacetsUnion(t *testing.T) {
	a, err := New(Virtual())
	require.NoError(t, err)
	b, err := New(UniqueLang())
	require.NoError(t, err)

	m, err := a.Merge(Empty())
	require.NoError(t, err)
	assert.True(t, m.Virtual())

	m, err = Empty().Merge(b)
	require.NoError(t, err)
	assert.True(t, m.UniqueLang())

	// object-ness from one side against text-ness from the other
	_, err = a.Merge(b)
	assert.Error(t, err)
}

func TestMergeNestedProperties(t *testing.T) {
	inner1, err := New(MinInclusive(frame.Integral(0)))
	require.NoError(t, err)
	inner2, err := New(MaxInclusive(frame.Integral(10)))
	require.NoError(t, err)

	a, err := New(Properties(mustProperty(t, "score", ForwardTerm(), Nested(inner1))))
	require.NoError(t, err)
	b, err := New(Properties(mustProperty(t, "score", ForwardTerm(), Nested(inner2))))
	require.NoError(t, err)

	m, err := a.Extend(b)
	require.NoError(t, err)
	require.Len(t, m.Properties(), 1)

	p, ok := m.Property("score")
	require.True(t, ok)
	nested, err := p.Shape()
	require.NoError(t, err)

	min, _ := nested.MinInclusive()
	assert.True(t, frame.Equal(frame.Integral(0), min))
	max, _ := nested.MaxInclusive()
	assert.True(t, frame.Equal(frame.Integral(10), max))
}

func TestMergeDistinctPropertiesPassThrough(t *testing.T) {
	a, err := New(Properties(mustProperty(t, "reports", ForwardTerm())))
	require.NoError(t, err)
	b, err := New(Properties(mustProperty(t, "employer", ReverseTerm())))
	require.NoError(t, err)

	m, err := a.Merge(b)
	require.NoError(t, err)
	assert.Len(t, m.Properties(), 2)

	// the untouched property keeps its original generator
	p, ok := m.Property("reports")
	require.True(t, ok)
	q, _ := a.Property("reports")
	assert.True(t, p.Equal(q))
}

// Mutually recursive shapes: a property whose nested shape refers back to
// the shape that owns it. Merging two of these must terminate, and the
// merged nested shape must carry the union of both constraint sets once it
// is actually forced.
func TestRecursiveMergeDoesNotDiverge(t *testing.T) {
	var shapeA, shapeB Shape

	var err error
	shapeA, err = New(
		MinCount(1),
		Properties(mustProperty(t, "self", ForwardTerm(), NestedFunc(func() (Shape, error) {
			return shapeA, nil
		}))),
	)
	require.NoError(t, err)

	shapeB, err = New(
		MaxCount(5),
		Properties(mustProperty(t, "self", ForwardTerm(), NestedFunc(func() (Shape, error) {
			return shapeB, nil
		}))),
	)
	require.NoError(t, err)

	merged, err := shapeA.Extend(shapeB)
	require.NoError(t, err)

	min, _ := merged.MinCount()
	assert.Equal(t, 1, min)
	max, _ := merged.MaxCount()
	assert.Equal(t, 5, max)

	// forcing one level of the cycle folds both nested constraint sets
	p, ok := merged.Property("self")
	require.True(t, ok)
	nested, err := p.Shape()
	require.NoError(t, err)

	min, _ = nested.MinCount()
	assert.Equal(t, 1, min)
	max, _ = nested.MaxCount()
	assert.Equal(t, 5, max)

	// and the cycle is still walkable one more level down
	p, ok = nested.Property("self")
	require.True(t, ok)
	deeper, err := p.Shape()
	require.NoError(t, err)
	min, _ = deeper.MinCount()
	assert.Equal(t, 1, min)
}

func TestMergeConflictingNestedPropertiesFailsAtForce(t *testing.T) {
	inner1, err := New(Datatype(frame.KindString))
	require.NoError(t, err)
	inner2, err := New(Datatype(frame.KindIRI))
	require.NoError(t, err)

	a, err := New(Properties(mustProperty(t, "tag", ForwardTerm(), Nested(inner1))))
	require.NoError(t, err)
	b, err := New(Properties(mustProperty(t, "tag", ForwardTerm(), Nested(inner2))))
	require.NoError(t, err)

	// the merge itself stays lazy and succeeds
	m, err := a.Extend(b)
	require.NoError(t, err)

	p, ok := m.Property("tag")
	require.True(t, ok)
	_, err = p.Shape()
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
}
