package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glazegraph/glaze/voc"
	"github.com/glazegraph/glaze/voc/rdfs"
)

func TestNewType(t *testing.T) {
	ty, err := NewType("Employee")
	require.NoError(t, err)
	assert.Equal(t, "Employee", ty.Name())
	assert.Equal(t, voc.Base()+"Employee", ty.IRI())
}

func TestNewTypeIRI(t *testing.T) {
	for iri, name := range map[string]string{
		"http://example.com/terms#Employee": "Employee",
		"http://example.com/terms/Office":   "Office",
	} {
		ty, err := NewTypeIRI(iri)
		require.NoError(t, err)
		assert.Equal(t, name, ty.Name())
		assert.Equal(t, iri, ty.IRI())
	}
}

func TestNewTypeVocabularyTerm(t *testing.T) {
	// prefixed names expand against the registered vocabularies
	ty, err := NewType(rdfs.Class)
	require.NoError(t, err)
	assert.Equal(t, rdfs.Class, ty.Name())
	assert.Equal(t, rdfs.NS+"Class", ty.IRI())

	ty, err = NewTypeIRI(rdfs.NS + "Resource")
	require.NoError(t, err)
	assert.Equal(t, "Resource", ty.Name())
	assert.Equal(t, rdfs.Resource, voc.ShortIRI(ty.IRI()))
}

func TestTypeRejectsMalformed(t *testing.T) {
	_, err := NewType("")
	assert.ErrorIs(t, err, ErrBlankName)

	_, err = NewType("   ")
	assert.ErrorIs(t, err, ErrBlankName)

	_, err = NewType("@type")
	assert.ErrorIs(t, err, ErrReservedName)

	_, err = NewTypeIRI("terms#Employee")
	assert.ErrorIs(t, err, ErrRelativeIRI)

	_, err = NewTypeFull("Employee", "/relative")
	assert.ErrorIs(t, err, ErrRelativeIRI)
}

func TestTypeCopyOnWrite(t *testing.T) {
	ty, err := NewTypeFull("Employee", "http://example.com/#Employee")
	require.NoError(t, err)

	renamed, err := ty.WithName("Worker")
	require.NoError(t, err)
	assert.Equal(t, "Worker", renamed.Name())
	assert.Equal(t, "Employee", ty.Name())

	described := ty.WithDescription("a company employee")
	assert.Equal(t, "a company employee", described.Description())
	assert.Equal(t, "", ty.Description())

	_, err = ty.WithIRI("not absolute")
	assert.ErrorIs(t, err, ErrRelativeIRI)
}

func TestTypeConflicts(t *testing.T) {
	a, err := NewTypeFull("Employee", "http://example.com/#Employee")
	require.NoError(t, err)
	b, err := NewTypeFull("Employee", "http://example.com/#Worker")
	require.NoError(t, err)
	c, err := NewTypeFull("Worker", "http://example.com/#Employee")
	require.NoError(t, err)
	d, err := NewTypeFull("Office", "http://example.com/#Office")
	require.NoError(t, err)

	assert.True(t, a.ConflictsWith(b), "same name, different IRI")
	assert.True(t, a.ConflictsWith(c), "same IRI, different name")
	assert.False(t, a.ConflictsWith(a), "identical types")
	assert.False(t, a.ConflictsWith(d), "unrelated types")
}
