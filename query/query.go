package query

import (
	"context"
	"fmt"
	"sort"

	"github.com/glazegraph/glaze/frame"
	"github.com/glazegraph/glaze/shape"
)

// Query scopes a shape with per-property filtering criteria and a result
// window.
type Query struct {
	shape    shape.Shape
	criteria map[string]Criterion
	offset   int
	limit    int
}

// NewQuery returns a query over the given shape.
func NewQuery(s shape.Shape) Query {
	return Query{shape: s}
}

// Where returns a copy of q with a criterion attached to the named property
// path. Criteria attached to the same path are merged, so independent
// sources can constrain the same property as long as they do not contradict
// each other.
func (q Query) Where(path string, c Criterion) (Query, error) {
	if prev, ok := q.criteria[path]; ok {
		merged, err := prev.Merge(c)
		if err != nil {
			return Query{}, fmt.Errorf("query: path %q: %w", path, err)
		}
		c = merged
	}
	criteria := make(map[string]Criterion, len(q.criteria)+1)
	for k, v := range q.criteria {
		criteria[k] = v
	}
	criteria[path] = c
	q.criteria = criteria
	return q, nil
}

// Slice returns a copy of q with a result window.
func (q Query) Slice(offset, limit int) (Query, error) {
	if offset < 0 || limit < 0 {
		return Query{}, fmt.Errorf("query: negative slice %d/%d", offset, limit)
	}
	q.offset = offset
	q.limit = limit
	return q, nil
}

// Shape returns the scoped shape.
func (q Query) Shape() shape.Shape { return q.shape }

// Criterion returns the criterion attached to a property path, if any.
func (q Query) Criterion(path string) (Criterion, bool) {
	c, ok := q.criteria[path]
	return c, ok
}

// Paths lists the property paths with attached criteria.
func (q Query) Paths() []string {
	out := make([]string, 0, len(q.criteria))
	for path := range q.criteria {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

// Offset returns the result window offset.
func (q Query) Offset() int { return q.offset }

// Limit returns the result window limit, zero meaning unbounded.
func (q Query) Limit() int { return q.limit }

// Store is the persistence surface the query layer drives. Implementations
// live outside this module and are consumed as black boxes.
type Store interface {
	// Retrieve fetches the description of the identified resource, filtered
	// by the query's shape and criteria.
	Retrieve(ctx context.Context, id frame.IRI, q Query) (frame.Value, error)
	// Create stores the description of a new resource validated against s.
	Create(ctx context.Context, id frame.IRI, s shape.Shape, v frame.Value) error
	// Update replaces the description of an existing resource.
	Update(ctx context.Context, id frame.IRI, s shape.Shape, v frame.Value) error
	// Delete removes the description of an existing resource.
	Delete(ctx context.Context, id frame.IRI, s shape.Shape) error
}
