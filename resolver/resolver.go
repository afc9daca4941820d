package resolver

import (
	"github.com/quantolabs/quanto/core"
)

// Source provides record lookup by id. *reader.Reader satisfies it; tests
// use small local fakes.
type Source interface {
	Record(id int) (*core.Record, bool)
}

// Resolver dereferences record references. It tolerates dangling references
// (lookups report false instead of failing) and guards graph walks against
// reference cycles.
type Resolver struct {
	src      Source
	maxDepth int
}

// Option configures the resolver.
type Option func(*Resolver)

// WithMaxDepth sets the maximum walk depth (default: 100).
func WithMaxDepth(depth int) Option {
	return func(r *Resolver) {
		r.maxDepth = depth
	}
}

// New creates a resolver over the given record source.
func New(src Source, opts ...Option) *Resolver {
	r := &Resolver{
		src:      src,
		maxDepth: 100,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Deref unwraps typed wrappers on the attribute and, if a reference remains,
// follows it to its record. Non-reference attributes and dangling references
// report false.
func (r *Resolver) Deref(a core.Attribute) (*core.Record, bool) {
	ref, ok := core.Unwrap(a).(core.Ref)
	if !ok {
		return nil, false
	}
	return r.src.Record(ref.ID)
}

// DerefAll resolves every reference in a list. Non-reference elements and
// dangling references are skipped; the result preserves list order.
func (r *Resolver) DerefAll(list core.List) []*core.Record {
	var records []*core.Record
	for _, a := range list {
		if rec, ok := r.Deref(a); ok {
			records = append(records, rec)
		}
	}
	return records
}

// Follow dereferences the attribute at the given position of rec.
func (r *Resolver) Follow(rec *core.Record, index int) (*core.Record, bool) {
	if rec == nil {
		return nil, false
	}
	return r.Deref(rec.Attr(index))
}

// Visit walks the reference graph depth-first starting at rec, calling fn
// for each distinct reachable record (including rec itself). When fn returns
// false the walk does not descend into that record's references. Cycles are
// broken by a visited set; depth is capped at the configured maximum.
func (r *Resolver) Visit(rec *core.Record, fn func(*core.Record) bool) {
	if rec == nil {
		return
	}
	visited := make(map[int]bool)
	r.visit(rec, fn, visited, 0)
}

func (r *Resolver) visit(rec *core.Record, fn func(*core.Record) bool, visited map[int]bool, depth int) {
	if depth >= r.maxDepth || visited[rec.ID] {
		return
	}
	visited[rec.ID] = true

	if !fn(rec) {
		return
	}

	for _, a := range rec.Attrs {
		r.visitAttr(a, fn, visited, depth)
	}
}

func (r *Resolver) visitAttr(a core.Attribute, fn func(*core.Record) bool, visited map[int]bool, depth int) {
	switch v := core.Unwrap(a).(type) {
	case core.Ref:
		if next, ok := r.src.Record(v.ID); ok {
			r.visit(next, fn, visited, depth+1)
		}
	case core.List:
		for _, elem := range v {
			r.visitAttr(elem, fn, visited, depth)
		}
	}
}
