package core

import "fmt"

// Record represents a typed record from the DATA section of a model file.
// Attributes are positional; their meaning depends on the record type.
type Record struct {
	ID    int
	Type  string
	Attrs List
}

func (r *Record) String() string {
	return fmt.Sprintf("#%d=%s%s", r.ID, r.Type, r.Attrs.String())
}

// Len returns the number of attributes
func (r *Record) Len() int {
	return len(r.Attrs)
}

// Attr retrieves the attribute at the given position.
// Out-of-range positions return Null so callers can chain accessors
// on records from older schema revisions with fewer attributes.
func (r *Record) Attr(index int) Attribute {
	if index < 0 || index >= len(r.Attrs) {
		return Null{}
	}
	return r.Attrs[index]
}

// AttrRef retrieves a reference attribute at the given position
func (r *Record) AttrRef(index int) (Ref, bool) {
	ref, ok := r.Attr(index).(Ref)
	return ref, ok
}

// AttrList retrieves a list attribute at the given position
func (r *Record) AttrList(index int) (List, bool) {
	l, ok := r.Attr(index).(List)
	return l, ok
}

// AttrString retrieves a string attribute at the given position,
// unwrapping typed wrappers
func (r *Record) AttrString(index int) (string, bool) {
	return AsString(r.Attr(index))
}

// AttrFloat retrieves a numeric attribute at the given position,
// unwrapping typed wrappers
func (r *Record) AttrFloat(index int) (float64, bool) {
	return AsFloat(r.Attr(index))
}

// Header holds the parsed HEADER section fields of a model file
type Header struct {
	Description    []string
	Name           string
	Schema         string
	Implementation string
}
