package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Attribute represents a single STEP record attribute value
type Attribute interface {
	Type() AttrType
	String() string
}

// AttrType represents the type of attribute value
type AttrType int

const (
	AttrNull AttrType = iota
	AttrOmitted
	AttrBool
	AttrInt
	AttrReal
	AttrString
	AttrEnum
	AttrRef
	AttrList
	AttrTyped
)

// String returns the string representation of the attribute type
func (t AttrType) String() string {
	switch t {
	case AttrNull:
		return "Null"
	case AttrOmitted:
		return "Omitted"
	case AttrBool:
		return "Bool"
	case AttrInt:
		return "Int"
	case AttrReal:
		return "Real"
	case AttrString:
		return "String"
	case AttrEnum:
		return "Enum"
	case AttrRef:
		return "Ref"
	case AttrList:
		return "List"
	case AttrTyped:
		return "Typed"
	default:
		return "Unknown"
	}
}

// Null represents an unset attribute ($)
type Null struct{}

func (n Null) Type() AttrType { return AttrNull }
func (n Null) String() string { return "$" }

// Omitted represents a derived attribute placeholder (*)
type Omitted struct{}

func (o Omitted) Type() AttrType { return AttrOmitted }
func (o Omitted) String() string { return "*" }

// Bool represents a STEP boolean (.T. / .F.)
type Bool bool

func (b Bool) Type() AttrType { return AttrBool }
func (b Bool) String() string {
	if b {
		return ".T."
	}
	return ".F."
}

// Int represents a STEP integer
type Int int64

func (i Int) Type() AttrType { return AttrInt }
func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

// Real represents a STEP real number
type Real float64

func (r Real) Type() AttrType { return AttrReal }
func (r Real) String() string { return strconv.FormatFloat(float64(r), 'f', -1, 64) }

// String represents a STEP string
type String string

func (s String) Type() AttrType { return AttrString }
func (s String) String() string { return "'" + string(s) + "'" }

// Enum represents a STEP enumeration value (.ELEMENT., .AREA., ...)
type Enum string

func (e Enum) Type() AttrType { return AttrEnum }
func (e Enum) String() string { return "." + string(e) + "." }

// Ref represents a reference to another record (#n)
type Ref struct {
	ID int
}

func (r Ref) Type() AttrType { return AttrRef }
func (r Ref) String() string { return fmt.Sprintf("#%d", r.ID) }

// Typed represents a typed value wrapper such as IFCAREAMEASURE(12.5).
// The wrapper carries the defined-type name around a single inner value.
type Typed struct {
	TypeName string
	Value    Attribute
}

func (t Typed) Type() AttrType { return AttrTyped }
func (t Typed) String() string {
	if t.Value == nil {
		return t.TypeName + "($)"
	}
	return t.TypeName + "(" + t.Value.String() + ")"
}

// List represents an aggregate attribute
type List []Attribute

func (l List) Type() AttrType { return AttrList }
func (l List) String() string {
	var parts []string
	for _, a := range l {
		parts = append(parts, a.String())
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// Len returns the number of elements in the list
func (l List) Len() int {
	return len(l)
}

// Get retrieves an element at the given index
func (l List) Get(index int) Attribute {
	if index < 0 || index >= len(l) {
		return nil
	}
	return l[index]
}

// GetRef retrieves a reference at the given index
func (l List) GetRef(index int) (Ref, bool) {
	a := l.Get(index)
	if a == nil {
		return Ref{}, false
	}
	r, ok := a.(Ref)
	return r, ok
}

// GetList retrieves a nested list at the given index
func (l List) GetList(index int) (List, bool) {
	a := l.Get(index)
	if a == nil {
		return nil, false
	}
	nested, ok := a.(List)
	return nested, ok
}

// GetString retrieves a string at the given index
func (l List) GetString(index int) (String, bool) {
	a := l.Get(index)
	if a == nil {
		return "", false
	}
	s, ok := a.(String)
	return s, ok
}

// GetFloat retrieves a numeric value at the given index, unwrapping
// typed wrappers and accepting both integers and reals
func (l List) GetFloat(index int) (float64, bool) {
	a := l.Get(index)
	if a == nil {
		return 0, false
	}
	return AsFloat(a)
}

// GetInt retrieves an integer at the given index, unwrapping typed wrappers
func (l List) GetInt(index int) (int64, bool) {
	a := Unwrap(l.Get(index))
	if a == nil {
		return 0, false
	}
	i, ok := a.(Int)
	return int64(i), ok
}

// Unwrap strips typed-value wrappers until a non-wrapper attribute remains.
// Model files wrap measures unevenly (IFCAREAMEASURE(12.5) in one file, a
// bare 12.5 in the next), so every consumer goes through this one function.
func Unwrap(a Attribute) Attribute {
	for {
		t, ok := a.(Typed)
		if !ok {
			return a
		}
		a = t.Value
	}
}

// AsFloat coerces an attribute to a float64, unwrapping typed wrappers.
// Integers are widened; everything else reports false.
func AsFloat(a Attribute) (float64, bool) {
	switch v := Unwrap(a).(type) {
	case Real:
		return float64(v), true
	case Int:
		return float64(v), true
	default:
		return 0, false
	}
}

// AsString coerces an attribute to a string, unwrapping typed wrappers.
func AsString(a Attribute) (string, bool) {
	s, ok := Unwrap(a).(String)
	return string(s), ok
}
