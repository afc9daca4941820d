package rows

import "math"

// Row is an ordered mapping of output field names to scalar values.
// Field order is insertion order; renames keep the renamed field's position.
type Row struct {
	names  []string
	values map[string]interface{}
}

// NewRow creates an empty row.
func NewRow() *Row {
	return &Row{
		values: make(map[string]interface{}),
	}
}

// Set stores a field value. New names append to the field order; setting an
// existing name overwrites in place.
func (r *Row) Set(name string, value interface{}) {
	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}
	r.values[name] = value
}

// Get retrieves a field value.
func (r *Row) Get(name string) (interface{}, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Float retrieves a numeric field value.
func (r *Row) Float(name string) (float64, bool) {
	f, ok := r.values[name].(float64)
	return f, ok
}

// Names returns the field names in order. The slice is owned by the row.
func (r *Row) Names() []string {
	return r.names
}

// Len returns the number of fields.
func (r *Row) Len() int {
	return len(r.names)
}

// Rename changes a field's name by exact key match, keeping its position.
// Renaming onto an existing name drops that older field; the renamed field
// wins. Absent source names are a no-op.
func (r *Row) Rename(from, to string) {
	if from == to {
		return
	}
	value, ok := r.values[from]
	if !ok {
		return
	}

	if _, exists := r.values[to]; exists {
		r.removeName(to)
	}
	delete(r.values, from)
	r.values[to] = value
	for i, n := range r.names {
		if n == from {
			r.names[i] = to
			return
		}
	}
}

func (r *Row) removeName(name string) {
	delete(r.values, name)
	for i, n := range r.names {
		if n == name {
			r.names = append(r.names[:i], r.names[i+1:]...)
			return
		}
	}
}

// RoundFields rounds every numeric field to the given decimal count.
func (r *Row) RoundFields(decimals int) {
	for name, v := range r.values {
		if f, ok := v.(float64); ok {
			r.values[name] = Round(f, decimals)
		}
	}
}

// Round rounds half away from zero to the given decimal count. Rounding an
// already-rounded value again yields the same value.
func Round(x float64, decimals int) float64 {
	if decimals < 0 {
		return x
	}
	pow := math.Pow(10, float64(decimals))
	return math.Round(x*pow) / pow
}
