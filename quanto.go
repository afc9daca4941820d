// Package quanto derives area and volume rows for the spaces of a building
// model, using a layered strategy: explicit quantity records first,
// heuristically named properties second, then triangulated mesh integration
// and analytical extrusion solids for subjects without explicit values.
//
// Basic usage:
//
//	spaces, warnings, err := quanto.Open("model.ifc").UseGeometry().Rows()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", quanto.FormatWarnings(warnings))
//	}
//
// With options:
//
//	warnings, err := quanto.Open("model.ifc").
//	    AllParams().
//	    Round(2).
//	    Rename("Area", "NetArea").
//	    WriteTSV(os.Stdout)
//
// For advanced use cases, the lower-level reader package is also available.
package quanto

import (
	"strings"

	"github.com/quantolabs/quanto/reader"
	"github.com/quantolabs/quanto/rows"
)

// Warning reports a non-fatal, per-subject condition encountered during
// derivation. Terminal operations return warnings alongside results; a
// warned subject still appears in the output with the affected fields empty.
type Warning = rows.Warning

// FormatWarnings renders warnings as a single human-readable line.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}

// Open opens a model file and returns an Extractor for fluent configuration.
// The file is decoded lazily, on the first terminal operation, which also
// closes it.
//
// Example:
//
//	spaces, warnings, err := quanto.Open("model.ifc").Rows()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromBytes creates an Extractor over an in-memory model buffer.
//
// Example:
//
//	spaces, warnings, err := quanto.FromBytes(data).UseGeometry().Rows()
func FromBytes(data []byte) *Extractor {
	return &Extractor{
		data:    data,
		options: defaultOptions(),
	}
}

// FromReader creates an Extractor from an already-opened reader.Reader.
// The caller keeps ownership and is responsible for closing the reader.
func FromReader(r *reader.Reader) *Extractor {
	return &Extractor{
		reader:       r,
		ownsReader:   false,
		readerOpened: true,
		options:      defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	r := quanto.Must(reader.Open("model.ifc"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustRows is a helper that wraps a call to Rows() and panics if the error
// is non-nil. It discards warnings and returns just the rows.
func MustRows(val []*rows.Row, _ []Warning, err error) []*rows.Row {
	if err != nil {
		panic(err)
	}
	return val
}
