package quanto

import (
	"fmt"
	"io"

	"github.com/quantolabs/quanto/core"
	"github.com/quantolabs/quanto/geometry"
	"github.com/quantolabs/quanto/quantities"
	"github.com/quantolabs/quanto/reader"
	"github.com/quantolabs/quanto/relations"
	"github.com/quantolabs/quanto/rows"
	"github.com/quantolabs/quanto/tsv"
)

// Space record layout: the attribute positions read for row identity.
const (
	spaceType         = "IFCSPACE"
	spaceAttrGlobalID = 0
	spaceAttrName     = 2
	spaceAttrLongName = 7
)

// Extractor provides a fluent interface for deriving space quantity rows
// from a building model. Each configuration method returns a new Extractor
// instance, making it safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source (only one is used)
	filename string
	data     []byte

	// Reader lifecycle
	reader       *reader.Reader
	ownsReader   bool // true if we opened the reader and should close it
	readerOpened bool // true if the reader has been opened

	// Geometry source override
	provider geometry.MeshProvider

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:     e.filename,
		data:         e.data,
		reader:       e.reader,
		ownsReader:   e.ownsReader,
		readerOpened: e.readerOpened,
		provider:     e.provider,
		options:      e.options.clone(),
		err:          e.err,
	}
}

// ensureReader opens the reader if not already open.
func (e *Extractor) ensureReader() error {
	if e.readerOpened {
		return nil
	}

	switch {
	case e.filename != "":
		r, err := reader.Open(e.filename)
		if err != nil {
			return err
		}
		e.reader = r
	case e.data != nil:
		r, err := reader.FromBytes(e.data)
		if err != nil {
			return err
		}
		e.reader = r
	default:
		return fmt.Errorf("no model source specified")
	}

	e.ownsReader = true
	e.readerOpened = true
	return nil
}

// Close releases resources associated with the Extractor.
// It is safe to call Close multiple times.
func (e *Extractor) Close() error {
	if e.ownsReader && e.reader != nil {
		err := e.reader.Close()
		e.reader = nil
		e.ownsReader = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// AllParams copies every quantity and property of each space into extra
// fields, keyed "<SetName>.<Name>".
func (e *Extractor) AllParams() *Extractor {
	newExt := e.clone()
	newExt.options.allParams = true
	return newExt
}

// ExtraParams names properties to copy into extra fields even without
// AllParams. Multiple calls are cumulative.
func (e *Extractor) ExtraParams(names ...string) *Extractor {
	newExt := e.clone()
	newExt.options.extraParams = append(newExt.options.extraParams, names...)
	return newExt
}

// UseGeometry enables the mesh and extrusion fallbacks for spaces whose
// definitions carry no explicit area or volume.
func (e *Extractor) UseGeometry() *Extractor {
	newExt := e.clone()
	newExt.options.useGeometry = true
	return newExt
}

// ForceGeometry always derives Area and Volume from geometry, overwriting
// explicit values. It implies UseGeometry.
func (e *Extractor) ForceGeometry() *Extractor {
	newExt := e.clone()
	newExt.options.useGeometry = true
	newExt.options.forceGeometry = true
	return newExt
}

// Rename maps an output field name to another. Multiple calls accumulate;
// on collision the lexicographically later source key wins.
func (e *Extractor) Rename(from, to string) *Extractor {
	newExt := e.clone()
	if newExt.options.rename == nil {
		newExt.options.rename = make(map[string]string)
	}
	newExt.options.rename[from] = to
	return newExt
}

// Round sets the decimal count for numeric output fields.
func (e *Extractor) Round(decimals int) *Extractor {
	newExt := e.clone()
	newExt.options.round = decimals
	return newExt
}

// WithProvider overrides the geometry source. The default provider reads
// pre-tessellated face sets and extrusion solids from the record graph.
func (e *Extractor) WithProvider(p geometry.MeshProvider) *Extractor {
	newExt := e.clone()
	newExt.provider = p
	return newExt
}

// WithOptions replaces the whole option set, e.g. one loaded from a YAML
// file via LoadOptions.
func (e *Extractor) WithOptions(opts ExtractOptions) *Extractor {
	newExt := e.clone()
	newExt.options = opts.clone()
	return newExt
}

// ============================================================================
// Terminal Operations (execute derivation and return results)
// ============================================================================

// Rows derives one row per space. This is a terminal operation that closes
// an owned reader.
//
// Returns the rows, any warnings encountered, and an error if derivation
// failed. Warnings indicate non-fatal per-space issues (no derivable
// geometry) where the row is still produced with empty fields.
func (e *Extractor) Rows() ([]*rows.Row, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	if err := e.ensureReader(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	index, err := relations.BuildIndex(e.reader)
	if err != nil {
		return nil, nil, err
	}

	subjects := e.collectSubjects(index)

	provider := e.provider
	if provider == nil && (e.options.useGeometry || e.options.forceGeometry) {
		provider = geometry.NewRecordProvider(e.reader)
	}

	assembled, warnings := rows.Assemble(subjects, provider, rows.Options{
		UseGeometry:   e.options.useGeometry,
		ForceGeometry: e.options.forceGeometry,
		Rename:        e.options.rename,
		Round:         e.options.round,
	})

	return assembled, warnings, nil
}

// WriteTSV derives the rows and serializes them tab-delimited to w.
// Terminal operation; closes an owned reader.
func (e *Extractor) WriteTSV(w io.Writer) ([]Warning, error) {
	spaces, warnings, err := e.Rows()
	if err != nil {
		return warnings, err
	}
	return warnings, tsv.NewWriter(w).WriteRows(spaces)
}

// WriteCSV derives the rows and serializes them comma-delimited to w.
// Terminal operation; closes an owned reader.
func (e *Extractor) WriteCSV(w io.Writer) ([]Warning, error) {
	spaces, warnings, err := e.Rows()
	if err != nil {
		return warnings, err
	}
	return warnings, tsv.NewCSVWriter(w).WriteRows(spaces)
}

// collectSubjects lists the model's spaces in output order: subjects in
// relationship encounter order first, then spaces no relationship mentions,
// in record order. Each subject carries its extractor result.
func (e *Extractor) collectSubjects(index *relations.Index) []rows.Subject {
	spaces := e.reader.RecordsByType(spaceType)
	byID := make(map[int]*core.Record, len(spaces))
	for _, rec := range spaces {
		byID[rec.ID] = rec
	}

	ordered := make([]*core.Record, 0, len(spaces))
	seen := make(map[int]bool, len(spaces))
	for _, id := range index.Subjects() {
		if rec, ok := byID[id]; ok && !seen[id] {
			seen[id] = true
			ordered = append(ordered, rec)
		}
	}
	for _, rec := range spaces {
		if !seen[rec.ID] {
			ordered = append(ordered, rec)
		}
	}

	qopts := quantities.Options{
		AllParams:   e.options.allParams,
		ExtraParams: e.options.extraParams,
	}

	subjects := make([]rows.Subject, 0, len(ordered))
	for _, rec := range ordered {
		globalID, _ := rec.AttrString(spaceAttrGlobalID)
		name, _ := rec.AttrString(spaceAttrName)
		longName, _ := rec.AttrString(spaceAttrLongName)

		subjects = append(subjects, rows.Subject{
			ID:        rec.ID,
			GlobalID:  globalID,
			Name:      name,
			LongName:  longName,
			Extracted: quantities.Extract(e.reader, index, rec.ID, qopts),
		})
	}

	return subjects
}
