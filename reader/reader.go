package reader

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"

	"github.com/quantolabs/quanto/core"
	"github.com/quantolabs/quanto/geometry"
)

// Reader represents a decoded building model. It owns the record table for
// its lifetime and holds a lease on the process-wide geometry engine; both
// are released by Close.
type Reader struct {
	header  *core.Header
	order   []*core.Record          // file order
	records map[int]*core.Record    // by id
	byType  map[string][]*core.Record // by type tag, file order preserved
	lease   *geometry.Lease
	closed  bool
}

// Open opens a model file and returns a Reader.
// Gzip-compressed files are detected and decompressed transparently.
func Open(filename string) (*Reader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	defer file.Close()

	return NewReader(file)
}

// FromBytes decodes a model from an in-memory byte buffer.
func FromBytes(data []byte) (*Reader, error) {
	return NewReader(bytes.NewReader(data))
}

// NewReader decodes a model from r. The whole input is consumed before
// NewReader returns; the Reader does not retain r.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)

	// Sniff gzip magic
	magic, err := br.Peek(2)
	if err == nil && len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, &DecodeError{Err: fmt.Errorf("opening gzip stream: %w", err)}
		}
		defer gz.Close()
		return decode(gz)
	}

	return decode(br)
}

// decode parses the exchange file and builds the record indexes.
func decode(r io.Reader) (*Reader, error) {
	parser, err := core.NewParser(r)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	header, records, err := parser.ParseFile()
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	lease, err := geometry.Default().Acquire()
	if err != nil {
		return nil, &DecodeError{Err: fmt.Errorf("acquiring geometry engine: %w", err)}
	}

	rd := &Reader{
		header:  header,
		order:   records,
		records: make(map[int]*core.Record, len(records)),
		byType:  make(map[string][]*core.Record),
		lease:   lease,
	}
	for _, rec := range records {
		rd.records[rec.ID] = rec
		rd.byType[rec.Type] = append(rd.byType[rec.Type], rec)
	}

	return rd, nil
}

// Close releases the record table and the geometry engine lease.
// It is safe to call Close multiple times.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.order = nil
	r.records = nil
	r.byType = nil
	if r.lease != nil {
		r.lease.Release()
		r.lease = nil
	}
	return nil
}

// Closed reports whether the Reader has been closed.
func (r *Reader) Closed() bool {
	return r == nil || r.closed
}

// Header returns the parsed header fields of the model file.
func (r *Reader) Header() *core.Header {
	return r.header
}

// Schema returns the declared schema identifier (e.g. "IFC4"), or "" when
// the header carried none.
func (r *Reader) Schema() string {
	if r.header == nil {
		return ""
	}
	return r.header.Schema
}

// Record returns the record with the given id.
func (r *Reader) Record(id int) (*core.Record, bool) {
	if r.Closed() {
		return nil, false
	}
	rec, ok := r.records[id]
	return rec, ok
}

// Records returns all records in file order. The returned slice is owned by
// the Reader and must not be modified.
func (r *Reader) Records() []*core.Record {
	if r.Closed() {
		return nil
	}
	return r.order
}

// RecordsByType returns all records with the given type tag, in file order.
func (r *Reader) RecordsByType(typeName string) []*core.Record {
	if r.Closed() {
		return nil
	}
	return r.byType[typeName]
}

// Len returns the number of records in the model.
func (r *Reader) Len() int {
	return len(r.order)
}
