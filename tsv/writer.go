package tsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/quantolabs/quanto/rows"
)

// Writer serializes assembled rows as delimited text. The header row is the
// union of all field names across rows, in first-seen order; fields a row
// does not carry are left empty.
type Writer struct {
	w *csv.Writer
}

// NewWriter creates a tab-delimited writer.
func NewWriter(w io.Writer) *Writer {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	return &Writer{w: cw}
}

// NewCSVWriter creates a comma-delimited writer.
func NewCSVWriter(w io.Writer) *Writer {
	return &Writer{w: csv.NewWriter(w)}
}

// WriteRows writes the header and all rows, then flushes.
func (w *Writer) WriteRows(list []*rows.Row) error {
	header := headerUnion(list)
	if len(header) == 0 {
		w.w.Flush()
		return w.w.Error()
	}

	if err := w.w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	record := make([]string, len(header))
	for _, row := range list {
		for i, name := range header {
			value, ok := row.Get(name)
			if !ok {
				record[i] = ""
				continue
			}
			record[i] = formatValue(value)
		}
		if err := w.w.Write(record); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	w.w.Flush()
	return w.w.Error()
}

// headerUnion collects field names across all rows in first-seen order.
func headerUnion(list []*rows.Row) []string {
	var header []string
	seen := make(map[string]bool)
	for _, row := range list {
		for _, name := range row.Names() {
			if !seen[name] {
				seen[name] = true
				header = append(header, name)
			}
		}
	}
	return header
}

// formatValue renders a row scalar as text.
func formatValue(v interface{}) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case bool:
		return strconv.FormatBool(value)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", value)
	}
}
