// Package relations indexes the defines-by-properties relationships of a
// decoded model: one scan over all relationship records, producing a map
// from subject id to its attached definition records.
//
// The index performs no filtering by definition type; that is the
// extractor's job. Encounter order is preserved because it decides ties
// when a subject carries duplicate definitions.
package relations
