// Package tsv serializes assembled rows as tab- or comma-delimited text.
// It is the output collaborator of the derivation pipeline and performs no
// derivation of its own.
package tsv
