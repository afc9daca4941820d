// Package reader provides the model handle over a decoded exchange file.
//
// A [Reader] owns the decoded record table and a lease on the process-wide
// geometry engine. Both are scoped to the handle: every exit path must call
// [Reader.Close], after which all accessors return empty results. Rows and
// other values derived from the model are independent copies and remain
// valid after Close.
//
// Input may be a file, an io.Reader, or an in-memory byte buffer.
// Gzip-compressed input is detected by its magic bytes and decompressed
// transparently.
//
// A failed decode is reported as *[DecodeError] wrapping the underlying
// cause. This is the only fatal error in the pipeline.
package reader
