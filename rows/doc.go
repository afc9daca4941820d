// Package rows assembles the final per-space output rows.
//
// A [Row] is an ordered field-name to scalar mapping. [Assemble] merges
// extractor results with geometry fallbacks per subject, applies the
// caller's rename map and numeric rounding, and preserves subject order.
// Per-subject geometry gaps surface as [Warning] values, never as errors.
//
// Rows are self-contained copies: they hold no references into the decoded
// model and stay valid after the model handle is closed.
package rows
