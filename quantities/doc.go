// Package quantities extracts named scalar values for a subject from its
// attached property and quantity definitions.
//
// Explicit quantity records are the primary source for Area and Volume;
// heuristically named properties (any name containing "area", "volume" or
// "volumen", case-folded) fill slots that are still empty when reached.
// Definitions are consumed strictly in index encounter order with
// first-occurrence-wins semantics; see [Extract] for why that order is
// load-bearing.
//
// All extraction is read-only and infallible: malformed definitions are
// skipped, and the worst case is an empty [Result].
package quantities
