// Package geometry derives area and volume from boundary geometry when a
// subject carries no explicit quantity values.
//
// Two derivations are available. [ComputeFromMesh] integrates over
// triangulated boundary chunks: volume as the absolute sum of signed
// tetrahedron volumes against the origin, area as the "footprint" sum of
// near-horizontal triangle areas. [ComputeFromExtrusion] computes both
// analytically from a swept 2D profile and a depth, using the shoelace
// formula for arbitrary closed profiles.
//
// Both derivations are best-effort by contract. The mesh volume is exact
// only for closed, consistently wound manifolds; the footprint counts
// floors and ceilings alike and keeps the doubled cross-product magnitude
// per triangle, so a closed box reports four times its floor area.
// Neither condition is validated or corrected.
//
// Geometry reaches the computations through the [MeshProvider] capability
// interface. [RecordProvider] implements it over the decoded record graph,
// reading pre-tessellated face sets and extrusion solids; a provider that
// has no geometry for a subject reports none, never an error.
//
// The [Engine] models the process-wide geometry kernel: bootstrapped once
// on first acquisition, held by each model handle as a [Lease], torn down
// with Shutdown once idle.
package geometry
