package geometry

import "math"

// horizontalThreshold classifies a triangle as near-horizontal when the
// vertical share of its unit normal exceeds this value.
const horizontalThreshold = 0.95

// Mesh is one triangulated boundary chunk: a flat vertex buffer of x,y,z
// triples and a flat index buffer of triangle corner triples.
type Mesh struct {
	Vertices []float64
	Indices  []int
}

// VertexCount returns the number of vertices in the buffer.
func (m Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles in the index buffer.
func (m Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Valid reports whether the buffers satisfy the mesh invariants: the index
// buffer length is divisible by 3 and every index addresses a vertex.
func (m Mesh) Valid() bool {
	if len(m.Vertices)%3 != 0 || len(m.Indices)%3 != 0 {
		return false
	}
	n := m.VertexCount()
	for _, idx := range m.Indices {
		if idx < 0 || idx >= n {
			return false
		}
	}
	return true
}

// Transform is a row-major rotation+translation matrix. Profile follows the
// upper 3x4 of a homogeneous transform; perspective terms have no place here.
type Transform [3][4]float64

// IdentityTransform returns the identity transform.
func IdentityTransform() Transform {
	return Transform{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
	}
}

// Apply transforms the point (x, y, z).
func (t Transform) Apply(x, y, z float64) (float64, float64, float64) {
	return t[0][0]*x + t[0][1]*y + t[0][2]*z + t[0][3],
		t[1][0]*x + t[1][1]*y + t[1][2]*z + t[1][3],
		t[2][0]*x + t[2][1]*y + t[2][2]*z + t[2][3]
}

// Result carries derived quantities. A nil field means the quantity could
// not be derived; rows leave the corresponding column empty.
type Result struct {
	Area   *float64
	Volume *float64
}

// ComputeFromMesh integrates area and volume over triangulated boundary
// chunks. transforms is optional; when present, transforms[i] is applied to
// the vertices of chunks[i] before integration.
//
// Volume is the sum of signed tetrahedron volumes spanned by each triangle
// and the origin, taken as an absolute value at the end. The result is exact
// for closed, consistently wound, non-self-intersecting boundaries; for open
// or inconsistently wound meshes it silently under- or over-reports, and the
// abs() can mask a genuinely wrong total. That behavior is inherited and
// kept as-is.
//
// Area is a footprint approximation: near-horizontal triangles (normal
// within horizontalThreshold of vertical) contribute the full cross-product
// magnitude, which is twice the triangle area, and floor and ceiling
// triangles both qualify. A closed box therefore reports four times its
// floor area: each face doubled, both faces counted. Inherited behavior as
// well; consumers are expected to know.
//
// No chunks, or chunks with no usable triangles, yield an empty Result,
// never an error.
func ComputeFromMesh(chunks []Mesh, transforms []Transform) Result {
	var volume, footprint float64
	triangles := 0

	for ci, mesh := range chunks {
		identity := true
		var tf Transform
		if ci < len(transforms) {
			tf = transforms[ci]
			identity = false
		}

		vcount := mesh.VertexCount()
		for i := 0; i+2 < len(mesh.Indices); i += 3 {
			ia, ib, ic := mesh.Indices[i], mesh.Indices[i+1], mesh.Indices[i+2]
			if ia < 0 || ib < 0 || ic < 0 || ia >= vcount || ib >= vcount || ic >= vcount {
				continue
			}

			ax, ay, az := mesh.Vertices[ia*3], mesh.Vertices[ia*3+1], mesh.Vertices[ia*3+2]
			bx, by, bz := mesh.Vertices[ib*3], mesh.Vertices[ib*3+1], mesh.Vertices[ib*3+2]
			cx, cy, cz := mesh.Vertices[ic*3], mesh.Vertices[ic*3+1], mesh.Vertices[ic*3+2]

			if !identity {
				ax, ay, az = tf.Apply(ax, ay, az)
				bx, by, bz = tf.Apply(bx, by, bz)
				cx, cy, cz = tf.Apply(cx, cy, cz)
			}

			// Signed tetrahedron volume: a . (b x c) / 6
			volume += (ax*(by*cz-bz*cy) + ay*(bz*cx-bx*cz) + az*(bx*cy-by*cx)) / 6

			// Face normal from edge vectors
			e1x, e1y, e1z := bx-ax, by-ay, bz-az
			e2x, e2y, e2z := cx-ax, cy-ay, cz-az
			nx := e1y*e2z - e1z*e2y
			ny := e1z*e2x - e1x*e2z
			nz := e1x*e2y - e1y*e2x
			mag := math.Sqrt(nx*nx + ny*ny + nz*nz)

			if mag > 0 && math.Abs(nz)/mag > horizontalThreshold {
				// Full cross-product magnitude, twice the triangle
				// area. Kept that way; downstream consumers expect it.
				footprint += mag
			}

			triangles++
		}
	}

	if triangles == 0 {
		return Result{}
	}

	vol := math.Abs(volume)
	return Result{Area: &footprint, Volume: &vol}
}
