package geometry

import (
	"github.com/quantolabs/quanto/core"
	"github.com/quantolabs/quanto/resolver"
)

// Record type tags understood by the record-backed provider.
const (
	typeProductShape     = "IFCPRODUCTDEFINITIONSHAPE"
	typeShapeRep         = "IFCSHAPEREPRESENTATION"
	typeTriangulatedSet  = "IFCTRIANGULATEDFACESET"
	typePointList3D      = "IFCCARTESIANPOINTLIST3D"
	typeExtrudedSolid    = "IFCEXTRUDEDAREASOLID"
	typeRectProfile      = "IFCRECTANGLEPROFILEDEF"
	typeArbitraryProfile = "IFCARBITRARYCLOSEDPROFILEDEF"
	typePolyline         = "IFCPOLYLINE"
	typeCartesianPoint   = "IFCCARTESIANPOINT"
)

// MeshProvider supplies boundary geometry for a subject. Implementations
// report what they can and stay silent about what they cannot: a subject
// without usable geometry yields no chunks and no extrusion, never an error
// for mere absence.
type MeshProvider interface {
	// Meshes returns the subject's triangulated boundary chunks, or nil
	// when none are available.
	Meshes(subjectID int) ([]Mesh, error)

	// Extrusion returns the first extruded-solid representation of the
	// subject, if any.
	Extrusion(subjectID int) (*Extrusion, bool)
}

// RecordProvider derives geometry from the decoded record graph itself,
// reading pre-tessellated face sets and extrusion solids attached to the
// subject's shape representation. It is the default provider; callers with
// an external tessellation engine supply their own MeshProvider instead.
type RecordProvider struct {
	src resolver.Source
	res *resolver.Resolver
}

// NewRecordProvider creates a provider over the given record source.
func NewRecordProvider(src resolver.Source) *RecordProvider {
	return &RecordProvider{
		src: src,
		res: resolver.New(src),
	}
}

// Meshes returns all triangulated face sets reachable from the subject's
// shape representation, one chunk per face set, in graph order.
func (p *RecordProvider) Meshes(subjectID int) ([]Mesh, error) {
	var chunks []Mesh
	p.eachItem(subjectID, func(item *core.Record) {
		if item.Type != typeTriangulatedSet {
			return
		}
		if mesh, ok := p.triangulated(item); ok {
			chunks = append(chunks, mesh)
		}
	})
	return chunks, nil
}

// Extrusion returns the first extruded area solid reachable from the
// subject's shape representation. Subsequent extrusion items are ignored.
func (p *RecordProvider) Extrusion(subjectID int) (*Extrusion, bool) {
	var solid *Extrusion
	p.eachItem(subjectID, func(item *core.Record) {
		if solid != nil || item.Type != typeExtrudedSolid {
			return
		}
		depth, ok := item.AttrFloat(3)
		if !ok {
			return
		}
		profile, _ := p.profile(item) // nil profile stays nil: unsupported kind
		solid = &Extrusion{Profile: profile, Depth: depth}
	})
	return solid, solid != nil
}

// eachItem walks subject -> representation -> shape representations and
// calls fn for every representation item record.
func (p *RecordProvider) eachItem(subjectID int, fn func(*core.Record)) {
	subject, ok := p.src.Record(subjectID)
	if !ok {
		return
	}

	// A product's Representation attribute sits at position 6 for spaces
	// and other spatial elements.
	shape, ok := p.res.Follow(subject, 6)
	if !ok || shape.Type != typeProductShape {
		return
	}

	reps, ok := shape.AttrList(2)
	if !ok {
		return
	}
	for _, rep := range p.res.DerefAll(reps) {
		if rep.Type != typeShapeRep {
			continue
		}
		items, ok := rep.AttrList(3)
		if !ok {
			continue
		}
		for _, item := range p.res.DerefAll(items) {
			fn(item)
		}
	}
}

// triangulated converts a triangulated face set record into a mesh chunk.
// Corner indexes are 1-based in the exchange format; triangles with indexes
// outside the vertex buffer are dropped rather than failing the chunk.
func (p *RecordProvider) triangulated(item *core.Record) (Mesh, bool) {
	coords, ok := p.res.Follow(item, 0)
	if !ok || coords.Type != typePointList3D {
		return Mesh{}, false
	}
	pointList, ok := coords.AttrList(0)
	if !ok {
		return Mesh{}, false
	}

	vertices := make([]float64, 0, pointList.Len()*3)
	for i := 0; i < pointList.Len(); i++ {
		point, ok := pointList.GetList(i)
		if !ok || point.Len() < 3 {
			return Mesh{}, false
		}
		x, okx := point.GetFloat(0)
		y, oky := point.GetFloat(1)
		z, okz := point.GetFloat(2)
		if !okx || !oky || !okz {
			return Mesh{}, false
		}
		vertices = append(vertices, x, y, z)
	}

	coordIndex, ok := item.AttrList(3)
	if !ok {
		return Mesh{}, false
	}
	vcount := len(vertices) / 3

	indices := make([]int, 0, coordIndex.Len()*3)
	for i := 0; i < coordIndex.Len(); i++ {
		tri, ok := coordIndex.GetList(i)
		if !ok || tri.Len() != 3 {
			continue
		}
		a, oka := tri.GetInt(0)
		b, okb := tri.GetInt(1)
		c, okc := tri.GetInt(2)
		if !oka || !okb || !okc {
			continue
		}
		ia, ib, ic := int(a)-1, int(b)-1, int(c)-1
		if ia < 0 || ib < 0 || ic < 0 || ia >= vcount || ib >= vcount || ic >= vcount {
			continue
		}
		indices = append(indices, ia, ib, ic)
	}

	if len(indices) == 0 {
		return Mesh{}, false
	}
	return Mesh{Vertices: vertices, Indices: indices}, true
}

// profile converts a swept-area profile record into a Profile value.
// Unsupported profile kinds report false and a nil Profile.
func (p *RecordProvider) profile(solid *core.Record) (Profile, bool) {
	rec, ok := p.res.Follow(solid, 0)
	if !ok {
		return nil, false
	}

	switch rec.Type {
	case typeRectProfile:
		x, okx := rec.AttrFloat(3)
		y, oky := rec.AttrFloat(4)
		if !okx || !oky {
			return nil, false
		}
		return RectProfile{X: x, Y: y}, true

	case typeArbitraryProfile:
		curve, ok := p.res.Follow(rec, 2)
		if !ok || curve.Type != typePolyline {
			return nil, false
		}
		pointRefs, ok := curve.AttrList(0)
		if !ok {
			return nil, false
		}
		var points [][2]float64
		for _, pt := range p.res.DerefAll(pointRefs) {
			if pt.Type != typeCartesianPoint {
				continue
			}
			coords, ok := pt.AttrList(0)
			if !ok || coords.Len() < 2 {
				continue
			}
			x, okx := coords.GetFloat(0)
			y, oky := coords.GetFloat(1)
			if !okx || !oky {
				continue
			}
			points = append(points, [2]float64{x, y})
		}
		// Exporters commonly repeat the first point to close the ring;
		// the shoelace wrap makes the duplicate redundant.
		if len(points) > 1 && points[0] == points[len(points)-1] {
			points = points[:len(points)-1]
		}
		if len(points) < 3 {
			return nil, false
		}
		return PolyProfile{Points: points}, true
	}

	return nil, false
}
