package geometry

import (
	"math"
	"testing"

	"github.com/quantolabs/quanto/core"
)

// fakeModel is a minimal record source for provider tests.
type fakeModel struct {
	records map[int]*core.Record
}

func newFakeModel() *fakeModel {
	return &fakeModel{records: make(map[int]*core.Record)}
}

func (m *fakeModel) add(id int, typeName string, attrs ...core.Attribute) {
	m.records[id] = &core.Record{ID: id, Type: typeName, Attrs: core.List(attrs)}
}

func (m *fakeModel) Record(id int) (*core.Record, bool) {
	rec, ok := m.records[id]
	return rec, ok
}

func refs(ids ...int) core.List {
	list := make(core.List, len(ids))
	for i, id := range ids {
		list[i] = core.Ref{ID: id}
	}
	return list
}

func reals(values ...float64) core.List {
	list := make(core.List, len(values))
	for i, v := range values {
		list[i] = core.Real(v)
	}
	return list
}

func ints(values ...int64) core.List {
	list := make(core.List, len(values))
	for i, v := range values {
		list[i] = core.Int(v)
	}
	return list
}

// addSpaceWithShape wires subject -> product shape -> shape representation
// holding the given item ids.
func (m *fakeModel) addSpaceWithShape(subjectID int, itemIDs ...int) {
	m.add(subjectID, "IFCSPACE",
		core.String("guid"), core.Null{}, core.String("Room"), core.Null{},
		core.Null{}, core.Null{}, core.Ref{ID: subjectID + 100}, core.String("Long"))
	m.add(subjectID+100, typeProductShape,
		core.Null{}, core.Null{}, refs(subjectID+101))
	m.add(subjectID+101, typeShapeRep,
		core.Null{}, core.String("Body"), core.String("Tessellation"), refs(itemIDs...))
}

func TestRecordProviderMeshes(t *testing.T) {
	model := newFakeModel()
	// Unit-square floor plate split into two triangles (1-based indexes)
	model.add(1, typePointList3D, core.List{
		reals(0, 0, 0), reals(1, 0, 0), reals(1, 1, 0), reals(0, 1, 0),
	})
	model.add(2, typeTriangulatedSet,
		core.Ref{ID: 1}, core.Null{}, core.Bool(false),
		core.List{ints(1, 2, 3), ints(1, 3, 4)}, core.Null{})
	model.addSpaceWithShape(10, 2)

	provider := NewRecordProvider(model)
	chunks, err := provider.Meshes(10)
	if err != nil {
		t.Fatalf("Meshes failed: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}

	mesh := chunks[0]
	if mesh.VertexCount() != 4 {
		t.Errorf("vertex count = %d, want 4", mesh.VertexCount())
	}
	if mesh.TriangleCount() != 2 {
		t.Errorf("triangle count = %d, want 2", mesh.TriangleCount())
	}
	if !mesh.Valid() {
		t.Error("mesh invariants violated")
	}
	// 1-based corner indexes must have been shifted down
	if mesh.Indices[0] != 0 {
		t.Errorf("first index = %d, want 0", mesh.Indices[0])
	}
}

func TestRecordProviderMeshesSkipsDanglingTriangles(t *testing.T) {
	model := newFakeModel()
	model.add(1, typePointList3D, core.List{
		reals(0, 0, 0), reals(1, 0, 0), reals(1, 1, 0),
	})
	model.add(2, typeTriangulatedSet,
		core.Ref{ID: 1}, core.Null{}, core.Bool(false),
		core.List{ints(1, 2, 3), ints(1, 2, 9)}, core.Null{})
	model.addSpaceWithShape(10, 2)

	provider := NewRecordProvider(model)
	chunks, _ := provider.Meshes(10)
	if len(chunks) != 1 || chunks[0].TriangleCount() != 1 {
		t.Fatalf("got %+v, want one chunk with one triangle", chunks)
	}
}

func TestRecordProviderNoGeometry(t *testing.T) {
	model := newFakeModel()
	model.add(10, "IFCSPACE",
		core.String("guid"), core.Null{}, core.String("Room"), core.Null{},
		core.Null{}, core.Null{}, core.Null{}, core.String("Long"))

	provider := NewRecordProvider(model)

	chunks, err := provider.Meshes(10)
	if err != nil {
		t.Fatalf("Meshes failed: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("got %d chunks, want 0", len(chunks))
	}
	if _, ok := provider.Extrusion(10); ok {
		t.Error("Extrusion reported geometry for a bare subject")
	}
}

func TestRecordProviderExtrusionRectangle(t *testing.T) {
	model := newFakeModel()
	model.add(1, typeRectProfile,
		core.Enum("AREA"), core.Null{}, core.Null{}, core.Real(3), core.Real(4))
	model.add(2, typeExtrudedSolid,
		core.Ref{ID: 1}, core.Null{}, core.Null{}, core.Real(2.5))
	model.addSpaceWithShape(10, 2)

	provider := NewRecordProvider(model)
	solid, ok := provider.Extrusion(10)
	if !ok {
		t.Fatal("extrusion not found")
	}

	result := ComputeFromExtrusion(*solid)
	if result.Area == nil || *result.Area != 12 {
		t.Errorf("area = %v, want 12", result.Area)
	}
	if result.Volume == nil || *result.Volume != 30 {
		t.Errorf("volume = %v, want 30", result.Volume)
	}
}

func TestRecordProviderExtrusionPolyline(t *testing.T) {
	model := newFakeModel()
	model.add(1, typeCartesianPoint, reals(0, 0))
	model.add(2, typeCartesianPoint, reals(4, 0))
	model.add(3, typeCartesianPoint, reals(0, 3))
	model.add(4, typeCartesianPoint, reals(0, 0)) // closing duplicate
	model.add(5, typePolyline, refs(1, 2, 3, 4))
	model.add(6, typeArbitraryProfile,
		core.Enum("AREA"), core.Null{}, core.Ref{ID: 5})
	model.add(7, typeExtrudedSolid,
		core.Ref{ID: 6}, core.Null{}, core.Null{}, core.Real(2))
	model.addSpaceWithShape(10, 7)

	provider := NewRecordProvider(model)
	solid, ok := provider.Extrusion(10)
	if !ok {
		t.Fatal("extrusion not found")
	}

	result := ComputeFromExtrusion(*solid)
	if result.Area == nil || math.Abs(*result.Area-6) > 1e-9 {
		t.Errorf("area = %v, want 6", result.Area)
	}
}

func TestRecordProviderExtrusionFirstWins(t *testing.T) {
	model := newFakeModel()
	model.add(1, typeRectProfile,
		core.Enum("AREA"), core.Null{}, core.Null{}, core.Real(1), core.Real(1))
	model.add(2, typeExtrudedSolid,
		core.Ref{ID: 1}, core.Null{}, core.Null{}, core.Real(1))
	model.add(3, typeRectProfile,
		core.Enum("AREA"), core.Null{}, core.Null{}, core.Real(9), core.Real(9))
	model.add(4, typeExtrudedSolid,
		core.Ref{ID: 3}, core.Null{}, core.Null{}, core.Real(9))
	model.addSpaceWithShape(10, 2, 4)

	provider := NewRecordProvider(model)
	solid, ok := provider.Extrusion(10)
	if !ok {
		t.Fatal("extrusion not found")
	}
	if solid.Depth != 1 {
		t.Errorf("depth = %v, want the first solid's depth 1", solid.Depth)
	}
}

func TestRecordProviderUnsupportedProfile(t *testing.T) {
	model := newFakeModel()
	model.add(1, "IFCCIRCLEPROFILEDEF",
		core.Enum("AREA"), core.Null{}, core.Null{}, core.Real(2))
	model.add(2, typeExtrudedSolid,
		core.Ref{ID: 1}, core.Null{}, core.Null{}, core.Real(2))
	model.addSpaceWithShape(10, 2)

	provider := NewRecordProvider(model)
	solid, ok := provider.Extrusion(10)
	if !ok {
		t.Fatal("extrusion record itself should still be found")
	}

	// Unsupported profile kind: the computation declines, no error
	result := ComputeFromExtrusion(*solid)
	if result.Area != nil || result.Volume != nil {
		t.Errorf("got %+v, want empty result", result)
	}
}
