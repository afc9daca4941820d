package resolver

import (
	"testing"

	"github.com/quantolabs/quanto/core"
)

type fakeSource map[int]*core.Record

func (s fakeSource) Record(id int) (*core.Record, bool) {
	rec, ok := s[id]
	return rec, ok
}

func rec(id int, typeName string, attrs ...core.Attribute) *core.Record {
	return &core.Record{ID: id, Type: typeName, Attrs: core.List(attrs)}
}

func TestDeref(t *testing.T) {
	src := fakeSource{
		1: rec(1, "IFCSPACE"),
	}
	r := New(src)

	tests := []struct {
		name   string
		attr   core.Attribute
		wantID int
		wantOK bool
	}{
		{"plain reference", core.Ref{ID: 1}, 1, true},
		{"wrapped reference", core.Typed{TypeName: "IFCLABEL", Value: core.Ref{ID: 1}}, 1, true},
		{"dangling reference", core.Ref{ID: 99}, 0, false},
		{"non-reference", core.String("x"), 0, false},
		{"null", core.Null{}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Deref(tt.attr)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got.ID != tt.wantID {
				t.Errorf("id = %d, want %d", got.ID, tt.wantID)
			}
		})
	}
}

func TestDerefAll(t *testing.T) {
	src := fakeSource{
		1: rec(1, "A"),
		3: rec(3, "C"),
	}
	r := New(src)

	list := core.List{
		core.Ref{ID: 1},
		core.String("junk"),
		core.Ref{ID: 2}, // dangling
		core.Ref{ID: 3},
	}

	records := r.DerefAll(list)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].ID != 1 || records[1].ID != 3 {
		t.Errorf("order = [%d %d], want [1 3]", records[0].ID, records[1].ID)
	}
}

func TestFollow(t *testing.T) {
	src := fakeSource{
		1: rec(1, "A", core.Null{}, core.Ref{ID: 2}),
		2: rec(2, "B"),
	}
	r := New(src)

	got, ok := r.Follow(src[1], 1)
	if !ok || got.ID != 2 {
		t.Errorf("Follow = %v, %v; want record 2", got, ok)
	}

	if _, ok := r.Follow(src[1], 0); ok {
		t.Error("Follow of a null attribute should fail")
	}
	if _, ok := r.Follow(src[1], 99); ok {
		t.Error("Follow past the attribute list should fail")
	}
	if _, ok := r.Follow(nil, 0); ok {
		t.Error("Follow on a nil record should fail")
	}
}

func TestVisitReachesNestedReferences(t *testing.T) {
	src := fakeSource{
		1: rec(1, "A", core.List{core.Ref{ID: 2}, core.Ref{ID: 3}}),
		2: rec(2, "B", core.Ref{ID: 4}),
		3: rec(3, "C"),
		4: rec(4, "D"),
	}
	r := New(src)

	var order []int
	r.Visit(src[1], func(rec *core.Record) bool {
		order = append(order, rec.ID)
		return true
	})

	want := []int{1, 2, 4, 3}
	if len(order) != len(want) {
		t.Fatalf("visited %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("visit order %v, want depth-first %v", order, want)
			break
		}
	}
}

func TestVisitBreaksCycles(t *testing.T) {
	src := fakeSource{
		1: rec(1, "A", core.Ref{ID: 2}),
		2: rec(2, "B", core.Ref{ID: 1}),
	}
	r := New(src)

	count := 0
	r.Visit(src[1], func(*core.Record) bool {
		count++
		return true
	})

	if count != 2 {
		t.Errorf("visited %d records, want each of the cycle exactly once", count)
	}
}

func TestVisitPrune(t *testing.T) {
	src := fakeSource{
		1: rec(1, "A", core.Ref{ID: 2}),
		2: rec(2, "B", core.Ref{ID: 3}),
		3: rec(3, "C"),
	}
	r := New(src)

	var order []int
	r.Visit(src[1], func(rec *core.Record) bool {
		order = append(order, rec.ID)
		return rec.ID != 2 // don't descend past B
	})

	if len(order) != 2 || order[1] != 2 {
		t.Errorf("visited %v, want [1 2]", order)
	}
}

func TestVisitDepthCap(t *testing.T) {
	// A deep chain, walked with a small cap
	src := fakeSource{}
	for i := 1; i <= 10; i++ {
		src[i] = rec(i, "X", core.Ref{ID: i + 1})
	}
	r := New(src, WithMaxDepth(3))

	count := 0
	r.Visit(src[1], func(*core.Record) bool {
		count++
		return true
	})

	if count != 3 {
		t.Errorf("visited %d records with depth cap 3, want 3", count)
	}
}
