package relations

import (
	"fmt"

	"github.com/quantolabs/quanto/core"
)

// relDefinesByProperties is the relationship record type that attaches
// property and quantity definitions to subjects.
const relDefinesByProperties = "IFCRELDEFINESBYPROPERTIES"

// Positions of the relationship's subject list and definition reference.
const (
	attrRelatedObjects  = 4
	attrRelatingPropDef = 5
)

// Model is the view of a decoded model the indexer needs.
// *reader.Reader satisfies it.
type Model interface {
	Record(id int) (*core.Record, bool)
	RecordsByType(typeName string) []*core.Record
	Closed() bool
}

// Index maps subject record ids to the definition records attached to them.
// Definition order is the encounter order of the single relationship scan
// and is significant: downstream extraction resolves duplicate definitions
// by first occurrence.
type Index struct {
	defs     map[int][]*core.Record
	subjects []int // first-mention order of subject ids
}

// BuildIndex scans every defines-by-properties relationship exactly once and
// returns the subject index. Relationships missing their subject list or
// definition reference are skipped; only an invalid model handle fails.
func BuildIndex(model Model) (*Index, error) {
	if model == nil || model.Closed() {
		return nil, fmt.Errorf("invalid model handle")
	}

	ix := &Index{
		defs: make(map[int][]*core.Record),
	}

	for _, rel := range model.RecordsByType(relDefinesByProperties) {
		defRef, ok := rel.AttrRef(attrRelatingPropDef)
		if !ok {
			continue
		}
		def, ok := model.Record(defRef.ID)
		if !ok {
			continue
		}
		related, ok := rel.AttrList(attrRelatedObjects)
		if !ok {
			continue
		}

		for i := 0; i < related.Len(); i++ {
			subjRef, ok := related.GetRef(i)
			if !ok {
				continue
			}
			if _, seen := ix.defs[subjRef.ID]; !seen {
				ix.subjects = append(ix.subjects, subjRef.ID)
			}
			ix.defs[subjRef.ID] = append(ix.defs[subjRef.ID], def)
		}
	}

	return ix, nil
}

// Definitions returns the definition records attached to a subject, in
// encounter order. Unknown subjects return nil.
func (ix *Index) Definitions(subjectID int) []*core.Record {
	return ix.defs[subjectID]
}

// Subjects returns all subject ids in first-mention order.
func (ix *Index) Subjects() []int {
	return ix.subjects
}

// Len returns the number of indexed subjects.
func (ix *Index) Len() int {
	return len(ix.defs)
}
