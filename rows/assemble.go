package rows

import (
	"fmt"
	"sort"

	"github.com/quantolabs/quanto/geometry"
	"github.com/quantolabs/quanto/quantities"
)

// Fixed leading field names of every assembled row.
const (
	FieldID       = "id"
	FieldGlobalID = "GlobalId"
	FieldName     = "Name"
	FieldLongName = "LongName"
	FieldArea     = "Area"
	FieldVolume   = "Volume"
)

// Subject is one space entity to assemble a row for.
type Subject struct {
	ID        int
	GlobalID  string
	Name      string
	LongName  string
	Extracted quantities.Result
}

// Options control row assembly.
type Options struct {
	// UseGeometry enables the mesh and extrusion fallbacks for slots the
	// extractor left empty.
	UseGeometry bool

	// ForceGeometry discards extractor values and always derives Area and
	// Volume from geometry, empty when none exists.
	ForceGeometry bool

	// Rename maps output field names; entries apply in sorted key order,
	// so on collision the lexicographically later mapping wins.
	Rename map[string]string

	// Round is the decimal count for numeric fields; negative disables
	// rounding.
	Round int
}

// Warning reports a non-fatal, per-subject condition. Warnings never abort
// assembly; the affected fields simply stay empty.
type Warning struct {
	SubjectID int
	Message   string
}

func (w Warning) String() string {
	return fmt.Sprintf("#%d: %s", w.SubjectID, w.Message)
}

// Assemble merges extractor output with geometry fallbacks and produces the
// final row list, in the subjects' given order.
//
// Per subject the merge is: extractor values first; if a slot is empty and
// UseGeometry is set, the mesh fallback fills it, then the extrusion
// fallback (first non-empty wins). ForceGeometry recomputes both slots from
// the fallbacks and overwrites whatever the extractor found. Fallbacks are
// only consulted when a slot actually needs them.
func Assemble(subjects []Subject, provider geometry.MeshProvider, opts Options) ([]*Row, []Warning) {
	result := make([]*Row, 0, len(subjects))
	var warnings []Warning

	for _, subject := range subjects {
		area, volume := subject.Extracted.Area, subject.Extracted.Volume
		if opts.ForceGeometry {
			area, volume = nil, nil
		}

		wantFallback := opts.UseGeometry || opts.ForceGeometry
		if wantFallback && (area == nil || volume == nil) && provider != nil {
			var found bool
			area, volume, found = applyFallbacks(subject.ID, provider, area, volume)
			if !found {
				warnings = append(warnings, Warning{
					SubjectID: subject.ID,
					Message:   "no mesh or extrusion geometry available",
				})
			}
		}

		row := NewRow()
		row.Set(FieldID, subject.ID)
		row.Set(FieldGlobalID, subject.GlobalID)
		row.Set(FieldName, subject.Name)
		row.Set(FieldLongName, subject.LongName)
		if area != nil {
			row.Set(FieldArea, *area)
		}
		if volume != nil {
			row.Set(FieldVolume, *volume)
		}
		for _, extra := range subject.Extracted.Extra {
			row.Set(extra.Name, extra.Value)
		}

		if opts.Round >= 0 {
			row.RoundFields(opts.Round)
		}
		applyRename(row, opts.Rename)

		result = append(result, row)
	}

	return result, warnings
}

// applyFallbacks fills empty slots from mesh geometry first, extrusion
// second. It reports whether the provider had any geometry at all.
func applyFallbacks(subjectID int, provider geometry.MeshProvider, area, volume *float64) (*float64, *float64, bool) {
	found := false

	chunks, err := provider.Meshes(subjectID)
	if err == nil && len(chunks) > 0 {
		found = true
		mesh := geometry.ComputeFromMesh(chunks, nil)
		if area == nil {
			area = mesh.Area
		}
		if volume == nil {
			volume = mesh.Volume
		}
	}

	if area == nil || volume == nil {
		if solid, ok := provider.Extrusion(subjectID); ok {
			found = true
			ext := geometry.ComputeFromExtrusion(*solid)
			if area == nil {
				area = ext.Area
			}
			if volume == nil {
				volume = ext.Volume
			}
		}
	}

	return area, volume, found
}

// applyRename applies the rename map in sorted key order.
func applyRename(row *Row, rename map[string]string) {
	if len(rename) == 0 {
		return
	}
	keys := make([]string, 0, len(rename))
	for k := range rename {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, from := range keys {
		row.Rename(from, rename[from])
	}
}
