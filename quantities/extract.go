package quantities

import (
	"regexp"

	"golang.org/x/text/cases"

	"github.com/quantolabs/quanto/core"
	"github.com/quantolabs/quanto/relations"
	"github.com/quantolabs/quanto/resolver"
)

// Definition record types and their attribute positions.
const (
	typeQuantitySet = "IFCELEMENTQUANTITY"
	typePropertySet = "IFCPROPERTYSET"
	typeSingleValue = "IFCPROPERTYSINGLEVALUE"

	attrSetName       = 2
	attrProperties    = 4
	attrQuantities    = 5
	attrPropName      = 0
	attrNominalValue  = 2
	attrQuantityValue = 3
)

// Quantity record types carrying an explicit measure at attrQuantityValue.
var quantityTypes = map[string]string{
	"IFCQUANTITYAREA":   "Area",
	"IFCQUANTITYVOLUME": "Volume",
	"IFCQUANTITYLENGTH": "Length",
	"IFCQUANTITYCOUNT":  "Count",
	"IFCQUANTITYWEIGHT": "Weight",
	"IFCQUANTITYTIME":   "Time",
}

// Heuristic property-name patterns. Names are case-folded before matching so
// localized spellings ("Volumen", "VOLUME") match too.
var (
	areaPattern   = regexp.MustCompile(`area`)
	volumePattern = regexp.MustCompile(`volume|volumen`)
	nameFolder    = cases.Fold()
)

// Options control what the extractor copies beyond Area and Volume.
type Options struct {
	// AllParams copies every quantity and property into Extra.
	AllParams bool

	// ExtraParams lists property names to copy into Extra even without
	// AllParams.
	ExtraParams []string
}

// Field is one named extra value.
type Field struct {
	Name  string
	Value interface{}
}

// Result is the extractor output for one subject. Nil Area/Volume means no
// explicit or heuristic value was found; geometry fallbacks may still fill
// the row later.
type Result struct {
	Area   *float64
	Volume *float64
	Extra  []Field
}

// Model is the view of a decoded model the extractor needs.
type Model interface {
	Record(id int) (*core.Record, bool)
}

// Extract derives named scalar values for one subject from its indexed
// definitions.
//
// Definitions are walked in index encounter order and the first value wins:
// a quantity tagged Area fills the Area slot if still empty, likewise
// Volume; a property whose folded name matches the area/volume heuristics
// fills a slot only if it is still empty when the property is reached. With
// duplicate definitions this means scan order, not any semantic priority,
// decides ties. That behavior is inherited and load-bearing; do not replace
// it with last-wins or merge semantics.
//
// Malformed definitions (missing names, non-numeric values) are skipped.
// Extract never fails; a subject without definitions yields a zero Result.
func Extract(model Model, index *relations.Index, subjectID int, opts Options) Result {
	var result Result
	if model == nil || index == nil {
		return result
	}

	res := resolver.New(model)
	seen := make(map[string]bool)
	wanted := make(map[string]bool, len(opts.ExtraParams))
	for _, name := range opts.ExtraParams {
		wanted[name] = true
	}

	addExtra := func(name string, value interface{}) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		result.Extra = append(result.Extra, Field{Name: name, Value: value})
	}

	for _, def := range index.Definitions(subjectID) {
		switch def.Type {
		case typeQuantitySet:
			extractQuantitySet(res, def, opts, &result, addExtra)
		case typePropertySet:
			extractPropertySet(res, def, opts, wanted, &result, addExtra)
		}
	}

	return result
}

// extractQuantitySet walks the explicit quantities of one quantity set.
func extractQuantitySet(res *resolver.Resolver, def *core.Record, opts Options, result *Result, addExtra func(string, interface{})) {
	setName, _ := def.AttrString(attrSetName)

	list, ok := def.AttrList(attrQuantities)
	if !ok {
		return
	}
	for _, qty := range res.DerefAll(list) {
		tag, known := quantityTypes[qty.Type]
		if !known {
			continue
		}
		value, ok := qty.AttrFloat(attrQuantityValue)
		if !ok {
			continue
		}

		switch tag {
		case "Area":
			if result.Area == nil {
				v := value
				result.Area = &v
			}
		case "Volume":
			if result.Volume == nil {
				v := value
				result.Volume = &v
			}
		}

		if opts.AllParams {
			if name, ok := qty.AttrString(attrPropName); ok {
				addExtra(setName+"."+name, value)
			}
		}
	}
}

// extractPropertySet walks the single-value properties of one property set.
func extractPropertySet(res *resolver.Resolver, def *core.Record, opts Options, wanted map[string]bool, result *Result, addExtra func(string, interface{})) {
	setName, _ := def.AttrString(attrSetName)

	list, ok := def.AttrList(attrProperties)
	if !ok {
		return
	}
	for _, prop := range res.DerefAll(list) {
		if prop.Type != typeSingleValue {
			continue
		}
		name, ok := prop.AttrString(attrPropName)
		if !ok || name == "" {
			continue
		}
		value, hasValue := scalarValue(prop.Attr(attrNominalValue))

		if hasValue {
			// Explicitly requested properties keep their caller-facing
			// name; AllParams copies go under the qualified set name.
			if wanted[name] {
				addExtra(name, value)
			} else if opts.AllParams {
				addExtra(setName+"."+name, value)
			}
		}

		// Heuristic fill of still-empty slots, numeric values only
		num, isNum := core.AsFloat(prop.Attr(attrNominalValue))
		if !isNum {
			continue
		}
		folded := nameFolder.String(name)
		if result.Area == nil && areaPattern.MatchString(folded) {
			v := num
			result.Area = &v
		}
		if result.Volume == nil && volumePattern.MatchString(folded) {
			v := num
			result.Volume = &v
		}
	}
}

// scalarValue coerces a property value to a row scalar. Unsupported value
// kinds report false and the property is treated as absent.
func scalarValue(a core.Attribute) (interface{}, bool) {
	switch v := core.Unwrap(a).(type) {
	case core.Real:
		return float64(v), true
	case core.Int:
		return float64(v), true
	case core.String:
		return string(v), true
	case core.Bool:
		return bool(v), true
	case core.Enum:
		return string(v), true
	default:
		return nil, false
	}
}
