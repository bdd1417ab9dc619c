package impact

// Field kinds reported in a Catalogue.
const (
	KindEnum   = "enum"
	KindNumber = "number"
)

// FieldSpec documents one input field of a facet.
type FieldSpec struct {
	Name    string   `json:"name"`
	Kind    string   `json:"kind"`
	Values  []string `json:"values,omitempty"`
	Default string   `json:"default,omitempty"`
	Unit    string   `json:"unit,omitempty"`
}

// Catalogue describes a facet to callers: its fields, enum values, defaults
// and adjustment order.
type Catalogue struct {
	Facet   string      `json:"facet"`
	Unit    string      `json:"unit"`
	Primary string      `json:"primaryDriver"`
	Modes   []Mode      `json:"modes"`
	Steps   []string    `json:"steps"`
	Fields  []FieldSpec `json:"fields"`
}

// Estimator is implemented by every facet.
type Estimator[In any] interface {
	Estimate(in In) Result
	Explain(in In) []TraceEntry
	Describe() Catalogue
}

// Enum builds an enum FieldSpec.
func Enum(name, def string, values ...string) FieldSpec {
	return FieldSpec{Name: name, Kind: KindEnum, Values: values, Default: def}
}

// Number builds a numeric FieldSpec.
func Number(name, unit string) FieldSpec {
	return FieldSpec{Name: name, Kind: KindNumber, Unit: unit}
}
