package metric

import (
	"encoding/json"
	"math"
	"strconv"
)

// Kind distinguishes numeric metric values from categorical ones.
type Kind int

const (
	KindNumber Kind = iota
	KindLabel
)

// Category labels produced by the categorical metrics.
const (
	Upturned   = "upturned"
	Downturned = "downturned"
	High       = "high"
	Low        = "low"
)

// Value is the result of a metric: a real number or a category label.
type Value struct {
	kind  Kind
	num   float64
	label string
}

// Number returns a numeric value.
func Number(v float64) Value {
	return Value{kind: KindNumber, num: v}
}

// Label returns a categorical value.
func Label(s string) Value {
	return Value{kind: KindLabel, label: s}
}

// Kind reports whether the value is numeric or categorical.
func (v Value) Kind() Kind {
	return v.kind
}

// Number returns the numeric value and true, or 0 and false for a label.
func (v Value) Number() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// Label returns the label and true, or "" and false for a number.
func (v Value) Label() (string, bool) {
	return v.label, v.kind == KindLabel
}

// Equal reports whether both values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	if v.kind == KindLabel {
		return v.label == o.label
	}
	return v.num == o.num
}

func (v Value) String() string {
	if v.kind == KindLabel {
		return v.label
	}
	return strconv.FormatFloat(v.num, 'f', 4, 64)
}

// MarshalJSON encodes a number as a JSON number and a label as a JSON string.
// NaN and infinities, reachable with extreme coordinates, encode as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindLabel {
		return json.Marshal(v.label)
	}
	if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v.num)
}
