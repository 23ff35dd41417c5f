package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/kozaktomas/physiognomy/internal/metric"
)

// PredicateKind is the match condition kind of a rule.
type PredicateKind string

const (
	KindEquals    PredicateKind = "equals"
	KindThreshold PredicateKind = "threshold"
	KindRange     PredicateKind = "range"
)

// Predicate is a tagged union over the three match conditions. Exactly one
// kind is set per rule, decided when the catalog is parsed.
type Predicate struct {
	kind      PredicateKind
	label     string
	threshold float64
	min       float64
	max       float64
}

// Equals matches a categorical value equal to label.
func Equals(label string) Predicate {
	return Predicate{kind: KindEquals, label: label}
}

// Threshold matches against a single bound. The comparison direction
// depends on the metric, see Match.
func Threshold(t float64) Predicate {
	return Predicate{kind: KindThreshold, threshold: t}
}

// Range matches lo <= value <= hi. Use math.Inf for an open side.
func Range(lo, hi float64) Predicate {
	return Predicate{kind: KindRange, min: lo, max: hi}
}

// AtLeast is a range open above.
func AtLeast(lo float64) Predicate {
	return Range(lo, math.Inf(1))
}

// AtMost is a range open below.
func AtMost(hi float64) Predicate {
	return Range(math.Inf(-1), hi)
}

// Kind returns the predicate kind.
func (p Predicate) Kind() PredicateKind {
	return p.kind
}

// thresholdAtMost reports whether a threshold on key is an upper bound.
// Only the facial-thirds imbalance is better when smaller.
func thresholdAtMost(key metric.Key) bool {
	return key == metric.TamDinhDiff
}

// Match evaluates the predicate for the metric key against v.
//
// Numeric predicates never match a label and Equals never matches a number.
// A threshold on tam_dinh_diff matches v <= t; on any other metric v >= t.
func (p Predicate) Match(key metric.Key, v metric.Value) bool {
	switch p.kind {
	case KindEquals:
		l, ok := v.Label()
		return ok && l == p.label
	case KindThreshold:
		n, ok := v.Number()
		if !ok {
			return false
		}
		if thresholdAtMost(key) {
			return n <= p.threshold
		}
		return n >= p.threshold
	case KindRange:
		n, ok := v.Number()
		return ok && p.min <= n && n <= p.max
	}
	return false
}

// Describe renders the predicate as a short condition on key, e.g. ">= 0.35".
func (p Predicate) Describe(key metric.Key) string {
	switch p.kind {
	case KindEquals:
		return "== " + p.label
	case KindThreshold:
		if thresholdAtMost(key) {
			return "<= " + formatBound(p.threshold)
		}
		return ">= " + formatBound(p.threshold)
	case KindRange:
		switch {
		case math.IsInf(p.min, -1) && math.IsInf(p.max, 1):
			return "any"
		case math.IsInf(p.min, -1):
			return "<= " + formatBound(p.max)
		case math.IsInf(p.max, 1):
			return ">= " + formatBound(p.min)
		}
		return fmt.Sprintf("in [%s, %s]", formatBound(p.min), formatBound(p.max))
	}
	return "?"
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// predicateJSON omits open range bounds, which JSON cannot encode.
type predicateJSON struct {
	Kind      PredicateKind `json:"kind"`
	Equals    *string       `json:"equals,omitempty"`
	Threshold *float64      `json:"threshold,omitempty"`
	Min       *float64      `json:"min,omitempty"`
	Max       *float64      `json:"max,omitempty"`
}

// MarshalJSON encodes the predicate with only the fields of its kind.
func (p Predicate) MarshalJSON() ([]byte, error) {
	out := predicateJSON{Kind: p.kind}
	switch p.kind {
	case KindEquals:
		out.Equals = &p.label
	case KindThreshold:
		out.Threshold = &p.threshold
	case KindRange:
		if !math.IsInf(p.min, 0) {
			out.Min = &p.min
		}
		if !math.IsInf(p.max, 0) {
			out.Max = &p.max
		}
	}
	return json.Marshal(out)
}
