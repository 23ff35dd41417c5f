package evaluator

import (
	"bytes"
	"encoding/json"
)

// Outcome is the terminal state of one category's evaluation.
type Outcome int

const (
	// NonEmpty means at least one rule matched.
	NonEmpty Outcome = iota
	// FallbackApplied means no rule matched and the neutral entry was added.
	FallbackApplied
)

func (o Outcome) String() string {
	if o == FallbackApplied {
		return "fallback"
	}
	return "matched"
}

// TraitMatch is one trait emitted for a category.
type TraitMatch struct {
	Trait string   `json:"trait"`
	Tags  []string `json:"tags"`
}

// CategoryResult holds the traits of one category in rule order.
type CategoryResult struct {
	Name    string
	Traits  []TraitMatch
	Outcome Outcome
}

// Report maps each catalog category, in catalog order, to a non-empty list
// of traits. It is built by Evaluate and not modified afterwards.
type Report struct {
	categories []CategoryResult
	index      map[string]int
}

// Categories returns the per-category results in catalog order.
func (r *Report) Categories() []CategoryResult {
	return r.categories
}

// Traits returns the traits of a category, or nil if the category is unknown.
func (r *Report) Traits(category string) []TraitMatch {
	if i, ok := r.index[category]; ok {
		return r.categories[i].Traits
	}
	return nil
}

// Outcome returns how a category terminated.
func (r *Report) Outcome(category string) (Outcome, bool) {
	if i, ok := r.index[category]; ok {
		return r.categories[i].Outcome, true
	}
	return 0, false
}

// Tags returns the union of all tags in the report, in first-seen order.
func (r *Report) Tags() []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range r.categories {
		for _, t := range c.Traits {
			for _, tag := range t.Tags {
				if !seen[tag] {
					seen[tag] = true
					out = append(out, tag)
				}
			}
		}
	}
	return out
}

// MarshalJSON encodes the report as a JSON object whose keys follow
// catalog order.
func (r *Report) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		traits, err := json.Marshal(c.Traits)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(traits)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
