// Package evaluator matches a face's metrics against a rule catalog and
// produces the categorized trait report.
//
// Evaluation is a single synchronous pass with no shared mutable state: the
// catalog is read-only and each call owns its landmark set and report.
package evaluator

import (
	"errors"

	"github.com/kozaktomas/physiognomy/internal/catalog"
	"github.com/kozaktomas/physiognomy/internal/constants"
	"github.com/kozaktomas/physiognomy/internal/landmark"
	"github.com/kozaktomas/physiognomy/internal/metric"
)

// ErrNoLandmarks is returned by Analyze when no landmarks were supplied.
// It is distinct from a report whose categories all fell back to neutral.
var ErrNoLandmarks = errors.New("no landmarks supplied")

// Fallback returns the neutral entry added to a category without matches.
func Fallback(category string) TraitMatch {
	return TraitMatch{
		Trait: category + constants.FallbackTraitSuffix,
		Tags:  []string{constants.TagNeutral, constants.TagBalanced},
	}
}

// Evaluate runs every rule of cat against set.
//
// Within a category all matching rules are emitted in catalog order; there
// is no exclusivity and no short-circuit. Inert rules are skipped. A
// category with no match gets exactly one Fallback entry.
func Evaluate(set landmark.Set, cat *catalog.Catalog) *Report {
	categories := cat.Categories()
	report := &Report{
		categories: make([]CategoryResult, 0, len(categories)),
		index:      make(map[string]int, len(categories)),
	}
	for _, c := range categories {
		report.index[c.Name] = len(report.categories)
		report.categories = append(report.categories, evaluateCategory(set, c))
	}
	return report
}

func evaluateCategory(set landmark.Set, c catalog.Category) CategoryResult {
	result := CategoryResult{Name: c.Name}
	for _, rule := range c.Rules {
		v, ok := rule.Value(set)
		if !ok {
			continue
		}
		if rule.Predicate.Match(rule.Metric, v) {
			result.Traits = append(result.Traits, TraitMatch{Trait: rule.Trait, Tags: tagsOf(rule)})
		}
	}

	if len(result.Traits) == 0 {
		result.Traits = []TraitMatch{Fallback(c.Name)}
		result.Outcome = FallbackApplied
		return result
	}
	result.Outcome = NonEmpty
	return result
}

// tagsOf returns the rule's tags with duplicates removed; never nil.
func tagsOf(rule catalog.Rule) []string {
	out := make([]string, 0, len(rule.Tags))
	seen := make(map[string]bool, len(rule.Tags))
	for _, t := range rule.Tags {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// Analysis is the full result for one face.
type Analysis struct {
	Report    *Report             `json:"report"`
	Metrics   []metric.Result     `json:"metrics"`
	Landmarks []landmark.Landmark `json:"landmarks"`
	Tags      []string            `json:"tags"`
}

// Analyze builds the landmark set, evaluates it and collects every metric.
// Returns ErrNoLandmarks for an empty input.
func Analyze(points []landmark.Landmark, cat *catalog.Catalog) (*Analysis, error) {
	if len(points) == 0 {
		return nil, ErrNoLandmarks
	}
	set := landmark.Build(points)
	report := Evaluate(set, cat)
	return &Analysis{
		Report:    report,
		Metrics:   metric.All(set),
		Landmarks: set.Points(),
		Tags:      report.Tags(),
	}, nil
}
