package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/kozaktomas/physiognomy/internal/log"
	"github.com/kozaktomas/physiognomy/internal/metric"
)

//go:embed default.yaml
var defaultYAML []byte

var (
	// ErrUnknownMetric is returned in strict mode for a rule whose metric
	// key has no implementation.
	ErrUnknownMetric = errors.New("unknown metric")

	// ErrConflictingPredicate is returned for a rule that sets more than one
	// predicate kind.
	ErrConflictingPredicate = errors.New("rule sets more than one predicate kind")

	// ErrDuplicateCategory is returned when two categories share a name.
	ErrDuplicateCategory = errors.New("duplicate category")

	// ErrInvalidCatalog wraps schema validation failures.
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// UnknownMetricPolicy decides what happens to rules referencing a metric
// the engine does not implement.
type UnknownMetricPolicy int

const (
	// Lenient keeps such rules as inert and logs a warning at load.
	Lenient UnknownMetricPolicy = iota
	// Strict rejects the catalog.
	Strict
)

// fileCatalog is the on-disk YAML shape.
type fileCatalog struct {
	Categories []fileCategory `yaml:"categories" validate:"dive"`
}

type fileCategory struct {
	Name  string     `yaml:"name" validate:"required"`
	Rules []fileRule `yaml:"rules" validate:"dive"`
}

type fileRule struct {
	Metric    string    `yaml:"metric" validate:"required"`
	Equals    yaml.Node `yaml:"equals"`
	Threshold *float64  `yaml:"threshold"`
	Min       *float64  `yaml:"min"`
	Max       *float64  `yaml:"max"`
	Trait     string    `yaml:"trait" validate:"required"`
	Tags      []string  `yaml:"tags"`
}

var validate = validator.New()

// Parse decodes a YAML catalog and resolves its metric keys.
func Parse(data []byte, policy UnknownMetricPolicy) (*Catalog, error) {
	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	if err := validate.Struct(fc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	seen := make(map[string]bool, len(fc.Categories))
	categories := make([]Category, 0, len(fc.Categories))
	for _, fcat := range fc.Categories {
		if seen[fcat.Name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCategory, fcat.Name)
		}
		seen[fcat.Name] = true

		cat := Category{Name: fcat.Name, Rules: make([]Rule, 0, len(fcat.Rules))}
		for i, fr := range fcat.Rules {
			rule, err := parseRule(fcat.Name, fr, policy)
			if err != nil {
				return nil, fmt.Errorf("category %s rule %d: %w", fcat.Name, i, err)
			}
			cat.Rules = append(cat.Rules, rule)
		}
		categories = append(categories, cat)
	}
	return newCatalog(categories), nil
}

func parseRule(category string, fr fileRule, policy UnknownMetricPolicy) (Rule, error) {
	pred, err := parsePredicate(fr)
	if err != nil {
		return Rule{}, err
	}

	rule := Rule{
		Category:  category,
		Metric:    metric.Key(fr.Metric),
		Predicate: pred,
		Trait:     fr.Trait,
		Tags:      fr.Tags,
	}

	fn, ok := metric.Lookup(fr.Metric)
	if !ok {
		if policy == Strict {
			return Rule{}, fmt.Errorf("%w: %s", ErrUnknownMetric, fr.Metric)
		}
		log.Warn(log.Fields{
			"category": category,
			"metric":   fr.Metric,
		}, "catalog rule references unknown metric, rule is inert")
		return rule, nil
	}
	rule.fn = fn
	return rule, nil
}

// parsePredicate picks the predicate kind from the fields present. A rule
// without any condition is an unbounded range.
func parsePredicate(fr fileRule) (Predicate, error) {
	hasEquals := fr.Equals.Kind != 0
	hasThreshold := fr.Threshold != nil
	hasRange := fr.Min != nil || fr.Max != nil

	kinds := 0
	for _, b := range []bool{hasEquals, hasThreshold, hasRange} {
		if b {
			kinds++
		}
	}
	if kinds > 1 {
		return Predicate{}, ErrConflictingPredicate
	}

	switch {
	case hasEquals:
		if fr.Equals.Kind != yaml.ScalarNode {
			return Predicate{}, fmt.Errorf("%w: equals must be a scalar", ErrInvalidCatalog)
		}
		return Equals(fr.Equals.Value), nil
	case hasThreshold:
		return Threshold(*fr.Threshold), nil
	}

	lo, hi := math.Inf(-1), math.Inf(1)
	if fr.Min != nil {
		lo = *fr.Min
	}
	if fr.Max != nil {
		hi = *fr.Max
	}
	return Range(lo, hi), nil
}

// Load reads and parses a catalog file.
func Load(path string, policy UnknownMetricPolicy) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	return Parse(data, policy)
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog, parsed leniently on first use.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultYAML, Lenient)
		if err != nil {
			// This is an embedded file so this error should never happen in practice
			panic("failed to parse embedded default.yaml: " + err.Error())
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Open returns the catalog at path, or the embedded default when path is empty.
// The embedded catalog references metrics the engine does not implement, so
// opening it with Strict always fails.
func Open(path string, policy UnknownMetricPolicy) (*Catalog, error) {
	if path == "" {
		if policy == Strict {
			return Parse(defaultYAML, Strict)
		}
		return Default(), nil
	}
	return Load(path, policy)
}
