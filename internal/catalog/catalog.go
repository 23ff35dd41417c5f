// Package catalog holds the declarative rule table that maps facial metrics
// to trait descriptions.
//
// A Catalog is parsed once, resolves every rule's metric key against the
// metric package, and is immutable afterwards. It is safe for concurrent use
// by any number of evaluations.
package catalog

import (
	"github.com/kozaktomas/physiognomy/internal/landmark"
	"github.com/kozaktomas/physiognomy/internal/metric"
)

// Rule binds a metric and a predicate to a trait description.
type Rule struct {
	Category  string     `json:"category"`
	Metric    metric.Key `json:"metric"`
	Predicate Predicate  `json:"predicate"`
	Trait     string     `json:"trait"`
	Tags      []string   `json:"tags"`
	fn        metric.Func
}

// Known reports whether the rule's metric resolved at load time. Rules with
// an unknown metric are inert and never match.
func (r Rule) Known() bool {
	return r.fn != nil
}

// Value computes the rule's metric against set. The second result is false
// for inert rules.
func (r Rule) Value(set landmark.Set) (metric.Value, bool) {
	if r.fn == nil {
		return metric.Value{}, false
	}
	return r.fn(set), true
}

// Condition describes the rule's predicate, e.g. "R_upper >= 0.35".
func (r Rule) Condition() string {
	return string(r.Metric) + " " + r.Predicate.Describe(r.Metric)
}

// Category is a named, ordered group of rules.
type Category struct {
	Name  string `json:"name"`
	Rules []Rule `json:"rules"`
}

// Catalog is an ordered mapping from category name to rules.
type Catalog struct {
	categories []Category
	byName     map[string]int
	byFolded   map[string]int
}

func newCatalog(categories []Category) *Catalog {
	c := &Catalog{
		categories: categories,
		byName:     make(map[string]int, len(categories)),
		byFolded:   make(map[string]int, len(categories)),
	}
	for i, cat := range categories {
		c.byName[cat.Name] = i
		c.byFolded[FoldName(cat.Name)] = i
	}
	return c
}

// New builds a catalog directly from categories, resolving every rule's
// metric. Unknown metrics are kept as inert rules. Intended for tests and
// programmatic catalogs; file catalogs go through Parse.
func New(categories ...Category) *Catalog {
	out := make([]Category, len(categories))
	for i, cat := range categories {
		rules := make([]Rule, len(cat.Rules))
		for j, r := range cat.Rules {
			r.Category = cat.Name
			r.fn, _ = metric.Lookup(string(r.Metric))
			rules[j] = r
		}
		out[i] = Category{Name: cat.Name, Rules: rules}
	}
	return newCatalog(out)
}

// Categories returns the categories in catalog order. The returned slice
// must not be modified.
func (c *Catalog) Categories() []Category {
	return c.categories
}

// Names returns the category names in catalog order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.categories))
	for i, cat := range c.categories {
		out[i] = cat.Name
	}
	return out
}

// Category finds a category by exact name, falling back to a case- and
// diacritic-insensitive match ("Mắt" finds "mat").
func (c *Catalog) Category(name string) (Category, bool) {
	if i, ok := c.byName[name]; ok {
		return c.categories[i], true
	}
	if i, ok := c.byFolded[FoldName(name)]; ok {
		return c.categories[i], true
	}
	return Category{}, false
}

// Rules returns every rule in catalog order.
func (c *Catalog) Rules() []Rule {
	var out []Rule
	for _, cat := range c.categories {
		out = append(out, cat.Rules...)
	}
	return out
}

// Unknown returns the inert rules whose metric did not resolve.
func (c *Catalog) Unknown() []Rule {
	var out []Rule
	for _, r := range c.Rules() {
		if !r.Known() {
			out = append(out, r)
		}
	}
	return out
}
