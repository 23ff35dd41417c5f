// Package landmark holds the named 2D anchor points detected on one face.
//
// All points of a face share one coordinate frame with y growing downward.
// A Set is built once per analysis and is never modified afterwards, so it
// can be read from any goroutine without locking.
package landmark

import "sort"

// Landmark is one semantically named point on a face.
type Landmark struct {
	Name string  `json:"name" yaml:"name" validate:"required"`
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
}

// Set is a read-only, name-indexed view over the landmarks of one face.
// The zero value is an empty set.
type Set struct {
	byName map[string]Landmark
}

// Build indexes points by name. When a name appears more than once the
// last occurrence wins.
func Build(points []Landmark) Set {
	byName := make(map[string]Landmark, len(points))
	for _, p := range points {
		byName[p.Name] = p
	}
	return Set{byName: byName}
}

// Lookup returns the landmark with the given name. A missing name is a
// normal state, not an error.
func (s Set) Lookup(name string) (Landmark, bool) {
	p, ok := s.byName[name]
	return p, ok
}

// Has reports whether every given name is present.
func (s Set) Has(names ...string) bool {
	for _, n := range names {
		if _, ok := s.byName[n]; !ok {
			return false
		}
	}
	return true
}

// Len returns the number of distinct names in the set.
func (s Set) Len() int {
	return len(s.byName)
}

// Names returns the distinct landmark names in sorted order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s.byName))
	for n := range s.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Points returns the landmarks sorted by name.
func (s Set) Points() []Landmark {
	names := s.Names()
	out := make([]Landmark, len(names))
	for i, n := range names {
		out[i] = s.byName[n]
	}
	return out
}
