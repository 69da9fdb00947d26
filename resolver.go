package gufunc

import (
	"github.com/gomlx/gufunc/signature"
	"github.com/pkg/errors"
	"pgregory.net/rapid"
)

// Assignment maps each dimension name of a signature to its concrete size in one generated example.
// The same name always maps to the same size across all arguments of the example.
type Assignment map[string]int

// Size returns the concrete size of a template dimension: the fixed size, or the assigned size of the name.
// It panics if a named dimension is not assigned.
func (a Assignment) Size(dim signature.DimRef) int {
	if dim.Kind == signature.DimFixed {
		return dim.Size
	}
	size, found := a[dim.Name]
	if !found {
		panic(errors.Errorf("dimension %q has no assigned size in %v", dim.Name, a))
	}
	return size
}

// CoreShape returns the concrete core dimensions of the given template.
func (a Assignment) CoreShape(template signature.ArgTemplate) []int {
	dims := make([]int, template.Rank())
	for ii, dim := range template.Dims {
		dims[ii] = a.Size(dim)
	}
	return dims
}

// drawAssignment draws one size per distinct dimension name, in order of first appearance.
// Each size shrinks towards the minimum of its bounds.
func (s *Strategy) drawAssignment(t *rapid.T) Assignment {
	assignment := make(Assignment, len(s.names))
	for ii, name := range s.names {
		bounds := s.nameBounds[ii]
		assignment[name] = rapid.IntRange(bounds.Min, bounds.Max).Draw(t, name)
	}
	return assignment
}
