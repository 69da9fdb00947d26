// Package signature parses NumPy generalized-ufunc (gufunc) signatures, like "(m,n),(n,p)->(m,p)", into
// templates of the core dimensions of each argument.
//
// The grammar is the one NumPy uses for np.vectorize and gufuncs:
//
//	signature  := arguments "->" argument
//	arguments  := argument ("," argument)*
//	argument   := "(" [dimension ("," dimension)*] ")"
//	dimension  := identifier | integer
//
// Whitespace is ignored. An identifier names a dimension whose size is shared everywhere the name
// appears. An integer is a dimension of fixed size. "()" is an argument with no core dimensions.
package signature

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gomlx/gufunc/internal/utils"
	"github.com/janpfeifer/must"
)

// DimKind enumerates the kinds of dimensions in a signature template.
type DimKind int

//go:generate go tool enumer -type=DimKind -trimprefix=Dim -output=gen_dimkind_enumer.go signature.go

const (
	// DimNamed is a dimension referred to by name: all dimensions with the same name have the same size.
	DimNamed DimKind = iota

	// DimFixed is a dimension with a literal size given in the signature.
	DimFixed
)

// DimRef is one core dimension of an argument template: either a name or a fixed size.
type DimRef struct {
	Kind DimKind
	Name string // Set if Kind == DimNamed.
	Size int    // Set if Kind == DimFixed.
}

// Named returns a DimRef for a named dimension.
func Named(name string) DimRef {
	return DimRef{Kind: DimNamed, Name: name}
}

// Fixed returns a DimRef for a dimension of fixed size.
func Fixed(size int) DimRef {
	return DimRef{Kind: DimFixed, Size: size}
}

// String implements fmt.Stringer.
func (d DimRef) String() string {
	if d.Kind == DimFixed {
		return fmt.Sprintf("%d", d.Size)
	}
	return d.Name
}

// ArgTemplate lists the core dimensions of one argument (or of the output), most significant first.
type ArgTemplate struct {
	Dims []DimRef
}

// Rank returns the number of core dimensions of the argument.
func (a ArgTemplate) Rank() int {
	return len(a.Dims)
}

// String implements fmt.Stringer. E.g.: "(m,n)".
func (a ArgTemplate) String() string {
	parts := make([]string, len(a.Dims))
	for i, dim := range a.Dims {
		parts[i] = dim.String()
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// Equal returns whether both templates have the same dimensions.
func (a ArgTemplate) Equal(a2 ArgTemplate) bool {
	return slices.Equal(a.Dims, a2.Dims)
}

// Signature of a gufunc: the core dimensions of each input and of the output.
//
// The output template is not used to generate arrays, only to infer or validate the shape returned
// by the function under test.
type Signature struct {
	Inputs []ArgTemplate
	Output ArgTemplate
}

// NumInputs returns the number of input arguments.
func (s *Signature) NumInputs() int {
	return len(s.Inputs)
}

// Names returns the distinct dimension names of the inputs, in order of first appearance.
// Output names are always a subset of these.
func (s *Signature) Names() []string {
	seen := utils.MakeSet[string]()
	var names []string
	for _, input := range s.Inputs {
		for _, dim := range input.Dims {
			if dim.Kind != DimNamed || seen.Has(dim.Name) {
				continue
			}
			seen.Insert(dim.Name)
			names = append(names, dim.Name)
		}
	}
	return names
}

// HasName returns whether name is a dimension name used by any input.
func (s *Signature) HasName(name string) bool {
	return slices.Contains(s.Names(), name)
}

// String returns the canonical form of the signature, without whitespace.
// Parsing the result yields an equal Signature.
func (s *Signature) String() string {
	parts := make([]string, len(s.Inputs))
	for i, input := range s.Inputs {
		parts[i] = input.String()
	}
	return strings.Join(parts, ",") + "->" + s.Output.String()
}

// Equal returns whether both signatures have the same templates.
func (s *Signature) Equal(s2 *Signature) bool {
	return slices.EqualFunc(s.Inputs, s2.Inputs, ArgTemplate.Equal) && s.Output.Equal(s2.Output)
}

// MustParse is like Parse, but panics on error. Useful for package-level variables and tests.
func MustParse(signature string) *Signature {
	return must.M1(Parse(signature))
}
