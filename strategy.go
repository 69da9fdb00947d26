package gufunc

import (
	"fmt"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/gufunc/signature"
	"github.com/gomlx/gufunc/tensors"
	"github.com/gomlx/gufunc/types/shapes"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"pgregory.net/rapid"
)

// Example is one generated input for a gufunc: the arrays, plus the sizes used to build their shapes.
type Example[T dtypes.Supported] struct {
	// Args holds one tensor per input of the signature, in order.
	Args []*tensors.Tensor[T]

	// Assignment of the dimension names of the signature.
	Assignment Assignment

	// Extra holds the extra (broadcast) dimensions of each argument.
	Extra ExtraDimsPlan
}

// Shapes returns the dimensions of each argument of an Example, in order.
func (e *Example[T]) Shapes() [][]int {
	dims := make([][]int, len(e.Args))
	for ii, arg := range e.Args {
		dims[ii] = arg.Dimensions()
	}
	return dims
}

// drawShapes runs the resolver, the extra dimensions generator and the assembler, in this order.
func (s *Strategy) drawShapes(t *rapid.T) (Assignment, ExtraDimsPlan, [][]int) {
	assignment := s.drawAssignment(t)
	plan := s.drawExtraDims(t)
	return assignment, plan, assembleShapes(s.sig, plan, assignment)
}

// Shapes returns a generator of the dimensions of each input of the signature: one []int per input.
//
// Names of the signature resolve to the same size everywhere, and extra dimensions (if enabled) are
// broadcast compatible across inputs. Shrinking goes towards the minimum sides and fewer extra dimensions.
func (s *Strategy) Shapes() *rapid.Generator[[][]int] {
	if len(s.names) == 0 && s.maxSlots == 0 {
		// Shapes are fully fixed by the signature: there is nothing to draw.
		return rapid.Map(rapid.Just(s.sig), func(sig *signature.Signature) [][]int {
			return assembleShapes(sig, ExtraDimsPlan{}, Assignment{})
		})
	}
	return rapid.Custom(func(t *rapid.T) [][]int {
		_, _, dims := s.drawShapes(t)
		return dims
	})
}

// ArgsWithExample returns a generator of Example: one tensor per input of the signature, plus the
// assignment and extra dimensions used to shape them.
//
// The elements generator is used for every element of every tensor. If nil, DefaultElements[T] is used,
// and an error is returned if T has no default.
//
// All shapes are drawn before any element: the shrinker can then reduce the shapes of a failing
// example before simplifying its contents.
func ArgsWithExample[T dtypes.Supported](s *Strategy, elements *rapid.Generator[T]) (*rapid.Generator[*Example[T]], error) {
	if s == nil {
		return nil, errors.New("gufunc.ArgsWithExample requires a Strategy")
	}
	if elements == nil {
		var err error
		elements, err = DefaultElements[T]()
		if err != nil {
			return nil, err
		}
	}
	dtype := dtypes.FromGenericsType[T]()
	unique := s.opts.Unique
	return rapid.Custom(func(t *rapid.T) *Example[T] {
		assignment, plan, allDims := s.drawShapes(t)
		example := &Example[T]{
			Args:       make([]*tensors.Tensor[T], len(allDims)),
			Assignment: assignment,
			Extra:      plan,
		}
		for arg, dims := range allDims {
			size := shapes.Make(dtype, dims...).Size()
			var contents *rapid.Generator[[]T]
			if unique {
				contents = rapid.SliceOfNDistinct(elements, size, size, func(v T) any { return v })
			} else {
				contents = rapid.SliceOfN(elements, size, size)
			}
			flat := contents.Draw(t, fmt.Sprintf("arg%d", arg))
			tensor, err := tensors.FromFlat(flat, dims...)
			if err != nil {
				// Shapes are valid by construction.
				panic(err)
			}
			example.Args[arg] = tensor
		}
		return example
	}), nil
}

// Args returns a generator of one tensor per input of the signature, in order.
// See ArgsWithExample for details.
func Args[T dtypes.Supported](s *Strategy, elements *rapid.Generator[T]) (*rapid.Generator[[]*tensors.Tensor[T]], error) {
	examples, err := ArgsWithExample(s, elements)
	if err != nil {
		return nil, err
	}
	return rapid.Map(examples, func(e *Example[T]) []*tensors.Tensor[T] { return e.Args }), nil
}

// MustArgs is like Args, but panics on error.
func MustArgs[T dtypes.Supported](s *Strategy, elements *rapid.Generator[T]) *rapid.Generator[[]*tensors.Tensor[T]] {
	return must.M1(Args(s, elements))
}

// MapArgs applies fn to each generated tensor, e.g. to convert them to another array type.
//
// fn is a pure post-processing step: it never draws, so shrinking is unaffected.
func MapArgs[T dtypes.Supported, U any](gen *rapid.Generator[[]*tensors.Tensor[T]], fn func(*tensors.Tensor[T]) U) *rapid.Generator[[]U] {
	return rapid.Map(gen, func(args []*tensors.Tensor[T]) []U {
		mapped := make([]U, len(args))
		for ii, arg := range args {
			mapped[ii] = fn(arg)
		}
		return mapped
	})
}
