// Package shapeinference calculates the output shape of a vectorized gufunc call and validates its inputs.
//
// A gufunc with signature "(m,n),(n,p)->(m,p)" called on inputs with extra leading dimensions loops over
// them: the extra (loop) dimensions of all inputs are broadcast together with the standard broadcasting
// rules, and the output shape is the broadcast loop dimensions followed by the output core dimensions.
//
// This can be used to check the shape returned by a function under test for generated inputs.
package shapeinference

import (
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/gufunc/signature"
	"github.com/gomlx/gufunc/types/shapes"
	"github.com/pkg/errors"
)

// CoreSizes splits each input shape in loop dimensions and core dimensions, and returns the size of each
// dimension name along with the broadcast loop dimensions.
//
// It returns an error if an input has fewer dimensions than its template, if a fixed dimension doesn't
// match, if a dimension name has different sizes in different places, or if the loop dimensions can't
// be broadcast.
func CoreSizes(sig *signature.Signature, inputs ...shapes.Shape) (sizes map[string]int, loopDims []int, err error) {
	if len(inputs) != sig.NumInputs() {
		err = errors.Errorf("signature %q takes %d inputs, got %d", sig, sig.NumInputs(), len(inputs))
		return
	}
	sizes = make(map[string]int)
	allLoopDims := make([][]int, len(inputs))
	for ii, input := range inputs {
		if !input.Ok() {
			err = errors.Errorf("invalid shape %s for input #%d of %q", input, ii, sig)
			return
		}
		template := sig.Inputs[ii]
		numLoopDims := input.Rank() - template.Rank()
		if numLoopDims < 0 {
			err = errors.Errorf("input #%d of %q requires at least %d dimensions %s, got shape %s",
				ii, sig, template.Rank(), template, input)
			return
		}
		allLoopDims[ii] = input.Dimensions[:numLoopDims]
		for axis, dim := range template.Dims {
			size := input.Dimensions[numLoopDims+axis]
			switch dim.Kind {
			case signature.DimFixed:
				if size != dim.Size {
					err = errors.Errorf("input #%d of %q has fixed dimension %d at axis %d, got shape %s",
						ii, sig, dim.Size, numLoopDims+axis, input)
					return
				}
			case signature.DimNamed:
				previous, found := sizes[dim.Name]
				if found && previous != size {
					err = errors.Errorf("dimension %q of %q has size %d, but input #%d (shape %s) has size %d",
						dim.Name, sig, previous, ii, input, size)
					return
				}
				sizes[dim.Name] = size
			}
		}
	}
	loopDims, err = shapes.BroadcastDimensions(allLoopDims...)
	if err != nil {
		err = errors.WithMessagef(err, "loop dimensions of inputs of %q", sig)
		return
	}
	return
}

// Gufunc returns the expected output shape of calling a vectorized gufunc with the given input shapes.
// The output dtype is taken from the first input.
//
// See CoreSizes for the errors returned.
func Gufunc(sig *signature.Signature, inputs ...shapes.Shape) (output shapes.Shape, err error) {
	sizes, loopDims, err := CoreSizes(sig, inputs...)
	if err != nil {
		return
	}
	output = Output(sig, inputs[0].DType, sizes, loopDims)
	return
}

// Output builds the output shape from the results of CoreSizes: the loop dimensions followed by the
// output core dimensions.
func Output(sig *signature.Signature, dtype dtypes.DType, sizes map[string]int, loopDims []int) shapes.Shape {
	output := shapes.Make(dtype, loopDims...)
	for _, dim := range sig.Output.Dims {
		if dim.Kind == signature.DimFixed {
			output.Dimensions = append(output.Dimensions, dim.Size)
			continue
		}
		output.Dimensions = append(output.Dimensions, sizes[dim.Name])
	}
	return output
}

// CheckOutput returns an error if output doesn't have the dimensions expected from calling a gufunc
// with the given input shapes. DTypes are not checked.
func CheckOutput(sig *signature.Signature, inputs []shapes.Shape, output shapes.Shape) error {
	expected, err := Gufunc(sig, inputs...)
	if err != nil {
		return err
	}
	if !expected.EqualDimensions(output) {
		return errors.Errorf("output of %q for inputs %v should have dimensions %v, got shape %s",
			sig, inputs, expected.Dimensions, output)
	}
	return nil
}
