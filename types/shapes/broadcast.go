package shapes

import (
	"github.com/pkg/errors"
)

// BroadcastDimensions returns the dimensions resulting from broadcasting all the given dimensions
// together, following NumPy rules:
//
//   - Dimensions are aligned to the right (least significant axis).
//   - Missing leading axes are treated as 1.
//   - On each axis the sizes must be all equal, except for the ones that are 1.
//
// A zero-sized axis broadcasts with 1 to 0. No inputs broadcast to a scalar (empty dimensions).
//
// Examples:
//
//	(3, 1) + (3, 5) → (3, 5)
//	(5) + (2, 1, 5) → (2, 1, 5)
//	(0) + (1) → (0)
//	(3, 4) + (3, 5) → error
func BroadcastDimensions(dimensions ...[]int) ([]int, error) {
	var rank int
	for _, dims := range dimensions {
		rank = max(rank, len(dims))
	}
	output := make([]int, rank)
	for ii := range output {
		output[ii] = 1
	}
	for _, dims := range dimensions {
		offset := rank - len(dims)
		for axis, dim := range dims {
			if dim < 0 {
				return nil, errors.Errorf("negative dimension %d in %v cannot be broadcast", dim, dims)
			}
			outAxis := offset + axis
			switch {
			case dim == 1:
				// Always compatible.
			case output[outAxis] == 1:
				output[outAxis] = dim
			case output[outAxis] != dim:
				return nil, errors.Errorf("dimensions %v are not broadcast compatible: axis -%d has sizes %d and %d",
					dimensions, rank-outAxis, output[outAxis], dim)
			}
		}
	}
	return output, nil
}

// Broadcast returns the shape resulting from broadcasting the given shapes together with NumPy
// rules (see BroadcastDimensions). All shapes must have the same dtype.
func Broadcast(inputs ...Shape) (output Shape, err error) {
	if len(inputs) == 0 {
		err = errors.New("Broadcast requires at least one shape")
		return
	}
	allDims := make([][]int, len(inputs))
	for ii, input := range inputs {
		if !input.Ok() {
			err = errors.Errorf("invalid shape #%d %s for Broadcast", ii, input)
			return
		}
		if input.DType != inputs[0].DType {
			err = errors.Errorf("dtypes for Broadcast must match, got %s and %s", inputs[0], input)
			return
		}
		allDims[ii] = input.Dimensions
	}
	dims, err := BroadcastDimensions(allDims...)
	if err != nil {
		return
	}
	output = Shape{DType: inputs[0].DType, Dimensions: dims}
	return
}

// BroadcastCompatible returns whether the given dimensions can be broadcast together.
func BroadcastCompatible(dimensions ...[]int) bool {
	_, err := BroadcastDimensions(dimensions...)
	return err == nil
}
