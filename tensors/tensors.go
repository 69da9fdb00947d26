// Package tensors implements Tensor, a concrete multi-dimensional array of one of the dtypes
// supported by github.com/gomlx/gopjrt/dtypes, stored flat in row-major order.
//
// These are the arrays generated for each argument of a gufunc signature.
package tensors

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/gufunc/types/shapes"
	"github.com/pkg/errors"
)

// Tensor is a multi-dimensional array with elements of type T.
type Tensor[T dtypes.Supported] struct {
	shape shapes.Shape
	flat  []T
}

// New returns a Tensor filled with zeros with the given dimensions.
func New[T dtypes.Supported](dimensions ...int) (*Tensor[T], error) {
	shape := shapes.Make(dtypes.FromGenericsType[T](), dimensions...)
	if !shape.Ok() {
		return nil, errors.Errorf("invalid shape %s for tensors.New", shape)
	}
	return &Tensor[T]{shape: shape, flat: make([]T, shape.Size())}, nil
}

// FromFlat returns a Tensor with the given dimensions that takes ownership of flat, which must have
// exactly as many elements as the dimensions define.
func FromFlat[T dtypes.Supported](flat []T, dimensions ...int) (*Tensor[T], error) {
	shape := shapes.Make(dtypes.FromGenericsType[T](), dimensions...)
	if !shape.Ok() {
		return nil, errors.Errorf("invalid shape %s for tensors.FromFlat", shape)
	}
	if len(flat) != shape.Size() {
		return nil, errors.Errorf("tensors.FromFlat got %d elements, but shape %s requires %d",
			len(flat), shape, shape.Size())
	}
	return &Tensor[T]{shape: shape, flat: flat}, nil
}

// FromValue returns a Tensor with the contents of a (possibly multi-level) slice of T, or a scalar T.
//
// Example:
//
//	t, err := tensors.FromValue[float32]([][]float32{{1, 2}, {3, 4}}) // Shape (Float32)[2 2]
func FromValue[T dtypes.Supported](value any) (*Tensor[T], error) {
	shape, err := shapes.FromAnyValue(value)
	if err != nil {
		return nil, err
	}
	if want := dtypes.FromGenericsType[T](); shape.DType != want {
		return nil, errors.Errorf("tensors.FromValue[%s] got value of shape %s", want, shape)
	}
	flat := make([]T, 0, shape.Size())
	var collect func(v reflect.Value)
	collect = func(v reflect.Value) {
		if v.Kind() == reflect.Slice {
			for ii := range v.Len() {
				collect(v.Index(ii))
			}
			return
		}
		flat = append(flat, v.Interface().(T))
	}
	collect(reflect.ValueOf(value))
	return &Tensor[T]{shape: shape, flat: flat}, nil
}

// Shape returns the shape of the tensor.
func (t *Tensor[T]) Shape() shapes.Shape {
	return t.shape
}

// DType returns the dtype of the tensor elements.
func (t *Tensor[T]) DType() dtypes.DType {
	return t.shape.DType
}

// Rank returns the number of dimensions of the tensor.
func (t *Tensor[T]) Rank() int {
	return t.shape.Rank()
}

// Size returns the number of elements of the tensor.
func (t *Tensor[T]) Size() int {
	return len(t.flat)
}

// Dimensions returns a copy of the tensor dimensions.
func (t *Tensor[T]) Dimensions() []int {
	return slices.Clone(t.shape.Dimensions)
}

// Flat returns the elements of the tensor in row-major order. It is not a copy: changes are
// reflected in the tensor.
func (t *Tensor[T]) Flat() []T {
	return t.flat
}

// flatIndex converts indices to the position in the flat data, accepting negative indices.
func (t *Tensor[T]) flatIndex(indices []int) (int, error) {
	if len(indices) != t.Rank() {
		return 0, errors.Errorf("tensor of shape %s indexed with %d indices %v", t.shape, len(indices), indices)
	}
	var pos int
	for axis, idx := range indices {
		dim := t.shape.Dimensions[axis]
		if idx < 0 {
			idx += dim
		}
		if idx < 0 || idx >= dim {
			return 0, errors.Errorf("index %v out of bounds for tensor of shape %s", indices, t.shape)
		}
		pos = pos*dim + idx
	}
	return pos, nil
}

// At returns the element at the given indices, one per axis. It panics if the indices are invalid.
func (t *Tensor[T]) At(indices ...int) T {
	pos, err := t.flatIndex(indices)
	if err != nil {
		panic(err)
	}
	return t.flat[pos]
}

// Set the element at the given indices, one per axis. It panics if the indices are invalid.
func (t *Tensor[T]) Set(value T, indices ...int) {
	pos, err := t.flatIndex(indices)
	if err != nil {
		panic(err)
	}
	t.flat[pos] = value
}

// Value returns the tensor contents as a multi-level slice of T (e.g. [][]float32 for a rank-2
// tensor), or as a T for a scalar. It is the inverse of FromValue, except for tensors with a zero
// dimension, whose empty slices are still returned.
func (t *Tensor[T]) Value() any {
	if t.Rank() == 0 {
		return t.flat[0]
	}
	elemType := reflect.TypeOf(t.flat).Elem()
	var build func(axis, offset int) reflect.Value
	build = func(axis, offset int) reflect.Value {
		sliceType := elemType
		for range t.Rank() - axis {
			sliceType = reflect.SliceOf(sliceType)
		}
		dim := t.shape.Dimensions[axis]
		if axis == t.Rank()-1 {
			return reflect.ValueOf(slices.Clone(t.flat[offset : offset+dim]))
		}
		stride := 1
		for _, d := range t.shape.Dimensions[axis+1:] {
			stride *= d
		}
		result := reflect.MakeSlice(sliceType, dim, dim)
		for ii := range dim {
			result.Index(ii).Set(build(axis+1, offset+ii*stride))
		}
		return result
	}
	return build(0, 0).Interface()
}

// Clone returns a deep copy of the tensor.
func (t *Tensor[T]) Clone() *Tensor[T] {
	return &Tensor[T]{shape: t.shape.Clone(), flat: slices.Clone(t.flat)}
}

// String implements fmt.Stringer.
func (t *Tensor[T]) String() string {
	if t.Rank() == 0 {
		return fmt.Sprintf("%s: %v", t.shape, t.flat[0])
	}
	return fmt.Sprintf("%s: %v", t.shape, t.Value())
}
