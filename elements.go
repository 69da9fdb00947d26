package gufunc

import (
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
	"github.com/x448/float16"
	"pgregory.net/rapid"
)

// DefaultFloatRange bounds the default elements of float and complex dtypes to
// [-DefaultFloatRange, DefaultFloatRange]. Values are always finite.
const DefaultFloatRange = 1e6

// float16Range bounds the default elements of Float16, whose largest finite value is 65504.
const float16Range = 1e3

// DefaultElements returns the generator used for the elements of arrays of dtype T when none is given.
//
// Integers and booleans cover the whole range of the type; floats and complex numbers are finite and
// bounded by DefaultFloatRange. All of them shrink towards zero (or false).
//
// It returns an error for dtypes without a default, for which an explicit generator must be given.
func DefaultElements[T dtypes.Supported]() (*rapid.Generator[T], error) {
	var zero T
	var gen any
	switch any(zero).(type) {
	case bool:
		gen = rapid.Bool()
	case int:
		gen = rapid.Int()
	case int8:
		gen = rapid.Int8()
	case int16:
		gen = rapid.Int16()
	case int32:
		gen = rapid.Int32()
	case int64:
		gen = rapid.Int64()
	case uint:
		gen = rapid.Uint()
	case uint8:
		gen = rapid.Uint8()
	case uint16:
		gen = rapid.Uint16()
	case uint32:
		gen = rapid.Uint32()
	case uint64:
		gen = rapid.Uint64()
	case float32:
		gen = rapid.Float32Range(-DefaultFloatRange, DefaultFloatRange)
	case float64:
		gen = rapid.Float64Range(-DefaultFloatRange, DefaultFloatRange)
	case float16.Float16:
		gen = rapid.Map(rapid.Float32Range(-float16Range, float16Range), float16.Fromfloat32)
	case complex64:
		parts := rapid.Float32Range(-DefaultFloatRange, DefaultFloatRange)
		gen = rapid.Custom(func(t *rapid.T) complex64 {
			return complex(parts.Draw(t, "real"), parts.Draw(t, "imag"))
		})
	case complex128:
		parts := rapid.Float64Range(-DefaultFloatRange, DefaultFloatRange)
		gen = rapid.Custom(func(t *rapid.T) complex128 {
			return complex(parts.Draw(t, "real"), parts.Draw(t, "imag"))
		})
	default:
		return nil, errors.Errorf("no default elements generator for dtype %s, one must be given explicitly",
			dtypes.FromGenericsType[T]())
	}
	return gen.(*rapid.Generator[T]), nil
}
