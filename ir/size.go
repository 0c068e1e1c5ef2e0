package ir

import (
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
)

// SizeBytes returns the number of bytes a value of type t occupies.
//
//   - shaped types: element size times element count
//   - integer and float scalars: bit width rounded up to whole bytes
//   - complex numbers: twice the component size
//
// Any other type, or a shaped type with a dynamic dimension, has no byte size and
// SizeBytes panics with an exceptions error. The panic is recovered only at the API
// boundary and aborts the whole conversion.
func SizeBytes(t Type) int {
	switch tt := t.(type) {
	case ShapedType:
		if tt.ElementType() == nil {
			exceptions.Panicf("cannot compute byte size of unshaped %s", t)
		}
		n, ok := NumElements(tt)
		if !ok {
			exceptions.Panicf("cannot compute byte size of dynamically shaped %s", t)
		}
		return SizeBytes(tt.ElementType()) * n
	case IntType:
		if tt.Width <= 0 {
			exceptions.Panicf("invalid integer width in %s", t)
		}
		return (tt.Width + 7) / 8
	case FloatType:
		if tt.DType == dtypes.InvalidDType || !tt.DType.IsFloat() {
			exceptions.Panicf("unsupported float dtype %s", tt.DType)
		}
		return tt.DType.Size()
	case ComplexType:
		return 2 * SizeBytes(tt.Elem)
	}
	exceptions.Panicf("unsupported type %v: no byte size", t)
	return 0
}
