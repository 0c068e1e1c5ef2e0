package ir

import (
	"fmt"
	"strings"

	"github.com/gomlx/gopjrt/dtypes"
)

// Dynamic marks a dimension whose extent is only known at run time.
const Dynamic = -1

// Type is the type of a Value.
//
// The set of types is closed: every implementation lives in this package.
type Type interface {
	// String returns the text form of the type, as accepted by the text parser.
	String() string
	isType()
}

// ShapedType is implemented by types describing an N-dimensional array of elements.
type ShapedType interface {
	Type
	ElementType() Type
	Dims() []int
}

// IntType is a signless or unsigned integer of arbitrary bit width.
type IntType struct {
	Width    int
	Unsigned bool
}

func (t IntType) String() string {
	if t.Unsigned {
		return fmt.Sprintf("ui%d", t.Width)
	}
	return fmt.Sprintf("i%d", t.Width)
}
func (IntType) isType() {}

// IndexType is the target-width integer used for offsets and sizes.
// It has no fixed byte size.
type IndexType struct{}

func (IndexType) String() string { return "index" }
func (IndexType) isType()        {}

// FloatType is a floating point scalar.
type FloatType struct {
	DType dtypes.DType
}

func (t FloatType) String() string {
	switch t.DType {
	case dtypes.Float16:
		return "f16"
	case dtypes.BFloat16:
		return "bf16"
	case dtypes.Float32:
		return "f32"
	case dtypes.Float64:
		return "f64"
	}
	return "f?" + t.DType.String()
}
func (FloatType) isType() {}

// ComplexType is a complex number made of two components of Elem type.
type ComplexType struct {
	Elem Type
}

func (t ComplexType) String() string { return "(complex " + t.Elem.String() + ")" }
func (ComplexType) isType()          {}

// MemRefType is a generic (host-model) memory reference. It is not a target type
// and has to be converted before an op using it becomes legal.
type MemRefType struct {
	Elem  Type
	Shape []int
}

func (t MemRefType) String() string    { return shapedString("memref", t.Shape, t.Elem) }
func (MemRefType) isType()             {}
func (t MemRefType) ElementType() Type { return t.Elem }
func (t MemRefType) Dims() []int       { return t.Shape }

// BufferType is an opaque handle to accelerator memory. It keeps the shape it was
// converted from so byte sizes can still be computed.
type BufferType struct {
	Elem  Type
	Shape []int
}

func (t BufferType) String() string {
	if t.Elem == nil {
		return "buffer"
	}
	return shapedString("buffer", t.Shape, t.Elem)
}
func (BufferType) isType()             {}
func (t BufferType) ElementType() Type { return t.Elem }
func (t BufferType) Dims() []int       { return t.Shape }

// ChainType is the completion token sequencing stream-ordered work.
type ChainType struct{}

func (ChainType) String() string { return "chain" }
func (ChainType) isType()        {}

// StreamType is a handle to a device stream.
type StreamType struct{}

func (StreamType) String() string { return "stream" }
func (StreamType) isType()        {}

// AsyncTokenType is the optional token produced by async device primitives.
type AsyncTokenType struct{}

func (AsyncTokenType) String() string { return "token" }
func (AsyncTokenType) isType()        {}

// OpaqueType is a named handle type owned by an external library, e.g. "dnn.handle".
type OpaqueType struct {
	Name string
}

func (t OpaqueType) String() string { return "(opaque " + t.Name + ")" }
func (OpaqueType) isType()          {}

// FunctionType is the signature of a func.func or func.call.
type FunctionType struct {
	Inputs  []Type
	Results []Type
}

func (t FunctionType) String() string {
	var b strings.Builder
	b.WriteString("(fn (")
	writeTypeList(&b, t.Inputs)
	b.WriteString(") (")
	writeTypeList(&b, t.Results)
	b.WriteString("))")
	return b.String()
}
func (FunctionType) isType() {}

func writeTypeList(b *strings.Builder, types []Type) {
	for i, t := range types {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.String())
	}
}

func shapedString(name string, shape []int, elem Type) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(name)
	for _, d := range shape {
		b.WriteByte(' ')
		if d == Dynamic {
			b.WriteByte('?')
		} else {
			fmt.Fprintf(&b, "%d", d)
		}
	}
	b.WriteByte(' ')
	b.WriteString(elem.String())
	b.WriteByte(')')
	return b.String()
}

// TypesEqual reports whether a and b denote the same type.
func TypesEqual(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
}

// TypeListsEqual reports whether two type lists are element-wise equal.
func TypeListsEqual(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !TypesEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// HasStaticShape reports whether every dimension of t is known.
func HasStaticShape(t ShapedType) bool {
	for _, d := range t.Dims() {
		if d == Dynamic {
			return false
		}
	}
	return true
}

// NumElements returns the element count of a statically shaped type.
// A rank-0 shape has one element.
func NumElements(t ShapedType) (int, bool) {
	n := 1
	for _, d := range t.Dims() {
		if d == Dynamic {
			return 0, false
		}
		n *= d
	}
	return n, true
}

// Common scalar types.
var (
	I1    Type = IntType{Width: 1}
	I8    Type = IntType{Width: 8}
	I32   Type = IntType{Width: 32}
	I64   Type = IntType{Width: 64}
	UI64  Type = IntType{Width: 64, Unsigned: true}
	Index Type = IndexType{}
	F16   Type = FloatType{DType: dtypes.Float16}
	BF16  Type = FloatType{DType: dtypes.BFloat16}
	F32   Type = FloatType{DType: dtypes.Float32}
	F64   Type = FloatType{DType: dtypes.Float64}
	Chain Type = ChainType{}

	Stream     Type = StreamType{}
	AsyncToken Type = AsyncTokenType{}
)
