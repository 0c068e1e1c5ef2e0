package ir

import (
	"testing"

	"github.com/gomlx/exceptions"
)

func TestType_String(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{I1, "i1"},
		{UI64, "ui64"},
		{Index, "index"},
		{F16, "f16"},
		{BF16, "bf16"},
		{F64, "f64"},
		{ComplexType{Elem: F32}, "(complex f32)"},
		{MemRefType{Elem: F32, Shape: []int{4, Dynamic}}, "(memref 4 ? f32)"},
		{MemRefType{Elem: I8}, "(memref i8)"},
		{BufferType{}, "buffer"},
		{BufferType{Elem: I8, Shape: []int{64}}, "(buffer 64 i8)"},
		{Chain, "chain"},
		{Stream, "stream"},
		{AsyncToken, "token"},
		{OpaqueType{Name: "dnn.handle"}, "(opaque dnn.handle)"},
		{FunctionType{Inputs: []Type{I32, F32}, Results: []Type{Index}}, "(fn (i32 f32) (index))"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestTypesEqual(t *testing.T) {
	a := MemRefType{Elem: F32, Shape: []int{4, 4}}
	b := MemRefType{Elem: F32, Shape: []int{4, 4}}
	c := MemRefType{Elem: F32, Shape: []int{16}}

	if !TypesEqual(a, b) {
		t.Error("structurally equal memrefs should be equal")
	}
	if TypesEqual(a, c) {
		t.Error("different shapes should not be equal")
	}
	if TypesEqual(a, nil) {
		t.Error("nil should only equal nil")
	}
	if !TypeListsEqual([]Type{I32, a}, []Type{I32, b}) {
		t.Error("equal lists reported different")
	}
	if TypeListsEqual([]Type{I32}, []Type{I32, I32}) {
		t.Error("lists of different length reported equal")
	}
}

func TestNumElements(t *testing.T) {
	n, ok := NumElements(MemRefType{Elem: F32, Shape: []int{2, 3, 4}})
	if !ok || n != 24 {
		t.Errorf("NumElements = %d, %v; want 24, true", n, ok)
	}
	n, ok = NumElements(MemRefType{Elem: F32})
	if !ok || n != 1 {
		t.Errorf("rank-0 NumElements = %d, %v; want 1, true", n, ok)
	}
	if _, ok := NumElements(MemRefType{Elem: F32, Shape: []int{Dynamic, 2}}); ok {
		t.Error("dynamic shape should have no element count")
	}
	if HasStaticShape(MemRefType{Elem: F32, Shape: []int{2, Dynamic}}) {
		t.Error("HasStaticShape should be false with a dynamic dim")
	}
}

func TestSizeBytes(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		want int
	}{
		{"i1", I1, 1},
		{"i8", I8, 1},
		{"i12", IntType{Width: 12}, 2},
		{"ui64", UI64, 8},
		{"f16", F16, 2},
		{"bf16", BF16, 2},
		{"f32", F32, 4},
		{"f64", F64, 8},
		{"complex f32", ComplexType{Elem: F32}, 8},
		{"complex f64", ComplexType{Elem: F64}, 16},
		{"memref 4x4 f32", MemRefType{Elem: F32, Shape: []int{4, 4}}, 64},
		{"memref 3 i12", MemRefType{Elem: IntType{Width: 12}, Shape: []int{3}}, 6},
		{"memref rank0 f64", MemRefType{Elem: F64}, 8},
		{"buffer keeps shape", BufferType{Elem: I8, Shape: []int{64}}, 64},
		{"memref of complex", MemRefType{Elem: ComplexType{Elem: F32}, Shape: []int{2}}, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SizeBytes(tt.typ); got != tt.want {
				t.Errorf("SizeBytes(%s) = %d, want %d", tt.typ, got, tt.want)
			}
		})
	}
}

func TestSizeBytes_Unsupported(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
	}{
		{"index", Index},
		{"chain", Chain},
		{"opaque", OpaqueType{Name: "dnn.handle"}},
		{"dynamic memref", MemRefType{Elem: F32, Shape: []int{Dynamic}}},
		{"unshaped buffer", BufferType{}},
		{"memref of index", MemRefType{Elem: Index, Shape: []int{4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := exceptions.TryCatch[error](func() { SizeBytes(tt.typ) })
			if err == nil {
				t.Fatalf("SizeBytes(%s) should panic", tt.typ)
			}
		})
	}
}
