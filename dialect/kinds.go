package dialect

import (
	"slices"

	"github.com/wippyai/gpu-async/ir"
)

// Builtin kinds.
const (
	Module                   ir.Kind = "builtin.module"
	UnrealizedConversionCast ir.Kind = "builtin.unrealized_conversion_cast"
)

// Function kinds.
const (
	Func   ir.Kind = "func.func"
	Call   ir.Kind = "func.call"
	Return ir.Kind = "func.return"
)

// Constant is the arith.constant kind.
const Constant ir.Kind = "arith.constant"

// Generic memory kinds.
const (
	MemRefView            ir.Kind = "memref.view"
	MemRefReinterpretCast ir.Kind = "memref.reinterpret_cast"
	MemRefAlloc           ir.Kind = "memref.alloc"
	MemRefAlloca          ir.Kind = "memref.alloca"
	MemRefDealloc         ir.Kind = "memref.dealloc"
)

// Target model kinds.
const (
	GPUAlloc        ir.Kind = "gpu.alloc"
	GPUDealloc      ir.Kind = "gpu.dealloc"
	GPUMemView      ir.Kind = "gpu.mem.view"
	GPUConstantUI64 ir.Kind = "gpu.constant.ui64"
	GPUAsyncExecute ir.Kind = "gpu.async.execute"
	GPUAsyncYield   ir.Kind = "gpu.async.yield"
)

// Compute library leaves.
const (
	DNNCreate                           ir.Kind = "dnn.create"
	DNNDestroy                          ir.Kind = "dnn.destroy"
	DNNCreateTensorDescriptor           ir.Kind = "dnn.create_tensor_descriptor"
	DNNCreatePoolingDescriptor          ir.Kind = "dnn.create_pooling_descriptor"
	DNNPoolingForward                   ir.Kind = "dnn.pooling_forward"
	DNNPoolingBackward                  ir.Kind = "dnn.pooling_backward"
	DNNConvolutionForward               ir.Kind = "dnn.convolution_forward"
	DNNConvolutionBiasActivationForward ir.Kind = "dnn.convolution_bias_activation_forward"
)

// Attribute names.
const (
	AttrSymName       = "sym_name"
	AttrFunctionType  = "function_type"
	AttrCallee        = "callee"
	AttrValue         = "value"
	AttrStaticOffsets = "static_offsets"
	AttrStaticSizes   = "static_sizes"
	AttrStaticStrides = "static_strides"
)

var known = []ir.Kind{
	Module, UnrealizedConversionCast,
	Func, Call, Return,
	Constant,
	MemRefView, MemRefReinterpretCast, MemRefAlloc, MemRefAlloca, MemRefDealloc,
	GPUAlloc, GPUDealloc, GPUMemView, GPUConstantUI64, GPUAsyncExecute, GPUAsyncYield,
	DNNCreate, DNNDestroy, DNNCreateTensorDescriptor, DNNCreatePoolingDescriptor,
	DNNPoolingForward, DNNPoolingBackward, DNNConvolutionForward, DNNConvolutionBiasActivationForward,
}

// Kinds returns every kind defined by this package.
func Kinds() []ir.Kind {
	return slices.Clone(known)
}

// Known reports whether kind is defined by this package.
func Known(kind ir.Kind) bool {
	return slices.Contains(known, kind)
}

// IsTerminator reports whether kind must be the last op of its block.
func IsTerminator(kind ir.Kind) bool {
	return kind == Return || kind == GPUAsyncYield
}

// IsDNN reports whether kind is a compute library leaf.
func IsDNN(kind ir.Kind) bool {
	return kind.Dialect() == "dnn"
}

// IsAllocation reports whether kind allocates generic memory.
func IsAllocation(kind ir.Kind) bool {
	return kind == MemRefAlloc || kind == MemRefAlloca
}
