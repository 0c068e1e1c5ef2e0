package asyncconv

import (
	"github.com/wippyai/gpu-async/dialect"
	"github.com/wippyai/gpu-async/ir"
	"github.com/wippyai/gpu-async/rewrite"
)

// NewTypeConverter returns the converter of the target model: memrefs become device
// buffers of the same shape and element type, every other type is kept.
func NewTypeConverter() *rewrite.TypeConverter {
	return rewrite.NewTypeConverter(convertMemRef, rewrite.Identity)
}

func convertMemRef(t ir.Type) ([]ir.Type, error) {
	m, ok := t.(ir.MemRefType)
	if !ok {
		return nil, nil
	}
	return []ir.Type{ir.BufferType{Elem: m.Elem, Shape: m.Shape}}, nil
}

// NewTarget returns the base legality of the target model:
//   - generic memory ops and gpu.async.execute are illegal
//   - func.func is legal once its signature is
//   - any other op is legal iff all its operand and result types are
func NewTarget(converter *rewrite.TypeConverter) *rewrite.Target {
	t := rewrite.NewTarget()
	t.AddIllegalOp(
		dialect.GPUAsyncExecute,
		dialect.MemRefView,
		dialect.MemRefReinterpretCast,
		dialect.MemRefAlloc,
		dialect.MemRefAlloca,
		dialect.MemRefDealloc,
	)
	t.AddDynamicallyLegalOp(dialect.Func, func(op *ir.Operation) bool {
		sig, ok := dialect.FuncType(op)
		return ok && converter.IsSignatureLegal(sig)
	})
	t.MarkUnknownOpDynamicallyLegal(converter.IsLegal)
	return t
}

// AddCallLegality makes calls legal iff they have no results.
//
// An execute region yields nothing but its chain, so a call producing values cannot be
// moved into one. Calls without results are wrapped like any other legal op.
func AddCallLegality(t *rewrite.Target) {
	t.AddDynamicallyLegalOp(dialect.Call, func(op *ir.Operation) bool {
		return op.NumResults() == 0
	})
}
