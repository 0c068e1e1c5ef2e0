package asyncconv

import (
	"github.com/wippyai/gpu-async/dialect"
	"github.com/wippyai/gpu-async/ir"
	"github.com/wippyai/gpu-async/rewrite"
)

// AllocPattern turns a statically shaped memref.alloc or memref.alloca into gpu.alloc.
type AllocPattern struct {
	converter *rewrite.TypeConverter
	rewrite.Base
}

// NewAllocPattern creates the allocation rewrite for kind.
func NewAllocPattern(kind ir.Kind, converter *rewrite.TypeConverter) *AllocPattern {
	return &AllocPattern{
		Base:      rewrite.Base{PatternName: "rewrite-" + string(kind), RootKind: kind},
		converter: converter,
	}
}

// MatchAndRewrite implements rewrite.Pattern.
func (p *AllocPattern) MatchAndRewrite(op *ir.Operation, rw *rewrite.Rewriter) error {
	if op.NumResults() != 1 {
		return rw.NotifyMatchFailure(op, "expected one result")
	}
	shaped, ok := op.Result(0).Type().(ir.ShapedType)
	if !ok {
		return rw.NotifyMatchFailure(op, "expected shaped result, got %s", op.Result(0).Type())
	}
	if !ir.HasStaticShape(shaped) || len(dialect.AllocDynamicSizes(op)) > 0 {
		return rw.NotifyMatchFailure(op, "dynamically shaped allocation")
	}
	converted, err := p.converter.ConvertType(shaped)
	if err != nil {
		return rw.NotifyConversionFailure(op, "failed to convert result type: %v", err)
	}
	buf, ok := converted.(ir.BufferType)
	if !ok {
		return rw.NotifyConversionFailure(op, "result converts to %s, not a buffer", converted)
	}
	_, err = rw.ReplaceOpWithNew(op, dialect.NewGPUAlloc(buf))
	return err
}

// DeallocPattern turns memref.dealloc into gpu.dealloc without a token.
type DeallocPattern struct {
	rewrite.Base
}

// NewDeallocPattern creates the deallocation rewrite.
func NewDeallocPattern() *DeallocPattern {
	return &DeallocPattern{
		Base: rewrite.Base{PatternName: "rewrite-memref.dealloc", RootKind: dialect.MemRefDealloc},
	}
}

// MatchAndRewrite implements rewrite.Pattern.
func (p *DeallocPattern) MatchAndRewrite(op *ir.Operation, rw *rewrite.Rewriter) error {
	if op.NumOperands() != 1 {
		return rw.NotifyMatchFailure(op, "expected one operand, got %d", op.NumOperands())
	}
	_, err := rw.ReplaceOpWithNew(op, dialect.NewGPUDealloc(op.Operand(0)))
	return err
}
