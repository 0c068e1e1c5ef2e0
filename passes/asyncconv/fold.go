package asyncconv

import (
	"github.com/wippyai/gpu-async/dialect"
	"github.com/wippyai/gpu-async/ir"
	"github.com/wippyai/gpu-async/rewrite"
)

// FoldViewPattern lowers memref.view of a device buffer.
//
// A view at a known zero offset covering exactly the source bytes is the source
// itself. Any other offset becomes a gpu.mem.view with an explicit ui64 byte offset and
// size. A view at offset zero with a different byte size is left alone.
type FoldViewPattern struct {
	converter *rewrite.TypeConverter
	rewrite.Base
}

// NewFoldViewPattern creates the view folder.
func NewFoldViewPattern(converter *rewrite.TypeConverter) *FoldViewPattern {
	return &FoldViewPattern{
		Base:      rewrite.Base{PatternName: "fold-memref-view", RootKind: dialect.MemRefView},
		converter: converter,
	}
}

// MatchAndRewrite implements rewrite.Pattern.
func (p *FoldViewPattern) MatchAndRewrite(op *ir.Operation, rw *rewrite.Rewriter) error {
	if op.NumOperands() < 2 || op.NumResults() != 1 {
		return rw.NotifyMatchFailure(op, "expected source and byte shift operands and one result")
	}
	source := dialect.ViewSource(op)
	srcType, ok := source.Type().(ir.BufferType)
	if !ok {
		return rw.NotifyMatchFailure(op, "expected buffer source, got %s", source.Type())
	}
	if len(dialect.ViewSizes(op)) > 0 {
		return rw.NotifyMatchFailure(op, "expected no sizes")
	}

	dstType := op.Result(0).Type()
	dstSize := ir.SizeBytes(dstType)
	srcSize := ir.SizeBytes(srcType)
	shift := dialect.ViewByteShift(op)
	offset, isConst := dialect.ConstantIndex(shift)

	if isConst && offset == 0 {
		if srcSize != dstSize {
			return rw.NotifyMatchFailure(op, "zero offset view resizes %d bytes to %d", srcSize, dstSize)
		}
		return rw.ReplaceOp(op, []*ir.Value{source})
	}

	resultType, err := p.converter.ConvertType(dstType)
	if err != nil {
		return rw.NotifyConversionFailure(op, "failed to convert result type: %v", err)
	}

	rw.SetInsertionPoint(op)
	var offsetUI64 *ir.Value
	if isConst && offset > 0 {
		offsetUI64 = rw.Create(dialect.NewConstantUI64(uint64(offset))).Result(0)
	} else {
		offsetUI64 = rw.Create(dialect.NewUnrealizedCast(shift, ir.UI64)).Result(0)
	}
	size := rw.Create(dialect.NewConstantUI64(uint64(dstSize))).Result(0)
	_, err = rw.ReplaceOpWithNew(op, dialect.NewMemView(source, offsetUI64, size, resultType))
	return err
}

// FoldReinterpretCastPattern drops memref.reinterpret_cast of a device buffer when
// every offset is statically zero.
type FoldReinterpretCastPattern struct {
	rewrite.Base
}

// NewFoldReinterpretCastPattern creates the cast folder.
func NewFoldReinterpretCastPattern() *FoldReinterpretCastPattern {
	return &FoldReinterpretCastPattern{
		Base: rewrite.Base{PatternName: "fold-memref-reinterpret-cast", RootKind: dialect.MemRefReinterpretCast},
	}
}

// MatchAndRewrite implements rewrite.Pattern.
func (p *FoldReinterpretCastPattern) MatchAndRewrite(op *ir.Operation, rw *rewrite.Rewriter) error {
	if op.NumOperands() < 1 || op.NumResults() != 1 {
		return rw.NotifyMatchFailure(op, "expected source operand and one result")
	}
	source := dialect.CastSource(op)
	if _, ok := source.Type().(ir.BufferType); !ok {
		return rw.NotifyMatchFailure(op, "expected buffer source, got %s", source.Type())
	}
	if len(dialect.CastDynamicOffsets(op)) > 0 {
		return rw.NotifyMatchFailure(op, "expected static zero offsets")
	}
	for _, off := range dialect.CastStaticOffsets(op) {
		if off != 0 {
			return rw.NotifyMatchFailure(op, "expected static zero offsets")
		}
	}
	return rw.ReplaceOp(op, []*ir.Value{source})
}
