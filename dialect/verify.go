package dialect

import (
	"github.com/wippyai/gpu-async/errors"
	"github.com/wippyai/gpu-async/ir"
)

// shape bounds the operand, result and region counts of a kind.
// A negative max means any number of operands.
type shape struct {
	minOperands, maxOperands int
	results, regions         int
}

var shapes = map[ir.Kind]shape{
	Module:                   {0, 0, 0, 1},
	UnrealizedConversionCast: {1, 1, 1, 0},
	Func:                     {0, 0, 0, 1},
	Constant:                 {0, 0, 1, 0},
	MemRefView:               {2, -1, 1, 0},
	MemRefReinterpretCast:    {1, -1, 1, 0},
	MemRefAlloc:              {0, -1, 1, 0},
	MemRefAlloca:             {0, -1, 1, 0},
	MemRefDealloc:            {1, 1, 0, 0},
	GPUAlloc:                 {0, 0, 1, 0},
	GPUDealloc:               {1, 1, 0, 0},
	GPUMemView:               {3, 3, 1, 0},
	GPUConstantUI64:          {0, 0, 1, 0},
	GPUAsyncExecute:          {0, 0, 0, 1},
	GPUAsyncYield:            {1, 1, 0, 0},
}

// VerifyOp checks the operand, result and region counts of op against its kind.
// Kinds with a free shape, such as func.call or the dnn leaves, always pass.
func VerifyOp(op *ir.Operation) error {
	s, ok := shapes[op.Kind()]
	if !ok {
		return nil
	}
	n := op.NumOperands()
	switch {
	case n < s.minOperands:
		return shapeError(op, "expected at least %d operand(s), got %d", s.minOperands, n)
	case s.maxOperands >= 0 && n > s.maxOperands:
		return shapeError(op, "expected at most %d operand(s), got %d", s.maxOperands, n)
	case op.NumResults() != s.results:
		return shapeError(op, "expected %d result(s), got %d", s.results, op.NumResults())
	case op.NumRegions() != s.regions:
		return shapeError(op, "expected %d region(s), got %d", s.regions, op.NumRegions())
	}
	return nil
}

func shapeError(op *ir.Operation, format string, args ...any) error {
	return errors.New(errors.PhaseVerify, errors.KindInvalidIR).
		Path(op.Path()...).
		Op(string(op.Kind())).
		Detail(format, args...).
		Build()
}
