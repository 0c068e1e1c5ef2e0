package asyncconv

import (
	"github.com/wippyai/gpu-async/dialect"
	"github.com/wippyai/gpu-async/errors"
	"github.com/wippyai/gpu-async/ir"
	"github.com/wippyai/gpu-async/rewrite"
)

// StreamOf returns the stream argument of parent if it is an execute op, or nil.
func StreamOf(parent *ir.Operation) *ir.Value {
	if !parent.Is(dialect.GPUAsyncExecute) {
		return nil
	}
	return dialect.ExecuteBody(parent).Argument(1)
}

// ChainOf returns the chain currently yielded by parent if it is an execute op, or nil.
func ChainOf(parent *ir.Operation) *ir.Value {
	if !parent.Is(dialect.GPUAsyncExecute) {
		return nil
	}
	yield := parent.Region(0).Back().Terminator()
	if yield == nil || yield.NumOperands() == 0 {
		return nil
	}
	return yield.Operand(0)
}

// SetChain makes the execute region enclosing chain yield it. Lowering patterns call
// it after appending an op that produces a new chain.
func SetChain(chain *ir.Value, rw *rewrite.Rewriter) error {
	b := chain.ParentBlock()
	if b == nil || b.Parent() == nil {
		return errors.InvalidInput(errors.PhaseRewrite, "chain is not inside a region")
	}
	yield := b.Parent().Back().Terminator()
	if !yield.Is(dialect.GPUAsyncYield) {
		return errors.InvalidInput(errors.PhaseRewrite, "chain is not inside an execute region")
	}
	rw.UpdateInPlace(yield, func() {
		yield.SetOperands([]*ir.Value{chain})
	})
	return nil
}
