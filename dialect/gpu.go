package dialect

import "github.com/wippyai/gpu-async/ir"

// NewGPUAlloc creates a device allocation with no async dependencies, no dynamic
// sizes and no symbol operands.
func NewGPUAlloc(result ir.BufferType) *ir.Operation {
	return ir.NewOperation(GPUAlloc, nil, []ir.Type{result}, nil, 0)
}

// NewGPUDealloc frees buf. It has no async dependencies and no token result.
func NewGPUDealloc(buf *ir.Value) *ir.Operation {
	return ir.NewOperation(GPUDealloc, []*ir.Value{buf}, nil, nil, 0)
}

// NewMemView creates a sub-view of buf. offset and size are ui64 byte counts.
func NewMemView(buf, offset, size *ir.Value, result ir.Type) *ir.Operation {
	return ir.NewOperation(GPUMemView, []*ir.Value{buf, offset, size}, []ir.Type{result}, nil, 0)
}

// NewConstantUI64 creates an unsigned 64-bit constant.
func NewConstantUI64(value uint64) *ir.Operation {
	return ir.NewOperation(GPUConstantUI64, nil, []ir.Type{ir.UI64},
		ir.Attrs{{Name: AttrValue, Value: ir.IntAttr{Value: int64(value)}}}, 0)
}

// NewAsyncExecute creates an async execution region: one block with (chain, stream)
// arguments ending with a yield of the incoming chain.
func NewAsyncExecute() *ir.Operation {
	exec := ir.NewOperation(GPUAsyncExecute, nil, nil, nil, 1)
	body := ir.NewBlock(ir.Chain, ir.Stream)
	exec.Region(0).AddBlock(body)
	body.Append(NewAsyncYield(body.Argument(0)))
	return exec
}

// NewAsyncYield creates the terminator of an execute body.
func NewAsyncYield(chain *ir.Value) *ir.Operation {
	return ir.NewOperation(GPUAsyncYield, []*ir.Value{chain}, nil, nil, 0)
}

// ExecuteBody returns the single body block of an execute op.
func ExecuteBody(exec *ir.Operation) *ir.Block {
	return exec.Region(0).Front()
}

// IsExecuteBody reports whether b is the body of an async execute op.
func IsExecuteBody(b *ir.Block) bool {
	return b.ParentOp().Is(GPUAsyncExecute)
}
