package asyncconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/gpu-async/dialect"
	"github.com/wippyai/gpu-async/ir"
	"github.com/wippyai/gpu-async/rewrite"
)

func TestStreamAndChain(t *testing.T) {
	exec := dialect.NewAsyncExecute()
	body := dialect.ExecuteBody(exec)

	assert.Same(t, body.Argument(1), StreamOf(exec))
	assert.Same(t, body.Argument(0), ChainOf(exec))

	op := ir.NewOperation("test.enqueue", []*ir.Value{StreamOf(exec), ChainOf(exec)}, []ir.Type{ir.Chain}, nil, 0)
	body.InsertBefore(body.Terminator(), op)

	rw := rewrite.NewRewriter(nil)
	require.NoError(t, SetChain(op.Result(0), rw))
	assert.Same(t, op.Result(0), ChainOf(exec))
	assert.Equal(t, 1, rw.Changes())
	assert.Equal(t, []*ir.Operation{op}, body.Argument(0).Users(), "yield no longer uses the incoming chain")
}

func TestStreamOf_NotExecute(t *testing.T) {
	fn := dialect.NewFunc("f", ir.FunctionType{})
	assert.Nil(t, StreamOf(fn))
	assert.Nil(t, ChainOf(fn))
}

func TestSetChain_OutsideExecute(t *testing.T) {
	rw := rewrite.NewRewriter(nil)

	detached := ir.NewOperation("test.enqueue", nil, []ir.Type{ir.Chain}, nil, 0)
	assert.Error(t, SetChain(detached.Result(0), rw))

	fn := dialect.NewFunc("f", ir.FunctionType{})
	body := dialect.FuncBody(fn)
	op := ir.NewOperation("test.enqueue", nil, []ir.Type{ir.Chain}, nil, 0)
	body.Append(op)
	body.Append(dialect.NewReturn())
	assert.Error(t, SetChain(op.Result(0), rw))
	assert.Equal(t, 0, rw.Changes())
}
