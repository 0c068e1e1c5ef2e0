package asyncconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/gpu-async/dialect"
	"github.com/wippyai/gpu-async/errors"
	"github.com/wippyai/gpu-async/ir"
	"github.com/wippyai/gpu-async/rewrite"
	"github.com/wippyai/gpu-async/text"
)

// testTarget classifies test.legal* as legal and test.illegal* as illegal. Any other
// kind, including execute ops, is illegal.
func testTarget() *rewrite.Target {
	t := rewrite.NewTarget()
	t.AddLegalOp("test.legal", "test.legal_region", "func.return")
	t.AddIllegalOp("test.illegal")
	return t
}

func outline(t *testing.T, fn *ir.Operation) error {
	t.Helper()
	return NewOutlinePattern(testTarget()).MatchAndRewrite(fn, rewrite.NewRewriter(nil))
}

func TestOutline_RunFollowedByIllegal(t *testing.T) {
	_, fn := parseFunc(t, `(module
  (func "f" (result)
    (op "test.legal" (attr id 1) (result $a i32))
    (op "test.legal" (attr id 2) (operands $a) (result $b i32))
    (op "test.illegal" (operands $b))
    (op "test.legal" (attr id 4))))`, "f")

	body := dialect.FuncBody(fn)
	before := body.Operations()

	require.NoError(t, outline(t, fn))

	assert.Equal(t, []ir.Kind{dialect.GPUAsyncExecute, "test.illegal", "test.legal"}, kinds(body))
	exec := body.Op(0)
	inner := dialect.ExecuteBody(exec)
	assert.Equal(t, []ir.Kind{"test.legal", "test.legal", dialect.GPUAsyncYield}, kinds(inner))
	assert.Same(t, before[0], inner.Op(0), "ops are moved, not copied")
	assert.Same(t, before[1], inner.Op(1))
	assert.Same(t, before[0].Result(0), before[1].Operand(0))
	assert.Same(t, before[1].Result(0), body.Op(1).Operand(0), "uses keep pointing to the moved op")
	assert.Same(t, before[3], body.Op(2), "trailing legal run stays in place")
	assert.Same(t, inner.Argument(0), inner.Terminator().Operand(0), "region yields its incoming chain")
	assert.NoError(t, Verify(fn))
}

func TestOutline_TrailingRunOnly(t *testing.T) {
	_, fn := parseFunc(t, `(module
  (func "f" (result)
    (op "test.illegal")
    (op "test.legal")
    (op "test.legal")))`, "f")

	before := text.Print(fn.ParentOp())
	err := outline(t, fn)
	require.Error(t, err)
	assert.True(t, errors.IsNoMatch(err))
	assert.Equal(t, before, text.Print(fn.ParentOp()), "function must be left untouched")
}

func TestOutline_AlternatingRuns(t *testing.T) {
	_, fn := parseFunc(t, `(module
  (func "f" (result)
    (op "test.legal" (attr id 1))
    (op "test.illegal" (attr id 2))
    (op "test.legal" (attr id 3))
    (op "test.legal" (attr id 4))
    (op "test.illegal" (attr id 5))
    (op "test.illegal" (attr id 6))
    (op "test.legal" (attr id 7))
    (op "func.return")))`, "f")

	require.NoError(t, outline(t, fn))

	body := dialect.FuncBody(fn)
	assert.Equal(t, []ir.Kind{
		dialect.GPUAsyncExecute, "test.illegal",
		dialect.GPUAsyncExecute, "test.illegal", "test.illegal",
		"test.legal", "func.return",
	}, kinds(body))

	second := dialect.ExecuteBody(body.Op(2))
	ids := []int64{}
	for _, op := range second.Operations() {
		if id, ok := ir.AttrInt(op, "id"); ok {
			ids = append(ids, id)
		}
	}
	assert.Equal(t, []int64{3, 4}, ids, "run keeps its order")
}

func TestOutline_Idempotent(t *testing.T) {
	_, fn := parseFunc(t, `(module
  (func "f" (result)
    (op "test.legal")
    (op "test.illegal")
    (op "test.legal")))`, "f")

	require.NoError(t, outline(t, fn))
	once := text.Print(fn.ParentOp())

	err := outline(t, fn)
	assert.True(t, errors.IsNoMatch(err), "execute ops are illegal, nothing left to wrap")
	assert.Equal(t, once, text.Print(fn.ParentOp()))
}

func TestOutline_NestedBlocks(t *testing.T) {
	_, fn := parseFunc(t, `(module
  (func "f" (result)
    (op "test.legal_region"
      (region
        (block
          (op "test.legal" (attr id 1))
          (op "test.illegal" (attr id 2)))))
    (op "func.return")))`, "f")

	require.NoError(t, outline(t, fn))

	body := dialect.FuncBody(fn)
	assert.Equal(t, []ir.Kind{"test.legal_region", "func.return"}, kinds(body), "outer block has no illegal op")
	nested := body.Op(0).Region(0).Front()
	assert.Equal(t, []ir.Kind{dialect.GPUAsyncExecute, "test.illegal"}, kinds(nested))
}

func TestOutline_SkipsExecuteBodies(t *testing.T) {
	_, fn := parseFunc(t, `(module
  (func "f" (result)
    (op "gpu.async.execute"
      (region
        (block (arg $c chain) (arg $s stream)
          (op "test.legal")
          (op "test.illegal")
          (op "gpu.async.yield" (operands $c)))))
    (op "test.legal")))`, "f")

	before := text.Print(fn.ParentOp())
	err := outline(t, fn)
	assert.True(t, errors.IsNoMatch(err))
	assert.Equal(t, before, text.Print(fn.ParentOp()))
}

func TestOutline_ValuesUsedAfterRegion(t *testing.T) {
	_, fn := parseFunc(t, `(module
  (func "f" (result)
    (op "test.legal" (result $a i32))
    (op "test.illegal" (operands $a))
    (op "test.legal" (operands $a))))`, "f")

	require.NoError(t, outline(t, fn))

	assert.NoError(t, Verify(fn))
	assert.Error(t, ir.Verify(fn), "without transparent execute regions the moved def is out of scope")
}
