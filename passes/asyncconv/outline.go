package asyncconv

import (
	"go.uber.org/zap"

	"github.com/wippyai/gpu-async/dialect"
	"github.com/wippyai/gpu-async/ir"
	"github.com/wippyai/gpu-async/rewrite"
)

// OutlinePattern nests runs of legal ops of a function into execute regions.
//
// Every block of the function is scanned left to right, except the bodies of execute
// ops. Whenever an illegal op follows a run of legal ops, the run is moved into a new
// gpu.async.execute placed where the run started. A run still open at the end of its
// block stays where it is.
//
// The whole function is scanned before anything moves, so the pattern either commits
// every extraction it found or leaves the function untouched.
type OutlinePattern struct {
	target *rewrite.Target
	rewrite.Base
}

// NewOutlinePattern creates the outliner classifying ops with target.
func NewOutlinePattern(target *rewrite.Target) *OutlinePattern {
	return &OutlinePattern{
		Base:   rewrite.Base{PatternName: "outline-legal-runs", RootKind: dialect.Func},
		target: target,
	}
}

// MatchAndRewrite implements rewrite.Pattern.
func (p *OutlinePattern) MatchAndRewrite(fn *ir.Operation, rw *rewrite.Rewriter) error {
	txn := rw.Begin()
	fn.WalkBlocks(func(b *ir.Block) ir.WalkResult {
		if dialect.IsExecuteBody(b) {
			return ir.Skip
		}
		p.scanBlock(b, txn)
		return ir.Advance
	})
	if txn.Len() == 0 {
		txn.Discard()
		return rw.NotifyMatchFailure(fn, "no legal run followed by an illegal op")
	}
	n := txn.Commit()
	rw.Logger().Debug("outlined legal runs",
		zap.String("func", dialect.FuncName(fn)),
		zap.Int("regions", n))
	return nil
}

func (p *OutlinePattern) scanBlock(b *ir.Block, txn *rewrite.Txn) {
	var runStart *ir.Operation
	for _, op := range b.Operations() {
		if p.target.IsLegal(op) {
			if runStart == nil {
				runStart = op
			}
			continue
		}
		if runStart == nil {
			continue
		}
		first, end := runStart, op
		txn.Stage(func() { extractRun(b, first, end) })
		runStart = nil
	}
}

// extractRun moves the ops of b from first up to end into a new execute op placed
// where first was.
func extractRun(b *ir.Block, first, end *ir.Operation) *ir.Operation {
	exec := dialect.NewAsyncExecute()
	b.InsertBefore(first, exec)
	body := dialect.ExecuteBody(exec)
	body.Splice(body.Terminator(), b, first, end)
	return exec
}
