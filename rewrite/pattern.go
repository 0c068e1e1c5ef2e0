package rewrite

import "github.com/wippyai/gpu-async/ir"

// Pattern rewrites operations of one kind.
//
// MatchAndRewrite returns nil when it changed the IR. It returns an error built with
// errors.NoMatch or errors.ConversionFailed (usually through Rewriter.NotifyMatchFailure)
// when it declined; in that case the IR must be left untouched. Any other error aborts
// the driver.
type Pattern interface {
	// Name identifies the pattern in logs.
	Name() string
	// Root is the kind the pattern applies to. An empty kind matches every op.
	Root() ir.Kind
	// Benefit orders patterns for the same kind; higher runs first.
	Benefit() int
	MatchAndRewrite(op *ir.Operation, rw *Rewriter) error
}

// Base implements the descriptive part of Pattern and is meant to be embedded.
type Base struct {
	PatternName    string
	RootKind       ir.Kind
	PatternBenefit int
}

// Name implements Pattern.
func (b Base) Name() string { return b.PatternName }

// Root implements Pattern.
func (b Base) Root() ir.Kind { return b.RootKind }

// Benefit implements Pattern.
func (b Base) Benefit() int { return b.PatternBenefit }

// Func is an adapter to use an ordinary function as a Pattern.
//
// Example:
//
//	p := rewrite.Func{
//	    Base: rewrite.Base{PatternName: "erase-dead-constant", RootKind: "arith.constant"},
//	    Fn: func(op *ir.Operation, rw *rewrite.Rewriter) error {
//	        if op.HasUses() {
//	            return rw.NotifyMatchFailure(op, "constant is used")
//	        }
//	        return rw.EraseOp(op)
//	    },
//	}
type Func struct {
	Fn func(op *ir.Operation, rw *Rewriter) error
	Base
}

// MatchAndRewrite implements Pattern.
func (f Func) MatchAndRewrite(op *ir.Operation, rw *Rewriter) error {
	return f.Fn(op, rw)
}
