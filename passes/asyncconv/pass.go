package asyncconv

import (
	"runtime"

	"github.com/gomlx/exceptions"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/wippyai/gpu-async/dialect"
	"github.com/wippyai/gpu-async/errors"
	"github.com/wippyai/gpu-async/ir"
	"github.com/wippyai/gpu-async/rewrite"
)

// Options configures Run.
type Options struct {
	// Logger receives debug logs. Nil uses the rewrite package logger.
	Logger *zap.Logger
	// OnIteration is called after every driver sweep.
	OnIteration func(rewrite.Iteration)
	// MaxIterations caps the driver sweeps. Zero uses rewrite.DefaultMaxIterations.
	MaxIterations int
}

// Result summarizes a conversion.
type Result struct {
	rewrite.Result
	// Regions is the number of execute regions in the module afterwards.
	Regions int
}

// Run converts every function of module in place.
//
// A type without a byte size met while folding views aborts the whole conversion with
// an unsupported error; the module may then be partially rewritten and should be
// dropped.
func Run(module *ir.Operation, opts Options) (Result, error) {
	if module == nil || !module.Is(dialect.Module) {
		return Result{}, errors.InvalidInput(errors.PhaseDrive, "expected a builtin.module")
	}
	log := opts.Logger
	if log == nil {
		log = rewrite.Logger()
	}

	converter := NewTypeConverter()
	target := NewTarget(converter)
	patterns := rewrite.NewPatternSet()
	Populate(patterns, converter, target)

	driver := rewrite.NewDriver(patterns, rewrite.Config{
		Logger:        log,
		OnIteration:   opts.OnIteration,
		MaxIterations: opts.MaxIterations,
	})

	var (
		res    Result
		runErr error
	)
	if err := guard(log, func() {
		res.Result, runErr = driver.Run(module)
	}); err != nil {
		return res, err
	}
	res.Regions = CountRegions(module)
	log.Debug("conversion done",
		zap.Int("iterations", res.Iterations),
		zap.Int("applied", res.Applied),
		zap.Bool("converged", res.Converged),
		zap.Int("regions", res.Regions))
	return res, runErr
}

// guard runs fn and turns an exception raised by exceptions.Panicf into an unsupported
// error. A runtime error keeps panicking.
func guard(log *zap.Logger, fn func()) error {
	exc := exceptions.TryCatch[error](fn)
	if exc == nil {
		return nil
	}
	var rtErr runtime.Error
	if pkgerrors.As(exc, &rtErr) {
		panic(rtErr)
	}
	log.Debug("conversion aborted", zap.Error(exc))
	return errors.Wrap(errors.PhaseSize, errors.KindUnsupported, exc, "conversion aborted")
}

// Verify checks module treating execute regions as transparent scopes, then checks
// the operand, result and region counts of every known op.
func Verify(module *ir.Operation) error {
	if err := ir.Verify(module, ir.Transparent(dialect.GPUAsyncExecute)); err != nil {
		return err
	}
	var err error
	module.Walk(func(op *ir.Operation) ir.WalkResult {
		if err = dialect.VerifyOp(op); err != nil {
			return ir.Interrupt
		}
		return ir.Advance
	})
	return err
}

// CountRegions returns the number of execute ops nested in root.
func CountRegions(root *ir.Operation) int {
	n := 0
	root.Walk(func(op *ir.Operation) ir.WalkResult {
		if op.Is(dialect.GPUAsyncExecute) {
			n++
		}
		return ir.Advance
	})
	return n
}
