package rewrite

import (
	"go.uber.org/zap"

	"github.com/wippyai/gpu-async/errors"
	"github.com/wippyai/gpu-async/ir"
)

// DefaultMaxIterations bounds the number of sweeps of a Driver.
const DefaultMaxIterations = 10

// Config configures a Driver.
type Config struct {
	// Logger receives debug logs of applications and failures. Nil uses the package logger.
	Logger *zap.Logger
	// OnIteration is called after every sweep with the state of the IR at that point.
	OnIteration func(Iteration)
	// MaxIterations caps the number of sweeps. Zero means DefaultMaxIterations.
	MaxIterations int
}

// Application is one successful pattern application.
type Application struct {
	Pattern string
	Op      string
}

// Iteration describes one sweep over the IR.
type Iteration struct {
	Root         *ir.Operation
	Applications []Application
	Index        int
}

// Result summarizes a Driver run.
type Result struct {
	Iterations int
	Applied    int
	Converged  bool
}

// Driver applies a PatternSet greedily until a fixed point.
//
// Each sweep visits a pre-order snapshot of the tree. For every op still alive, the
// patterns of its kind are tried in order and the first that applies ends the visit
// of that op. Sweeps repeat until one applies nothing or the iteration cap is hit.
type Driver struct {
	patterns *PatternSet
	logger   *zap.Logger
	onIter   func(Iteration)
	maxIter  int
}

// NewDriver creates a Driver for patterns.
func NewDriver(patterns *PatternSet, cfg Config) *Driver {
	maxIter := cfg.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}
	return &Driver{
		patterns: patterns,
		logger:   resolveLogger(cfg.Logger),
		onIter:   cfg.OnIteration,
		maxIter:  maxIter,
	}
}

// Run rewrites the tree rooted at root in place. If the cap is hit while patterns still
// apply, the result is returned together with a not-converged error.
func (d *Driver) Run(root *ir.Operation) (Result, error) {
	var res Result
	rw := NewRewriter(d.logger)

	for res.Iterations < d.maxIter {
		res.Iterations++
		apps, err := d.sweep(root, rw)
		res.Applied += len(apps)
		d.logger.Debug("sweep done",
			zap.Int("iteration", res.Iterations),
			zap.Int("applied", len(apps)))
		if d.onIter != nil {
			d.onIter(Iteration{Index: res.Iterations, Root: root, Applications: apps})
		}
		if err != nil {
			return res, err
		}
		if len(apps) == 0 {
			res.Converged = true
			return res, nil
		}
	}
	return res, errors.NotConverged(res.Iterations)
}

func (d *Driver) sweep(root *ir.Operation, rw *Rewriter) ([]Application, error) {
	var apps []Application
	for _, op := range root.Collect() {
		if op.IsErased() || (op != root && op.Block() == nil) {
			continue
		}
		for _, p := range d.patterns.ForKind(op.Kind()) {
			label := op.Label()
			err := p.MatchAndRewrite(op, rw)
			if err == nil {
				d.logger.Debug("pattern applied", zap.String("pattern", p.Name()), zap.String("op", label))
				apps = append(apps, Application{Pattern: p.Name(), Op: label})
				break
			}
			if isDecline(err) {
				continue
			}
			d.logger.Debug("pattern failed", zap.String("pattern", p.Name()), zap.String("op", label), zap.Error(err))
			return apps, err
		}
	}
	return apps, nil
}

// isDecline reports whether err means the pattern left the IR untouched.
func isDecline(err error) bool {
	e, ok := err.(*errors.Error)
	return ok && (e.Kind == errors.KindNoMatch || e.Kind == errors.KindConversion)
}
