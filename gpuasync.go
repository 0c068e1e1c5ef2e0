package gpuasync

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/wippyai/gpu-async/ir"
	"github.com/wippyai/gpu-async/passes/asyncconv"
	"github.com/wippyai/gpu-async/rewrite"
	"github.com/wippyai/gpu-async/text"
)

// Config configures a conversion.
type Config struct {
	// Logger receives debug logs. Nil uses the rewrite package logger.
	Logger *zap.Logger
	// OnIteration is called after every driver sweep.
	OnIteration func(rewrite.Iteration)
	// MaxIterations caps the driver sweeps. Zero uses rewrite.DefaultMaxIterations.
	MaxIterations int
}

func (c Config) options() asyncconv.Options {
	return asyncconv.Options{
		Logger:        c.Logger,
		OnIteration:   c.OnIteration,
		MaxIterations: c.MaxIterations,
	}
}

// Convert verifies module, converts it in place and verifies the result.
func Convert(module *ir.Operation, cfg Config) (asyncconv.Result, error) {
	if err := asyncconv.Verify(module); err != nil {
		return asyncconv.Result{}, errors.WithMessage(err, "invalid input module")
	}
	res, err := asyncconv.Run(module, cfg.options())
	if err != nil {
		return res, errors.WithMessage(err, "async conversion failed")
	}
	if err := asyncconv.Verify(module); err != nil {
		return res, errors.WithMessage(err, "converted module is invalid")
	}
	return res, nil
}

// Transform parses src, converts it and prints the result.
func Transform(src string, cfg Config) (string, asyncconv.Result, error) {
	module, err := text.Parse(src)
	if err != nil {
		return "", asyncconv.Result{}, errors.WithMessage(err, "parse")
	}
	res, err := Convert(module, cfg)
	if err != nil {
		return "", res, err
	}
	return text.Print(module), res, nil
}
