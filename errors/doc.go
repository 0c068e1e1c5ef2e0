// Package errors provides structured error types for the gpu-async module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: location path, operation kind, type, source
// line and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseConvert, errors.KindConversion).
//		Path("module", "func main").
//		Op("func.call").
//		Type("(memref 4 f32)").
//		Detail("failed to convert result types").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NoMatch("memref.view", "expected no sizes")
//	err := errors.UseBeforeDef(path, "func.call", 0)
//
// A KindNoMatch error is not a failure: it is how a rewrite pattern declines an
// operation. All errors implement the standard error interface and support errors.Is/As.
package errors
