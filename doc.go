// Package gpuasync nests stream-ordered accelerator work into async execution regions.
//
// The conversion takes a module of functions written against generic memory
// (memref) and rewrites it for a device target: memory types become device buffers,
// generic memory ops are lowered or folded, and every run of target-legal ops that
// precedes an op still needing conversion is moved into a gpu.async.execute region
// carrying a (chain, stream) pair. Later lowerings of library calls append their work
// to the stream and thread the chain through the region.
//
// # Architecture Overview
//
//	gpuasync/            Text in, text out entry point (Transform)
//	├── ir/              Nested operation tree, types, use lists, verifier
//	├── dialect/         Op kinds and builders: builtin, func, memref, gpu, dnn
//	├── rewrite/         Patterns, rewriter, type converter, legality, driver
//	├── passes/asyncconv Async conversion patterns and the pass entry point
//	├── text/            S-expression reader and printer for the IR
//	├── errors/          Structured error types for debugging
//	└── cmd/gpuasync     Command line tool with an interactive iteration viewer
//
// # Quick Start
//
//	out, res, err := gpuasync.Transform(src, gpuasync.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d regions after %d sweeps\n", res.Regions, res.Iterations)
//	fmt.Print(out)
//
// Programs already in memory go through Convert, which verifies the module before and
// after the pass.
//
// # Text Format
//
//	(module
//	  (func "main" (param $a (memref 64 i8)) (result)
//	    (op "arith.constant" (attr value 0) (result $c0 index))
//	    (op "memref.view" (operands $a $c0) (result $v (memref 4 4 f32)))
//	    (op "func.return")))
//
// # Thread Safety
//
// A module must not be shared between goroutines while it is converted. Independent
// modules can be converted concurrently.
package gpuasync
