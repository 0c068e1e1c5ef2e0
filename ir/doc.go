// Package ir provides the in-memory representation rewritten by the async conversion.
//
// A program is a tree of nested operations:
//
//	Operation  kind, operands, results, attributes, regions
//	Region     ordered blocks owned by one operation
//	Block      ordered operations and arguments owned by one region
//	Value      result of an operation or argument of a block
//
// Values keep use lists so a rewrite can redirect uses and can refuse to erase an
// operation that is still used. Moving operations between blocks (Block.Splice)
// never creates or copies values.
//
// Types are a closed set: integer, index, float (backed by gopjrt dtypes), complex,
// memref (generic memory, not a target type), buffer (device memory), chain, stream,
// async token, opaque library handles and function signatures. SizeBytes computes the
// byte size used by the view folding rules.
package ir
