// Package asyncconv converts functions over generic memory into stream-ordered device
// code.
//
// It provides the rewrite patterns of the conversion:
//
//   - OutlinePattern wraps every maximal run of legal ops that is followed by an
//     illegal op into a gpu.async.execute region.
//   - FoldViewPattern and FoldReinterpretCastPattern drop or lower views and casts of
//     device buffers.
//   - AllocPattern and DeallocPattern turn static allocations into gpu.alloc and
//     gpu.dealloc.
//   - FuncSignaturePattern, ConvertCallPattern and ConvertReturnPattern keep function
//     signatures, calls and returns in line with the converted types.
//
// Populate registers all of them; Run builds the converter, target and patterns and
// drives them to a fixed point over a module.
//
// A run of legal ops that reaches the end of its block is left in place. Only runs
// followed by an illegal op are outlined.
package asyncconv
