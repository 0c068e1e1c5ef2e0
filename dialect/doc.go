// Package dialect names the operation kinds understood by the async conversion and
// provides typed builders and accessors for them.
//
// Operations are generic ir.Operation values; this package only fixes the operand
// layout and attribute names of each kind:
//
//	builtin.module                       one region, one block of func.func
//	builtin.unrealized_conversion_cast   (value) -> value of another type
//	func.func                            sym_name, function_type; one region
//	func.call                            callee; operands -> results
//	func.return                          operands
//	arith.constant                       value
//	memref.view                          (source, byte_shift, sizes...) -> memref
//	memref.reinterpret_cast              (source, dyn offsets, dyn sizes, dyn strides)
//	                                     static_offsets, static_sizes, static_strides
//	memref.alloc, memref.alloca          (dynamic sizes...) -> memref
//	memref.dealloc                       (memref)
//	gpu.alloc                            () -> buffer
//	gpu.dealloc                          (buffer)
//	gpu.mem.view                         (buffer, offset:ui64, size:ui64) -> buffer
//	gpu.constant.ui64                    value -> ui64
//	gpu.async.execute                    one region, block (chain, stream)
//	gpu.async.yield                      (chain)
//
// The dnn.* kinds are compute-library leaves. They carry no structure the conversion
// looks into and are legal as long as their types are.
package dialect
