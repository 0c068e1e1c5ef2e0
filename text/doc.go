// Package text reads and writes the s-expression form of the IR.
//
//	(module
//	  (func "main" (param $a (memref 64 i8)) (result)
//	    (op "arith.constant" (attr value 0) (result $c0 index))
//	    (op "memref.view" (operands $a $c0) (result $v (memref 4 4 f32)))
//	    (op "func.return")))
//
// Types:
//
//	i1 i8 i32 i64 ui8 ui64 ...   integers of any width
//	index f16 bf16 f32 f64
//	(complex T)
//	(memref d... T)              d is a number or ? for a dynamic extent
//	(buffer d... T) buffer       shaped or opaque device buffer
//	chain stream token
//	(opaque name)
//	(fn (T...) (T...))
//
// Attributes are (attr name value) with a number, a string, (ints n...) or (type T).
// Ops with regions list them as (region (block (arg $x T)... op...)...).
//
// Value names are visible from their definition to the end of the enclosing function.
// Print names unnamed values $0, $1, ... and Parse(Print(m)) rebuilds m.
// Comments are ";;" to end of line and "(; ;)" blocks.
package text
