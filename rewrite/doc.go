// Package rewrite is a small pattern rewriting framework over the ir package.
//
// A Pattern matches one operation kind and either rewrites it through a Rewriter or
// declines with a no-match error. A PatternSet groups patterns by root kind. The
// Driver applies a PatternSet greedily until no pattern applies anymore:
//
//	patterns := rewrite.NewPatternSet()
//	patterns.Add(myPattern)
//	res, err := rewrite.NewDriver(patterns, rewrite.Config{}).Run(module)
//
// Type conversion is expressed with a TypeConverter (1:N) and legality with a Target.
// Both are queries only: the driver never consults them, patterns do.
//
// Mutations go through the Rewriter so they are counted and logged. A pattern that
// must decide on a whole region before touching it stages its edits in a Txn and
// commits them only once it knows it succeeded.
package rewrite
