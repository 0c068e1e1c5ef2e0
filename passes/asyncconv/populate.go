package asyncconv

import (
	"github.com/wippyai/gpu-async/dialect"
	"github.com/wippyai/gpu-async/rewrite"
)

// Populate adds the call legality rule to target and registers the conversion
// patterns in patterns.
func Populate(patterns *rewrite.PatternSet, converter *rewrite.TypeConverter, target *rewrite.Target) {
	AddCallLegality(target)

	patterns.Add(
		NewFuncSignaturePattern(converter),
		NewConvertCallPattern(converter),
		NewConvertReturnPattern(),
	)

	patterns.Add(NewOutlinePattern(target))

	patterns.Add(
		NewFoldViewPattern(converter),
		NewFoldReinterpretCastPattern(),
		NewAllocPattern(dialect.MemRefAlloc, converter),
		NewAllocPattern(dialect.MemRefAlloca, converter),
		NewDeallocPattern(),
	)
}
