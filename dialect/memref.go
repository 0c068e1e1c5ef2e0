package dialect

import "github.com/wippyai/gpu-async/ir"

// NewView creates a memref.view of source shifted by byteShift bytes.
func NewView(source, byteShift *ir.Value, sizes []*ir.Value, result ir.MemRefType) *ir.Operation {
	operands := append([]*ir.Value{source, byteShift}, sizes...)
	return ir.NewOperation(MemRefView, operands, []ir.Type{result}, nil, 0)
}

// ViewSource returns the viewed memory.
func ViewSource(view *ir.Operation) *ir.Value { return view.Operand(0) }

// ViewByteShift returns the byte offset operand.
func ViewByteShift(view *ir.Operation) *ir.Value { return view.Operand(1) }

// ViewSizes returns the dynamic size operands.
func ViewSizes(view *ir.Operation) []*ir.Value { return view.Operands()[2:] }

// NewReinterpretCast creates a memref.reinterpret_cast. Entries of the static lists
// equal to ir.Dynamic take their value from the matching dynamic operand list.
func NewReinterpretCast(source *ir.Value, offsets, sizes, strides []*ir.Value,
	staticOffsets, staticSizes, staticStrides []int64, result ir.MemRefType) *ir.Operation {
	operands := []*ir.Value{source}
	operands = append(operands, offsets...)
	operands = append(operands, sizes...)
	operands = append(operands, strides...)
	return ir.NewOperation(MemRefReinterpretCast, operands, []ir.Type{result}, ir.Attrs{
		{Name: AttrStaticOffsets, Value: ir.IntsAttr{Values: staticOffsets}},
		{Name: AttrStaticSizes, Value: ir.IntsAttr{Values: staticSizes}},
		{Name: AttrStaticStrides, Value: ir.IntsAttr{Values: staticStrides}},
	}, 0)
}

// CastSource returns the source of a reinterpret_cast.
func CastSource(cast *ir.Operation) *ir.Value { return cast.Operand(0) }

// CastStaticOffsets returns the static_offsets attribute.
func CastStaticOffsets(cast *ir.Operation) []int64 {
	v, _ := ir.AttrInts(cast, AttrStaticOffsets)
	return v
}

// CastDynamicOffsets returns the offset operands of a reinterpret_cast: one per
// ir.Dynamic entry of static_offsets. Operands beyond the declared dynamic entries are
// counted as offsets when the static list is missing.
func CastDynamicOffsets(cast *ir.Operation) []*ir.Value {
	rest := cast.Operands()[1:]
	static, ok := ir.AttrInts(cast, AttrStaticOffsets)
	if !ok {
		return rest
	}
	n := countDynamic(static)
	if n > len(rest) {
		n = len(rest)
	}
	return rest[:n]
}

func countDynamic(values []int64) int {
	n := 0
	for _, v := range values {
		if v == ir.Dynamic {
			n++
		}
	}
	return n
}

// NewAlloc creates a memref.alloc or memref.alloca with dynamic size operands.
func NewAlloc(kind ir.Kind, result ir.MemRefType, dynamicSizes ...*ir.Value) *ir.Operation {
	return ir.NewOperation(kind, dynamicSizes, []ir.Type{result}, nil, 0)
}

// AllocDynamicSizes returns the dynamic size operands of an allocation.
func AllocDynamicSizes(alloc *ir.Operation) []*ir.Value { return alloc.Operands() }

// NewDealloc creates a memref.dealloc.
func NewDealloc(memref *ir.Value) *ir.Operation {
	return ir.NewOperation(MemRefDealloc, []*ir.Value{memref}, nil, nil, 0)
}
