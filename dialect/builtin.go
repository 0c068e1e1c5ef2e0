package dialect

import "github.com/wippyai/gpu-async/ir"

// NewModule creates an empty module with its single body block.
func NewModule() *ir.Operation {
	m := ir.NewOperation(Module, nil, nil, nil, 1)
	m.Region(0).AddBlock(ir.NewBlock())
	return m
}

// ModuleBody returns the block holding the functions of m.
func ModuleBody(m *ir.Operation) *ir.Block {
	return m.Region(0).Front()
}

// Funcs returns the functions of m in order.
func Funcs(m *ir.Operation) []*ir.Operation {
	var out []*ir.Operation
	for _, op := range ModuleBody(m).Operations() {
		if op.Is(Func) {
			out = append(out, op)
		}
	}
	return out
}

// LookupFunc returns the function of m called name, or nil.
func LookupFunc(m *ir.Operation, name string) *ir.Operation {
	for _, fn := range Funcs(m) {
		if FuncName(fn) == name {
			return fn
		}
	}
	return nil
}

// NewUnrealizedCast bridges v to type to without changing its bits.
func NewUnrealizedCast(v *ir.Value, to ir.Type) *ir.Operation {
	return ir.NewOperation(UnrealizedConversionCast, []*ir.Value{v}, []ir.Type{to}, nil, 0)
}

// NewConstant creates an arith.constant of type t.
func NewConstant(value int64, t ir.Type) *ir.Operation {
	return ir.NewOperation(Constant, nil, []ir.Type{t},
		ir.Attrs{{Name: AttrValue, Value: ir.IntAttr{Value: value}}}, 0)
}

// NewConstantIndex creates an index typed arith.constant.
func NewConstantIndex(value int64) *ir.Operation {
	return NewConstant(value, ir.Index)
}

// ConstantIndex returns the value of v if it is produced by an index typed
// arith.constant.
func ConstantIndex(v *ir.Value) (int64, bool) {
	def := v.DefiningOp()
	if !def.Is(Constant) {
		return 0, false
	}
	if _, ok := v.Type().(ir.IndexType); !ok {
		return 0, false
	}
	return ir.AttrInt(def, AttrValue)
}
