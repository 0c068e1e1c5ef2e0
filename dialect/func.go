package dialect

import "github.com/wippyai/gpu-async/ir"

// NewFunc creates a function with an empty entry block whose arguments match the
// inputs of sig.
func NewFunc(name string, sig ir.FunctionType) *ir.Operation {
	fn := ir.NewOperation(Func, nil, nil, ir.Attrs{
		{Name: AttrSymName, Value: ir.StringAttr{Value: name}},
		{Name: AttrFunctionType, Value: ir.TypeAttr{Type: sig}},
	}, 1)
	fn.Region(0).AddBlock(ir.NewBlock(sig.Inputs...))
	return fn
}

// FuncName returns the symbol name of fn.
func FuncName(fn *ir.Operation) string {
	name, _ := ir.AttrString(fn, AttrSymName)
	return name
}

// FuncType returns the signature of fn.
func FuncType(fn *ir.Operation) (ir.FunctionType, bool) {
	t, ok := ir.AttrType(fn, AttrFunctionType)
	if !ok {
		return ir.FunctionType{}, false
	}
	ft, ok := t.(ir.FunctionType)
	return ft, ok
}

// SetFuncType replaces the signature attribute of fn. Entry block arguments are
// not touched.
func SetFuncType(fn *ir.Operation, sig ir.FunctionType) {
	fn.SetAttr(AttrFunctionType, ir.TypeAttr{Type: sig})
}

// FuncBody returns the entry block of fn, or nil for a declaration.
func FuncBody(fn *ir.Operation) *ir.Block {
	if fn.NumRegions() == 0 {
		return nil
	}
	return fn.Region(0).Front()
}

// EnclosingFunc returns the closest func.func containing op.
func EnclosingFunc(op *ir.Operation) *ir.Operation {
	for p := op.ParentOp(); p != nil; p = p.ParentOp() {
		if p.Is(Func) {
			return p
		}
	}
	return nil
}

// NewCall creates a call of callee.
func NewCall(callee string, operands []*ir.Value, results []ir.Type) *ir.Operation {
	return ir.NewOperation(Call, operands, results,
		ir.Attrs{{Name: AttrCallee, Value: ir.StringAttr{Value: callee}}}, 0)
}

// Callee returns the callee symbol of a call.
func Callee(call *ir.Operation) string {
	name, _ := ir.AttrString(call, AttrCallee)
	return name
}

// NewReturn creates a function terminator.
func NewReturn(operands ...*ir.Value) *ir.Operation {
	return ir.NewOperation(Return, operands, nil, nil, 0)
}
