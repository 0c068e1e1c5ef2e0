package asyncconv

import (
	"github.com/wippyai/gpu-async/dialect"
	"github.com/wippyai/gpu-async/ir"
	"github.com/wippyai/gpu-async/rewrite"
)

// FuncSignaturePattern converts the signature of a function and the arguments of its
// entry block. An argument converted to several types is followed by the extra
// arguments, and the group is recorded in the rewriter value mapping.
type FuncSignaturePattern struct {
	converter *rewrite.TypeConverter
	rewrite.Base
}

// NewFuncSignaturePattern creates the signature conversion.
func NewFuncSignaturePattern(converter *rewrite.TypeConverter) *FuncSignaturePattern {
	return &FuncSignaturePattern{
		Base:      rewrite.Base{PatternName: "convert-func-signature", RootKind: dialect.Func, PatternBenefit: 1},
		converter: converter,
	}
}

// MatchAndRewrite implements rewrite.Pattern.
func (p *FuncSignaturePattern) MatchAndRewrite(fn *ir.Operation, rw *rewrite.Rewriter) error {
	sig, ok := dialect.FuncType(fn)
	if !ok {
		return rw.NotifyMatchFailure(fn, "missing %s attribute", dialect.AttrFunctionType)
	}
	if p.converter.IsSignatureLegal(sig) {
		return rw.NotifyMatchFailure(fn, "signature already legal")
	}

	inputs, err := p.converter.ConvertTypeGroups(sig.Inputs)
	if err != nil {
		return rw.NotifyConversionFailure(fn, "failed to convert argument types: %v", err)
	}
	results, err := p.converter.ConvertTypes(sig.Results)
	if err != nil {
		return rw.NotifyConversionFailure(fn, "failed to convert result types: %v", err)
	}
	body := dialect.FuncBody(fn)
	if body != nil && body.NumArguments() != len(sig.Inputs) {
		return rw.NotifyConversionFailure(fn, "entry block has %d arguments, signature has %d",
			body.NumArguments(), len(sig.Inputs))
	}
	for i, group := range inputs {
		if len(group) == 0 {
			return rw.NotifyConversionFailure(fn, "argument #%d converts to no type", i)
		}
	}

	var flat []ir.Type
	for _, group := range inputs {
		flat = append(flat, group...)
	}

	rw.UpdateInPlace(fn, func() {
		dialect.SetFuncType(fn, ir.FunctionType{Inputs: flat, Results: results})
		if body == nil {
			return
		}
		pos := 0
		for _, group := range inputs {
			arg := body.Argument(pos)
			arg.SetType(group[0])
			values := []*ir.Value{arg}
			for j := 1; j < len(group); j++ {
				values = append(values, body.InsertArgument(pos+j, group[j]))
			}
			if len(group) > 1 {
				rw.MapValue(arg, values)
			}
			pos += len(group)
		}
	})
	return nil
}

// ConvertCallPattern rebuilds a call whose result types need conversion or whose
// operands were expanded by a 1:N conversion.
type ConvertCallPattern struct {
	converter *rewrite.TypeConverter
	rewrite.Base
}

// NewConvertCallPattern creates the call conversion.
func NewConvertCallPattern(converter *rewrite.TypeConverter) *ConvertCallPattern {
	return &ConvertCallPattern{
		Base:      rewrite.Base{PatternName: "convert-call-types", RootKind: dialect.Call},
		converter: converter,
	}
}

// MatchAndRewrite implements rewrite.Pattern.
func (p *ConvertCallPattern) MatchAndRewrite(op *ir.Operation, rw *rewrite.Rewriter) error {
	if rw.IsConverted(op) {
		return rw.NotifyMatchFailure(op, "call already converted")
	}
	groups, err := p.converter.ConvertTypeGroups(op.ResultTypes())
	if err != nil {
		return rw.NotifyConversionFailure(op, "failed to convert result types")
	}
	operands := rw.ExpandValues(op.Operands())

	changed := len(operands) != op.NumOperands()
	var resultTypes []ir.Type
	for i, group := range groups {
		if len(group) == 0 && op.Result(i).HasUses() {
			return rw.NotifyConversionFailure(op, "failed to convert result types")
		}
		if len(group) != 1 || !ir.TypesEqual(group[0], op.Result(i).Type()) {
			changed = true
		}
		resultTypes = append(resultTypes, group...)
	}
	if !changed {
		return rw.NotifyMatchFailure(op, "call types already legal")
	}

	call := ir.NewOperation(dialect.Call, operands, resultTypes, op.Attrs(), 0)
	rw.SetInsertionPoint(op)
	rw.Create(call)
	rw.MarkConverted(call)

	next := 0
	for i, old := range op.Results() {
		n := len(groups[i])
		if n == 0 {
			continue
		}
		group := call.Results()[next : next+n]
		group[0].SetName(old.Name())
		old.ReplaceAllUsesWith(group[0])
		if n > 1 {
			rw.MapValue(old, group)
		}
		next += n
	}
	return rw.EraseOp(op)
}

// ConvertReturnPattern rebuilds a return whose operands were expanded by a 1:N
// conversion so it matches the converted result list of its function.
type ConvertReturnPattern struct {
	rewrite.Base
}

// NewConvertReturnPattern creates the return conversion.
func NewConvertReturnPattern() *ConvertReturnPattern {
	return &ConvertReturnPattern{
		Base: rewrite.Base{PatternName: "convert-return-operands", RootKind: dialect.Return},
	}
}

// MatchAndRewrite implements rewrite.Pattern.
func (p *ConvertReturnPattern) MatchAndRewrite(op *ir.Operation, rw *rewrite.Rewriter) error {
	if rw.IsConverted(op) {
		return rw.NotifyMatchFailure(op, "return already converted")
	}
	fn := dialect.EnclosingFunc(op)
	if fn == nil {
		return rw.NotifyMatchFailure(op, "return outside of a function")
	}
	sig, ok := dialect.FuncType(fn)
	if !ok {
		return rw.NotifyMatchFailure(op, "function has no signature")
	}
	if len(sig.Results) == op.NumOperands() {
		return rw.NotifyMatchFailure(op, "operands match the signature")
	}
	operands := rw.ExpandValues(op.Operands())
	if len(operands) != len(sig.Results) {
		return rw.NotifyConversionFailure(op, "return has %d operand(s) after expansion, signature has %d result(s)",
			len(operands), len(sig.Results))
	}
	ret, err := rw.ReplaceOpWithNew(op, ir.NewOperation(dialect.Return, operands, nil, op.Attrs(), 0))
	if err != nil {
		return err
	}
	rw.MarkConverted(ret)
	return nil
}
