package dialect

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/gpu-async/errors"
	"github.com/wippyai/gpu-async/ir"
)

func TestNewAsyncExecute(t *testing.T) {
	exec := NewAsyncExecute()
	body := ExecuteBody(exec)

	if body.NumArguments() != 2 {
		t.Fatalf("expected 2 block arguments, got %d", body.NumArguments())
	}
	if !ir.TypesEqual(body.Argument(0).Type(), ir.Chain) || !ir.TypesEqual(body.Argument(1).Type(), ir.Stream) {
		t.Fatalf("unexpected argument types %v", body.ArgumentTypes())
	}
	yield := body.Terminator()
	if !yield.Is(GPUAsyncYield) {
		t.Fatalf("expected yield terminator, got %s", yield.Kind())
	}
	if yield.Operand(0) != body.Argument(0) {
		t.Error("yield should return the incoming chain")
	}
	if !IsExecuteBody(body) {
		t.Error("IsExecuteBody = false for execute body")
	}
}

func TestConstantIndex(t *testing.T) {
	c := NewConstantIndex(0)
	if v, ok := ConstantIndex(c.Result(0)); !ok || v != 0 {
		t.Errorf("ConstantIndex = %d, %v; want 0, true", v, ok)
	}

	i32 := NewConstant(0, ir.I32)
	if _, ok := ConstantIndex(i32.Result(0)); ok {
		t.Error("i32 constant should not be an index constant")
	}

	b := ir.NewBlock(ir.Index)
	if _, ok := ConstantIndex(b.Argument(0)); ok {
		t.Error("block argument should not be a constant")
	}
}

func TestFuncAccessors(t *testing.T) {
	sig := ir.FunctionType{Inputs: []ir.Type{ir.I32, ir.F32}}
	fn := NewFunc("main", sig)

	if FuncName(fn) != "main" {
		t.Errorf("FuncName = %q", FuncName(fn))
	}
	got, ok := FuncType(fn)
	if !ok || !ir.TypesEqual(got, sig) {
		t.Errorf("FuncType = %v, %v", got, ok)
	}
	if FuncBody(fn).NumArguments() != 2 {
		t.Errorf("entry block should mirror inputs")
	}

	m := NewModule()
	ModuleBody(m).Append(fn)
	if LookupFunc(m, "main") != fn {
		t.Error("LookupFunc did not find main")
	}
	if LookupFunc(m, "other") != nil {
		t.Error("LookupFunc found a missing function")
	}

	ret := NewReturn()
	FuncBody(fn).Append(ret)
	if EnclosingFunc(ret) != fn {
		t.Error("EnclosingFunc mismatch")
	}
}

func TestCastDynamicOffsets(t *testing.T) {
	b := ir.NewBlock(ir.BufferType{Elem: ir.F32, Shape: []int{16}}, ir.Index)
	res := ir.MemRefType{Elem: ir.F32, Shape: []int{4, 4}}

	static := NewReinterpretCast(b.Argument(0), nil, nil, nil,
		[]int64{0}, []int64{4, 4}, []int64{4, 1}, res)
	if n := len(CastDynamicOffsets(static)); n != 0 {
		t.Errorf("static cast has %d dynamic offsets", n)
	}

	dynamic := NewReinterpretCast(b.Argument(0), []*ir.Value{b.Argument(1)}, nil, nil,
		[]int64{ir.Dynamic}, []int64{4, 4}, []int64{4, 1}, res)
	offs := CastDynamicOffsets(dynamic)
	if len(offs) != 1 || offs[0] != b.Argument(1) {
		t.Errorf("dynamic offsets = %v", offs)
	}
}

func TestKinds(t *testing.T) {
	for _, k := range Kinds() {
		if !Known(k) {
			t.Errorf("%s not known", k)
		}
	}
	if Known("test.op") {
		t.Error("test.op should not be known")
	}
	if !IsDNN(DNNPoolingForward) || IsDNN(GPUAlloc) {
		t.Error("IsDNN mismatch")
	}
	if !IsTerminator(Return) || !IsTerminator(GPUAsyncYield) || IsTerminator(Call) {
		t.Error("IsTerminator mismatch")
	}
}

func TestVerifyOp(t *testing.T) {
	buf := ir.NewBlock(ir.BufferType{Shape: []int{4}, Elem: ir.F32}).Argument(0)
	shift := NewConstantIndex(0).Result(0)
	view := ir.MemRefType{Shape: []int{1}, Elem: ir.F32}

	tests := []struct {
		name string
		op   *ir.Operation
		ok   bool
	}{
		{"built view", NewView(buf, shift, nil, view), true},
		{"built dealloc", NewGPUDealloc(buf), true},
		{"built execute", NewAsyncExecute(), true},
		{"free shape", ir.NewOperation(Call, nil, nil, nil, 0), true},
		{"unknown kind", ir.NewOperation("test.op", nil, nil, nil, 3), true},
		{"view without shift", ir.NewOperation(MemRefView, []*ir.Value{buf}, []ir.Type{view}, nil, 0), false},
		{"dealloc with two operands", ir.NewOperation(MemRefDealloc, []*ir.Value{buf, buf}, nil, nil, 0), false},
		{"alloc without result", ir.NewOperation(GPUAlloc, nil, nil, nil, 0), false},
		{"execute without region", ir.NewOperation(GPUAsyncExecute, nil, nil, nil, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyOp(tt.op)
			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var e *errors.Error
			if !stderrors.As(err, &e) {
				t.Fatalf("expected *errors.Error, got %v", err)
			}
			if e.Kind != errors.KindInvalidIR || e.Op != string(tt.op.Kind()) {
				t.Errorf("got %v", err)
			}
		})
	}
}
