package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseConvert,
				Kind:   KindConversion,
				Path:   []string{"module", "func main"},
				Op:     "func.call",
				Type:   "(memref 4 f32)",
				Detail: "failed to convert result types",
			},
			contains: []string{"[convert]", "conversion", "module/func main", "func.call", "(memref 4 f32)", "failed to convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseVerify,
				Kind:  KindInvalidIR,
			},
			contains: []string{"[verify]", "invalid_ir"},
		},
		{
			name:     "error with line",
			err:      Syntax(7, "expected %s", "')'"),
			contains: []string{"[parse]", "syntax", "line 7", "expected ')'"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseDrive,
				Kind:   KindUnsupported,
				Detail: "abort",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[drive]", "unsupported", "abort", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseSize,
		Kind:  KindUnsupported,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseRewrite,
		Kind:  KindNoMatch,
		Op:    "memref.view",
	}

	if !err.Is(&Error{Phase: PhaseRewrite, Kind: KindNoMatch}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseConvert, Kind: KindNoMatch}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseRewrite, Kind: KindConversion}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseRewrite, Kind: KindNoMatch}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseConvert, KindConversion).
		Path("module", "func f").
		Op("func.call").
		Type("(memref 4 f32)").
		Line(3).
		Value(42).
		Cause(cause).
		Detail("expected %d results, got %d", 2, 1).
		Build()

	if err.Phase != PhaseConvert {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseConvert)
	}
	if err.Kind != KindConversion {
		t.Errorf("Kind = %v, want %v", err.Kind, KindConversion)
	}
	if len(err.Path) != 2 || err.Path[0] != "module" || err.Path[1] != "func f" {
		t.Errorf("Path = %v, want [module func f]", err.Path)
	}
	if err.Op != "func.call" {
		t.Errorf("Op = %v, want 'func.call'", err.Op)
	}
	if err.Type != "(memref 4 f32)" {
		t.Errorf("Type = %v", err.Type)
	}
	if err.Line != 3 {
		t.Errorf("Line = %v, want 3", err.Line)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected 2 results, got 1" {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("NoMatch", func(t *testing.T) {
		err := NoMatch("memref.view", "expected no sizes")
		if err.Kind != KindNoMatch || err.Phase != PhaseRewrite {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
		if !IsNoMatch(err) {
			t.Error("IsNoMatch should be true")
		}
	})

	t.Run("ConversionFailed", func(t *testing.T) {
		err := ConversionFailed("func.call", "failed to convert result types")
		if err.Kind != KindConversion {
			t.Errorf("Kind = %v, want %v", err.Kind, KindConversion)
		}
		if IsNoMatch(err) {
			t.Error("conversion failure is not a no-match")
		}
	})

	t.Run("UnsupportedType", func(t *testing.T) {
		err := UnsupportedType(PhaseSize, "index", "no byte size")
		if err.Kind != KindUnsupported || err.Type != "index" {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("UseBeforeDef", func(t *testing.T) {
		err := UseBeforeDef([]string{"func f"}, "func.call", 1)
		if err.Kind != KindUseBeforeDef {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUseBeforeDef)
		}
		if err.Value != 1 {
			t.Errorf("Value = %v, want 1", err.Value)
		}
	})

	t.Run("HasUses", func(t *testing.T) {
		err := HasUses("memref.alloc", 2)
		if !strings.Contains(err.Detail, "2") {
			t.Errorf("Detail = %v, should contain use count", err.Detail)
		}
	})

	t.Run("NotConverged", func(t *testing.T) {
		err := NotConverged(10)
		if err.Kind != KindNotConverged || err.Value != 10 {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("UnknownValue", func(t *testing.T) {
		err := UnknownValue(4, "$x")
		if err.Line != 4 || !strings.Contains(err.Error(), "$x") {
			t.Errorf("got %v", err)
		}
	})

	t.Run("UnknownType", func(t *testing.T) {
		err := UnknownType(2, "f128")
		if err.Kind != KindUnknownType || err.Type != "f128" {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := errors.New("boom")
		err := Wrap(PhaseDrive, KindUnsupported, cause, "pass aborted")
		if !errors.Is(err, cause) {
			t.Error("Wrap should keep the cause")
		}
	})
}

func TestIsNoMatch_ForeignError(t *testing.T) {
	if IsNoMatch(errors.New("plain")) {
		t.Error("plain errors are never no-match")
	}
	if IsNoMatch(nil) {
		t.Error("nil is never no-match")
	}
}
