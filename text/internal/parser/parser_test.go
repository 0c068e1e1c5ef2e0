package parser

import (
	"testing"

	"github.com/wippyai/gpu-async/ir"
	"github.com/wippyai/gpu-async/text/internal/token"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"i1", "i1"},
		{"i12", "i12"},
		{"ui64", "ui64"},
		{"index", "index"},
		{"bf16", "bf16"},
		{"chain", "chain"},
		{"buffer", "buffer"},
		{"(buffer 64 i8)", "(buffer 64 i8)"},
		{"(memref ? 4 f32)", "(memref ? 4 f32)"},
		{"(memref f64)", "(memref f64)"},
		{"(complex (complex f32))", "(complex (complex f32))"},
		{"(opaque dnn.tensor_descriptor)", "(opaque dnn.tensor_descriptor)"},
		{"(fn (i32 (memref 2 f32)) (index))", "(fn (i32 (memref 2 f32)) (index))"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := New(token.Tokenize(tt.input))
			got, err := p.parseType()
			if err != nil {
				t.Fatalf("parseType(%q): %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("parseType(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseType_Errors(t *testing.T) {
	for _, input := range []string{"", "u8", "i0", "(tensor 4 f32)", "(memref -1 f32)", "(memref 4", "$x"} {
		p := New(token.Tokenize(input))
		if _, err := p.parseType(); err == nil {
			t.Errorf("parseType(%q) should fail", input)
		}
	}
}

func TestParseAttrValue(t *testing.T) {
	tests := []struct {
		input string
		want  ir.Attribute
	}{
		{"42", ir.IntAttr{Value: 42}},
		{"-1", ir.IntAttr{Value: -1}},
		{"0x10", ir.IntAttr{Value: 16}},
		{`"main"`, ir.StringAttr{Value: "main"}},
		{`"a\nb"`, ir.StringAttr{Value: "a\nb"}},
		{"(ints)", ir.IntsAttr{}},
		{"(ints 0 -1 3)", ir.IntsAttr{Values: []int64{0, -1, 3}}},
		{"(type f32)", ir.TypeAttr{Type: ir.F32}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := New(token.Tokenize(tt.input))
			got, err := p.parseAttrValue()
			if err != nil {
				t.Fatalf("parseAttrValue(%q): %v", tt.input, err)
			}
			if got.String() != tt.want.String() {
				t.Errorf("parseAttrValue(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}
