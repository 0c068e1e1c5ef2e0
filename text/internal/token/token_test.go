package token

import (
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			"empty",
			"",
			nil,
		},
		{
			"parens",
			"()",
			[]Token{{"(", LParen, 1}, {")", RParen, 1}},
		},
		{
			"module",
			"(module)",
			[]Token{{"(", LParen, 1}, {"module", Ident, 1}, {")", RParen, 1}},
		},
		{
			"newlines",
			"(\nmodule\n)",
			[]Token{{"(", LParen, 1}, {"module", Ident, 2}, {")", RParen, 3}},
		},
		{
			"value name",
			"$c0",
			[]Token{{"$c0", Ident, 1}},
		},
		{
			"numbered value",
			"$12",
			[]Token{{"$12", Ident, 1}},
		},
		{
			"dynamic dim",
			"(memref ? 4 f32)",
			[]Token{{"(", LParen, 1}, {"memref", Ident, 1}, {"?", Ident, 1}, {"4", Number, 1}, {"f32", Ident, 1}, {")", RParen, 1}},
		},
		{
			"negative number",
			"-42",
			[]Token{{"-42", Number, 1}},
		},
		{
			"hex number",
			"0xFF",
			[]Token{{"0xFF", Number, 1}},
		},
		{
			"string with escape",
			`"a\"b"`,
			[]Token{{`a\"b`, String, 1}},
		},
		{
			"op kind string",
			`(op "memref.view")`,
			[]Token{{"(", LParen, 1}, {"op", Ident, 1}, {"memref.view", String, 1}, {")", RParen, 1}},
		},
		{
			"line comment",
			";; comment\n(module)",
			[]Token{{"(", LParen, 2}, {"module", Ident, 2}, {")", RParen, 2}},
		},
		{
			"block comment",
			"(; outer (; inner ;) ;)(module)",
			[]Token{{"(", LParen, 1}, {"module", Ident, 1}, {")", RParen, 1}},
		},
		{
			"block comment spanning lines",
			"(;\n\n;)(module)",
			[]Token{{"(", LParen, 3}, {"module", Ident, 3}, {")", RParen, 3}},
		},
		{
			"unterminated block comment",
			"(module (; open",
			[]Token{{"(", LParen, 1}, {"module", Ident, 1}},
		},
		{
			"string spanning lines",
			"\"a\nb\" x",
			[]Token{{"a\nb", String, 1}, {"x", Ident, 2}},
		},
		{
			"unterminated string",
			`(op "memref`,
			[]Token{{"(", LParen, 1}, {"op", Ident, 1}, {"memref", String, 1}},
		},
		{
			"underscored number",
			"1_000)",
			[]Token{{"1_000", Number, 1}, {")", RParen, 1}},
		},
		{
			"stray rune",
			"@",
			[]Token{{"@", Ident, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(tt.expected), tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %+v, want %+v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestType_String(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{LParen, "'('"},
		{RParen, "')'"},
		{Ident, "identifier"},
		{String, "string"},
		{Number, "number"},
		{Type(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}
