package text

import (
	"strings"

	"github.com/wippyai/gpu-async/dialect"
	"github.com/wippyai/gpu-async/ir"
	"github.com/wippyai/gpu-async/text/internal/parser"
	"github.com/wippyai/gpu-async/text/internal/token"
)

// Parse builds a builtin.module from its text form.
func Parse(source string) (*ir.Operation, error) {
	tokens := token.Tokenize(source)
	return parser.New(tokens).Parse()
}

// Print returns the text form of op. A builtin.module prints as a (module ...) form
// that Parse accepts; any other op prints as a single (op ...) form.
func Print(op *ir.Operation) string {
	p := newPrinter()
	if op.Is(dialect.Module) {
		p.printModule(op)
		return p.b.String()
	}
	p.resetScope(op)
	p.printOp(op, 0)
	return strings.TrimPrefix(p.b.String(), "\n") + "\n"
}
