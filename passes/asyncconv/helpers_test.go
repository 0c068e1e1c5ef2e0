package asyncconv

import (
	"testing"

	"github.com/janpfeifer/must"

	"github.com/wippyai/gpu-async/dialect"
	"github.com/wippyai/gpu-async/ir"
	"github.com/wippyai/gpu-async/text"
)

// parseFunc parses src and returns the module and its function called name.
func parseFunc(t *testing.T, src, name string) (*ir.Operation, *ir.Operation) {
	t.Helper()
	m := must.M1(text.Parse(src))
	fn := dialect.LookupFunc(m, name)
	if fn == nil {
		t.Fatalf("function %q not found", name)
	}
	return m, fn
}

// kinds returns the kinds of the ops of b.
func kinds(b *ir.Block) []ir.Kind {
	var out []ir.Kind
	for _, op := range b.Operations() {
		out = append(out, op.Kind())
	}
	return out
}

// opsOfKind returns every op of kind nested in root.
func opsOfKind(root *ir.Operation, kind ir.Kind) []*ir.Operation {
	var out []*ir.Operation
	root.Walk(func(op *ir.Operation) ir.WalkResult {
		if op.Is(kind) {
			out = append(out, op)
		}
		return ir.Advance
	})
	return out
}
