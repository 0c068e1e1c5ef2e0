package text

import (
	"strconv"
	"strings"

	"github.com/wippyai/gpu-async/dialect"
	"github.com/wippyai/gpu-async/ir"
)

const indentUnit = "  "

type printer struct {
	b     strings.Builder
	names map[*ir.Value]string
	taken map[string]bool
	next  int
}

func newPrinter() *printer {
	return &printer{}
}

// resetScope starts a new value namespace for the tree rooted at root. Existing names
// are kept unless two values share one; unnamed values get the smallest free number.
func (p *printer) resetScope(root *ir.Operation) {
	p.names = make(map[*ir.Value]string)
	p.taken = make(map[string]bool)
	p.next = 0
	root.Walk(func(op *ir.Operation) ir.WalkResult {
		for _, r := range op.Regions() {
			for _, b := range r.Blocks() {
				for _, a := range b.Arguments() {
					p.reserve(a)
				}
			}
		}
		for _, v := range op.Results() {
			p.reserve(v)
		}
		return ir.Advance
	})
}

func (p *printer) reserve(v *ir.Value) {
	if v.Name() == "" || p.taken[v.Name()] {
		return
	}
	p.taken[v.Name()] = true
	p.names[v] = v.Name()
}

func (p *printer) name(v *ir.Value) string {
	if n, ok := p.names[v]; ok {
		return "$" + n
	}
	for p.taken[strconv.Itoa(p.next)] {
		p.next++
	}
	n := strconv.Itoa(p.next)
	p.taken[n] = true
	p.names[v] = n
	return "$" + n
}

func (p *printer) indent(depth int) {
	p.b.WriteByte('\n')
	p.b.WriteString(strings.Repeat(indentUnit, depth))
}

func (p *printer) printModule(m *ir.Operation) {
	p.b.WriteString("(module")
	for _, na := range m.Attrs() {
		p.indent(1)
		p.printAttr(na)
	}
	if m.NumRegions() > 0 {
		for _, b := range m.Region(0).Blocks() {
			for _, op := range b.Operations() {
				p.resetScope(op)
				if isPrintableFunc(op) {
					p.printFunc(op, 1)
				} else {
					p.printOp(op, 1)
				}
			}
		}
	}
	p.b.WriteString(")\n")
}

// isPrintableFunc reports whether fn fits the (func ...) short form.
func isPrintableFunc(fn *ir.Operation) bool {
	if !fn.Is(dialect.Func) || fn.NumRegions() != 1 || fn.Region(0).NumBlocks() != 1 {
		return false
	}
	if _, ok := ir.AttrString(fn, dialect.AttrSymName); !ok {
		return false
	}
	t, ok := ir.AttrType(fn, dialect.AttrFunctionType)
	if !ok {
		return false
	}
	sig, ok := t.(ir.FunctionType)
	if !ok {
		return false
	}
	return ir.TypeListsEqual(sig.Inputs, fn.Region(0).Front().ArgumentTypes())
}

func (p *printer) printFunc(fn *ir.Operation, depth int) {
	name, _ := ir.AttrString(fn, dialect.AttrSymName)
	t, _ := ir.AttrType(fn, dialect.AttrFunctionType)
	sig := t.(ir.FunctionType)
	body := fn.Region(0).Front()

	p.indent(depth)
	p.b.WriteString("(func ")
	p.b.WriteString(strconv.Quote(name))
	for _, a := range body.Arguments() {
		p.b.WriteString(" (param ")
		p.b.WriteString(p.name(a))
		p.b.WriteByte(' ')
		p.b.WriteString(a.Type().String())
		p.b.WriteByte(')')
	}
	p.b.WriteString(" (result")
	for _, r := range sig.Results {
		p.b.WriteByte(' ')
		p.b.WriteString(r.String())
	}
	p.b.WriteByte(')')
	for _, na := range fn.Attrs() {
		if na.Name == dialect.AttrSymName || na.Name == dialect.AttrFunctionType {
			continue
		}
		p.b.WriteByte(' ')
		p.printAttr(na)
	}
	for _, op := range body.Operations() {
		p.printOp(op, depth+1)
	}
	p.b.WriteByte(')')
}

func (p *printer) printOp(op *ir.Operation, depth int) {
	p.indent(depth)
	p.b.WriteString("(op ")
	p.b.WriteString(strconv.Quote(string(op.Kind())))
	if op.NumOperands() > 0 {
		p.b.WriteString(" (operands")
		for _, v := range op.Operands() {
			p.b.WriteByte(' ')
			p.b.WriteString(p.name(v))
		}
		p.b.WriteByte(')')
	}
	for _, na := range op.Attrs() {
		p.b.WriteByte(' ')
		p.printAttr(na)
	}
	for _, r := range op.Results() {
		p.b.WriteString(" (result ")
		p.b.WriteString(p.name(r))
		p.b.WriteByte(' ')
		p.b.WriteString(r.Type().String())
		p.b.WriteByte(')')
	}
	for _, r := range op.Regions() {
		p.indent(depth + 1)
		p.b.WriteString("(region")
		for _, b := range r.Blocks() {
			p.indent(depth + 2)
			p.b.WriteString("(block")
			for _, a := range b.Arguments() {
				p.b.WriteString(" (arg ")
				p.b.WriteString(p.name(a))
				p.b.WriteByte(' ')
				p.b.WriteString(a.Type().String())
				p.b.WriteByte(')')
			}
			for _, nested := range b.Operations() {
				p.printOp(nested, depth+3)
			}
			p.b.WriteByte(')')
		}
		p.b.WriteByte(')')
	}
	p.b.WriteByte(')')
}

func (p *printer) printAttr(na ir.NamedAttribute) {
	p.b.WriteString("(attr ")
	p.b.WriteString(na.Name)
	p.b.WriteByte(' ')
	p.b.WriteString(na.Value.String())
	p.b.WriteByte(')')
}
