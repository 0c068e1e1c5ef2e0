package ir

import (
	"fmt"
	"strings"

	"github.com/wippyai/gpu-async/errors"
)

// Kind names an operation, e.g. "memref.view". The set of kinds is open; the
// dialect package defines the ones this module knows about.
type Kind string

// Dialect returns the prefix of the kind before the first dot.
func (k Kind) Dialect() string {
	if i := strings.IndexByte(string(k), '.'); i >= 0 {
		return string(k[:i])
	}
	return ""
}

// Operation is a node of the IR tree: ordered operands, typed results, attributes and
// owned regions. An operation belongs to at most one block at a time.
type Operation struct {
	block    *Block
	kind     Kind
	operands []*Value
	results  []*Value
	attrs    Attrs
	regions  []*Region
	erased   bool
}

// NewOperation creates a detached operation with numRegions empty regions.
func NewOperation(kind Kind, operands []*Value, resultTypes []Type, attrs Attrs, numRegions int) *Operation {
	op := &Operation{kind: kind, attrs: attrs.Clone()}
	for i, v := range operands {
		op.operands = append(op.operands, v)
		if v != nil {
			v.addUse(op, i)
		}
	}
	for i, t := range resultTypes {
		op.results = append(op.results, &Value{typ: t, owner: op, index: i})
	}
	for i := 0; i < numRegions; i++ {
		op.regions = append(op.regions, &Region{parent: op})
	}
	return op
}

// Kind returns the kind of the operation.
func (op *Operation) Kind() Kind { return op.kind }

// Is reports whether op has the given kind.
func (op *Operation) Is(kind Kind) bool { return op != nil && op.kind == kind }

// Block returns the block containing op, or nil if op is detached.
func (op *Operation) Block() *Block { return op.block }

// ParentRegion returns the region containing op.
func (op *Operation) ParentRegion() *Region {
	if op.block == nil {
		return nil
	}
	return op.block.parent
}

// ParentOp returns the closest enclosing operation.
func (op *Operation) ParentOp() *Operation {
	if op.block == nil {
		return nil
	}
	return op.block.ParentOp()
}

// IsErased reports whether op was erased.
func (op *Operation) IsErased() bool { return op.erased }

// NumOperands returns the number of operands.
func (op *Operation) NumOperands() int { return len(op.operands) }

// Operand returns operand i.
func (op *Operation) Operand(i int) *Value { return op.operands[i] }

// Operands returns a copy of the operand list.
func (op *Operation) Operands() []*Value {
	out := make([]*Value, len(op.operands))
	copy(out, op.operands)
	return out
}

// OperandTypes returns the types of the operands.
func (op *Operation) OperandTypes() []Type {
	out := make([]Type, len(op.operands))
	for i, v := range op.operands {
		out[i] = v.Type()
	}
	return out
}

// SetOperand replaces operand i, keeping use lists consistent.
func (op *Operation) SetOperand(i int, v *Value) {
	if old := op.operands[i]; old != nil {
		old.removeUse(op, i)
	}
	op.operands[i] = v
	if v != nil {
		v.addUse(op, i)
	}
}

// SetOperands replaces the whole operand list.
func (op *Operation) SetOperands(vals []*Value) {
	op.dropOperandUses()
	op.operands = op.operands[:0]
	for i, v := range vals {
		op.operands = append(op.operands, v)
		if v != nil {
			v.addUse(op, i)
		}
	}
}

// NumResults returns the number of results.
func (op *Operation) NumResults() int { return len(op.results) }

// Result returns result i.
func (op *Operation) Result(i int) *Value { return op.results[i] }

// Results returns a copy of the result list.
func (op *Operation) Results() []*Value {
	out := make([]*Value, len(op.results))
	copy(out, op.results)
	return out
}

// ResultTypes returns the types of the results.
func (op *Operation) ResultTypes() []Type {
	out := make([]Type, len(op.results))
	for i, v := range op.results {
		out[i] = v.Type()
	}
	return out
}

// HasUses reports whether any result of op is used.
func (op *Operation) HasUses() bool {
	for _, r := range op.results {
		if r.HasUses() {
			return true
		}
	}
	return false
}

// NumUses returns the total number of uses of all results.
func (op *Operation) NumUses() int {
	n := 0
	for _, r := range op.results {
		n += r.NumUses()
	}
	return n
}

// Attrs returns a copy of the attribute dictionary, in order.
func (op *Operation) Attrs() Attrs { return op.attrs.Clone() }

// Attr returns the attribute called name, or nil.
func (op *Operation) Attr(name string) Attribute { return op.attrs.Get(name) }

// SetAttr sets or replaces an attribute, keeping its position if it existed.
func (op *Operation) SetAttr(name string, value Attribute) { op.attrs.set(name, value) }

// RemoveAttr removes an attribute and reports whether it was present.
func (op *Operation) RemoveAttr(name string) bool { return op.attrs.remove(name) }

// NumRegions returns the number of owned regions.
func (op *Operation) NumRegions() int { return len(op.regions) }

// Region returns owned region i.
func (op *Operation) Region(i int) *Region { return op.regions[i] }

// Regions returns the owned regions.
func (op *Operation) Regions() []*Region {
	out := make([]*Region, len(op.regions))
	copy(out, op.regions)
	return out
}

// IsAncestorOf reports whether other is op or nested anywhere inside op.
func (op *Operation) IsAncestorOf(other *Operation) bool {
	for o := other; o != nil; o = o.ParentOp() {
		if o == op {
			return true
		}
	}
	return false
}

// Remove detaches op from its block without touching its uses.
func (op *Operation) Remove() {
	if op.block != nil {
		op.block.remove(op)
	}
}

// MoveBefore moves op right before anchor, possibly into another block.
func (op *Operation) MoveBefore(anchor *Operation) {
	op.Remove()
	anchor.block.InsertBefore(anchor, op)
}

// MoveToEnd moves op to the end of b.
func (op *Operation) MoveToEnd(b *Block) {
	op.Remove()
	b.Append(op)
}

// Erase detaches op and drops the uses held by it and by everything nested in it.
// The results of op must not be used anymore.
func (op *Operation) Erase() error {
	if n := op.NumUses(); n > 0 {
		return errors.HasUses(string(op.kind), n)
	}
	op.Remove()
	op.erase()
	return nil
}

func (op *Operation) erase() {
	for _, r := range op.regions {
		for _, b := range r.blocks {
			for _, nested := range b.ops {
				nested.erase()
			}
		}
	}
	op.dropOperandUses()
	op.erased = true
}

func (op *Operation) dropOperandUses() {
	for i, v := range op.operands {
		if v != nil {
			v.removeUse(op, i)
		}
	}
}

// String returns a one-line debug description; see package text for the real printer.
func (op *Operation) String() string {
	var b strings.Builder
	b.WriteString(string(op.kind))
	if len(op.operands) > 0 {
		fmt.Fprintf(&b, " operands=%d", len(op.operands))
	}
	if len(op.results) > 0 {
		b.WriteString(" results=")
		for i, t := range op.ResultTypes() {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(t.String())
		}
	}
	if len(op.attrs) > 0 {
		b.WriteString(" {")
		b.WriteString(formatAttrs(op.attrs))
		b.WriteByte('}')
	}
	return b.String()
}

// Label returns a short name for op used in diagnostics paths,
// e.g. `func "main"` or `memref.view`.
func (op *Operation) Label() string {
	if name, ok := AttrString(op, "sym_name"); ok {
		return fmt.Sprintf("%s %q", op.kind, name)
	}
	return string(op.kind)
}

// Path returns the labels of the enclosing operations of op, outermost first,
// followed by op itself.
func (op *Operation) Path() []string {
	var path []string
	for o := op; o != nil; o = o.ParentOp() {
		path = append(path, o.Label())
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
