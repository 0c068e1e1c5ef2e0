package ir

import (
	"fmt"

	"github.com/wippyai/gpu-async/errors"
)

// Verify checks the structural invariants of the tree rooted at root:
//   - parent links of ops, blocks and regions are consistent
//   - no operand is nil or produced by an erased op
//   - every operand is defined earlier in the same block or in an enclosing block
//   - use lists match the operand lists
func Verify(root *Operation, opts ...VerifyOption) error {
	v := &verifier{visible: make(map[*Value]int), transparent: make(map[Kind]bool)}
	for _, opt := range opts {
		opt(v)
	}
	return v.verifyOp(root, []string{root.Label()})
}

// VerifyOption configures Verify.
type VerifyOption func(*verifier)

// Transparent makes the regions of ops of the given kinds transparent: the values
// defined at the top level of their blocks stay visible to the ops following the
// owning op. Execute regions work this way because they are later inlined into the
// stream-ordered body of their function.
func Transparent(kinds ...Kind) VerifyOption {
	return func(v *verifier) {
		for _, k := range kinds {
			v.transparent[k] = true
		}
	}
}

type verifier struct {
	visible     map[*Value]int
	transparent map[Kind]bool
}

func (v *verifier) verifyOp(op *Operation, path []string) error {
	if op.erased {
		return errors.InvalidIR(path, string(op.kind), "erased operation still in the tree")
	}
	for i, operand := range op.operands {
		if operand == nil {
			return errors.InvalidIR(path, string(op.kind), fmt.Sprintf("operand #%d is nil", i))
		}
		if def := operand.owner; def != nil && def.erased {
			return errors.InvalidIR(path, string(op.kind), fmt.Sprintf("operand #%d is produced by an erased op", i))
		}
		if v.visible[operand] == 0 {
			return errors.UseBeforeDef(path, string(op.kind), i)
		}
		if !hasUse(operand, op, i) {
			return errors.InvalidIR(path, string(op.kind), fmt.Sprintf("operand #%d missing from use list", i))
		}
	}
	for ri, r := range op.regions {
		if r.parent != op {
			return errors.InvalidIR(path, string(op.kind), fmt.Sprintf("region #%d has a wrong parent", ri))
		}
		for bi, b := range r.blocks {
			if b.parent != r {
				return errors.InvalidIR(path, string(op.kind), fmt.Sprintf("block #%d of region #%d has a wrong parent", bi, ri))
			}
			if err := v.verifyBlock(b, append(path, fmt.Sprintf("region %d block %d", ri, bi))); err != nil {
				return err
			}
		}
	}
	return nil
}

func (v *verifier) verifyBlock(b *Block, path []string) error {
	for _, a := range b.args {
		v.visible[a]++
	}
	defer func() {
		for _, a := range b.args {
			v.visible[a]--
		}
	}()

	var defined []*Value
	defer func() {
		for _, d := range defined {
			v.visible[d]--
		}
	}()

	for i, op := range b.ops {
		if op.block != b {
			return errors.InvalidIR(path, string(op.kind), fmt.Sprintf("op #%d has a wrong parent block", i))
		}
		if err := v.verifyOp(op, append(path, fmt.Sprintf("%d:%s", i, op.Label()))); err != nil {
			return err
		}
		for _, r := range v.defines(op) {
			v.visible[r]++
			defined = append(defined, r)
		}
	}
	return nil
}

// defines returns the values op makes visible to the ops following it.
func (v *verifier) defines(op *Operation) []*Value {
	out := op.results
	if !v.transparent[op.kind] {
		return out
	}
	out = append([]*Value(nil), out...)
	for _, r := range op.regions {
		for _, b := range r.blocks {
			for _, nested := range b.ops {
				out = append(out, v.defines(nested)...)
			}
		}
	}
	return out
}

func hasUse(v *Value, owner *Operation, index int) bool {
	for _, u := range v.uses {
		if u.Owner == owner && u.Index == index {
			return true
		}
	}
	return false
}
