package ir

// Use is one operand slot referring to a Value.
type Use struct {
	Owner *Operation
	Index int
}

// Value is an SSA value: either the result of an Operation or an argument of a Block.
//
// Identity is pointer identity. Moving the defining operation between blocks never
// changes a Value; only the rewrite helpers below redirect its uses.
type Value struct {
	typ   Type
	owner *Operation
	block *Block
	name  string
	uses  []Use
	index int
}

// Type returns the type of the value.
func (v *Value) Type() Type { return v.typ }

// SetType changes the type of the value in place. Used by signature conversion.
func (v *Value) SetType(t Type) { v.typ = t }

// Name returns the textual name of the value, or "" if it has none.
func (v *Value) Name() string { return v.name }

// SetName sets the textual name used by the printer.
func (v *Value) SetName(name string) { v.name = name }

// DefiningOp returns the operation producing v, or nil for block arguments.
func (v *Value) DefiningOp() *Operation { return v.owner }

// OwnerBlock returns the block declaring v as an argument, or nil for op results.
func (v *Value) OwnerBlock() *Block { return v.block }

// ParentBlock returns the block in which v becomes visible.
func (v *Value) ParentBlock() *Block {
	if v.owner != nil {
		return v.owner.block
	}
	return v.block
}

// Index returns the result number or the argument number of v.
func (v *Value) Index() int { return v.index }

// IsBlockArgument reports whether v is a block argument.
func (v *Value) IsBlockArgument() bool { return v.block != nil }

// Uses returns a snapshot of the operand slots referring to v.
func (v *Value) Uses() []Use {
	out := make([]Use, len(v.uses))
	copy(out, v.uses)
	return out
}

// NumUses returns the number of operand slots referring to v.
func (v *Value) NumUses() int { return len(v.uses) }

// HasUses reports whether any operand refers to v.
func (v *Value) HasUses() bool { return len(v.uses) > 0 }

// Users returns the distinct operations using v, in use order.
func (v *Value) Users() []*Operation {
	var out []*Operation
	seen := make(map[*Operation]bool, len(v.uses))
	for _, u := range v.uses {
		if !seen[u.Owner] {
			seen[u.Owner] = true
			out = append(out, u.Owner)
		}
	}
	return out
}

// ReplaceAllUsesWith redirects every use of v to with.
func (v *Value) ReplaceAllUsesWith(with *Value) {
	if v == with {
		return
	}
	for _, u := range v.Uses() {
		u.Owner.SetOperand(u.Index, with)
	}
}

func (v *Value) addUse(owner *Operation, index int) {
	v.uses = append(v.uses, Use{Owner: owner, Index: index})
}

func (v *Value) removeUse(owner *Operation, index int) {
	for i, u := range v.uses {
		if u.Owner == owner && u.Index == index {
			v.uses = append(v.uses[:i], v.uses[i+1:]...)
			return
		}
	}
}
