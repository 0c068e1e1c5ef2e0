package ir

import "github.com/wippyai/gpu-async/errors"

// Block is an ordered sequence of operations with typed arguments.
// The order of ops is program order; an operand must be defined earlier in the same
// block or in an enclosing one.
type Block struct {
	parent *Region
	args   []*Value
	ops    []*Operation
}

// NewBlock creates a detached block with arguments of the given types.
func NewBlock(argTypes ...Type) *Block {
	b := &Block{}
	for _, t := range argTypes {
		b.AddArgument(t)
	}
	return b
}

// Parent returns the region containing b.
func (b *Block) Parent() *Region { return b.parent }

// ParentOp returns the operation owning the region containing b.
func (b *Block) ParentOp() *Operation {
	if b.parent == nil {
		return nil
	}
	return b.parent.parent
}

// NumArguments returns the number of block arguments.
func (b *Block) NumArguments() int { return len(b.args) }

// Argument returns argument i.
func (b *Block) Argument(i int) *Value { return b.args[i] }

// Arguments returns a copy of the argument list.
func (b *Block) Arguments() []*Value {
	out := make([]*Value, len(b.args))
	copy(out, b.args)
	return out
}

// ArgumentTypes returns the types of the block arguments.
func (b *Block) ArgumentTypes() []Type {
	out := make([]Type, len(b.args))
	for i, a := range b.args {
		out[i] = a.Type()
	}
	return out
}

// AddArgument appends a new argument of type t.
func (b *Block) AddArgument(t Type) *Value {
	return b.InsertArgument(len(b.args), t)
}

// InsertArgument inserts a new argument of type t at position i.
func (b *Block) InsertArgument(i int, t Type) *Value {
	v := &Value{typ: t, block: b}
	b.args = append(b.args, nil)
	copy(b.args[i+1:], b.args[i:])
	b.args[i] = v
	b.renumberArgs()
	return v
}

// EraseArgument removes argument i, which must be unused.
func (b *Block) EraseArgument(i int) error {
	v := b.args[i]
	if v.HasUses() {
		return errors.New(errors.PhaseRewrite, errors.KindHasUses).
			Detail("cannot erase block argument #%d with %d use(s)", i, v.NumUses()).
			Build()
	}
	b.args = append(b.args[:i], b.args[i+1:]...)
	v.block = nil
	b.renumberArgs()
	return nil
}

func (b *Block) renumberArgs() {
	for i, a := range b.args {
		a.index = i
	}
}

// Len returns the number of operations in b.
func (b *Block) Len() int { return len(b.ops) }

// Empty reports whether b has no operations.
func (b *Block) Empty() bool { return len(b.ops) == 0 }

// Op returns the operation at position i.
func (b *Block) Op(i int) *Operation { return b.ops[i] }

// Operations returns a snapshot of the operations of b.
func (b *Block) Operations() []*Operation {
	out := make([]*Operation, len(b.ops))
	copy(out, b.ops)
	return out
}

// Front returns the first operation, or nil.
func (b *Block) Front() *Operation {
	if len(b.ops) == 0 {
		return nil
	}
	return b.ops[0]
}

// Terminator returns the last operation, or nil.
func (b *Block) Terminator() *Operation {
	if len(b.ops) == 0 {
		return nil
	}
	return b.ops[len(b.ops)-1]
}

// Index returns the position of op in b, or -1.
func (b *Block) Index(op *Operation) int {
	if op == nil || op.block != b {
		return -1
	}
	for i, o := range b.ops {
		if o == op {
			return i
		}
	}
	return -1
}

// Append adds a detached op at the end of b.
func (b *Block) Append(op *Operation) {
	b.insertAt(len(b.ops), op)
}

// InsertBefore inserts a detached op right before anchor. A nil anchor appends.
func (b *Block) InsertBefore(anchor *Operation, op *Operation) {
	if anchor == nil {
		b.Append(op)
		return
	}
	i := b.Index(anchor)
	if i < 0 {
		panic("ir: insertion anchor is not in block")
	}
	b.insertAt(i, op)
}

// InsertAfter inserts a detached op right after anchor.
func (b *Block) InsertAfter(anchor *Operation, op *Operation) {
	i := b.Index(anchor)
	if i < 0 {
		panic("ir: insertion anchor is not in block")
	}
	b.insertAt(i+1, op)
}

func (b *Block) insertAt(i int, op *Operation) {
	if op.block != nil {
		panic("ir: inserting an operation that already belongs to a block")
	}
	b.ops = append(b.ops, nil)
	copy(b.ops[i+1:], b.ops[i:])
	b.ops[i] = op
	op.block = b
}

func (b *Block) remove(op *Operation) {
	i := b.Index(op)
	if i < 0 {
		return
	}
	b.ops = append(b.ops[:i], b.ops[i+1:]...)
	op.block = nil
}

// Splice moves the operations of src from first up to, but not including, end into b
// right before anchor (nil anchor appends). A nil end moves through the end of src.
// Relative order and value identities are preserved.
func (b *Block) Splice(anchor *Operation, src *Block, first, end *Operation) {
	from := src.Index(first)
	if from < 0 {
		panic("ir: splice range start is not in source block")
	}
	to := len(src.ops)
	if end != nil {
		to = src.Index(end)
		if to < from {
			panic("ir: splice range end precedes its start")
		}
	}
	moved := make([]*Operation, to-from)
	copy(moved, src.ops[from:to])
	for _, op := range moved {
		src.remove(op)
	}
	for _, op := range moved {
		b.InsertBefore(anchor, op)
	}
}

// Region is an ordered list of blocks owned by an operation.
type Region struct {
	parent *Operation
	blocks []*Block
}

// ParentOp returns the operation owning r.
func (r *Region) ParentOp() *Operation { return r.parent }

// Blocks returns a copy of the block list.
func (r *Region) Blocks() []*Block {
	out := make([]*Block, len(r.blocks))
	copy(out, r.blocks)
	return out
}

// NumBlocks returns the number of blocks.
func (r *Region) NumBlocks() int { return len(r.blocks) }

// Empty reports whether r has no blocks.
func (r *Region) Empty() bool { return len(r.blocks) == 0 }

// Front returns the entry block, or nil.
func (r *Region) Front() *Block {
	if len(r.blocks) == 0 {
		return nil
	}
	return r.blocks[0]
}

// Back returns the last block, or nil.
func (r *Region) Back() *Block {
	if len(r.blocks) == 0 {
		return nil
	}
	return r.blocks[len(r.blocks)-1]
}

// AddBlock appends a detached block to r.
func (r *Region) AddBlock(b *Block) {
	if b.parent != nil {
		panic("ir: block already belongs to a region")
	}
	b.parent = r
	r.blocks = append(r.blocks, b)
}
