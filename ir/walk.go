package ir

// WalkResult controls a walk.
type WalkResult int

const (
	// Advance continues the walk, descending into nested regions.
	Advance WalkResult = iota
	// Skip continues the walk without descending into the current node.
	Skip
	// Interrupt stops the walk.
	Interrupt
)

// Walk visits op and every operation nested in it in pre-order.
// Operations are visited from a snapshot of each block, so fn may move or erase the
// operation it is given.
func (op *Operation) Walk(fn func(*Operation) WalkResult) WalkResult {
	switch fn(op) {
	case Interrupt:
		return Interrupt
	case Skip:
		return Advance
	}
	for _, r := range op.regions {
		for _, b := range r.Blocks() {
			for _, nested := range b.Operations() {
				if nested.Walk(fn) == Interrupt {
					return Interrupt
				}
			}
		}
	}
	return Advance
}

// WalkBlocks visits every block nested in op in pre-order. Returning Skip from fn
// does not descend into the regions of the operations of that block.
func (op *Operation) WalkBlocks(fn func(*Block) WalkResult) WalkResult {
	for _, r := range op.regions {
		for _, b := range r.Blocks() {
			switch fn(b) {
			case Interrupt:
				return Interrupt
			case Skip:
				continue
			}
			for _, nested := range b.Operations() {
				if nested.WalkBlocks(fn) == Interrupt {
					return Interrupt
				}
			}
		}
	}
	return Advance
}

// Collect returns op and every nested operation in pre-order.
func (op *Operation) Collect() []*Operation {
	var out []*Operation
	op.Walk(func(o *Operation) WalkResult {
		out = append(out, o)
		return Advance
	})
	return out
}
