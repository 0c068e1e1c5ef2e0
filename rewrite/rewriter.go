package rewrite

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/gpu-async/errors"
	"github.com/wippyai/gpu-async/ir"
)

// Rewriter performs the IR mutations of patterns.
//
// It owns an insertion point for newly created ops, counts changes and keeps the
// 1:N value mapping established by type conversions. A Rewriter is not safe for
// concurrent use.
type Rewriter struct {
	logger    *zap.Logger
	block     *ir.Block
	anchor    *ir.Operation
	mapping   map[*ir.Value][]*ir.Value
	converted map[*ir.Operation]bool
	changes   int
}

// NewRewriter creates a Rewriter logging to l (nil uses the package logger).
func NewRewriter(l *zap.Logger) *Rewriter {
	return &Rewriter{
		logger:    resolveLogger(l),
		mapping:   make(map[*ir.Value][]*ir.Value),
		converted: make(map[*ir.Operation]bool),
	}
}

// Logger returns the logger of the rewriter.
func (rw *Rewriter) Logger() *zap.Logger { return rw.logger }

// Changes returns the number of mutations performed so far.
func (rw *Rewriter) Changes() int { return rw.changes }

// SetInsertionPoint makes new ops go right before op.
func (rw *Rewriter) SetInsertionPoint(op *ir.Operation) {
	rw.block = op.Block()
	rw.anchor = op
}

// SetInsertionPointToEnd makes new ops go at the end of b.
func (rw *Rewriter) SetInsertionPointToEnd(b *ir.Block) {
	rw.block = b
	rw.anchor = nil
}

// Create inserts a detached op at the insertion point and returns it.
func (rw *Rewriter) Create(op *ir.Operation) *ir.Operation {
	if rw.block == nil {
		panic("rewrite: no insertion point set")
	}
	rw.block.InsertBefore(rw.anchor, op)
	rw.changes++
	return op
}

// ReplaceOp redirects every use of the results of op to values and erases op.
// Unnamed replacement values take the name of the result they replace.
func (rw *Rewriter) ReplaceOp(op *ir.Operation, values []*ir.Value) error {
	if len(values) != op.NumResults() {
		return errors.New(errors.PhaseRewrite, errors.KindInvalidInput).
			Op(string(op.Kind())).
			Detail("replacing %d result(s) with %d value(s)", op.NumResults(), len(values)).
			Build()
	}
	for i, r := range op.Results() {
		if values[i].Name() == "" {
			values[i].SetName(r.Name())
		}
		r.ReplaceAllUsesWith(values[i])
	}
	return rw.EraseOp(op)
}

// ReplaceOpWithNew inserts newOp right before op, then replaces op with its results.
func (rw *Rewriter) ReplaceOpWithNew(op, newOp *ir.Operation) (*ir.Operation, error) {
	rw.SetInsertionPoint(op)
	rw.Create(newOp)
	if err := rw.ReplaceOp(op, newOp.Results()); err != nil {
		return nil, err
	}
	return newOp, nil
}

// EraseOp erases op, which must not have uses left.
func (rw *Rewriter) EraseOp(op *ir.Operation) error {
	if err := op.Erase(); err != nil {
		return err
	}
	rw.changes++
	return nil
}

// UpdateInPlace runs fn, which modifies op without replacing it.
func (rw *Rewriter) UpdateInPlace(op *ir.Operation, fn func()) {
	fn()
	rw.changes++
}

// MoveBefore moves op right before anchor.
func (rw *Rewriter) MoveBefore(op, anchor *ir.Operation) {
	op.MoveBefore(anchor)
	rw.changes++
}

// NotifyMatchFailure logs why a pattern declined op and returns the no-match error
// the pattern should return.
func (rw *Rewriter) NotifyMatchFailure(op *ir.Operation, format string, args ...any) error {
	reason := fmt.Sprintf(format, args...)
	rw.logger.Debug("match failure", zap.String("op", op.Label()), zap.String("reason", reason))
	return errors.NoMatch(string(op.Kind()), reason)
}

// NotifyConversionFailure logs a type conversion failure on op and returns it.
func (rw *Rewriter) NotifyConversionFailure(op *ir.Operation, format string, args ...any) error {
	detail := fmt.Sprintf(format, args...)
	rw.logger.Debug("conversion failure", zap.String("op", op.Label()), zap.String("reason", detail))
	return errors.ConversionFailed(string(op.Kind()), detail)
}

// MapValue records that from was converted to the values of to.
// The first value of to takes over the uses of from, so the group is also
// reachable from it.
func (rw *Rewriter) MapValue(from *ir.Value, to []*ir.Value) {
	group := append([]*ir.Value(nil), to...)
	rw.mapping[from] = group
	if len(group) > 0 {
		rw.mapping[group[0]] = group
	}
}

// LookupValues returns the values v was converted to, or v itself.
func (rw *Rewriter) LookupValues(v *ir.Value) []*ir.Value {
	if group, ok := rw.mapping[v]; ok {
		return group
	}
	return []*ir.Value{v}
}

// ExpandValues flattens vals through the 1:N value mapping.
func (rw *Rewriter) ExpandValues(vals []*ir.Value) []*ir.Value {
	out := make([]*ir.Value, 0, len(vals))
	for _, v := range vals {
		out = append(out, rw.LookupValues(v)...)
	}
	return out
}

// MarkConverted records that op was built from already converted values. Conversion
// patterns skip such ops so a 1:N expansion is never applied twice.
func (rw *Rewriter) MarkConverted(op *ir.Operation) {
	rw.converted[op] = true
}

// IsConverted reports whether op was marked with MarkConverted.
func (rw *Rewriter) IsConverted(op *ir.Operation) bool {
	return rw.converted[op]
}

// Begin starts a transaction.
func (rw *Rewriter) Begin() *Txn {
	return &Txn{rw: rw}
}

// Txn stages edits so a pattern can decide on a whole function before changing it.
// Staged edits run in staging order on Commit; Discard drops them.
type Txn struct {
	rw     *Rewriter
	staged []func()
	closed bool
}

// Stage records an edit.
func (t *Txn) Stage(edit func()) {
	if t.closed {
		panic("rewrite: staging into a closed transaction")
	}
	t.staged = append(t.staged, edit)
}

// Len returns the number of staged edits.
func (t *Txn) Len() int { return len(t.staged) }

// Commit applies every staged edit and returns how many ran.
func (t *Txn) Commit() int {
	if t.closed {
		return 0
	}
	t.closed = true
	for _, edit := range t.staged {
		edit()
	}
	t.rw.changes += len(t.staged)
	n := len(t.staged)
	t.staged = nil
	return n
}

// Discard drops the staged edits.
func (t *Txn) Discard() {
	t.closed = true
	t.staged = nil
}
