package rewrite

import "github.com/wippyai/gpu-async/ir"

// Action is the legality registered for an operation kind.
type Action int

const (
	// ActionUnknown means no rule was registered for the kind.
	ActionUnknown Action = iota
	ActionLegal
	ActionIllegal
	ActionDynamic
)

func (a Action) String() string {
	switch a {
	case ActionLegal:
		return "legal"
	case ActionIllegal:
		return "illegal"
	case ActionDynamic:
		return "dynamic"
	}
	return "unknown"
}

type rule struct {
	action Action
	fn     func(*ir.Operation) bool
}

// Target answers whether an operation is legal in the target model.
//
// Rules are per kind; a later rule for a kind replaces the earlier one. Kinds without
// a rule use the unknown-op callback, or are illegal if none was set. Legality only
// depends on the op itself, never on its position.
type Target struct {
	rules   map[ir.Kind]rule
	unknown func(*ir.Operation) bool
}

// NewTarget creates a Target without rules.
func NewTarget() *Target {
	return &Target{rules: make(map[ir.Kind]rule)}
}

// AddLegalOp marks kinds as always legal.
func (t *Target) AddLegalOp(kinds ...ir.Kind) {
	for _, k := range kinds {
		t.rules[k] = rule{action: ActionLegal}
	}
}

// AddIllegalOp marks kinds as always illegal.
func (t *Target) AddIllegalOp(kinds ...ir.Kind) {
	for _, k := range kinds {
		t.rules[k] = rule{action: ActionIllegal}
	}
}

// AddDynamicallyLegalOp makes fn decide the legality of kind.
func (t *Target) AddDynamicallyLegalOp(kind ir.Kind, fn func(*ir.Operation) bool) {
	t.rules[kind] = rule{action: ActionDynamic, fn: fn}
}

// MarkUnknownOpDynamicallyLegal makes fn decide the legality of kinds without a rule.
func (t *Target) MarkUnknownOpDynamicallyLegal(fn func(*ir.Operation) bool) {
	t.unknown = fn
}

// Action returns the rule registered for kind.
func (t *Target) Action(kind ir.Kind) Action {
	return t.rules[kind].action
}

// IsLegal reports whether op is legal.
func (t *Target) IsLegal(op *ir.Operation) bool {
	r, ok := t.rules[op.Kind()]
	if !ok {
		return t.unknown != nil && t.unknown(op)
	}
	switch r.action {
	case ActionLegal:
		return true
	case ActionDynamic:
		return r.fn(op)
	}
	return false
}
