package rewrite

import (
	"sort"

	"github.com/wippyai/gpu-async/ir"
)

type entry struct {
	pattern Pattern
	order   int
}

// PatternSet maps operation kinds to the patterns rooted at them.
//
// Patterns for a kind are returned by descending benefit, then registration order.
// Patterns with an empty root are tried for every kind after the ones of equal
// benefit registered for that kind specifically.
type PatternSet struct {
	byKind map[ir.Kind][]entry
	any    []entry
	next   int
}

// NewPatternSet creates an empty PatternSet.
func NewPatternSet() *PatternSet {
	return &PatternSet{byKind: make(map[ir.Kind][]entry)}
}

// Add registers patterns in order.
func (s *PatternSet) Add(patterns ...Pattern) {
	for _, p := range patterns {
		e := entry{pattern: p, order: s.next}
		s.next++
		if p.Root() == "" {
			s.any = append(s.any, e)
			continue
		}
		s.byKind[p.Root()] = append(s.byKind[p.Root()], e)
	}
}

// AddFunc registers a function as a pattern rooted at kind.
func (s *PatternSet) AddFunc(name string, kind ir.Kind, fn func(*ir.Operation, *Rewriter) error) {
	s.Add(Func{Base: Base{PatternName: name, RootKind: kind}, Fn: fn})
}

// ForKind returns the patterns to try on an op of the given kind, in application order.
func (s *PatternSet) ForKind(kind ir.Kind) []Pattern {
	specific := s.byKind[kind]
	if len(specific) == 0 && len(s.any) == 0 {
		return nil
	}
	entries := make([]entry, 0, len(specific)+len(s.any))
	entries = append(entries, specific...)
	entries = append(entries, s.any...)
	sort.SliceStable(entries, func(i, j int) bool {
		bi, bj := entries[i].pattern.Benefit(), entries[j].pattern.Benefit()
		if bi != bj {
			return bi > bj
		}
		ai, aj := entries[i].pattern.Root() == "", entries[j].pattern.Root() == ""
		if ai != aj {
			return !ai
		}
		return entries[i].order < entries[j].order
	})
	out := make([]Pattern, len(entries))
	for i, e := range entries {
		out[i] = e.pattern
	}
	return out
}

// Has reports whether any pattern applies to kind.
func (s *PatternSet) Has(kind ir.Kind) bool {
	return len(s.byKind[kind]) > 0 || len(s.any) > 0
}

// Len returns the number of registered patterns.
func (s *PatternSet) Len() int { return s.next }

// Names returns the pattern names in registration order.
func (s *PatternSet) Names() []string {
	all := make([]entry, 0, s.next)
	for _, es := range s.byKind {
		all = append(all, es...)
	}
	all = append(all, s.any...)
	sort.Slice(all, func(i, j int) bool { return all[i].order < all[j].order })
	names := make([]string, len(all))
	for i, e := range all {
		names[i] = e.pattern.Name()
	}
	return names
}

// Kinds returns the root kinds with at least one pattern, sorted.
func (s *PatternSet) Kinds() []ir.Kind {
	kinds := make([]ir.Kind, 0, len(s.byKind))
	for k := range s.byKind {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
