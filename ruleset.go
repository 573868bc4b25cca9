package modconflict

import (
	"fmt"
	"sync"

	"github.com/albertocavalcante/go-modconflict/coord"
)

// RuleSet collects conflict rules during configuration.
//
// Rules are kept in declaration order, which is also their priority during
// selection. Freeze ends the configuration phase: it returns an immutable
// snapshot and rejects every later declaration with ErrFrozen. Rules are
// never removed.
//
// A RuleSet is safe for concurrent use.
type RuleSet struct {
	mu        sync.Mutex
	resolvers []Resolver
	frozen    *Rules
}

// NewRuleSet returns an empty rule set.
func NewRuleSet() *RuleSet {
	return &RuleSet{}
}

// Add appends r to the rule set.
func (rs *RuleSet) Add(r Resolver) error {
	if r == nil {
		return ErrNilResolver
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.frozen != nil {
		return ErrFrozen
	}
	rs.resolvers = append(rs.resolvers, r)
	return nil
}

// Replace starts a replacement declaration for from ("group:name").
// A malformed coordinate is reported here, before any target is given.
func (rs *RuleSet) Replace(from string) (*ReplacementTarget, error) {
	id, err := coord.ParseModuleID(from)
	if err != nil {
		return nil, fmt.Errorf("replace %q: %w", from, err)
	}
	if rs.IsFrozen() {
		return nil, ErrFrozen
	}
	return &ReplacementTarget{rs: rs, from: id}, nil
}

// Declare builds a conflict group over members with the given resolution
// and appends it. A nil resolution declares the conflict without a
// preference.
func (rs *RuleSet) Declare(resolution VersionPredicate, members ...any) (*ConflictGroup, error) {
	if rs.IsFrozen() {
		return nil, ErrFrozen
	}
	g := NewConflictGroup()
	if err := g.Modules(members...); err != nil {
		return nil, err
	}
	if resolution != nil {
		if err := g.Resolution(resolution); err != nil {
			return nil, err
		}
	}
	if err := rs.Add(g); err != nil {
		return nil, err
	}
	return g, nil
}

// Len returns the number of declared rules.
func (rs *RuleSet) Len() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return len(rs.resolvers)
}

// IsFrozen reports whether Freeze was called.
func (rs *RuleSet) IsFrozen() bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.frozen != nil
}

// Freeze ends configuration and returns the immutable snapshot of the
// declared rules. Calling it again returns the same snapshot.
func (rs *RuleSet) Freeze() *Rules {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.frozen == nil {
		rs.frozen = NewRules(rs.resolvers...)
	}
	return rs.frozen
}

// ReplacementTarget is a replacement waiting for its target.
type ReplacementTarget struct {
	rs   *RuleSet
	from coord.ModuleID

	mu   sync.Mutex
	done bool
}

// Into completes the replacement and appends it to the rule set. into is a
// "group:name" string, a coord.ModuleID, a non-nil ModulePredicate or a
// func(coord.ModuleID) bool.
func (t *ReplacementTarget) Into(into any) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return fmt.Errorf("replace %s: %w", t.from, ErrTargetAlreadySet)
	}
	r, err := newReplacement(t.from, into)
	if err != nil {
		return fmt.Errorf("replace %s: %w", t.from, err)
	}
	if err := t.rs.Add(r); err != nil {
		return err
	}
	t.done = true
	return nil
}

// Rules is an immutable, ordered snapshot of conflict rules.
type Rules struct {
	resolvers []Resolver
}

// NewRules returns a snapshot of resolvers. Conflict groups among them are
// sealed. Nil entries are dropped.
func NewRules(resolvers ...Resolver) *Rules {
	out := make([]Resolver, 0, len(resolvers))
	for _, r := range resolvers {
		if r == nil {
			continue
		}
		if g, ok := r.(*ConflictGroup); ok {
			g.seal()
		}
		out = append(out, r)
	}
	return &Rules{resolvers: out}
}

// Resolvers returns a copy of the rules in declaration order.
func (r *Rules) Resolvers() []Resolver {
	if r == nil {
		return nil
	}
	out := make([]Resolver, len(r.resolvers))
	copy(out, r.resolvers)
	return out
}

// Len returns the number of rules.
func (r *Rules) Len() int {
	if r == nil {
		return 0
	}
	return len(r.resolvers)
}
