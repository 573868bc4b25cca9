package modconflict

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/albertocavalcante/go-modconflict/coord"
	"github.com/albertocavalcante/go-modconflict/predicate"
)

// ConflictGroup declares an N-way set of mutually conflicting modules plus a
// resolution predicate that picks the surviving candidates.
//
// Members accumulate through Modules; identical literal members collapse.
// The resolution is assigned once through Resolution. A group without a
// resolution still merges its members into one conflict slot but expresses
// no preference: its CandidateSelector returns nil.
//
// A group is not safe for concurrent modification. Once the RuleSet it was
// added to is frozen the group is sealed and read-only.
type ConflictGroup struct {
	members    []ModulePredicate
	literals   map[coord.ModuleID]struct{}
	resolution VersionPredicate
	sealed     atomic.Bool
}

var _ Resolver = (*ConflictGroup)(nil)

// NewConflictGroup returns an empty group.
func NewConflictGroup() *ConflictGroup {
	return &ConflictGroup{literals: make(map[coord.ModuleID]struct{})}
}

// Modules declares members as mutually conflicting. Each member is a
// "group:name" string, a coord.ModuleID, a non-nil ModulePredicate or a
// func(coord.ModuleID) bool. If any member is invalid nothing is added.
func (g *ConflictGroup) Modules(members ...any) error {
	if g.sealed.Load() {
		return ErrSealed
	}
	compiled := make([]ModulePredicate, 0, len(members))
	for i, m := range members {
		p, err := compileModule(m, ErrUnsupportedMember)
		if err != nil {
			return fmt.Errorf("conflict group member %d: %w", i+1, err)
		}
		compiled = append(compiled, p)
	}
	for _, p := range compiled {
		if lit, ok := p.(ModuleMatch); ok {
			if _, dup := g.literals[lit.ID]; dup {
				continue
			}
			g.literals[lit.ID] = struct{}{}
		}
		g.members = append(g.members, p)
	}
	return nil
}

// Resolution sets the predicate selecting the winning candidates.
// It may be assigned only once.
func (g *ConflictGroup) Resolution(p VersionPredicate) error {
	if g.sealed.Load() {
		return ErrSealed
	}
	if p == nil {
		return ErrNilResolution
	}
	if g.resolution != nil {
		return ErrResolutionAlreadySet
	}
	g.resolution = p
	return nil
}

// IsSatisfiedBy reports whether id matches any member.
func (g *ConflictGroup) IsSatisfiedBy(id coord.ModuleID) bool {
	for _, m := range g.members {
		if m.IsSatisfiedBy(id) {
			return true
		}
	}
	return false
}

// ConflictingModules returns every member except the first one id matched.
// If id matches no member the result is predicate.None.
func (g *ConflictGroup) ConflictingModules(id coord.ModuleID) ModulePredicate {
	match := -1
	for i, m := range g.members {
		if m.IsSatisfiedBy(id) {
			match = i
			break
		}
	}
	if match < 0 {
		return predicate.None[coord.ModuleID]()
	}
	others := make([]ModulePredicate, 0, len(g.members)-1)
	others = append(others, g.members[:match]...)
	others = append(others, g.members[match+1:]...)
	return predicate.Or(others...)
}

// CandidateSelector returns the resolution regardless of candidates; nil if
// no resolution was assigned.
func (g *ConflictGroup) CandidateSelector(CandidateSet) VersionPredicate {
	return g.resolution
}

// Members returns a copy of the declared members in declaration order.
func (g *ConflictGroup) Members() []ModulePredicate {
	out := make([]ModulePredicate, len(g.members))
	copy(out, g.members)
	return out
}

// HasResolution reports whether a resolution was assigned.
func (g *ConflictGroup) HasResolution() bool {
	return g.resolution != nil
}

func (g *ConflictGroup) String() string {
	names := make([]string, len(g.members))
	for i, m := range g.members {
		names[i] = predicate.Describe(m)
	}
	return "conflict_group(" + strings.Join(names, ", ") + ")"
}

func (g *ConflictGroup) seal() {
	g.sealed.Store(true)
}
