package modconflict

import (
	"github.com/albertocavalcante/go-modconflict/coord"
	"github.com/albertocavalcante/go-modconflict/predicate"
)

// Replacement declares that module From is replaced by Into. The two are
// placed in the same conflict slot, and when candidates of both are present
// the candidates of Into win.
type Replacement struct {
	from ModuleMatch
	into ModulePredicate
}

var _ Resolver = (*Replacement)(nil)

// NewReplacement builds a replacement of from ("group:name") by into, which
// is a "group:name" string, a coord.ModuleID, a non-nil ModulePredicate or a
// func(coord.ModuleID) bool.
func NewReplacement(from string, into any) (*Replacement, error) {
	id, err := coord.ParseModuleID(from)
	if err != nil {
		return nil, err
	}
	return newReplacement(id, into)
}

func newReplacement(from coord.ModuleID, into any) (*Replacement, error) {
	target, err := compileModule(into, ErrUnsupportedTarget)
	if err != nil {
		return nil, err
	}
	return &Replacement{from: MatchModule(from), into: target}, nil
}

// From returns the replaced module.
func (r *Replacement) From() coord.ModuleID {
	return r.from.ID
}

// Into returns the predicate matching the replacement target.
func (r *Replacement) Into() ModulePredicate {
	return r.into
}

// IsSatisfiedBy reports whether id is either side of the replacement.
func (r *Replacement) IsSatisfiedBy(id coord.ModuleID) bool {
	return r.from.IsSatisfiedBy(id) || r.into.IsSatisfiedBy(id)
}

// CandidateSelector selects the Into candidates when candidates of both
// sides are present, and returns nil otherwise.
func (r *Replacement) CandidateSelector(candidates CandidateSet) VersionPredicate {
	if candidates == nil {
		return nil
	}
	var fromPresent, intoPresent bool
	candidates.Each(func(mv coord.ModuleVersion) bool {
		if r.from.IsSatisfiedBy(mv.Module) {
			fromPresent = true
		} else if r.into.IsSatisfiedBy(mv.Module) {
			intoPresent = true
		}
		return fromPresent && intoPresent
	})
	if fromPresent && intoPresent {
		return PreferModules(r.into)
	}
	return nil
}

// ConflictingModules returns Into for From, From for Into, and
// predicate.None for anything else.
func (r *Replacement) ConflictingModules(id coord.ModuleID) ModulePredicate {
	if r.from.IsSatisfiedBy(id) {
		return r.into
	}
	if r.into.IsSatisfiedBy(id) {
		return r.from
	}
	return predicate.None[coord.ModuleID]()
}

func (r *Replacement) String() string {
	return "replace(" + r.from.String() + " -> " + predicate.Describe(r.into) + ")"
}
