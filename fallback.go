package modconflict

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/albertocavalcante/go-modconflict/coord"
	"github.com/albertocavalcante/go-modconflict/predicate"
	"github.com/albertocavalcante/go-modconflict/version"
)

// Fallback picks the final winner from the candidates that survived every
// declared rule. It must return exactly one of the candidates it is given.
type Fallback interface {
	Select(candidates []Candidate) (Candidate, error)
}

// FallbackFunc adapts a function to the Fallback interface.
type FallbackFunc func(candidates []Candidate) (Candidate, error)

// Select calls f(candidates).
func (f FallbackFunc) Select(candidates []Candidate) (Candidate, error) {
	return f(candidates)
}

// Newest is the default fallback: the highest version wins, as ordered by
// version.Compare. Equal versions of different modules are broken by the
// smallest coordinate, so the choice is deterministic.
//
// Newest is also a Resolver that applies to every module and never declares
// conflicts.
type Newest struct{}

var (
	_ Fallback = Newest{}
	_ Resolver = Newest{}
)

// NewestVersion returns the newest-version-wins fallback.
func NewestVersion() Newest {
	return Newest{}
}

// Select returns the candidate with the highest version.
func (Newest) Select(candidates []Candidate) (Candidate, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	best := candidates[0]
	bestID := best.ModuleVersion()
	for _, c := range candidates[1:] {
		id := c.ModuleVersion()
		if newer(id, bestID) {
			best, bestID = c, id
		}
	}
	return best, nil
}

// IsSatisfiedBy always returns true.
func (Newest) IsSatisfiedBy(coord.ModuleID) bool {
	return true
}

// CandidateSelector selects the single newest coordinate of candidates.
func (Newest) CandidateSelector(candidates CandidateSet) VersionPredicate {
	if candidates == nil || candidates.Cardinality() == 0 {
		return nil
	}
	var best coord.ModuleVersion
	first := true
	candidates.Each(func(mv coord.ModuleVersion) bool {
		if first || newer(mv, best) {
			best, first = mv, false
		}
		return false
	})
	return exactVersions{set: mapset.NewThreadUnsafeSet(best)}
}

// ConflictingModules returns predicate.None.
func (Newest) ConflictingModules(coord.ModuleID) ModulePredicate {
	return predicate.None[coord.ModuleID]()
}

func (Newest) String() string {
	return "newest-version"
}

func newer(a, b coord.ModuleVersion) bool {
	if c := version.Compare(a.Version, b.Version); c != 0 {
		return c > 0
	}
	return coord.Compare(a, b) < 0
}

type exactVersions struct {
	set mapset.Set[coord.ModuleVersion]
}

func (e exactVersions) IsSatisfiedBy(v coord.ModuleVersion) bool {
	return e.set.Contains(v)
}
