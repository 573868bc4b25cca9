package modconflict

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/albertocavalcante/go-modconflict/coord"
	"github.com/albertocavalcante/go-modconflict/predicate"
)

// ModuleID is an alias for coord.ModuleID.
type ModuleID = coord.ModuleID

// ModuleVersion is an alias for coord.ModuleVersion.
type ModuleVersion = coord.ModuleVersion

// Candidate is a resolvable version offered by the graph engine. Selection
// never looks past its coordinate.
type Candidate interface {
	ModuleVersion() coord.ModuleVersion
}

// CandidateSet is the set of coordinates a resolver is asked to select from.
type CandidateSet = mapset.Set[coord.ModuleVersion]

// NewCandidateSet returns a CandidateSet holding versions.
func NewCandidateSet(versions ...coord.ModuleVersion) CandidateSet {
	return mapset.NewThreadUnsafeSet(versions...)
}

// Resolver is a declared conflict rule.
//
// A resolver has a domain (IsSatisfiedBy), can narrow a conflict slot's
// candidates (CandidateSelector) and names the modules that share a slot
// with a given module (ConflictingModules). If IsSatisfiedBy(m) holds,
// ConflictingModules(m) must answer for m, possibly with predicate.None.
type Resolver interface {
	// IsSatisfiedBy reports whether the rule's domain includes id.
	IsSatisfiedBy(id coord.ModuleID) bool

	// CandidateSelector returns a predicate selecting the candidates that
	// survive this rule, or nil when the rule does not apply to this
	// particular candidate population. A non-nil selector must match at
	// least one member of candidates.
	CandidateSelector(candidates CandidateSet) VersionPredicate

	// ConflictingModules returns the modules that compete with id for the
	// same slot. It never returns nil.
	ConflictingModules(id coord.ModuleID) ModulePredicate
}

// describe names a resolver in logs and errors.
func describe(r Resolver) string {
	return predicate.Describe[coord.ModuleID](r)
}
