package modconflict

import (
	"fmt"
	"log/slog"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/albertocavalcante/go-modconflict/coord"
	"github.com/albertocavalcante/go-modconflict/predicate"
)

// Orchestrator composes the declared rules with a fallback to pick the
// winner of a conflict slot and to answer which modules share a slot.
//
// The algorithm:
//  1. Start from the full candidate set.
//  2. For each rule in declaration order, if the rule's domain covers the
//     module of every original candidate, ask it for a selector over the
//     remaining candidates and keep only the ones it selects. A nil selector
//     leaves the set unchanged.
//  3. If nothing survives, fail with a ContradictionError naming the
//     original candidates.
//  4. Let the fallback pick one winner from the survivors.
//
// Step 2 is gated on the original set so that a rule which understands only
// part of the slot cannot discard candidates it knows nothing about.
//
// An Orchestrator only reads its frozen Rules and is safe for concurrent use.
type Orchestrator struct {
	rules     *Rules
	resolvers []Resolver
	fallback  Fallback
	strict    bool
	logger    *slog.Logger
}

// NewOrchestrator creates an orchestrator over a frozen rule snapshot.
// A nil rules value behaves like an empty rule set.
func NewOrchestrator(rules *Rules, opts ...Option) (*Orchestrator, error) {
	cfg, err := newOrchestratorConfig(opts...)
	if err != nil {
		return nil, err
	}
	if rules == nil {
		rules = NewRules()
	}
	return &Orchestrator{
		rules:     rules,
		resolvers: rules.resolvers,
		fallback:  cfg.fallback,
		strict:    cfg.strictSelectors,
		logger:    cfg.log(),
	}, nil
}

// Rules returns the snapshot the orchestrator was built from.
func (o *Orchestrator) Rules() *Rules {
	return o.rules
}

// Select returns the winning candidate of one conflict slot. The input is
// not modified and the winner is always one of its elements.
func (o *Orchestrator) Select(candidates []Candidate) (Candidate, error) {
	exp, err := o.Explain(candidates)
	if err != nil {
		return nil, err
	}
	return exp.Winner, nil
}

// Explain runs the same selection as Select and records what every rule did.
func (o *Orchestrator) Explain(candidates []Candidate) (*Explanation, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	original := sortedVersions(candidates)
	modules := make([]coord.ModuleID, 0, len(original))
	for _, mv := range original {
		if !slices.Contains(modules, mv.Module) {
			modules = append(modules, mv.Module)
		}
	}

	exp := &Explanation{Candidates: original}
	filtered := slices.Clone(candidates)

	for _, r := range o.resolvers {
		name := describe(r)
		if !handlesAll(r, modules) {
			o.logger.Debug("conflict resolver skipped", "resolver", name, "candidates", len(original))
			exp.Steps = append(exp.Steps, Step{Resolver: name, Outcome: StepSkipped})
			continue
		}

		selector := r.CandidateSelector(versionSet(filtered))
		if selector == nil {
			o.logger.Debug("conflict resolver inactive", "resolver", name)
			exp.Steps = append(exp.Steps, Step{Resolver: name, Outcome: StepInactive})
			continue
		}

		next := applySelector(selector, filtered)
		if len(next) == 0 && len(filtered) > 0 {
			o.logger.Warn("conflict resolver selected no candidate",
				"resolver", name, "selector", predicate.Describe(selector))
			if o.strict {
				return nil, &ContradictionError{Candidates: original, Resolver: name}
			}
		}
		filtered = next
		remaining := sortedVersions(filtered)
		o.logger.Debug("conflict resolver narrowed candidates",
			"resolver", name, "remaining", len(remaining))
		exp.Steps = append(exp.Steps, Step{Resolver: name, Outcome: StepNarrowed, Remaining: remaining})
	}

	if len(filtered) == 0 {
		return nil, &ContradictionError{Candidates: original}
	}

	winner, err := o.fallback.Select(slices.Clone(filtered))
	if err != nil {
		return nil, fmt.Errorf("fallback selection: %w", err)
	}
	if winner == nil || !containsVersion(filtered, winner.ModuleVersion()) {
		return nil, ErrFallbackResult
	}

	exp.Survivors = sortedVersions(filtered)
	exp.Winner = winner
	o.logger.Debug("conflict resolved", "winner", winner.ModuleVersion().String(),
		"candidates", len(original), "survivors", len(exp.Survivors))
	return exp, nil
}

// ModuleConflicts returns the modules that share a conflict slot with id,
// as declared by the first rule (in declaration order) whose domain
// includes id. Later rules are not consulted. Without a matching rule the
// result is predicate.None.
func (o *Orchestrator) ModuleConflicts(id coord.ModuleID) ModulePredicate {
	for _, r := range o.resolvers {
		if r.IsSatisfiedBy(id) {
			if p := r.ConflictingModules(id); p != nil {
				return p
			}
			return predicate.None[coord.ModuleID]()
		}
	}
	return predicate.None[coord.ModuleID]()
}

func handlesAll(r Resolver, modules []coord.ModuleID) bool {
	for _, m := range modules {
		if !r.IsSatisfiedBy(m) {
			return false
		}
	}
	return true
}

func applySelector(selector VersionPredicate, candidates []Candidate) []Candidate {
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if selector.IsSatisfiedBy(c.ModuleVersion()) {
			out = append(out, c)
		}
	}
	return out
}

func versionSet(candidates []Candidate) CandidateSet {
	set := mapset.NewThreadUnsafeSetWithSize[coord.ModuleVersion](len(candidates))
	for _, c := range candidates {
		set.Add(c.ModuleVersion())
	}
	return set
}

func containsVersion(candidates []Candidate, mv coord.ModuleVersion) bool {
	return slices.ContainsFunc(candidates, func(c Candidate) bool {
		return c.ModuleVersion() == mv
	})
}

// sortedVersions returns the distinct coordinates of candidates, sorted.
func sortedVersions(candidates []Candidate) []coord.ModuleVersion {
	out := make([]coord.ModuleVersion, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.ModuleVersion())
	}
	slices.SortFunc(out, coord.Compare)
	return slices.Compact(out)
}
