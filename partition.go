package modconflict

import (
	"errors"
	"fmt"
	"slices"

	"github.com/albertocavalcante/go-modconflict/coord"
	"github.com/albertocavalcante/go-modconflict/predicate"
)

// Partition groups candidates into conflict slots the way a graph engine
// does before calling Select. Candidates of the same module always share a
// slot; two modules share a slot when ModuleConflicts of either one matches
// the other, transitively.
//
// Within a slot candidates keep their input order. Slots are ordered by
// their smallest coordinate.
func (o *Orchestrator) Partition(candidates []Candidate) [][]Candidate {
	var modules []coord.ModuleID
	for _, c := range candidates {
		m := c.ModuleVersion().Module
		if !slices.Contains(modules, m) {
			modules = append(modules, m)
		}
	}

	uf := newUnionFind(len(modules))
	for i, a := range modules {
		conflicts := o.ModuleConflicts(a)
		if predicate.IsNone(conflicts) {
			continue
		}
		for j, b := range modules {
			if i != j && conflicts.IsSatisfiedBy(b) {
				uf.union(i, j)
			}
		}
	}

	index := make(map[coord.ModuleID]int, len(modules))
	for i, m := range modules {
		index[m] = i
	}
	bySlot := make(map[int][]Candidate)
	var roots []int
	for _, c := range candidates {
		root := uf.find(index[c.ModuleVersion().Module])
		if _, ok := bySlot[root]; !ok {
			roots = append(roots, root)
		}
		bySlot[root] = append(bySlot[root], c)
	}

	slots := make([][]Candidate, 0, len(roots))
	for _, root := range roots {
		slots = append(slots, bySlot[root])
	}
	slices.SortFunc(slots, func(a, b []Candidate) int {
		return coord.Compare(sortedVersions(a)[0], sortedVersions(b)[0])
	})
	return slots
}

// SelectAll partitions candidates into conflict slots and selects a winner
// for each. Winners are sorted by coordinate. Failures of individual slots
// are joined into one error; winners of the other slots are still returned.
func (o *Orchestrator) SelectAll(candidates []Candidate) ([]Candidate, error) {
	var (
		winners []Candidate
		errs    []error
	)
	for _, slot := range o.Partition(candidates) {
		w, err := o.Select(slot)
		if err != nil {
			errs = append(errs, fmt.Errorf("slot %s: %w", joinVersions(sortedVersions(slot)), err))
			continue
		}
		winners = append(winners, w)
	}
	slices.SortFunc(winners, func(a, b Candidate) int {
		return coord.Compare(a.ModuleVersion(), b.ModuleVersion())
	})
	return winners, errors.Join(errs...)
}

type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &unionFind{parent: parent}
}

func (u *unionFind) find(i int) int {
	for u.parent[i] != i {
		u.parent[i] = u.parent[u.parent[i]]
		i = u.parent[i]
	}
	return i
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if ra < rb {
		u.parent[rb] = ra
	} else {
		u.parent[ra] = rb
	}
}
