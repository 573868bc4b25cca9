// Package predicate provides composable boolean tests over values.
//
// A [Predicate] is the unit the conflict rules are built from: a rule's
// domain ("which modules does this rule know about") and its selection
// ("which candidates survive") are both predicates. Implementations may be
// literal matchers with a comparable value (so identical declarations
// compare equal) or caller-supplied functions wrapped in [Func].
package predicate

import (
	"fmt"
	"strings"
)

// Predicate is a boolean test over values of type T.
type Predicate[T any] interface {
	IsSatisfiedBy(value T) bool
}

// Func adapts an ordinary function to the Predicate interface.
type Func[T any] func(T) bool

// IsSatisfiedBy calls f(value). A nil Func is never satisfied.
func (f Func[T]) IsSatisfiedBy(value T) bool {
	if f == nil {
		return false
	}
	return f(value)
}

func (f Func[T]) String() string {
	return "func"
}

// none is the never-satisfied sentinel.
type none[T any] struct{}

func (none[T]) IsSatisfiedBy(T) bool { return false }
func (none[T]) String() string       { return "none" }

// None returns a predicate that is never satisfied.
func None[T any]() Predicate[T] {
	return none[T]{}
}

// IsNone reports whether p is nil or the sentinel returned by None.
func IsNone[T any](p Predicate[T]) bool {
	if p == nil {
		return true
	}
	_, ok := p.(none[T])
	return ok
}

type all[T any] struct{}

func (all[T]) IsSatisfiedBy(T) bool { return true }
func (all[T]) String() string       { return "all" }

// All returns a predicate that is always satisfied.
func All[T any]() Predicate[T] {
	return all[T]{}
}

// OrPredicate is satisfied when any of its members is.
type OrPredicate[T any] struct {
	members []Predicate[T]
}

// Or combines predicates into one that is satisfied when any member is.
// Nil members and None sentinels are dropped. With no remaining members the
// result is None; with exactly one, that member is returned unchanged.
func Or[T any](preds ...Predicate[T]) Predicate[T] {
	members := make([]Predicate[T], 0, len(preds))
	for _, p := range preds {
		if IsNone(p) {
			continue
		}
		members = append(members, p)
	}
	switch len(members) {
	case 0:
		return None[T]()
	case 1:
		return members[0]
	}
	return &OrPredicate[T]{members: members}
}

// IsSatisfiedBy returns true if any member is satisfied by value.
func (o *OrPredicate[T]) IsSatisfiedBy(value T) bool {
	for _, p := range o.members {
		if p.IsSatisfiedBy(value) {
			return true
		}
	}
	return false
}

// Members returns a copy of the combined predicates.
func (o *OrPredicate[T]) Members() []Predicate[T] {
	out := make([]Predicate[T], len(o.members))
	copy(out, o.members)
	return out
}

func (o *OrPredicate[T]) String() string {
	parts := make([]string, len(o.members))
	for i, p := range o.members {
		parts[i] = Describe(p)
	}
	return strings.Join(parts, " | ")
}

type not[T any] struct {
	p Predicate[T]
}

func (n not[T]) IsSatisfiedBy(value T) bool { return !n.p.IsSatisfiedBy(value) }
func (n not[T]) String() string             { return "!" + Describe(n.p) }

// Not negates p. Not(nil) is always satisfied.
func Not[T any](p Predicate[T]) Predicate[T] {
	if p == nil {
		return All[T]()
	}
	return not[T]{p: p}
}

// Describe returns a human-readable form of p for diagnostics.
func Describe[T any](p Predicate[T]) string {
	if p == nil {
		return "<nil>"
	}
	if s, ok := p.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", p)
}
