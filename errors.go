package modconflict

import (
	"errors"
	"strings"

	"github.com/albertocavalcante/go-modconflict/coord"
)

// Sentinel errors for rule declaration. These are raised when a rule is
// declared, never during selection.
var (
	// ErrMalformedCoordinate indicates a coordinate string is not "group:name".
	ErrMalformedCoordinate = coord.ErrMalformedCoordinate

	// ErrUnsupportedMember indicates a conflict group member of an unknown type.
	ErrUnsupportedMember = errors.New("unsupported conflict group member")

	// ErrUnsupportedTarget indicates a replacement target of an unknown type.
	ErrUnsupportedTarget = errors.New("unsupported replacement target")

	// ErrResolutionAlreadySet indicates a second resolution for the same group.
	ErrResolutionAlreadySet = errors.New("resolution already set")

	// ErrNilResolution indicates a nil resolution predicate.
	ErrNilResolution = errors.New("resolution predicate is nil")

	// ErrTargetAlreadySet indicates Into was called twice on one replacement.
	ErrTargetAlreadySet = errors.New("replacement target already set")

	// ErrNilResolver indicates a nil resolver was added to a rule set.
	ErrNilResolver = errors.New("resolver is nil")

	// ErrSealed indicates a conflict group was modified after its rule set froze.
	ErrSealed = errors.New("conflict group is sealed")

	// ErrFrozen indicates a declaration on a frozen rule set.
	ErrFrozen = errors.New("rule set is frozen")
)

// Sentinel errors for selection.
var (
	// ErrNoCandidates indicates Select was called with an empty candidate set.
	ErrNoCandidates = errors.New("no candidates")

	// ErrContradiction indicates the resolvers jointly excluded every candidate.
	ErrContradiction = errors.New("conflict resolvers filtered out all candidates")

	// ErrFallbackResult indicates the fallback returned nothing, or a
	// candidate that was not offered to it.
	ErrFallbackResult = errors.New("fallback did not select an offered candidate")
)

// ContradictionError reports a candidate set that the declared rules
// narrowed down to nothing. Candidates is always the original, unfiltered set.
type ContradictionError struct {
	Candidates []coord.ModuleVersion

	// Resolver names the rule that emptied the set when strict selectors
	// are enabled. Empty otherwise.
	Resolver string
}

func (e *ContradictionError) Error() string {
	names := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		names[i] = c.String()
	}
	list := "[" + strings.Join(names, ", ") + "]"
	if e.Resolver != "" {
		return "conflict resolver " + e.Resolver + " filtered out all candidates: " + list
	}
	return ErrContradiction.Error() + ": " + list
}

// Is makes errors.Is(err, ErrContradiction) hold.
func (e *ContradictionError) Is(target error) bool {
	return target == ErrContradiction
}
