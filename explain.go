package modconflict

import (
	"fmt"
	"strings"

	"github.com/albertocavalcante/go-modconflict/coord"
)

// StepOutcome is what a resolver did during one selection.
type StepOutcome string

const (
	// StepSkipped means the resolver's domain did not cover every candidate.
	StepSkipped StepOutcome = "skipped"

	// StepInactive means the resolver returned no selector for these candidates.
	StepInactive StepOutcome = "inactive"

	// StepNarrowed means the resolver's selector filtered the candidates.
	StepNarrowed StepOutcome = "narrowed"
)

// Step records one resolver's part in a selection.
type Step struct {
	// Resolver is the resolver's description.
	Resolver string

	// Outcome is what the resolver did.
	Outcome StepOutcome

	// Remaining lists the candidates left after a StepNarrowed step.
	Remaining []coord.ModuleVersion
}

// Explanation describes how Select reached its winner.
type Explanation struct {
	// Candidates is the original candidate set, sorted.
	Candidates []coord.ModuleVersion

	// Steps has one entry per declared resolver, in declaration order.
	Steps []Step

	// Survivors are the candidates handed to the fallback, sorted.
	Survivors []coord.ModuleVersion

	// Winner is the selected candidate.
	Winner Candidate
}

// String renders the explanation as indented text.
func (e *Explanation) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "candidates: %s\n", joinVersions(e.Candidates))
	for i, s := range e.Steps {
		fmt.Fprintf(&b, "  %d. %s: %s", i+1, s.Resolver, s.Outcome)
		if s.Outcome == StepNarrowed {
			fmt.Fprintf(&b, " -> %s", joinVersions(s.Remaining))
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "survivors: %s\n", joinVersions(e.Survivors))
	if e.Winner != nil {
		fmt.Fprintf(&b, "winner: %s\n", e.Winner.ModuleVersion())
	}
	return b.String()
}

func joinVersions(vs []coord.ModuleVersion) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
