// Package semver wraps github.com/Masterminds/semver/v3 for the version
// constraints accepted by preference rules.
package semver

import (
	"fmt"

	mm "github.com/Masterminds/semver/v3"
)

// Constraint is a semantic version constraint.
//
// Examples:
//   - ">=1.2.0 <2.0.0"
//   - "^1.0.0"
//   - "~1.4"
type Constraint struct {
	raw string
	c   *mm.Constraints
}

// ParseConstraint parses a constraint in Masterminds syntax.
func ParseConstraint(raw string) (Constraint, error) {
	c, err := mm.NewConstraint(raw)
	if err != nil {
		return Constraint{}, fmt.Errorf("semver: parse constraint %q: %w", raw, err)
	}
	return Constraint{raw: raw, c: c}, nil
}

// Allows reports whether version parses as a semantic version and satisfies c.
// Versions that do not parse never satisfy a constraint.
func (c Constraint) Allows(version string) bool {
	if c.c == nil {
		return false
	}
	v, err := mm.NewVersion(version)
	if err != nil {
		return false
	}
	return c.c.Check(v)
}

// String returns the constraint as written.
func (c Constraint) String() string {
	return c.raw
}
