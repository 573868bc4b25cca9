// Package rulesfile loads conflict rules from a Starlark-syntax file.
//
// A rules file is a sequence of calls:
//
//	replace(from = "com.foo:old", into = "com.foo:new")
//
//	conflict_group(
//	    modules = ["com.x:a", "com.x:b"],
//	    prefer = "com.x:b",
//	)
//	conflict_group(modules = ["org.y:c", "org.y:d"], prefer_versions = "^2.0")
//	conflict_group(modules = ["org.z:e", "org.z:f"], avoid = "org.z:e")
//
// Only literal coordinates are accepted. A conflict_group takes at most one
// of prefer, prefer_versions and avoid; without any of them the group only
// merges its modules into one conflict slot.
//
// Rules are applied to a modconflict.RuleSet in file order, which is also
// their priority.
package rulesfile

import (
	"fmt"

	"github.com/bazelbuild/buildtools/build"
)

// Position represents a source position for diagnostics.
type Position struct {
	Filename string
	Line     int
	Column   int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// File represents a parsed rules file.
type File struct {
	Path  string
	Rules []Rule
	raw   *build.File
}

// Raw returns the underlying buildtools File.
func (f *File) Raw() *build.File {
	return f.raw
}

// Rule is one declaration in a rules file.
type Rule interface {
	Position() Position
	isRule()
}

// Replace represents a replace() declaration.
type Replace struct {
	Pos  Position
	From string
	Into string
}

func (r *Replace) Position() Position { return r.Pos }
func (r *Replace) isRule()            {}

// ConflictGroup represents a conflict_group() declaration. At most one of
// Prefer, PreferVersions and Avoid is set.
type ConflictGroup struct {
	Pos     Position
	Modules []string

	// Prefer selects the candidates of one module.
	Prefer string

	// PreferVersions selects candidates whose version satisfies a
	// semantic version constraint.
	PreferVersions string

	// Avoid selects every candidate except those of one module.
	Avoid string
}

func (g *ConflictGroup) Position() Position { return g.Pos }
func (g *ConflictGroup) isRule()            {}

// HasResolution reports whether the group declares a preference.
func (g *ConflictGroup) HasResolution() bool {
	return g.Prefer != "" || g.PreferVersions != "" || g.Avoid != ""
}
