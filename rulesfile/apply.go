package rulesfile

import (
	"fmt"

	modconflict "github.com/albertocavalcante/go-modconflict"
	"github.com/albertocavalcante/go-modconflict/coord"
	"github.com/albertocavalcante/go-modconflict/predicate"
)

// Apply declares the file's rules on rs in file order. It stops at the first
// rule the rule set rejects. Nil entries are skipped.
func (f *File) Apply(rs *modconflict.RuleSet) error {
	for _, r := range f.Rules {
		if isNilRule(r) {
			continue
		}
		if err := apply(rs, r); err != nil {
			return &ParseError{Pos: r.Position(), Message: err.Error(), Wrapped: err}
		}
	}
	return nil
}

func isNilRule(r Rule) bool {
	switch r := r.(type) {
	case nil:
		return true
	case *Replace:
		return r == nil
	case *ConflictGroup:
		return r == nil
	}
	return false
}

func apply(rs *modconflict.RuleSet, r Rule) error {
	switch r := r.(type) {
	case *Replace:
		target, err := rs.Replace(r.From)
		if err != nil {
			return err
		}
		return target.Into(r.Into)
	case *ConflictGroup:
		resolution, err := r.Resolution()
		if err != nil {
			return err
		}
		members := make([]any, len(r.Modules))
		for i, m := range r.Modules {
			members[i] = m
		}
		_, err = rs.Declare(resolution, members...)
		return err
	default:
		return fmt.Errorf("unsupported rule %T", r)
	}
}

// Resolution compiles the group's preference into a version predicate.
// It returns nil if the group declares no preference.
func (g *ConflictGroup) Resolution() (modconflict.VersionPredicate, error) {
	switch {
	case g.Prefer != "":
		id, err := coord.ParseModuleID(g.Prefer)
		if err != nil {
			return nil, err
		}
		return modconflict.PreferModule(id), nil
	case g.Avoid != "":
		id, err := coord.ParseModuleID(g.Avoid)
		if err != nil {
			return nil, err
		}
		return predicate.Not(modconflict.PreferModule(id)), nil
	case g.PreferVersions != "":
		return modconflict.VersionMatching(g.PreferVersions)
	default:
		return nil, nil
	}
}

// Load parses filename and applies its rules to rs. Parse errors are
// returned joined; warnings are returned for the caller to report.
func Load(filename string, rs *modconflict.RuleSet) ([]*ParseError, error) {
	result, err := ParseFile(filename)
	if err != nil {
		return nil, err
	}
	if err := result.Err(); err != nil {
		return result.Warnings, err
	}
	return result.Warnings, result.File.Apply(rs)
}
