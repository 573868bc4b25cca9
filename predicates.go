package modconflict

import (
	"fmt"
	"reflect"

	"github.com/albertocavalcante/go-modconflict/coord"
	"github.com/albertocavalcante/go-modconflict/internal/semver"
	"github.com/albertocavalcante/go-modconflict/predicate"
)

// ModulePredicate tests module coordinates.
type ModulePredicate = predicate.Predicate[coord.ModuleID]

// VersionPredicate tests module-version coordinates.
type VersionPredicate = predicate.Predicate[coord.ModuleVersion]

// ModuleMatch matches exactly one module. It is comparable, so identical
// declarations are recognized as duplicates.
type ModuleMatch struct {
	ID coord.ModuleID
}

// MatchModule returns a predicate matching exactly id.
func MatchModule(id coord.ModuleID) ModuleMatch {
	return ModuleMatch{ID: id}
}

// IsSatisfiedBy reports whether id is the matched module.
func (m ModuleMatch) IsSatisfiedBy(id coord.ModuleID) bool {
	return m.ID == id
}

func (m ModuleMatch) String() string {
	return m.ID.String()
}

// ModuleMatcher wraps a caller-supplied function as a ModulePredicate.
func ModuleMatcher(fn func(coord.ModuleID) bool) ModulePredicate {
	return predicate.Func[coord.ModuleID](fn)
}

// modulePreference selects candidates by their module.
type modulePreference struct {
	modules ModulePredicate
}

func (p modulePreference) IsSatisfiedBy(v coord.ModuleVersion) bool {
	return p.modules.IsSatisfiedBy(v.Module)
}

func (p modulePreference) String() string {
	return "module in " + predicate.Describe(p.modules)
}

// PreferModule returns a version predicate selecting the candidates of id.
func PreferModule(id coord.ModuleID) VersionPredicate {
	return modulePreference{modules: MatchModule(id)}
}

// PreferModules returns a version predicate selecting the candidates whose
// module satisfies modules.
func PreferModules(modules ModulePredicate) VersionPredicate {
	if modules == nil {
		return predicate.None[coord.ModuleVersion]()
	}
	return modulePreference{modules: modules}
}

type versionConstraint struct {
	c semver.Constraint
}

func (p versionConstraint) IsSatisfiedBy(v coord.ModuleVersion) bool {
	return p.c.Allows(v.Version)
}

func (p versionConstraint) String() string {
	return "version " + p.c.String()
}

// VersionMatching returns a version predicate selecting candidates whose
// version satisfies a semantic version constraint such as "^2.0" or
// ">=1.2 <2". Versions that are not semantic versions never match.
func VersionMatching(constraint string) (VersionPredicate, error) {
	c, err := semver.ParseConstraint(constraint)
	if err != nil {
		return nil, err
	}
	return versionConstraint{c: c}, nil
}

// compileModule turns a declared member or target into a ModulePredicate.
// Accepted: "group:name" strings, coord.ModuleID, ModulePredicate and
// func(coord.ModuleID) bool. Anything else, including a nil pointer
// implementing ModulePredicate, is reported with unsupported.
func compileModule(v any, unsupported error) (ModulePredicate, error) {
	switch x := v.(type) {
	case string:
		id, err := coord.ParseModuleID(x)
		if err != nil {
			return nil, err
		}
		return MatchModule(id), nil
	case coord.ModuleID:
		if x.IsEmpty() {
			return nil, fmt.Errorf("%w: empty module", unsupported)
		}
		return MatchModule(x), nil
	case func(coord.ModuleID) bool:
		if x == nil {
			return nil, fmt.Errorf("%w: nil func", unsupported)
		}
		return predicate.Func[coord.ModuleID](x), nil
	case ModulePredicate:
		if v := reflect.ValueOf(x); v.Kind() == reflect.Pointer && v.IsNil() {
			return nil, fmt.Errorf("%w: nil %T", unsupported, x)
		}
		return x, nil
	default:
		return nil, fmt.Errorf("%w: %T (%v)", unsupported, v, v)
	}
}
