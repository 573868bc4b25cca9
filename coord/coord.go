// Package coord provides the immutable coordinate types the conflict resolver
// operates on.
//
// Coordinates are plain comparable structs: two values are equal exactly when
// their fields are equal, so they can be used as map keys and set members.
// Use the parse functions (ParseModuleID, ParseModuleVersion) to build values
// from user input; they reject malformed strings instead of matching partially.
//
// # Formats
//
//   - [ModuleID]: "group:name" (e.g., "com.google.guava:guava")
//   - [ModuleVersion]: "group:name:version" (e.g., "com.google.guava:guava:33.0.0")
package coord

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedCoordinate is returned when a coordinate string does not have
// the expected number of non-empty ':'-separated segments.
var ErrMalformedCoordinate = errors.New("malformed coordinate")

// ModuleID identifies a logical dependency irrespective of version.
type ModuleID struct {
	Group string
	Name  string
}

// ParseModuleID parses a "group:name" string.
// Exactly two non-empty segments are required.
func ParseModuleID(s string) (ModuleID, error) {
	parts, err := split(s, 2)
	if err != nil {
		return ModuleID{}, err
	}
	return ModuleID{Group: parts[0], Name: parts[1]}, nil
}

// MustModuleID parses a ModuleID or panics. Use only for constants/tests.
func MustModuleID(s string) ModuleID {
	id, err := ParseModuleID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the module as "group:name".
func (m ModuleID) String() string {
	return m.Group + ":" + m.Name
}

// IsEmpty returns true if this is a zero-value ModuleID.
func (m ModuleID) IsEmpty() bool {
	return m.Group == "" && m.Name == ""
}

// ModuleVersion identifies one concrete resolvable artifact.
type ModuleVersion struct {
	Module  ModuleID
	Version string
}

// ParseModuleVersion parses a "group:name:version" string.
// Exactly three non-empty segments are required.
func ParseModuleVersion(s string) (ModuleVersion, error) {
	parts, err := split(s, 3)
	if err != nil {
		return ModuleVersion{}, err
	}
	return ModuleVersion{
		Module:  ModuleID{Group: parts[0], Name: parts[1]},
		Version: parts[2],
	}, nil
}

// MustModuleVersion parses a ModuleVersion or panics. Use only for constants/tests.
func MustModuleVersion(s string) ModuleVersion {
	mv, err := ParseModuleVersion(s)
	if err != nil {
		panic(err)
	}
	return mv
}

// ModuleVersion returns v itself, so a bare coordinate can stand in wherever
// a candidate exposing its coordinate is expected.
func (v ModuleVersion) ModuleVersion() ModuleVersion {
	return v
}

// String returns the coordinate as "group:name:version".
func (v ModuleVersion) String() string {
	return v.Module.String() + ":" + v.Version
}

// Compare orders coordinates by their string form. It is a total order
// suitable for slices.SortFunc and gives deterministic output.
func Compare(a, b ModuleVersion) int {
	return strings.Compare(a.String(), b.String())
}

func split(s string, want int) ([]string, error) {
	parts := strings.Split(s, ":")
	if len(parts) != want {
		return nil, fmt.Errorf("%w %q: expected %d ':'-separated segments, got %d",
			ErrMalformedCoordinate, s, want, len(parts))
	}
	for i, p := range parts {
		if strings.TrimSpace(p) == "" {
			return nil, fmt.Errorf("%w %q: segment %d is empty", ErrMalformedCoordinate, s, i+1)
		}
	}
	return parts, nil
}
