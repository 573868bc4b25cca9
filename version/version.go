// Package version orders candidate version strings.
//
// Versions are not required to be semantic versions. A version is read as
//
//	[v]RELEASE[-PRERELEASE][+BUILD]
//
// where RELEASE and PRERELEASE are dot-separated identifiers. BUILD metadata
// never affects ordering.
//
// Comparison rules:
//   - Release identifiers are compared left to right; a shorter release that
//     is a prefix of a longer one sorts first ("1.0" < "1.0.1").
//   - Digits-only identifiers compare numerically and sort before
//     alphanumeric identifiers, which compare lexicographically.
//   - A prerelease sorts before the same release without one.
//   - Strings that cannot be parsed sort before every parseable version and
//     are ordered lexicographically among themselves.
package version

import (
	"cmp"
	"regexp"
	"strconv"
	"strings"
)

var versionPattern = regexp.MustCompile(
	`^v?([a-zA-Z0-9]+(?:\.[a-zA-Z0-9]+)*)(?:-([a-zA-Z0-9.-]+))?(?:\+[a-zA-Z0-9.-]+)?$`,
)

// Identifier is one dot-separated segment of a version.
type Identifier struct {
	Numeric bool
	Number  uint64 // valid only if Numeric
	Text    string
}

// ParseIdentifier classifies a single segment.
func ParseIdentifier(s string) Identifier {
	if s != "" && strings.Trim(s, "0123456789") == "" {
		if n, err := strconv.ParseUint(s, 10, 64); err == nil {
			return Identifier{Numeric: true, Number: n, Text: s}
		}
	}
	return Identifier{Text: s}
}

// CompareIdentifiers orders two identifiers.
func CompareIdentifiers(a, b Identifier) int {
	if a.Numeric != b.Numeric {
		if a.Numeric {
			return -1
		}
		return 1
	}
	if a.Numeric {
		return cmp.Compare(a.Number, b.Number)
	}
	return strings.Compare(a.Text, b.Text)
}

// Parsed is a version split into its comparable parts.
type Parsed struct {
	Release    []Identifier
	Prerelease []Identifier
}

// IsPrerelease reports whether the version carries a prerelease part.
func (p Parsed) IsPrerelease() bool {
	return len(p.Prerelease) > 0
}

// ParseError is returned by Parse for strings that are not versions.
type ParseError struct {
	Version string
}

func (e *ParseError) Error() string {
	return "invalid version " + strconv.Quote(e.Version)
}

// Parse splits s into release and prerelease identifiers.
func Parse(s string) (Parsed, error) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return Parsed{}, &ParseError{Version: s}
	}
	p := Parsed{Release: identifiers(m[1])}
	if m[2] != "" {
		p.Prerelease = identifiers(m[2])
	}
	return p, nil
}

func identifiers(s string) []Identifier {
	parts := strings.Split(s, ".")
	out := make([]Identifier, len(parts))
	for i, part := range parts {
		out[i] = ParseIdentifier(part)
	}
	return out
}

// Compare returns -1 if a < b, 0 if a == b, 1 if a > b.
func Compare(a, b string) int {
	pa, errA := Parse(a)
	pb, errB := Parse(b)
	switch {
	case errA != nil && errB != nil:
		return strings.Compare(a, b)
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	}

	if c := compareLists(pa.Release, pb.Release); c != 0 {
		return c
	}
	if pa.IsPrerelease() != pb.IsPrerelease() {
		if pa.IsPrerelease() {
			return -1
		}
		return 1
	}
	return compareLists(pa.Prerelease, pb.Prerelease)
}

func compareLists(a, b []Identifier) int {
	for i := range min(len(a), len(b)) {
		if c := CompareIdentifiers(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}
