package semver

import "testing"

func TestAllows(t *testing.T) {
	c, err := ParseConstraint("^1.2.0")
	if err != nil {
		t.Fatalf("ParseConstraint error: %v", err)
	}

	if !c.Allows("1.2.0") {
		t.Fatalf("expected 1.2.0 to satisfy ^1.2.0")
	}
	if !c.Allows("1.9.9") {
		t.Fatalf("expected 1.9.9 to satisfy ^1.2.0")
	}
	if c.Allows("2.0.0") {
		t.Fatalf("expected 2.0.0 to NOT satisfy ^1.2.0")
	}
	if c.Allows("not-a-version") {
		t.Fatalf("expected unparseable version to never satisfy")
	}
	if c.String() != "^1.2.0" {
		t.Fatalf("String() = %q", c.String())
	}
}

func TestParseConstraintError(t *testing.T) {
	if _, err := ParseConstraint(">>>nope"); err == nil {
		t.Fatalf("expected error for invalid constraint")
	}

	var zero Constraint
	if zero.Allows("1.0.0") {
		t.Fatalf("zero Constraint should allow nothing")
	}
}
