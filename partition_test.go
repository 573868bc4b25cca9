package modconflict

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/albertocavalcante/go-modconflict/coord"
)

func slotStrings(slots [][]Candidate) [][]string {
	out := make([][]string, len(slots))
	for i, slot := range slots {
		for _, c := range slot {
			out[i] = append(out[i], c.ModuleVersion().String())
		}
	}
	return out
}

func candidateStrings(cs []Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ModuleVersion().String()
	}
	return out
}

func partitionRules(t *testing.T) *RuleSet {
	t.Helper()
	rs := NewRuleSet()
	mustReplace(t, rs, "com.foo:old", "com.foo:new")
	if _, err := rs.Declare(PreferModule(coord.MustModuleID("com.x:b")), "com.x:a", "com.x:b"); err != nil {
		t.Fatal(err)
	}
	return rs
}

func TestPartition(t *testing.T) {
	o := mustOrchestrator(t, partitionRules(t))

	got := o.Partition(nodes(
		"com.foo:old:1.0",
		"com.x:a:1.0",
		"com.foo:new:2.0",
		"org.lone:lib:1.0",
		"com.x:b:1.0",
		"com.foo:old:0.9",
	))
	want := [][]string{
		{"com.foo:old:1.0", "com.foo:new:2.0", "com.foo:old:0.9"},
		{"com.x:a:1.0", "com.x:b:1.0"},
		{"org.lone:lib:1.0"},
	}
	if diff := cmp.Diff(want, slotStrings(got)); diff != "" {
		t.Errorf("Partition() mismatch (-want +got):\n%s", diff)
	}
}

func TestPartition_Transitive(t *testing.T) {
	// g:a and g:b share a group, g:b is replaced by g:c: all three share a slot.
	rs := NewRuleSet()
	if _, err := rs.Declare(nil, "g:a", "g:b"); err != nil {
		t.Fatal(err)
	}
	mustReplace(t, rs, "g:b", "g:c")
	o := mustOrchestrator(t, rs)

	got := o.Partition(nodes("g:c:1.0", "g:a:1.0", "g:b:1.0"))
	want := [][]string{{"g:c:1.0", "g:a:1.0", "g:b:1.0"}}
	if diff := cmp.Diff(want, slotStrings(got)); diff != "" {
		t.Errorf("Partition() mismatch (-want +got):\n%s", diff)
	}
}

func TestPartition_Empty(t *testing.T) {
	o := mustOrchestrator(t, NewRuleSet())
	if got := o.Partition(nil); len(got) != 0 {
		t.Errorf("Partition(nil) = %v, want empty", got)
	}
}

func TestSelectAll(t *testing.T) {
	o := mustOrchestrator(t, partitionRules(t))

	winners, err := o.SelectAll(nodes(
		"com.x:a:1.0",
		"com.foo:old:3.0",
		"org.lone:lib:1.0",
		"com.foo:new:2.0",
		"com.x:b:1.0",
		"org.lone:lib:1.1",
	))
	if err != nil {
		t.Fatalf("SelectAll() error = %v", err)
	}
	want := []string{"com.foo:new:2.0", "com.x:b:1.0", "org.lone:lib:1.1"}
	if diff := cmp.Diff(want, candidateStrings(winners)); diff != "" {
		t.Errorf("SelectAll() mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectAll_PartialFailure(t *testing.T) {
	rs := NewRuleSet()
	if _, err := rs.Declare(PreferModule(coord.MustModuleID("g:a")), "g:a", "g:b"); err != nil {
		t.Fatal(err)
	}
	if _, err := rs.Declare(PreferModule(coord.MustModuleID("g:b")), "g:a", "g:b"); err != nil {
		t.Fatal(err)
	}
	o := mustOrchestrator(t, rs)

	winners, err := o.SelectAll(nodes("g:a:1.0", "g:b:1.0", "h:x:1.0"))
	if !errors.Is(err, ErrContradiction) {
		t.Fatalf("SelectAll() error = %v, want ErrContradiction", err)
	}
	if diff := cmp.Diff([]string{"h:x:1.0"}, candidateStrings(winners)); diff != "" {
		t.Errorf("SelectAll() winners mismatch (-want +got):\n%s", diff)
	}
}
