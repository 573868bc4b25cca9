package coord

import (
	"errors"
	"slices"
	"testing"
)

func TestParseModuleID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ModuleID
		wantErr bool
	}{
		{"simple", "com.foo:bar", ModuleID{Group: "com.foo", Name: "bar"}, false},
		{"dashes", "org.acme-corp:lib-core", ModuleID{Group: "org.acme-corp", Name: "lib-core"}, false},
		{"empty", "", ModuleID{}, true},
		{"no separator", "com.foo", ModuleID{}, true},
		{"three segments", "com.foo:bar:1.0", ModuleID{}, true},
		{"empty group", ":bar", ModuleID{}, true},
		{"empty name", "com.foo:", ModuleID{}, true},
		{"blank name", "com.foo: ", ModuleID{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseModuleID(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseModuleID(%q) expected error, got %v", tt.input, got)
				}
				if !errors.Is(err, ErrMalformedCoordinate) {
					t.Errorf("ParseModuleID(%q) error = %v, want ErrMalformedCoordinate", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseModuleID(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseModuleID(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
			if got.String() != tt.input {
				t.Errorf("ParseModuleID(%q).String() = %q", tt.input, got.String())
			}
		})
	}
}

func TestParseModuleVersion(t *testing.T) {
	mv, err := ParseModuleVersion("com.foo:bar:1.2.3")
	if err != nil {
		t.Fatalf("ParseModuleVersion error: %v", err)
	}
	if mv.Module != (ModuleID{Group: "com.foo", Name: "bar"}) || mv.Version != "1.2.3" {
		t.Errorf("ParseModuleVersion = %+v", mv)
	}
	if mv.String() != "com.foo:bar:1.2.3" {
		t.Errorf("String() = %q", mv.String())
	}
	if mv.ModuleVersion() != mv {
		t.Error("ModuleVersion() should return the receiver")
	}

	for _, bad := range []string{"com.foo:bar", "com.foo:bar:", "a:b:c:d", ""} {
		if _, err := ParseModuleVersion(bad); !errors.Is(err, ErrMalformedCoordinate) {
			t.Errorf("ParseModuleVersion(%q) error = %v, want ErrMalformedCoordinate", bad, err)
		}
	}
}

func TestMustModuleID(t *testing.T) {
	if MustModuleID("g:a").Name != "a" {
		t.Error("MustModuleID('g:a') returned wrong name")
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("MustModuleID('bad') should have panicked")
		}
	}()
	MustModuleID("bad")
}

func TestModuleIDEquality(t *testing.T) {
	a := MustModuleID("g:a")
	if a != (ModuleID{Group: "g", Name: "a"}) {
		t.Error("equal coordinates should compare equal")
	}
	if a == MustModuleID("g:b") {
		t.Error("different coordinates should not compare equal")
	}

	var empty ModuleID
	if !empty.IsEmpty() {
		t.Error("zero-value ModuleID should be empty")
	}
	if a.IsEmpty() {
		t.Error("parsed ModuleID should not be empty")
	}
}

func TestCompare(t *testing.T) {
	got := []ModuleVersion{
		MustModuleVersion("g:b:1.0"),
		MustModuleVersion("g:a:2.0"),
		MustModuleVersion("g:a:1.0"),
	}
	slices.SortFunc(got, Compare)
	want := []string{"g:a:1.0", "g:a:2.0", "g:b:1.0"}
	for i, mv := range got {
		if mv.String() != want[i] {
			t.Errorf("sorted[%d] = %s, want %s", i, mv, want[i])
		}
	}
}
