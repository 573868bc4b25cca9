package buildutil

import (
	"testing"

	"github.com/bazelbuild/buildtools/build"
	"github.com/google/go-cmp/cmp"
)

func parseCall(t *testing.T, content string) *build.CallExpr {
	t.Helper()
	f, err := build.ParseDefault("test.star", []byte(content))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(f.Stmt) == 0 {
		t.Fatal("no statements parsed")
	}
	call, ok := f.Stmt[0].(*build.CallExpr)
	if !ok {
		t.Fatalf("expected CallExpr, got %T", f.Stmt[0])
	}
	return call
}

func TestString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		attrName string
		want     string
		wantOK   bool
	}{
		{
			name:     "named string attribute",
			input:    `foo(name = "bar")`,
			attrName: "name",
			want:     "bar",
			wantOK:   true,
		},
		{
			name:     "missing attribute",
			input:    `foo(other = "value")`,
			attrName: "name",
		},
		{
			name:     "non-string attribute",
			input:    `foo(name = 123)`,
			attrName: "name",
		},
		{
			name:     "positional is not an attribute",
			input:    `foo("positional")`,
			attrName: "name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call := parseCall(t, tt.input)
			got, ok := String(call, tt.attrName)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("String(%q) = (%q, %v), want (%q, %v)", tt.attrName, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestStringList(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   []string
		wantOK bool
	}{
		{
			name:   "list of strings",
			input:  `foo(modules = ["a:b", "c:d"])`,
			want:   []string{"a:b", "c:d"},
			wantOK: true,
		},
		{
			name:   "empty list",
			input:  `foo(modules = [])`,
			want:   []string{},
			wantOK: true,
		},
		{
			name:  "not a list",
			input: `foo(modules = "a:b")`,
		},
		{
			name:  "non-string element",
			input: `foo(modules = ["a:b", 1])`,
		},
		{
			name:  "missing",
			input: `foo()`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := StringList(parseCall(t, tt.input), "modules")
			if ok != tt.wantOK {
				t.Fatalf("StringList() ok = %v, want %v", ok, tt.wantOK)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("StringList() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAttrNames(t *testing.T) {
	call := parseCall(t, `foo("x", 3, b = 1, a = "2")`)
	if diff := cmp.Diff([]string{"b", "a"}, AttrNames(call)); diff != "" {
		t.Errorf("AttrNames() mismatch (-want +got):\n%s", diff)
	}
	if got := PositionalCount(call); got != 2 {
		t.Errorf("PositionalCount() = %d, want 2", got)
	}
	if !HasAttr(call, "a") || HasAttr(call, "c") {
		t.Error("HasAttr() mismatch")
	}
}

func TestFuncName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`replace(from = "a:b")`, "replace"},
		{`ext.tag(name = "x")`, ""},
	}
	for _, tt := range tests {
		if got := FuncName(parseCall(t, tt.input)); got != tt.want {
			t.Errorf("FuncName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestStart(t *testing.T) {
	f, err := build.ParseDefault("test.star", []byte("\n\nfoo(a = 1)\n"))
	if err != nil {
		t.Fatal(err)
	}
	line, col := Start(f.Stmt[0])
	if line != 3 || col != 1 {
		t.Errorf("Start() = %d:%d, want 3:1", line, col)
	}
}
