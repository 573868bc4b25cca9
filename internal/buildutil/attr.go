// Package buildutil provides helpers for reading keyword arguments out of
// buildtools call expressions.
package buildutil

import (
	"github.com/bazelbuild/buildtools/build"
)

// Attr returns the right-hand side of the keyword argument name, or nil if
// the call has no such argument.
func Attr(call *build.CallExpr, name string) build.Expr {
	for _, arg := range call.List {
		assign, ok := arg.(*build.AssignExpr)
		if !ok {
			continue
		}
		if lhs, ok := assign.LHS.(*build.Ident); ok && lhs.Name == name {
			return assign.RHS
		}
	}
	return nil
}

// HasAttr reports whether the call passes the keyword argument name.
func HasAttr(call *build.CallExpr, name string) bool {
	return Attr(call, name) != nil
}

// String extracts a string attribute from a function call by name.
// The second result is false if the attribute is missing or not a string
// literal.
func String(call *build.CallExpr, name string) (string, bool) {
	str, ok := Attr(call, name).(*build.StringExpr)
	if !ok {
		return "", false
	}
	return str.Value, true
}

// StringList extracts a list-of-strings attribute from a function call by
// name. The second result is false if the attribute is missing, is not a
// list, or holds a non-string element.
func StringList(call *build.CallExpr, name string) ([]string, bool) {
	list, ok := Attr(call, name).(*build.ListExpr)
	if !ok {
		return nil, false
	}
	result := make([]string, 0, len(list.List))
	for _, elem := range list.List {
		str, ok := elem.(*build.StringExpr)
		if !ok {
			return nil, false
		}
		result = append(result, str.Value)
	}
	return result, true
}

// AttrNames returns the keyword argument names of a call in source order.
func AttrNames(call *build.CallExpr) []string {
	var names []string
	for _, arg := range call.List {
		if assign, ok := arg.(*build.AssignExpr); ok {
			if lhs, ok := assign.LHS.(*build.Ident); ok {
				names = append(names, lhs.Name)
			}
		}
	}
	return names
}

// PositionalCount returns the number of positional arguments of a call.
func PositionalCount(call *build.CallExpr) int {
	n := 0
	for _, arg := range call.List {
		if _, ok := arg.(*build.AssignExpr); !ok {
			n++
		}
	}
	return n
}

// FuncName returns the function name from a CallExpr.
// Returns empty string if the call is not a simple function call
// (e.g., method calls like foo.bar()).
func FuncName(call *build.CallExpr) string {
	if ident, ok := call.X.(*build.Ident); ok {
		return ident.Name
	}
	return ""
}

// Start returns the 1-based line and column where expr begins.
func Start(expr build.Expr) (line, column int) {
	start, _ := expr.Span()
	return start.Line, start.LineRune
}
