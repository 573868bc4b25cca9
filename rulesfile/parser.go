package rulesfile

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/bazelbuild/buildtools/build"

	modconflict "github.com/albertocavalcante/go-modconflict"
	"github.com/albertocavalcante/go-modconflict/coord"
	"github.com/albertocavalcante/go-modconflict/internal/buildutil"
)

// ParseError represents a parsing error with position information.
type ParseError struct {
	Pos     Position
	Message string
	Wrapped error
}

func (e *ParseError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	if e.Pos.Filename != "" {
		return e.Pos.Filename + ": " + e.Message
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Wrapped
}

// ParseResult contains the parsed file and any diagnostics.
type ParseResult struct {
	File     *File
	Errors   []*ParseError
	Warnings []*ParseError
}

// HasErrors returns true if there were parse errors.
func (r *ParseResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Err joins all parse errors into one, or returns nil.
func (r *ParseResult) Err() error {
	if !r.HasErrors() {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

var (
	replaceAttrs = []string{"from", "into"}
	groupAttrs   = []string{"modules", "prefer", "prefer_versions", "avoid"}
)

type parser struct {
	filename string
	errors   []*ParseError
	warnings []*ParseError
}

// ParseFile reads and parses a rules file from disk.
func ParseFile(filename string) (*ParseResult, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return ParseContent(filename, data)
}

// ParseContent parses rules file content. A syntax error is returned as a
// *ParseError; semantic problems are collected in the result.
func ParseContent(filename string, content []byte) (*ParseResult, error) {
	p := &parser{filename: filename}
	return p.parse(content)
}

func (p *parser) parse(content []byte) (*ParseResult, error) {
	raw, err := build.ParseDefault(p.filename, content)
	if err != nil {
		return nil, &ParseError{
			Pos:     Position{Filename: p.filename},
			Message: fmt.Sprintf("syntax error: %v", err),
			Wrapped: err,
		}
	}

	file := &File{
		Path:  p.filename,
		Rules: make([]Rule, 0, len(raw.Stmt)),
		raw:   raw,
	}
	for _, stmt := range raw.Stmt {
		if r := p.parseStatement(stmt); r != nil {
			file.Rules = append(file.Rules, r)
		}
	}

	return &ParseResult{
		File:     file,
		Errors:   p.errors,
		Warnings: p.warnings,
	}, nil
}

func (p *parser) parseStatement(expr build.Expr) Rule {
	if _, ok := expr.(*build.CommentBlock); ok {
		return nil
	}
	pos := p.position(expr)

	call, ok := expr.(*build.CallExpr)
	if !ok {
		p.addError(pos, "unsupported statement: only replace() and conflict_group() calls are allowed")
		return nil
	}

	switch name := buildutil.FuncName(call); name {
	case "replace":
		if r := p.parseReplace(call, pos); r != nil {
			return r
		}
	case "conflict_group":
		if g := p.parseConflictGroup(call, pos); g != nil {
			return g
		}
	case "":
		p.addError(pos, "unsupported call: only replace() and conflict_group() are allowed")
	default:
		p.addError(pos, "unknown rule %q", name)
	}
	return nil
}

func (p *parser) parseReplace(call *build.CallExpr, pos Position) *Replace {
	if !p.checkArgs(call, pos, "replace", replaceAttrs) {
		return nil
	}
	r := &Replace{Pos: pos}
	var ok bool
	if r.From, ok = p.module(call, pos, "replace", "from"); !ok {
		return nil
	}
	if r.Into, ok = p.module(call, pos, "replace", "into"); !ok {
		return nil
	}
	if r.From == r.Into {
		p.addWarning(pos, "replace: %s is replaced by itself", r.From)
	}
	return r
}

func (p *parser) parseConflictGroup(call *build.CallExpr, pos Position) *ConflictGroup {
	if !p.checkArgs(call, pos, "conflict_group", groupAttrs) {
		return nil
	}

	modules, ok := buildutil.StringList(call, "modules")
	if !ok {
		p.addError(pos, "conflict_group: 'modules' must be a list of \"group:name\" strings")
		return nil
	}
	if len(modules) == 0 {
		p.addError(pos, "conflict_group: 'modules' must not be empty")
		return nil
	}
	valid := true
	for _, m := range modules {
		if _, err := coord.ParseModuleID(m); err != nil {
			p.addErrorWrapped(pos, err, "conflict_group: %v", err)
			valid = false
		}
	}
	if !valid {
		return nil
	}

	g := &ConflictGroup{Pos: pos, Modules: modules}

	var set []string
	for _, attr := range groupAttrs[1:] {
		if buildutil.HasAttr(call, attr) {
			set = append(set, attr)
		}
	}
	if len(set) > 1 {
		p.addError(pos, "conflict_group: %q and %q are mutually exclusive", set[0], set[1])
		return nil
	}

	switch {
	case buildutil.HasAttr(call, "prefer"):
		if g.Prefer, ok = p.module(call, pos, "conflict_group", "prefer"); !ok {
			return nil
		}
		if !slices.Contains(modules, g.Prefer) {
			p.addWarning(pos, "conflict_group: preferred module %s is not a member", g.Prefer)
		}
	case buildutil.HasAttr(call, "avoid"):
		if g.Avoid, ok = p.module(call, pos, "conflict_group", "avoid"); !ok {
			return nil
		}
		if !slices.Contains(modules, g.Avoid) {
			p.addWarning(pos, "conflict_group: avoided module %s is not a member", g.Avoid)
		}
	case buildutil.HasAttr(call, "prefer_versions"):
		constraint, ok := buildutil.String(call, "prefer_versions")
		if !ok {
			p.addError(pos, "conflict_group: 'prefer_versions' must be a string")
			return nil
		}
		if _, err := modconflict.VersionMatching(constraint); err != nil {
			p.addErrorWrapped(pos, err, "conflict_group: %v", err)
			return nil
		}
		g.PreferVersions = constraint
	default:
		p.addWarning(pos, "conflict_group has no prefer, prefer_versions or avoid: members share a slot but the newest version wins")
	}

	if len(modules) == 1 {
		p.addWarning(pos, "conflict_group with a single module has no effect")
	}
	return g
}

// checkArgs rejects positional and unknown keyword arguments.
func (p *parser) checkArgs(call *build.CallExpr, pos Position, fn string, known []string) bool {
	ok := true
	if buildutil.PositionalCount(call) > 0 {
		p.addError(pos, "%s: positional arguments are not supported", fn)
		ok = false
	}
	for _, name := range buildutil.AttrNames(call) {
		if !slices.Contains(known, name) {
			p.addError(pos, "%s: unknown attribute %q", fn, name)
			ok = false
		}
	}
	return ok
}

// module reads a required "group:name" attribute.
func (p *parser) module(call *build.CallExpr, pos Position, fn, attr string) (string, bool) {
	if !buildutil.HasAttr(call, attr) {
		p.addError(pos, "%s: missing required '%s' attribute", fn, attr)
		return "", false
	}
	s, ok := buildutil.String(call, attr)
	if !ok {
		p.addError(pos, "%s: '%s' must be a string", fn, attr)
		return "", false
	}
	if _, err := coord.ParseModuleID(s); err != nil {
		p.addErrorWrapped(pos, err, "%s: '%s': %v", fn, attr, err)
		return "", false
	}
	return s, true
}

func (p *parser) position(expr build.Expr) Position {
	line, col := buildutil.Start(expr)
	return Position{
		Filename: p.filename,
		Line:     line,
		Column:   col,
	}
}

func (p *parser) addError(pos Position, format string, args ...any) {
	p.errors = append(p.errors, &ParseError{
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	})
}

func (p *parser) addErrorWrapped(pos Position, err error, format string, args ...any) {
	p.errors = append(p.errors, &ParseError{
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
		Wrapped: err,
	})
}

func (p *parser) addWarning(pos Position, format string, args ...any) {
	p.warnings = append(p.warnings, &ParseError{
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	})
}
