// Package modconflict resolves module conflicts for a dependency-graph build
// engine.
//
// When two or more resolved candidates occupy the same slot in a dependency
// graph (different versions of one module, or modules declared to replace
// one another) the engine asks an [Orchestrator] which candidate wins, and
// while building the graph it asks which other modules share a slot with a
// module it is about to admit.
//
// # Overview
//
// The package provides four main components:
//
//   - [Resolver]: a declared conflict rule with a domain, a candidate
//     selector and a conflicting-modules selector
//   - [ConflictGroup]: an N-way set of conflicting modules with a resolution
//   - [Replacement]: module "from" is replaced by module "into"
//   - [Orchestrator]: composes the rules in declaration order with a
//     [Fallback] (newest version by default)
//
// # Quick Start
//
// Rules are declared on a [RuleSet] during configuration, then frozen:
//
//	rs := modconflict.NewRuleSet()
//	target, _ := rs.Replace("com.foo:old")
//	_ = target.Into("com.foo:new")
//	_, _ = rs.Declare(modconflict.PreferModule(coord.MustModuleID("com.x:b")), "com.x:a", "com.x:b")
//
//	o, err := modconflict.NewOrchestrator(rs.Freeze())
//	winner, err := o.Select([]modconflict.Candidate{
//	    coord.MustModuleVersion("com.foo:old:1.0"),
//	    coord.MustModuleVersion("com.foo:new:2.0"),
//	})
//
// Declaration errors (malformed "group:name" strings, unsupported member or
// target types) are returned when the rule is declared. Selection fails only
// when the rules jointly exclude every candidate ([ErrContradiction]).
//
// # Rule Order
//
// Rules are consulted in declaration order. For selection every applicable
// rule narrows the candidates in turn. For [Orchestrator.ModuleConflicts] the
// first rule whose domain includes the module answers alone, so declaration
// order acts as priority.
//
// # Logging
//
// The orchestrator is silent unless a logger is supplied with [WithLogger].
package modconflict
