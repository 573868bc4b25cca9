package modconflict

import (
	"context"
	"errors"
	"log/slog"
)

// Option configures an Orchestrator.
type Option func(*orchestratorConfig) error

type orchestratorConfig struct {
	fallback Fallback

	// strictSelectors turns a selector that matches none of its candidates
	// into an immediate contradiction.
	strictSelectors bool

	// logger is the structured logger for debug output.
	// If nil, logging is disabled (silent mode).
	logger *slog.Logger
}

// WithFallback replaces the default newest-version fallback.
func WithFallback(f Fallback) Option {
	return func(c *orchestratorConfig) error {
		if f == nil {
			return errors.New("fallback must not be nil")
		}
		c.fallback = f
		return nil
	}
}

// WithStrictSelectors makes a single resolver whose selector matches none of
// the remaining candidates fail selection immediately, naming that resolver.
// By default only an empty set after all resolvers ran is an error.
func WithStrictSelectors(strict bool) Option {
	return func(c *orchestratorConfig) error {
		c.strictSelectors = strict
		return nil
	}
}

// WithLogger sets a structured logger for selection diagnostics.
// If not set, logging is disabled (silent mode).
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil)).With("component", "modconflict")
//	o, err := modconflict.NewOrchestrator(rules, modconflict.WithLogger(logger))
func WithLogger(l *slog.Logger) Option {
	return func(c *orchestratorConfig) error {
		c.logger = l
		return nil
	}
}

func newOrchestratorConfig(opts ...Option) (*orchestratorConfig, error) {
	c := &orchestratorConfig{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.fallback == nil {
		c.fallback = NewestVersion()
	}
	return c, nil
}

// log returns the configured logger, or a no-op logger if none was set.
func (c *orchestratorConfig) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.New(discardHandler{})
}

// discardHandler is a slog.Handler that discards all log records.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
