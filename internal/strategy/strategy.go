package strategy

import (
	"context"
	"log/slog"
	"time"

	"github.com/teemow/calq/internal/engine"
	"github.com/teemow/calq/internal/logging"
)

// Strategy names for configuration and metrics labels.
const (
	NameRules = "rules"
	NameLLM   = "llm"
)

// Strategy answers a free-text calendar question against a set of events.
// The reference time is captured once by the caller so a single answer is
// internally consistent.
type Strategy interface {
	// Name identifies the strategy in logs and metrics.
	Name() string

	// Answer computes a response for the query.
	Answer(ctx context.Context, query string, events []engine.Event, now time.Time) (engine.QueryResult, error)
}

// RuleStrategy answers queries with the deterministic rule engine. It never
// returns an error.
type RuleStrategy struct{}

// NewRuleStrategy returns the rule-based strategy.
func NewRuleStrategy() *RuleStrategy {
	return &RuleStrategy{}
}

// Name implements Strategy.
func (s *RuleStrategy) Name() string { return NameRules }

// Answer implements Strategy.
func (s *RuleStrategy) Answer(_ context.Context, query string, events []engine.Event, now time.Time) (engine.QueryResult, error) {
	return engine.ProcessQuery(query, events, now), nil
}

// FallbackRecorder counts strategy failures that degraded to the fallback.
// Satisfied by instrumentation.Metrics.
type FallbackRecorder interface {
	RecordStrategyFallback(ctx context.Context, failedStrategy string)
}

// Resolver runs a primary strategy and falls back to a secondary one when
// the primary fails. With the rule engine as fallback the combined Answer
// cannot fail, which is what callers rely on.
type Resolver struct {
	primary  Strategy
	fallback Strategy
	logger   *slog.Logger
	recorder FallbackRecorder
}

// NewResolver builds a resolver. fallback must not fail in practice; the
// rule strategy satisfies that.
func NewResolver(primary, fallback Strategy, logger *slog.Logger) *Resolver {
	return &Resolver{primary: primary, fallback: fallback, logger: logger}
}

// SetFallbackRecorder wires a metrics recorder for fallback counting. A nil
// recorder disables recording.
func (r *Resolver) SetFallbackRecorder(recorder FallbackRecorder) {
	r.recorder = recorder
}

// PrimaryName returns the name of the strategy tried first.
func (r *Resolver) PrimaryName() string {
	return r.primary.Name()
}

// Answer tries the primary strategy and degrades to the fallback on error.
// It returns the name of the strategy that produced the result.
func (r *Resolver) Answer(ctx context.Context, query string, events []engine.Event, now time.Time) (engine.QueryResult, string, error) {
	result, err := r.primary.Answer(ctx, query, events, now)
	if err == nil {
		return result, r.primary.Name(), nil
	}
	if r.fallback == nil {
		return engine.QueryResult{}, r.primary.Name(), err
	}

	r.logger.Warn("strategy failed, falling back",
		logging.Strategy(r.primary.Name()),
		logging.Err(err))
	if r.recorder != nil {
		r.recorder.RecordStrategyFallback(ctx, r.primary.Name())
	}

	result, fbErr := r.fallback.Answer(ctx, query, events, now)
	if fbErr != nil {
		return engine.QueryResult{}, r.fallback.Name(), fbErr
	}
	return result, r.fallback.Name(), nil
}
