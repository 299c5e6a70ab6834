package server

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/teemow/calq/internal/engine"
	"github.com/teemow/calq/internal/strategy"
)

func testResolver() *strategy.Resolver {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return strategy.NewResolver(strategy.NewRuleStrategy(), nil, logger)
}

func TestNewServerContext(t *testing.T) {
	sc, err := NewServerContext(context.Background(), testResolver(), nil)
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}
	defer func() { _ = sc.Shutdown() }()

	if sc.Context() == nil {
		t.Error("Context() should not be nil")
	}
	if sc.Resolver() == nil {
		t.Error("Resolver() should not be nil")
	}
	if sc.Logger() == nil {
		t.Error("Logger() should fall back to the default logger")
	}
	if sc.IsShutdown() {
		t.Error("new context should not be shut down")
	}
}

func TestServerContext_ResolverAnswersQueries(t *testing.T) {
	sc, err := NewServerContext(context.Background(), testResolver(), nil)
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}
	defer func() { _ = sc.Shutdown() }()

	now := time.Date(2025, 4, 16, 8, 0, 0, 0, time.UTC)
	events := []engine.Event{
		{
			ID:    "e1",
			Title: "Standup",
			Start: time.Date(2025, 4, 16, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 4, 16, 10, 30, 0, 0, time.UTC),
		},
	}

	result, name, err := sc.Resolver().Answer(sc.Context(), "What meetings do I have today?", events, now)
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if name != strategy.NameRules {
		t.Errorf("strategy = %q, want %q", name, strategy.NameRules)
	}
	if len(result.RelatedEvents) != 1 || result.RelatedEvents[0].ID != "e1" {
		t.Errorf("RelatedEvents = %+v, want the standup event", result.RelatedEvents)
	}
}

func TestServerContext_Shutdown(t *testing.T) {
	sc, err := NewServerContext(context.Background(), testResolver(), nil)
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}

	if err := sc.Shutdown(); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
	if !sc.IsShutdown() {
		t.Error("IsShutdown() = false after Shutdown()")
	}

	// Second shutdown is a no-op
	if err := sc.Shutdown(); err != nil {
		t.Errorf("second Shutdown() error = %v", err)
	}

	select {
	case <-sc.Context().Done():
	default:
		t.Error("context should be cancelled after Shutdown()")
	}
}

func TestServerContext_CalendarClientForAccount_NoToken(t *testing.T) {
	// Point the cache dir at an empty temp dir so no tokens are found
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	sc, err := NewServerContext(context.Background(), testResolver(), nil)
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}
	defer func() { _ = sc.Shutdown() }()

	if client := sc.CalendarClientForAccount("missing"); client != nil {
		t.Error("expected nil client for account without token")
	}
}
