package cmd

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/teemow/calq/internal/engine"
	"github.com/teemow/calq/internal/strategy"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildResolver_RulesOnly(t *testing.T) {
	resolver := buildResolver(false, discardLogger())

	now := time.Date(2025, 4, 16, 8, 0, 0, 0, time.UTC)
	events := []engine.Event{
		{
			ID:    "e1",
			Title: "Standup",
			Start: time.Date(2025, 4, 16, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 4, 16, 10, 30, 0, 0, time.UTC),
		},
	}

	result, name, err := resolver.Answer(context.Background(), "What's on my agenda today?", events, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != strategy.NameRules {
		t.Errorf("strategy = %q, want %q", name, strategy.NameRules)
	}
	if result.Answer == "" {
		t.Error("expected a non-empty answer")
	}
}

func TestBuildResolver_LLMRequestedButUnconfigured(t *testing.T) {
	t.Setenv("CALQ_LLM_BASE_URL", "")

	resolver := buildResolver(true, discardLogger())

	now := time.Date(2025, 4, 16, 8, 0, 0, 0, time.UTC)
	result, name, err := resolver.Answer(context.Background(), "Am I free at 3pm?", nil, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != strategy.NameRules {
		t.Errorf("strategy = %q, want %q", name, strategy.NameRules)
	}
	if result.Answer == "" {
		t.Error("expected a non-empty answer")
	}
}

func TestBuildResolver_LLMConfigured(t *testing.T) {
	t.Setenv("CALQ_LLM_BASE_URL", "http://localhost:11434/v1")
	t.Setenv("CALQ_LLM_MODEL", "test-model")

	resolver := buildResolver(true, discardLogger())
	if resolver == nil {
		t.Fatal("expected a resolver")
	}
}

func TestNewAskCmd_Defaults(t *testing.T) {
	cmd := newAskCmd()

	for flag, want := range map[string]string{
		"account":  "default",
		"calendar": "primary",
		"llm":      "false",
	} {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			t.Fatalf("flag %q not registered", flag)
		}
		if f.DefValue != want {
			t.Errorf("flag %q default = %q, want %q", flag, f.DefValue, want)
		}
	}
}
