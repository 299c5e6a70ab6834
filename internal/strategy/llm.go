package strategy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/teemow/calq/internal/engine"
	"github.com/teemow/calq/internal/logging"
)

const (
	defaultLLMTimeout = 30 * time.Second
	defaultLLMModel   = "gpt-4o-mini"

	// maxResponseBytes caps the response body read. Answers are short text,
	// anything beyond this is a misbehaving endpoint.
	maxResponseBytes = 1 << 20
)

// LLMConfig configures the OpenAI-compatible chat completions client.
type LLMConfig struct {
	// BaseURL is the API root, e.g. "https://api.openai.com/v1". Empty
	// disables the LLM strategy.
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// LLMConfigFromEnv reads the client configuration from CALQ_LLM_* variables.
func LLMConfigFromEnv() LLMConfig {
	cfg := LLMConfig{
		BaseURL: os.Getenv("CALQ_LLM_BASE_URL"),
		APIKey:  os.Getenv("CALQ_LLM_API_KEY"),
		Model:   getEnvOrDefault("CALQ_LLM_MODEL", defaultLLMModel),
		Timeout: defaultLLMTimeout,
	}
	if v := os.Getenv("CALQ_LLM_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.Timeout = time.Duration(secs) * time.Second
		}
	}
	return cfg
}

// Enabled reports whether the configuration names an endpoint.
func (c LLMConfig) Enabled() bool { return c.BaseURL != "" }

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LLMStrategy answers queries through an OpenAI-compatible chat completions
// endpoint. The calendar snapshot travels in the system prompt and the model
// is instructed to reply with a small JSON document naming the answer text
// and the IDs of the events it refers to.
type LLMStrategy struct {
	config     LLMConfig
	httpClient *http.Client
	logger     *slog.Logger
}

// NewLLMStrategy builds the LLM-backed strategy.
func NewLLMStrategy(config LLMConfig, logger *slog.Logger) *LLMStrategy {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultLLMTimeout
	}
	return &LLMStrategy{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Name implements Strategy.
func (s *LLMStrategy) Name() string { return NameLLM }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// modelAnswer is the JSON document the model is asked to produce.
type modelAnswer struct {
	Answer          string   `json:"answer"`
	RelatedEventIDs []string `json:"relatedEventIds"`
}

// Answer implements Strategy. Every failure mode returns an error so the
// resolver can fall back to the rule engine.
func (s *LLMStrategy) Answer(ctx context.Context, query string, events []engine.Event, now time.Time) (engine.QueryResult, error) {
	if !s.config.Enabled() {
		return engine.QueryResult{}, fmt.Errorf("llm strategy not configured")
	}

	start := time.Now()
	reqBody := chatRequest{
		Model: s.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: buildSystemPrompt(events, now)},
			{Role: "user", Content: query},
		},
		Temperature:    0,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return engine.QueryResult{}, fmt.Errorf("marshal chat request: %w", err)
	}

	endpoint := strings.TrimRight(s.config.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return engine.QueryResult{}, fmt.Errorf("build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if s.config.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	}

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return engine.QueryResult{}, fmt.Errorf("chat completions request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return engine.QueryResult{}, fmt.Errorf("read chat response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return engine.QueryResult{}, fmt.Errorf("chat completions returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return engine.QueryResult{}, fmt.Errorf("decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return engine.QueryResult{}, fmt.Errorf("chat response has no choices")
	}

	var answer modelAnswer
	if err := json.Unmarshal([]byte(parsed.Choices[0].Message.Content), &answer); err != nil {
		return engine.QueryResult{}, fmt.Errorf("decode model answer: %w", err)
	}
	if strings.TrimSpace(answer.Answer) == "" {
		return engine.QueryResult{}, fmt.Errorf("model answer is empty")
	}

	s.logger.Debug("llm answer received",
		logging.Strategy(NameLLM),
		slog.String(logging.KeyDuration, time.Since(start).String()),
		slog.Int("related_events", len(answer.RelatedEventIDs)))

	return engine.QueryResult{
		Answer:        answer.Answer,
		RelatedEvents: resolveEventIDs(answer.RelatedEventIDs, events),
	}, nil
}

// buildSystemPrompt renders the bucketed calendar snapshot and the response
// contract into the system message.
func buildSystemPrompt(events []engine.Event, now time.Time) string {
	evCtx := BuildEventContext(events, now)

	var b strings.Builder
	b.WriteString("You are a calendar assistant. Answer the user's question using only the events below.\n")
	fmt.Fprintf(&b, "The current time is %s.\n\n", now.Format(time.RFC1123))

	writeBucket(&b, "Today", evCtx.Today)
	writeBucket(&b, "Tomorrow", evCtx.Tomorrow)
	writeBucket(&b, "Upcoming", evCtx.Upcoming)
	writeBucket(&b, "Past", evCtx.Past)

	if len(evCtx.ByDate) > 0 {
		b.WriteString("All events by date:\n")
		for _, key := range evCtx.DateKeys() {
			writeBucket(&b, key, evCtx.ByDate[key])
		}
	}

	b.WriteString("\nRespond with a JSON object of the shape ")
	b.WriteString(`{"answer": "<text>", "relatedEventIds": ["<id>", ...]}`)
	b.WriteString(" where relatedEventIds lists the IDs of the events your answer refers to.")
	return b.String()
}

func writeBucket(b *strings.Builder, label string, events []engine.Event) {
	if len(events) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", label)
	for _, e := range events {
		fmt.Fprintf(b, "- id=%s title=%q start=%s end=%s",
			e.ID, e.Title, e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
		if e.Location != "" {
			fmt.Fprintf(b, " location=%q", e.Location)
		}
		if e.AllDay {
			b.WriteString(" all-day")
		}
		b.WriteString("\n")
	}
}

// resolveEventIDs maps the model's ID list back to events, silently skipping
// IDs that do not exist.
func resolveEventIDs(ids []string, events []engine.Event) []engine.Event {
	byID := make(map[string]engine.Event, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}
	var out []engine.Event
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			out = append(out, e)
		}
	}
	return out
}
