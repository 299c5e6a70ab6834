package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/calq/internal/calendar"
	"github.com/teemow/calq/internal/engine"
	"github.com/teemow/calq/internal/google"
	"github.com/teemow/calq/internal/ical"
	"github.com/teemow/calq/internal/logging"
	"github.com/teemow/calq/internal/strategy"
)

func newAskCmd() *cobra.Command {
	var (
		icsFile    string
		account    string
		calendarID string
		nowStr     string
		useLLM     bool
		debugMode  bool
		showIDs    bool
	)

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Answer a question about your calendar",
		Long: `Answer a free-text question about calendar events.

Events come either from an iCalendar file (--file) or live from Google
Calendar (--account/--calendar; run 'calq auth' first).

By default the deterministic rule engine answers. With --llm, an
OpenAI-compatible model answers first and the rules take over when it
fails. Configure the model via CALQ_LLM_BASE_URL, CALQ_LLM_API_KEY,
CALQ_LLM_MODEL and CALQ_LLM_TIMEOUT_SECONDS.

Examples:
  calq ask "Do I have any overlapping meetings today?" --file week.ics
  calq ask "When am I free tomorrow?" --account work
  calq ask "Who am I meeting on Friday?" --llm`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(debugMode)
			query := strings.Join(args, " ")

			now := time.Now()
			if nowStr != "" {
				parsed, err := time.Parse(time.RFC3339, nowStr)
				if err != nil {
					return fmt.Errorf("invalid --now value (expected RFC3339): %w", err)
				}
				now = parsed
			}

			events, err := loadEvents(cmd, icsFile, account, calendarID, now)
			if err != nil {
				return err
			}

			resolver := buildResolver(useLLM, logger)

			start := time.Now()
			result, strategyName, err := resolver.Answer(cmd.Context(), query, events, now)
			if err != nil {
				return fmt.Errorf("failed to answer query: %w", err)
			}

			logger.Debug("query answered",
				logging.Intent(string(engine.Classify(query))),
				logging.Strategy(strategyName),
				logging.QueryHash(query),
				slog.Duration("duration", time.Since(start)),
				slog.Int("events", len(events)))

			fmt.Println(result.Answer)
			if showIDs && len(result.RelatedEvents) > 0 {
				fmt.Println("\nRelated events:")
				for _, e := range result.RelatedEvents {
					fmt.Printf("- %s (%s)\n", e.Title, e.ID)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&icsFile, "file", "f", "", "Read events from an iCalendar (.ics) file instead of Google Calendar")
	cmd.Flags().StringVar(&account, "account", "default", "Google account name to use (default: 'default')")
	cmd.Flags().StringVar(&calendarID, "calendar", "primary", "Calendar ID (use 'primary' for primary calendar)")
	cmd.Flags().StringVar(&nowStr, "now", "", "Reference time for 'today'/'tomorrow' resolution (RFC3339). Defaults to the current time.")
	cmd.Flags().BoolVar(&useLLM, "llm", false, "Answer with the configured LLM first, falling back to the rule engine")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().BoolVar(&showIDs, "show-related", false, "Print the IDs of events related to the answer")

	return cmd
}

// loadEvents reads events from the ics file when given, otherwise from
// Google Calendar in a window around now.
func loadEvents(cmd *cobra.Command, icsFile, account, calendarID string, now time.Time) ([]engine.Event, error) {
	if icsFile != "" {
		events, err := ical.LoadFile(icsFile, now.Location())
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", icsFile, err)
		}
		return events, nil
	}

	if !calendar.HasTokenForAccount(account) {
		return nil, fmt.Errorf("%s", google.GetAuthenticationErrorMessage(account))
	}

	client, err := calendar.NewClientForAccount(cmd.Context(), account)
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar client for account %s: %w", account, err)
	}

	// A week back and two weeks ahead covers every relative window the
	// rule engine resolves.
	timeMin := now.AddDate(0, 0, -7)
	timeMax := now.AddDate(0, 0, 14)

	events, err := client.ListEvents(calendarID, timeMin, timeMax)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// buildResolver assembles the strategy chain: rules only, or LLM with a
// rules fallback.
func buildResolver(useLLM bool, logger *slog.Logger) *strategy.Resolver {
	rules := strategy.NewRuleStrategy()

	if useLLM {
		config := strategy.LLMConfigFromEnv()
		if config.Enabled() {
			return strategy.NewResolver(strategy.NewLLMStrategy(config, logger), rules, logger)
		}
		logger.Warn("llm strategy requested but CALQ_LLM_BASE_URL is not set, using rules")
	}

	return strategy.NewResolver(rules, nil, logger)
}

func newLogger(debugMode bool) *slog.Logger {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
