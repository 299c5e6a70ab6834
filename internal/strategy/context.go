package strategy

import (
	"sort"
	"time"

	"github.com/teemow/calq/internal/engine"
)

// EventContext is the calendar snapshot handed to the language model. Events
// are pre-bucketed relative to the reference time so the prompt can present
// them in a stable, compact order instead of dumping a raw list.
type EventContext struct {
	Today    []engine.Event
	Tomorrow []engine.Event
	Upcoming []engine.Event
	Past     []engine.Event

	// ByDate indexes every event by its start day (YYYY-MM-DD), regardless
	// of which bucket it landed in, so the prompt can also answer questions
	// about an arbitrary date.
	ByDate map[string][]engine.Event
}

// BuildEventContext buckets events by their relation to now. Each bucket is
// sorted by start time. An event lands in exactly one bucket: today and
// tomorrow take precedence over the generic upcoming/past split. Every event
// additionally appears in ByDate under its start day.
func BuildEventContext(events []engine.Event, now time.Time) EventContext {
	todayKey := engine.ISODateKey(now)
	tomorrowKey := engine.ISODateKey(now.AddDate(0, 0, 1))

	ctx := EventContext{ByDate: make(map[string][]engine.Event)}
	for _, e := range sortedByStart(events) {
		key := engine.ISODateKey(e.Start)
		ctx.ByDate[key] = append(ctx.ByDate[key], e)
		switch {
		case key == todayKey:
			ctx.Today = append(ctx.Today, e)
		case key == tomorrowKey:
			ctx.Tomorrow = append(ctx.Tomorrow, e)
		case e.Start.After(now):
			ctx.Upcoming = append(ctx.Upcoming, e)
		default:
			ctx.Past = append(ctx.Past, e)
		}
	}
	return ctx
}

// DateKeys returns the ByDate keys in ascending order for deterministic
// rendering.
func (c EventContext) DateKeys() []string {
	keys := make([]string, 0, len(c.ByDate))
	for k := range c.ByDate {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedByStart(events []engine.Event) []engine.Event {
	out := make([]engine.Event, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}
