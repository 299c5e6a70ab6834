package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/calq/internal/engine"
)

func TestBuildEventContext(t *testing.T) {
	dayEvent := func(id string, day time.Time, hour int) engine.Event {
		return engine.Event{
			ID:    id,
			Title: id,
			Start: time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC),
			End:   time.Date(day.Year(), day.Month(), day.Day(), hour+1, 0, 0, 0, time.UTC),
		}
	}

	events := []engine.Event{
		dayEvent("past", testNow.AddDate(0, 0, -3), 10),
		dayEvent("upcoming", testNow.AddDate(0, 0, 5), 9),
		dayEvent("tomorrow", testNow.AddDate(0, 0, 1), 14),
		dayEvent("today-late", testNow, 15),
		dayEvent("today-early", testNow, 7),
	}

	ctx := BuildEventContext(events, testNow)

	require.Len(t, ctx.Today, 2)
	assert.Equal(t, "today-early", ctx.Today[0].ID)
	assert.Equal(t, "today-late", ctx.Today[1].ID)

	require.Len(t, ctx.Tomorrow, 1)
	assert.Equal(t, "tomorrow", ctx.Tomorrow[0].ID)

	require.Len(t, ctx.Upcoming, 1)
	assert.Equal(t, "upcoming", ctx.Upcoming[0].ID)

	require.Len(t, ctx.Past, 1)
	assert.Equal(t, "past", ctx.Past[0].ID)

	// Every event also appears in the date index, under its start day.
	require.Len(t, ctx.ByDate, 4)
	todayKey := engine.ISODateKey(testNow)
	require.Len(t, ctx.ByDate[todayKey], 2)
	assert.Equal(t, "today-early", ctx.ByDate[todayKey][0].ID)
	assert.Equal(t, "today-late", ctx.ByDate[todayKey][1].ID)
	require.Len(t, ctx.ByDate[engine.ISODateKey(testNow.AddDate(0, 0, -3))], 1)
	require.Len(t, ctx.ByDate[engine.ISODateKey(testNow.AddDate(0, 0, 1))], 1)
	require.Len(t, ctx.ByDate[engine.ISODateKey(testNow.AddDate(0, 0, 5))], 1)

	assert.Equal(t, []string{
		engine.ISODateKey(testNow.AddDate(0, 0, -3)),
		todayKey,
		engine.ISODateKey(testNow.AddDate(0, 0, 1)),
		engine.ISODateKey(testNow.AddDate(0, 0, 5)),
	}, ctx.DateKeys())
}

func TestBuildEventContextEmpty(t *testing.T) {
	ctx := BuildEventContext(nil, testNow)
	assert.Empty(t, ctx.Today)
	assert.Empty(t, ctx.Tomorrow)
	assert.Empty(t, ctx.Upcoming)
	assert.Empty(t, ctx.Past)
	assert.Empty(t, ctx.ByDate)
	assert.Empty(t, ctx.DateKeys())
}
