package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPluralize(t *testing.T) {
	assert.Equal(t, "1 meeting", Pluralize(1, "meeting"))
	assert.Equal(t, "2 meetings", Pluralize(2, "meeting"))
	assert.Equal(t, "0 meetings", Pluralize(0, "meeting"))
	assert.Equal(t, "1 overlapping meeting", Pluralize(1, "overlapping meeting"))
	assert.Equal(t, "3 free slots", Pluralize(3, "free slot"))
}

func TestFormatEventLine(t *testing.T) {
	e := testEvent("e1", "Standup", 10, 0, 10, 30)
	assert.Equal(t, "• **Standup** from 10:00 AM to 10:30 AM", FormatEventLine(e))
	assert.Equal(t, "• **Standup** from 10:00 AM to 10:30 AM on Wednesday", FormatEventLineWithDay(e))
	assert.Equal(t, "• **Standup** from 10:00 AM to 10:30 AM (No agenda)", FormatEventLineWithAgenda(e))

	e.Description = "Daily sync notes"
	assert.Equal(t, "• **Standup** from 10:00 AM to 10:30 AM (Has agenda)", FormatEventLineWithAgenda(e))
}

func TestHasAgenda(t *testing.T) {
	e := testEvent("e1", "Standup", 10, 0, 10, 30)
	assert.False(t, e.HasAgenda())

	e.Description = placeholderDescription
	assert.False(t, e.HasAgenda())

	e.Description = "Quarterly goals"
	assert.True(t, e.HasAgenda())
}
