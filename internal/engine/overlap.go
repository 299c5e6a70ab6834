package engine

import (
	"sort"
	"time"
)

// FindOverlaps reports every pair of timed events whose intervals intersect,
// together with the intersected range. Events that only share a boundary
// instant (one ends exactly when the next starts) do not count: back-to-back
// scheduling is the normal case, not a conflict. All-day events are excluded
// from interval math.
//
// The scan is pairwise over the start-sorted list, O(n²). Per-query event
// sets are day- or week-sized, so this is fine.
func FindOverlaps(events []Event) ([]Overlap, bool) {
	timed := timedEvents(events)
	if len(timed) < 2 {
		return nil, false
	}

	sort.SliceStable(timed, func(i, j int) bool {
		return timed[i].Start.Before(timed[j].Start)
	})

	var overlaps []Overlap
	for i := 0; i < len(timed); i++ {
		for j := i + 1; j < len(timed); j++ {
			if !timed[j].Start.Before(timed[i].End) {
				continue
			}
			end := timed[i].End
			if timed[j].End.Before(end) {
				end = timed[j].End
			}
			overlaps = append(overlaps, Overlap{
				First:  timed[i],
				Second: timed[j],
				Start:  timed[j].Start,
				End:    end,
			})
		}
	}
	return overlaps, len(overlaps) > 0
}

// FindFreeSlots derives the usable gaps between busy intervals for the
// remainder of now's work day. The scan anchors at max(now, 09:00) and ends
// at 18:00; only gaps strictly longer than 30 minutes are reported. With no
// events the whole anchored window is a single slot. The cursor only ever
// advances, so events contained inside earlier ones cannot reopen a gap.
func FindFreeSlots(events []Event, now time.Time) []FreeSlot {
	windowStart := StartOfWorkday(now)
	if now.After(windowStart) {
		windowStart = now
	}
	windowEnd := EndOfWorkday(now)
	if !windowStart.Before(windowEnd) {
		return nil
	}

	timed := timedEvents(events)
	sort.SliceStable(timed, func(i, j int) bool {
		return timed[i].Start.Before(timed[j].Start)
	})

	var slots []FreeSlot
	cursor := windowStart
	for _, e := range timed {
		if !e.Start.Before(windowEnd) {
			break
		}
		if e.Start.Sub(cursor) > minSlotDuration {
			slots = append(slots, FreeSlot{Start: cursor, End: e.Start})
		}
		if e.End.After(cursor) {
			cursor = e.End
		}
	}
	if windowEnd.Sub(cursor) > minSlotDuration {
		slots = append(slots, FreeSlot{Start: cursor, End: windowEnd})
	}
	return slots
}

// timedEvents filters out all-day events, which do not participate in
// overlap or free-slot interval math.
func timedEvents(events []Event) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if !e.AllDay {
			out = append(out, e)
		}
	}
	return out
}

// sortedByStart returns a copy of events ordered by start time.
func sortedByStart(events []Event) []Event {
	out := make([]Event, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}
