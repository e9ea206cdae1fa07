package engine

import (
	"math"
	"sort"
	"time"
)

// Multi-day cadences are anchored to a fixed epoch so every device derives
// the same on/off days for a task.
var scheduleEpoch = struct{ year, month, day int }{2024, 1, 1}

func epochFor(loc *time.Location) time.Time {
	return time.Date(scheduleEpoch.year, time.Month(scheduleEpoch.month), scheduleEpoch.day, 0, 0, 0, 0, loc)
}

// OccurrencesFor expands a task's recurrence rule into the concrete
// occurrence instants due on ref's calendar date, ascending. It is pure and
// deterministic: the same task and reference date always yield the same
// slice, which is what lets the status resolver join occurrences back to
// ledger entries.
//
// Rules with FrequencyHours below 24 repeat within the day starting at
// StartTime, never crossing midnight. Rules at or above 24 hours fire at
// most once per day, on days whose whole-day distance from the epoch is a
// multiple of FrequencyHours/24 (integer division; fractional-day cadences
// are intentionally truncated).
func OccurrencesFor(task *Task, ref time.Time) ([]time.Time, error) {
	if task.FrequencyHours <= 0 {
		return nil, FrequencyError{Hours: task.FrequencyHours}
	}

	var out []time.Time
	if task.FrequencyHours < 24 {
		first := task.StartTime.On(ref)
		for h := 0; h < 24; h += task.FrequencyHours {
			t := first.Add(time.Duration(h) * time.Hour)
			if sameDate(t, ref) {
				out = append(out, t)
			}
		}
	} else {
		dayFreq := task.FrequencyHours / 24
		if daysSinceEpoch(ref)%dayFreq == 0 {
			out = append(out, task.StartTime.On(ref))
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, nil
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// daysSinceEpoch counts whole calendar days between the epoch and ref's
// date. Rounding absorbs DST offsets on either endpoint.
func daysSinceEpoch(ref time.Time) int {
	midnight := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	d := midnight.Sub(epochFor(ref.Location()))
	days := int(math.Round(d.Hours() / 24))
	if days < 0 {
		days = -days
	}
	return days
}
