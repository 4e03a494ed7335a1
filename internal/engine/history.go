package engine

import (
	"sort"
	"time"
)

// SourceKind distinguishes where an activity record came from.
type SourceKind string

const (
	SourceTask      SourceKind = "task"
	SourceQuestStep SourceKind = "quest_step"
)

// ActivityRecord is one completion in the append-only activity log.
type ActivityRecord struct {
	OccurredAt time.Time
	Category   Category
	Source     SourceKind
}

// History is the ordered activity log. The engine only ever reads it; the
// orchestrator's caller owns appends and persistence.
type History []ActivityRecord

// CountOnDay returns the number of records on the given calendar day.
func (h History) CountOnDay(day time.Time) int {
	d := dayOf(day)
	n := 0
	for _, r := range h {
		if dayOf(r.OccurredAt).Equal(d) {
			n++
		}
	}
	return n
}

// DistinctDaysAtOrAfterHour counts calendar days with at least one record
// whose hour-of-day is >= hour.
func (h History) DistinctDaysAtOrAfterHour(hour int) int {
	days := map[time.Time]struct{}{}
	for _, r := range h {
		if r.OccurredAt.UTC().Hour() >= hour {
			days[dayOf(r.OccurredAt)] = struct{}{}
		}
	}
	return len(days)
}

// HasBeforeHour reports whether any record happened before the given
// hour-of-day.
func (h History) HasBeforeHour(hour int) bool {
	for _, r := range h {
		if r.OccurredAt.UTC().Hour() < hour {
			return true
		}
	}
	return false
}

// LongestDailyRun returns the longest run of consecutive calendar days that
// each have at least minPerDay records. Days below the minimum break the run.
func (h History) LongestDailyRun(minPerDay int) int {
	counts := map[time.Time]int{}
	for _, r := range h {
		counts[dayOf(r.OccurredAt)]++
	}
	if len(counts) == 0 {
		return 0
	}

	days := make([]time.Time, 0, len(counts))
	for d := range counts {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	best, run := 0, 0
	for i, d := range days {
		if counts[d] < minPerDay {
			run = 0
			continue
		}
		if i > 0 && run > 0 && d.Equal(days[i-1].AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}
