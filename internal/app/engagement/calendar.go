// Package engagement implements the FitQuest achievement engine:
// day-boundary temporal calculus, the achievement catalog and its progress
// strategies, the reward pipeline, the event bus, the state manager, and the
// command layer that drives re-evaluation.
package engagement

import (
	"time"

	"github.com/fitquest-app/fitquest/internal/domain"
)

// DateLayout is the calendar-date format used everywhere in the engine.
const DateLayout = "2006-01-02"

// EffectiveDate returns the logical calendar date of a timestamp under the
// configured day boundary: hours before boundaryHour still belong to the
// previous day, so a 1 a.m. workout credits yesterday's streak.
// The adjustment happens once, at ingestion — never at comparison time.
func EffectiveDate(t time.Time, boundaryHour int) string {
	if t.Hour() < boundaryHour {
		t = t.AddDate(0, 0, -1)
	}
	return t.Format(DateLayout)
}

// CurrentStreak returns the length of the consecutive run of active days
// ending at today or yesterday. If neither anchors the run, the streak is 0.
func CurrentStreak(days map[string]bool, today string) int {
	anchor, err := time.Parse(DateLayout, today)
	if err != nil {
		return 0
	}
	if !days[today] {
		anchor = anchor.AddDate(0, 0, -1)
		if !days[anchor.Format(DateLayout)] {
			return 0
		}
	}

	streak := 0
	for days[anchor.Format(DateLayout)] {
		streak++
		anchor = anchor.AddDate(0, 0, -1)
	}
	return streak
}

// BestStreak returns the longest run of consecutive calendar dates in the
// set: 0 for empty, 1 for a singleton. Gaps of any size reset the run.
func BestStreak(days map[string]bool) int {
	if len(days) == 0 {
		return 0
	}

	dates := make([]time.Time, 0, len(days))
	for d := range days {
		t, err := time.Parse(DateLayout, d)
		if err != nil {
			continue
		}
		dates = append(dates, t)
	}
	if len(dates) == 0 {
		return 0
	}
	sortDates(dates)

	best, run := 1, 1
	for i := 1; i < len(dates); i++ {
		switch gapDays(dates[i-1], dates[i]) {
		case 0:
			// duplicate date, run unchanged
		case 1:
			run++
		default:
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

// ActivityDates collects the set of effective dates that have any logged
// activity. Days present in history but empty do not count.
func ActivityDates(history []domain.ActivityLog) map[string]bool {
	days := make(map[string]bool, len(history))
	for _, log := range history {
		if log.HasActivity() {
			days[log.Date] = true
		}
	}
	return days
}

// gapDays returns the whole calendar days between a and b (b after a).
func gapDays(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// sortDates sorts ascending in place. Insertion sort — streak histories are
// small and already mostly ordered.
func sortDates(dates []time.Time) {
	for i := 1; i < len(dates); i++ {
		for j := i; j > 0 && dates[j].Before(dates[j-1]); j-- {
			dates[j], dates[j-1] = dates[j-1], dates[j]
		}
	}
}
