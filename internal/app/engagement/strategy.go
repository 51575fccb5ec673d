package engagement

import (
	"time"

	"github.com/fitquest-app/fitquest/internal/domain"
)

// ProgressFunc maps an activity history and goal settings to a progress
// value. The unlock decision is always progress >= target — a fixed policy,
// no strategy defines its own comparator. Goals are unused by the current
// rule set but threaded through for goal-aware achievements later.
//
// All strategies treat absent collections as empty: upstream data may be
// partially populated during incremental UI updates.
type ProgressFunc func(history []domain.ActivityLog, goals domain.UserGoals) float64

// streakProgress counts consecutive active days anchored at the effective
// "today" of the evaluation clock.
func streakProgress(boundaryHour int, now func() time.Time) ProgressFunc {
	return func(history []domain.ActivityLog, _ domain.UserGoals) float64 {
		today := EffectiveDate(now(), boundaryHour)
		return float64(CurrentStreak(ActivityDates(history), today))
	}
}

// calorieProgress sums every logged food calorie over the full history.
// Lifetime total, no windowing, monotonically non-decreasing.
func calorieProgress() ProgressFunc {
	return func(history []domain.ActivityLog, _ domain.UserGoals) float64 {
		total := 0
		for _, log := range history {
			for _, f := range log.Foods {
				total += f.Calories
			}
		}
		return float64(total)
	}
}

// exerciseProgress counts logged exercise entries over the full history.
func exerciseProgress() ProgressFunc {
	return func(history []domain.ActivityLog, _ domain.UserGoals) float64 {
		count := 0
		for _, log := range history {
			count += len(log.Exercises)
		}
		return float64(count)
	}
}

// hydrationProgress counts days that met the daily water goal.
func hydrationProgress(waterGoalML int) ProgressFunc {
	return func(history []domain.ActivityLog, _ domain.UserGoals) float64 {
		days := 0
		for _, log := range history {
			if log.WaterML >= waterGoalML {
				days++
			}
		}
		return float64(days)
	}
}
